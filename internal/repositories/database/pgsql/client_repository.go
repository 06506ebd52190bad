package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/estatedesk/backoffice/internal/apperrors"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	"github.com/estatedesk/backoffice/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxClientRepository persists buyer records.
type PgxClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new repository for client data.
func NewClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepository {
	return &PgxClientRepository{pool: pool}
}

var _ portsrepo.ClientRepository = (*PgxClientRepository)(nil)

const clientColumns = `client_id, name, project, block, lot, email, phone, address, broker,
	created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	err := row.Scan(
		&c.ClientID, &c.Name, &c.Project, &c.Block, &c.Lot, &c.Email, &c.Phone,
		&c.Address, &c.Broker,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client models.Client) error {
	query := `
		INSERT INTO clients (client_id, name, project, block, lot, email, phone, address, broker,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		client.ClientID, client.Name, client.Project, client.Block, client.Lot,
		client.Email, client.Phone, client.Address, client.Broker,
		client.CreatedAt, client.CreatedBy, client.LastUpdatedAt, client.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: client with ID %s already exists", apperrors.ErrDuplicate, client.ClientID)
		}
		return fmt.Errorf("failed to save client %s: %w", client.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves a client by its ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*models.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE client_id = $1;`, clientColumns)
	client, err := scanClient(r.pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	return client, nil
}

// ListClients retrieves a page of clients ordered by name.
func (r *PgxClientRepository) ListClients(ctx context.Context, limit, offset int) ([]models.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients ORDER BY name LIMIT $1 OFFSET $2;`, clientColumns)
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

// UpdateClient updates an existing client's mutable fields.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client models.Client) error {
	query := `
		UPDATE clients
		SET email = $2, phone = $3, address = $4, broker = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE client_id = $1;
	`
	res, err := r.pool.Exec(ctx, query,
		client.ClientID, client.Email, client.Phone, client.Address, client.Broker,
		client.LastUpdatedAt, client.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", client.ClientID, err)
	}
	if res.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteClient removes a client by ID.
func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE client_id = $1;`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}
	if res.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteClientsByName removes every client row carrying the buyer's display
// name. Zero matches is not an error; the reopen flow calls this best-effort.
func (r *PgxClientRepository) DeleteClientsByName(ctx context.Context, name string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE name = $1;`, name)
	if err != nil {
		return fmt.Errorf("failed to delete clients named %q: %w", name, err)
	}
	return nil
}
