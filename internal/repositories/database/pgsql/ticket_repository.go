package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/estatedesk/backoffice/internal/apperrors"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	"github.com/estatedesk/backoffice/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTicketRepository persists support tickets.
type PgxTicketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository creates a new repository for ticket data.
func NewTicketRepository(pool *pgxpool.Pool) portsrepo.TicketRepository {
	return &PgxTicketRepository{pool: pool}
}

var _ portsrepo.TicketRepository = (*PgxTicketRepository)(nil)

const ticketColumns = `ticket_id, client_name, subject, description, status, assigned_to,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTicket(row pgx.Row) (*models.Ticket, error) {
	var t models.Ticket
	err := row.Scan(
		&t.TicketID, &t.ClientName, &t.Subject, &t.Description, &t.Status, &t.AssignedTo,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveTicket inserts a new ticket.
func (r *PgxTicketRepository) SaveTicket(ctx context.Context, ticket models.Ticket) error {
	query := `
		INSERT INTO tickets (ticket_id, client_name, subject, description, status, assigned_to,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		ticket.TicketID, ticket.ClientName, ticket.Subject, ticket.Description,
		string(ticket.Status), ticket.AssignedTo,
		ticket.CreatedAt, ticket.CreatedBy, ticket.LastUpdatedAt, ticket.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save ticket %s: %w", ticket.TicketID, err)
	}
	return nil
}

// FindTicketByID retrieves a ticket by ID.
func (r *PgxTicketRepository) FindTicketByID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE ticket_id = $1;`, ticketColumns)
	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, ticketID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ticket %s: %w", ticketID, err)
	}
	return ticket, nil
}

// ListTickets retrieves a page of tickets, newest first.
func (r *PgxTicketRepository) ListTickets(ctx context.Context, limit, offset int) ([]models.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets ORDER BY created_at DESC LIMIT $1 OFFSET $2;`, ticketColumns)
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

// UpdateTicket rewrites a ticket's status and assignment.
func (r *PgxTicketRepository) UpdateTicket(ctx context.Context, ticket models.Ticket) error {
	query := `
		UPDATE tickets
		SET status = $2, assigned_to = $3, last_updated_at = $4, last_updated_by = $5
		WHERE ticket_id = $1;
	`
	res, err := r.pool.Exec(ctx, query,
		ticket.TicketID, string(ticket.Status), ticket.AssignedTo,
		ticket.LastUpdatedAt, ticket.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket %s: %w", ticket.TicketID, err)
	}
	if res.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
