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

// PgxBalanceRepository persists amortization records.
type PgxBalanceRepository struct {
	pool *pgxpool.Pool
}

// NewBalanceRepository creates a new repository for balance data.
func NewBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepository {
	return &PgxBalanceRepository{pool: pool}
}

var _ portsrepo.BalanceRepository = (*PgxBalanceRepository)(nil)

const balanceColumns = `balance_id, client_name, project, block, lot, tcp, down_payment,
	months_term, monthly_amortization, total_paid, months_paid, remaining_balance,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBalance(row pgx.Row) (*models.Balance, error) {
	var b models.Balance
	err := row.Scan(
		&b.BalanceID, &b.ClientName, &b.Project, &b.Block, &b.Lot, &b.TCP, &b.DownPayment,
		&b.MonthsTerm, &b.MonthlyAmortization, &b.TotalPaid, &b.MonthsPaid, &b.RemainingBalance,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SaveBalance inserts a new amortization record.
func (r *PgxBalanceRepository) SaveBalance(ctx context.Context, balance models.Balance) error {
	query := `
		INSERT INTO balances (balance_id, client_name, project, block, lot, tcp, down_payment,
			months_term, monthly_amortization, total_paid, months_paid, remaining_balance,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.pool.Exec(ctx, query,
		balance.BalanceID, balance.ClientName, balance.Project, balance.Block, balance.Lot,
		balance.TCP, balance.DownPayment, balance.MonthsTerm, balance.MonthlyAmortization,
		balance.TotalPaid, balance.MonthsPaid, balance.RemainingBalance,
		balance.CreatedAt, balance.CreatedBy, balance.LastUpdatedAt, balance.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: balance for %s already exists", apperrors.ErrDuplicate, balance.ClientName)
		}
		return fmt.Errorf("failed to save balance %s: %w", balance.BalanceID, err)
	}
	return nil
}

// FindBalanceByID retrieves an amortization record by ID.
func (r *PgxBalanceRepository) FindBalanceByID(ctx context.Context, balanceID string) (*models.Balance, error) {
	query := fmt.Sprintf(`SELECT %s FROM balances WHERE balance_id = $1;`, balanceColumns)
	balance, err := scanBalance(r.pool.QueryRow(ctx, query, balanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance %s: %w", balanceID, err)
	}
	return balance, nil
}

// FindBalanceByClientName retrieves the newest amortization record under a
// buyer's name.
func (r *PgxBalanceRepository) FindBalanceByClientName(ctx context.Context, clientName string) (*models.Balance, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM balances WHERE client_name = $1
		ORDER BY created_at DESC LIMIT 1;
	`, balanceColumns)
	balance, err := scanBalance(r.pool.QueryRow(ctx, query, clientName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance for %q: %w", clientName, err)
	}
	return balance, nil
}

// ListBalances retrieves a page of amortization records.
func (r *PgxBalanceRepository) ListBalances(ctx context.Context, limit, offset int) ([]models.Balance, error) {
	query := fmt.Sprintf(`SELECT %s FROM balances ORDER BY client_name LIMIT $1 OFFSET $2;`, balanceColumns)
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	defer rows.Close()

	var balances []models.Balance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, *b)
	}
	return balances, rows.Err()
}

// UpdateBalance rewrites the computed amounts of an amortization record.
func (r *PgxBalanceRepository) UpdateBalance(ctx context.Context, balance models.Balance) error {
	query := `
		UPDATE balances
		SET total_paid = $2, months_paid = $3, remaining_balance = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE balance_id = $1;
	`
	res, err := r.pool.Exec(ctx, query,
		balance.BalanceID, balance.TotalPaid, balance.MonthsPaid, balance.RemainingBalance,
		balance.LastUpdatedAt, balance.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance %s: %w", balance.BalanceID, err)
	}
	if res.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBalancesByClientName removes every amortization record under the
// buyer's name. Zero matches is not an error.
func (r *PgxBalanceRepository) DeleteBalancesByClientName(ctx context.Context, name string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM balances WHERE client_name = $1;`, name)
	if err != nil {
		return fmt.Errorf("failed to delete balances for %q: %w", name, err)
	}
	return nil
}
