package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estatedesk/backoffice/internal/apperrors"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	"github.com/estatedesk/backoffice/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPaymentRepository persists submitted payments.
type PgxPaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new repository for payment data.
func NewPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepository {
	return &PgxPaymentRepository{pool: pool}
}

var _ portsrepo.PaymentRepository = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, client_name, project, amount, method, receipt_bucket,
	receipt_path, status, reviewed_by, review_note,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.PaymentID, &p.ClientName, &p.Project, &p.Amount, &p.Method,
		&p.ReceiptBucket, &p.ReceiptPath, &p.Status, &p.ReviewedBy, &p.ReviewNote,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePayment inserts a new payment.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment models.Payment) error {
	query := `
		INSERT INTO payments (payment_id, client_name, project, amount, method, receipt_bucket,
			receipt_path, status, reviewed_by, review_note,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.pool.Exec(ctx, query,
		payment.PaymentID, payment.ClientName, payment.Project, payment.Amount, payment.Method,
		payment.ReceiptBucket, payment.ReceiptPath, string(payment.Status),
		payment.ReviewedBy, payment.ReviewNote,
		payment.CreatedAt, payment.CreatedBy, payment.LastUpdatedAt, payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

// FindPaymentByID retrieves a payment by ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE payment_id = $1;`, paymentColumns)
	payment, err := scanPayment(r.pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	return payment, nil
}

// ListPayments pages payments in one status, newest first, strictly before the
// cursor timestamp.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, status models.PaymentStatus, before time.Time, limit int) ([]models.Payment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM payments
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at DESC
		LIMIT $3;
	`, paymentColumns)
	rows, err := r.pool.Query(ctx, query, string(status), before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

// UpdatePayment rewrites a payment's review fields.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment models.Payment) error {
	query := `
		UPDATE payments
		SET status = $2, reviewed_by = $3, review_note = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE payment_id = $1;
	`
	res, err := r.pool.Exec(ctx, query,
		payment.PaymentID, string(payment.Status), payment.ReviewedBy, payment.ReviewNote,
		payment.LastUpdatedAt, payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", payment.PaymentID, err)
	}
	if res.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
