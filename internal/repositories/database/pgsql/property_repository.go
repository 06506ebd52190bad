package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPropertyRepository persists lots in the two project tables. The tables
// have disjoint column sets, so every call switches on the project
// discriminator and speaks that table's schema.
type PgxPropertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository creates a new repository for property data.
func NewPropertyRepository(pool *pgxpool.Pool) portsrepo.PropertyRepository {
	return &PgxPropertyRepository{pool: pool}
}

var _ portsrepo.PropertyRepository = (*PgxPropertyRepository)(nil)

const livingWaterColumns = `block, lot, lot_area, price_per_sqm, tcp, term, monthly_amortization,
	owner, broker, realty, reservation_date, due_date, date_of_sale, status`

const havahillsColumns = `block, lot, lot_area, price, tcp, buyers_name, realty, sale_date,
	first_due, terms, amount, status`

func scanLivingWater(row pgx.Row) (*domain.LivingWaterProperty, error) {
	var p domain.LivingWaterProperty
	err := row.Scan(
		&p.Block, &p.Lot, &p.LotArea, &p.PricePerSQM, &p.TCP, &p.Term,
		&p.MonthlyAmortization, &p.Owner, &p.Broker, &p.Realty,
		&p.ReservationDate, &p.DueDate, &p.DateOfSale, &p.LotStatus,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanHavahills(row pgx.Row) (*domain.HavahillsProperty, error) {
	var p domain.HavahillsProperty
	err := row.Scan(
		&p.Block, &p.Lot, &p.LotArea, &p.Price, &p.TCP, &p.BuyersName,
		&p.Realty, &p.SaleDate, &p.FirstDue, &p.Terms, &p.Amount, &p.LotStatus,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByStatus returns all lots in the project whose status case-folds to the
// given value, ordered by block then lot.
func (r *PgxPropertyRepository) ListByStatus(ctx context.Context, project domain.Project, status domain.PropertyStatus) ([]domain.Property, error) {
	switch project {
	case domain.ProjectLivingWater:
		query := fmt.Sprintf(`
			SELECT %s FROM living_water_properties
			WHERE LOWER(status) = LOWER($1)
			ORDER BY block, lot;
		`, livingWaterColumns)
		rows, err := r.pool.Query(ctx, query, string(status))
		if err != nil {
			return nil, fmt.Errorf("failed to list living water properties: %w", err)
		}
		defer rows.Close()

		var out []domain.Property
		for rows.Next() {
			p, err := scanLivingWater(rows)
			if err != nil {
				return nil, fmt.Errorf("failed to scan living water property: %w", err)
			}
			out = append(out, p)
		}
		return out, rows.Err()

	case domain.ProjectHavahills:
		query := fmt.Sprintf(`
			SELECT %s FROM havahills_properties
			WHERE LOWER(status) = LOWER($1)
			ORDER BY block, lot;
		`, havahillsColumns)
		rows, err := r.pool.Query(ctx, query, string(status))
		if err != nil {
			return nil, fmt.Errorf("failed to list havahills properties: %w", err)
		}
		defer rows.Close()

		var out []domain.Property
		for rows.Next() {
			p, err := scanHavahills(rows)
			if err != nil {
				return nil, fmt.Errorf("failed to scan havahills property: %w", err)
			}
			out = append(out, p)
		}
		return out, rows.Err()
	}
	return nil, fmt.Errorf("%w: unknown project %q", apperrors.ErrValidation, project)
}

// FindByKey retrieves a lot by its (block, lot) composite key.
func (r *PgxPropertyRepository) FindByKey(ctx context.Context, project domain.Project, key domain.PropertyKey) (domain.Property, error) {
	switch project {
	case domain.ProjectLivingWater:
		query := fmt.Sprintf(`
			SELECT %s FROM living_water_properties WHERE block = $1 AND lot = $2;
		`, livingWaterColumns)
		p, err := scanLivingWater(r.pool.QueryRow(ctx, query, key.Block, key.Lot))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s in %s", apperrors.ErrNotFound, key.String(), project.DisplayName())
			}
			return nil, fmt.Errorf("failed to find living water property %s: %w", key.String(), err)
		}
		return p, nil

	case domain.ProjectHavahills:
		query := fmt.Sprintf(`
			SELECT %s FROM havahills_properties WHERE block = $1 AND lot = $2;
		`, havahillsColumns)
		p, err := scanHavahills(r.pool.QueryRow(ctx, query, key.Block, key.Lot))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s in %s", apperrors.ErrNotFound, key.String(), project.DisplayName())
			}
			return nil, fmt.Errorf("failed to find havahills property %s: %w", key.String(), err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: unknown project %q", apperrors.ErrValidation, project)
}

// CommitReservation writes the merged record conditional on the stored row
// still being Available. The zero-rows-affected case is the lost race: another
// session reserved the lot between listing and committing.
func (r *PgxPropertyRepository) CommitReservation(ctx context.Context, property domain.Property) error {
	key := property.Key()

	switch p := property.(type) {
	case *domain.LivingWaterProperty:
		query := `
			UPDATE living_water_properties
			SET lot_area = $3, price_per_sqm = $4, tcp = $5, term = $6,
				monthly_amortization = $7, owner = $8, broker = $9, realty = $10,
				reservation_date = $11, due_date = $12, date_of_sale = $13, status = $14
			WHERE block = $1 AND lot = $2 AND LOWER(status) = 'available';
		`
		res, err := r.pool.Exec(ctx, query,
			key.Block, key.Lot,
			p.LotArea, p.PricePerSQM, p.TCP, p.Term,
			p.MonthlyAmortization, p.Owner, p.Broker, p.Realty,
			p.ReservationDate, p.DueDate, p.DateOfSale, string(p.LotStatus),
		)
		return reservationResult(key, res.RowsAffected(), err)

	case *domain.HavahillsProperty:
		query := `
			UPDATE havahills_properties
			SET lot_area = $3, price = $4, tcp = $5, buyers_name = $6, realty = $7,
				sale_date = $8, first_due = $9, terms = $10, amount = $11, status = $12
			WHERE block = $1 AND lot = $2 AND LOWER(status) = 'available';
		`
		res, err := r.pool.Exec(ctx, query,
			key.Block, key.Lot,
			p.LotArea, p.Price, p.TCP, p.BuyersName, p.Realty,
			p.SaleDate, p.FirstDue, p.Terms, p.Amount, string(p.LotStatus),
		)
		return reservationResult(key, res.RowsAffected(), err)
	}
	return fmt.Errorf("%w: unknown property variant %T", apperrors.ErrValidation, property)
}

func reservationResult(key domain.PropertyKey, rowsAffected int64, err error) error {
	if err != nil {
		return fmt.Errorf("failed to commit reservation for %s: %w", key.String(), err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s is no longer available", apperrors.ErrConflict, key.String())
	}
	return nil
}

// MarkSold flips Reserved to Sold, conditional on the stored status.
func (r *PgxPropertyRepository) MarkSold(ctx context.Context, project domain.Project, key domain.PropertyKey) error {
	table, err := tableFor(project)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %s SET status = $3
		WHERE block = $1 AND lot = $2 AND LOWER(status) = 'reserved';
	`, table)
	res, err := r.pool.Exec(ctx, query, key.Block, key.Lot, string(domain.StatusSold))
	if err != nil {
		return fmt.Errorf("failed to mark %s sold: %w", key.String(), err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s is not reserved", apperrors.ErrConflict, key.String())
	}
	return nil
}

// SaveReopened writes the cleared, Available row unconditionally. This is the
// strict final step of the reopen flow.
func (r *PgxPropertyRepository) SaveReopened(ctx context.Context, property domain.Property) error {
	key := property.Key()

	switch p := property.(type) {
	case *domain.LivingWaterProperty:
		query := `
			UPDATE living_water_properties
			SET term = $3, monthly_amortization = $4, owner = $5, broker = $6,
				realty = $7, reservation_date = $8, due_date = $9, date_of_sale = $10,
				status = $11
			WHERE block = $1 AND lot = $2;
		`
		res, err := r.pool.Exec(ctx, query,
			key.Block, key.Lot,
			p.Term, p.MonthlyAmortization, p.Owner, p.Broker,
			p.Realty, p.ReservationDate, p.DueDate, p.DateOfSale,
			string(p.LotStatus),
		)
		if err != nil {
			return fmt.Errorf("failed to reopen %s: %w", key.String(), err)
		}
		if res.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s in %s", apperrors.ErrNotFound, key.String(), property.Project().DisplayName())
		}
		return nil

	case *domain.HavahillsProperty:
		query := `
			UPDATE havahills_properties
			SET buyers_name = $3, realty = $4, sale_date = $5, first_due = $6,
				terms = $7, amount = $8, status = $9
			WHERE block = $1 AND lot = $2;
		`
		res, err := r.pool.Exec(ctx, query,
			key.Block, key.Lot,
			p.BuyersName, p.Realty, p.SaleDate, p.FirstDue,
			p.Terms, p.Amount, string(p.LotStatus),
		)
		if err != nil {
			return fmt.Errorf("failed to reopen %s: %w", key.String(), err)
		}
		if res.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s in %s", apperrors.ErrNotFound, key.String(), property.Project().DisplayName())
		}
		return nil
	}
	return fmt.Errorf("%w: unknown property variant %T", apperrors.ErrValidation, property)
}

func tableFor(project domain.Project) (string, error) {
	switch project {
	case domain.ProjectLivingWater:
		return "living_water_properties", nil
	case domain.ProjectHavahills:
		return "havahills_properties", nil
	}
	return "", fmt.Errorf("%w: unknown project %q", apperrors.ErrValidation, project)
}
