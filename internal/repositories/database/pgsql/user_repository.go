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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUserRepository persists operator accounts.
type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new repository for user data.
func NewUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{pool: pool}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, name, password_hash, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID, &u.Username, &u.Name, &u.PasswordHash, &u.IsActive,
		&u.CreatedAt, &u.CreatedBy, &u.LastUpdatedAt, &u.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveUser inserts a new operator account.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user models.User) error {
	query := `
		INSERT INTO users (user_id, username, name, password_hash, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		user.UserID, user.Username, user.Name, user.PasswordHash, user.IsActive,
		user.CreatedAt, user.CreatedBy, user.LastUpdatedAt, user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: username %s already taken", apperrors.ErrDuplicate, user.Username)
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// FindUserByID retrieves an operator by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1;`, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// FindUserByUsername retrieves an operator by username.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1;`, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %q: %w", username, err)
	}
	return user, nil
}

// ListUsers retrieves a page of operators ordered by username.
func (r *PgxUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY username LIMIT $1 OFFSET $2;`, userColumns)
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// DeactivateUser flips an operator inactive.
func (r *PgxUserRepository) DeactivateUser(ctx context.Context, userID string, deactivatedBy string, now time.Time) error {
	query := `
		UPDATE users SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $1;
	`
	res, err := r.pool.Exec(ctx, query, userID, now, deactivatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate user %s: %w", userID, err)
	}
	if res.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
