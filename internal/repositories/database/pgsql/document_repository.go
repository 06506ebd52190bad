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

// PgxDocumentRepository persists document metadata.
type PgxDocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new repository for document metadata.
func NewDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepository {
	return &PgxDocumentRepository{pool: pool}
}

var _ portsrepo.DocumentRepository = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, client_name, name, doc_type, storage_bucket, storage_path,
	created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (*models.Document, error) {
	var d models.Document
	err := row.Scan(
		&d.DocumentID, &d.ClientName, &d.Name, &d.Type, &d.StorageBucket, &d.StoragePath,
		&d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveDocument inserts new document metadata.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc models.Document) error {
	query := `
		INSERT INTO documents (document_id, client_name, name, doc_type, storage_bucket, storage_path,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		doc.DocumentID, doc.ClientName, doc.Name, string(doc.Type),
		doc.StorageBucket, doc.StoragePath,
		doc.CreatedAt, doc.CreatedBy, doc.LastUpdatedAt, doc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", doc.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves document metadata by ID.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM documents WHERE document_id = $1;`, documentColumns)
	doc, err := scanDocument(r.pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	return doc, nil
}

// ListDocumentsByClient retrieves all documents filed under a buyer's name.
func (r *PgxDocumentRepository) ListDocumentsByClient(ctx context.Context, clientName string) ([]models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM documents WHERE client_name = $1 ORDER BY created_at DESC;`, documentColumns)
	rows, err := r.pool.Query(ctx, query, clientName)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for %q: %w", clientName, err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

// DeleteDocument removes document metadata by ID.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if res.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDocumentsByClientName removes every document filed under the buyer's
// name. Zero matches is not an error.
func (r *PgxDocumentRepository) DeleteDocumentsByClientName(ctx context.Context, name string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE client_name = $1;`, name)
	if err != nil {
		return fmt.Errorf("failed to delete documents for %q: %w", name, err)
	}
	return nil
}
