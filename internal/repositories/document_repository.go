package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/buena/portfolio-service/internal/models"
)

type DocumentRepository interface {
	Create(ctx context.Context, d *models.Document) error
	GetByStorageKey(ctx context.Context, key string) (*models.Document, error)
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Document, error)
	DeleteByPropertyID(ctx context.Context, propertyID uuid.UUID) error
}

type documentRepo struct{ db DB }

func NewDocumentRepository(db DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, d *models.Document) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO documents (id, property_id, file_name, storage_key, created_at)
		VALUES ($1,$2,$3,$4, NOW())
	`, d.ID, d.PropertyID, d.FileName, d.StorageKey)
	return err
}

func (r *documentRepo) GetByStorageKey(ctx context.Context, key string) (*models.Document, error) {
	row := r.db.QueryRow(ctx, baseSelectDocument()+" WHERE storage_key=$1", key)
	return scanDocument(row)
}

func (r *documentRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Document, error) {
	rows, err := r.db.Query(ctx, baseSelectDocument()+" WHERE property_id=$1 ORDER BY created_at DESC", propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *documentRepo) DeleteByPropertyID(ctx context.Context, propertyID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM documents WHERE property_id=$1`, propertyID)
	return err
}

func baseSelectDocument() string {
	return `
		SELECT id, property_id, file_name, storage_key, created_at
		FROM documents`
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var d models.Document
	if err := row.Scan(&d.ID, &d.PropertyID, &d.FileName, &d.StorageKey, &d.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
