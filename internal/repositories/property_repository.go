package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/buena/portfolio-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	GetByName(ctx context.Context, name string) (*models.Property, error)
	ListAll(ctx context.Context) ([]*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	Delete(ctx context.Context, id uuid.UUID) error

	// NextPropertyNumber pulls the next value off the durable sequence.
	// The sequence never rolls back, so numbers of failed transactions are
	// burned rather than reused.
	NextPropertyNumber(ctx context.Context) (int64, error)

	ListStaleDrafts(ctx context.Context, olderThan time.Time) ([]*models.Property, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct{ db DB }

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, name, property_number, management_type, manager_id, accountant_id,
            status, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW())
    `,
		p.ID,
		p.Name,
		p.PropertyNumber,
		p.ManagementType,
		p.ManagerID,
		p.AccountantID,
		p.Status,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1", id)
	return scanProperty(row)
}

func (r *propertyRepo) GetByName(ctx context.Context, name string) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE name=$1 LIMIT 1", name)
	return scanProperty(row)
}

func (r *propertyRepo) ListAll(ctx context.Context) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        UPDATE properties SET
            name=$1, management_type=$2, manager_id=$3, accountant_id=$4,
            status=$5, updated_at=NOW()
        WHERE id=$6
    `,
		p.Name, p.ManagementType, p.ManagerID, p.AccountantID, p.Status, p.ID,
	)
	return err
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) NextPropertyNumber(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.QueryRow(ctx, `SELECT nextval('property_number_seq')`).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *propertyRepo) ListStaleDrafts(ctx context.Context, olderThan time.Time) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx,
		baseSelectProperty()+" WHERE status=$1 AND updated_at < $2 ORDER BY updated_at",
		models.PropertyStatusDraft, olderThan,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

/* ---------- internals ---------- */

func baseSelectProperty() string {
	return `
        SELECT
            id, name, property_number, management_type, manager_id, accountant_id,
            status, created_at, updated_at
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.PropertyNumber,
		&p.ManagementType,
		&p.ManagerID,
		&p.AccountantID,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
