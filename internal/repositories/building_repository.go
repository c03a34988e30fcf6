package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/buena/portfolio-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type BuildingRepository interface {
	Create(ctx context.Context, b *models.Building) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Building, error)

	Update(ctx context.Context, b *models.Building) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPropertyID(ctx context.Context, propertyID uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type buildingRepo struct{ db DB }

func NewBuildingRepository(db DB) BuildingRepository {
	return &buildingRepo{db: db}
}

/* ---------- Create ---------- */

func (r *buildingRepo) Create(ctx context.Context, b *models.Building) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO buildings (
			id, property_id, street, house_number, zip_mode, city,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW())
	`, b.ID, b.PropertyID, b.Street, b.HouseNumber, b.ZipMode, b.City)
	return err
}

/* ---------- Reads ---------- */

func (r *buildingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	row := r.db.QueryRow(ctx, baseSelectBuilding()+" WHERE id=$1", id)
	return scanBuilding(row)
}

func (r *buildingRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Building, error) {
	rows, err := r.db.Query(ctx, baseSelectBuilding()+" WHERE property_id=$1 ORDER BY created_at", propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Building
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

/* ---------- Update / Delete ---------- */

func (r *buildingRepo) Update(ctx context.Context, b *models.Building) error {
	_, err := r.db.Exec(ctx, `
		UPDATE buildings SET
		      street=$1, house_number=$2, zip_mode=$3, city=$4, updated_at=NOW()
		WHERE id=$5
	`, b.Street, b.HouseNumber, b.ZipMode, b.City, b.ID)
	return err
}

func (r *buildingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM buildings WHERE id=$1`, id)
	return err
}

func (r *buildingRepo) DeleteByPropertyID(ctx context.Context, propertyID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM buildings WHERE property_id=$1`, propertyID)
	return err
}

/* ---------- internals ---------- */

func baseSelectBuilding() string {
	return `
		SELECT id, property_id, street, house_number, zip_mode, city,
		       created_at, updated_at
		FROM buildings`
}

func scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	if err := row.Scan(
		&b.ID, &b.PropertyID, &b.Street, &b.HouseNumber, &b.ZipMode, &b.City,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
