package repository

import (
	"context"

	"github.com/segyhp/propmgmt/internal/domain"

	"github.com/jmoiron/sqlx"
)

const unitColumns = `unit_id, property_id, unit_name, description, beds, baths, sq_ft`

type unitRepository struct {
	db *sqlx.DB
}

func NewUnitRepository(db *sqlx.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) GetAll(ctx context.Context) ([]*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units ORDER BY unit_id`

	units := []*domain.Unit{}
	if err := r.db.SelectContext(ctx, &units, query); err != nil {
		return nil, err
	}
	return units, nil
}

func (r *unitRepository) GetByID(ctx context.Context, unitID int64) (*domain.Unit, error) {
	query := r.db.Rebind(`SELECT ` + unitColumns + ` FROM units WHERE unit_id = ?`)

	var unit domain.Unit
	if err := r.db.GetContext(ctx, &unit, query, unitID); err != nil {
		return nil, notFound(err)
	}
	return &unit, nil
}

func (r *unitRepository) GetByProperty(ctx context.Context, propertyID int64) ([]*domain.Unit, error) {
	query := r.db.Rebind(`SELECT ` + unitColumns + ` FROM units WHERE property_id = ? ORDER BY unit_id`)

	units := []*domain.Unit{}
	if err := r.db.SelectContext(ctx, &units, query, propertyID); err != nil {
		return nil, err
	}
	return units, nil
}

func (r *unitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	query := r.db.Rebind(`
		INSERT INTO units (property_id, unit_name, description, beds, baths, sq_ft)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING unit_id
	`)

	return insertReturningID(ctx, r.db, query, &unit.UnitID,
		unit.PropertyID,
		unit.UnitName,
		unit.Description,
		unit.Beds,
		unit.Baths,
		unit.SqFt,
	)
}

func (r *unitRepository) Update(ctx context.Context, unit *domain.Unit) error {
	query := r.db.Rebind(`
		UPDATE units
		SET property_id = ?, unit_name = ?, description = ?, beds = ?, baths = ?, sq_ft = ?
		WHERE unit_id = ?
	`)

	return requireAffected(r.db.ExecContext(ctx, query,
		unit.PropertyID,
		unit.UnitName,
		unit.Description,
		unit.Beds,
		unit.Baths,
		unit.SqFt,
		unit.UnitID,
	))
}

func (r *unitRepository) Delete(ctx context.Context, unitID int64) error {
	query := r.db.Rebind(`DELETE FROM units WHERE unit_id = ?`)
	return requireAffected(r.db.ExecContext(ctx, query, unitID))
}
