package repository

import (
	"context"

	"github.com/segyhp/propmgmt/internal/domain"

	"github.com/jmoiron/sqlx"
)

type propertyRepository struct {
	db *sqlx.DB
}

func NewPropertyRepository(db *sqlx.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) GetAll(ctx context.Context) ([]*domain.Property, error) {
	query := `SELECT id, name, address FROM properties ORDER BY id`

	properties := []*domain.Property{}
	if err := r.db.SelectContext(ctx, &properties, query); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	query := r.db.Rebind(`SELECT id, name, address FROM properties WHERE id = ?`)

	var property domain.Property
	if err := r.db.GetContext(ctx, &property, query, id); err != nil {
		return nil, notFound(err)
	}
	return &property, nil
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	query := r.db.Rebind(`
		INSERT INTO properties (name, address)
		VALUES (?, ?)
		RETURNING id
	`)

	return insertReturningID(ctx, r.db, query, &property.ID, property.Name, property.Address)
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	query := r.db.Rebind(`
		UPDATE properties
		SET name = ?, address = ?
		WHERE id = ?
	`)

	return requireAffected(r.db.ExecContext(ctx, query, property.Name, property.Address, property.ID))
}

func (r *propertyRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM properties WHERE id = ?`)
	return requireAffected(r.db.ExecContext(ctx, query, id))
}
