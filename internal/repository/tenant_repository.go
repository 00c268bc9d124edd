package repository

import (
	"context"

	"github.com/segyhp/propmgmt/internal/domain"

	"github.com/jmoiron/sqlx"
)

const tenantColumns = `tenant_id, name, email, phone, unit_id, status`

type tenantRepository struct {
	db *sqlx.DB
}

func NewTenantRepository(db *sqlx.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) GetAll(ctx context.Context) ([]*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY tenant_id`

	tenants := []*domain.Tenant{}
	if err := r.db.SelectContext(ctx, &tenants, query); err != nil {
		return nil, err
	}
	return tenants, nil
}

func (r *tenantRepository) GetByID(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	query := r.db.Rebind(`SELECT ` + tenantColumns + ` FROM tenants WHERE tenant_id = ?`)

	var tenant domain.Tenant
	if err := r.db.GetContext(ctx, &tenant, query, tenantID); err != nil {
		return nil, notFound(err)
	}
	return &tenant, nil
}

func (r *tenantRepository) GetByUnit(ctx context.Context, unitID int64) ([]*domain.Tenant, error) {
	query := r.db.Rebind(`SELECT ` + tenantColumns + ` FROM tenants WHERE unit_id = ? ORDER BY tenant_id`)

	tenants := []*domain.Tenant{}
	if err := r.db.SelectContext(ctx, &tenants, query, unitID); err != nil {
		return nil, err
	}
	return tenants, nil
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	query := r.db.Rebind(`
		INSERT INTO tenants (name, email, phone, unit_id, status)
		VALUES (?, ?, ?, ?, ?)
		RETURNING tenant_id
	`)

	return insertReturningID(ctx, r.db, query, &tenant.TenantID,
		tenant.Name,
		tenant.Email,
		tenant.Phone,
		tenant.UnitID,
		tenant.Status,
	)
}

func (r *tenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	query := r.db.Rebind(`
		UPDATE tenants
		SET name = ?, email = ?, phone = ?, unit_id = ?, status = ?
		WHERE tenant_id = ?
	`)

	return requireAffected(r.db.ExecContext(ctx, query,
		tenant.Name,
		tenant.Email,
		tenant.Phone,
		tenant.UnitID,
		tenant.Status,
		tenant.TenantID,
	))
}

func (r *tenantRepository) Delete(ctx context.Context, tenantID int64) error {
	query := r.db.Rebind(`DELETE FROM tenants WHERE tenant_id = ?`)
	return requireAffected(r.db.ExecContext(ctx, query, tenantID))
}
