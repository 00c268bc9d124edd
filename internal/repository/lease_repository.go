package repository

import (
	"context"

	"github.com/segyhp/propmgmt/internal/domain"

	"github.com/jmoiron/sqlx"
)

const leaseColumns = `lease_id, property_id, unit_id, rent_amount, start_date, end_date, status`

type leaseRepository struct {
	db *sqlx.DB
}

func NewLeaseRepository(db *sqlx.DB) LeaseRepository {
	return &leaseRepository{db: db}
}

type leaseTenant struct {
	LeaseID  int64 `db:"lease_id"`
	TenantID int64 `db:"tenant_id"`
}

func (r *leaseRepository) GetAll(ctx context.Context) ([]*domain.Lease, error) {
	return r.selectLeases(ctx, `SELECT `+leaseColumns+` FROM leases ORDER BY lease_id`)
}

func (r *leaseRepository) GetByID(ctx context.Context, leaseID int64) (*domain.Lease, error) {
	query := r.db.Rebind(`SELECT ` + leaseColumns + ` FROM leases WHERE lease_id = ?`)

	var lease domain.Lease
	if err := r.db.GetContext(ctx, &lease, query, leaseID); err != nil {
		return nil, notFound(err)
	}

	leases := []*domain.Lease{&lease}
	if err := r.attachTenants(ctx, leases); err != nil {
		return nil, err
	}
	return &lease, nil
}

func (r *leaseRepository) GetByProperty(ctx context.Context, propertyID int64) ([]*domain.Lease, error) {
	return r.selectLeases(ctx, `SELECT `+leaseColumns+` FROM leases WHERE property_id = ? ORDER BY lease_id`, propertyID)
}

func (r *leaseRepository) GetByUnit(ctx context.Context, unitID int64) ([]*domain.Lease, error) {
	return r.selectLeases(ctx, `SELECT `+leaseColumns+` FROM leases WHERE unit_id = ? ORDER BY lease_id`, unitID)
}

func (r *leaseRepository) GetByTenant(ctx context.Context, tenantID int64) ([]*domain.Lease, error) {
	query := `
		SELECT l.lease_id, l.property_id, l.unit_id, l.rent_amount, l.start_date, l.end_date, l.status
		FROM leases l
		JOIN lease_tenants lt ON lt.lease_id = l.lease_id
		WHERE lt.tenant_id = ?
		ORDER BY l.lease_id
	`
	return r.selectLeases(ctx, query, tenantID)
}

func (r *leaseRepository) Create(ctx context.Context, lease *domain.Lease) error {
	query := r.db.Rebind(`
		INSERT INTO leases (property_id, unit_id, rent_amount, start_date, end_date, status)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING lease_id
	`)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = insertReturningID(ctx, tx, query, &lease.LeaseID,
		lease.PropertyID,
		lease.UnitID,
		lease.RentAmount,
		lease.StartDate,
		lease.EndDate,
		lease.Status,
	)
	if err != nil {
		return err
	}

	if err = r.insertTenants(ctx, tx, lease); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *leaseRepository) Update(ctx context.Context, lease *domain.Lease) error {
	query := r.db.Rebind(`
		UPDATE leases
		SET property_id = ?, unit_id = ?, rent_amount = ?, start_date = ?, end_date = ?, status = ?
		WHERE lease_id = ?
	`)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = requireAffected(tx.ExecContext(ctx, query,
		lease.PropertyID,
		lease.UnitID,
		lease.RentAmount,
		lease.StartDate,
		lease.EndDate,
		lease.Status,
		lease.LeaseID,
	))
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM lease_tenants WHERE lease_id = ?`), lease.LeaseID); err != nil {
		return err
	}

	if err = r.insertTenants(ctx, tx, lease); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *leaseRepository) Delete(ctx context.Context, leaseID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM lease_tenants WHERE lease_id = ?`), leaseID); err != nil {
		return err
	}

	if err = requireAffected(tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM leases WHERE lease_id = ?`), leaseID)); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *leaseRepository) selectLeases(ctx context.Context, query string, args ...interface{}) ([]*domain.Lease, error) {
	leases := []*domain.Lease{}
	if err := r.db.SelectContext(ctx, &leases, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	if err := r.attachTenants(ctx, leases); err != nil {
		return nil, err
	}
	return leases, nil
}

// attachTenants fills TenantIDs from the lease_tenants junction table in one query
func (r *leaseRepository) attachTenants(ctx context.Context, leases []*domain.Lease) error {
	if len(leases) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(leases))
	byID := make(map[int64]*domain.Lease, len(leases))
	for _, lease := range leases {
		lease.TenantIDs = []int64{}
		ids = append(ids, lease.LeaseID)
		byID[lease.LeaseID] = lease
	}

	query, args, err := sqlx.In(`
		SELECT lease_id, tenant_id
		FROM lease_tenants
		WHERE lease_id IN (?)
		ORDER BY lease_id, tenant_id
	`, ids)
	if err != nil {
		return err
	}

	var links []leaseTenant
	if err := r.db.SelectContext(ctx, &links, r.db.Rebind(query), args...); err != nil {
		return err
	}

	for _, link := range links {
		if lease, ok := byID[link.LeaseID]; ok {
			lease.TenantIDs = append(lease.TenantIDs, link.TenantID)
		}
	}
	return nil
}

func (r *leaseRepository) insertTenants(ctx context.Context, tx *sqlx.Tx, lease *domain.Lease) error {
	query := r.db.Rebind(`INSERT INTO lease_tenants (lease_id, tenant_id) VALUES (?, ?)`)
	for _, tenantID := range lease.TenantIDs {
		if _, err := tx.ExecContext(ctx, query, lease.LeaseID, tenantID); err != nil {
			return err
		}
	}
	return nil
}
