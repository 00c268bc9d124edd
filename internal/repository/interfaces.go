package repository

import (
	"context"
	"errors"

	"github.com/segyhp/propmgmt/internal/domain"
)

// ErrNotFound is returned by every repository when the requested row does not exist
var ErrNotFound = errors.New("record not found")

// PropertyRepository defines the interface for property data operations
type PropertyRepository interface {
	// GetAll retrieves every property ordered by id
	GetAll(ctx context.Context) ([]*domain.Property, error)

	// GetByID retrieves a property by its id
	GetByID(ctx context.Context, id int64) (*domain.Property, error)

	// Create stores a new property and assigns its id
	Create(ctx context.Context, property *domain.Property) error

	// Update replaces a property
	Update(ctx context.Context, property *domain.Property) error

	// Delete removes a property
	Delete(ctx context.Context, id int64) error
}

// UnitRepository defines the interface for unit data operations
type UnitRepository interface {
	GetAll(ctx context.Context) ([]*domain.Unit, error)
	GetByID(ctx context.Context, unitID int64) (*domain.Unit, error)

	// GetByProperty retrieves the units of a property ordered by id
	GetByProperty(ctx context.Context, propertyID int64) ([]*domain.Unit, error)

	Create(ctx context.Context, unit *domain.Unit) error
	Update(ctx context.Context, unit *domain.Unit) error
	Delete(ctx context.Context, unitID int64) error
}

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	GetAll(ctx context.Context) ([]*domain.Tenant, error)
	GetByID(ctx context.Context, tenantID int64) (*domain.Tenant, error)

	// GetByUnit retrieves every tenant, of any status, assigned to a unit
	GetByUnit(ctx context.Context, unitID int64) ([]*domain.Tenant, error)

	Create(ctx context.Context, tenant *domain.Tenant) error
	Update(ctx context.Context, tenant *domain.Tenant) error
	Delete(ctx context.Context, tenantID int64) error
}

// LeaseRepository defines the interface for lease data operations.
// Returned leases carry their tenant ids from the lease-tenant relation.
type LeaseRepository interface {
	GetAll(ctx context.Context) ([]*domain.Lease, error)
	GetByID(ctx context.Context, leaseID int64) (*domain.Lease, error)
	GetByProperty(ctx context.Context, propertyID int64) ([]*domain.Lease, error)
	GetByUnit(ctx context.Context, unitID int64) ([]*domain.Lease, error)
	GetByTenant(ctx context.Context, tenantID int64) ([]*domain.Lease, error)

	// Create stores the lease and its tenant relations atomically
	Create(ctx context.Context, lease *domain.Lease) error

	// Update replaces the lease and its tenant relations atomically
	Update(ctx context.Context, lease *domain.Lease) error

	Delete(ctx context.Context, leaseID int64) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	GetAll(ctx context.Context) ([]*domain.Payment, error)
	GetByID(ctx context.Context, paymentID int64) (*domain.Payment, error)

	// GetByLease retrieves all payments for a lease ordered by payment date
	GetByLease(ctx context.Context, leaseID int64) ([]*domain.Payment, error)

	// GetByTenant retrieves all payments made by a tenant ordered by payment date
	GetByTenant(ctx context.Context, tenantID int64) ([]*domain.Payment, error)

	Create(ctx context.Context, payment *domain.Payment) error
	Update(ctx context.Context, payment *domain.Payment) error
	Delete(ctx context.Context, paymentID int64) error
}

// Repositories bundles one implementation of every repository
type Repositories struct {
	Properties PropertyRepository
	Units      UnitRepository
	Tenants    TenantRepository
	Leases     LeaseRepository
	Payments   PaymentRepository
}
