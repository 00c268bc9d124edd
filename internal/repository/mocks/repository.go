// Package mocks provides testify mocks of the repository interfaces
package mocks

import (
	"context"

	"github.com/segyhp/propmgmt/internal/domain"
	"github.com/segyhp/propmgmt/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) GetAll(ctx context.Context) ([]*domain.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) GetAll(ctx context.Context) ([]*domain.Unit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) GetByID(ctx context.Context, unitID int64) (*domain.Unit, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) GetByProperty(ctx context.Context, propertyID int64) ([]*domain.Unit, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) Update(ctx context.Context, unit *domain.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, unitID int64) error {
	args := m.Called(ctx, unitID)
	return args.Error(0)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) GetAll(ctx context.Context) ([]*domain.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetByUnit(ctx context.Context, unitID int64) ([]*domain.Tenant, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, tenantID int64) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) GetAll(ctx context.Context) ([]*domain.Lease, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lease), args.Error(1)
}

func (m *MockLeaseRepository) GetByID(ctx context.Context, leaseID int64) (*domain.Lease, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}

func (m *MockLeaseRepository) GetByProperty(ctx context.Context, propertyID int64) ([]*domain.Lease, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lease), args.Error(1)
}

func (m *MockLeaseRepository) GetByUnit(ctx context.Context, unitID int64) ([]*domain.Lease, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lease), args.Error(1)
}

func (m *MockLeaseRepository) GetByTenant(ctx context.Context, tenantID int64) ([]*domain.Lease, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lease), args.Error(1)
}

func (m *MockLeaseRepository) Create(ctx context.Context, lease *domain.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *MockLeaseRepository) Update(ctx context.Context, lease *domain.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *MockLeaseRepository) Delete(ctx context.Context, leaseID int64) error {
	args := m.Called(ctx, leaseID)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetAll(ctx context.Context) ([]*domain.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByLease(ctx context.Context, leaseID int64) ([]*domain.Payment, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByTenant(ctx context.Context, tenantID int64) ([]*domain.Payment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, paymentID int64) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

// Repositories holds one mock per repository
type Repositories struct {
	Properties *MockPropertyRepository
	Units      *MockUnitRepository
	Tenants    *MockTenantRepository
	Leases     *MockLeaseRepository
	Payments   *MockPaymentRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Properties: new(MockPropertyRepository),
		Units:      new(MockUnitRepository),
		Tenants:    new(MockTenantRepository),
		Leases:     new(MockLeaseRepository),
		Payments:   new(MockPaymentRepository),
	}
}

// Bundle exposes the mocks through the repository interfaces
func (r *Repositories) Bundle() *repository.Repositories {
	return &repository.Repositories{
		Properties: r.Properties,
		Units:      r.Units,
		Tenants:    r.Tenants,
		Leases:     r.Leases,
		Payments:   r.Payments,
	}
}

func (r *Repositories) AssertExpectations(t mock.TestingT) {
	r.Properties.AssertExpectations(t)
	r.Units.AssertExpectations(t)
	r.Tenants.AssertExpectations(t)
	r.Leases.AssertExpectations(t)
	r.Payments.AssertExpectations(t)
}
