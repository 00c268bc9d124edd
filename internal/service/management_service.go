package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/segyhp/propmgmt/internal/domain"
	"github.com/segyhp/propmgmt/internal/repository"
	customError "github.com/segyhp/propmgmt/pkg/errors"
)

// ManagementService owns writes to the portfolio. It checks that every
// reference a write introduces resolves before storing it.
type ManagementService struct {
	PropertyRepo repository.PropertyRepository
	UnitRepo     repository.UnitRepository
	TenantRepo   repository.TenantRepository
	LeaseRepo    repository.LeaseRepository
	PaymentRepo  repository.PaymentRepository
}

func NewManagementService(repos *repository.Repositories) *ManagementService {
	return &ManagementService{
		PropertyRepo: repos.Properties,
		UnitRepo:     repos.Units,
		TenantRepo:   repos.Tenants,
		LeaseRepo:    repos.Leases,
		PaymentRepo:  repos.Payments,
	}
}

// Properties

func (s *ManagementService) ListProperties(ctx context.Context) ([]*domain.Property, error) {
	properties, err := s.PropertyRepo.GetAll(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return properties, nil
}

func (s *ManagementService) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	property, err := s.PropertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, customError.WrapPropertyNotFound(id))
	}
	return property, nil
}

func (s *ManagementService) CreateProperty(ctx context.Context, request *domain.PropertyRequest) (*domain.Property, error) {
	property := request.ToProperty()
	if err := s.PropertyRepo.Create(ctx, property); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return property, nil
}

func (s *ManagementService) UpdateProperty(ctx context.Context, id int64, request *domain.PropertyRequest) (*domain.Property, error) {
	property := request.ToProperty()
	property.ID = id
	if err := s.PropertyRepo.Update(ctx, property); err != nil {
		return nil, lookupError(err, customError.WrapPropertyNotFound(id))
	}
	return property, nil
}

// DeleteProperty removes a property that has no units left
func (s *ManagementService) DeleteProperty(ctx context.Context, id int64) error {
	if _, err := s.GetProperty(ctx, id); err != nil {
		return err
	}

	units, err := s.UnitRepo.GetByProperty(ctx, id)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if len(units) > 0 {
		return customError.WrapConflict(fmt.Sprintf("property %d still has %d units", id, len(units)))
	}

	if err := s.PropertyRepo.Delete(ctx, id); err != nil {
		return lookupError(err, customError.WrapPropertyNotFound(id))
	}
	return nil
}

// Units

func (s *ManagementService) ListUnits(ctx context.Context) ([]*domain.Unit, error) {
	units, err := s.UnitRepo.GetAll(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return units, nil
}

func (s *ManagementService) ListUnitsByProperty(ctx context.Context, propertyID int64) ([]*domain.Unit, error) {
	if _, err := s.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	units, err := s.UnitRepo.GetByProperty(ctx, propertyID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return units, nil
}

func (s *ManagementService) GetUnit(ctx context.Context, unitID int64) (*domain.Unit, error) {
	unit, err := s.UnitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, lookupError(err, customError.WrapUnitNotFound(unitID))
	}
	return unit, nil
}

func (s *ManagementService) CreateUnit(ctx context.Context, request *domain.UnitRequest) (*domain.Unit, error) {
	if err := s.requireProperty(ctx, request.PropertyID); err != nil {
		return nil, err
	}

	unit := request.ToUnit()
	if err := s.UnitRepo.Create(ctx, unit); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return unit, nil
}

func (s *ManagementService) UpdateUnit(ctx context.Context, unitID int64, request *domain.UnitRequest) (*domain.Unit, error) {
	if err := s.requireProperty(ctx, request.PropertyID); err != nil {
		return nil, err
	}

	unit := request.ToUnit()
	unit.UnitID = unitID
	if err := s.UnitRepo.Update(ctx, unit); err != nil {
		return nil, lookupError(err, customError.WrapUnitNotFound(unitID))
	}
	return unit, nil
}

// DeleteUnit removes a unit that no lease refers to
func (s *ManagementService) DeleteUnit(ctx context.Context, unitID int64) error {
	if _, err := s.GetUnit(ctx, unitID); err != nil {
		return err
	}

	leases, err := s.LeaseRepo.GetByUnit(ctx, unitID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if len(leases) > 0 {
		return customError.WrapConflict(fmt.Sprintf("unit %d still has %d leases", unitID, len(leases)))
	}

	if err := s.UnitRepo.Delete(ctx, unitID); err != nil {
		return lookupError(err, customError.WrapUnitNotFound(unitID))
	}
	return nil
}

// Tenants

func (s *ManagementService) ListTenants(ctx context.Context) ([]*domain.Tenant, error) {
	tenants, err := s.TenantRepo.GetAll(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return tenants, nil
}

func (s *ManagementService) ListTenantsByUnit(ctx context.Context, unitID int64) ([]*domain.Tenant, error) {
	if _, err := s.GetUnit(ctx, unitID); err != nil {
		return nil, err
	}
	tenants, err := s.TenantRepo.GetByUnit(ctx, unitID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return tenants, nil
}

func (s *ManagementService) GetTenant(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	tenant, err := s.TenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, lookupError(err, customError.WrapTenantNotFound(tenantID))
	}
	return tenant, nil
}

func (s *ManagementService) CreateTenant(ctx context.Context, request *domain.TenantRequest) (*domain.Tenant, error) {
	if err := s.requireOptionalUnit(ctx, request.UnitID); err != nil {
		return nil, err
	}

	tenant := request.ToTenant()
	if err := s.TenantRepo.Create(ctx, tenant); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return tenant, nil
}

func (s *ManagementService) UpdateTenant(ctx context.Context, tenantID int64, request *domain.TenantRequest) (*domain.Tenant, error) {
	if err := s.requireOptionalUnit(ctx, request.UnitID); err != nil {
		return nil, err
	}

	tenant := request.ToTenant()
	tenant.TenantID = tenantID
	if err := s.TenantRepo.Update(ctx, tenant); err != nil {
		return nil, lookupError(err, customError.WrapTenantNotFound(tenantID))
	}
	return tenant, nil
}

// DeleteTenant removes a tenant that is not party to any lease
func (s *ManagementService) DeleteTenant(ctx context.Context, tenantID int64) error {
	if _, err := s.GetTenant(ctx, tenantID); err != nil {
		return err
	}

	leases, err := s.LeaseRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if len(leases) > 0 {
		return customError.WrapConflict(fmt.Sprintf("tenant %d is still on %d leases", tenantID, len(leases)))
	}

	if err := s.TenantRepo.Delete(ctx, tenantID); err != nil {
		return lookupError(err, customError.WrapTenantNotFound(tenantID))
	}
	return nil
}

// Leases

func (s *ManagementService) ListLeases(ctx context.Context) ([]*domain.Lease, error) {
	leases, err := s.LeaseRepo.GetAll(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return leases, nil
}

func (s *ManagementService) ListLeasesByProperty(ctx context.Context, propertyID int64) ([]*domain.Lease, error) {
	if _, err := s.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	leases, err := s.LeaseRepo.GetByProperty(ctx, propertyID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return leases, nil
}

func (s *ManagementService) ListLeasesByUnit(ctx context.Context, unitID int64) ([]*domain.Lease, error) {
	if _, err := s.GetUnit(ctx, unitID); err != nil {
		return nil, err
	}
	leases, err := s.LeaseRepo.GetByUnit(ctx, unitID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return leases, nil
}

func (s *ManagementService) ListLeasesByTenant(ctx context.Context, tenantID int64) ([]*domain.Lease, error) {
	if _, err := s.GetTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	leases, err := s.LeaseRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return leases, nil
}

func (s *ManagementService) GetLease(ctx context.Context, leaseID int64) (*domain.Lease, error) {
	lease, err := s.LeaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, lookupError(err, customError.WrapLeaseNotFound(leaseID))
	}
	return lease, nil
}

func (s *ManagementService) CreateLease(ctx context.Context, request *domain.LeaseRequest) (*domain.Lease, error) {
	lease := request.ToLease()
	if err := s.validateLease(ctx, lease); err != nil {
		return nil, err
	}

	if err := s.LeaseRepo.Create(ctx, lease); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return lease, nil
}

func (s *ManagementService) UpdateLease(ctx context.Context, leaseID int64, request *domain.LeaseRequest) (*domain.Lease, error) {
	lease := request.ToLease()
	lease.LeaseID = leaseID
	if err := s.validateLease(ctx, lease); err != nil {
		return nil, err
	}

	if err := s.LeaseRepo.Update(ctx, lease); err != nil {
		return nil, lookupError(err, customError.WrapLeaseNotFound(leaseID))
	}
	return lease, nil
}

// DeleteLease removes a lease that has no payments recorded against it
func (s *ManagementService) DeleteLease(ctx context.Context, leaseID int64) error {
	if _, err := s.GetLease(ctx, leaseID); err != nil {
		return err
	}

	payments, err := s.PaymentRepo.GetByLease(ctx, leaseID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if len(payments) > 0 {
		return customError.WrapConflict(fmt.Sprintf("lease %d still has %d payments", leaseID, len(payments)))
	}

	if err := s.LeaseRepo.Delete(ctx, leaseID); err != nil {
		return lookupError(err, customError.WrapLeaseNotFound(leaseID))
	}
	return nil
}

// Payments

func (s *ManagementService) ListPayments(ctx context.Context) ([]*domain.Payment, error) {
	payments, err := s.PaymentRepo.GetAll(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payments, nil
}

func (s *ManagementService) ListPaymentsByLease(ctx context.Context, leaseID int64) ([]*domain.Payment, error) {
	if _, err := s.GetLease(ctx, leaseID); err != nil {
		return nil, err
	}
	payments, err := s.PaymentRepo.GetByLease(ctx, leaseID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payments, nil
}

func (s *ManagementService) ListPaymentsByTenant(ctx context.Context, tenantID int64) ([]*domain.Payment, error) {
	if _, err := s.GetTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	payments, err := s.PaymentRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payments, nil
}

func (s *ManagementService) GetPayment(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	payment, err := s.PaymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, lookupError(err, customError.WrapPaymentNotFound(paymentID))
	}
	return payment, nil
}

func (s *ManagementService) CreatePayment(ctx context.Context, request *domain.PaymentRequest) (*domain.Payment, error) {
	payment := request.ToPayment()
	if err := s.validatePayment(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.PaymentRepo.Create(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payment, nil
}

func (s *ManagementService) UpdatePayment(ctx context.Context, paymentID int64, request *domain.PaymentRequest) (*domain.Payment, error) {
	payment := request.ToPayment()
	payment.PaymentID = paymentID
	if err := s.validatePayment(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.PaymentRepo.Update(ctx, payment); err != nil {
		return nil, lookupError(err, customError.WrapPaymentNotFound(paymentID))
	}
	return payment, nil
}

func (s *ManagementService) DeletePayment(ctx context.Context, paymentID int64) error {
	if err := s.PaymentRepo.Delete(ctx, paymentID); err != nil {
		return lookupError(err, customError.WrapPaymentNotFound(paymentID))
	}
	return nil
}

// validateLease checks dates, that the unit belongs to the lease's property
// and that every tenant exists
func (s *ManagementService) validateLease(ctx context.Context, lease *domain.Lease) error {
	if lease.EndDate.Before(lease.StartDate) {
		return customError.WrapValidation("end_date must not be before start_date")
	}

	unit, err := s.UnitRepo.GetByID(ctx, lease.UnitID)
	if err != nil {
		return referenceError(err, fmt.Sprintf("unit %d does not exist", lease.UnitID))
	}
	if unit.PropertyID != lease.PropertyID {
		return customError.WrapValidation(fmt.Sprintf("unit %d does not belong to property %d", lease.UnitID, lease.PropertyID))
	}

	seen := make(map[int64]struct{}, len(lease.TenantIDs))
	for _, tenantID := range lease.TenantIDs {
		if _, dup := seen[tenantID]; dup {
			return customError.WrapValidation(fmt.Sprintf("tenant %d listed twice", tenantID))
		}
		seen[tenantID] = struct{}{}

		if _, err := s.TenantRepo.GetByID(ctx, tenantID); err != nil {
			return referenceError(err, fmt.Sprintf("tenant %d does not exist", tenantID))
		}
	}
	return nil
}

// validatePayment checks that the lease exists and the paying tenant is on it
func (s *ManagementService) validatePayment(ctx context.Context, payment *domain.Payment) error {
	lease, err := s.LeaseRepo.GetByID(ctx, payment.LeaseID)
	if err != nil {
		return referenceError(err, fmt.Sprintf("lease %d does not exist", payment.LeaseID))
	}

	if _, err := s.TenantRepo.GetByID(ctx, payment.TenantID); err != nil {
		return referenceError(err, fmt.Sprintf("tenant %d does not exist", payment.TenantID))
	}

	for _, tenantID := range lease.TenantIDs {
		if tenantID == payment.TenantID {
			return nil
		}
	}
	return customError.WrapValidation(fmt.Sprintf("tenant %d is not on lease %d", payment.TenantID, payment.LeaseID))
}

func (s *ManagementService) requireProperty(ctx context.Context, propertyID int64) error {
	if _, err := s.PropertyRepo.GetByID(ctx, propertyID); err != nil {
		return referenceError(err, fmt.Sprintf("property %d does not exist", propertyID))
	}
	return nil
}

func (s *ManagementService) requireOptionalUnit(ctx context.Context, unitID *int64) error {
	if unitID == nil {
		return nil
	}
	if _, err := s.UnitRepo.GetByID(ctx, *unitID); err != nil {
		return referenceError(err, fmt.Sprintf("unit %d does not exist", *unitID))
	}
	return nil
}

// referenceError reports a dangling reference in a write as a validation error
func referenceError(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return customError.WrapValidation(message)
	}
	return customError.WrapDatabaseError(err)
}
