package service

import (
	"context"
	"errors"
	"testing"

	"github.com/segyhp/propmgmt/internal/domain"
	"github.com/segyhp/propmgmt/internal/repository/memory"
	"github.com/segyhp/propmgmt/internal/repository/mocks"
	customError "github.com/segyhp/propmgmt/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleManagementService() *ManagementService {
	return NewManagementService(memory.NewRepositories(memory.NewSampleStore()))
}

func leaseRequest(propertyID, unitID int64, tenantIDs ...int64) *domain.LeaseRequest {
	return &domain.LeaseRequest{
		PropertyID: propertyID,
		UnitID:     unitID,
		RentAmount: decimal.NewFromInt(1100),
		StartDate:  domain.NewDate(2024, 1, 1),
		EndDate:    domain.NewDate(2025, 1, 1),
		TenantIDs:  tenantIDs,
	}
}

func TestCreateUnit(t *testing.T) {
	ctx := context.Background()
	svc := sampleManagementService()

	unit, err := svc.CreateUnit(ctx, &domain.UnitRequest{PropertyID: 2, UnitName: "202"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), unit.UnitID)

	units, err := svc.ListUnitsByProperty(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, units, 2)

	_, err = svc.CreateUnit(ctx, &domain.UnitRequest{PropertyID: 99, UnitName: "X"})
	assert.ErrorIs(t, err, customError.ErrValidation)
}

func TestCreateLease(t *testing.T) {
	ctx := context.Background()
	svc := sampleManagementService()

	lease, err := svc.CreateLease(ctx, leaseRequest(1, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, domain.LeaseStatusActive, lease.Status)
	assert.Equal(t, []int64{1}, lease.TenantIDs)

	leases, err := svc.ListLeasesByTenant(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, leases, 2)
}

func TestCreateLease_Validation(t *testing.T) {
	ctx := context.Background()
	svc := sampleManagementService()

	tests := []struct {
		name    string
		request *domain.LeaseRequest
	}{
		{"unit in another property", leaseRequest(2, 1, 1)},
		{"missing unit", leaseRequest(1, 99, 1)},
		{"missing tenant", leaseRequest(1, 1, 99)},
		{"duplicate tenant", leaseRequest(1, 1, 1, 1)},
		{"end before start", func() *domain.LeaseRequest {
			r := leaseRequest(1, 1, 1)
			r.EndDate = domain.NewDate(2023, 6, 1)
			return r
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateLease(ctx, tt.request)
			assert.ErrorIs(t, err, customError.ErrValidation)
		})
	}
}

func TestUpdateLease_NotFound(t *testing.T) {
	svc := sampleManagementService()

	_, err := svc.UpdateLease(context.Background(), 99, leaseRequest(1, 1, 1))
	assert.ErrorIs(t, err, customError.ErrLeaseNotFound)
}

func TestCreatePayment(t *testing.T) {
	ctx := context.Background()
	svc := sampleManagementService()

	request := &domain.PaymentRequest{
		LeaseID:       1,
		TenantID:      1,
		Amount:        decimal.NewFromInt(1200),
		PaymentDate:   domain.NewDate(2023, 2, 4),
		PaymentMethod: domain.PaymentMethodCheck,
	}

	payment, err := svc.CreatePayment(ctx, request)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentTypeRent, payment.PaymentType)
	assert.Equal(t, int64(4), payment.PaymentID)

	request.TenantID = 2
	_, err = svc.CreatePayment(ctx, request)
	assert.ErrorIs(t, err, customError.ErrValidation)

	request.LeaseID = 99
	_, err = svc.CreatePayment(ctx, request)
	assert.ErrorIs(t, err, customError.ErrValidation)
}

func TestDelete_Conflicts(t *testing.T) {
	ctx := context.Background()
	svc := sampleManagementService()

	assert.ErrorIs(t, svc.DeleteProperty(ctx, 1), customError.ErrConflict)
	assert.ErrorIs(t, svc.DeleteUnit(ctx, 1), customError.ErrConflict)
	assert.ErrorIs(t, svc.DeleteTenant(ctx, 1), customError.ErrConflict)
	assert.ErrorIs(t, svc.DeleteLease(ctx, 1), customError.ErrConflict)
}

func TestDelete_Cascade(t *testing.T) {
	ctx := context.Background()
	svc := sampleManagementService()

	require.NoError(t, svc.DeletePayment(ctx, 3))
	require.NoError(t, svc.DeleteLease(ctx, 3))
	require.NoError(t, svc.DeleteUnit(ctx, 3))
	require.NoError(t, svc.DeleteProperty(ctx, 2))

	_, err := svc.GetProperty(ctx, 2)
	assert.ErrorIs(t, err, customError.ErrPropertyNotFound)

	assert.ErrorIs(t, svc.DeletePayment(ctx, 3), customError.ErrPaymentNotFound)
}

func TestRelationListings_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := sampleManagementService()

	_, err := svc.ListUnitsByProperty(ctx, 99)
	assert.ErrorIs(t, err, customError.ErrPropertyNotFound)

	_, err = svc.ListTenantsByUnit(ctx, 99)
	assert.ErrorIs(t, err, customError.ErrUnitNotFound)

	_, err = svc.ListLeasesByUnit(ctx, 99)
	assert.ErrorIs(t, err, customError.ErrUnitNotFound)

	_, err = svc.ListPaymentsByLease(ctx, 99)
	assert.ErrorIs(t, err, customError.ErrLeaseNotFound)

	_, err = svc.ListPaymentsByTenant(ctx, 99)
	assert.ErrorIs(t, err, customError.ErrTenantNotFound)
}

func TestCreateTenant_UnknownUnit(t *testing.T) {
	unitID := int64(99)
	_, err := sampleManagementService().CreateTenant(context.Background(), &domain.TenantRequest{Name: "Ann", UnitID: &unitID})
	assert.ErrorIs(t, err, customError.ErrValidation)
}

func TestCreateProperty_DatabaseError(t *testing.T) {
	repos := mocks.NewRepositories()
	svc := NewManagementService(repos.Bundle())

	dbErr := errors.New("disk full")
	repos.Properties.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Property) bool {
		return p.Name == "Harbor Lofts"
	})).Return(dbErr)

	_, err := svc.CreateProperty(context.Background(), &domain.PropertyRequest{Name: "Harbor Lofts", Address: "1 Pier St"})
	assert.ErrorIs(t, err, dbErr)

	var be *customError.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, customError.ErrCodeDatabaseError, be.Code)
	repos.AssertExpectations(t)
}
