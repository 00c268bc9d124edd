package memory

import (
	"time"

	"github.com/segyhp/propmgmt/internal/domain"

	"github.com/shopspring/decimal"
)

// Seed loads the given entities into the store keeping their ids.
// Later creates continue after the highest seeded id.
func (s *Store) Seed(
	properties []domain.Property,
	units []domain.Unit,
	tenants []domain.Tenant,
	leases []domain.Lease,
	payments []domain.Payment,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range properties {
		s.properties[p.ID] = p
		bump(&s.nextPropertyID, p.ID)
	}
	for _, u := range units {
		s.units[u.UnitID] = u
		bump(&s.nextUnitID, u.UnitID)
	}
	for _, t := range tenants {
		s.tenants[t.TenantID] = t
		bump(&s.nextTenantID, t.TenantID)
	}
	for _, l := range leases {
		s.leases[l.LeaseID] = *cloneLease(l)
		bump(&s.nextLeaseID, l.LeaseID)
	}
	for _, p := range payments {
		s.payments[p.PaymentID] = p
		bump(&s.nextPaymentID, p.PaymentID)
	}
}

// NewSampleStore returns a store holding the demo portfolio: two properties,
// three occupied units, one active lease per unit and the first month's rent
// paid on each.
func NewSampleStore() *Store {
	store := NewStore()
	store.Seed(SampleData())
	return store
}

// SampleData returns the demo portfolio entities
func SampleData() ([]domain.Property, []domain.Unit, []domain.Tenant, []domain.Lease, []domain.Payment) {
	properties := []domain.Property{
		{ID: 1, Name: "Sunset Apartments", Address: "123 Sunset Blvd, Los Angeles, CA 90001"},
		{ID: 2, Name: "Ocean View Condos", Address: "456 Beach Ave, San Diego, CA 92101"},
	}

	units := []domain.Unit{
		{UnitID: 1, PropertyID: 1, UnitName: "101", Beds: intPtr(2), Baths: floatPtr(1), SqFt: intPtr(850)},
		{UnitID: 2, PropertyID: 1, UnitName: "102", Beds: intPtr(1), Baths: floatPtr(1), SqFt: intPtr(650)},
		{UnitID: 3, PropertyID: 2, UnitName: "201", Beds: intPtr(3), Baths: floatPtr(2), SqFt: intPtr(1200)},
	}

	tenants := []domain.Tenant{
		{TenantID: 1, Name: "John Smith", Email: strPtr("john.smith@example.com"), Phone: strPtr("555-123-4567"), UnitID: int64Ptr(1), Status: domain.TenantStatusActive},
		{TenantID: 2, Name: "Jane Doe", Email: strPtr("jane.doe@example.com"), Phone: strPtr("555-987-6543"), UnitID: int64Ptr(2), Status: domain.TenantStatusActive},
		{TenantID: 3, Name: "Bob Johnson", Email: strPtr("bob.johnson@example.com"), Phone: strPtr("555-321-7654"), UnitID: int64Ptr(3), Status: domain.TenantStatusActive},
	}

	leases := []domain.Lease{
		sampleLease(1, 1, 1, 1, 1200, time.January),
		sampleLease(2, 1, 2, 2, 1000, time.February),
		sampleLease(3, 2, 3, 3, 1500, time.March),
	}

	payments := []domain.Payment{
		samplePayment(1, 1, 1, 1200, domain.NewDate(2023, time.January, 5), domain.PaymentMethodCheck),
		samplePayment(2, 2, 2, 1000, domain.NewDate(2023, time.February, 3), domain.PaymentMethodBankTransfer),
		samplePayment(3, 3, 3, 1500, domain.NewDate(2023, time.March, 2), domain.PaymentMethodCreditCard),
	}

	return properties, units, tenants, leases, payments
}

func sampleLease(id, propertyID, unitID, tenantID int64, rent int64, startMonth time.Month) domain.Lease {
	return domain.Lease{
		LeaseID:    id,
		PropertyID: propertyID,
		UnitID:     unitID,
		RentAmount: decimal.NewFromInt(rent),
		StartDate:  domain.NewDate(2023, startMonth, 1),
		EndDate:    domain.NewDate(2024, startMonth, 1),
		Status:     domain.LeaseStatusActive,
		TenantIDs:  []int64{tenantID},
	}
}

func samplePayment(id, leaseID, tenantID int64, amount int64, date domain.Date, method string) domain.Payment {
	return domain.Payment{
		PaymentID:     id,
		LeaseID:       leaseID,
		TenantID:      tenantID,
		Amount:        decimal.NewFromInt(amount),
		PaymentDate:   date,
		PaymentMethod: method,
		PaymentType:   domain.PaymentTypeRent,
		Memo:          strPtr("First month's rent"),
	}
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func int64Ptr(i int64) *int64     { return &i }
func floatPtr(f float64) *float64 { return &f }
