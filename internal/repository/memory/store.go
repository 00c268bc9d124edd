// Package memory holds mutex-guarded in-process implementations of the
// repository interfaces, used for local runs and tests.
package memory

import (
	"sort"
	"sync"

	"github.com/segyhp/propmgmt/internal/domain"
	"github.com/segyhp/propmgmt/internal/repository"
)

// Store is the shared state behind every memory repository
type Store struct {
	mu sync.RWMutex

	properties map[int64]domain.Property
	units      map[int64]domain.Unit
	tenants    map[int64]domain.Tenant
	leases     map[int64]domain.Lease
	payments   map[int64]domain.Payment

	nextPropertyID int64
	nextUnitID     int64
	nextTenantID   int64
	nextLeaseID    int64
	nextPaymentID  int64
}

func NewStore() *Store {
	return &Store{
		properties: make(map[int64]domain.Property),
		units:      make(map[int64]domain.Unit),
		tenants:    make(map[int64]domain.Tenant),
		leases:     make(map[int64]domain.Lease),
		payments:   make(map[int64]domain.Payment),
	}
}

// NewRepositories returns every repository backed by one store
func NewRepositories(store *Store) *repository.Repositories {
	return &repository.Repositories{
		Properties: &propertyRepository{store: store},
		Units:      &unitRepository{store: store},
		Tenants:    &tenantRepository{store: store},
		Leases:     &leaseRepository{store: store},
		Payments:   &paymentRepository{store: store},
	}
}

// sortedIDs returns the keys of m in ascending order
func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func bump(next *int64, id int64) {
	if id > *next {
		*next = id
	}
}

func cloneLease(l domain.Lease) *domain.Lease {
	l.TenantIDs = append([]int64{}, l.TenantIDs...)
	return &l
}

func sortPayments(payments []*domain.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		if !payments[i].PaymentDate.Equal(payments[j].PaymentDate) {
			return payments[i].PaymentDate.Before(payments[j].PaymentDate)
		}
		return payments[i].PaymentID < payments[j].PaymentID
	})
}
