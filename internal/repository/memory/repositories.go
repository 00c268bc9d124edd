package memory

import (
	"context"

	"github.com/segyhp/propmgmt/internal/domain"
	"github.com/segyhp/propmgmt/internal/repository"
)

type propertyRepository struct {
	store *Store
}

func (r *propertyRepository) GetAll(ctx context.Context) ([]*domain.Property, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	properties := make([]*domain.Property, 0, len(r.store.properties))
	for _, id := range sortedIDs(r.store.properties) {
		p := r.store.properties[id]
		properties = append(properties, &p)
	}
	return properties, nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.properties[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextPropertyID++
	property.ID = r.store.nextPropertyID
	r.store.properties[property.ID] = *property
	return nil
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.properties[property.ID]; !ok {
		return repository.ErrNotFound
	}
	r.store.properties[property.ID] = *property
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.properties[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.properties, id)
	return nil
}

type unitRepository struct {
	store *Store
}

func (r *unitRepository) GetAll(ctx context.Context) ([]*domain.Unit, error) {
	return r.filter(func(*domain.Unit) bool { return true }), nil
}

func (r *unitRepository) GetByID(ctx context.Context, unitID int64) (*domain.Unit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.units[unitID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *unitRepository) GetByProperty(ctx context.Context, propertyID int64) ([]*domain.Unit, error) {
	return r.filter(func(u *domain.Unit) bool { return u.PropertyID == propertyID }), nil
}

func (r *unitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextUnitID++
	unit.UnitID = r.store.nextUnitID
	r.store.units[unit.UnitID] = *unit
	return nil
}

func (r *unitRepository) Update(ctx context.Context, unit *domain.Unit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.units[unit.UnitID]; !ok {
		return repository.ErrNotFound
	}
	r.store.units[unit.UnitID] = *unit
	return nil
}

func (r *unitRepository) Delete(ctx context.Context, unitID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.units[unitID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.units, unitID)
	return nil
}

func (r *unitRepository) filter(keep func(*domain.Unit) bool) []*domain.Unit {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	units := []*domain.Unit{}
	for _, id := range sortedIDs(r.store.units) {
		u := r.store.units[id]
		if keep(&u) {
			units = append(units, &u)
		}
	}
	return units
}

type tenantRepository struct {
	store *Store
}

func (r *tenantRepository) GetAll(ctx context.Context) ([]*domain.Tenant, error) {
	return r.filter(func(*domain.Tenant) bool { return true }), nil
}

func (r *tenantRepository) GetByID(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.tenants[tenantID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *tenantRepository) GetByUnit(ctx context.Context, unitID int64) ([]*domain.Tenant, error) {
	return r.filter(func(t *domain.Tenant) bool {
		return t.UnitID != nil && *t.UnitID == unitID
	}), nil
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextTenantID++
	tenant.TenantID = r.store.nextTenantID
	r.store.tenants[tenant.TenantID] = *tenant
	return nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tenants[tenant.TenantID]; !ok {
		return repository.ErrNotFound
	}
	r.store.tenants[tenant.TenantID] = *tenant
	return nil
}

func (r *tenantRepository) Delete(ctx context.Context, tenantID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tenants[tenantID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.tenants, tenantID)
	return nil
}

func (r *tenantRepository) filter(keep func(*domain.Tenant) bool) []*domain.Tenant {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tenants := []*domain.Tenant{}
	for _, id := range sortedIDs(r.store.tenants) {
		t := r.store.tenants[id]
		if keep(&t) {
			tenants = append(tenants, &t)
		}
	}
	return tenants
}

type leaseRepository struct {
	store *Store
}

func (r *leaseRepository) GetAll(ctx context.Context) ([]*domain.Lease, error) {
	return r.filter(func(*domain.Lease) bool { return true }), nil
}

func (r *leaseRepository) GetByID(ctx context.Context, leaseID int64) (*domain.Lease, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	l, ok := r.store.leases[leaseID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneLease(l), nil
}

func (r *leaseRepository) GetByProperty(ctx context.Context, propertyID int64) ([]*domain.Lease, error) {
	return r.filter(func(l *domain.Lease) bool { return l.PropertyID == propertyID }), nil
}

func (r *leaseRepository) GetByUnit(ctx context.Context, unitID int64) ([]*domain.Lease, error) {
	return r.filter(func(l *domain.Lease) bool { return l.UnitID == unitID }), nil
}

func (r *leaseRepository) GetByTenant(ctx context.Context, tenantID int64) ([]*domain.Lease, error) {
	return r.filter(func(l *domain.Lease) bool {
		for _, id := range l.TenantIDs {
			if id == tenantID {
				return true
			}
		}
		return false
	}), nil
}

func (r *leaseRepository) Create(ctx context.Context, lease *domain.Lease) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextLeaseID++
	lease.LeaseID = r.store.nextLeaseID
	r.store.leases[lease.LeaseID] = *cloneLease(*lease)
	return nil
}

func (r *leaseRepository) Update(ctx context.Context, lease *domain.Lease) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.leases[lease.LeaseID]; !ok {
		return repository.ErrNotFound
	}
	r.store.leases[lease.LeaseID] = *cloneLease(*lease)
	return nil
}

func (r *leaseRepository) Delete(ctx context.Context, leaseID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.leases[leaseID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.leases, leaseID)
	return nil
}

func (r *leaseRepository) filter(keep func(*domain.Lease) bool) []*domain.Lease {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	leases := []*domain.Lease{}
	for _, id := range sortedIDs(r.store.leases) {
		l := r.store.leases[id]
		if keep(&l) {
			leases = append(leases, cloneLease(l))
		}
	}
	return leases
}

type paymentRepository struct {
	store *Store
}

func (r *paymentRepository) GetAll(ctx context.Context) ([]*domain.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	payments := make([]*domain.Payment, 0, len(r.store.payments))
	for _, id := range sortedIDs(r.store.payments) {
		p := r.store.payments[id]
		payments = append(payments, &p)
	}
	return payments, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.payments[paymentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *paymentRepository) GetByLease(ctx context.Context, leaseID int64) ([]*domain.Payment, error) {
	return r.filter(func(p *domain.Payment) bool { return p.LeaseID == leaseID }), nil
}

func (r *paymentRepository) GetByTenant(ctx context.Context, tenantID int64) ([]*domain.Payment, error) {
	return r.filter(func(p *domain.Payment) bool { return p.TenantID == tenantID }), nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextPaymentID++
	payment.PaymentID = r.store.nextPaymentID
	r.store.payments[payment.PaymentID] = *payment
	return nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.payments[payment.PaymentID]; !ok {
		return repository.ErrNotFound
	}
	r.store.payments[payment.PaymentID] = *payment
	return nil
}

func (r *paymentRepository) Delete(ctx context.Context, paymentID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.payments[paymentID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.payments, paymentID)
	return nil
}

// filter returns matching payments ordered by payment date
func (r *paymentRepository) filter(keep func(*domain.Payment) bool) []*domain.Payment {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	payments := []*domain.Payment{}
	for _, id := range sortedIDs(r.store.payments) {
		p := r.store.payments[id]
		if keep(&p) {
			payments = append(payments, &p)
		}
	}
	sortPayments(payments)
	return payments
}
