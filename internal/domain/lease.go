package domain

import (
	"github.com/shopspring/decimal"
)

const (
	LeaseStatusDraft      = "draft"
	LeaseStatusActive     = "active"
	LeaseStatusExpired    = "expired"
	LeaseStatusTerminated = "terminated"
)

// Lease is a rental agreement for one unit at a fixed monthly rent
type Lease struct {
	LeaseID    int64           `json:"lease_id" db:"lease_id"`
	PropertyID int64           `json:"property_id" db:"property_id"`
	UnitID     int64           `json:"unit_id" db:"unit_id"`
	RentAmount decimal.Decimal `json:"rent_amount" db:"rent_amount"`
	StartDate  Date            `json:"start_date" db:"start_date"`
	EndDate    Date            `json:"end_date" db:"end_date"`
	Status     string          `json:"status" db:"status"`
	TenantIDs  []int64         `json:"tenant_ids" db:"-"`
}

func (l *Lease) IsActive() bool {
	return l.Status == LeaseStatusActive
}

type LeaseRequest struct {
	PropertyID int64           `json:"property_id" validate:"required,gt=0"`
	UnitID     int64           `json:"unit_id" validate:"required,gt=0"`
	RentAmount decimal.Decimal `json:"rent_amount" validate:"decimal_gt=0"`
	StartDate  Date            `json:"start_date" validate:"required"`
	EndDate    Date            `json:"end_date" validate:"required"`
	Status     string          `json:"status" validate:"omitempty,oneof=draft active expired terminated"`
	TenantIDs  []int64         `json:"tenant_ids" validate:"required,min=1,dive,gt=0"`
}

func (r *LeaseRequest) ToLease() *Lease {
	status := r.Status
	if status == "" {
		status = LeaseStatusActive
	}
	return &Lease{
		PropertyID: r.PropertyID,
		UnitID:     r.UnitID,
		RentAmount: r.RentAmount,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Status:     status,
		TenantIDs:  append([]int64(nil), r.TenantIDs...),
	}
}
