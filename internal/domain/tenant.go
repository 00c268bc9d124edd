package domain

const (
	TenantStatusActive  = "active"
	TenantStatusFormer  = "former"
	TenantStatusFuture  = "future"
	TenantStatusEvicted = "evicted"
)

// Tenant represents a person renting, or having rented, a unit
type Tenant struct {
	TenantID int64   `json:"tenant_id" db:"tenant_id"`
	Name     string  `json:"name" db:"name"`
	Email    *string `json:"email,omitempty" db:"email"`
	Phone    *string `json:"phone,omitempty" db:"phone"`
	UnitID   *int64  `json:"unit_id,omitempty" db:"unit_id"`
	Status   string  `json:"status" db:"status"`
}

func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

type TenantRequest struct {
	Name   string  `json:"name" validate:"required,max=200"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	UnitID *int64  `json:"unit_id,omitempty" validate:"omitempty,gt=0"`
	Status string  `json:"status" validate:"omitempty,oneof=active former future evicted"`
}

func (r *TenantRequest) ToTenant() *Tenant {
	status := r.Status
	if status == "" {
		status = TenantStatusActive
	}
	return &Tenant{
		Name:   r.Name,
		Email:  r.Email,
		Phone:  r.Phone,
		UnitID: r.UnitID,
		Status: status,
	}
}
