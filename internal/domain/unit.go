package domain

// Unit represents a rentable unit inside a property
type Unit struct {
	UnitID      int64    `json:"unit_id" db:"unit_id"`
	PropertyID  int64    `json:"property_id" db:"property_id"`
	UnitName    string   `json:"unit_name" db:"unit_name"`
	Description *string  `json:"description,omitempty" db:"description"`
	Beds        *int     `json:"beds,omitempty" db:"beds"`
	Baths       *float64 `json:"baths,omitempty" db:"baths"`
	SqFt        *int     `json:"sq_ft,omitempty" db:"sq_ft"`
}

type UnitRequest struct {
	PropertyID  int64    `json:"property_id" validate:"required,gt=0"`
	UnitName    string   `json:"unit_name" validate:"required,max=100"`
	Description *string  `json:"description,omitempty"`
	Beds        *int     `json:"beds,omitempty" validate:"omitempty,gte=0"`
	Baths       *float64 `json:"baths,omitempty" validate:"omitempty,gte=0"`
	SqFt        *int     `json:"sq_ft,omitempty" validate:"omitempty,gt=0"`
}

func (r *UnitRequest) ToUnit() *Unit {
	return &Unit{
		PropertyID:  r.PropertyID,
		UnitName:    r.UnitName,
		Description: r.Description,
		Beds:        r.Beds,
		Baths:       r.Baths,
		SqFt:        r.SqFt,
	}
}
