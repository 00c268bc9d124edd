package domain

// Property represents a managed building or lot
type Property struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Address string `json:"address" db:"address"`
}

type PropertyRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"required,max=500"`
}

func (r *PropertyRequest) ToProperty() *Property {
	return &Property{
		Name:    r.Name,
		Address: r.Address,
	}
}
