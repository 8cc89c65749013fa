package types

// Service represents an offered repair or maintenance service.
type Service struct {
	// ID is the unique identifier of the service.
	ID int `json:"id" db:"id"`

	// Name is the service name, e.g. "Oil change". Globally unique.
	Name string `json:"name" db:"name"`

	// Description is a free-form description of the work performed.
	Description string `json:"description" db:"description"`

	// Price is the cost of the service. Always positive.
	Price float64 `json:"price" db:"price"`

	// Duration is the expected duration in minutes. Always positive.
	Duration int `json:"duration" db:"duration"`
}

// ServicePatch carries a partial update for a service. Nil fields are
// left untouched.
type ServicePatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"`
}
