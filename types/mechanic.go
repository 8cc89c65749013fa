package types

import "time"

// Mechanic roles. Regular mechanics work on appointments; admins
// additionally manage shop records.
const (
	RoleMechanic = "MECHANIC"
)

// Mechanic represents a shop employee who performs service work.
type Mechanic struct {
	// ID is the unique identifier of the mechanic.
	ID int `json:"id" db:"id"`

	// Name is the mechanic's full name.
	Name string `json:"name" db:"name"`

	// BirthDate is the mechanic's date of birth. Always in the past.
	BirthDate time.Time `json:"birth_date" db:"birth_date"`

	// Login is the mechanic's sign-in name. Globally unique.
	Login string `json:"login" db:"login"`

	// Role is either RoleAdmin or RoleMechanic.
	Role string `json:"role" db:"role"`

	// Position is the mechanic's job title, e.g. "senior technician".
	Position string `json:"position" db:"position"`

	// PasswordHash stores the hashed representation of the mechanic's
	// password. Never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`
}

// MechanicPatch carries a partial update for a mechanic. Nil fields are
// left untouched. BirthDate uses the same YYYY-MM-DD wire format as create.
type MechanicPatch struct {
	Name      *string `json:"name"`
	BirthDate *string `json:"birth_date"`
	Login     *string `json:"login"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
	Position  *string `json:"position"`
}

// ValidMechanicRole reports whether role is a known mechanic role.
func ValidMechanicRole(role string) bool {
	return role == RoleAdmin || role == RoleMechanic
}
