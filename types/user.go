package types

// User roles. Customers book appointments; admins manage the shop.
const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// User represents a customer account in the system.
// It contains identity, role, and credential metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Name is the user's display name. Globally unique.
	Name string `json:"name" db:"name"`

	// Email is the user's email address. Globally unique and used
	// as the login identifier.
	Email string `json:"email" db:"email"`

	// Role indicates the user's authorization level,
	// either RoleAdmin or RoleCustomer.
	Role string `json:"role" db:"role"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`
}

// UserPatch carries a partial update for a user. Nil fields are left
// untouched.
type UserPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// ValidUserRole reports whether role is a known user role.
func ValidUserRole(role string) bool {
	return role == RoleAdmin || role == RoleCustomer
}
