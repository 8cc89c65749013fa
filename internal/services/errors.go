package services

import "errors"

// Not-found errors, one per entity, so cross-entity operations report
// exactly which reference failed to resolve.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCarNotFound         = errors.New("car not found")
	ErrMechanicNotFound    = errors.New("mechanic not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// Validation errors for caller-supplied bad values.
var (
	ErrOwnershipMismatch = errors.New("car does not belong to user")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrPastDate          = errors.New("appointment date must be in the future")
	ErrInvalidStatus     = errors.New("invalid appointment status")
	ErrInvalidVIN        = errors.New("vin must be exactly 17 characters")
	ErrInvalidBirthDate  = errors.New("birth date must be in the past")
	ErrInvalidPrice      = errors.New("price must be positive")
	ErrInvalidDuration   = errors.New("duration must be positive")
	ErrInvalidRole       = errors.New("invalid role")
)

// ErrInvalidCredentials is the single login failure: an unknown
// identifier and a wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrStorage is returned when a blob-store operation fails.
var ErrStorage = errors.New("storage error")
