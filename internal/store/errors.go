package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Duplicate errors, one per uniqueness constraint. The service layer
// returns these from its explicit pre-checks; the repositories return
// the same sentinels when the database constraint fires, so concurrent
// writers racing past the pre-check still get a stable error.
var (
	ErrDuplicateEmail        = errors.New("email already exists")
	ErrDuplicateName         = errors.New("name already exists")
	ErrDuplicatePlate        = errors.New("plate number already exists")
	ErrDuplicateVIN          = errors.New("vin already exists")
	ErrDuplicateLogin        = errors.New("login already exists")
	ErrDuplicateServiceName  = errors.New("service name already exists")
	ErrDuplicateDocumentType = errors.New("document type already exists for mechanic")
	ErrDuplicateFileKey      = errors.New("file already exists")
)

const uniqueViolation = "23505"

// mapUniqueViolation translates a postgres unique-violation error into
// the matching duplicate sentinel, keyed by constraint name. Other
// errors pass through unchanged.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return err
	}
	switch pqErr.Constraint {
	case "users_email_key":
		return ErrDuplicateEmail
	case "users_name_key":
		return ErrDuplicateName
	case "cars_plate_number_key":
		return ErrDuplicatePlate
	case "cars_vin_key":
		return ErrDuplicateVIN
	case "mechanics_login_key":
		return ErrDuplicateLogin
	case "services_name_key":
		return ErrDuplicateServiceName
	case "documents_mechanic_type_key":
		return ErrDuplicateDocumentType
	case "documents_file_key_key":
		return ErrDuplicateFileKey
	}
	return err
}
