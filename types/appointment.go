package types

import "time"

// Appointment statuses. An appointment is created PENDING and moves to
// COMPLETED or CANCELED via an explicit status update.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusCanceled  = "CANCELED"
)

// Appointment represents a scheduled service visit. It ties together a
// user, one of their cars, a service, and optionally an assigned mechanic.
type Appointment struct {
	// ID is the unique identifier of the appointment.
	ID int `json:"id" db:"id"`

	// UserID references the booking user.
	UserID int `json:"user_id" db:"user_id"`

	// CarID references the user's car being serviced.
	CarID int `json:"car_id" db:"car_id"`

	// ServiceID references the booked service.
	ServiceID int `json:"service_id" db:"service_id"`

	// MechanicID references the assigned mechanic, if any.
	MechanicID *int `json:"mechanic_id" db:"mechanic_id"`

	// Date is the scheduled instant, stored in UTC. Strictly in the
	// future at creation time.
	Date time.Time `json:"appointment_date" db:"appointment_date"`

	// Status is one of StatusPending, StatusCompleted, StatusCanceled.
	Status string `json:"status" db:"status"`
}

// AppointmentPatch carries a partial update for an appointment. Nil fields
// are left untouched. MechanicID uses Optional so that an explicit null
// clears the assignment while an absent field keeps it.
type AppointmentPatch struct {
	UserID     *int          `json:"user_id"`
	CarID      *int          `json:"car_id"`
	ServiceID  *int          `json:"service_id"`
	MechanicID Optional[int] `json:"mechanic_id"`
	Date       *string       `json:"appointment_date"`
	Status     *string       `json:"status"`
}

// ValidStatus reports whether status is a member of the appointment
// status enum.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}
