package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/car-service/apiserver/internal/notifier"
	"github.com/car-service/apiserver/internal/store"
	"github.com/car-service/apiserver/types"
	"go.uber.org/zap"
)

const (
	confirmationSubject = "Appointment Confirmation"
	notifyTimeout       = 15 * time.Second
)

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	List(ctx context.Context) ([]types.Appointment, error)
	Get(ctx context.Context, id int) (types.Appointment, error)
	Create(ctx context.Context, appointment types.Appointment) (types.Appointment, error)
	Update(ctx context.Context, appointment types.Appointment) (types.Appointment, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error
}

// CreateAppointment is the input for booking a service visit. Date is
// the raw timestamp string as received, parsed and validated here.
type CreateAppointment struct {
	UserID     int
	CarID      int
	ServiceID  int
	MechanicID *int
	Date       string
	Status     string
}

// AppointmentService enforces cross-entity validation and lifecycle for
// scheduled service visits. Every operation re-reads current entity
// state; nothing is cached across requests.
type AppointmentService struct {
	repo      AppointmentRepository
	users     UserRepository
	cars      CarRepository
	catalog   ServiceRepository
	mechanics MechanicRepository
	notify    notifier.Notifier
	logger    *zap.Logger
}

func NewAppointmentService(
	repo AppointmentRepository,
	users UserRepository,
	cars CarRepository,
	catalog ServiceRepository,
	mechanics MechanicRepository,
	notify notifier.Notifier,
	logger *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:      repo,
		users:     users,
		cars:      cars,
		catalog:   catalog,
		mechanics: mechanics,
		notify:    notify,
		logger:    logger,
	}
}

func (s *AppointmentService) List(ctx context.Context) ([]types.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *AppointmentService) Get(ctx context.Context, id int) (types.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Appointment{}, ErrAppointmentNotFound
		}
		return types.Appointment{}, err
	}
	return appointment, nil
}

// Create books an appointment. Each validation step short-circuits and
// runs before any write: user, car and ownership, service, optional
// mechanic, then the timestamp, which must parse and lie strictly in the
// future. The confirmation email is sent best-effort after the row is
// committed and never fails the booking.
func (s *AppointmentService) Create(ctx context.Context, input CreateAppointment) (types.Appointment, error) {
	user, err := s.users.Get(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Appointment{}, ErrUserNotFound
		}
		return types.Appointment{}, err
	}

	car, err := s.cars.Get(ctx, input.CarID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Appointment{}, ErrCarNotFound
		}
		return types.Appointment{}, err
	}
	if car.UserID != input.UserID {
		return types.Appointment{}, ErrOwnershipMismatch
	}

	service, err := s.catalog.Get(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Appointment{}, ErrServiceNotFound
		}
		return types.Appointment{}, err
	}

	if input.MechanicID != nil {
		if _, err := s.mechanics.Get(ctx, *input.MechanicID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return types.Appointment{}, ErrMechanicNotFound
			}
			return types.Appointment{}, err
		}
	}

	date, err := parseFutureDate(input.Date)
	if err != nil {
		return types.Appointment{}, err
	}

	status := input.Status
	if status == "" {
		status = types.StatusPending
	}
	if !types.ValidStatus(status) {
		return types.Appointment{}, ErrInvalidStatus
	}

	appointment, err := s.repo.Create(ctx, types.Appointment{
		UserID:     input.UserID,
		CarID:      input.CarID,
		ServiceID:  input.ServiceID,
		MechanicID: input.MechanicID,
		Date:       date,
		Status:     status,
	})
	if err != nil {
		return types.Appointment{}, err
	}

	s.sendConfirmation(user, service, date)
	return appointment, nil
}

// Update applies a partial update, re-resolving only the fields being
// changed. A new date goes through the same parse and future checks as
// on create.
func (s *AppointmentService) Update(ctx context.Context, id int, patch types.AppointmentPatch) (types.Appointment, error) {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return types.Appointment{}, err
	}

	if patch.UserID != nil && *patch.UserID != appointment.UserID {
		if _, err := s.users.Get(ctx, *patch.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return types.Appointment{}, ErrUserNotFound
			}
			return types.Appointment{}, err
		}
		appointment.UserID = *patch.UserID
	}
	if patch.CarID != nil {
		appointment.CarID = *patch.CarID
	}
	if patch.UserID != nil || patch.CarID != nil {
		car, err := s.cars.Get(ctx, appointment.CarID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return types.Appointment{}, ErrCarNotFound
			}
			return types.Appointment{}, err
		}
		if car.UserID != appointment.UserID {
			return types.Appointment{}, ErrOwnershipMismatch
		}
	}
	if patch.ServiceID != nil && *patch.ServiceID != appointment.ServiceID {
		if _, err := s.catalog.Get(ctx, *patch.ServiceID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return types.Appointment{}, ErrServiceNotFound
			}
			return types.Appointment{}, err
		}
		appointment.ServiceID = *patch.ServiceID
	}
	if patch.MechanicID.Set {
		if patch.MechanicID.Valid {
			if _, err := s.mechanics.Get(ctx, patch.MechanicID.Value); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return types.Appointment{}, ErrMechanicNotFound
				}
				return types.Appointment{}, err
			}
			mechanicID := patch.MechanicID.Value
			appointment.MechanicID = &mechanicID
		} else {
			appointment.MechanicID = nil
		}
	}
	if patch.Date != nil {
		date, err := parseFutureDate(*patch.Date)
		if err != nil {
			return types.Appointment{}, err
		}
		appointment.Date = date
	}
	if patch.Status != nil {
		if !types.ValidStatus(*patch.Status) {
			return types.Appointment{}, ErrInvalidStatus
		}
		appointment.Status = *patch.Status
	}

	updated, err := s.repo.Update(ctx, appointment)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Appointment{}, ErrAppointmentNotFound
		}
		return types.Appointment{}, err
	}
	return updated, nil
}

// UpdateStatus sets the appointment status. Only enum membership is
// checked; any status may currently be set from any status.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id int, status string) (types.Appointment, error) {
	if !types.ValidStatus(status) {
		return types.Appointment{}, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Appointment{}, ErrAppointmentNotFound
		}
		return types.Appointment{}, err
	}
	return s.Get(ctx, id)
}

func (s *AppointmentService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}
	return nil
}

// sendConfirmation delivers the confirmation email off the request path.
// Failures are logged, never surfaced: the appointment is already booked.
func (s *AppointmentService) sendConfirmation(user types.User, service types.Service, date time.Time) {
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment has been confirmed:\nDate: %s\nService: %s\nThank you for choosing our service!",
		user.Name,
		date.Format("2006-01-02 15:04:05"),
		service.Name,
	)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notify.Notify(ctx, user.Email, confirmationSubject, body); err != nil {
			s.logger.Error("appointment confirmation failed",
				zap.String("to", user.Email),
				zap.Error(err))
		}
	}()
}

// parseFutureDate parses an RFC 3339 timestamp and requires it to lie
// strictly after the current UTC instant.
func parseFutureDate(raw string) (time.Time, error) {
	date, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	date = date.UTC()
	if !date.After(time.Now().UTC()) {
		return time.Time{}, ErrPastDate
	}
	return date, nil
}
