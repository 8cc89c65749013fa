package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/car-service/apiserver/types"
)

func newMockAppointmentRepo(t *testing.T) (*AppointmentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewAppointmentRepository(db), mock
}

func TestAppointmentRepositoryGetNullMechanic(t *testing.T) {
	repo, mock := newMockAppointmentRepo(t)

	date := time.Date(2026, time.September, 10, 14, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "car_id", "service_id", "mechanic_id", "appointment_date", "status"}).
		AddRow(1, 2, 3, 4, nil, date, "PENDING")
	mock.ExpectQuery(`SELECT id, user_id, car_id, service_id, mechanic_id, appointment_date, status`).
		WithArgs(1).
		WillReturnRows(rows)

	appointment, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get appointment: %v", err)
	}
	if appointment.MechanicID != nil {
		t.Fatalf("expected nil mechanic, got %v", appointment.MechanicID)
	}
	if !appointment.Date.Equal(date) {
		t.Fatalf("expected date %v, got %v", date, appointment.Date)
	}
}

func TestAppointmentRepositoryCreate(t *testing.T) {
	repo, mock := newMockAppointmentRepo(t)

	mechanicID := 7
	date := time.Date(2026, time.September, 10, 14, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO appointments`).
		WithArgs(2, 3, 4, mechanicID, date, "PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	appointment, err := repo.Create(context.Background(), types.Appointment{
		UserID:     2,
		CarID:      3,
		ServiceID:  4,
		MechanicID: &mechanicID,
		Date:       date,
		Status:     "PENDING",
	})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if appointment.ID != 11 {
		t.Fatalf("expected id 11, got %d", appointment.ID)
	}
}

func TestAppointmentRepositoryUpdateStatus(t *testing.T) {
	repo, mock := newMockAppointmentRepo(t)

	mock.ExpectExec(`UPDATE appointments SET status`).
		WithArgs("COMPLETED", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(context.Background(), 1, "COMPLETED"); err != nil {
		t.Fatalf("update status: %v", err)
	}
}

func TestAppointmentRepositoryUpdateStatusNotFound(t *testing.T) {
	repo, mock := newMockAppointmentRepo(t)

	mock.ExpectExec(`UPDATE appointments SET status`).
		WithArgs("CANCELED", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateStatus(context.Background(), 99, "CANCELED"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAppointmentRepositoryList(t *testing.T) {
	repo, mock := newMockAppointmentRepo(t)

	mock.ExpectQuery(`SELECT id, user_id, car_id, service_id, mechanic_id, appointment_date, status`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "car_id", "service_id", "mechanic_id", "appointment_date", "status"}))

	appointments, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list appointments: %v", err)
	}
	if appointments == nil {
		t.Fatal("expected empty slice, not nil")
	}
	if len(appointments) != 0 {
		t.Fatalf("expected no appointments, got %d", len(appointments))
	}
}
