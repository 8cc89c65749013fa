package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/car-service/apiserver/types"
)

// AppointmentRepository handles persistence for appointments.
type AppointmentRepository struct {
	db *sql.DB
}

func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) List(ctx context.Context) ([]types.Appointment, error) {
	const query = `
		SELECT id, user_id, car_id, service_id, mechanic_id, appointment_date, status
		FROM appointments
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]types.Appointment, 0)
	for rows.Next() {
		var appointment types.Appointment
		if err := rows.Scan(
			&appointment.ID,
			&appointment.UserID,
			&appointment.CarID,
			&appointment.ServiceID,
			&appointment.MechanicID,
			&appointment.Date,
			&appointment.Status,
		); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	return appointments, rows.Err()
}

func (r *AppointmentRepository) Get(ctx context.Context, id int) (types.Appointment, error) {
	const query = `
		SELECT id, user_id, car_id, service_id, mechanic_id, appointment_date, status
		FROM appointments
		WHERE id = $1`
	var appointment types.Appointment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&appointment.ID,
		&appointment.UserID,
		&appointment.CarID,
		&appointment.ServiceID,
		&appointment.MechanicID,
		&appointment.Date,
		&appointment.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Appointment{}, ErrNotFound
		}
		return types.Appointment{}, err
	}
	return appointment, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment types.Appointment) (types.Appointment, error) {
	const query = `
		INSERT INTO appointments (user_id, car_id, service_id, mechanic_id, appointment_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		appointment.UserID,
		appointment.CarID,
		appointment.ServiceID,
		appointment.MechanicID,
		appointment.Date,
		appointment.Status,
	).Scan(&appointment.ID); err != nil {
		return types.Appointment{}, err
	}
	return appointment, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, appointment types.Appointment) (types.Appointment, error) {
	const query = `
		UPDATE appointments
		SET user_id = $1,
			car_id = $2,
			service_id = $3,
			mechanic_id = $4,
			appointment_date = $5,
			status = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		appointment.UserID,
		appointment.CarID,
		appointment.ServiceID,
		appointment.MechanicID,
		appointment.Date,
		appointment.Status,
		appointment.ID,
	)
	if err != nil {
		return types.Appointment{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Appointment{}, err
	}
	if affected == 0 {
		return types.Appointment{}, ErrNotFound
	}
	return appointment, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	const query = `UPDATE appointments SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM appointments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
