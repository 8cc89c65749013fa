package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/car-service/apiserver/types"
)

// CarRepository handles persistence for cars.
type CarRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) *CarRepository {
	return &CarRepository{db: db}
}

func (r *CarRepository) List(ctx context.Context) ([]types.Car, error) {
	const query = `
		SELECT id, user_id, brand, model, year, plate_number, vin
		FROM cars
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := make([]types.Car, 0)
	for rows.Next() {
		var car types.Car
		if err := rows.Scan(
			&car.ID,
			&car.UserID,
			&car.Brand,
			&car.Model,
			&car.Year,
			&car.PlateNumber,
			&car.VIN,
		); err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func (r *CarRepository) Get(ctx context.Context, id int) (types.Car, error) {
	const query = `
		SELECT id, user_id, brand, model, year, plate_number, vin
		FROM cars
		WHERE id = $1`
	var car types.Car
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&car.ID,
		&car.UserID,
		&car.Brand,
		&car.Model,
		&car.Year,
		&car.PlateNumber,
		&car.VIN,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Car{}, ErrNotFound
		}
		return types.Car{}, err
	}
	return car, nil
}

// ExistsByPlate reports whether another car already holds the plate number.
func (r *CarRepository) ExistsByPlate(ctx context.Context, plate string, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM cars WHERE plate_number = $1 AND id <> $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, plate, excludeID).Scan(&exists)
	return exists, err
}

// ExistsByVIN reports whether another car already holds the VIN.
func (r *CarRepository) ExistsByVIN(ctx context.Context, vin string, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM cars WHERE vin = $1 AND id <> $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, vin, excludeID).Scan(&exists)
	return exists, err
}

func (r *CarRepository) Create(ctx context.Context, car types.Car) (types.Car, error) {
	const query = `
		INSERT INTO cars (user_id, brand, model, year, plate_number, vin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		car.UserID,
		car.Brand,
		car.Model,
		car.Year,
		car.PlateNumber,
		car.VIN,
	).Scan(&car.ID); err != nil {
		return types.Car{}, mapUniqueViolation(err)
	}
	return car, nil
}

func (r *CarRepository) Update(ctx context.Context, car types.Car) (types.Car, error) {
	const query = `
		UPDATE cars
		SET user_id = $1,
			brand = $2,
			model = $3,
			year = $4,
			plate_number = $5,
			vin = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		car.UserID,
		car.Brand,
		car.Model,
		car.Year,
		car.PlateNumber,
		car.VIN,
		car.ID,
	)
	if err != nil {
		return types.Car{}, mapUniqueViolation(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Car{}, err
	}
	if affected == 0 {
		return types.Car{}, ErrNotFound
	}
	return car, nil
}

func (r *CarRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM cars WHERE id = $1`
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
