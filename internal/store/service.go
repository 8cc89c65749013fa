package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/car-service/apiserver/types"
)

// ServiceRepository handles persistence for the service catalog.
type ServiceRepository struct {
	db *sql.DB
}

func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) List(ctx context.Context) ([]types.Service, error) {
	const query = `
		SELECT id, name, description, price, duration
		FROM services
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]types.Service, 0)
	for rows.Next() {
		var service types.Service
		if err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.Description,
			&service.Price,
			&service.Duration,
		); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) Get(ctx context.Context, id int) (types.Service, error) {
	const query = `
		SELECT id, name, description, price, duration
		FROM services
		WHERE id = $1`
	var service types.Service
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.Price,
		&service.Duration,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Service{}, ErrNotFound
		}
		return types.Service{}, err
	}
	return service, nil
}

// ExistsByName reports whether another service already holds the name.
func (r *ServiceRepository) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM services WHERE name = $1 AND id <> $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, name, excludeID).Scan(&exists)
	return exists, err
}

func (r *ServiceRepository) Create(ctx context.Context, service types.Service) (types.Service, error) {
	const query = `
		INSERT INTO services (name, description, price, duration)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		service.Name,
		service.Description,
		service.Price,
		service.Duration,
	).Scan(&service.ID); err != nil {
		return types.Service{}, mapUniqueViolation(err)
	}
	return service, nil
}

func (r *ServiceRepository) Update(ctx context.Context, service types.Service) (types.Service, error) {
	const query = `
		UPDATE services
		SET name = $1,
			description = $2,
			price = $3,
			duration = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		service.Name,
		service.Description,
		service.Price,
		service.Duration,
		service.ID,
	)
	if err != nil {
		return types.Service{}, mapUniqueViolation(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Service{}, err
	}
	if affected == 0 {
		return types.Service{}, ErrNotFound
	}
	return service, nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM services WHERE id = $1`
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
