package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/car-service/apiserver/types"
)

// MechanicRepository handles persistence for mechanics.
type MechanicRepository struct {
	db *sql.DB
}

func NewMechanicRepository(db *sql.DB) *MechanicRepository {
	return &MechanicRepository{db: db}
}

func (r *MechanicRepository) List(ctx context.Context) ([]types.Mechanic, error) {
	const query = `
		SELECT id, name, birth_date, login, role, position, password_hash
		FROM mechanics
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mechanics := make([]types.Mechanic, 0)
	for rows.Next() {
		var mechanic types.Mechanic
		if err := rows.Scan(
			&mechanic.ID,
			&mechanic.Name,
			&mechanic.BirthDate,
			&mechanic.Login,
			&mechanic.Role,
			&mechanic.Position,
			&mechanic.PasswordHash,
		); err != nil {
			return nil, err
		}
		mechanics = append(mechanics, mechanic)
	}
	return mechanics, rows.Err()
}

func (r *MechanicRepository) Get(ctx context.Context, id int) (types.Mechanic, error) {
	const query = `
		SELECT id, name, birth_date, login, role, position, password_hash
		FROM mechanics
		WHERE id = $1`
	var mechanic types.Mechanic
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&mechanic.ID,
		&mechanic.Name,
		&mechanic.BirthDate,
		&mechanic.Login,
		&mechanic.Role,
		&mechanic.Position,
		&mechanic.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Mechanic{}, ErrNotFound
		}
		return types.Mechanic{}, err
	}
	return mechanic, nil
}

// ExistsByLogin reports whether another mechanic already holds the login.
func (r *MechanicRepository) ExistsByLogin(ctx context.Context, login string, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM mechanics WHERE login = $1 AND id <> $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, login, excludeID).Scan(&exists)
	return exists, err
}

func (r *MechanicRepository) Create(ctx context.Context, mechanic types.Mechanic) (types.Mechanic, error) {
	const query = `
		INSERT INTO mechanics (name, birth_date, login, role, position, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		mechanic.Name,
		mechanic.BirthDate,
		mechanic.Login,
		mechanic.Role,
		mechanic.Position,
		mechanic.PasswordHash,
	).Scan(&mechanic.ID); err != nil {
		return types.Mechanic{}, mapUniqueViolation(err)
	}
	return mechanic, nil
}

func (r *MechanicRepository) Update(ctx context.Context, mechanic types.Mechanic) (types.Mechanic, error) {
	const query = `
		UPDATE mechanics
		SET name = $1,
			birth_date = $2,
			login = $3,
			role = $4,
			position = $5,
			password_hash = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		mechanic.Name,
		mechanic.BirthDate,
		mechanic.Login,
		mechanic.Role,
		mechanic.Position,
		mechanic.PasswordHash,
		mechanic.ID,
	)
	if err != nil {
		return types.Mechanic{}, mapUniqueViolation(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Mechanic{}, err
	}
	if affected == 0 {
		return types.Mechanic{}, ErrNotFound
	}
	return mechanic, nil
}

func (r *MechanicRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM mechanics WHERE id = $1`
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
