package services

import (
	"context"
	"errors"
	"time"

	"github.com/car-service/apiserver/internal/auth"
	"github.com/car-service/apiserver/internal/store"
	"github.com/car-service/apiserver/types"
)

// BirthDateFormat is the wire format for mechanic birth dates.
const BirthDateFormat = "2006-01-02"

// MechanicRepository defines persistence operations for mechanics.
type MechanicRepository interface {
	List(ctx context.Context) ([]types.Mechanic, error)
	Get(ctx context.Context, id int) (types.Mechanic, error)
	ExistsByLogin(ctx context.Context, login string, excludeID int) (bool, error)
	Create(ctx context.Context, mechanic types.Mechanic) (types.Mechanic, error)
	Update(ctx context.Context, mechanic types.Mechanic) (types.Mechanic, error)
	Delete(ctx context.Context, id int) error
}

// MechanicService encapsulates mechanic use-cases.
type MechanicService struct {
	repo MechanicRepository
}

func NewMechanicService(repo MechanicRepository) *MechanicService {
	return &MechanicService{repo: repo}
}

func (s *MechanicService) List(ctx context.Context) ([]types.Mechanic, error) {
	return s.repo.List(ctx)
}

func (s *MechanicService) Get(ctx context.Context, id int) (types.Mechanic, error) {
	mechanic, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Mechanic{}, ErrMechanicNotFound
		}
		return types.Mechanic{}, err
	}
	return mechanic, nil
}

// Create registers a mechanic. The birth date must lie strictly before
// today; the plaintext password is hashed before anything is persisted.
func (s *MechanicService) Create(ctx context.Context, mechanic types.Mechanic, password string) (types.Mechanic, error) {
	if mechanic.Role == "" {
		mechanic.Role = types.RoleMechanic
	}
	if !types.ValidMechanicRole(mechanic.Role) {
		return types.Mechanic{}, ErrInvalidRole
	}
	if !beforeToday(mechanic.BirthDate) {
		return types.Mechanic{}, ErrInvalidBirthDate
	}

	if exists, err := s.repo.ExistsByLogin(ctx, mechanic.Login, 0); err != nil {
		return types.Mechanic{}, err
	} else if exists {
		return types.Mechanic{}, store.ErrDuplicateLogin
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return types.Mechanic{}, err
	}
	mechanic.PasswordHash = hash

	return s.repo.Create(ctx, mechanic)
}

// Update applies a partial update. The login uniqueness scan excludes
// the record itself and runs only when the login changes.
func (s *MechanicService) Update(ctx context.Context, id int, patch types.MechanicPatch) (types.Mechanic, error) {
	mechanic, err := s.Get(ctx, id)
	if err != nil {
		return types.Mechanic{}, err
	}

	if patch.Login != nil && *patch.Login != mechanic.Login {
		if exists, err := s.repo.ExistsByLogin(ctx, *patch.Login, id); err != nil {
			return types.Mechanic{}, err
		} else if exists {
			return types.Mechanic{}, store.ErrDuplicateLogin
		}
		mechanic.Login = *patch.Login
	}
	if patch.BirthDate != nil {
		birthDate, err := time.ParseInLocation(BirthDateFormat, *patch.BirthDate, time.UTC)
		if err != nil {
			return types.Mechanic{}, ErrInvalidBirthDate
		}
		if !beforeToday(birthDate) {
			return types.Mechanic{}, ErrInvalidBirthDate
		}
		mechanic.BirthDate = birthDate
	}
	if patch.Role != nil {
		if !types.ValidMechanicRole(*patch.Role) {
			return types.Mechanic{}, ErrInvalidRole
		}
		mechanic.Role = *patch.Role
	}
	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return types.Mechanic{}, err
		}
		mechanic.PasswordHash = hash
	}
	if patch.Name != nil {
		mechanic.Name = *patch.Name
	}
	if patch.Position != nil {
		mechanic.Position = *patch.Position
	}

	updated, err := s.repo.Update(ctx, mechanic)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Mechanic{}, ErrMechanicNotFound
		}
		return types.Mechanic{}, err
	}
	return updated, nil
}

func (s *MechanicService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMechanicNotFound
		}
		return err
	}
	return nil
}

// beforeToday reports whether date falls strictly before today's UTC date.
func beforeToday(date time.Time) bool {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return date.Before(today)
}
