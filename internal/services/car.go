package services

import (
	"context"
	"errors"

	"github.com/car-service/apiserver/internal/store"
	"github.com/car-service/apiserver/types"
)

// CarRepository defines persistence operations for cars.
type CarRepository interface {
	List(ctx context.Context) ([]types.Car, error)
	Get(ctx context.Context, id int) (types.Car, error)
	ExistsByPlate(ctx context.Context, plate string, excludeID int) (bool, error)
	ExistsByVIN(ctx context.Context, vin string, excludeID int) (bool, error)
	Create(ctx context.Context, car types.Car) (types.Car, error)
	Update(ctx context.Context, car types.Car) (types.Car, error)
	Delete(ctx context.Context, id int) error
}

// CarService encapsulates car use-cases.
type CarService struct {
	repo  CarRepository
	users UserRepository
}

func NewCarService(repo CarRepository, users UserRepository) *CarService {
	return &CarService{repo: repo, users: users}
}

func (s *CarService) List(ctx context.Context) ([]types.Car, error) {
	return s.repo.List(ctx)
}

func (s *CarService) Get(ctx context.Context, id int) (types.Car, error) {
	car, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Car{}, ErrCarNotFound
		}
		return types.Car{}, err
	}
	return car, nil
}

// Create registers a car after validating the VIN shape, the owner
// reference, and plate/VIN uniqueness. The plate check runs first, each
// check short-circuits.
func (s *CarService) Create(ctx context.Context, car types.Car) (types.Car, error) {
	if len(car.VIN) != types.VINLength {
		return types.Car{}, ErrInvalidVIN
	}

	if _, err := s.users.Get(ctx, car.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Car{}, ErrUserNotFound
		}
		return types.Car{}, err
	}

	if exists, err := s.repo.ExistsByPlate(ctx, car.PlateNumber, 0); err != nil {
		return types.Car{}, err
	} else if exists {
		return types.Car{}, store.ErrDuplicatePlate
	}
	if exists, err := s.repo.ExistsByVIN(ctx, car.VIN, 0); err != nil {
		return types.Car{}, err
	} else if exists {
		return types.Car{}, store.ErrDuplicateVIN
	}

	return s.repo.Create(ctx, car)
}

// Update applies a partial update, re-validating only the fields being
// changed and excluding the record itself from uniqueness scans.
func (s *CarService) Update(ctx context.Context, id int, patch types.CarPatch) (types.Car, error) {
	car, err := s.Get(ctx, id)
	if err != nil {
		return types.Car{}, err
	}

	if patch.UserID != nil && *patch.UserID != car.UserID {
		if _, err := s.users.Get(ctx, *patch.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return types.Car{}, ErrUserNotFound
			}
			return types.Car{}, err
		}
		car.UserID = *patch.UserID
	}
	if patch.PlateNumber != nil && *patch.PlateNumber != car.PlateNumber {
		if exists, err := s.repo.ExistsByPlate(ctx, *patch.PlateNumber, id); err != nil {
			return types.Car{}, err
		} else if exists {
			return types.Car{}, store.ErrDuplicatePlate
		}
		car.PlateNumber = *patch.PlateNumber
	}
	if patch.VIN != nil && *patch.VIN != car.VIN {
		if len(*patch.VIN) != types.VINLength {
			return types.Car{}, ErrInvalidVIN
		}
		if exists, err := s.repo.ExistsByVIN(ctx, *patch.VIN, id); err != nil {
			return types.Car{}, err
		} else if exists {
			return types.Car{}, store.ErrDuplicateVIN
		}
		car.VIN = *patch.VIN
	}
	if patch.Brand != nil {
		car.Brand = *patch.Brand
	}
	if patch.Model != nil {
		car.Model = *patch.Model
	}
	if patch.Year != nil {
		car.Year = *patch.Year
	}

	updated, err := s.repo.Update(ctx, car)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Car{}, ErrCarNotFound
		}
		return types.Car{}, err
	}
	return updated, nil
}

func (s *CarService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCarNotFound
		}
		return err
	}
	return nil
}
