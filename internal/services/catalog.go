package services

import (
	"context"
	"errors"

	"github.com/car-service/apiserver/internal/store"
	"github.com/car-service/apiserver/types"
)

// ServiceRepository defines persistence operations for the service catalog.
type ServiceRepository interface {
	List(ctx context.Context) ([]types.Service, error)
	Get(ctx context.Context, id int) (types.Service, error)
	ExistsByName(ctx context.Context, name string, excludeID int) (bool, error)
	Create(ctx context.Context, service types.Service) (types.Service, error)
	Update(ctx context.Context, service types.Service) (types.Service, error)
	Delete(ctx context.Context, id int) error
}

// CatalogService encapsulates service-offering use-cases.
type CatalogService struct {
	repo ServiceRepository
}

func NewCatalogService(repo ServiceRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) List(ctx context.Context) ([]types.Service, error) {
	return s.repo.List(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id int) (types.Service, error) {
	service, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Service{}, ErrServiceNotFound
		}
		return types.Service{}, err
	}
	return service, nil
}

func (s *CatalogService) Create(ctx context.Context, service types.Service) (types.Service, error) {
	if service.Price <= 0 {
		return types.Service{}, ErrInvalidPrice
	}
	if service.Duration <= 0 {
		return types.Service{}, ErrInvalidDuration
	}

	if exists, err := s.repo.ExistsByName(ctx, service.Name, 0); err != nil {
		return types.Service{}, err
	} else if exists {
		return types.Service{}, store.ErrDuplicateServiceName
	}

	return s.repo.Create(ctx, service)
}

func (s *CatalogService) Update(ctx context.Context, id int, patch types.ServicePatch) (types.Service, error) {
	service, err := s.Get(ctx, id)
	if err != nil {
		return types.Service{}, err
	}

	if patch.Name != nil && *patch.Name != service.Name {
		if exists, err := s.repo.ExistsByName(ctx, *patch.Name, id); err != nil {
			return types.Service{}, err
		} else if exists {
			return types.Service{}, store.ErrDuplicateServiceName
		}
		service.Name = *patch.Name
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return types.Service{}, ErrInvalidPrice
		}
		service.Price = *patch.Price
	}
	if patch.Duration != nil {
		if *patch.Duration <= 0 {
			return types.Service{}, ErrInvalidDuration
		}
		service.Duration = *patch.Duration
	}
	if patch.Description != nil {
		service.Description = *patch.Description
	}

	updated, err := s.repo.Update(ctx, service)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Service{}, ErrServiceNotFound
		}
		return types.Service{}, err
	}
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	return nil
}
