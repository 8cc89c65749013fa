package services

import (
	"context"
	"errors"
	"testing"

	"github.com/car-service/apiserver/internal/store"
	"github.com/car-service/apiserver/types"
)

func serviceFixture() types.Service {
	return types.Service{
		Name:        "Oil Change",
		Description: "Engine oil and filter replacement",
		Price:       59.90,
		Duration:    45,
	}
}

func TestCatalogCreate(t *testing.T) {
	svc := NewCatalogService(newFakeServiceRepo())

	service, err := svc.Create(context.Background(), serviceFixture())
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	if service.ID == 0 {
		t.Fatal("expected assigned id")
	}
}

func TestCatalogCreateValidation(t *testing.T) {
	svc := NewCatalogService(newFakeServiceRepo())
	ctx := context.Background()

	service := serviceFixture()
	service.Price = 0
	if _, err := svc.Create(ctx, service); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}

	service = serviceFixture()
	service.Duration = -10
	if _, err := svc.Create(ctx, service); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestCatalogCreateDuplicateName(t *testing.T) {
	svc := NewCatalogService(newFakeServiceRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, serviceFixture()); err != nil {
		t.Fatalf("create service: %v", err)
	}
	if _, err := svc.Create(ctx, serviceFixture()); !errors.Is(err, store.ErrDuplicateServiceName) {
		t.Fatalf("expected ErrDuplicateServiceName, got %v", err)
	}
}

func TestCatalogUpdate(t *testing.T) {
	svc := NewCatalogService(newFakeServiceRepo())
	ctx := context.Background()

	service, err := svc.Create(ctx, serviceFixture())
	if err != nil {
		t.Fatalf("create service: %v", err)
	}

	price := 79.90
	updated, err := svc.Update(ctx, service.ID, types.ServicePatch{Price: &price})
	if err != nil {
		t.Fatalf("update service: %v", err)
	}
	if updated.Price != price {
		t.Fatalf("expected price %v, got %v", price, updated.Price)
	}

	badPrice := -1.0
	if _, err := svc.Update(ctx, service.ID, types.ServicePatch{Price: &badPrice}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}

	badDuration := 0
	if _, err := svc.Update(ctx, service.ID, types.ServicePatch{Duration: &badDuration}); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}

	// Keeping the same name is not a conflict.
	name := service.Name
	if _, err := svc.Update(ctx, service.ID, types.ServicePatch{Name: &name}); err != nil {
		t.Fatalf("update with own name: %v", err)
	}
}

func TestCatalogNotFound(t *testing.T) {
	svc := NewCatalogService(newFakeServiceRepo())
	ctx := context.Background()

	if _, err := svc.Get(ctx, 99); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, 99); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}
