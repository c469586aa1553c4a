package repository

import (
	"context"

	"scooter/internal/domain"
)

// ScooterRepository defines the storage operations for scooters.
type ScooterRepository interface {
	// Create adds a new scooter.
	Create(ctx context.Context, scooter *domain.Scooter) error

	// GetByID retrieves a scooter by ID.
	GetByID(ctx context.Context, id string) (*domain.Scooter, error)

	// List returns up to limit scooters in insertion order, skipping offset.
	List(ctx context.Context, limit, offset int) ([]*domain.Scooter, error)

	// Update applies fn to the stored scooter while holding the write lock.
	Update(ctx context.Context, id string, fn func(scooter *domain.Scooter) error) error
}
