package memory

import (
	"context"

	"scooter/internal/domain"
	"scooter/internal/repository"
)

// ScooterRepository is an in-memory implementation of repository.ScooterRepository.
type ScooterRepository struct {
	scooters *store[domain.Scooter]
}

// NewScooterRepository creates an empty scooter repository.
func NewScooterRepository() *ScooterRepository {
	return &ScooterRepository{scooters: newStore[domain.Scooter]()}
}

// Create adds a new scooter.
func (r *ScooterRepository) Create(ctx context.Context, scooter *domain.Scooter) error {
	return r.scooters.create(scooter.ID, scooter)
}

// GetByID retrieves a scooter by ID.
func (r *ScooterRepository) GetByID(ctx context.Context, id string) (*domain.Scooter, error) {
	return r.scooters.get(id)
}

// List returns a page of scooters in insertion order.
func (r *ScooterRepository) List(ctx context.Context, limit, offset int) ([]*domain.Scooter, error) {
	return r.scooters.page(limit, offset), nil
}

// Update applies fn to the scooter under the write lock.
func (r *ScooterRepository) Update(ctx context.Context, id string, fn func(scooter *domain.Scooter) error) error {
	return r.scooters.update(id, fn)
}

var _ repository.ScooterRepository = (*ScooterRepository)(nil)
