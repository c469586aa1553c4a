package memory

import (
	"context"

	"scooter/internal/domain"
	"scooter/internal/repository"
)

// PassengerRepository is an in-memory implementation of repository.PassengerRepository.
type PassengerRepository struct {
	passengers *store[domain.Passenger]
}

// NewPassengerRepository creates an empty passenger repository.
func NewPassengerRepository() *PassengerRepository {
	return &PassengerRepository{passengers: newStore[domain.Passenger]()}
}

// Create adds a new passenger.
func (r *PassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	return r.passengers.create(passenger.ID, passenger)
}

// GetByID retrieves a passenger by ID.
func (r *PassengerRepository) GetByID(ctx context.Context, id string) (*domain.Passenger, error) {
	return r.passengers.get(id)
}

// GetAll retrieves all passengers in insertion order.
func (r *PassengerRepository) GetAll(ctx context.Context) ([]*domain.Passenger, error) {
	return r.passengers.all(), nil
}

var _ repository.PassengerRepository = (*PassengerRepository)(nil)
