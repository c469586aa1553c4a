package repository

import (
	"context"

	"scooter/internal/domain"
)

// PassengerRepository defines the storage operations for passengers.
type PassengerRepository interface {
	// Create adds a new passenger.
	Create(ctx context.Context, passenger *domain.Passenger) error

	// GetByID retrieves a passenger by ID.
	GetByID(ctx context.Context, id string) (*domain.Passenger, error)

	// GetAll retrieves all passengers in insertion order.
	GetAll(ctx context.Context) ([]*domain.Passenger, error)
}
