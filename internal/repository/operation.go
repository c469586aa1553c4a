package repository

import (
	"context"

	"scooter/internal/domain"
)

// OperationRepository defines the storage operations for background operations.
type OperationRepository interface {
	// Create adds a new operation.
	Create(ctx context.Context, op *domain.Operation) error

	// GetByID retrieves an operation by ID.
	GetByID(ctx context.Context, id string) (*domain.Operation, error)

	// Update applies fn to the stored operation while holding the write lock.
	Update(ctx context.Context, id string, fn func(op *domain.Operation) error) error
}
