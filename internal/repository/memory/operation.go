package memory

import (
	"context"

	"scooter/internal/domain"
	"scooter/internal/repository"
)

// OperationRepository is an in-memory implementation of repository.OperationRepository.
type OperationRepository struct {
	ops *store[domain.Operation]
}

// NewOperationRepository creates an empty operation repository.
func NewOperationRepository() *OperationRepository {
	return &OperationRepository{ops: newStore[domain.Operation]()}
}

// Create adds a new operation.
func (r *OperationRepository) Create(ctx context.Context, op *domain.Operation) error {
	return r.ops.create(op.ID, op)
}

// GetByID retrieves an operation by ID.
func (r *OperationRepository) GetByID(ctx context.Context, id string) (*domain.Operation, error) {
	return r.ops.get(id)
}

// Update applies fn to the operation under the write lock.
func (r *OperationRepository) Update(ctx context.Context, id string, fn func(op *domain.Operation) error) error {
	return r.ops.update(id, fn)
}

var _ repository.OperationRepository = (*OperationRepository)(nil)
