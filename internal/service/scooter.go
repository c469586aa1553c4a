package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scooter/internal/domain"
	"scooter/internal/repository"
)

// Paging defaults for scooter listings.
const (
	DefaultListLimit = 10
	MaxListLimit     = 50
)

// ScooterService handles scooter operations.
type ScooterService struct {
	scooterRepo repository.ScooterRepository
	now         func() time.Time
}

// NewScooterService creates a new ScooterService.
func NewScooterService(scooterRepo repository.ScooterRepository) *ScooterService {
	return &ScooterService{
		scooterRepo: scooterRepo,
		now:         time.Now,
	}
}

// Create registers a new vacant scooter.
func (s *ScooterService) Create(ctx context.Context) (*domain.Scooter, error) {
	scooter := domain.NewScooter(uuid.New().String(), s.now())
	if err := s.scooterRepo.Create(ctx, scooter); err != nil {
		return nil, err
	}
	return scooter, nil
}

// Get returns a scooter by ID.
func (s *ScooterService) Get(ctx context.Context, scooterID string) (*domain.Scooter, error) {
	if scooterID == "" {
		return nil, ErrInvalidScooterID
	}
	return s.scooterRepo.GetByID(ctx, scooterID)
}

// OccupyRequest contains the parameters for occupying a scooter.
type OccupyRequest struct {
	ScooterID   string
	PassengerID string
}

// Occupy assigns the scooter to the passenger. It does not check the current
// status: occupying an occupied or broken scooter simply overwrites it.
func (s *ScooterService) Occupy(ctx context.Context, req OccupyRequest) error {
	if req.ScooterID == "" {
		return ErrInvalidScooterID
	}
	if req.PassengerID == "" {
		return ErrInvalidPassengerID
	}

	return s.scooterRepo.Update(ctx, req.ScooterID, func(scooter *domain.Scooter) error {
		scooter.Occupy(req.PassengerID, s.now())
		return nil
	})
}

// Vacate releases the scooter and clears its passenger.
func (s *ScooterService) Vacate(ctx context.Context, scooterID string) error {
	if scooterID == "" {
		return ErrInvalidScooterID
	}

	return s.scooterRepo.Update(ctx, scooterID, func(scooter *domain.Scooter) error {
		scooter.Vacate(s.now())
		return nil
	})
}

// MarkBroken marks the scooter broken, keeping its passenger.
func (s *ScooterService) MarkBroken(ctx context.Context, scooterID string) error {
	if scooterID == "" {
		return ErrInvalidScooterID
	}

	return s.scooterRepo.Update(ctx, scooterID, func(scooter *domain.Scooter) error {
		scooter.Break(s.now())
		return nil
	})
}

// IsBroken reports whether the scooter is broken, together with the snapshot
// the answer was read from. Returns repository.ErrNotFound for an unknown scooter.
func (s *ScooterService) IsBroken(ctx context.Context, scooterID string) (*domain.Scooter, bool, error) {
	scooter, err := s.Get(ctx, scooterID)
	if err != nil {
		return nil, false, err
	}
	return scooter, scooter.IsBroken(), nil
}

// ListRequest contains paging parameters. Zero values fall back to defaults.
type ListRequest struct {
	Limit  int
	Offset int
}

// List returns a page of scooters in creation order. An offset past the end
// yields an empty page rather than an error.
func (s *ScooterService) List(ctx context.Context, req ListRequest) ([]*domain.Scooter, error) {
	limit := req.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return nil, ErrInvalidLimit
	}
	if req.Offset < 0 {
		return nil, ErrInvalidOffset
	}

	return s.scooterRepo.List(ctx, limit, req.Offset)
}
