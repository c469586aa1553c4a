package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"scooter/internal/domain"
	"scooter/internal/repository"
)

// PassengerService handles passenger registration.
type PassengerService struct {
	passengerRepo repository.PassengerRepository
	now           func() time.Time
}

// NewPassengerService creates a new PassengerService.
func NewPassengerService(passengerRepo repository.PassengerRepository) *PassengerService {
	return &PassengerService{
		passengerRepo: passengerRepo,
		now:           time.Now,
	}
}

// RegisterRequest contains the parameters for registering a passenger.
type RegisterRequest struct {
	Name    string
	Surname string
}

// Register creates a new passenger. Names are stored trimmed and are not
// required to be unique.
func (s *PassengerService) Register(ctx context.Context, req RegisterRequest) (*domain.Passenger, error) {
	name := strings.TrimSpace(req.Name)
	surname := strings.TrimSpace(req.Surname)
	if name == "" || surname == "" {
		return nil, ErrInvalidPassengerName
	}

	passenger := &domain.Passenger{
		ID:        uuid.New().String(),
		Name:      name,
		Surname:   surname,
		CreatedAt: s.now(),
	}
	if err := s.passengerRepo.Create(ctx, passenger); err != nil {
		return nil, err
	}
	return passenger, nil
}

// Get returns a passenger by ID.
func (s *PassengerService) Get(ctx context.Context, passengerID string) (*domain.Passenger, error) {
	if passengerID == "" {
		return nil, ErrInvalidPassengerID
	}
	return s.passengerRepo.GetByID(ctx, passengerID)
}

// List returns every passenger in registration order.
func (s *PassengerService) List(ctx context.Context) ([]*domain.Passenger, error) {
	return s.passengerRepo.GetAll(ctx)
}
