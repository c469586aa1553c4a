package domain

import "time"

// ScooterStatus represents the current status of a scooter.
type ScooterStatus string

const (
	ScooterStatusVacant   ScooterStatus = "VACANT"
	ScooterStatusOccupied ScooterStatus = "OCCUPIED"
	ScooterStatusBroken   ScooterStatus = "BROKEN"
)

// Scooter represents a rentable scooter.
//
// Status and passenger are only changed through Occupy, Vacate and Break so a
// vacant scooter never carries a passenger and an occupied one always does.
// A broken scooter keeps the passenger it had when it broke.
type Scooter struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	status      ScooterStatus
	passengerID string
}

// NewScooter returns a vacant scooter with no passenger.
func NewScooter(id string, now time.Time) *Scooter {
	return &Scooter{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		status:    ScooterStatusVacant,
	}
}

// Status returns the scooter status.
func (s *Scooter) Status() ScooterStatus {
	return s.status
}

// PassengerID returns the current passenger, if any.
func (s *Scooter) PassengerID() (string, bool) {
	return s.passengerID, s.passengerID != ""
}

// IsBroken reports whether the scooter has been marked broken.
func (s *Scooter) IsBroken() bool {
	return s.status == ScooterStatusBroken
}

// Occupy assigns the scooter to a passenger, overwriting any previous state.
func (s *Scooter) Occupy(passengerID string, now time.Time) {
	s.status = ScooterStatusOccupied
	s.passengerID = passengerID
	s.UpdatedAt = now
}

// Vacate releases the scooter and clears its passenger.
func (s *Scooter) Vacate(now time.Time) {
	s.status = ScooterStatusVacant
	s.passengerID = ""
	s.UpdatedAt = now
}

// Break marks the scooter broken. The passenger is left untouched.
func (s *Scooter) Break(now time.Time) {
	s.status = ScooterStatusBroken
	s.UpdatedAt = now
}
