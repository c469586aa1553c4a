package domain

import "time"

// Passenger represents a registered rider.
type Passenger struct {
	ID        string
	Name      string
	Surname   string
	CreatedAt time.Time
}
