package service

import "errors"

var (
	// ErrInvalidScooterID is returned when scooter ID is empty.
	ErrInvalidScooterID = errors.New("invalid scooter id")

	// ErrInvalidPassengerID is returned when passenger ID is empty.
	ErrInvalidPassengerID = errors.New("invalid passenger id")

	// ErrInvalidPassengerName is returned when name or surname is empty.
	ErrInvalidPassengerName = errors.New("name and surname are required")

	// ErrInvalidOperationID is returned when operation ID is empty.
	ErrInvalidOperationID = errors.New("invalid operation id")

	// ErrInvalidLimit is returned when a page limit is out of range.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrInvalidOffset is returned when a page offset is negative.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrNilWork is returned when an operation is started without a unit of work.
	ErrNilWork = errors.New("operation has no work to run")
)
