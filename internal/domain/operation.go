package domain

import "time"

// OperationState represents the lifecycle of a background operation.
type OperationState string

const (
	OperationStatePending OperationState = "PENDING"
	OperationStateDone    OperationState = "DONE"
	OperationStateFailed  OperationState = "FAILED"
)

// Operation is a handle to a background task.
type Operation struct {
	ID          string
	Name        string
	State       OperationState
	Result      string // Only set when State is DONE.
	Error       string // Only set when State is FAILED.
	CreatedAt   time.Time
	CompletedAt time.Time
}

// NewOperation returns a pending operation.
func NewOperation(id, name string, now time.Time) *Operation {
	return &Operation{
		ID:        id,
		Name:      name,
		State:     OperationStatePending,
		CreatedAt: now,
	}
}

// Done reports whether the operation has finished, successfully or not.
func (o *Operation) Done() bool {
	return o.State == OperationStateDone || o.State == OperationStateFailed
}

// Complete records a successful result.
func (o *Operation) Complete(result string, now time.Time) {
	o.State = OperationStateDone
	o.Result = result
	o.Error = ""
	o.CompletedAt = now
}

// Fail records a failure. Any result is discarded.
func (o *Operation) Fail(err error, now time.Time) {
	o.State = OperationStateFailed
	o.Result = ""
	o.Error = err.Error()
	o.CompletedAt = now
}
