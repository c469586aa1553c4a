package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"scooter/internal/domain"
	"scooter/internal/repository"
)

// Work is a unit of work run in the background by OperationTracker.
// The returned string is stored as the operation result.
type Work func(ctx context.Context) (string, error)

// OperationTracker runs work asynchronously and records its outcome.
//
// There is no queue, no cancellation and no bound on the number of running
// operations: every Execute starts a goroutine immediately.
type OperationTracker struct {
	opRepo repository.OperationRepository
	logger *zap.Logger
	nrApp  *newrelic.Application

	wg  sync.WaitGroup
	now func() time.Time
}

// NewOperationTracker creates a new OperationTracker. nrApp may be nil.
func NewOperationTracker(opRepo repository.OperationRepository, logger *zap.Logger, nrApp *newrelic.Application) *OperationTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OperationTracker{
		opRepo: opRepo,
		logger: logger,
		nrApp:  nrApp,
		now:    time.Now,
	}
}

// Execute stores a pending operation, starts work in the background and
// returns the pending operation without waiting for it.
//
// The work does not inherit ctx cancellation; a finished request must not
// abort an export it started.
func (t *OperationTracker) Execute(ctx context.Context, name string, work Work) (*domain.Operation, error) {
	if work == nil {
		return nil, ErrNilWork
	}

	op := domain.NewOperation(uuid.New().String(), name, t.now())
	if err := t.opRepo.Create(ctx, op); err != nil {
		return nil, fmt.Errorf("failed to register operation: %w", err)
	}

	t.logger.Info("operation started",
		zap.String("operation_id", op.ID),
		zap.String("operation", name),
	)

	t.wg.Add(1)
	go t.run(op.ID, name, work)

	return op, nil
}

// Get returns an operation by ID.
func (t *OperationTracker) Get(ctx context.Context, operationID string) (*domain.Operation, error) {
	if operationID == "" {
		return nil, ErrInvalidOperationID
	}
	return t.opRepo.GetByID(ctx, operationID)
}

// Wait blocks until every started operation has finished or ctx is done.
func (t *OperationTracker) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *OperationTracker) run(opID, name string, work Work) {
	defer t.wg.Done()

	txn := t.nrApp.StartTransaction("operation/" + name)
	defer txn.End()
	txn.AddAttribute("operation_id", opID)

	ctx := newrelic.NewContext(context.Background(), txn)
	start := t.now()

	result, workErr := runWork(ctx, work)

	err := t.opRepo.Update(ctx, opID, func(op *domain.Operation) error {
		if workErr != nil {
			op.Fail(workErr, t.now())
			return nil
		}
		op.Complete(result, t.now())
		return nil
	})
	if err != nil {
		t.logger.Error("failed to record operation outcome",
			zap.String("operation_id", opID),
			zap.Error(err),
		)
		return
	}

	if workErr != nil {
		txn.NoticeError(workErr)
		t.logger.Warn("operation failed",
			zap.String("operation_id", opID),
			zap.String("operation", name),
			zap.Duration("duration", t.now().Sub(start)),
			zap.Error(workErr),
		)
		return
	}

	t.logger.Info("operation completed",
		zap.String("operation_id", opID),
		zap.String("operation", name),
		zap.Duration("duration", t.now().Sub(start)),
		zap.String("result", result),
	)
}

// runWork converts a panic inside work into an error.
func runWork(ctx context.Context, work Work) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("operation panicked: %v", r)
		}
	}()
	return work(ctx)
}
