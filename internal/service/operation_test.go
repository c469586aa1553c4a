package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"scooter/internal/domain"
	"scooter/internal/repository"
	"scooter/internal/repository/memory"
	"scooter/internal/service"
)

// MockOperationRepository wraps the in-memory repository with call counters
// and error injection.
type MockOperationRepository struct {
	*memory.OperationRepository

	UpdateCallCount int32
	CreateError     error
	UpdateError     error
}

func NewMockOperationRepository() *MockOperationRepository {
	return &MockOperationRepository{OperationRepository: memory.NewOperationRepository()}
}

func (m *MockOperationRepository) Create(ctx context.Context, op *domain.Operation) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	return m.OperationRepository.Create(ctx, op)
}

func (m *MockOperationRepository) Update(ctx context.Context, id string, fn func(op *domain.Operation) error) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	return m.OperationRepository.Update(ctx, id, fn)
}

func newTracker(repo repository.OperationRepository) *service.OperationTracker {
	return service.NewOperationTracker(repo, zap.NewNop(), nil)
}

func waitTracker(t *testing.T, tracker *service.OperationTracker) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tracker.Wait(ctx); err != nil {
		t.Fatalf("operations did not finish: %v", err)
	}
}

func TestOperationExecute_ReturnsPendingImmediately(t *testing.T) {
	tracker := newTracker(memory.NewOperationRepository())
	release := make(chan struct{})

	op, err := tracker.Execute(context.Background(), "slow", func(ctx context.Context) (string, error) {
		<-release
		return "done.csv", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Done() {
		t.Error("expected operation to be pending")
	}
	if op.Result != "" {
		t.Errorf("expected empty result, got %q", op.Result)
	}

	polled, err := tracker.Get(context.Background(), op.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if polled.Done() {
		t.Error("operation finished before work was released")
	}

	close(release)
	waitTracker(t, tracker)

	polled, _ = tracker.Get(context.Background(), op.ID)
	if polled.State != domain.OperationStateDone {
		t.Errorf("expected DONE, got %s", polled.State)
	}
	if polled.Result != "done.csv" {
		t.Errorf("expected done.csv, got %q", polled.Result)
	}
	if polled.CompletedAt.IsZero() {
		t.Error("expected completion time to be set")
	}
}

func TestOperationExecute_RecordsFailure(t *testing.T) {
	tracker := newTracker(memory.NewOperationRepository())

	op, err := tracker.Execute(context.Background(), "failing", func(ctx context.Context) (string, error) {
		return "partial.csv", errors.New("disk full")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitTracker(t, tracker)

	polled, _ := tracker.Get(context.Background(), op.ID)
	if polled.State != domain.OperationStateFailed {
		t.Errorf("expected FAILED, got %s", polled.State)
	}
	if !polled.Done() {
		t.Error("failed operation should report done")
	}
	if polled.Result != "" {
		t.Errorf("failed operation must not expose a result, got %q", polled.Result)
	}
	if polled.Error != "disk full" {
		t.Errorf("expected disk full, got %q", polled.Error)
	}
}

func TestOperationExecute_RecoversPanic(t *testing.T) {
	tracker := newTracker(memory.NewOperationRepository())

	op, err := tracker.Execute(context.Background(), "panicking", func(ctx context.Context) (string, error) {
		panic("unexpected")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitTracker(t, tracker)

	polled, _ := tracker.Get(context.Background(), op.ID)
	if polled.State != domain.OperationStateFailed {
		t.Errorf("expected FAILED, got %s", polled.State)
	}
	if polled.Error == "" {
		t.Error("expected panic to be recorded as error")
	}
}

func TestOperationExecute_IgnoresRequestCancellation(t *testing.T) {
	tracker := newTracker(memory.NewOperationRepository())
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	op, err := tracker.Execute(ctx, "detached", func(workCtx context.Context) (string, error) {
		<-started
		if workCtx.Err() != nil {
			return "", workCtx.Err()
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()
	close(started)
	waitTracker(t, tracker)

	polled, _ := tracker.Get(context.Background(), op.ID)
	if polled.State != domain.OperationStateDone {
		t.Errorf("expected DONE after request cancellation, got %s (%s)", polled.State, polled.Error)
	}
}

func TestOperationExecute_Validation(t *testing.T) {
	tracker := newTracker(memory.NewOperationRepository())

	if _, err := tracker.Execute(context.Background(), "nil", nil); err != service.ErrNilWork {
		t.Errorf("expected ErrNilWork, got %v", err)
	}
	if _, err := tracker.Get(context.Background(), ""); err != service.ErrInvalidOperationID {
		t.Errorf("expected ErrInvalidOperationID, got %v", err)
	}
	if _, err := tracker.Get(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOperationExecute_CreateErrorDoesNotStartWork(t *testing.T) {
	repo := NewMockOperationRepository()
	repo.CreateError = errors.New("store unavailable")
	tracker := newTracker(repo)

	var ran int32
	_, err := tracker.Execute(context.Background(), "never", func(ctx context.Context) (string, error) {
		atomic.AddInt32(&ran, 1)
		return "", nil
	})
	if !errors.Is(err, repo.CreateError) {
		t.Errorf("expected wrapped create error, got %v", err)
	}
	waitTracker(t, tracker)
	if atomic.LoadInt32(&ran) != 0 {
		t.Error("work must not run when the operation could not be stored")
	}
}

func TestOperationExecute_UpdateErrorLeavesPending(t *testing.T) {
	repo := NewMockOperationRepository()
	repo.UpdateError = errors.New("store unavailable")
	tracker := newTracker(repo)

	op, err := tracker.Execute(context.Background(), "orphan", func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitTracker(t, tracker)

	if atomic.LoadInt32(&repo.UpdateCallCount) != 1 {
		t.Errorf("expected one update attempt, got %d", repo.UpdateCallCount)
	}
	polled, _ := tracker.Get(context.Background(), op.ID)
	if polled.Done() {
		t.Error("operation should remain pending when its outcome could not be stored")
	}
}

func TestOperationExecute_ManyConcurrent(t *testing.T) {
	tracker := newTracker(memory.NewOperationRepository())

	const n = 50
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			op, err := tracker.Execute(context.Background(), "bulk", func(ctx context.Context) (string, error) {
				return "bulk.csv", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			ids[i] = op.ID
		}(i)
	}
	wg.Wait()
	waitTracker(t, tracker)

	for _, id := range ids {
		op, err := tracker.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if op.State != domain.OperationStateDone {
			t.Errorf("operation %s: expected DONE, got %s", id, op.State)
		}
	}
}

func TestOperationWait_HonoursContext(t *testing.T) {
	tracker := newTracker(memory.NewOperationRepository())
	release := make(chan struct{})
	defer close(release)

	_, _ = tracker.Execute(context.Background(), "blocked", func(ctx context.Context) (string, error) {
		<-release
		return "", nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := tracker.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}
