// Package memory provides in-process, non-persistent repositories.
// Each repository owns its lock; callers always receive copies.
package memory

import (
	"math"
	"sync"

	"scooter/internal/repository"
)

// store is a mutex-guarded map that remembers insertion order.
type store[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
	order []string
}

func newStore[T any]() *store[T] {
	return &store[T]{
		items: make(map[string]*T),
	}
}

func (s *store[T]) create(id string, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; ok {
		return repository.ErrAlreadyExists
	}
	dup := *item
	s.items[id] = &dup
	s.order = append(s.order, id)
	return nil
}

func (s *store[T]) get(id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	dup := *item
	return &dup, nil
}

// page returns copies of the items in [offset, offset+limit), truncated to
// what exists. An offset past the end yields an empty, non-nil slice.
func (s *store[T]) page(limit, offset int) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(s.order) || limit <= 0 {
		return []*T{}
	}
	end := len(s.order)
	if limit < end-offset {
		end = offset + limit
	}

	result := make([]*T, 0, end-offset)
	for _, id := range s.order[offset:end] {
		dup := *s.items[id]
		result = append(result, &dup)
	}
	return result
}

func (s *store[T]) all() []*T {
	return s.page(math.MaxInt, 0)
}

// update runs fn against a working copy and stores it only if fn succeeds.
func (s *store[T]) update(id string, fn func(item *T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	dup := *item
	if err := fn(&dup); err != nil {
		return err
	}
	s.items[id] = &dup
	return nil
}
