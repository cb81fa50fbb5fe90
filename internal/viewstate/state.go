package viewstate

import (
	"context"
	"sync"

	"go-smartshop/internal/utils"
)

// state holds one view-state value and hands every change to its watchers.
type state[T any] struct {
	mu       sync.Mutex
	value    T
	watchers map[chan T]struct{}
}

func newState[T any](initial T) *state[T] {
	return &state[T]{
		value:    initial,
		watchers: make(map[chan T]struct{}),
	}
}

func (s *state[T]) get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// update applies fn atomically and returns the new value.
func (s *state[T]) update(fn func(T) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = fn(s.value)
	for ch := range s.watchers {
		utils.ReplaceLatest(ch, s.value)
	}
	return s.value
}

func (s *state[T]) watch(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	s.mu.Lock()
	ch <- s.value
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, ch)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}
