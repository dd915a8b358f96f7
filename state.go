package resource

import (
	"context"
	"sync"
	"sync/atomic"
)

// State is a concurrency-safe holder of the latest Resource for a value of
// type T. It starts at Reset (no active request), replaces its value
// atomically as a whole, and broadcasts every change to watchers.
type State[T any] struct {
	current atomic.Pointer[Resource[T]]

	mu       sync.Mutex
	watchers map[chan Resource[T]]struct{}
}

// NewState creates a State holding Reset.
func NewState[T any]() *State[T] {
	s := &State[T]{
		watchers: make(map[chan Resource[T]]struct{}),
	}

	var initial Resource[T] = Reset[T]{}
	s.current.Store(&initial)

	return s
}

// Load returns the current state.
func (s *State[T]) Load() Resource[T] {
	return *s.current.Load()
}

// Store replaces the current state and notifies watchers.
func (s *State[T]) Store(r Resource[T]) {
	s.current.Store(&r)
	s.notify(r)
}

// UpdateIfSuccess replaces a held Success value with a fresh Success
// wrapping transform applied to its data, and reports whether a replacement
// happened. Any other state, or a Success without data, is left untouched.
//
// The swap is compare-and-swap based: under contention transform may run
// more than once, so it must be free of side effects.
//
// Example:
//
//	state.Store(resource.Success[int]{Data: &count})
//	state.UpdateIfSuccess(func(n int) int { return n + 1 })
func (s *State[T]) UpdateIfSuccess(transform func(T) T) bool {
	for {
		old := s.current.Load()
		succ, ok := (*old).(Success[T])
		if !ok || succ.Data == nil {
			return false
		}

		data := transform(*succ.Data)
		var next Resource[T] = Success[T]{Data: &data}
		if s.current.CompareAndSwap(old, &next) {
			s.notify(next)
			return true
		}
	}
}

// Watch returns a channel that receives state changes until ctx is done,
// then is closed. Delivery is conflated: a slow watcher observes the latest
// state rather than every intermediate one.
func (s *State[T]) Watch(ctx context.Context) <-chan Resource[T] {
	ch := make(chan Resource[T], 1)

	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()

		s.mu.Lock()
		delete(s.watchers, ch)
		s.mu.Unlock()

		close(ch)
	}()

	return ch
}

// notify delivers r to every watcher without blocking, replacing any unread
// pending value so each channel holds the newest state.
func (s *State[T]) notify(r Resource[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.watchers {
		select {
		case ch <- r:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- r:
			default:
			}
		}
	}
}
