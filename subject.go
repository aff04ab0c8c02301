package auth

import "sync"

// Subject is a broadcast container for a single value. New subscribers are
// immediately replayed the latest value, and every Set notifies all current
// subscribers. This mirrors the behavior-subject semantic the status store
// is built on.
type Subject[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	next  int
}

// NewSubject seeds the subject with an initial value.
func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{
		value: initial,
		subs:  map[int]func(T){},
	}
}

// Get returns the current value.
func (s *Subject[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the current value and notifies subscribers in registration
// order. Callbacks run outside the lock so a subscriber may call back into
// the subject.
func (s *Subject[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	listeners := s.snapshot()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}
}

// Subscribe registers fn and replays the current value to it. The returned
// cancel func removes the subscription; calling it more than once is safe.
func (s *Subject[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// snapshot must be called with the lock held.
func (s *Subject[T]) snapshot() []func(T) {
	listeners := make([]func(T), 0, len(s.subs))
	for id := 0; id < s.next; id++ {
		if fn, ok := s.subs[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	return listeners
}
