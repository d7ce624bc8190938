// Package conn holds process-wide backend clients that are opened once and
// may be reopened after a failed attempt or an explicit close.
package conn

import "sync"

// Singleton guards one client of type T.
type Singleton[T any] struct {
	mu     sync.RWMutex
	client T
	ok     bool
}

// Connect returns the open client, or calls open and keeps its result on
// success. A failed open leaves the singleton empty so the next call retries.
func (s *Singleton[T]) Connect(open func() (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ok {
		return s.client, nil
	}
	c, err := open()
	if err != nil {
		var zero T
		return zero, err
	}
	s.client, s.ok = c, true
	return c, nil
}

// Get returns the client and whether one is open.
func (s *Singleton[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client, s.ok
}

// Close closes and forgets the client. It is a no-op when nothing is open.
func (s *Singleton[T]) Close(closeFn func(T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ok {
		return nil
	}
	if err := closeFn(s.client); err != nil {
		return err
	}
	var zero T
	s.client, s.ok = zero, false
	return nil
}
