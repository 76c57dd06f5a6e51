package debounce

import (
	"sync"
	"time"
)

// Service coalesces bursts of triggers into one trailing call. It owns a
// single timer handle: every Trigger stops the pending timer and schedules a
// new one, so only the last trigger of a burst runs.
type Service struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	seq   uint64
}

// NewService creates a debouncer with a fixed delay
func NewService(delay time.Duration) *Service {
	return &Service{delay: delay}
}

// Trigger cancels any pending call and schedules fn after the delay.
// fn runs on a timer goroutine. The returned sequence number identifies this
// schedule; callers that hop back to another goroutine can compare it with
// Latest to drop a call that lost a race with a newer Trigger.
func (s *Service) Trigger(fn func(seq uint64)) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.seq++
	seq := s.seq
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		if s.seq == seq {
			s.timer = nil
		}
		s.mu.Unlock()
		fn(seq)
	})
	return seq
}

// Latest returns the sequence number of the most recent Trigger
func (s *Service) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// pending reports whether a scheduled call has not fired yet
func (s *Service) pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Stop cancels the pending call, if any, and invalidates in-flight ones
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
}
