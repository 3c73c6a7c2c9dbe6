// Package timer measures the playtime of a game. It is driven by game
// events: it starts on the first opened cell and stops when the game ends.
package timer

import (
	"sync"
	"time"

	"github.com/vancomm/sweeper/internal/mines"
)

type Stopwatch struct {
	mu      sync.Mutex
	now     func() time.Time
	started time.Time
	stopped time.Time
}

func NewStopwatch() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *Stopwatch) WithClock(now func() time.Time) *Stopwatch {
	s.now = now
	return s
}

func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = s.now()
	s.stopped = time.Time{}
}

// Stop freezes the elapsed time. Stopping a stopwatch that never started
// or already stopped does nothing.
func (s *Stopwatch) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started.IsZero() || !s.stopped.IsZero() {
		return
	}
	s.stopped = s.now()
}

func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started, s.stopped = time.Time{}, time.Time{}
}

func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.started.IsZero() && s.stopped.IsZero()
}

func (s *Stopwatch) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.started.IsZero():
		return 0
	case s.stopped.IsZero():
		return s.now().Sub(s.started)
	default:
		return s.stopped.Sub(s.started)
	}
}

// Observe updates the stopwatch from a batch of game events.
func (s *Stopwatch) Observe(events []mines.Event) {
	for _, e := range events {
		switch e.Kind {
		case mines.GameStarted:
			s.Reset()
		case mines.FirstCellOpened:
			s.Start()
		case mines.GameEnded:
			s.Stop()
		}
	}
}
