package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/sweeper/internal/mines"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestStopwatch(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStopwatch().WithClock(clock.now)

	assert.Zero(t, s.Elapsed())
	assert.False(t, s.Running())

	s.Stop()
	assert.Zero(t, s.Elapsed())

	s.Start()
	clock.advance(3 * time.Second)
	assert.True(t, s.Running())
	assert.Equal(t, 3*time.Second, s.Elapsed())

	s.Stop()
	clock.advance(time.Minute)
	assert.False(t, s.Running())
	assert.Equal(t, 3*time.Second, s.Elapsed())

	s.Stop()
	assert.Equal(t, 3*time.Second, s.Elapsed())

	s.Reset()
	assert.Zero(t, s.Elapsed())
	assert.True(t, s.StartedAt().IsZero())
}

func TestStopwatchObserve(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStopwatch().WithClock(clock.now)

	s.Observe([]mines.Event{{Kind: mines.GameStarted}})
	assert.False(t, s.Running())

	s.Observe([]mines.Event{{Kind: mines.FirstCellOpened}, {Kind: mines.Revealed}})
	assert.True(t, s.Running())
	assert.Equal(t, clock.t, s.StartedAt())

	clock.advance(1500 * time.Millisecond)
	s.Observe([]mines.Event{{Kind: mines.Detonated}, {Kind: mines.GameEnded}})
	clock.advance(time.Hour)
	assert.Equal(t, 1500*time.Millisecond, s.Elapsed())

	s.Observe([]mines.Event{{Kind: mines.GameStarted}})
	assert.Zero(t, s.Elapsed())
}
