package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-watchface/internal/config"
)

// hoursPerHalfDay is the threshold above which a 24-hour reading is folded
// into the 12-hour domain.
const hoursPerHalfDay = 12

// TimeSample is the normalized wall-clock reading a redraw is computed from.
// Hours is in 0..12: 13..23 fold to 1..11, but 12 is kept as 12.
type TimeSample struct {
	Hours   int `yaml:"hours"`
	Minutes int `yaml:"minutes"`
	Seconds int `yaml:"seconds"`
}

// Invalidator receives a signal whenever a new sample is available.
// Implementations may coalesce several signals into a single redraw.
type Invalidator interface {
	MarkDirty()
}

// TimeSampler owns the current TimeSample. The tick worker is the only writer;
// the redraw step reads the latest value through Sample.
type TimeSampler struct {
	mu     sync.RWMutex
	sample TimeSample
	dirty  Invalidator
}

// NewTimeSampler creates a sampler that signals inv after every tick.
// inv may be nil when nothing needs to be redrawn.
func NewTimeSampler(inv Invalidator) *TimeSampler {
	return &TimeSampler{dirty: inv}
}

// NormalizeHour folds a 24-hour reading into the 12-hour domain.
func NormalizeHour(hour24 int) int {
	if hour24 > hoursPerHalfDay {
		return hour24 - hoursPerHalfDay
	}
	return hour24
}

// OnTick stores a new reading and requests a redraw.
func (s *TimeSampler) OnTick(hour24, minute, second int) TimeSample {
	sample := TimeSample{
		Hours:   NormalizeHour(hour24),
		Minutes: minute,
		Seconds: second,
	}

	s.mu.Lock()
	s.sample = sample
	inv := s.dirty
	s.mu.Unlock()

	slog.Debug(config.MsgTick,
		config.LogKeyComponent, config.CompSampler,
		config.LogKeyHours, sample.Hours,
		config.LogKeyMinutes, sample.Minutes,
		config.LogKeySeconds, sample.Seconds)

	if inv != nil {
		inv.MarkDirty()
	}
	return sample
}

// OnTime is OnTick fed from a time.Time in its own location.
func (s *TimeSampler) OnTime(t time.Time) TimeSample {
	h, m, sec := t.Clock()
	return s.OnTick(h, m, sec)
}

// Sample returns the most recently stored reading.
func (s *TimeSampler) Sample() TimeSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sample
}

// SetInvalidator replaces the redraw target.
func (s *TimeSampler) SetInvalidator(inv Invalidator) {
	s.mu.Lock()
	s.dirty = inv
	s.mu.Unlock()
}
