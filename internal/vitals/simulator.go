// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vitals provides the simulated heart-rate feed.
package vitals

import (
	"context"
	"math/rand"
	"time"
)

// Reading is one heart-rate sample.
type Reading struct {
	BPM int
	At  time.Time
}

// Simulator emits heart-rate readings on a fixed interval.
//
// The signal is a random walk clamped to [Min, Max] so the display looks
// alive without drifting into implausible values.
type Simulator struct {
	Baseline int
	Min      int
	Max      int
	Interval time.Duration

	rng      *rand.Rand
	current  int
	readings chan Reading
}

// NewSimulator creates a simulator with resting-adult defaults.
func NewSimulator() *Simulator {
	return &Simulator{
		Baseline: 72,
		Min:      55,
		Max:      120,
		Interval: time.Second,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		readings: make(chan Reading, 8),
	}
}

// Readings returns the sample stream. Samples are dropped, not blocked on,
// when the consumer falls behind.
func (s *Simulator) Readings() <-chan Reading {
	return s.readings
}

// Start runs the feed until ctx is cancelled.
func (s *Simulator) Start(ctx context.Context) {
	if s.current == 0 {
		s.current = s.Baseline
	}
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				close(s.readings)
				return
			case t := <-ticker.C:
				s.current = s.step()
				select {
				case s.readings <- Reading{BPM: s.current, At: t}:
				default:
				}
			}
		}
	}()
}

// step advances the random walk by -2..+2 BPM, pulled gently toward the
// baseline and clamped to the configured band.
func (s *Simulator) step() int {
	next := s.current + s.rng.Intn(5) - 2
	if next > s.Baseline {
		next--
	} else if next < s.Baseline {
		next++
	}
	return clamp(next, s.Min, s.Max)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
