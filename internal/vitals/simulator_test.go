// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vitals provides the simulated heart-rate feed.
package vitals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_ReadingsStayInBand(t *testing.T) {
	s := NewSimulator()
	s.Interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	for i := 0; i < 20; i++ {
		select {
		case r := <-s.Readings():
			assert.GreaterOrEqual(t, r.BPM, s.Min)
			assert.LessOrEqual(t, r.BPM, s.Max)
			assert.False(t, r.At.IsZero())
		case <-time.After(time.Second):
			t.Fatal("no reading produced")
		}
	}
}

func TestSimulator_ChannelClosesOnCancel(t *testing.T) {
	s := NewSimulator()
	s.Interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-s.Readings():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("readings channel never closed")
		}
	}
}

func TestSimulator_StepStaysClamped(t *testing.T) {
	s := NewSimulator()
	s.current = s.Max
	for i := 0; i < 100; i++ {
		s.current = s.step()
		require.GreaterOrEqual(t, s.current, s.Min)
		require.LessOrEqual(t, s.current, s.Max)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 55, clamp(10, 55, 120))
	assert.Equal(t, 120, clamp(500, 55, 120))
	assert.Equal(t, 80, clamp(80, 55, 120))
}
