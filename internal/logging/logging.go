// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging wires structured logging for the application.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// =============================================================================
// RING SINK
// =============================================================================

// Ring is a bounded, thread-safe buffer of recent log lines for the in-app
// log overlay. Oldest lines are dropped once capacity is reached.
type Ring struct {
	mu    sync.Mutex
	lines []string
	cap   int
}

// NewRing creates a ring holding up to capacity lines.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 200
	}
	return &Ring{cap: capacity}
}

// Write implements io.Writer for zerolog; each write is one log line.
func (r *Ring) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	if len(r.lines) > r.cap {
		r.lines = r.lines[len(r.lines)-r.cap:]
	}
	return len(p), nil
}

// Lines returns a copy of the buffered lines, oldest first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.lines...)
}

// Len returns the number of buffered lines.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lines)
}

// =============================================================================
// SETUP
// =============================================================================

// Setup opens the log file and returns the root logger, the ring feeding the
// log overlay, and a close func for the file. A file open failure degrades
// to ring-only logging rather than failing startup.
func Setup(dir string, level zerolog.Level) (zerolog.Logger, *Ring, func()) {
	ring := NewRing(200)
	ringWriter := zerolog.ConsoleWriter{Out: ring, NoColor: true, TimeFormat: "15:04:05"}

	writers := []io.Writer{ringWriter}
	closeFn := func() {}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			path := filepath.Join(dir, "lifeline.log")
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				writers = append(writers, f)
				closeFn = func() { _ = f.Close() }
			}
		}
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	return log, ring, closeFn
}
