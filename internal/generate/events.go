// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generate owns the turn-based generation pipeline.
package generate

import "time"

// =============================================================================
// PIPELINE EVENTS
// =============================================================================

// Event is one observable effect of the generation pipeline. Events are
// emitted by the background goroutine in stream order and must be applied in
// that order by a single consumer.
type Event interface {
	isEvent()
}

// EngineLoadedEvent reports a successful lazy engine load.
type EngineLoadedEvent struct {
	Latency time.Duration
}

// LoadFailedEvent reports a failed engine load. Terminal: the request is
// abandoned and the controller returns to Idle when the event is applied.
type LoadFailedEvent struct {
	Err error
}

// TokenEvent delivers one generated token for the active assistant turn.
type TokenEvent struct {
	Text string
}

// TurnCompletedEvent fires when the end-of-turn marker is observed in the
// raw token stream. At most one per generation episode. The marker text
// itself is never delivered as a TokenEvent.
type TurnCompletedEvent struct{}

// GenerateFailedEvent reports a mid-stream engine failure. Terminal.
type GenerateFailedEvent struct {
	Err error
}

// StreamClosedEvent reports that the token stream fully drained, whether it
// ran to completion or was cancelled. Terminal.
type StreamClosedEvent struct {
	Cancelled bool
}

func (EngineLoadedEvent) isEvent()   {}
func (LoadFailedEvent) isEvent()     {}
func (TokenEvent) isEvent()          {}
func (TurnCompletedEvent) isEvent()  {}
func (GenerateFailedEvent) isEvent() {}
func (StreamClosedEvent) isEvent()   {}
