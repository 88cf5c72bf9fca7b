// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generate owns the turn-based generation pipeline.
package generate

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/lifeline-tui/internal/engine"
	"github.com/jeranaias/lifeline-tui/internal/model"
	"github.com/jeranaias/lifeline-tui/internal/prompt"
)

// =============================================================================
// CONTROLLER STATE
// =============================================================================

// State is the coarse controller status observed by the presentation layer.
type State int32

const (
	StateIdle State = iota
	StateLoading
	StateGenerating
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateGenerating:
		return "Generating"
	default:
		return "Unknown"
	}
}

// DefaultMaxTokens is the fixed maximum sequence length per generation.
const DefaultMaxTokens = 512

// eventBuffer sizes the event channel. The background goroutine blocks when
// the consumer falls behind, which preserves ordering end to end.
const eventBuffer = 64

// =============================================================================
// GENERATION CONTROLLER
// =============================================================================

// Controller orchestrates engine lifecycle and token streaming for one
// generation request at a time.
//
// Submit, Cancel, and Apply must be called from the designated mutation
// context (the UI update loop). The controller spawns one background
// goroutine per accepted request; the goroutine only ever touches the event
// channel, never the conversation.
type Controller struct {
	engine     engine.Engine
	builder    *prompt.Builder
	maxTokens  int
	configured bool
	log        zerolog.Logger

	state     atomic.Int32
	cancelled atomic.Bool
	events    chan Event
}

// NewController wires the controller to its engine session.
//
// configured reflects whether model and tokenizer paths were resolved at
// startup; when false every Submit is rejected and the UI shows input as
// disabled.
func NewController(eng engine.Engine, builder *prompt.Builder, configured bool, log zerolog.Logger) *Controller {
	return &Controller{
		engine:     eng,
		builder:    builder,
		maxTokens:  DefaultMaxTokens,
		configured: configured,
		log:        log,
		events:     make(chan Event, eventBuffer),
	}
}

// Events returns the ordered event stream. Exactly one consumer must drain
// it and apply each event via Apply.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// State returns the coarse controller status.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Configured reports whether generation is available at all.
func (c *Controller) Configured() bool {
	return c.configured
}

// Submit accepts a new user utterance and starts a generation episode.
//
// Returns false (a no-op) if the utterance is blank, no engine configuration
// is present, or the controller is not Idle. On acceptance the prompt is
// built from the current store, then a user turn and an empty streaming
// assistant turn are appended so the UI reflects the pending request
// immediately.
func (c *Controller) Submit(conv *model.Conversation, utterance string) bool {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" || !c.configured {
		return false
	}
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateLoading)) {
		return false
	}

	c.cancelled.Store(false)
	built := c.builder.Build(conv, utterance)
	conv.AddUserTurn(utterance)
	conv.AddAssistantTurn()

	c.log.Info().Int("prompt_len", len(built)).Msg("generation request accepted")
	go c.run(built)
	return true
}

// Cancel raises the cancellation flag for the in-flight generation.
//
// Only effective while Generating; calling it in any other state, or calling
// it repeatedly, has no further effect. Cancellation is cooperative: the
// engine's stop signal is advisory and tokens already buffered inside the
// runtime may still arrive, so the controller keeps draining callbacks and
// discards their effect.
func (c *Controller) Cancel() {
	if c.State() != StateGenerating {
		return
	}
	if c.cancelled.CompareAndSwap(false, true) {
		c.log.Info().Msg("generation cancelled by user")
	}
}

// run is the background execution context: engine load and generate happen
// here, serially, never concurrently with another episode.
func (c *Controller) run(built string) {
	if !c.engine.IsLoaded() {
		start := time.Now()
		if err := c.engine.Load(); err != nil {
			c.log.Error().Err(err).Msg("engine load failed")
			c.events <- LoadFailedEvent{Err: err}
			return
		}
		c.events <- EngineLoadedEvent{Latency: time.Since(start)}
	}

	c.state.Store(int32(StateGenerating))

	detector := newCompletionDetector(prompt.EndOfTurn)
	var stopOnce sync.Once

	err := c.engine.Generate(built, c.maxTokens, func(tok string) {
		if c.cancelled.Load() {
			// Signal the engine once, then drain remaining callbacks
			// without touching the store.
			stopOnce.Do(c.engine.Stop)
			return
		}
		if detector.Observe(tok) {
			c.events <- TurnCompletedEvent{}
			return
		}
		if detector.IsMarker(tok) {
			// Repeated marker: never surfaces as visible text.
			return
		}
		c.events <- TokenEvent{Text: tok}
	})

	cancelled := c.cancelled.Load()
	if err != nil && !cancelled {
		c.log.Error().Err(err).Msg("generation failed mid-stream")
		c.events <- GenerateFailedEvent{Err: err}
		return
	}
	c.events <- StreamClosedEvent{Cancelled: cancelled}
}
