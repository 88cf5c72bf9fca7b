// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generate owns the turn-based generation pipeline.
package generate

import (
	"fmt"

	"github.com/jeranaias/lifeline-tui/internal/engine"
	"github.com/jeranaias/lifeline-tui/internal/model"
	"github.com/jeranaias/lifeline-tui/internal/speech"
)

// Apply folds one pipeline event into the conversation store.
//
// Must be called from the single mutation context, in the order events were
// received. Applying the turn-completion event reads the assembled turn text
// and hands it to the speaker in the same step, so the spoken text always
// matches what the stream produced. Terminal events return the controller to
// Idle; only then can the next Submit be accepted.
func (c *Controller) Apply(ev Event, conv *model.Conversation, speaker speech.Speaker) {
	switch e := ev.(type) {
	case EngineLoadedEvent:
		conv.ReplaceActiveWithStatus(fmt.Sprintf("Model loaded in %.1fs", e.Latency.Seconds()))
		conv.AddAssistantTurn()

	case LoadFailedEvent:
		conv.ReplaceActiveWithStatus(statusText("Model load failed", e.Err))
		c.state.Store(int32(StateIdle))

	case TokenEvent:
		conv.AppendToken(e.Text)

	case TurnCompletedEvent:
		if active := conv.ActiveTurn(); active != nil {
			if text := active.DisplayText(); text != "" && speaker != nil {
				speaker.Speak(text)
			}
		}

	case GenerateFailedEvent:
		conv.ReplaceActiveWithStatus(statusText("Generation failed", e.Err))
		c.state.Store(int32(StateIdle))

	case StreamClosedEvent:
		// Cancelled episodes keep whatever text already streamed in; a
		// clean close just seals the turn.
		conv.FinalizeActive()
		c.state.Store(int32(StateIdle))
	}
}

// statusText renders an engine failure as a SystemInfo turn body carrying
// the engine's numeric error code.
func statusText(prefix string, err error) string {
	if code := engine.CodeOf(err); code != 0 {
		return fmt.Sprintf("%s (error %d)", prefix, code)
	}
	if err != nil {
		return prefix + ": " + err.Error()
	}
	return prefix
}
