// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversational view for the lifeline TUI.
//
// This file defines the Bubble Tea message types used by the chat interface
// and the commands that produce them. Messages are organized into:
//   - Pipeline: ordered events from the generation controller
//   - Vitals: simulated heart rate samples
//   - Resources: periodic runtime usage samples
//   - Voice: transcription results from push-to-talk capture
//   - Config: live configuration reloads
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/lifeline-tui/internal/config"
	"github.com/jeranaias/lifeline-tui/internal/generate"
	"github.com/jeranaias/lifeline-tui/internal/transcribe"
	"github.com/jeranaias/lifeline-tui/internal/vitals"
)

// resourceSampleInterval is how often the status bar refreshes its
// runtime usage readout.
const resourceSampleInterval = 2 * time.Second

// =============================================================================
// PIPELINE MESSAGES
// =============================================================================

// PipelineEventMsg delivers one ordered event from the generation pipeline.
type PipelineEventMsg struct {
	Event generate.Event
}

// PipelineClosedMsg signals that the event channel was closed.
type PipelineClosedMsg struct{}

// =============================================================================
// VITALS MESSAGES
// =============================================================================

// VitalsMsg delivers a simulated heart rate sample.
type VitalsMsg struct {
	Reading vitals.Reading
}

// VitalsClosedMsg signals that the vitals stream ended.
type VitalsClosedMsg struct{}

// =============================================================================
// RESOURCE MESSAGES
// =============================================================================

// ResourceTickMsg triggers a runtime usage sample.
type ResourceTickMsg struct{}

// =============================================================================
// VOICE MESSAGES
// =============================================================================

// TranscriptMsg delivers the result of a push-to-talk capture.
type TranscriptMsg struct {
	Text string
	Err  error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg signals that the config file changed on disk.
type ConfigReloadedMsg struct {
	Config config.Config
}

// =============================================================================
// COMMANDS
// =============================================================================

// waitForEvent blocks until the next pipeline event arrives.
// The returned command must be re-issued after every delivered event so the
// channel always has exactly one reader.
func waitForEvent(events <-chan generate.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return PipelineClosedMsg{}
		}
		return PipelineEventMsg{Event: ev}
	}
}

// waitForVitals blocks until the next heart rate sample arrives.
func waitForVitals(readings <-chan vitals.Reading) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-readings
		if !ok {
			return VitalsClosedMsg{}
		}
		return VitalsMsg{Reading: r}
	}
}

// resourceTick schedules the next runtime usage sample.
func resourceTick() tea.Cmd {
	return tea.Tick(resourceSampleInterval, func(time.Time) tea.Msg {
		return ResourceTickMsg{}
	})
}

// captureVoice records from the microphone and transcribes the utterance.
// Capture owns its own timeout so a wedged recorder cannot hang the UI.
func captureVoice(t transcribe.Transcriber, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		text, err := t.Transcribe(ctx)
		return TranscriptMsg{Text: text, Err: err}
	}
}
