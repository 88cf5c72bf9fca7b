// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversational view for the lifeline TUI.
package chat

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/lifeline-tui/internal/config"
	"github.com/jeranaias/lifeline-tui/internal/generate"
	"github.com/jeranaias/lifeline-tui/internal/model"
	"github.com/jeranaias/lifeline-tui/internal/prompt"
	"github.com/jeranaias/lifeline-tui/internal/speech"
	"github.com/jeranaias/lifeline-tui/internal/transcribe"
	"github.com/jeranaias/lifeline-tui/internal/ui/styles"
)

// scriptedEngine emits a fixed token sequence for every Generate call.
type scriptedEngine struct {
	tokens []string
	loaded bool
}

func (e *scriptedEngine) Load() error    { e.loaded = true; return nil }
func (e *scriptedEngine) IsLoaded() bool { return e.loaded }
func (e *scriptedEngine) Stop()          {}

func (e *scriptedEngine) Generate(_ string, _ int, onToken func(string)) error {
	for _, tok := range e.tokens {
		onToken(tok)
	}
	return nil
}

// countingSpeaker records utterances passed to Speak.
type countingSpeaker struct {
	mu     sync.Mutex
	spoken []string
}

func (s *countingSpeaker) Speak(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
}

func (s *countingSpeaker) Stop() {}

func (s *countingSpeaker) Spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

func newTestModel(t *testing.T, eng *scriptedEngine, configured bool) (Model, *countingSpeaker) {
	t.Helper()

	speaker := &countingSpeaker{}
	ctrl := generate.NewController(eng, prompt.NewBuilder(), configured, zerolog.Nop())

	m := New(Options{
		Theme:      styles.NewTheme(),
		Controller: ctrl,
		Speaker:    speaker,
		ModelName:  "test-model.gguf",
		Log:        zerolog.Nop(),
	})

	// Size the view so rendering works
	res, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return res.(Model), speaker
}

// drain applies pipeline events until the controller returns to Idle.
func drain(t *testing.T, m Model) Model {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for m.State() != generate.StateIdle {
		select {
		case ev := <-m.controller.Events():
			res, _ := m.Update(PipelineEventMsg{Event: ev})
			m = res.(Model)
		case <-deadline:
			t.Fatal("pipeline did not return to idle")
		}
	}
	return m
}

func TestSubmitStreamsAndSpeaks(t *testing.T) {
	eng := &scriptedEngine{tokens: []string{"Splint", " the", " leg", prompt.EndOfTurn}}
	m, speaker := newTestModel(t, eng, true)

	res, cmd := m.submit("My leg is broken")
	m = res.(Model)
	require.NotNil(t, cmd, "accepted submit should schedule work")

	// User turn and assistant placeholder appear immediately
	require.Len(t, m.conversation.Turns, 2)
	assert.Equal(t, model.RoleUser, m.conversation.Turns[0].Role)
	assert.Equal(t, model.RoleAssistant, m.conversation.Turns[1].Role)

	m = drain(t, m)

	last := m.conversation.LastTurn()
	assert.Equal(t, "Splint the leg", last.Text)
	assert.False(t, last.IsStreaming)
	assert.Equal(t, []string{"Splint the leg"}, speaker.Spoken())
}

func TestSubmitRejectedWhenUnconfigured(t *testing.T) {
	m, _ := newTestModel(t, &scriptedEngine{}, false)

	res, cmd := m.submit("Help")
	m = res.(Model)

	assert.Nil(t, cmd)
	assert.True(t, m.conversation.IsEmpty())
	assert.Contains(t, m.View(), "Model not configured")
}

func TestSubmitRejectedWhileBusy(t *testing.T) {
	eng := &scriptedEngine{tokens: []string{"Press", " firmly", prompt.EndOfTurn}}
	m, _ := newTestModel(t, eng, true)

	res, _ := m.submit("Severe bleeding")
	m = res.(Model)

	res, cmd := m.submit("Another emergency")
	m = res.(Model)
	assert.Nil(t, cmd, "second submit must be rejected while busy")

	m = drain(t, m)

	users := 0
	for _, turn := range m.conversation.Turns {
		if turn.Role == model.RoleUser {
			users++
		}
	}
	assert.Equal(t, 1, users, "rejected submit must not add a user turn")
}

func TestClearConversation(t *testing.T) {
	m, _ := newTestModel(t, &scriptedEngine{}, true)
	m.conversation.AddUserTurn("hello")

	res, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = res.(Model)

	assert.True(t, m.conversation.IsEmpty())
}

func TestLogOverlayToggle(t *testing.T) {
	m, _ := newTestModel(t, &scriptedEngine{}, true)

	res, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	m = res.(Model)
	assert.True(t, m.showLogs)
	assert.Contains(t, m.View(), "Recent logs")

	res, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	m = res.(Model)
	assert.False(t, m.showLogs)
}

func TestVoiceDisabledHint(t *testing.T) {
	m, _ := newTestModel(t, &scriptedEngine{}, true)

	res, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = res.(Model)

	require.Equal(t, 1, m.conversation.TurnCount())
	assert.Contains(t, m.conversation.LastTurn().DisplayText(), "Voice input is disabled")
}

func TestTranscriptSubmits(t *testing.T) {
	eng := &scriptedEngine{tokens: []string{"Call", " for", " help", prompt.EndOfTurn}}
	m, _ := newTestModel(t, eng, true)
	m.recording = true

	res, _ := m.Update(TranscriptMsg{Text: "He is not breathing"})
	m = res.(Model)

	require.Len(t, m.conversation.Turns, 2)
	assert.Equal(t, "He is not breathing", m.conversation.Turns[0].DisplayText())
	m = drain(t, m)
	assert.Equal(t, "Call for help", m.conversation.LastTurn().Text)
}

func TestTranscriptErrorShowsStatus(t *testing.T) {
	m, _ := newTestModel(t, &scriptedEngine{}, true)
	m.recording = true

	res, _ := m.Update(TranscriptMsg{Err: assert.AnError})
	m = res.(Model)

	assert.False(t, m.recording)
	require.Equal(t, 1, m.conversation.TurnCount())
	assert.True(t, strings.HasPrefix(m.conversation.LastTurn().DisplayText(), "Voice capture failed"))
}

func TestConfigReloadApplied(t *testing.T) {
	m, _ := newTestModel(t, &scriptedEngine{}, true)

	cfg := config.Default()
	cfg.Model.ModelPath = "/models/llama-3-8b.gguf"
	cfg.Speech.Command = ""
	cfg.Voice.Enabled = false

	res, _ := m.Update(ConfigReloadedMsg{Config: cfg})
	m = res.(Model)

	// An empty speech command silences output instead of spawning a process
	assert.IsType(t, speech.NullSpeaker{}, m.speaker)
	assert.IsType(t, transcribe.Disabled{}, m.transcriber)
	assert.False(t, m.voiceEnabled)
	// Status bar shows the base name, same as at startup
	assert.Equal(t, "llama-3-8b.gguf", m.statusBar.ModelName)

	// Voice key now reports the disabled state
	res, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = res.(Model)
	require.Equal(t, 1, m.conversation.TurnCount())
	assert.Contains(t, m.conversation.LastTurn().DisplayText(), "Voice input is disabled")
}

func TestConfigReloadEnablesVoice(t *testing.T) {
	m, _ := newTestModel(t, &scriptedEngine{}, true)
	require.False(t, m.voiceEnabled)

	cfg := config.Default()
	cfg.Voice.Enabled = true

	res, _ := m.Update(ConfigReloadedMsg{Config: cfg})
	m = res.(Model)

	assert.True(t, m.voiceEnabled)
	assert.IsType(t, &transcribe.WhisperTranscriber{}, m.transcriber)
	assert.Equal(t, "", m.statusBar.ModelName, "no model path means no readout")
}

func TestViewRendersTurnHistory(t *testing.T) {
	m, _ := newTestModel(t, &scriptedEngine{}, true)
	m.conversation.AddUserTurn("My arm is bleeding")
	turn := m.conversation.AddAssistantTurn()
	turn.AppendToken("Apply pressure")
	turn.Finalize()
	m.updateViewport(false)

	out := m.View()
	assert.Contains(t, out, "My arm is bleeding")
	assert.Contains(t, out, "Apply pressure")
}
