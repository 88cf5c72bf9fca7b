// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversational view for the lifeline TUI.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"

	"github.com/jeranaias/lifeline-tui/internal/generate"
	"github.com/jeranaias/lifeline-tui/internal/logging"
	"github.com/jeranaias/lifeline-tui/internal/model"
	"github.com/jeranaias/lifeline-tui/internal/speech"
	"github.com/jeranaias/lifeline-tui/internal/transcribe"
	"github.com/jeranaias/lifeline-tui/internal/ui/components"
	"github.com/jeranaias/lifeline-tui/internal/ui/styles"
	"github.com/jeranaias/lifeline-tui/internal/vitals"
)

// voiceCaptureTimeout bounds a single push-to-talk capture, including the
// fixed recording window and the transcription pass that follows it.
const voiceCaptureTimeout = 30 * time.Second

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options carries the collaborators the chat model is wired with at startup.
type Options struct {
	Theme        *styles.Theme
	Conversation *model.Conversation
	Controller   *generate.Controller
	Speaker      speech.Speaker
	Transcriber  transcribe.Transcriber
	Vitals       <-chan vitals.Reading
	LogRing      *logging.Ring
	ModelName    string
	VoiceEnabled bool
	Log          zerolog.Logger
}

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// Conversation store, mutated only inside Update
	conversation *model.Conversation

	// Pipeline
	controller *generate.Controller
	speaker    speech.Speaker

	// Voice input
	transcriber  transcribe.Transcriber
	voiceEnabled bool
	recording    bool

	// Background streams
	vitals  <-chan vitals.Reading
	logRing *logging.Ring

	// UI Components
	viewport  viewport.Model
	input     textinput.Model
	spin      spinner.Model
	statusBar *components.StatusBar
	logView   *components.LogView

	// Markdown rendering for finalized turns
	markdown *glamour.TermRenderer

	// Key bindings
	keyMap KeyMap

	// Overlay state
	showLogs bool

	log zerolog.Logger
}

// New creates a new chat model.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Describe the situation..."
	ti.CharLimit = 2048
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = opts.Theme.Spinner

	bar := components.NewStatusBar(opts.Theme)
	bar.ModelName = opts.ModelName

	// Word wrap is refreshed on resize
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)
	if err != nil {
		opts.Log.Warn().Err(err).Msg("markdown renderer unavailable, falling back to plain text")
		md = nil
	}

	conv := opts.Conversation
	if conv == nil {
		conv = model.NewConversation()
	}

	speaker := opts.Speaker
	if speaker == nil {
		speaker = speech.NullSpeaker{}
	}

	transcriber := opts.Transcriber
	if transcriber == nil {
		transcriber = transcribe.Disabled{}
	}

	return Model{
		theme:        opts.Theme,
		conversation: conv,
		controller:   opts.Controller,
		speaker:      speaker,
		transcriber:  transcriber,
		voiceEnabled: opts.VoiceEnabled,
		vitals:       opts.Vitals,
		logRing:      opts.LogRing,
		viewport:     vp,
		input:        ti,
		spin:         sp,
		statusBar:    bar,
		logView:      components.NewLogView(opts.Theme),
		markdown:     md,
		keyMap:       DefaultKeyMap(),
		log:          opts.Log,
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the long-lived readers for the pipeline and vitals streams.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		waitForEvent(m.controller.Events()),
		resourceTick(),
	}
	if m.vitals != nil {
		cmds = append(cmds, waitForVitals(m.vitals))
	}
	return tea.Batch(cmds...)
}

// busy reports whether a generation episode is in flight.
func (m Model) busy() bool {
	return m.controller.State() != generate.StateIdle
}
