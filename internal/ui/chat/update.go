// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversational view for the lifeline TUI.
package chat

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/lifeline-tui/internal/generate"
	"github.com/jeranaias/lifeline-tui/internal/speech"
	"github.com/jeranaias/lifeline-tui/internal/sysmon"
	"github.com/jeranaias/lifeline-tui/internal/transcribe"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case PipelineEventMsg:
		return m.handlePipelineEvent(msg)

	case PipelineClosedMsg:
		return m, nil

	case VitalsMsg:
		m.statusBar.SetVitals(msg.Reading.BPM)
		return m, waitForVitals(m.vitals)

	case VitalsClosedMsg:
		return m, nil

	case ResourceTickMsg:
		m.statusBar.SetResource(sysmon.Take().Format())
		return m, resourceTick()

	case TranscriptMsg:
		return m.handleTranscript(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)

	case spinner.TickMsg:
		if m.busy() || m.recording {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	default:
		var cmds []tea.Cmd

		if !m.busy() && !m.showLogs {
			var inputCmd tea.Cmd
			m.input, inputCmd = m.input.Update(msg)
			cmds = append(cmds, inputCmd)
		}

		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)

		return m, tea.Batch(cmds...)
	}
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

// handlePipelineEvent applies the next pipeline event to the conversation.
// Applying and detecting happen here, on the same goroutine that renders, so
// a completed turn can never gain tokens between detection and display.
func (m Model) handlePipelineEvent(msg PipelineEventMsg) (tea.Model, tea.Cmd) {
	m.controller.Apply(msg.Event, m.conversation, m.speaker)

	m.statusBar.SetState(m.controller.State())
	m.statusBar.TokenCount = m.conversation.TokensStreamed()
	m.updateViewport(true)

	cmds := []tea.Cmd{waitForEvent(m.controller.Events())}
	if !m.busy() {
		m.input.Focus()
		cmds = append(cmds, textinput.Blink)
	}
	return m, tea.Batch(cmds...)
}

// handleTranscript feeds a transcribed utterance into the pipeline.
func (m Model) handleTranscript(msg TranscriptMsg) (tea.Model, tea.Cmd) {
	m.recording = false

	if msg.Err != nil {
		m.log.Warn().Err(msg.Err).Msg("voice capture failed")
		m.conversation.AddSystemInfoTurn("Voice capture failed: " + msg.Err.Error())
		m.updateViewport(true)
		return m, nil
	}
	if msg.Text == "" {
		m.conversation.AddSystemInfoTurn("Heard nothing, try again")
		m.updateViewport(true)
		return m, nil
	}
	return m.submit(msg.Text)
}

// handleConfigReload applies the live-reloadable settings: the speech
// command, the voice capture options, and the displayed model name. Engine
// settings stay fixed for the process lifetime.
func (m Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	cfg := msg.Config

	m.speaker.Stop()
	m.speaker = speech.NewCommandSpeaker(cfg.Speech.Command, m.log)

	m.voiceEnabled = cfg.Voice.Enabled
	if m.voiceEnabled {
		m.transcriber = transcribe.NewWhisperTranscriber(transcribe.Options{
			FFmpegBin:     cfg.Voice.FFmpegBin,
			WhisperBin:    cfg.Voice.WhisperBin,
			WhisperModel:  cfg.Voice.WhisperModel,
			InputFormat:   cfg.Voice.InputFormat,
			InputDevice:   cfg.Voice.InputDevice,
			RecordSeconds: cfg.Voice.RecordSeconds,
		}, m.log)
	} else {
		m.transcriber = transcribe.Disabled{}
	}

	m.statusBar.ModelName = ""
	if cfg.Model.ModelPath != "" {
		m.statusBar.ModelName = filepath.Base(cfg.Model.ModelPath)
	}

	m.log.Info().
		Bool("voice_enabled", m.voiceEnabled).
		Msg("configuration reloaded")
	return m, nil
}

// handleResize adjusts all components to the new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.theme.SetSize(msg.Width, msg.Height)
	m.statusBar.SetWidth(msg.Width)
	m.logView.SetSize(msg.Width, msg.Height)

	// header (1) + input area (3) + status bar (1)
	contentHeight := msg.Height - 5
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = contentHeight
	m.input.Width = msg.Width - 6

	wrap := msg.Width - 12
	if wrap < 20 {
		wrap = 20
	}
	if md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	); err == nil {
		m.markdown = md
	}

	m.updateViewport(false)
	return m, nil
}

// handleKey dispatches keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The log overlay swallows everything except the keys that close it
	if m.showLogs {
		if key.Matches(msg, m.keyMap.Logs) || key.Matches(msg, m.keyMap.Cancel) {
			m.showLogs = false
		}
		if key.Matches(msg, m.keyMap.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.speaker.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit(m.input.Value())

	case key.Matches(msg, m.keyMap.Cancel):
		m.controller.Cancel()
		m.speaker.Stop()
		return m, nil

	case key.Matches(msg, m.keyMap.Voice):
		return m.startVoiceCapture()

	case key.Matches(msg, m.keyMap.Clear):
		if !m.busy() {
			m.conversation.Clear()
			m.statusBar.TokenCount = 0
			m.updateViewport(false)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Logs):
		m.showLogs = true
		if m.logRing != nil {
			m.logView.SetLines(m.logRing.Lines())
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	// Everything else goes to the text input
	if !m.busy() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// ACTIONS
// =============================================================================

// submit hands an utterance to the generation controller.
func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	if !m.controller.Submit(m.conversation, text) {
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.statusBar.SetState(m.controller.State())
	m.updateViewport(true)
	return m, m.spin.Tick
}

// startVoiceCapture kicks off a push-to-talk recording.
func (m Model) startVoiceCapture() (tea.Model, tea.Cmd) {
	if !m.voiceEnabled {
		m.conversation.AddSystemInfoTurn("Voice input is disabled, enable [voice] in the config")
		m.updateViewport(true)
		return m, nil
	}
	if m.recording || m.busy() {
		return m, nil
	}

	m.recording = true
	m.conversation.AddSystemInfoTurn("Listening...")
	m.updateViewport(true)
	return m, tea.Batch(
		captureVoice(m.transcriber, voiceCaptureTimeout),
		m.spin.Tick,
	)
}

// updateViewport re-renders the turn history into the viewport.
func (m *Model) updateViewport(follow bool) {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTurns())
	if follow || atBottom {
		m.viewport.GotoBottom()
	}
}

// State exposes the pipeline state for the status bar and tests.
func (m Model) State() generate.State {
	return m.controller.State()
}
