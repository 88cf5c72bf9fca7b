// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversational view for the lifeline TUI.
//
// This file contains the rendering logic for the chat interface: the header,
// the turn history, the input area and the log overlay.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lifeline-tui/internal/model"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the complete chat view.
// Layout: header (1 line) + turn history (viewport) + input (3 lines) + status (1 line).
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showLogs {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.logView.View(),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderInput(),
		m.statusBar.View(),
	)
}

// renderHeader renders the one-line application header.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("lifeline")
	subtitle := m.theme.HeaderSubtitle.Render("hands-free first-aid guide")
	return m.theme.Header.Width(m.width).Render(title + " " + subtitle)
}

// renderInput renders the input area, or a hint when input is unavailable.
func (m Model) renderInput() string {
	container := m.theme.InputContainer.Width(m.width - 2)

	if !m.controller.Configured() {
		hint := m.theme.InputPlaceholder.Render(
			"Model not configured. Set model_path in ~/.lifeline/config.toml and restart.")
		return container.Render(hint)
	}

	if m.recording {
		return container.Render(
			m.spin.View() + " " + m.theme.ThinkingText.Render("Listening..."))
	}

	if m.busy() {
		return container.Render(
			m.spin.View() + " " + m.theme.ThinkingText.Render("Working... press Esc to stop"))
	}

	return container.Render(m.input.View())
}

// =============================================================================
// TURN RENDERING
// =============================================================================

// renderTurns renders the full conversation history.
func (m Model) renderTurns() string {
	if m.conversation.IsEmpty() {
		return m.renderWelcome()
	}

	var b strings.Builder
	for i, t := range m.conversation.Turns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderTurn(t))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTurn renders a single turn as a styled bubble.
func (m Model) renderTurn(t *model.Turn) string {
	switch t.Role {
	case model.RoleUser:
		return m.renderUserTurn(t)
	case model.RoleAssistant:
		return m.renderAssistantTurn(t)
	default:
		return m.renderSystemTurn(t)
	}
}

// renderUserTurn renders a right-aligned user bubble.
func (m Model) renderUserTurn(t *model.Turn) string {
	bubble := m.theme.UserBubble.MaxWidth(m.bubbleWidth()).Render(t.DisplayText())
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble)
}

// renderAssistantTurn renders a left-aligned guidance bubble.
// Finalized turns get markdown treatment, streaming turns are shown raw with
// a spinner so partial markup never flickers mid-render.
func (m Model) renderAssistantTurn(t *model.Turn) string {
	text := t.DisplayText()

	if t.IsStreaming {
		if text == "" {
			return m.theme.ThinkingText.Render(m.spin.View() + " thinking...")
		}
		return m.theme.AssistantBubble.MaxWidth(m.bubbleWidth()).Render(text + " " + m.spin.View())
	}

	if m.markdown != nil {
		if rendered, err := m.markdown.Render(text); err == nil {
			text = strings.TrimRight(rendered, "\n")
		}
	}
	return m.theme.AssistantBubble.MaxWidth(m.bubbleWidth()).Render(text)
}

// renderSystemTurn renders a centered status bubble.
func (m Model) renderSystemTurn(t *model.Turn) string {
	bubble := m.theme.SystemBubble.Render(t.DisplayText())
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, bubble)
}

// renderWelcome renders the empty-conversation hint.
func (m Model) renderWelcome() string {
	lines := []string{
		m.theme.HeaderTitle.Render("lifeline"),
		"",
		m.theme.ThinkingText.Render("Describe the emergency and press Enter."),
		m.theme.ThinkingText.Render("You will get one step at a time. Follow it, then ask for the next."),
		"",
		m.theme.ShortcutKey.Render("Ctrl+R") + m.theme.ShortcutDesc.Render(" speak instead of typing"),
	}
	block := strings.Join(lines, "\n")
	return lipgloss.Place(
		m.width, m.viewport.Height,
		lipgloss.Center, lipgloss.Center,
		block,
	)
}

// bubbleWidth returns the maximum width for a message bubble.
func (m Model) bubbleWidth() int {
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	return w
}
