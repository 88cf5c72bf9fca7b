// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the lifeline TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/lifeline-tui/internal/generate"
	"github.com/jeranaias/lifeline-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// elevatedBPM is the threshold above which the heart rate readout turns red.
const elevatedBPM = 100

// StatusBar renders the bottom status bar: pipeline state, simulated heart
// rate, streamed token count and process resource usage.
type StatusBar struct {
	State         generate.State // Idle/Loading/Generating
	ModelName     string         // Configured model file name
	BPM           int            // Latest simulated heart rate, 0 when absent
	TokenCount    int            // Tokens streamed into the active episode
	Resource      string         // Formatted runtime sample, e.g. "mem 42MB | go 12"
	Width         int            // Available width
	ShowShortcuts bool           // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		State:         generate.StateIdle,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetState updates the pipeline state display.
func (s *StatusBar) SetState(state generate.State) {
	s.State = state
}

// SetVitals updates the heart rate readout.
func (s *StatusBar) SetVitals(bpm int) {
	s.BPM = bpm
}

// SetResource updates the resource usage readout.
func (s *StatusBar) SetResource(sample string) {
	s.Resource = sample
}

// stateText returns the display string for the pipeline state.
func (s *StatusBar) stateText() string {
	switch s.State {
	case generate.StateLoading:
		return "Loading..."
	case generate.StateGenerating:
		return "Guiding..."
	default:
		return "Ready"
	}
}

// stateStyle returns the style for the pipeline state.
func (s *StatusBar) stateStyle() lipgloss.Style {
	switch s.State {
	case generate.StateLoading:
		return s.theme.StateLoading
	case generate.StateGenerating:
		return s.theme.StateStream
	default:
		return s.theme.StateIdle
	}
}

// heartStyle returns the style for the heart rate readout.
func (s *StatusBar) heartStyle() lipgloss.Style {
	if s.BPM >= elevatedBPM {
		return s.theme.HeartElevated
	}
	return s.theme.HeartNormal
}

// View renders the status bar.
func (s *StatusBar) View() string {
	// Choose layout based on width
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals.
// Format: State | 72bpm | 128 tok
func (s *StatusBar) viewNarrow() string {
	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	parts := []string{s.stateStyle().Render(s.stateText())}

	if s.BPM > 0 {
		parts = append(parts, s.heartStyle().Render(fmt.Sprintf("%dbpm", s.BPM)))
	}

	if s.TokenCount > 0 {
		tokStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		parts = append(parts, tokStyle.Render(fmt.Sprintf("%d tok", s.TokenCount)))
	}

	result := strings.Join(parts, separator)

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewWide renders the full status bar.
// Format: model | State | HR 72bpm | 128 tok | mem 42MB | go 12    ^R voice ^L clear
func (s *StatusBar) viewWide() string {
	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	leftParts := []string{}

	// Model (truncated if needed, Unicode-aware)
	if s.ModelName != "" {
		name := runewidth.Truncate(s.ModelName, 24, "...")
		modelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		leftParts = append(leftParts, modelStyle.Render(name))
	}

	leftParts = append(leftParts, s.stateStyle().Render(s.stateText()))

	if s.BPM > 0 {
		leftParts = append(leftParts, s.heartStyle().Render(fmt.Sprintf("HR %dbpm", s.BPM)))
	}

	if s.TokenCount > 0 {
		tokStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		leftParts = append(leftParts, tokStyle.Render(fmt.Sprintf("%d tok", s.TokenCount)))
	}

	if s.Resource != "" {
		resStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		leftParts = append(leftParts, resStyle.Render(s.Resource))
	}

	leftSection := strings.Join(leftParts, separator)

	rightSection := ""
	if s.ShowShortcuts {
		rightSection = s.renderShortcuts()
	}

	// Calculate spacing between sections
	leftWidth := lipgloss.Width(leftSection)
	rightWidth := lipgloss.Width(rightSection)
	spacing := s.Width - leftWidth - rightWidth - 2
	if spacing < 1 {
		spacing = 1
	}

	result := leftSection + strings.Repeat(" ", spacing) + rightSection

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// renderShortcuts renders keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	keyStyle := s.theme.ShortcutKey
	descStyle := s.theme.ShortcutDesc

	shortcuts := []string{
		keyStyle.Render("^R") + descStyle.Render("voice"),
		keyStyle.Render("Esc") + descStyle.Render("stop"),
		keyStyle.Render("^L") + descStyle.Render("clear"),
		keyStyle.Render("^G") + descStyle.Render("logs"),
	}

	return strings.Join(shortcuts, " ")
}
