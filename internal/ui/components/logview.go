// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the lifeline TUI.
package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/lifeline-tui/internal/ui/styles"
)

// =============================================================================
// LOG OVERLAY COMPONENT - Ctrl+G log viewer
// =============================================================================

// LogView renders recent log lines as a boxed overlay.
type LogView struct {
	Width  int
	Height int
	theme  *styles.Theme
	lines  []string
}

// NewLogView creates a new log overlay component.
func NewLogView(theme *styles.Theme) *LogView {
	return &LogView{
		Width:  80,
		Height: 24,
		theme:  theme,
	}
}

// SetSize updates the overlay dimensions.
func (l *LogView) SetSize(width, height int) {
	l.Width = width
	l.Height = height
}

// SetLines replaces the displayed log lines.
func (l *LogView) SetLines(lines []string) {
	l.lines = lines
}

// View renders the overlay showing the most recent lines that fit.
func (l *LogView) View() string {
	boxWidth := l.Width - 4
	if boxWidth < 20 {
		boxWidth = 20
	}
	// Border and padding eat 4 rows, title and hint eat 2 more
	visible := l.Height - 6
	if visible < 3 {
		visible = 3
	}

	lines := l.lines
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	var b strings.Builder
	b.WriteString(l.theme.LogTitle.Render("Recent logs"))
	b.WriteString("\n\n")
	if len(lines) == 0 {
		b.WriteString(l.theme.LogLine.Render("(no log output yet)"))
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		// Unicode-aware truncation so wide runes do not break the box
		b.WriteString(l.theme.LogLine.Render(runewidth.Truncate(line, boxWidth-4, "...")))
	}
	b.WriteString("\n\n")
	b.WriteString(l.theme.ShortcutKey.Render("^G") + l.theme.ShortcutDesc.Render(" close"))

	return l.theme.LogOverlay.Width(boxWidth).Render(b.String())
}
