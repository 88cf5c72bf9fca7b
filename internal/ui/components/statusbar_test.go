// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the lifeline TUI.
package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/lifeline-tui/internal/generate"
	"github.com/jeranaias/lifeline-tui/internal/ui/styles"
)

func TestStatusBarStateText(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())

	tests := []struct {
		state generate.State
		want  string
	}{
		{generate.StateIdle, "Ready"},
		{generate.StateLoading, "Loading..."},
		{generate.StateGenerating, "Guiding..."},
	}

	for _, tt := range tests {
		bar.SetState(tt.state)
		if got := bar.stateText(); got != tt.want {
			t.Errorf("stateText() for %v = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStatusBarView(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(120)
	bar.ModelName = "llama-3-8b-instruct.Q4_K_M.gguf"
	bar.SetVitals(72)
	bar.TokenCount = 42
	bar.SetResource("mem 42MB | go 12")

	out := bar.View()
	if out == "" {
		t.Fatal("View() returned empty string")
	}
	if !strings.Contains(out, "HR 72bpm") {
		t.Errorf("View() missing heart rate readout: %q", out)
	}
	if !strings.Contains(out, "42 tok") {
		t.Errorf("View() missing token count: %q", out)
	}
	// Model name should be truncated to fit
	if strings.Contains(out, "llama-3-8b-instruct.Q4_K_M.gguf") {
		t.Error("View() should truncate long model names")
	}
}

func TestStatusBarViewNarrow(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(40)
	bar.SetVitals(110)

	out := bar.View()
	if !strings.Contains(out, "110bpm") {
		t.Errorf("narrow View() missing heart rate: %q", out)
	}
	// Shortcuts are dropped in narrow mode
	if strings.Contains(out, "voice") {
		t.Error("narrow View() should not render shortcuts")
	}
}

func TestStatusBarOmitsZeroReadouts(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(120)

	out := bar.View()
	if strings.Contains(out, "bpm") {
		t.Error("View() should omit heart rate when no reading arrived")
	}
	if strings.Contains(out, "tok") {
		t.Error("View() should omit token count at zero")
	}
}

func TestLogViewEmpty(t *testing.T) {
	lv := NewLogView(styles.NewTheme())
	lv.SetSize(80, 24)

	out := lv.View()
	if !strings.Contains(out, "no log output yet") {
		t.Errorf("empty LogView should show placeholder: %q", out)
	}
}

func TestLogViewShowsMostRecent(t *testing.T) {
	lv := NewLogView(styles.NewTheme())
	lv.SetSize(80, 10)

	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "line-" + string(rune('a'+i))
	}
	lv.SetLines(lines)

	out := lv.View()
	if !strings.Contains(out, "line-t") {
		t.Error("LogView should include the newest line")
	}
	if strings.Contains(out, "line-a") {
		t.Error("LogView should drop lines that do not fit")
	}
}
