// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation store.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the originator of a turn.
type Role string

const (
	RoleUser       Role = "user"
	RoleAssistant  Role = "assistant"
	RoleSystemInfo Role = "system-info"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Guide"
	case RoleSystemInfo:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn represents a single conversational entry.
//
// While an assistant turn is streaming its text grows token by token through
// AppendToken; once the stream ends the builder content is merged into Text.
// SystemInfo turns carry UI-only status messages and never reach the model.
type Turn struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Text string `json:"text"`

	// Streaming state
	// PERFORMANCE: strings.Builder avoids quadratic allocations during streaming
	IsStreaming bool            `json:"-"`
	streamText  strings.Builder `json:"-"`

	// Status display
	TokenCount  int       `json:"token_count,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}

// NewTurn creates a new turn with a generated ID.
func NewTurn(role Role, text string) *Turn {
	now := time.Now()
	return &Turn{
		ID:          generateID(),
		Role:        role,
		Text:        text,
		Timestamp:   now,
		LastUpdated: now,
	}
}

// NewUserTurn creates a new user turn.
func NewUserTurn(text string) *Turn {
	return NewTurn(RoleUser, text)
}

// NewAssistantTurn creates a new empty assistant turn in streaming state.
func NewAssistantTurn() *Turn {
	now := time.Now()
	return &Turn{
		ID:          generateID(),
		Role:        RoleAssistant,
		Timestamp:   now,
		LastUpdated: now,
		IsStreaming: true,
	}
}

// NewSystemInfoTurn creates a new system-info status turn.
func NewSystemInfoTurn(text string) *Turn {
	return NewTurn(RoleSystemInfo, text)
}

// =============================================================================
// TURN METHODS
// =============================================================================

// AppendToken appends a token to a streaming turn.
//
// Leading newline and blank characters are stripped while the turn is still
// empty; some models preface their output with whitespace and the guard keeps
// the rendered (and later spoken) text clean. TokenCount and LastUpdated are
// touched on every append, including fully-stripped ones.
func (t *Turn) AppendToken(token string) {
	if !t.IsStreaming {
		return
	}
	if t.streamText.Len() == 0 {
		token = strings.TrimLeft(token, " \t\r\n")
	}
	t.streamText.WriteString(token)
	t.TokenCount++
	t.LastUpdated = time.Now()
}

// Finalize completes streaming and merges the accumulated text.
func (t *Turn) Finalize() {
	if !t.IsStreaming {
		return
	}
	t.Text = t.streamText.String()
	t.streamText.Reset()
	t.IsStreaming = false
	t.LastUpdated = time.Now()
}

// BecomeStatus converts the turn into a SystemInfo status entry, replacing
// any partially streamed text entirely. Partial, possibly mid-sentence model
// output is considered worse than a clear failure notice.
func (t *Turn) BecomeStatus(text string) {
	t.Role = RoleSystemInfo
	t.Text = text
	t.streamText.Reset()
	t.IsStreaming = false
	t.TokenCount = 0
	t.LastUpdated = time.Now()
}

// DisplayText returns the text to display (streaming or final).
func (t *Turn) DisplayText() string {
	if t.IsStreaming {
		return t.streamText.String()
	}
	return t.Text
}

// IsEmpty returns true if the turn has no content.
func (t *Turn) IsEmpty() bool {
	return len(t.Text) == 0 && t.streamText.Len() == 0
}

// Preview returns a truncated preview of the turn text.
// Uses rune-based truncation to handle Unicode correctly.
func (t *Turn) Preview(maxLen int) string {
	text := t.DisplayText()
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique turn ID.
func generateID() string {
	return "turn_" + uuid.NewString()
}
