// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation store.
package model

import "time"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the ordered sequence of turns for one session.
//
// Insertion order is chronological order and is the order replayed into
// prompts. The conversation is created empty at session start, cleared on an
// explicit reset, and never persisted. At most one turn is streaming at any
// time, and a streaming turn always has RoleAssistant.
type Conversation struct {
	Turns     []*Turn   `json:"turns"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewConversation creates a new empty conversation.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		Turns:     make([]*Turn, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// =============================================================================
// TURN MANAGEMENT
// =============================================================================

// AddTurn appends a turn to the conversation.
func (c *Conversation) AddTurn(t *Turn) {
	c.Turns = append(c.Turns, t)
	c.UpdatedAt = time.Now()
}

// AddUserTurn creates and appends a user turn.
func (c *Conversation) AddUserTurn(text string) *Turn {
	t := NewUserTurn(text)
	c.AddTurn(t)
	return t
}

// AddAssistantTurn creates and appends an empty streaming assistant turn.
func (c *Conversation) AddAssistantTurn() *Turn {
	t := NewAssistantTurn()
	c.AddTurn(t)
	return t
}

// AddSystemInfoTurn creates and appends a status turn.
func (c *Conversation) AddSystemInfoTurn(text string) *Turn {
	t := NewSystemInfoTurn(text)
	c.AddTurn(t)
	return t
}

// LastTurn returns the most recent turn, or nil if empty.
func (c *Conversation) LastTurn() *Turn {
	if len(c.Turns) == 0 {
		return nil
	}
	return c.Turns[len(c.Turns)-1]
}

// ActiveTurn returns the currently streaming turn, or nil if none.
// The streaming turn is always the most recent one.
func (c *Conversation) ActiveTurn() *Turn {
	last := c.LastTurn()
	if last != nil && last.IsStreaming {
		return last
	}
	return nil
}

// AppendToken appends a token to the active streaming turn, if any.
func (c *Conversation) AppendToken(token string) {
	if active := c.ActiveTurn(); active != nil {
		active.AppendToken(token)
		c.UpdatedAt = active.LastUpdated
	}
}

// FinalizeActive completes the active streaming turn, if any.
func (c *Conversation) FinalizeActive() {
	if active := c.ActiveTurn(); active != nil {
		active.Finalize()
		c.UpdatedAt = active.LastUpdated
	}
}

// ReplaceActiveWithStatus converts the active streaming turn into a
// SystemInfo status entry, discarding any partially streamed text. Returns
// the converted turn, or nil if nothing was streaming.
func (c *Conversation) ReplaceActiveWithStatus(text string) *Turn {
	active := c.ActiveTurn()
	if active == nil {
		return nil
	}
	active.BecomeStatus(text)
	c.UpdatedAt = active.LastUpdated
	return active
}

// Clear removes all turns from the conversation.
func (c *Conversation) Clear() {
	c.Turns = make([]*Turn, 0)
	c.UpdatedAt = time.Now()
}

// TurnCount returns the number of turns.
func (c *Conversation) TurnCount() int {
	return len(c.Turns)
}

// IsEmpty returns true if there are no turns.
func (c *Conversation) IsEmpty() bool {
	return len(c.Turns) == 0
}

// =============================================================================
// PROMPT SUPPORT
// =============================================================================

// PromptTurns returns the turns that belong in model context: SystemInfo
// status entries and turns that never produced output are excluded.
func (c *Conversation) PromptTurns() []*Turn {
	out := make([]*Turn, 0, len(c.Turns))
	for _, t := range c.Turns {
		if t.Role == RoleSystemInfo {
			continue
		}
		if t.IsEmpty() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TokensStreamed returns the total token count across assistant turns,
// used for the status display.
func (c *Conversation) TokensStreamed() int {
	total := 0
	for _, t := range c.Turns {
		if t.Role == RoleAssistant {
			total += t.TokenCount
		}
	}
	return total
}
