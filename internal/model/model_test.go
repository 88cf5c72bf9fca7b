// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation store.
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TURN TESTS
// =============================================================================

func TestTurn_AppendToken_StripsLeadingWhitespace(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{
			name:   "leading newline on first token",
			tokens: []string{"\n\nSplint", " the leg"},
			want:   "Splint the leg",
		},
		{
			name:   "whitespace-only first token",
			tokens: []string{"\n", "Splint", " the leg"},
			want:   "Splint the leg",
		},
		{
			name:   "interior whitespace preserved",
			tokens: []string{"Keep", " calm.\n", "Breathe."},
			want:   "Keep calm.\nBreathe.",
		},
		{
			name:   "no leading whitespace",
			tokens: []string{"Call", " for help"},
			want:   "Call for help",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			turn := NewAssistantTurn()
			for _, tok := range tc.tokens {
				turn.AppendToken(tok)
			}
			turn.Finalize()
			assert.Equal(t, tc.want, turn.Text)
		})
	}
}

func TestTurn_AppendToken_TracksCountAndTimestamp(t *testing.T) {
	turn := NewAssistantTurn()
	before := turn.LastUpdated

	turn.AppendToken("a")
	turn.AppendToken("b")
	turn.AppendToken("c")

	assert.Equal(t, 3, turn.TokenCount)
	assert.False(t, turn.LastUpdated.Before(before))
}

func TestTurn_AppendToken_IgnoredWhenNotStreaming(t *testing.T) {
	turn := NewUserTurn("hello")
	turn.AppendToken("ignored")
	assert.Equal(t, "hello", turn.Text)
	assert.Zero(t, turn.TokenCount)
}

func TestTurn_BecomeStatus_DiscardsPartialText(t *testing.T) {
	turn := NewAssistantTurn()
	turn.AppendToken("half a sen")
	turn.BecomeStatus("Generation failed (error 3)")

	assert.Equal(t, RoleSystemInfo, turn.Role)
	assert.Equal(t, "Generation failed (error 3)", turn.Text)
	assert.False(t, turn.IsStreaming)
	assert.Zero(t, turn.TokenCount)
}

func TestTurn_Preview_TruncatesOnRunes(t *testing.T) {
	turn := NewUserTurn("héllo wörld, this is a longer line")
	got := turn.Preview(10)
	assert.Equal(t, "héllo w...", got)
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_ActiveTurn(t *testing.T) {
	conv := NewConversation()
	assert.Nil(t, conv.ActiveTurn())

	conv.AddUserTurn("I broke my leg")
	assert.Nil(t, conv.ActiveTurn())

	active := conv.AddAssistantTurn()
	require.NotNil(t, conv.ActiveTurn())
	assert.Same(t, active, conv.ActiveTurn())

	conv.FinalizeActive()
	assert.Nil(t, conv.ActiveTurn())
}

func TestConversation_AppendToken_RoutesToActiveTurn(t *testing.T) {
	conv := NewConversation()
	conv.AddUserTurn("help")
	conv.AddAssistantTurn()

	conv.AppendToken("Stay ")
	conv.AppendToken("calm")
	conv.FinalizeActive()

	last := conv.LastTurn()
	require.NotNil(t, last)
	assert.Equal(t, "Stay calm", last.Text)
	assert.Equal(t, RoleAssistant, last.Role)
}

func TestConversation_ReplaceActiveWithStatus(t *testing.T) {
	conv := NewConversation()
	conv.AddUserTurn("help")
	conv.AddAssistantTurn()
	conv.AppendToken("partial out")

	replaced := conv.ReplaceActiveWithStatus("Model load failed (error 7)")
	require.NotNil(t, replaced)
	assert.Equal(t, RoleSystemInfo, replaced.Role)
	assert.Equal(t, "Model load failed (error 7)", replaced.Text)
	assert.Nil(t, conv.ActiveTurn())

	// No-op when nothing is streaming.
	assert.Nil(t, conv.ReplaceActiveWithStatus("again"))
}

func TestConversation_PromptTurns_ExcludesStatusAndEmpty(t *testing.T) {
	conv := NewConversation()
	conv.AddUserTurn("I broke my leg")
	conv.AddSystemInfoTurn("Model loaded in 1.2s")
	assistant := conv.AddAssistantTurn()
	assistant.AppendToken("Splint the leg")
	assistant.Finalize()
	conv.AddUserTurn("done, what now")
	conv.AddAssistantTurn() // empty placeholder, still streaming

	turns := conv.PromptTurns()
	require.Len(t, turns, 3)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, RoleAssistant, turns[1].Role)
	assert.Equal(t, RoleUser, turns[2].Role)
}

func TestConversation_Clear(t *testing.T) {
	conv := NewConversation()
	conv.AddUserTurn("help")
	conv.AddAssistantTurn()
	conv.Clear()

	assert.True(t, conv.IsEmpty())
	assert.Zero(t, conv.TurnCount())
	assert.Nil(t, conv.ActiveTurn())
}

func TestConversation_TokensStreamed(t *testing.T) {
	conv := NewConversation()
	conv.AddUserTurn("help")
	a := conv.AddAssistantTurn()
	a.AppendToken("one")
	a.AppendToken(" two")
	a.Finalize()

	assert.Equal(t, 2, conv.TokensStreamed())
}
