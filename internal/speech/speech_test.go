// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package speech provides the spoken-output collaborator.
package speech

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewCommandSpeaker_EmptyCommandIsNull(t *testing.T) {
	s := NewCommandSpeaker("", zerolog.Nop())
	assert.IsType(t, NullSpeaker{}, s)

	s = NewCommandSpeaker("   ", zerolog.Nop())
	assert.IsType(t, NullSpeaker{}, s)
}

func TestNewCommandSpeaker_SplitsArguments(t *testing.T) {
	s := NewCommandSpeaker("espeak-ng -s 160", zerolog.Nop())
	cs, ok := s.(*CommandSpeaker)
	assert.True(t, ok)
	assert.Equal(t, "espeak-ng", cs.command)
	assert.Equal(t, []string{"-s", "160"}, cs.args)
}

func TestCommandSpeaker_SpeakEmptyTextIsNoop(t *testing.T) {
	s := NewCommandSpeaker("definitely-not-a-real-tts-binary", zerolog.Nop())
	// Must not spawn anything or panic on blank input.
	s.Speak("")
	s.Speak("   \n")
	s.Stop()
}

func TestCommandSpeaker_MissingBinaryIsNonFatal(t *testing.T) {
	s := NewCommandSpeaker("definitely-not-a-real-tts-binary", zerolog.Nop())
	// Start fails, Speak swallows it; the pipeline must keep running.
	s.Speak("splint the leg")
	s.Stop()
}

func TestNullSpeaker(t *testing.T) {
	var s Speaker = NullSpeaker{}
	s.Speak("anything")
	s.Stop()
}
