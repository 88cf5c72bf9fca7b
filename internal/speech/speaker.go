// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package speech provides the spoken-output collaborator.
package speech

// Speaker voices completed assistant turns.
//
// Speak returns immediately; the utterance plays in the background. Starting
// a new utterance cancels the one currently playing. Stop silences any
// in-flight utterance without starting a new one.
type Speaker interface {
	Speak(text string)
	Stop()
}

// NullSpeaker discards all utterances. Used when no TTS command is
// configured and in tests.
type NullSpeaker struct{}

func (NullSpeaker) Speak(text string) {}

func (NullSpeaker) Stop() {}
