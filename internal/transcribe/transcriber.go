// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcribe provides the voice-input collaborator.
package transcribe

import "context"

// Transcriber turns one recording session into a final transcript.
//
// Transcribe blocks for the duration of the session; the caller runs it off
// the UI loop. An empty string with a nil error is a valid outcome meaning
// nothing intelligible was said.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}

// Disabled is used when no capture or transcription tooling is configured.
// It always reports "no input".
type Disabled struct{}

func (Disabled) Transcribe(ctx context.Context) (string, error) {
	return "", nil
}
