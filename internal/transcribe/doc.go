// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcribe provides the voice-input collaborator.
//
// A Transcriber runs one recording session per invocation and produces a
// single best-effort final transcript. An empty transcript means "no input"
// and must not trigger a submission; the caller decides that, not this
// package.
//
// The concrete implementation captures a fixed-duration microphone clip with
// ffmpeg and feeds it through a local whisper.cpp CLI, keeping the whole
// voice path offline like the rest of the application.
package transcribe
