// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package speech provides the spoken-output collaborator.
//
// The generation pipeline hands each completed assistant turn to a Speaker.
// Speaking is fire-and-forget: a new utterance cancels whatever is currently
// being spoken, and failures are logged rather than surfaced, because losing
// audio must never stall guidance on screen.
package speech
