// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt serializes conversation history into model-ready prompts.
//
// The builder walks the conversation store in chronological order and emits
// role-tagged segments using the chat template the local model was trained
// on. The delimiter vocabulary is a wire-format contract with the inference
// engine, not a style choice: any deviation silently degrades generation
// quality, so the markers live here as fixed, versioned constants.
//
// Building a prompt has no side effects and never fails; an empty
// conversation yields the system preamble plus the new utterance only.
package prompt
