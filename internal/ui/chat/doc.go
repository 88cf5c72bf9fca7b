// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main conversational view for the lifeline TUI.

The chat model owns the conversation store and is the single place where it
is mutated. Pipeline events produced by the generation controller arrive as
Bubble Tea messages and are applied one at a time inside Update, so token
appends, completion detection and state transitions all happen on the same
goroutine that renders the view.

# Layout

	header       (1 line)
	viewport     (scrollable turn history)
	input area   (prompt + text input)
	status bar   (pipeline state, heart rate, tokens, resources)

A log overlay (Ctrl+G) replaces the whole view while open and renders the
tail of the in-memory log ring.

# Message flow

	user submits -> controller.Submit -> background generation goroutine
	goroutine    -> Events() channel  -> PipelineEventMsg -> controller.Apply

waitForEvent re-arms itself after every delivered event, which keeps exactly
one reader on the controller's event channel for the life of the program.
*/
package chat
