// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generate owns the turn-based generation pipeline.
//
// The Controller enforces the at-most-one-active-generation invariant,
// manages the engine session lifecycle, streams tokens off a single
// background goroutine, and supports cooperative mid-generation
// cancellation. It never mutates the conversation store from the background
// goroutine: every observable effect travels as an Event through one ordered
// channel, and the single consumer (the UI update loop) applies events via
// Controller.Apply.
//
// Making event application and turn-completion detection one atomic step on
// one execution context is deliberate: the completion handler reads the
// fully-assembled turn text at the moment the end-of-turn marker is applied,
// so the text handed to the speaker can never be missing a trailing fragment.
//
// # State machine
//
//	Idle -> Loading -> Generating -> Idle
//
// Submit is rejected unless the controller is Idle, and Idle is only
// re-entered once the consumer has applied the terminal event of the
// episode, so two generations can never interleave their mutations.
package generate
