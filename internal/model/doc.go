// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation store.
//
// This package defines the core domain types used throughout the application
// for representing a guidance session: the ordered sequence of turns exchanged
// between the user and the assistant, plus status entries surfaced by the
// generation pipeline.
//
// # Key Types
//
//   - Conversation: Ordered container of turns, the single source of truth
//     for everything that has been said in the session
//   - Turn: Single conversational entry with role, growable text, and
//     streaming state
//   - Role: Turn role enumeration (user, assistant, system-info)
//
// # Usage
//
// Create a conversation and drive a streaming assistant turn:
//
//	conv := model.NewConversation()
//	conv.AddUserTurn("I broke my leg")
//	conv.AddAssistantTurn()
//	conv.AppendToken("Splint ")
//	conv.AppendToken("the leg")
//	conv.FinalizeActive()
//
// All mutation methods assume a single caller context; the generation
// pipeline funnels every mutation through the UI update loop.
package model
