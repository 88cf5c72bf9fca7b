// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging wires structured logging for the application.
//
// Log lines go to a file under the app directory and, in parallel, into a
// bounded in-memory ring that backs the in-app log overlay. Nothing is ever
// written to the terminal itself: the TUI owns the screen.
package logging
