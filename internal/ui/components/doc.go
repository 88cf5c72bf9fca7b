// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the lifeline TUI.

This package contains styled components built on top of the Bubble Tea and
Lip Gloss libraries, consistent with the lifeline design language.

# Components

StatusBar (statusbar.go) - Bottom status bar with pipeline state, simulated
heart rate, streamed token count, and process resource usage.

LogView (logview.go) - Scrollable overlay that renders recent log lines from
the in-memory log ring (toggled with Ctrl+G).
*/
package components
