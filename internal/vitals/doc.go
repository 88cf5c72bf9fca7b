// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vitals provides the simulated heart-rate feed shown in the status
// bar. Readings follow a bounded random walk around a resting baseline; no
// real sensor is involved.
package vitals
