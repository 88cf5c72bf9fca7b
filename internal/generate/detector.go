// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generate owns the turn-based generation pipeline.
package generate

// completionDetector recognizes the end-of-turn marker in the raw token
// stream and fires at most once per generation episode. Detection is purely
// marker-driven, never derived from a length heuristic.
type completionDetector struct {
	marker string
	fired  bool
}

func newCompletionDetector(marker string) *completionDetector {
	return &completionDetector{marker: marker}
}

// Observe reports whether tok is the end-of-turn marker. It returns true
// only on the first observation; repeated markers are swallowed.
func (d *completionDetector) Observe(tok string) bool {
	if tok != d.marker {
		return false
	}
	if d.fired {
		return false
	}
	d.fired = true
	return true
}

// IsMarker reports whether tok is the marker, fired or not. Marker text must
// never reach the conversation store.
func (d *completionDetector) IsMarker(tok string) bool {
	return tok == d.marker
}
