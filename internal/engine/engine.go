// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine wraps the local inference runtime behind a small
// load/generate/stop contract.
package engine

import (
	"errors"
	"strconv"
	"strings"
)

// =============================================================================
// ENGINE CONTRACT
// =============================================================================

// Engine is the contract the generation controller programs against.
//
// Generate blocks until the stream genuinely ends; onToken is invoked once
// per emitted token, in emission order, from the generating goroutine. Stop
// is advisory: tokens already buffered inside the runtime may still arrive
// after it is called, and callers must keep accepting callbacks until
// Generate returns.
type Engine interface {
	// Load loads the model and tokenizer. Idempotent once loaded.
	Load() error
	// IsLoaded reports whether a loaded session is available.
	IsLoaded() bool
	// Generate streams tokens for the prompt, up to maxTokens.
	Generate(prompt string, maxTokens int, onToken func(token string)) error
	// Stop signals the current generation to halt. Best-effort.
	Stop()
}

// Config holds the opaque file paths the session is constructed from.
// Both paths must be present for generation to be available at all; the UI
// surfaces their absence as disabled input, not as an error.
type Config struct {
	ModelPath     string
	TokenizerPath string

	// Runtime knobs
	ContextSize int
	Threads     int
}

// Configured reports whether both asset paths are resolved.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.ModelPath) != "" && strings.TrimSpace(c.TokenizerPath) != ""
}

// Available reports whether the binary was compiled with the real llama
// runtime (build tag "llama").
func Available() bool {
	return llamaBuilt
}

// =============================================================================
// ERROR TYPES
// =============================================================================

// Kind categorizes engine failures for controller-level handling.
type Kind int

const (
	KindLoad Kind = iota
	KindGenerate
)

// Well-known engine error codes.
const (
	CodeUnavailable    = 1 // runtime not compiled in / native dependency missing
	CodeModelOpen      = 2 // model file could not be opened or parsed
	CodePredictFailure = 3 // generation aborted inside the runtime
)

// Error is a failure raised by the inference runtime, carrying the numeric
// code the session surfaces in status turns.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message + " (error " + strconv.Itoa(e.Code) + ")"
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewLoadError constructs a load-phase engine error.
func NewLoadError(code int, message string, cause error) *Error {
	return &Error{Kind: KindLoad, Code: code, Message: message, Cause: cause}
}

// NewGenerateError constructs a generate-phase engine error.
func NewGenerateError(code int, message string, cause error) *Error {
	return &Error{Kind: KindGenerate, Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the numeric code from an engine error, or 0.
func CodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// IsLoadFailure reports whether err is a load-phase engine error.
func IsLoadFailure(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindLoad
}

// IsGenerateFailure reports whether err is a generate-phase engine error.
func IsGenerateFailure(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindGenerate
}
