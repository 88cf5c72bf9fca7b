// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !llama

// Package engine wraps the local inference runtime behind a small
// load/generate/stop contract.
package engine

import "github.com/rs/zerolog"

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = false

// stubSession stands in when the binary is built without the llama tag.
// Load always fails with a dependency-unavailable code so the failure is
// visible in the conversation instead of crashing the process.
type stubSession struct {
	cfg Config
	log zerolog.Logger
}

// NewSession creates the process-wide engine session. The model is not
// loaded until Load is called.
func NewSession(cfg Config, log zerolog.Logger) Engine {
	return &stubSession{cfg: cfg, log: log}
}

func (s *stubSession) Load() error {
	s.log.Warn().Msg("llama runtime not compiled in; rebuild with -tags llama")
	return NewLoadError(CodeUnavailable, "inference runtime unavailable", nil)
}

func (s *stubSession) IsLoaded() bool { return false }

func (s *stubSession) Generate(prompt string, maxTokens int, onToken func(string)) error {
	return NewGenerateError(CodeUnavailable, "inference runtime unavailable", nil)
}

func (s *stubSession) Stop() {}
