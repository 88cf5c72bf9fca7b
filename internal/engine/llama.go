// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build llama

// Package engine wraps the local inference runtime behind a small
// load/generate/stop contract.
package engine

import (
	"os"
	"sync"
	"sync/atomic"

	llama "github.com/go-skynet/go-llama.cpp"
	"github.com/rs/zerolog"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// llamaSession owns the loaded llama.cpp model for the process lifetime.
type llamaSession struct {
	cfg Config
	log zerolog.Logger

	mu      sync.Mutex
	model   *llama.LLama
	stopped atomic.Bool
}

// NewSession creates the process-wide engine session. The model is not
// loaded until Load is called.
func NewSession(cfg Config, log zerolog.Logger) Engine {
	return &llamaSession{cfg: cfg, log: log}
}

func (s *llamaSession) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model != nil {
		return nil
	}
	if !s.cfg.Configured() {
		return NewLoadError(CodeModelOpen, "model or tokenizer path not configured", nil)
	}
	for _, path := range []string{s.cfg.ModelPath, s.cfg.TokenizerPath} {
		if fi, err := os.Stat(path); err != nil || fi.IsDir() {
			return NewLoadError(CodeModelOpen, "model asset missing: "+path, err)
		}
	}

	opts := []llama.ModelOption{}
	if s.cfg.ContextSize > 0 {
		opts = append(opts, llama.SetContext(s.cfg.ContextSize))
	}
	m, err := llama.New(s.cfg.ModelPath, opts...)
	if err != nil {
		return NewLoadError(CodeModelOpen, "llama load failed", err)
	}
	s.model = m
	s.log.Info().Str("model", s.cfg.ModelPath).Msg("engine loaded")
	return nil
}

func (s *llamaSession) IsLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model != nil
}

func (s *llamaSession) Generate(prompt string, maxTokens int, onToken func(string)) error {
	s.mu.Lock()
	m := s.model
	s.mu.Unlock()
	if m == nil {
		return NewGenerateError(CodePredictFailure, "engine not loaded", nil)
	}

	s.stopped.Store(false)
	m.SetTokenCallback(func(tok string) bool {
		onToken(tok)
		// Returning false asks the runtime to stop; tokens it already
		// buffered may still arrive through the callback.
		return !s.stopped.Load()
	})

	po := []llama.PredictOption{
		llama.SetTokens(maxTokens),
	}
	if s.cfg.Threads > 0 {
		po = append(po, llama.SetThreads(s.cfg.Threads))
	}

	if _, err := m.Predict(prompt, po...); err != nil {
		if s.stopped.Load() {
			// A stop-triggered abort is a normal end of stream.
			return nil
		}
		return NewGenerateError(CodePredictFailure, "llama predict failed", err)
	}
	return nil
}

func (s *llamaSession) Stop() {
	s.stopped.Store(true)
}
