// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for lifeline.
//
// Configuration is TOML, loaded from ~/.lifeline/config.toml with built-in
// defaults for every field. A missing file is not an error: the application
// starts with defaults and the generation feature simply stays disabled
// until model paths are configured.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete lifeline configuration.
type Config struct {
	// Model holds the inference engine asset paths and runtime knobs.
	Model ModelConfig `toml:"model"`

	// Speech configures spoken output.
	Speech SpeechConfig `toml:"speech"`

	// Voice configures microphone capture and transcription.
	Voice VoiceConfig `toml:"voice"`

	// Vitals configures the simulated heart-rate feed.
	Vitals VitalsConfig `toml:"vitals"`

	// Log configures structured logging.
	Log LogConfig `toml:"log"`
}

// ModelConfig locates the inference assets. Both paths must be set for
// generation to be available; otherwise input is shown as disabled.
type ModelConfig struct {
	// ModelPath is the model weights file (e.g. a .gguf).
	ModelPath string `toml:"model_path"`
	// TokenizerPath is the tokenizer asset the model was shipped with.
	TokenizerPath string `toml:"tokenizer_path"`
	// ContextSize is the engine context window (tokens).
	ContextSize int `toml:"context_size"`
	// Threads for inference; 0 lets the runtime decide.
	Threads int `toml:"threads"`
}

// SpeechConfig configures the TTS collaborator.
type SpeechConfig struct {
	// Command is the TTS command line, e.g. "espeak-ng -s 160" or "say".
	// Empty disables spoken output.
	Command string `toml:"command"`
}

// VoiceConfig configures the microphone/transcription collaborator.
type VoiceConfig struct {
	// Enabled switches voice input on. Requires ffmpeg and a whisper CLI.
	Enabled bool `toml:"enabled"`
	// FFmpegBin is the capture binary.
	FFmpegBin string `toml:"ffmpeg_bin"`
	// WhisperBin is the whisper.cpp CLI binary.
	WhisperBin string `toml:"whisper_bin"`
	// WhisperModel is the whisper model path.
	WhisperModel string `toml:"whisper_model"`
	// InputFormat is the ffmpeg capture backend (pulse, alsa, avfoundation).
	InputFormat string `toml:"input_format"`
	// InputDevice is the capture device name.
	InputDevice string `toml:"input_device"`
	// RecordSeconds is the fixed push-to-talk clip length.
	RecordSeconds int `toml:"record_seconds"`
}

// VitalsConfig configures the heart-rate simulation.
type VitalsConfig struct {
	// Enabled switches the feed on.
	Enabled bool `toml:"enabled"`
	// BaselineBPM is the resting rate the walk is pulled toward.
	BaselineBPM int `toml:"baseline_bpm"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `toml:"level"`
}

// =============================================================================
// DEFAULTS & PATHS
// =============================================================================

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Model: ModelConfig{
			ContextSize: 4096,
		},
		Speech: SpeechConfig{
			Command: "espeak-ng",
		},
		Voice: VoiceConfig{
			Enabled:       true,
			RecordSeconds: 5,
		},
		Vitals: VitalsConfig{
			Enabled:     true,
			BaselineBPM: 72,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the application directory (~/.lifeline), creating nothing.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lifeline"
	}
	return filepath.Join(home, ".lifeline")
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file at path, layered over defaults. A missing file
// returns defaults with no error; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize clamps out-of-range values back to usable defaults.
func (c *Config) normalize() {
	if c.Model.ContextSize <= 0 {
		c.Model.ContextSize = 4096
	}
	if c.Model.Threads < 0 {
		c.Model.Threads = 0
	}
	if c.Voice.RecordSeconds <= 0 || c.Voice.RecordSeconds > 30 {
		c.Voice.RecordSeconds = 5
	}
	if c.Vitals.BaselineBPM < 30 || c.Vitals.BaselineBPM > 200 {
		c.Vitals.BaselineBPM = 72
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		c.Log.Level = "info"
	}
}

// ModelConfigured reports whether both inference asset paths are set.
func (c Config) ModelConfigured() bool {
	return c.Model.ModelPath != "" && c.Model.TokenizerPath != ""
}
