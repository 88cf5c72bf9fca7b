// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcribe provides the voice-input collaborator.
package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the ffmpeg + whisper.cpp recording pipeline.
type Options struct {
	// FFmpegBin is the capture binary (default "ffmpeg").
	FFmpegBin string
	// WhisperBin is the whisper.cpp CLI (default "whisper-cli").
	WhisperBin string
	// WhisperModel is the path to the whisper model file.
	WhisperModel string
	// InputFormat is the ffmpeg capture backend (default "pulse").
	InputFormat string
	// InputDevice is the capture device (default "default").
	InputDevice string
	// RecordSeconds is the fixed clip length (default 5).
	RecordSeconds int
}

func (o *Options) fillDefaults() {
	if o.FFmpegBin == "" {
		o.FFmpegBin = "ffmpeg"
	}
	if o.WhisperBin == "" {
		o.WhisperBin = "whisper-cli"
	}
	if o.InputFormat == "" {
		o.InputFormat = "pulse"
	}
	if o.InputDevice == "" {
		o.InputDevice = "default"
	}
	if o.RecordSeconds <= 0 {
		o.RecordSeconds = 5
	}
}

// WhisperTranscriber records a fixed-duration WAV clip with ffmpeg and runs
// it through a local whisper.cpp binary. One session per Transcribe call.
type WhisperTranscriber struct {
	opts Options
	log  zerolog.Logger
}

// NewWhisperTranscriber builds the transcriber, filling option defaults.
func NewWhisperTranscriber(opts Options, log zerolog.Logger) *WhisperTranscriber {
	opts.fillDefaults()
	return &WhisperTranscriber{opts: opts, log: log}
}

// Transcribe captures one clip and returns the trimmed transcript.
func (w *WhisperTranscriber) Transcribe(ctx context.Context) (string, error) {
	wav := filepath.Join(os.TempDir(), fmt.Sprintf("lifeline-rec-%d.wav", time.Now().UnixNano()))
	defer os.Remove(wav)

	if err := w.record(ctx, wav); err != nil {
		return "", fmt.Errorf("record: %w", err)
	}
	text, err := w.recognize(ctx, wav)
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}

// record captures a 16kHz mono WAV, the format whisper.cpp expects.
func (w *WhisperTranscriber) record(ctx context.Context, wav string) error {
	args := []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "warning",
		"-f", w.opts.InputFormat,
		"-i", w.opts.InputDevice,
		"-ac", "1",
		"-ar", "16000",
		"-t", strconv.Itoa(w.opts.RecordSeconds),
		"-y", wav,
	}
	cmd := exec.CommandContext(ctx, w.opts.FFmpegBin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	w.log.Debug().Int("seconds", w.opts.RecordSeconds).Msg("recording started")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// recognize runs whisper.cpp over the clip and returns its stdout transcript.
func (w *WhisperTranscriber) recognize(ctx context.Context, wav string) (string, error) {
	args := []string{
		"--no-timestamps",
		"--no-prints",
		"-f", wav,
	}
	if w.opts.WhisperModel != "" {
		args = append(args, "-m", w.opts.WhisperModel)
	}
	cmd := exec.CommandContext(ctx, w.opts.WhisperBin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return CleanTranscript(stdout.String()), nil
}

// CleanTranscript collapses whisper output into a single utterance line.
// Bracketed annotations like [BLANK_AUDIO] or [inaudible] are dropped; a
// transcript that was nothing but annotations comes back empty.
func CleanTranscript(raw string) string {
	var parts []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
