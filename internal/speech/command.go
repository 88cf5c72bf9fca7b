// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package speech provides the spoken-output collaborator.
package speech

import (
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// CommandSpeaker voices text by spawning a system TTS command such as
// `say` (macOS) or `espeak-ng` (Linux). The text is appended as the final
// argument. One utterance process runs at a time; Speak kills the previous
// one before starting the next.
type CommandSpeaker struct {
	command string
	args    []string
	log     zerolog.Logger

	mu      sync.Mutex
	current *exec.Cmd
}

// NewCommandSpeaker builds a speaker from a command line such as
// "espeak-ng -s 160". An empty command yields a NullSpeaker.
func NewCommandSpeaker(commandLine string, log zerolog.Logger) Speaker {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return NullSpeaker{}
	}
	return &CommandSpeaker{
		command: fields[0],
		args:    fields[1:],
		log:     log,
	}
}

// Speak cancels the current utterance and voices text in the background.
func (s *CommandSpeaker) Speak(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.mu.Lock()
	s.killLocked()
	args := append(append([]string{}, s.args...), text)
	cmd := exec.Command(s.command, args...)
	if err := cmd.Start(); err != nil {
		s.mu.Unlock()
		s.log.Error().Err(err).Str("command", s.command).Msg("speech command failed to start")
		return
	}
	s.current = cmd
	s.mu.Unlock()

	go func() {
		// Reap the process; an utterance killed by a newer Speak returns a
		// non-nil error, which is expected.
		if err := cmd.Wait(); err != nil {
			s.log.Debug().Err(err).Msg("speech command ended")
		}
		s.mu.Lock()
		if s.current == cmd {
			s.current = nil
		}
		s.mu.Unlock()
	}()
}

// Stop silences the current utterance, if any.
func (s *CommandSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.killLocked()
}

// killLocked terminates the in-flight utterance. Caller holds s.mu.
func (s *CommandSpeaker) killLocked() {
	if s.current != nil && s.current.Process != nil {
		_ = s.current.Process.Kill()
	}
	s.current = nil
}
