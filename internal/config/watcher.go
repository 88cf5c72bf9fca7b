// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for lifeline.
package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watch reloads the config file whenever it changes on disk and delivers
// the result to onChange. Only settings that are safe to apply live (speech
// command, voice options) should be taken from reloads; the engine session
// and log level are fixed for the process lifetime.
//
// Watch returns immediately; the watcher stops when ctx is cancelled.
func Watch(ctx context.Context, path string, log zerolog.Logger, onChange func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(path); err != nil {
		// The file may not exist yet; watch its directory instead so a
		// first write is still picked up.
		if dirErr := w.Add(filepath.Dir(path)); dirErr != nil {
			w.Close()
			return err
		}
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name != path && !ev.Has(fsnotify.Create) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					log.Warn().Err(err).Msg("config reload failed; keeping previous")
					continue
				}
				log.Info().Str("path", path).Msg("config reloaded")
				onChange(cfg)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("config watcher error")
			}
		}
	}()
	return nil
}
