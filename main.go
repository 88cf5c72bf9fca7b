// lifeline TUI - hands-free first-aid guidance from a local model.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/jeranaias/lifeline-tui/internal/config"
	"github.com/jeranaias/lifeline-tui/internal/engine"
	"github.com/jeranaias/lifeline-tui/internal/generate"
	"github.com/jeranaias/lifeline-tui/internal/logging"
	"github.com/jeranaias/lifeline-tui/internal/prompt"
	"github.com/jeranaias/lifeline-tui/internal/speech"
	"github.com/jeranaias/lifeline-tui/internal/transcribe"
	"github.com/jeranaias/lifeline-tui/internal/ui/chat"
	"github.com/jeranaias/lifeline-tui/internal/ui/styles"
	"github.com/jeranaias/lifeline-tui/internal/vitals"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		configPath  = flag.String("config", "", "config file path (default ~/.lifeline/config.toml)")
		noVoice     = flag.Bool("no-voice", false, "disable microphone capture")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("lifeline %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "lifeline requires an interactive terminal")
		os.Exit(1)
	}

	path := *configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level, _ := zerolog.ParseLevel(cfg.Log.Level)
	log, ring, closeLogs := logging.Setup(config.Dir(), level)
	defer closeLogs()

	log.Info().
		Str("version", Version).
		Bool("model_configured", cfg.ModelConfigured()).
		Bool("inference_built_in", engine.Available()).
		Msg("starting lifeline")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Inference pipeline
	eng := engine.NewSession(engine.Config{
		ModelPath:     cfg.Model.ModelPath,
		TokenizerPath: cfg.Model.TokenizerPath,
		ContextSize:   cfg.Model.ContextSize,
		Threads:       cfg.Model.Threads,
	}, log)
	controller := generate.NewController(eng, prompt.NewBuilder(), cfg.ModelConfigured(), log)

	// Voice output
	speaker := speech.NewCommandSpeaker(cfg.Speech.Command, log)
	defer speaker.Stop()

	// Voice input
	voiceEnabled := cfg.Voice.Enabled && !*noVoice
	var transcriber transcribe.Transcriber = transcribe.Disabled{}
	if voiceEnabled {
		transcriber = transcribe.NewWhisperTranscriber(transcribe.Options{
			FFmpegBin:     cfg.Voice.FFmpegBin,
			WhisperBin:    cfg.Voice.WhisperBin,
			WhisperModel:  cfg.Voice.WhisperModel,
			InputFormat:   cfg.Voice.InputFormat,
			InputDevice:   cfg.Voice.InputDevice,
			RecordSeconds: cfg.Voice.RecordSeconds,
		}, log)
	}

	// Simulated patient vitals
	var readings <-chan vitals.Reading
	if cfg.Vitals.Enabled {
		sim := vitals.NewSimulator()
		sim.Baseline = cfg.Vitals.BaselineBPM
		sim.Start(ctx)
		readings = sim.Readings()
	}

	modelName := ""
	if cfg.Model.ModelPath != "" {
		modelName = filepath.Base(cfg.Model.ModelPath)
	}

	m := chat.New(chat.Options{
		Theme:        styles.NewTheme(),
		Controller:   controller,
		Speaker:      speaker,
		Transcriber:  transcriber,
		Vitals:       readings,
		LogRing:      ring,
		ModelName:    modelName,
		VoiceEnabled: voiceEnabled,
		Log:          log,
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Live config reload. The -no-voice flag outranks the file.
	go func() {
		err := config.Watch(ctx, path, log, func(c config.Config) {
			if *noVoice {
				c.Voice.Enabled = false
			}
			p.Send(chat.ConfigReloadedMsg{Config: c})
		})
		if err != nil {
			log.Warn().Err(err).Msg("config watcher unavailable")
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running lifeline: %v\n", err)
		os.Exit(1)
	}
}
