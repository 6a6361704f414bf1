// Package main is the entry point for the console slot machine.
package main

import (
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"slot-machine/internal/config"
	"slot-machine/internal/console"
	"slot-machine/internal/controller"
	"slot-machine/internal/game"
	"slot-machine/internal/game/slot"
	"slot-machine/internal/session"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	closeLog := setupLogging(&cfg.Log)
	defer closeLog()

	log.Debug().Msg("Configuration loaded successfully")

	// Seed once per process unless pinned for a reproducible session
	seed := cfg.Reels.Seed
	if seed == 0 {
		seed = game.SeedFromTime()
	}
	engine := slot.NewEngine(game.NewRandomSource(seed))

	sess := session.New(cfg.Session.StartingChips)

	display := console.New(os.Stdin, colorable.NewColorableStdout(), console.Options{
		ANSI:  cfg.Display.Color && console.IsTerminal(os.Stdout),
		Delay: cfg.Reels.Delay,
	})

	ctrl := controller.New(&controller.Config{
		BuyCap:           cfg.Session.BuyCap,
		BuyMenuThreshold: cfg.Session.BuyMenuThreshold,
		SoftWarning:      cfg.Security.SoftWarning,
		SternWarning:     cfg.Security.SternWarning,
		Eject:            cfg.Security.Eject,
	}, sess, engine, display)

	log.Debug().
		Uint64("seed", seed).
		Int64("chips", sess.Chips()).
		Msg("Slot machine ready")

	reason, err := ctrl.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Session aborted")
	}

	log.Info().Str("reason", reason.String()).Msg("Slot machine closed")
}

// setupLogging applies the configured level and output. The returned
// function closes the log file, if one was opened.
func setupLogging(cfg *config.LogConfig) func() {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		log.Warn().Str("level", cfg.Level).Msg("Unknown log level, using warn")
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.File == "" {
		return func() {}
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Error().Err(err).Str("file", cfg.File).Msg("Failed to open log file, logging to stderr")
		return func() {}
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.RFC3339})
	return func() { _ = f.Close() }
}
