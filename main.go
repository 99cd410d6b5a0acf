package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/app"
	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/httpserver"
	"github.com/robalobadob/wordscramble/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("prepare game")
	}
	defer rt.Close()

	// Fail fast: a source that cannot start a round is a configuration error.
	if _, err := rt.NewEngine().Reset(); err != nil {
		log.Fatal().Err(err).Msg("cannot start a round")
	}

	srv := httpserver.New(httpserver.Options{
		Store:          store.NewMemoryStore(),
		NewEngine:      rt.NewEngine,
		Stats:          rt.Lists.Stats,
		Secret:         cfg.SessionSecret,
		SessionTTL:     cfg.SessionTTL,
		RequestTimeout: cfg.RequestTimeout,
		ClientOrigin:   cfg.ClientOrigin,
		CookieSecure:   cfg.CookieSecure,
	})

	start, dictCount := rt.Lists.Stats()
	log.Info().
		Str("port", cfg.Port).
		Str("dictionary", cfg.DictionaryBackend).
		Str("rootMode", cfg.RootMode).
		Int("startWords", start).
		Int("dictionaryWords", dictCount).
		Msg("starting wordscramble server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func setupLogging(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
