package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/iliyamo/leetcode-tracker/internal/config"
	"github.com/iliyamo/leetcode-tracker/internal/logger"
	"github.com/iliyamo/leetcode-tracker/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	lg := logger.New(cfg.App.Env, cfg.App.LogLevel)

	srv, err := server.New(cfg, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("initialize server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			lg.Error().Err(err).Msg("server stopped")
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	lg.Info().Msg("server exited")
}
