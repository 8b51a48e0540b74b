package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shoplore/backend/internal/config"
	"github.com/shoplore/backend/internal/database"
	"github.com/shoplore/backend/internal/logger"
	"github.com/shoplore/backend/internal/repository"
	"github.com/shoplore/backend/internal/server"
	"github.com/shoplore/backend/internal/service"
)

const migrateTimeout = 30 * time.Second

func main() {
	cfg, err := config.New()
	if err != nil {
		// config.New logs fatally itself; this is belt and braces.
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	if err := database.Migrate(ctx, log, cfg); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	cancel()

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)
	if _, err := service.NewServices(srv, repos); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	log.Info().Str("env", cfg.Primary.Env).Msg("shoplore backend ready")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	if err := srv.Shutdown(); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("shoplore backend gracefully stopped")
}
