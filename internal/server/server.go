// Package server defines the core Server struct that composes the
// app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger
//   - database pool
//
// The HTTP surface lives in the surrounding application; this container
// only provides the shared resources and clean shutdown for the layers
// below it.
package server

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shoplore/backend/internal/config"
	"github.com/shoplore/backend/internal/database"
)

// Server is the application container that holds shared resources.
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// DB holds the PostgreSQL pool wrapper.
	DB *database.Database
}

// New constructs a Server and initializes core dependencies. The
// database is pinged during initialization, so a returned Server is
// ready for repository construction.
func New(cfg *config.Config, logger *zerolog.Logger) (*Server, error) {
	db, err := database.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config: cfg,
		Logger: logger,
		DB:     db,
	}, nil
}

// Shutdown releases the server's resources.
func (s *Server) Shutdown() error {
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
