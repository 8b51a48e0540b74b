package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"

	"github.com/shoplore/backend/internal/config"
)

// Embed all SQL files under migrations/ at compile time so the binary
// carries its schema with it.
//
//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the database schema up to the latest version using
// jackc/tern and the embedded migration files. The applied version is
// tracked in the schema_version table.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	// A single direct connection is enough for a one-time action.
	conn, err := pgx.Connect(ctx, DSN(cfg))
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	return MigrateConn(ctx, logger, conn)
}

// MigrateConn runs migrations over an existing connection. Split out so
// tests can migrate a database they already hold open.
func MigrateConn(ctx context.Context, logger *zerolog.Logger, conn *pgx.Conn) error {
	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}
