package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

// MigrationTableName is the goose version table.
const MigrationTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationsDir is the directory inside migrationsFS holding the SQL files.
const migrationsDir = "migrations"

// goose keeps its configuration in package globals, so serialize use.
var gooseMu sync.Mutex

// Migrate runs a goose command (up, down, reset, status, version) against db
// using the migrations embedded in this package.
func Migrate(ctx context.Context, db *sql.DB, log *slog.Logger, command string, args ...string) error {
	if log == nil {
		log = slog.Default()
	}

	switch command {
	case "up", "down", "reset", "status", "version", "redo":
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetTableName(MigrationTableName)
	goose.SetLogger(&slogGooseLogger{log: log.With(slog.String("component", "migrations"))})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	log *slog.Logger
}

// Printf implements goose.Logger.
func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements goose.Logger. It does not exit; the error reaches the
// caller through Migrate's return value.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}
