package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tenantbot/api-registry/internal/config"
	"github.com/tenantbot/api-registry/internal/platform/logger"
	"github.com/tenantbot/api-registry/internal/platform/postgres"
	"github.com/tenantbot/api-registry/internal/service/auth"
)

var migrateCommands = []string{"up", "down", "redo", "reset", "status", "version"}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "registry",
		Short:         "API registry for the tenant assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, cfgFile)
		},
	}

	migrate := &cobra.Command{
		Use:       "migrate <" + strings.Join(migrateCommands, "|") + ">",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrateCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, cfgFile, args[0])
		},
	}

	var cost int
	hash := &cobra.Command{
		Use:   "hash-password",
		Short: "Read a password from stdin and print its bcrypt hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHashPassword(cmd.InOrStdin(), cmd.OutOrStdout(), cost)
		},
	}
	hash.Flags().IntVar(&cost, "cost", 10, "bcrypt cost")

	root.AddCommand(serve, migrate, hash)
	// A bare invocation serves, matching the deployed start command.
	root.RunE = serve.RunE
	return root
}

// loadConfig loads configuration and installs the configured logger as the
// process default.
func loadConfig(cfgFile string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, cfgFile string) error {
	cfg, log, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"cache_enabled", cfg.Cache.RedisURL != "")

	app, err := newApplication(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(cmd.Context())
}

func runMigrate(cmd *cobra.Command, cfgFile, command string) error {
	cfg, log, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(cmd.Context(), cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", "error", err)
		}
	}()

	if err := postgres.Migrate(cmd.Context(), db, log, command); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	log.Info("migration command completed", "command", command)
	return nil
}

func runHashPassword(in io.Reader, out io.Writer, cost int) error {
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		return fmt.Errorf("no password on stdin")
	}
	password := strings.TrimRight(scanner.Text(), "\r")
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	hash, err := auth.NewBcrypt(cost).Hash(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}
