// Package main implements the entry point for the tasker API server, which
// serves user accounts and per-user tasks over HTTP.
//
// Besides serving, the binary runs operator commands:
//
//	server -migrate up|down|status|version|reset
//	server -purge-expired-tokens
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/phrazzld/tasker-api/internal/config"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/platform/postgres"
	"github.com/phrazzld/tasker-api/internal/redact"
)

// options holds the parsed command line.
type options struct {
	migrate            string
	purgeExpiredTokens bool
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a migration command and exit ("+strings.Join(postgres.MigrationCommands, "|")+")")
	fs.BoolVar(&opts.purgeExpiredTokens, "purge-expired-tokens", false,
		"delete expired refresh tokens and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.migrate != "" && !slices.Contains(postgres.MigrationCommands, opts.migrate) {
		return opts, fmt.Errorf("unknown migration command %q", opts.migrate)
	}
	if opts.migrate != "" && opts.purgeExpiredTokens {
		return opts, fmt.Errorf("-migrate and -purge-expired-tokens are mutually exclusive")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("server exited with error", "error", redact.Error(err))
		os.Exit(1)
	}
}

// run loads configuration, connects to the database and either executes an
// operator command or serves HTTP until ctx is cancelled.
func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"environment", cfg.Server.Environment,
		"redis_enabled", cfg.Redis.URL != "")

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", "error", err)
		}
	}()

	if opts.migrate != "" {
		return postgres.Migrate(ctx, db, opts.migrate, log)
	}

	if err := postgres.Migrate(ctx, db, "up", log); err != nil {
		return err
	}

	redisClient, err := setupRedis(ctx, cfg, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	app, err := newApplication(cfg, log, db, redisClient)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if opts.purgeExpiredTokens {
		_, err := app.authService.PurgeExpiredRefreshTokens(ctx, time.Now().UTC())
		return err
	}

	return app.Run(ctx)
}
