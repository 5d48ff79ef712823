// Package main is the entry point of the interactive gradebook.
//
// Grades are typed one per line; the session ends on the quit word or EOF
// and prints low, high, average and letter grade for the ledger.
// Storage is selected with GRADEBOOK_STORAGE (memory, file, postgres, redis).
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alem-hub/gradebook/config"
	"github.com/alem-hub/gradebook/internal/application/ledgers"
	"github.com/alem-hub/gradebook/internal/domain/ledger"
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/postgres"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/redis"
	"github.com/alem-hub/gradebook/internal/interface/cli"
	"github.com/alem-hub/gradebook/pkg/logger"
	"github.com/alem-hub/gradebook/pkg/retry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg)
	log.Info("starting gradebook",
		logger.String("version", cfg.App.Version),
		logger.LedgerName(cfg.Ledger.Name),
		logger.Storage(string(cfg.Ledger.Storage)),
	)

	backends, closeBackends, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeBackends()

	book, err := ledgers.Open(cfg.Ledger.Storage, cfg.Ledger.Name, backends)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}

	session := cli.NewSession(book, os.Stdin, os.Stdout, cli.Options{
		QuitWord:  cfg.App.QuitWord,
		OpTimeout: cfg.App.OpTimeout,
		ReadRetry: readRetrier(cfg, log),
		Logger:    log,
	})

	if err := session.Run(ctx); err != nil {
		log.Error("session ended with error", logger.Err(err))
		return err
	}

	log.Info("session finished")
	return nil
}

// openBackends connects only the storage the config selects.
func openBackends(ctx context.Context, cfg *config.Config, log *logger.Logger) (ledgers.Backends, func(), error) {
	backends := ledgers.Backends{DataDir: cfg.Ledger.DataDir}
	noop := func() {}

	switch cfg.Ledger.Storage {
	case ledger.KindPostgres:
		conn, err := postgres.NewConnection(ctx, postgres.Config{
			URL:            cfg.Database.URL,
			MaxConns:       cfg.Database.MaxConns,
			ConnectTimeout: cfg.Database.ConnectTimeout,
		})
		if err != nil {
			return backends, noop, err
		}

		if cfg.Database.Migrate {
			ran, err := postgres.NewMigrator(conn).Migrate(ctx)
			if err != nil {
				conn.Close()
				return backends, noop, err
			}
			log.Debug("migrations applied", logger.Int("count", ran))
		}

		backends.Postgres = conn
		return backends, conn.Close, nil

	case ledger.KindRedis:
		client, err := redis.NewClient(ctx, redis.Config{
			URL:         cfg.Redis.URL,
			Host:        cfg.Redis.Host,
			Port:        cfg.Redis.Port,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			KeyPrefix:   cfg.Redis.KeyPrefix,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		if err != nil {
			return backends, noop, err
		}

		backends.Redis = client
		return backends, func() {
			if err := client.Close(); err != nil {
				log.Warn("redis close failed", logger.Err(err))
			}
		}, nil
	}

	return backends, noop, nil
}

// readRetrier retries the statistics read while storage is unreachable.
// A ledger file that was never written is not going to appear.
func readRetrier(cfg *config.Config, log *logger.Logger) *retry.Retrier {
	return retry.New(
		retry.WithMaxAttempts(cfg.App.ReadAttempts),
		retry.WithRetryIf(transient),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			log.Warn("retrying statistics read",
				logger.Int("attempt", attempt),
				logger.Duration("delay", delay),
				logger.Err(err),
			)
		}),
	)
}

func transient(err error) bool {
	return shared.IsResourceUnavailable(err) && !errors.Is(err, fs.ErrNotExist)
}

// setupLogger configures structured logging on stderr.
func setupLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Options{
		Output:    os.Stderr,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		Format:    logger.Format(cfg.Observability.LogFormat),
		AddCaller: cfg.App.Debug,
	})
}
