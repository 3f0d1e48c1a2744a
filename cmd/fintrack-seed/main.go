package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/ledger"
	applog "fintrack/internal/log"
	"fintrack/internal/seed"
	"fintrack/internal/storage"
)

var errMemoryBackend = errors.New("refusing to seed the memory backend: data would be lost on exit")

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	count := flag.Int("n", cfg.SeedTransactions, "number of transactions to generate")
	months := flag.Int("months", cfg.SeedMonths, "months of history, counting the current one")
	seedValue := flag.Int64("seed", 0, "random seed (0 = random)")
	flag.Parse()

	logger = logger.WithComponent(applog.ComponentSeed)
	opts := seed.Options{
		Transactions: *count,
		Months:       *months,
		Today:        time.Now(),
		Seed:         *seedValue,
	}
	if err := run(context.Background(), logger, cfg, opts); err != nil {
		logger.Error("Seeding failed", applog.FieldError, err)
		os.Exit(1)
	}
}

// run seeds the configured backend and releases it before returning, so
// the caller may exit right after.
func run(ctx context.Context, logger *applog.Logger, cfg *config.Config, opts seed.Options) (err error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid backend configuration: %w", err)
	}
	if backendCfg.Type == backend.MemoryBackend {
		return errMemoryBackend
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize backend: %w", err)
	}
	defer func() {
		if result.Cleanup == nil {
			return
		}
		if cerr := result.Cleanup(); cerr != nil {
			logger.Warn("Backend cleanup failed", applog.FieldError, cerr)
			err = errors.Join(err, cerr)
		}
	}()

	svc := ledger.New(storage.LoadOrEmpty(ctx, result.Store, logger), nil)
	res, err := seed.Populate(svc, opts)
	if err != nil {
		return fmt.Errorf("failed to generate demo data: %w", err)
	}
	if err := result.Store.Save(ctx, svc.Snapshot()); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	logger.Info("Demo data written",
		"transactions", res.Transactions,
		"budgets", res.Budgets,
		applog.FieldBackend, cfg.DataBackend)
	return nil
}
