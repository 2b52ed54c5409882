package main

import (
	"context"
	"fmt"
	"os"

	"hostel/internal/backend"
	"hostel/internal/cli"
	"hostel/internal/config"
	"hostel/internal/log"
	"hostel/internal/seed"
	"hostel/internal/services"

	"github.com/spf13/cobra"
)

var (
	flagSeed  string
	flagQuiet bool

	appConfig *config.Config
	logger    *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "hostel-ledger",
	Short: "Hostel ledger session tool",
	Long: "Replay a seed file into a fresh ledger session and print balances, " +
		"reports and rent forecasts.",
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
	RunE:              runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagSeed, "seed", "s", "", "TOML seed file replayed into the session (overrides SEED_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
}

func bootstrap(_ *cobra.Command, _ []string) error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagSeed != "" {
		cfg.SeedFile = flagSeed
	}
	level := cfg.LogLevel
	if flagQuiet {
		level = "error"
	}

	appConfig = cfg
	logger = cli.SetupLogger(level).WithComponent(log.ComponentApp)
	logger.Debug("Configuration loaded",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.LedgerBackend,
		"events", cfg.EventsBackend,
		"seed", cfg.SeedFile)
	return nil
}

// openSession builds the configured backend and replays the seed file into
// it. The returned cleanup releases storage and publisher connections.
func openSession(ctx context.Context) (*services.LedgerService, backend.CleanupFunc, error) {
	bcfg, err := backend.FromAppConfig(appConfig)
	if err != nil {
		return nil, nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create backend: %w", err)
	}

	if appConfig.SeedFile == "" {
		logger.InfoContext(ctx, "No seed file configured, starting with an empty session")
		return result.Service, result.Cleanup, nil
	}

	seedLog := logger.WithComponent(log.ComponentSeed)
	f, err := seed.Load(appConfig.SeedFile)
	if err != nil {
		_ = result.Cleanup()
		return nil, nil, err
	}
	if err := seed.Apply(ctx, result.Service, f); err != nil {
		_ = result.Cleanup()
		return nil, nil, fmt.Errorf("apply seed %s: %w", appConfig.SeedFile, err)
	}
	seedLog.InfoContext(ctx, "Seed applied",
		log.FieldOperation, log.OpSeed,
		"path", appConfig.SeedFile,
		"residents", len(f.Residents),
		"staff", len(f.Staff),
		"payments", len(f.Payments),
		"tasks", len(f.Tasks))
	return result.Service, result.Cleanup, nil
}

// withSession runs fn against a freshly seeded session and always releases it.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, svc *services.LedgerService) error) (err error) {
	ctx, stop := cli.SignalContext(cmd.Context(), logger)
	defer stop()

	svc, cleanup, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			logger.Warn("Failed to release session backend", log.FieldError, cerr)
		}
	}()
	return fn(ctx, svc)
}
