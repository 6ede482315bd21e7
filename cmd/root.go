package cmd

import (
	"context"
	"os"

	"github.com/dorapulse/dorapulse/internal/config"
	"github.com/dorapulse/dorapulse/internal/server"
	"github.com/dorapulse/dorapulse/internal/usecase"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	verbose bool
	dataDir string
	repo    string
}

var rootCmd = &cobra.Command{
	Use:   "dorapulse",
	Short: "Record deployments and incidents, compute DORA metrics",
}

// loadConfig merges environment configuration with command-line
// overrides and configures the global logger.
func loadConfig() *config.Config {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if rootFlags.verbose {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else if level, err := zerolog.ParseLevel(config.Load().LogLevel); err == nil {
		log.Logger = log.Logger.Level(level)
	}

	cfg := config.Load()
	if rootFlags.dataDir != "" {
		cfg.DataDir = rootFlags.dataDir
	}
	if rootFlags.repo != "" {
		cfg.RepoPath = rootFlags.repo
	}
	return cfg
}

// newInjector builds the collector dependency graph and runs
// initialization so command handlers see loaded state.
func newInjector(ctx context.Context, cfg *config.Config) (*do.Injector, error) {
	injector := server.NewInjector(cfg, log.Logger)
	init := do.MustInvoke[usecase.InitializeUsecase](injector)
	if err := init.Execute(ctx); err != nil {
		return nil, err
	}
	return injector, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&rootFlags.dataDir, "data-dir", "", "Directory for persisted event data")
	rootCmd.PersistentFlags().StringVar(&rootFlags.repo, "repo", "", "Path to the git repository to correlate against")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
