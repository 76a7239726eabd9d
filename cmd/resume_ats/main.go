// Package main implements the resume_ats CLI for scoring resume records.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/logger"
)

var (
	configPath string
	debugLogs  bool
	jsonLogs   bool

	// set by loadSettings before any subcommand runs
	appConfig config.Config
	appLogger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "resume_ats",
	Short: "Score resume records against applicant tracking system heuristics",
	Long: `resume_ats grades structured resume records the way applicant tracking systems filter them:
contact details, summary length, experience impact, skills, quantified results and section coverage.

Configuration can be loaded from a JSON file using --config. Command-line flags override config file values.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Write logs as JSON")
}

// loadSettings reads the config file, applies root flag overrides and defaults,
// and builds the logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("debug") {
		cfg.Debug = debugLogs
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.LogJSON = jsonLogs
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	appConfig = cfg.MergeWithDefaults(config.Defaults())
	appLogger = log
	if configPath != "" {
		appLogger.Debug("loaded config", zap.String("path", configPath))
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.ExecuteContext(context.Background())
	_ = appLogger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
