package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/server"
)

var (
	servePort       int
	serveRubric     string
	serveRubricFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP scoring API",
	Long: `Start an HTTP server exposing POST /v1/score, GET /v1/rubrics and GET /health.

Rate limits are read from ATS_RATE_LIMIT_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVarP(&serveRubric, "rubric", "r", "", "Default built-in rubric for requests that name none")
	serveCmd.Flags().StringVar(&serveRubricFile, "rubric-file", "", "Serve a YAML rubric and make it the default")
	serveCmd.MarkFlagsMutuallyExclusive("rubric", "rubric-file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	srvCfg, err := serveConfig(cmd)
	if err != nil {
		return err
	}

	srv, err := server.New(srvCfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(cmd.Context())
}

// serveConfig maps the loaded config and serve flags onto a server.Config.
// A rubric file is served alongside the built-ins and becomes the default.
func serveConfig(cmd *cobra.Command) (server.Config, error) {
	cfg := applyRubricFlags(cmd, appConfig, serveRubric, serveRubricFile)
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return server.Config{}, err
	}

	srvCfg := server.Config{Port: cfg.Port, DefaultRubric: cfg.Rubric}
	if cfg.RubricFile != "" {
		rubric, err := ats.LoadFile(cfg.RubricFile)
		if err != nil {
			return server.Config{}, err
		}
		srvCfg.Rubrics = []*ats.Rubric{rubric}
		srvCfg.DefaultRubric = rubric.Name
	}
	return srvCfg, nil
}
