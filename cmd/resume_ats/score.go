package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/pipeline"
	"github.com/jonathan/resume-ats/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score <record.json>...",
	Short: "Score one or more resume record files",
	Long: `Reads resume records (JSON, optionally wrapped in a markdown code fence), scores each one
against a rubric and prints the results. Exits non-zero when a file cannot be scored or,
with --min-score, when any file scores below the threshold.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

var (
	scoreRubric      string
	scoreRubricFile  string
	scoreFormat      string
	scoreConcurrency int
	scoreMinScore    int
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreRubric, "rubric", "r", "", "Built-in rubric name (default \"standard\")")
	scoreCmd.Flags().StringVar(&scoreRubricFile, "rubric-file", "", "Path to a YAML rubric (mutually exclusive with --rubric)")
	scoreCmd.Flags().StringVarP(&scoreFormat, "format", "f", "", "Output format: text or json (default \"text\")")
	scoreCmd.Flags().IntVarP(&scoreConcurrency, "concurrency", "c", 0, "Files scored in parallel (default 4)")
	scoreCmd.Flags().IntVar(&scoreMinScore, "min-score", 0, "Fail when any file scores below this value")
	scoreCmd.MarkFlagsMutuallyExclusive("rubric", "rubric-file")

	rootCmd.AddCommand(scoreCmd)
}

// fileReport is one entry of the JSON output.
type fileReport struct {
	Path   string             `json:"path"`
	Name   string             `json:"name,omitempty"`
	Rubric string             `json:"rubric"`
	Band   string             `json:"band,omitempty"`
	Result *types.ScoreResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := applyRubricFlags(cmd, appConfig, scoreRubric, scoreRubricFile)
	if cmd.Flags().Changed("format") {
		cfg.Format = scoreFormat
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = scoreConcurrency
	}
	if cmd.Flags().Changed("min-score") {
		cfg.MinScore = scoreMinScore
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	scorer, err := loadScorer(cfg)
	if err != nil {
		return err
	}

	results, err := pipeline.ScoreFiles(cmd.Context(), scorer, args, pipeline.Options{
		Concurrency: cfg.Concurrency,
		Logger:      appLogger,
		OnProgress: func(e pipeline.ProgressEvent) {
			appLogger.Debug("progress", zap.String(logger.FieldFile, e.Path), zap.Int("done", e.Done), zap.Int("total", e.Total))
		},
	})
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}

	if err := writeResults(cmd, cfg.Format, scorer.Rubric(), results); err != nil {
		return err
	}

	if failed := pipeline.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d file(s) could not be scored", len(failed), len(results))
	}
	if cfg.MinScore > 0 {
		if below := pipeline.BelowThreshold(results, cfg.MinScore); len(below) > 0 {
			return fmt.Errorf("%d of %d file(s) scored below %d", len(below), len(results), cfg.MinScore)
		}
	}
	return nil
}

// applyRubricFlags overrides the configured rubric with whichever rubric flag was set.
func applyRubricFlags(cmd *cobra.Command, cfg config.Config, name, file string) config.Config {
	if cmd.Flags().Changed("rubric") {
		cfg.Rubric = name
		cfg.RubricFile = ""
	}
	if cmd.Flags().Changed("rubric-file") {
		cfg.RubricFile = file
		cfg.Rubric = ""
	}
	return cfg
}

// loadRubric resolves the configured rubric file or built-in name.
func loadRubric(cfg config.Config) (*ats.Rubric, error) {
	if cfg.RubricFile != "" {
		return ats.LoadFile(cfg.RubricFile)
	}
	return ats.LoadBuiltin(cfg.Rubric)
}

func loadScorer(cfg config.Config) (*ats.Scorer, error) {
	rubric, err := loadRubric(cfg)
	if err != nil {
		return nil, err
	}
	appLogger.Debug("rubric loaded", zap.String(logger.FieldRubric, rubric.Name), zap.Int("max_score", rubric.MaxScore()))
	return ats.New(rubric)
}

func writeResults(cmd *cobra.Command, format, rubric string, results []pipeline.FileResult) error {
	if format == config.FormatJSON {
		reports := make([]fileReport, 0, len(results))
		for _, r := range results {
			report := fileReport{Path: r.Path, Name: r.Name, Rubric: rubric}
			if r.Err != nil {
				report.Error = r.Err.Error()
			} else {
				result := r.Result
				report.Result = &result
				report.Band = observability.Band(result.Score)
			}
			reports = append(reports, report)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	for _, r := range results {
		if r.Err != nil {
			printer.PrintError(r.Path, r.Err)
			continue
		}
		printer.PrintScore(reportTitle(r), r.Result)
	}
	return nil
}

// reportTitle names a report by file, adding the candidate when known.
func reportTitle(r pipeline.FileResult) string {
	if r.Name == "" {
		return r.Path
	}
	return fmt.Sprintf("%s (%s)", r.Path, r.Name)
}
