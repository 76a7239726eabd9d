package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/schemas"
)

// Document kinds accepted by --kind.
const (
	kindRecord = "record"
	kindResult = "result"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.json>...",
	Short: "Validate JSON files against the record or score-result schema",
	Long: `Checks each file against the embedded resume record schema (default), the score result
schema (--kind result) or an arbitrary JSON Schema file (--schema).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var (
	validateKind   string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVar(&validateKind, "kind", kindRecord, "Embedded schema to use: record or result")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema file to validate against instead")
	validateCmd.MarkFlagsMutuallyExclusive("kind", "schema")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	check, err := validatorFor(validateKind, validateSchema)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failures := 0
	for _, path := range args {
		if err := check(path); err != nil {
			failures++
			_, _ = fmt.Fprintf(out, "✗ %s\n", path)
			printValidationError(cmd, err)
			continue
		}
		_, _ = fmt.Fprintf(out, "✓ %s\n", path)
	}

	if failures > 0 {
		return fmt.Errorf("validation failed for %d of %d file(s)", failures, len(args))
	}
	_, _ = fmt.Fprintln(out, "Validation passed")
	return nil
}

func validatorFor(kind, schemaPath string) (func(path string) error, error) {
	if schemaPath != "" {
		return func(path string) error {
			return schemas.ValidateJSON(schemaPath, path)
		}, nil
	}

	switch kind {
	case kindRecord:
		return func(path string) error {
			_, err := ingestion.ReadRecordFile(path)
			return err
		}, nil
	case kindResult:
		return func(path string) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			return schemas.ValidateScoreResult(data)
		}, nil
	default:
		return nil, fmt.Errorf("unknown --kind %q (want %s or %s)", kind, kindRecord, kindResult)
	}
}

// printValidationError lists schema field errors one per line.
func printValidationError(cmd *cobra.Command, err error) {
	out := cmd.OutOrStdout()
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(out, "    %s: %s\n", fe.Field, fe.Message)
		}
		return
	}
	_, _ = fmt.Fprintf(out, "    %v\n", err)
}
