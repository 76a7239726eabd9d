package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-ats/internal/ats"
)

var rubricsCmd = &cobra.Command{
	Use:   "rubrics",
	Short: "List built-in rubrics",
	Long:  "Lists the built-in rubrics with their maximum scores. With --show, prints one rubric as YAML, suitable as a starting point for --rubric-file.",
	Args:  cobra.NoArgs,
	RunE:  runRubrics,
}

var rubricsShow string

func init() {
	rubricsCmd.Flags().StringVar(&rubricsShow, "show", "", "Print the named built-in rubric as YAML")
	rootCmd.AddCommand(rubricsCmd)
}

func runRubrics(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if rubricsShow != "" {
		rubric, err := ats.LoadBuiltin(rubricsShow)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rubric); err != nil {
			return fmt.Errorf("failed to encode rubric: %w", err)
		}
		return enc.Close()
	}

	names, err := ats.ListBuiltin()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tMAX\tDESCRIPTION")
	for _, name := range names {
		rubric, err := ats.LoadBuiltin(name)
		if err != nil {
			return err
		}
		marker := ""
		if name == appConfig.Rubric {
			marker = " (default)"
		}
		_, _ = fmt.Fprintf(tw, "%s%s\t%d\t%s\n", name, marker, rubric.MaxScore(), rubric.Description)
	}
	return tw.Flush()
}
