package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/relationhq/relmig/internal/application/handlers"
)

type analyzeFlags struct {
	format string
	output string
}

func newAnalyzeCmd() *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze customer name matches before an offer import",
		Long: "Scores the customer names in an offer export against the database " +
			"and writes a markdown report. Advisory only: the import itself " +
			"matches on exact normalized names.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (csv, json, auto)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Report file (default: stdout)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, filePath string, flags analyzeFlags) error {
	ctx := cmd.Context()

	return withAnalyzeHandler(func(handler *handlers.AnalyzeHandler) error {
		result, err := handler.Handle(ctx, filePath, handlers.AnalyzeOptions{
			Format: flags.format,
			Output: flags.output,
		})
		if err != nil {
			return fmt.Errorf("analyzing matches: %w", err)
		}

		if flags.output != "" {
			fmt.Printf("Report written to %s\n\n", flags.output)
		}

		fmt.Println(renderTable(
			[]string{"Band", "Names"},
			[][]string{
				{"confident", strconv.Itoa(len(result.Confident))},
				{"probable", strconv.Itoa(len(result.Probable))},
				{"needs review", strconv.Itoa(len(result.NeedsReview))},
			},
			[]columnAlignment{alignLeft, alignRight},
		))

		return nil
	})
}
