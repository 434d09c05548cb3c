package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/relationhq/relmig/internal/application/handlers"
	"github.com/relationhq/relmig/internal/domain/entities"
)

type offerImportFlags struct {
	format     string
	dryRun     bool
	clear      bool
	prefix     string
	skippedOut string
}

func newOffersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offers",
		Short: "Offer migration commands",
	}
	cmd.AddCommand(newOffersImportCmd())
	return cmd
}

func newOffersImportCmd() *cobra.Command {
	var flags offerImportFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import offers from an ERP export (CSV or JSON)",
		Long: "Imports offers: resolves customers against the database, assigns " +
			"offer numbers, and writes unresolved offers to a side file for review.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOffersImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (csv, json, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Resolve and number without saving")
	cmd.Flags().BoolVar(&flags.clear, "clear", false, "Delete the company's existing offers first")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", "Offer number prefix (default from config)")
	cmd.Flags().StringVar(&flags.skippedOut, "skipped-out", "skipped_offers.csv", "Side file for unresolved offers")

	return cmd
}

func runOffersImport(cmd *cobra.Command, filePath string, flags offerImportFlags) error {
	ctx := cmd.Context()

	return withOfferImportHandler(flags.prefix, func(handler *handlers.OfferImportHandler) error {
		fmt.Printf("Importing offers from %s...\n", filePath)

		result, err := handler.Handle(ctx, filePath, handlers.OfferImportOptions{
			Format:      flags.format,
			DryRun:      flags.dryRun,
			Clear:       flags.clear,
			SkippedPath: flags.skippedOut,
		})
		if err != nil {
			return fmt.Errorf("importing offers: %w", err)
		}

		printOfferSummary(result, flags.dryRun)
		return nil
	})
}

func printOfferSummary(result *handlers.OfferImportResult, dryRun bool) {
	fmt.Println()
	if result.SkippedEmpty > 0 || result.SkippedExpired > 0 {
		fmt.Printf("Skipped rows: %d empty, %d expired\n", result.SkippedEmpty, result.SkippedExpired)
	}
	if result.Cleared > 0 {
		fmt.Printf("Cleared %d existing offers\n", result.Cleared)
	}

	fmt.Println(renderTable(
		[]string{"Phase", "Offers"},
		phaseRows(result.PhaseCounts),
		[]columnAlignment{alignLeft, alignRight},
	))

	fmt.Println(renderTable(
		[]string{"Year", "Offers"},
		yearRows(result.YearCounts),
		[]columnAlignment{alignLeft, alignRight},
	))

	fmt.Printf("Total value: %.0f NOK\n\n", result.TotalValue)

	if dryRun {
		fmt.Printf("Dry run: %d offers would be imported", result.Imported)
	} else {
		fmt.Printf("Imported: %d offers", result.Imported)
	}
	if len(result.Unresolved) > 0 {
		fmt.Printf(", %d unresolved (no customer match)", len(result.Unresolved))
	}
	fmt.Println()

	if result.SkippedFile != "" {
		fmt.Printf("Unresolved offers written to %s for manual review\n", result.SkippedFile)
	}
}

func phaseRows(counts map[entities.Phase]int) [][]string {
	order := []entities.Phase{
		entities.PhaseInProgress,
		entities.PhaseSent,
		entities.PhaseOrder,
		entities.PhaseCompleted,
		entities.PhaseLost,
	}
	rows := make([][]string, 0, len(order))
	for _, phase := range order {
		rows = append(rows, []string{string(phase), strconv.Itoa(counts[phase])})
	}
	return rows
}

func yearRows(counts map[int]int) [][]string {
	years := make([]int, 0, len(counts))
	for year := range counts {
		years = append(years, year)
	}
	sort.Ints(years)

	rows := make([][]string, 0, len(years))
	for _, year := range years {
		rows = append(rows, []string{strconv.Itoa(year), strconv.Itoa(counts[year])})
	}
	return rows
}
