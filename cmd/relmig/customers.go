package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relationhq/relmig/internal/application/handlers"
)

type customerImportFlags struct {
	format string
	dryRun bool
	clear  bool
}

func newCustomersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Customer migration commands",
	}
	cmd.AddCommand(newCustomersImportCmd())
	return cmd
}

func newCustomersImportCmd() *cobra.Command {
	var flags customerImportFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import customers from an ERP export (CSV or JSON)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomersImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (csv, json, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().BoolVar(&flags.clear, "clear", false, "Delete all existing customers first")

	return cmd
}

func runCustomersImport(cmd *cobra.Command, filePath string, flags customerImportFlags) error {
	ctx := cmd.Context()

	return withCustomerImportHandler(func(handler *handlers.CustomerImportHandler) error {
		fmt.Printf("Importing customers from %s...\n", filePath)

		result, err := handler.Handle(ctx, filePath, handlers.CustomerImportOptions{
			Format: flags.format,
			DryRun: flags.dryRun,
			Clear:  flags.clear,
		})
		if err != nil {
			return fmt.Errorf("importing customers: %w", err)
		}

		fmt.Println()
		if flags.dryRun {
			fmt.Printf("Dry run: %d customers would be imported", result.Imported)
		} else {
			fmt.Printf("Imported: %d customers", result.Imported)
		}
		if result.SkippedDuplicates > 0 {
			fmt.Printf(", %d duplicate org numbers skipped", result.SkippedDuplicates)
		}
		if result.SkippedEmptyName > 0 {
			fmt.Printf(", %d rows without a name skipped", result.SkippedEmptyName)
		}
		fmt.Println()

		return nil
	})
}
