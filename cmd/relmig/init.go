package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relationhq/relmig/internal/infrastructure/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a default relmig config in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit()
		},
	}
}

func runInit() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if config.Exists(cwd) {
		return fmt.Errorf("config already exists: %s", config.ConfigFilePath(cwd))
	}

	if err := config.Save(cwd, config.Default()); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", config.ConfigFilePath(cwd))
	return nil
}
