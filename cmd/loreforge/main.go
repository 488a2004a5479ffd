package main

import (
	"os"

	"github.com/spf13/cobra"

	"loreforge/internal/interfaces/cli/migrate"
	"loreforge/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loreforge",
		Short: "Loreforge - speculative fiction generation service",
		Long:  `Loreforge generates short speculative fiction with matching illustrations from a configurable parameter catalog and stores the results.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
