package main

import (
	"os"

	"github.com/spf13/cobra"

	"orbit/internal/interfaces/cli/migrate"
	"orbit/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbit",
		Short: "Orbit - issue tracking with role-gated review workflow",
		Long:  `Orbit is an issue tracker whose issues move through a review workflow with role-gated approval steps.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
