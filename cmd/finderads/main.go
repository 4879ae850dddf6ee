package main

import (
	"os"

	"github.com/spf13/cobra"

	"finderads/internal/interfaces/cli/migrate"
	"finderads/internal/interfaces/cli/server"
	"finderads/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finderads",
		Short: "Finder AI banner inventory and credit ledger service",
		Long:  `Self-serve banner slot booking, prepaid credit accounting and public ad serving for the Finder AI directory.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
