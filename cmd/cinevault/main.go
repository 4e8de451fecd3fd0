package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cinevault-inc/cinevault/internal/interfaces/cli/migrate"
	"github.com/cinevault-inc/cinevault/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cinevault",
		Short: "CineVault - movie streaming platform backend",
		Long:  `CineVault is the backend for a movie streaming platform: accounts, subscriptions, billing webhooks, and the movie catalog.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
