package main

import (
	"os"

	"github.com/spf13/cobra"

	"tourbook/internal/interfaces/cli/migrate"
	"tourbook/internal/interfaces/cli/seed"
	"tourbook/internal/interfaces/cli/server"
	"tourbook/internal/interfaces/cli/token"
)

// @title Tourbook Admin API
// @version 1.0
// @description Role permission matrix management for the tour-booking admin.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "tourbook",
		Short: "Tourbook admin API",
		Long:  `Tourbook serves the admin role permission matrix and ships its migration and seeding tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
