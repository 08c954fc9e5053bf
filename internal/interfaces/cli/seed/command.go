package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	"tourbook/internal/infrastructure/database"
	"tourbook/internal/infrastructure/persistence/seeds"
	"tourbook/internal/interfaces/cli/bootstrap"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the default roles and permissions",
		Long:  `Insert the built-in roles, the CRUD permission catalog and the default grants. Existing rows are kept.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(env)
	if err != nil {
		return err
	}
	if err := bootstrap.InitDatabase(cfg); err != nil {
		return err
	}
	defer database.Close()

	catalog, err := seeds.DefaultCatalog()
	if err != nil {
		return err
	}

	result, err := seeds.SeedPermissionCatalog(database.Get(), catalog)
	if err != nil {
		log.Errorw("seeding failed", "error", err)
		return fmt.Errorf("seeding failed: %w", err)
	}

	log.Infow("seeding completed",
		"permissions_created", result.Permissions,
		"roles_created", result.Roles,
		"grants_created", result.Grants,
	)
	return nil
}
