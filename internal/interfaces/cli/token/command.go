package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tourbook/internal/infrastructure/auth"
	"tourbook/internal/interfaces/cli/bootstrap"
)

var (
	env      string
	userID   string
	roleName string
)

// NewCommand mints a bearer token for local testing of the admin API.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development bearer token",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVar(&userID, "user", "", "User ID carried by the token (required)")
	cmd.Flags().StringVar(&roleName, "role", "", "Role name carried by the token (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, _, err := bootstrap.Init(env)
	if err != nil {
		return err
	}
	if cfg.Server.Mode == "release" {
		return fmt.Errorf("token issuing is disabled in production")
	}

	jwtCfg := cfg.Auth.JWT
	svc := auth.NewJWTService(jwtCfg.Secret, jwtCfg.Issuer, time.Duration(jwtCfg.AccessTTLMinutes)*time.Minute)

	token, err := svc.Generate(userID, roleName)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
