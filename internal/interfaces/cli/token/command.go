package token

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finderads/internal/infrastructure/auth"
	"finderads/internal/infrastructure/config"
	"finderads/internal/shared/authorization"
)

var (
	env        string
	accountSID string
	role       string
)

// NewCommand mints a signed JWT from the configured secret. Operators use it
// to create admin tokens; there is no admin login endpoint.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed access token",
		Long:  `Mint a JWT signed with the configured secret, mainly for back-office admin access.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVar(&accountSID, "account", "", "Account SID to embed in the token (optional for admin tokens)")
	cmd.Flags().StringVar(&role, "role", "admin", "Role claim (admin or advertiser)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	parsedRole := authorization.ParseUserRole(role)
	if parsedRole == authorization.RoleAdvertiser && accountSID == "" {
		return fmt.Errorf("advertiser tokens require --account")
	}

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	signed, err := jwtService.Generate(accountSID, parsedRole)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Println(signed)
	return nil
}
