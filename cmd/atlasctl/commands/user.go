package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/atlasctl/cmd/atlasctl/handlers"
	"github.com/imamik/atlasctl/internal/config"
)

// User returns the command converging a single database user.
func User(opts *handlers.GlobalOptions) *cobra.Command {
	var (
		spec           config.UserSpec
		password       string
		passwordEnv    string
		roles          []string
		state          string
		updatePassword string
	)

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Create, update or delete a database user",
		Long: `Ensure a database user in the admin database is present or absent.

Roles are given as "role" (granted on admin) or "role@db". The roles of an
existing user are replaced when they differ in content or order.

Atlas never returns passwords, so a supplied password is sent on every run
unless --update-password on-create-only is set.

Examples:
  # Create a user with read access to the sales database
  atlasctl user --username app --password-env APP_PASSWORD --role read@sales

  # Keep the password set at creation time
  atlasctl user --username app --password-env APP_PASSWORD --update-password on-create-only`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec.State = config.State(state)
			spec.UpdatePassword = config.PasswordPolicy(updatePassword)
			if cmd.Flags().Changed("password") {
				spec.Password = &password
			}
			for _, r := range roles {
				g, err := config.ParseRoleGrant(r)
				if err != nil {
					return err
				}
				spec.Roles = append(spec.Roles, g)
			}
			return handlers.User(cmd.Context(), opts, spec, passwordEnv)
		},
	}

	f := cmd.Flags()
	f.StringVar(&spec.Username, "username", "", "Database user name (required)")
	f.StringVar(&password, "password", "", "Password (prefer --password-env)")
	f.StringVar(&passwordEnv, "password-env", "", "Read the password from this environment variable")
	f.StringArrayVar(&roles, "role", nil, "Role grant as role or role@db (repeatable, order is kept)")
	f.StringVar(&state, "state", string(config.StatePresent), "Desired state: present, absent")
	f.StringVar(&updatePassword, "update-password", string(config.PasswordAlways), "When to send the password: always, on-create-only")

	_ = cmd.MarkFlagRequired("username")

	return cmd
}
