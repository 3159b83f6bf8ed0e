// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/atlasctl/cmd/atlasctl/handlers"
)

// Root returns the root command for the atlasctl CLI.
//
// Global flags are bound here and shared by every subcommand. Credentials
// default to the ATLAS_PUBLIC_KEY, ATLAS_PRIVATE_KEY and ATLAS_GROUP_ID
// environment variables.
func Root() *cobra.Command {
	opts := &handlers.GlobalOptions{}

	cmd := &cobra.Command{
		Use:           "atlasctl",
		Short:         "Converge MongoDB Atlas clusters and database users",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.Out = cmd.OutOrStdout()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.PublicKey, "public-key", "", "Atlas programmatic API public key (env ATLAS_PUBLIC_KEY)")
	flags.StringVar(&opts.PrivateKey, "private-key", "", "Atlas programmatic API private key (env ATLAS_PRIVATE_KEY)")
	flags.StringVar(&opts.GroupID, "group-id", "", "Atlas project (group) ID (env ATLAS_GROUP_ID)")
	flags.StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.LogFormat, "log-format", "console", "Log format: console, json")
	flags.StringVarP(&opts.Output, "output", "o", handlers.OutputText, "Output format: text, json, yaml")
	flags.StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")

	cmd.AddCommand(Cluster(opts))
	cmd.AddCommand(User(opts))
	cmd.AddCommand(Apply(opts))
	cmd.AddCommand(Version())

	return cmd
}
