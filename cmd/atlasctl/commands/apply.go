package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/atlasctl/cmd/atlasctl/handlers"
)

// Apply returns the command converging every resource in a desired-state file.
//
// Optional flags:
//
//	--file, -f: Path to the desired-state YAML file (default: auto-detect atlas.yaml)
func Apply(opts *handlers.GlobalOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a desired-state file",
		Long: `Converge every cluster and user declared in a desired-state file.

Each resource is reconciled independently. A failing resource does not stop
the others; the summary lists every result and the command exits non-zero if
any resource failed.

If no file is given, atlas.yaml is looked up in the current directory and its
parents.

Examples:
  atlasctl apply
  atlasctl apply -f production.yaml -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), opts, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "file", "f", "", "Path to desired-state file (default: atlas.yaml)")

	return cmd
}
