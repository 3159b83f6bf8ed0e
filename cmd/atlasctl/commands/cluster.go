package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/atlasctl/cmd/atlasctl/handlers"
	"github.com/imamik/atlasctl/internal/config"
)

// Cluster returns the command converging a single cluster.
//
// Only flags given on the command line are sent when the cluster is created;
// Atlas picks its own defaults for everything else. An existing cluster is
// never modified.
func Cluster(opts *handlers.GlobalOptions) *cobra.Command {
	var (
		spec              config.ClusterSpec
		state             string
		numShards         int
		replicationFactor int
		instanceSize      string
		diskIOPS          int
		encrypt           bool
		backupEnabled     bool
		region            string
		diskSize          float64
	)

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Create or delete a cluster",
		Long: `Ensure a cluster is present or absent.

A missing cluster is created from the given flags. A present cluster is left
untouched even if its settings differ.

Flags that are not given are not sent, so Atlas applies its own defaults. The
defaults listed below are the usual choices and only take effect when the flag
is passed explicitly.

Examples:
  # Create an M10 cluster with a 40 GB disk
  atlasctl cluster --name c1 --instance-size M10 --disk-size 40

  # Delete a cluster
  atlasctl cluster --name c1 --state absent`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec.State = config.State(state)
			f := cmd.Flags()
			if f.Changed("num-shards") {
				spec.NumShards = &numShards
			}
			if f.Changed("replication-factor") {
				spec.ReplicationFactor = &replicationFactor
			}
			if f.Changed("instance-size") {
				spec.InstanceSize = &instanceSize
			}
			if f.Changed("disk-iops") {
				spec.DiskIOPS = &diskIOPS
			}
			if f.Changed("encrypt") {
				spec.Encrypt = &encrypt
			}
			if f.Changed("backup-enabled") {
				spec.BackupEnabled = &backupEnabled
			}
			if f.Changed("region") {
				spec.RegionName = &region
			}
			if f.Changed("disk-size") {
				spec.DiskSizeGB = &diskSize
			}
			return handlers.Cluster(cmd.Context(), opts, spec)
		},
	}

	f := cmd.Flags()
	f.StringVar(&spec.Name, "name", "", "Cluster name (required)")
	f.StringVar(&state, "state", string(config.StatePresent), "Desired state: present, absent")
	f.IntVar(&numShards, "num-shards", 1, "Number of shards")
	f.IntVar(&replicationFactor, "replication-factor", 3, "Members per replica set")
	f.StringVar(&instanceSize, "instance-size", "M10", "Instance size, e.g. M10")
	f.IntVar(&diskIOPS, "disk-iops", 0, "Provisioned disk IOPS")
	f.BoolVar(&encrypt, "encrypt", false, "Encrypt the EBS volume")
	f.BoolVar(&backupEnabled, "backup-enabled", true, "Enable continuous backup")
	f.StringVar(&region, "region", "US_EAST_1", "Provider region name")
	f.Float64Var(&diskSize, "disk-size", 0, "Disk size in GB")

	_ = cmd.MarkFlagRequired("name")

	return cmd
}
