package testing

import (
	"github.com/imamik/atlasctl/internal/config"
)

// ClusterSpecBuilder provides a fluent interface for constructing cluster specs.
// Each method returns a new builder (immutable) for chaining.
type ClusterSpecBuilder struct {
	spec config.ClusterSpec
}

// NewClusterSpec starts a present cluster spec with only the name set.
func NewClusterSpec(name string) *ClusterSpecBuilder {
	return &ClusterSpecBuilder{spec: config.ClusterSpec{Name: name, State: config.StatePresent}}
}

// Absent marks the cluster for deletion.
func (b *ClusterSpecBuilder) Absent() *ClusterSpecBuilder {
	nb := *b
	nb.spec.State = config.StateAbsent
	return &nb
}

// WithInstanceSize sets the instance size.
func (b *ClusterSpecBuilder) WithInstanceSize(size string) *ClusterSpecBuilder {
	nb := *b
	nb.spec.InstanceSize = &size
	return &nb
}

// WithRegion sets the region name.
func (b *ClusterSpecBuilder) WithRegion(region string) *ClusterSpecBuilder {
	nb := *b
	nb.spec.RegionName = &region
	return &nb
}

// WithDiskSize sets the disk size in GB.
func (b *ClusterSpecBuilder) WithDiskSize(gb float64) *ClusterSpecBuilder {
	nb := *b
	nb.spec.DiskSizeGB = &gb
	return &nb
}

// WithShards sets the shard count and replication factor.
func (b *ClusterSpecBuilder) WithShards(shards, replication int) *ClusterSpecBuilder {
	nb := *b
	nb.spec.NumShards = &shards
	nb.spec.ReplicationFactor = &replication
	return &nb
}

// WithBackup sets whether continuous backup is enabled.
func (b *ClusterSpecBuilder) WithBackup(enabled bool) *ClusterSpecBuilder {
	nb := *b
	nb.spec.BackupEnabled = &enabled
	return &nb
}

// Build returns the spec.
func (b *ClusterSpecBuilder) Build() config.ClusterSpec {
	return b.spec
}

// UserSpecBuilder provides a fluent interface for constructing user specs.
type UserSpecBuilder struct {
	spec config.UserSpec
}

// NewUserSpec starts a present user spec with no roles and no password.
func NewUserSpec(username string) *UserSpecBuilder {
	return &UserSpecBuilder{spec: config.UserSpec{Username: username, State: config.StatePresent}}
}

// Absent marks the user for deletion.
func (b *UserSpecBuilder) Absent() *UserSpecBuilder {
	nb := b.clone()
	nb.spec.State = config.StateAbsent
	return nb
}

// WithPassword sets the password under the given policy.
func (b *UserSpecBuilder) WithPassword(pw string, policy config.PasswordPolicy) *UserSpecBuilder {
	nb := b.clone()
	nb.spec.Password = &pw
	nb.spec.UpdatePassword = policy
	return nb
}

// WithRoles appends role grants, keeping order.
func (b *UserSpecBuilder) WithRoles(grants ...config.RoleGrant) *UserSpecBuilder {
	nb := b.clone()
	nb.spec.Roles = append(nb.spec.Roles, grants...)
	return nb
}

// Build returns the spec.
func (b *UserSpecBuilder) Build() config.UserSpec {
	return b.clone().spec
}

func (b *UserSpecBuilder) clone() *UserSpecBuilder {
	nb := *b
	nb.spec.Roles = append([]config.RoleGrant(nil), b.spec.Roles...)
	return &nb
}
