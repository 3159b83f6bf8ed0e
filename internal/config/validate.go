package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks a cluster spec. Optional fields are only checked when set.
func (c ClusterSpec) Validate() error {
	if c.Name == "" {
		return invalidf("cluster name is required")
	}
	if !c.State.OrDefault().IsValid() {
		return invalidf("cluster %q: invalid state %q", c.Name, c.State)
	}
	if c.NumShards != nil && *c.NumShards < 1 {
		return invalidf("cluster %q: num_shards must be at least 1", c.Name)
	}
	if c.ReplicationFactor != nil && *c.ReplicationFactor < 1 {
		return invalidf("cluster %q: replication_factor must be at least 1", c.Name)
	}
	if c.DiskIOPS != nil && *c.DiskIOPS < 1 {
		return invalidf("cluster %q: disk_iops must be positive", c.Name)
	}
	if c.DiskSizeGB != nil && *c.DiskSizeGB <= 0 {
		return invalidf("cluster %q: disk_size must be positive", c.Name)
	}
	if c.InstanceSize != nil && *c.InstanceSize == "" {
		return invalidf("cluster %q: instance_size must not be empty when set", c.Name)
	}
	if c.RegionName != nil && *c.RegionName == "" {
		return invalidf("cluster %q: region_name must not be empty when set", c.Name)
	}
	return nil
}

// Validate checks a user spec and resolves the password policy alias.
func (u *UserSpec) Validate() error {
	if u.Username == "" {
		return invalidf("user name is required")
	}
	if !u.State.OrDefault().IsValid() {
		return invalidf("user %q: invalid state %q", u.Username, u.State)
	}
	policy, err := ParsePasswordPolicy(string(u.UpdatePassword))
	if err != nil {
		return fmt.Errorf("user %q: %w", u.Username, err)
	}
	u.UpdatePassword = policy
	for i, g := range u.Roles {
		if g.Role == "" {
			return invalidf("user %q: role %d has no role name", u.Username, i)
		}
		if g.Kind != GrantBare && g.Database == "" {
			return invalidf("user %q: role %q has no database", u.Username, g.Role)
		}
	}
	return nil
}

// Validate checks every resource and rejects duplicate keys, since two
// entries for one key would race within a single apply.
func (d *Document) Validate() error {
	if len(d.Clusters) == 0 && len(d.Users) == 0 {
		return invalidf("document declares no clusters and no users")
	}

	clusters := make(map[string]bool, len(d.Clusters))
	for _, c := range d.Clusters {
		if err := c.Validate(); err != nil {
			return err
		}
		if clusters[c.Name] {
			return invalidf("cluster %q declared more than once", c.Name)
		}
		clusters[c.Name] = true
	}

	users := make(map[string]bool, len(d.Users))
	for i := range d.Users {
		u := &d.Users[i]
		if err := u.Validate(); err != nil {
			return err
		}
		if users[u.Username] {
			return invalidf("user %q declared more than once", u.Username)
		}
		users[u.Username] = true
	}
	return nil
}
