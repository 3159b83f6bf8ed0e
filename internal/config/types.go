package config

// State is the desired presence of a resource.
type State string

const (
	// StatePresent creates the resource if it is missing.
	StatePresent State = "present"
	// StateAbsent deletes the resource if it exists.
	StateAbsent State = "absent"
)

// IsValid returns true if the state is a known value.
func (s State) IsValid() bool {
	return s == StatePresent || s == StateAbsent
}

// OrDefault returns StatePresent for an unset state.
func (s State) OrDefault() State {
	if s == "" {
		return StatePresent
	}
	return s
}

// PasswordPolicy controls when a supplied password is sent for an existing user.
type PasswordPolicy string

const (
	// PasswordAlways sends the password on create and on every update.
	PasswordAlways PasswordPolicy = "always"
	// PasswordOnCreateOnly sends the password only when the user is created.
	PasswordOnCreateOnly PasswordPolicy = "on-create-only"

	passwordOnCreateAlias PasswordPolicy = "on_create"
)

// ParsePasswordPolicy parses a policy name. An empty string yields PasswordAlways.
func ParsePasswordPolicy(s string) (PasswordPolicy, error) {
	switch PasswordPolicy(s) {
	case "", PasswordAlways:
		return PasswordAlways, nil
	case PasswordOnCreateOnly, passwordOnCreateAlias:
		return PasswordOnCreateOnly, nil
	default:
		return "", invalidf("unknown update_password policy %q: must be %q or %q", s, PasswordAlways, PasswordOnCreateOnly)
	}
}

// Document is a desired-state file.
type Document struct {
	Clusters []ClusterSpec `yaml:"clusters,omitempty"`
	Users    []UserSpec    `yaml:"users,omitempty"`
}

// ClusterSpec is the desired state of one cluster. Every field but Name is
// optional; nil means "let Atlas choose".
type ClusterSpec struct {
	Name              string   `yaml:"name"`
	State             State    `yaml:"state,omitempty"`
	NumShards         *int     `yaml:"num_shards,omitempty"`
	ReplicationFactor *int     `yaml:"replication_factor,omitempty"`
	InstanceSize      *string  `yaml:"instance_size,omitempty"`
	DiskIOPS          *int     `yaml:"disk_iops,omitempty"`
	Encrypt           *bool    `yaml:"encrypt,omitempty"`
	BackupEnabled     *bool    `yaml:"backup_enabled,omitempty"`
	RegionName        *string  `yaml:"region_name,omitempty"`
	DiskSizeGB        *float64 `yaml:"disk_size,omitempty"`
}

// UserSpec is the desired state of one database user in the admin database.
type UserSpec struct {
	Username string      `yaml:"user"`
	Password *string     `yaml:"password,omitempty"`
	Roles    []RoleGrant `yaml:"roles,omitempty"`
	State    State       `yaml:"state,omitempty"`
	// UpdatePassword is normalized by Validate; the zero value means PasswordAlways.
	UpdatePassword PasswordPolicy `yaml:"update_password,omitempty"`
}

// Policy returns the effective update policy, resolving the zero value and
// the on_create alias. Unknown values are returned unchanged; Validate rejects them.
func (u UserSpec) Policy() PasswordPolicy {
	p, err := ParsePasswordPolicy(string(u.UpdatePassword))
	if err != nil {
		return u.UpdatePassword
	}
	return p
}
