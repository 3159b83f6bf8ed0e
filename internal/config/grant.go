package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// GrantKind tells which shorthand a RoleGrant was written in.
type GrantKind int

const (
	// GrantBare is a plain role name scoped to the admin database.
	GrantBare GrantKind = iota
	// GrantScoped is the {db, role} form.
	GrantScoped
	// GrantCanonical is the {databaseName, roleName} form the API uses.
	GrantCanonical
)

func (k GrantKind) String() string {
	switch k {
	case GrantBare:
		return "bare"
	case GrantScoped:
		return "scoped"
	case GrantCanonical:
		return "canonical"
	default:
		return fmt.Sprintf("GrantKind(%d)", int(k))
	}
}

// RoleGrant is a role grant as written by the user. Exactly one of the three
// shapes is held; Database is empty for GrantBare.
type RoleGrant struct {
	Kind     GrantKind
	Role     string
	Database string
}

// Bare returns a grant of name on the admin database.
func Bare(name string) RoleGrant {
	return RoleGrant{Kind: GrantBare, Role: name}
}

// Scoped returns a grant in the {db, role} shorthand.
func Scoped(db, role string) RoleGrant {
	return RoleGrant{Kind: GrantScoped, Role: role, Database: db}
}

// Canonical returns a grant already in API form.
func Canonical(databaseName, roleName string) RoleGrant {
	return RoleGrant{Kind: GrantCanonical, Role: roleName, Database: databaseName}
}

// ParseRoleGrant parses the command-line form: "role" or "role@db".
func ParseRoleGrant(s string) (RoleGrant, error) {
	role, db, scoped := strings.Cut(strings.TrimSpace(s), "@")
	if role == "" {
		return RoleGrant{}, invalidf("role grant %q: missing role name", s)
	}
	if !scoped {
		return Bare(role), nil
	}
	if db == "" {
		return RoleGrant{}, invalidf("role grant %q: missing database after @", s)
	}
	return Scoped(db, role), nil
}

type grantFields struct {
	DB           string `yaml:"db"`
	Role         string `yaml:"role"`
	DatabaseName string `yaml:"databaseName"`
	RoleName     string `yaml:"roleName"`
}

// UnmarshalYAML accepts a scalar role name, a {db, role} mapping or a
// {databaseName, roleName} mapping. Anything else is rejected here so the
// reconciler never sees an unresolved shape.
func (g *RoleGrant) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			return invalidf("line %d: empty role name", node.Line)
		}
		*g = Bare(node.Value)
		return nil
	case yaml.MappingNode:
		var f grantFields
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		switch {
		case f.DB != "" && f.Role != "" && f.DatabaseName == "" && f.RoleName == "":
			*g = Scoped(f.DB, f.Role)
		case f.DatabaseName != "" && f.RoleName != "" && f.DB == "" && f.Role == "":
			*g = Canonical(f.DatabaseName, f.RoleName)
		default:
			return invalidf("line %d: role grant must set either db and role, or databaseName and roleName", node.Line)
		}
		return nil
	default:
		return invalidf("line %d: role grant must be a string or a mapping", node.Line)
	}
}

// MarshalYAML writes the grant back in the shape it was read in.
func (g RoleGrant) MarshalYAML() (any, error) {
	switch g.Kind {
	case GrantScoped:
		return map[string]string{"db": g.Database, "role": g.Role}, nil
	case GrantCanonical:
		return map[string]string{"databaseName": g.Database, "roleName": g.Role}, nil
	default:
		return g.Role, nil
	}
}

func (g RoleGrant) String() string {
	if g.Kind == GrantBare {
		return g.Role
	}
	return g.Role + "@" + g.Database
}
