package reconcile

import (
	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/platform/atlas"
)

// NormalizeRole converts a grant into the canonical API form. A bare role
// name is granted on the admin database.
func NormalizeRole(g config.RoleGrant) atlas.Role {
	if g.Kind == config.GrantBare {
		return atlas.Role{DatabaseName: atlas.AdminDatabase, RoleName: g.Role}
	}
	return atlas.Role{DatabaseName: g.Database, RoleName: g.Role}
}

// NormalizeRoles converts grants in order, keeping duplicates. The result is
// never nil so an empty list is sent as [] rather than null.
func NormalizeRoles(grants []config.RoleGrant) []atlas.Role {
	roles := make([]atlas.Role, 0, len(grants))
	for _, g := range grants {
		roles = append(roles, NormalizeRole(g))
	}
	return roles
}

func rolesEqual(a, b []atlas.Role) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
