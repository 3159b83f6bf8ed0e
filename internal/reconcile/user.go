package reconcile

import (
	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/platform/atlas"
)

// UserPlan is the decision of the user engine for one pass.
type UserPlan struct {
	Action  Action
	Changed bool
	// Payload is set for ActionCreate and ActionUpdate.
	Payload *atlas.DatabaseUser
}

// UserEngine decides how to converge a database user.
//
// The password of an existing user cannot be read back, so a password that
// may be sent always causes an update.
type UserEngine struct{}

// NewUserEngine creates a user engine.
func NewUserEngine() *UserEngine {
	return &UserEngine{}
}

// Decide returns the plan for spec in groupID given the observed user (nil if absent).
func (e *UserEngine) Decide(groupID string, spec config.UserSpec, observed *atlas.DatabaseUser) UserPlan {
	present := observed != nil
	roles := NormalizeRoles(spec.Roles)

	if spec.State.OrDefault() == config.StateAbsent {
		if present {
			return UserPlan{Action: ActionDelete, Changed: true}
		}
		return UserPlan{Action: ActionNone}
	}

	if !present {
		payload := &atlas.DatabaseUser{
			DatabaseName: atlas.AdminDatabase,
			GroupID:      groupID,
			Username:     spec.Username,
			Roles:        roles,
		}
		if spec.Password != nil {
			payload.Password = *spec.Password
		}
		return UserPlan{Action: ActionCreate, Changed: true, Payload: payload}
	}

	// Under on-create-only the password is never sent to an existing user, so
	// it does not count as a change either.
	sendPassword := spec.Password != nil && spec.Policy() == config.PasswordAlways
	if !sendPassword && rolesEqual(roles, observed.Roles) {
		return UserPlan{Action: ActionNone}
	}

	payload := &atlas.DatabaseUser{
		DatabaseName: atlas.AdminDatabase,
		GroupID:      groupID,
		Username:     spec.Username,
		Roles:        roles,
	}
	if sendPassword {
		payload.Password = *spec.Password
	}
	return UserPlan{Action: ActionUpdate, Changed: true, Payload: payload}
}
