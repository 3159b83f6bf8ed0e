package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/platform/atlas"
)

func observedUser(roles ...atlas.Role) *atlas.DatabaseUser {
	return &atlas.DatabaseUser{DatabaseName: "admin", GroupID: "g1", Username: "u1", Roles: roles}
}

func TestUserEngine_Decide(t *testing.T) {
	t.Parallel()
	adminRead := atlas.Role{DatabaseName: "admin", RoleName: "read"}

	tests := []struct {
		name        string
		spec        config.UserSpec
		observed    *atlas.DatabaseUser
		wantAction  Action
		wantChanged bool
		wantPayload *atlas.DatabaseUser
	}{
		{
			name:       "absent/absent",
			spec:       config.UserSpec{Username: "u1", State: config.StateAbsent},
			wantAction: ActionNone,
		},
		{
			name:        "absent/present",
			spec:        config.UserSpec{Username: "u1", State: config.StateAbsent},
			observed:    observedUser(adminRead),
			wantAction:  ActionDelete,
			wantChanged: true,
		},
		{
			name:        "present/absent with password",
			spec:        config.UserSpec{Username: "u1", Password: ptr("pw"), Roles: []config.RoleGrant{config.Bare("read")}},
			wantAction:  ActionCreate,
			wantChanged: true,
			wantPayload: &atlas.DatabaseUser{DatabaseName: "admin", GroupID: "g1", Username: "u1", Password: "pw", Roles: []atlas.Role{adminRead}},
		},
		{
			name:        "present/absent on-create-only still sends password",
			spec:        config.UserSpec{Username: "u1", Password: ptr("pw"), UpdatePassword: config.PasswordOnCreateOnly},
			wantAction:  ActionCreate,
			wantChanged: true,
			wantPayload: &atlas.DatabaseUser{DatabaseName: "admin", GroupID: "g1", Username: "u1", Password: "pw", Roles: []atlas.Role{}},
		},
		{
			name:       "roles match, no password",
			spec:       config.UserSpec{Username: "u1", Roles: []config.RoleGrant{config.Bare("read")}},
			observed:   observedUser(adminRead),
			wantAction: ActionNone,
		},
		{
			name:        "roles differ",
			spec:        config.UserSpec{Username: "u1", Roles: []config.RoleGrant{config.Scoped("x", "readWrite")}},
			observed:    observedUser(adminRead),
			wantAction:  ActionUpdate,
			wantChanged: true,
			wantPayload: &atlas.DatabaseUser{DatabaseName: "admin", GroupID: "g1", Username: "u1", Roles: []atlas.Role{{DatabaseName: "x", RoleName: "readWrite"}}},
		},
		{
			name:        "roles match, password always",
			spec:        config.UserSpec{Username: "u1", Password: ptr("pw"), Roles: []config.RoleGrant{config.Bare("read")}},
			observed:    observedUser(adminRead),
			wantAction:  ActionUpdate,
			wantChanged: true,
			wantPayload: &atlas.DatabaseUser{DatabaseName: "admin", GroupID: "g1", Username: "u1", Password: "pw", Roles: []atlas.Role{adminRead}},
		},
		{
			name:       "roles match, password on-create-only",
			spec:       config.UserSpec{Username: "u1", Password: ptr("pw"), UpdatePassword: config.PasswordOnCreateOnly, Roles: []config.RoleGrant{config.Bare("read")}},
			observed:   observedUser(adminRead),
			wantAction: ActionNone,
		},
		{
			name:        "roles differ, password on_create alias",
			spec:        config.UserSpec{Username: "u1", Password: ptr("pw"), UpdatePassword: "on_create"},
			observed:    observedUser(adminRead),
			wantAction:  ActionUpdate,
			wantChanged: true,
			wantPayload: &atlas.DatabaseUser{DatabaseName: "admin", GroupID: "g1", Username: "u1", Roles: []atlas.Role{}},
		},
		{
			name:        "role order matters",
			spec:        config.UserSpec{Username: "u1", Roles: []config.RoleGrant{config.Bare("b"), config.Bare("a")}},
			observed:    observedUser(atlas.Role{DatabaseName: "admin", RoleName: "a"}, atlas.Role{DatabaseName: "admin", RoleName: "b"}),
			wantAction:  ActionUpdate,
			wantChanged: true,
			wantPayload: &atlas.DatabaseUser{DatabaseName: "admin", GroupID: "g1", Username: "u1", Roles: []atlas.Role{{DatabaseName: "admin", RoleName: "b"}, {DatabaseName: "admin", RoleName: "a"}}},
		},
	}

	e := NewUserEngine()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			plan := e.Decide("g1", tt.spec, tt.observed)
			assert.Equal(t, tt.wantAction, plan.Action)
			assert.Equal(t, tt.wantChanged, plan.Changed)
			if diff := cmp.Diff(tt.wantPayload, plan.Payload); diff != "" {
				t.Errorf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUserEngine_EmptyRolesSerializeAsArray(t *testing.T) {
	t.Parallel()
	plan := NewUserEngine().Decide("g1", config.UserSpec{Username: "u1"}, nil)
	require.NotNil(t, plan.Payload)

	data, err := json.Marshal(plan.Payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"databaseName":"admin","groupId":"g1","username":"u1","roles":[]}`, string(data))
}
