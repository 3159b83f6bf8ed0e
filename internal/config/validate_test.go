package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func stringPtr(s string) *string  { return &s }

func TestClusterSpec_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		spec    ClusterSpec
		wantErr bool
	}{
		{name: "name only", spec: ClusterSpec{Name: "c1"}},
		{name: "fully specified", spec: ClusterSpec{Name: "c1", State: StatePresent, NumShards: intPtr(2), ReplicationFactor: intPtr(3), DiskIOPS: intPtr(100), DiskSizeGB: floatPtr(40), InstanceSize: stringPtr("M10"), RegionName: stringPtr("US_EAST_1")}},
		{name: "missing name", spec: ClusterSpec{}, wantErr: true},
		{name: "bad state", spec: ClusterSpec{Name: "c1", State: "deleted"}, wantErr: true},
		{name: "zero shards", spec: ClusterSpec{Name: "c1", NumShards: intPtr(0)}, wantErr: true},
		{name: "negative disk", spec: ClusterSpec{Name: "c1", DiskSizeGB: floatPtr(-1)}, wantErr: true},
		{name: "empty region", spec: ClusterSpec{Name: "c1", RegionName: stringPtr("")}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.spec.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserSpec_Validate(t *testing.T) {
	t.Parallel()

	u := UserSpec{Username: "u1", UpdatePassword: "on_create"}
	require.NoError(t, u.Validate())
	assert.Equal(t, PasswordOnCreateOnly, u.UpdatePassword)

	u = UserSpec{Username: "u1"}
	require.NoError(t, u.Validate())
	assert.Equal(t, PasswordAlways, u.UpdatePassword)

	for name, bad := range map[string]UserSpec{
		"missing name": {},
		"bad state":    {Username: "u1", State: "gone"},
		"bad policy":   {Username: "u1", UpdatePassword: "never"},
		"empty role":   {Username: "u1", Roles: []RoleGrant{Bare("")}},
		"scoped no db": {Username: "u1", Roles: []RoleGrant{{Kind: GrantScoped, Role: "read"}}},
	} {
		bad := bad
		t.Run(name, func(t *testing.T) {
			err := bad.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestUserSpec_Policy(t *testing.T) {
	t.Parallel()
	assert.Equal(t, PasswordAlways, UserSpec{}.Policy())
	assert.Equal(t, PasswordOnCreateOnly, UserSpec{UpdatePassword: "on_create"}.Policy())
	assert.Equal(t, PasswordPolicy("never"), UserSpec{UpdatePassword: "never"}.Policy())
}

func TestDocument_ValidateEmpty(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, (&Document{}).Validate(), ErrInvalidConfig)
}
