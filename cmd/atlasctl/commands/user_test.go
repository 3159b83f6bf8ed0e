package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/atlasctl/cmd/atlasctl/handlers"
)

func TestUser(t *testing.T) {
	cmd := User(&handlers.GlobalOptions{})

	require.NotNil(t, cmd)
	assert.Equal(t, "user", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestUser_Flags(t *testing.T) {
	cmd := User(&handlers.GlobalOptions{})

	for name, def := range map[string]string{
		"username":        "",
		"password":        "",
		"password-env":    "",
		"role":            "[]",
		"state":           "present",
		"update-password": "always",
	} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag %s should exist", name)
		assert.Equal(t, def, flag.DefValue, "default of %s", name)
	}
}
