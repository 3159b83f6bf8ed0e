package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/platform/atlas"
)

func applyDocument() *config.Document {
	return &config.Document{
		Clusters: []config.ClusterSpec{{Name: "c1"}},
		Users: []config.UserSpec{
			{Username: "app", Roles: []config.RoleGrant{config.Bare("read")}},
			{Username: "gone", State: config.StateAbsent},
		},
	}
}

func TestApply_RendersTableSummary(t *testing.T) {
	mock := &atlas.MockClient{
		GetDatabaseUserFunc: func(_ context.Context, _, username string) (*atlas.DatabaseUser, error) {
			if username == "app" {
				return &atlas.DatabaseUser{Username: "app", Roles: []atlas.Role{{DatabaseName: "admin", RoleName: "read"}}}, nil
			}
			return nil, nil
		},
	}
	useMock(t, mock)
	loadDocument = func(path string) (*config.Document, error) {
		assert.Equal(t, "atlas.yaml", path)
		return applyDocument(), nil
	}

	var out bytes.Buffer
	require.NoError(t, Apply(context.Background(), &GlobalOptions{Out: &out}, "atlas.yaml"))

	text := out.String()
	assert.Contains(t, text, "KIND")
	assert.Contains(t, text, "c1")
	assert.Contains(t, text, "create")
	assert.Contains(t, text, "1 changed, 2 unchanged, 0 failed")
	assert.Equal(t, 1, mock.WriteCalls())
}

func TestApply_PartialFailureJSON(t *testing.T) {
	mock := &atlas.MockClient{
		GetClusterFunc: func(context.Context, string, string) (*atlas.Cluster, error) {
			return nil, &atlas.APIError{StatusCode: 401, Body: []byte(`{"error":401,"reason":"Unauthorized"}`)}
		},
	}
	useMock(t, mock)
	loadDocument = func(string) (*config.Document, error) { return applyDocument(), nil }

	var out bytes.Buffer
	err := Apply(context.Background(), &GlobalOptions{Out: &out, Output: OutputJSON}, "atlas.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 resources failed")

	var view reportView
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	assert.Equal(t, 1, view.Failed)
	assert.Equal(t, 1, view.Changed)
	require.Len(t, view.Results, 3)
	assert.Contains(t, view.Results[0].Error, "Unauthorized")
	assert.Nil(t, view.Results[0].Outcome)
}

func TestApply_FindsDefaultConfig(t *testing.T) {
	useMock(t, &atlas.MockClient{})
	findConfigFile = func() (string, error) { return "/work/atlas.yaml", nil }
	var loaded string
	loadDocument = func(path string) (*config.Document, error) {
		loaded = path
		return applyDocument(), nil
	}

	require.NoError(t, Apply(context.Background(), &GlobalOptions{Out: &bytes.Buffer{}}, ""))
	assert.Equal(t, "/work/atlas.yaml", loaded)
}

func TestApply_NoConfigFile(t *testing.T) {
	useMock(t, &atlas.MockClient{})
	findConfigFile = func() (string, error) { return "", errors.New("config file atlas.yaml not found") }

	err := Apply(context.Background(), &GlobalOptions{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
}

func TestApply_InvalidDocument(t *testing.T) {
	mock := &atlas.MockClient{}
	useMock(t, mock)
	loadDocument = func(string) (*config.Document, error) {
		return nil, config.ErrInvalidConfig
	}

	err := Apply(context.Background(), &GlobalOptions{}, "bad.yaml")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Empty(t, mock.Calls())
}
