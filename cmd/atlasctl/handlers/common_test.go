package handlers

import (
	"testing"

	"github.com/go-logr/logr"

	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/platform/atlas"
)

// saveAndRestoreFactories saves all factory variables and restores them after the test.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origNewAtlasClient := newAtlasClient
	origNewLogger := newLogger
	origLoadSettings := loadSettings
	origLoadDocument := loadDocument
	origFindConfigFile := findConfigFile
	origLookupEnv := lookupEnv

	t.Cleanup(func() {
		newAtlasClient = origNewAtlasClient
		newLogger = origNewLogger
		loadSettings = origLoadSettings
		loadDocument = origLoadDocument
		findConfigFile = origFindConfigFile
		lookupEnv = origLookupEnv
	})
}

// useMock wires the handlers to mock and to fixed, valid settings.
func useMock(t *testing.T, mock *atlas.MockClient) *config.Settings {
	t.Helper()
	saveAndRestoreFactories(t)

	settings := &config.Settings{
		PublicKey:      "pub",
		PrivateKey:     "priv",
		GroupID:        "g1",
		BaseURL:        atlas.DefaultBaseURL,
		RequestTimeout: 1,
		Concurrency:    2,
	}
	loadSettings = func() (*config.Settings, error) {
		cp := *settings
		return &cp, nil
	}
	newLogger = func(string, string) (logr.Logger, error) {
		return logr.Discard(), nil
	}
	newAtlasClient = func(*config.Settings, atlas.RequestObserver) atlas.Manager {
		return mock
	}
	return settings
}
