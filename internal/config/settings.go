package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Settings holds credentials and transport tuning. Values come from the
// environment; command-line flags override them.
//
// Environment Variables:
//   - ATLAS_PUBLIC_KEY, ATLAS_PRIVATE_KEY: programmatic API key pair
//   - ATLAS_GROUP_ID: project (group) that scopes every resource
//   - ATLAS_BASE_URL (default: https://cloud.mongodb.com/api/atlas/v1.0)
//   - ATLAS_TIMEOUT_REQUEST (default: 30s)
//   - ATLAS_RETRY_MAX_ATTEMPTS (default: 3), retries of read requests
//   - ATLAS_RETRY_INITIAL_DELAY (default: 1s)
//   - ATLAS_CONCURRENCY (default: 4), parallel passes during apply
type Settings struct {
	PublicKey         string        `env:"ATLAS_PUBLIC_KEY"`
	PrivateKey        string        `env:"ATLAS_PRIVATE_KEY"`
	GroupID           string        `env:"ATLAS_GROUP_ID"`
	BaseURL           string        `env:"ATLAS_BASE_URL" envDefault:"https://cloud.mongodb.com/api/atlas/v1.0"`
	RequestTimeout    time.Duration `env:"ATLAS_TIMEOUT_REQUEST" envDefault:"30s"`
	RetryMaxAttempts  int           `env:"ATLAS_RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryInitialDelay time.Duration `env:"ATLAS_RETRY_INITIAL_DELAY" envDefault:"1s"`
	Concurrency       int           `env:"ATLAS_CONCURRENCY" envDefault:"4"`
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (*Settings, error) {
	s := &Settings{}
	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return s, nil
}

// Validate checks that the settings can reach the API.
func (s *Settings) Validate() error {
	if s.PublicKey == "" || s.PrivateKey == "" {
		return invalidf("API key pair is required (ATLAS_PUBLIC_KEY/ATLAS_PRIVATE_KEY or --public-key/--private-key)")
	}
	if s.GroupID == "" {
		return invalidf("group ID is required (ATLAS_GROUP_ID or --group-id)")
	}
	if s.RequestTimeout <= 0 {
		return invalidf("request timeout must be positive")
	}
	if s.RetryMaxAttempts < 0 {
		return invalidf("retry attempts must not be negative")
	}
	if s.Concurrency < 1 {
		return invalidf("concurrency must be at least 1")
	}
	return nil
}
