//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/platform/atlas"
)

// settingsOrSkip loads credentials from the environment and skips the test
// when they are missing.
func settingsOrSkip(t *testing.T) *config.Settings {
	t.Helper()
	s, err := config.LoadSettings()
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Skipf("Atlas credentials not set, skipping e2e test: %v", err)
	}
	return s
}

func newClient(s *config.Settings) *atlas.Client {
	return atlas.NewClient(s.PublicKey, s.PrivateKey,
		atlas.WithBaseURL(s.BaseURL),
		atlas.WithTimeout(s.RequestTimeout),
		atlas.WithRetry(s.RetryMaxAttempts, s.RetryInitialDelay),
	)
}

// uniqueName returns a resource name that does not collide between runs.
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// WaitForClusterGone polls until the cluster is no longer returned.
// Uses a fixed polling interval of 30 seconds.
func WaitForClusterGone(ctx context.Context, c atlas.ClusterManager, groupID, name string, timeout time.Duration) error {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		cl, err := c.GetCluster(timeoutCtx, groupID, name)
		if err != nil {
			return err
		}
		if cl == nil {
			return nil
		}
		select {
		case <-timeoutCtx.Done():
			return fmt.Errorf("timeout waiting for cluster %s to be deleted (state %s)", name, cl.StateName)
		case <-ticker.C:
		}
	}
}

func requireEnv(t *testing.T, key string) {
	t.Helper()
	if os.Getenv(key) == "" {
		t.Skipf("%s not set, skipping", key)
	}
}
