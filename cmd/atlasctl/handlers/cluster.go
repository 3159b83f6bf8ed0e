package handlers

import (
	"context"

	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/reconcile"
)

// Cluster converges a single cluster towards spec.
func Cluster(ctx context.Context, opts *GlobalOptions, spec config.ClusterSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	return runPass(ctx, opts, reconcile.KindCluster, spec.Name,
		func(ctx context.Context, s *session) (*reconcile.Outcome, error) {
			return s.reconciler.ReconcileCluster(ctx, s.settings.GroupID, spec)
		})
}
