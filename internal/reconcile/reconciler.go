package reconcile

import (
	"context"
	"fmt"

	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/platform/atlas"
)

// Reconciler runs single convergence passes against the Atlas API.
// It holds no state between passes and may be shared between goroutines.
type Reconciler struct {
	client   atlas.Manager
	clusters *ClusterEngine
	users    *UserEngine
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithClusterEngine replaces the default cluster engine.
func WithClusterEngine(e *ClusterEngine) Option {
	return func(r *Reconciler) {
		r.clusters = e
	}
}

// WithUserEngine replaces the default user engine.
func WithUserEngine(e *UserEngine) Option {
	return func(r *Reconciler) {
		r.users = e
	}
}

// NewReconciler creates a reconciler using client for every remote call.
func NewReconciler(client atlas.Manager, opts ...Option) *Reconciler {
	r := &Reconciler{
		client:   client,
		clusters: NewClusterEngine(),
		users:    NewUserEngine(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReconcileCluster runs one pass for spec in groupID.
func (r *Reconciler) ReconcileCluster(ctx context.Context, groupID string, spec config.ClusterSpec) (*Outcome, error) {
	key := spec.Name

	observed, err := r.client.GetCluster(ctx, groupID, key)
	if err != nil {
		return nil, opError("get", KindCluster, key, err)
	}

	plan := r.clusters.Decide(spec, observed)
	if err := checkPlan(KindCluster, key, plan.Action, observed != nil); err != nil {
		return nil, err
	}

	out := &Outcome{Kind: KindCluster, Key: key, Action: plan.Action, Changed: plan.Changed}
	switch plan.Action {
	case ActionCreate:
		created, err := r.client.CreateCluster(ctx, groupID, plan.Payload)
		if err != nil {
			return nil, opError("create", KindCluster, key, err)
		}
		out.Resource = created
	case ActionDelete:
		if err := r.client.DeleteCluster(ctx, groupID, key); err != nil {
			return nil, opError("delete", KindCluster, key, err)
		}
	case ActionNone:
		if observed != nil {
			out.Resource = observed
		}
	}
	return out, nil
}

// ReconcileUser runs one pass for spec in groupID.
func (r *Reconciler) ReconcileUser(ctx context.Context, groupID string, spec config.UserSpec) (*Outcome, error) {
	key := spec.Username

	observed, err := r.client.GetDatabaseUser(ctx, groupID, key)
	if err != nil {
		return nil, opError("get", KindUser, key, err)
	}

	plan := r.users.Decide(groupID, spec, observed)
	if err := checkPlan(KindUser, key, plan.Action, observed != nil); err != nil {
		return nil, err
	}

	out := &Outcome{Kind: KindUser, Key: key, Action: plan.Action, Changed: plan.Changed}
	switch plan.Action {
	case ActionCreate:
		created, err := r.client.CreateDatabaseUser(ctx, groupID, plan.Payload)
		if err != nil {
			return nil, opError("create", KindUser, key, err)
		}
		out.Resource = created
	case ActionUpdate:
		updated, err := r.client.UpdateDatabaseUser(ctx, groupID, key, plan.Payload)
		if err != nil {
			return nil, opError("update", KindUser, key, err)
		}
		out.Resource = updated
	case ActionDelete:
		if err := r.client.DeleteDatabaseUser(ctx, groupID, key); err != nil {
			return nil, opError("delete", KindUser, key, err)
		}
	case ActionNone:
		if observed != nil {
			out.Resource = observed
		}
	}
	return out, nil
}

// checkPlan rejects a plan that cannot apply to the observed presence.
func checkPlan(kind Kind, key string, action Action, present bool) error {
	switch action {
	case ActionCreate:
		if present {
			return fmt.Errorf("%w: create %s %q which already exists", ErrPolicyViolation, kind, key)
		}
	case ActionUpdate, ActionDelete:
		if !present {
			return fmt.Errorf("%w: %s %s %q which does not exist", ErrPolicyViolation, action, kind, key)
		}
	case ActionNone:
	default:
		return fmt.Errorf("%w: unknown action %q for %s %q", ErrPolicyViolation, action, kind, key)
	}
	return nil
}
