package orchestration

import (
	"context"
	"errors"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/reconcile"
	"github.com/imamik/atlasctl/internal/util/async"
)

// DefaultConcurrency is the number of passes run at once unless overridden.
const DefaultConcurrency = 4

// Reconciler runs single passes. *reconcile.Reconciler implements it.
type Reconciler interface {
	ReconcileCluster(ctx context.Context, groupID string, spec config.ClusterSpec) (*reconcile.Outcome, error)
	ReconcileUser(ctx context.Context, groupID string, spec config.UserSpec) (*reconcile.Outcome, error)
}

// Observer is notified when a pass finishes. *metrics.Recorder implements it.
type Observer interface {
	ObserveReconcile(kind reconcile.Kind, action reconcile.Action, err error, elapsed time.Duration)
}

// Runner applies documents to one Atlas project.
type Runner struct {
	reconciler  Reconciler
	groupID     string
	concurrency int
	log         logr.Logger
	observer    Observer
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency limits how many passes run at once.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logr.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// WithObserver registers a pass observer, typically a metrics recorder.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		r.observer = o
	}
}

// NewRunner creates a Runner for groupID.
func NewRunner(rec Reconciler, groupID string, opts ...Option) *Runner {
	r := &Runner{
		reconciler:  rec,
		groupID:     groupID,
		concurrency: DefaultConcurrency,
		log:         logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply runs one pass per resource in doc and waits for all of them.
// The report is always returned; the error joins every failed pass.
func (r *Runner) Apply(ctx context.Context, doc *config.Document) (*Report, error) {
	results := make([]Result, 0, len(doc.Clusters)+len(doc.Users))
	for _, c := range doc.Clusters {
		results = append(results, Result{Kind: reconcile.KindCluster, Key: c.Name})
	}
	for _, u := range doc.Users {
		results = append(results, Result{Kind: reconcile.KindUser, Key: u.Username})
	}

	tasks := make([]async.Task, 0, len(results))
	for i := range doc.Clusters {
		spec := doc.Clusters[i]
		res := &results[i]
		tasks = append(tasks, async.Task{
			Name: res.Name(),
			Func: func(ctx context.Context) error {
				return r.run(res, func() (*reconcile.Outcome, error) {
					return r.reconciler.ReconcileCluster(ctx, r.groupID, spec)
				})
			},
		})
	}
	for i := range doc.Users {
		spec := doc.Users[i]
		res := &results[len(doc.Clusters)+i]
		tasks = append(tasks, async.Task{
			Name: res.Name(),
			Func: func(ctx context.Context) error {
				return r.run(res, func() (*reconcile.Outcome, error) {
					return r.reconciler.ReconcileUser(ctx, r.groupID, spec)
				})
			},
		})
	}

	r.log.V(1).Info("applying document", "group", r.groupID, "resources", len(tasks), "concurrency", r.concurrency)
	err := async.RunParallel(ctx, r.concurrency, tasks)

	// Passes skipped because ctx was cancelled never ran and have no error recorded.
	if ctxErr := ctx.Err(); ctxErr != nil {
		for i := range results {
			if results[i].Outcome == nil && results[i].Err == nil {
				results[i].Err = ctxErr
			}
		}
	}

	report := &Report{Results: results}
	r.log.Info("apply finished",
		"changed", report.Changed(),
		"unchanged", report.Unchanged(),
		"failed", report.Failed())
	return report, err
}

func (r *Runner) run(res *Result, pass func() (*reconcile.Outcome, error)) error {
	log := r.log.WithValues("kind", res.Kind, "key", res.Key)
	log.V(1).Info("reconciling")

	start := time.Now()
	out, err := pass()
	res.Duration = time.Since(start)
	res.Outcome = out
	res.Err = err

	var action reconcile.Action
	if out != nil {
		action = out.Action
	}
	if r.observer != nil {
		r.observer.ObserveReconcile(res.Kind, action, err, res.Duration)
	}

	if err != nil {
		var opErr *reconcile.OperationError
		if errors.As(err, &opErr) {
			log = log.WithValues("operation", opErr.Op)
		}
		log.Error(err, "reconcile failed")
		return err
	}
	log.Info("reconciled", "action", out.Action, "changed", out.Changed, "duration", res.Duration.Round(time.Millisecond).String())
	return nil
}
