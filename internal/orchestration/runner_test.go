package orchestration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/platform/atlas"
	"github.com/imamik/atlasctl/internal/reconcile"
)

type recordingObserver struct {
	mu     sync.Mutex
	passes []string
}

func (o *recordingObserver) ObserveReconcile(kind reconcile.Kind, action reconcile.Action, err error, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	result := "ok"
	if err != nil {
		result = "error"
	}
	o.passes = append(o.passes, string(kind)+":"+string(action)+":"+result)
}

func testDocument() *config.Document {
	pw := "pw"
	return &config.Document{
		Clusters: []config.ClusterSpec{
			{Name: "c1"},
			{Name: "old", State: config.StateAbsent},
		},
		Users: []config.UserSpec{
			{Username: "app", Password: &pw, Roles: []config.RoleGrant{config.Bare("readWrite")}},
			{Username: "broken"},
		},
	}
}

func TestRunner_ApplyCollectsEveryResult(t *testing.T) {
	mock := &atlas.MockClient{
		GetDatabaseUserFunc: func(_ context.Context, _, username string) (*atlas.DatabaseUser, error) {
			if username == "broken" {
				return nil, &atlas.APIError{StatusCode: 500, Body: []byte(`{"error":500}`)}
			}
			return nil, nil
		},
	}
	obs := &recordingObserver{}
	runner := NewRunner(reconcile.NewReconciler(mock), "g1", WithConcurrency(2), WithObserver(obs))

	report, err := runner.Apply(context.Background(), testDocument())
	require.Error(t, err)
	require.NotNil(t, report)

	require.Len(t, report.Results, 4)
	assert.Equal(t, []string{"cluster/c1", "cluster/old", "user/app", "user/broken"}, []string{
		report.Results[0].Name(), report.Results[1].Name(), report.Results[2].Name(), report.Results[3].Name(),
	})

	assert.Equal(t, reconcile.ActionCreate, report.Results[0].Outcome.Action)
	assert.Equal(t, reconcile.ActionNone, report.Results[1].Outcome.Action)
	assert.Equal(t, reconcile.ActionCreate, report.Results[2].Outcome.Action)
	assert.Nil(t, report.Results[3].Outcome)

	assert.Equal(t, 2, report.Changed())
	assert.Equal(t, 1, report.Unchanged())
	assert.Equal(t, 1, report.Failed())

	var opErr *reconcile.OperationError
	require.ErrorAs(t, report.Err(), &opErr)
	assert.Equal(t, "broken", opErr.Key)
	assert.Contains(t, err.Error(), "user/broken")

	assert.ElementsMatch(t, []string{
		"cluster:create:ok", "cluster:none:ok", "user:create:ok", "user::error",
	}, obs.passes)
}

func TestRunner_ApplyAllUnchanged(t *testing.T) {
	mock := &atlas.MockClient{
		GetClusterFunc: func(_ context.Context, _, name string) (*atlas.Cluster, error) {
			return &atlas.Cluster{Name: name}, nil
		},
	}
	runner := NewRunner(reconcile.NewReconciler(mock), "g1")

	report, err := runner.Apply(context.Background(), &config.Document{Clusters: []config.ClusterSpec{{Name: "c1"}, {Name: "c2"}}})
	require.NoError(t, err)
	assert.NoError(t, report.Err())
	assert.Equal(t, 2, report.Unchanged())
	assert.Zero(t, mock.WriteCalls())
}

func TestRunner_ApplyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := &atlas.MockClient{}
	report, err := NewRunner(reconcile.NewReconciler(mock), "g1", WithConcurrency(1)).Apply(ctx, testDocument())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 4, report.Failed())
	assert.Empty(t, mock.Calls())
}

func TestRunner_LogsFailures(t *testing.T) {
	var mu sync.Mutex
	var lines []string
	log := funcr.New(func(prefix, args string) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, args)
	}, funcr.Options{})

	mock := &atlas.MockClient{
		GetClusterFunc: func(context.Context, string, string) (*atlas.Cluster, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	}
	_, err := NewRunner(reconcile.NewReconciler(mock), "g1", WithLogger(log)).
		Apply(context.Background(), &config.Document{Clusters: []config.ClusterSpec{{Name: "c1"}}})
	require.Error(t, err)

	mu.Lock()
	defer mu.Unlock()
	joined := ""
	for _, l := range lines {
		joined += l + "\n"
	}
	assert.Contains(t, joined, `"msg"="reconcile failed"`)
	assert.Contains(t, joined, `"operation"="get"`)
	assert.Contains(t, joined, `"failed"=1`)
}
