package handlers

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/atlasctl/internal/orchestration"
	"github.com/imamik/atlasctl/internal/platform/atlas"
	"github.com/imamik/atlasctl/internal/reconcile"
)

func TestRedact(t *testing.T) {
	user := &atlas.DatabaseUser{Username: "app", Password: "pw"}
	out := &reconcile.Outcome{Kind: reconcile.KindUser, Key: "app", Resource: user}

	got := redact(out)
	assert.Empty(t, got.Resource.(*atlas.DatabaseUser).Password)
	assert.Equal(t, "pw", user.Password, "original must not be modified")
	assert.Nil(t, redact(nil))
}

func TestRenderOutcome_YAMLUsesAPIFieldNames(t *testing.T) {
	var buf bytes.Buffer
	out := &reconcile.Outcome{
		Kind: reconcile.KindCluster, Key: "c1", Action: reconcile.ActionCreate, Changed: true,
		Resource: &atlas.Cluster{Name: "c1", StateName: "CREATING"},
	}
	require.NoError(t, renderOutcome(&buf, OutputYAML, out))
	assert.Contains(t, buf.String(), "stateName: CREATING")
	assert.Contains(t, buf.String(), "changed: true")
}

func TestRenderOutcome_TextDelete(t *testing.T) {
	var buf bytes.Buffer
	out := &reconcile.Outcome{Kind: reconcile.KindUser, Key: "u1", Action: reconcile.ActionDelete, Changed: true}
	require.NoError(t, renderOutcome(&buf, OutputText, out))
	assert.Equal(t, "changed user u1 (delete)\n", buf.String())
}

func TestRenderReportText_ListsFailures(t *testing.T) {
	report := &orchestration.Report{Results: []orchestration.Result{
		{Kind: reconcile.KindCluster, Key: "c1", Outcome: &reconcile.Outcome{Action: reconcile.ActionNone}},
		{Kind: reconcile.KindUser, Key: "u1", Err: errors.New("get user \"u1\": boom")},
	}}

	text := renderReportText(newStyles(&bytes.Buffer{}), report)
	assert.Contains(t, text, "0 changed, 1 unchanged, 1 failed")
	assert.Contains(t, text, "user/u1: get user \"u1\": boom")
	assert.Contains(t, text, "failed")
}

func TestValidateOutput(t *testing.T) {
	for _, f := range []string{"", OutputText, OutputJSON, OutputYAML} {
		assert.NoError(t, validateOutput(f))
	}
	assert.Error(t, validateOutput("xml"))
}
