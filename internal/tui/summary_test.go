package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/mistinfo/internal/model"
	"github.com/dm/mistinfo/internal/report"
	"github.com/dm/mistinfo/internal/runner"
)

func summaryResult(t *testing.T) *runner.Result {
	t.Helper()
	snap := model.NewSnapshot()
	require.NoError(t, snap.Set(model.KindDevices, []any{map[string]any{"id": "d1"}, map[string]any{"id": "d2"}}))
	require.NoError(t, snap.Set(model.KindDeviceStats, []any{}))
	require.NoError(t, snap.Set(model.KindWLANs, map[string]any{}))
	require.NoError(t, snap.Set(model.KindBeacons, nil))
	require.NoError(t, snap.Set(model.KindClients, make([]any, 1234)))
	return &runner.Result{
		Snapshot: snap,
		Files: []report.FileResult{
			{Format: report.FormatJSON, Path: "out.json", Size: 2048},
			{Format: report.FormatHTML, Path: "out.html", Err: errors.New("permission denied")},
		},
		Elapsed: 2 * time.Second,
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(summaryResult(t))

	assert.Contains(t, out, "RESOURCE")
	assert.Contains(t, out, "ITEMS")
	for _, k := range model.AllKinds() {
		assert.Contains(t, out, string(k))
	}
	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "out.json")
	assert.Contains(t, out, "2.0 KB")
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "Total runtime: 2.00 s")

	// Rows follow canonical order.
	assert.Less(t, strings.Index(out, "devices"), strings.Index(out, "clients"))
}

func TestRenderSummary_Nil(t *testing.T) {
	assert.Equal(t, "", RenderSummary(nil))
	assert.Equal(t, "", RenderSummary(&runner.Result{}))
}
