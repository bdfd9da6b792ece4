package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestInsertCover(t *testing.T) {
	d := openTest(t)

	id, err := d.InsertCover("gradient", "synthetic", 64, 48)
	require.NoError(t, err)
	again, err := d.InsertCover("gradient", "synthetic", 64, 48)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	other, err := d.InsertCover("gradient", "synthetic", 32, 32)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)

	covers, err := d.ListCovers()
	require.NoError(t, err)
	require.Len(t, covers, 2)
	assert.Equal(t, "synthetic", covers[0].Source)
	assert.Equal(t, 64, covers[0].Width)
}

func TestRateCurve(t *testing.T) {
	d := openTest(t)
	a, err := d.InsertCover("a", "synthetic", 8, 8)
	require.NoError(t, err)
	b, err := d.InsertCover("b", "synthetic", 8, 8)
	require.NoError(t, err)

	results := []*Result{
		{CoverID: a, Channel: "red", Strategy: "sequential", TargetRate: 0, RM: 40, SM: 20, RNegM: 42, SNegM: 18, Verdict: "natural", Recovered: true},
		{CoverID: b, Channel: "red", Strategy: "sequential", TargetRate: 0, RM: 30, SM: 20, RNegM: 32, SNegM: 18, Verdict: "natural", Recovered: true},
		{CoverID: a, Channel: "red", Strategy: "sequential", TargetRate: 1, RM: 20, SM: 30, Verdict: "embedded",
			EstimatedRate: sql.NullFloat64{Float64: 0.9, Valid: true}},
		{CoverID: a, Channel: "green", Strategy: "sequential", TargetRate: 1, RM: 99, SM: 1, Verdict: "natural"},
	}
	require.NoError(t, d.InsertResults(results))
	for _, r := range results {
		assert.NotZero(t, r.ID)
	}

	count, err := d.CountResults()
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	curve, err := d.RateCurve("red", "sequential")
	require.NoError(t, err)
	require.Len(t, curve, 2)
	assert.Equal(t, 2, curve[0].Samples)
	assert.InDelta(t, 35, curve[0].AvgRM, 1e-9)
	assert.InDelta(t, 20, curve[0].AvgSM, 1e-9)
	assert.InDelta(t, 1, curve[0].RecoveredRate, 1e-9)
	assert.InDelta(t, 0, curve[0].AvgEstimatedRate, 1e-9)
	assert.InDelta(t, 0.9, curve[1].AvgEstimatedRate, 1e-9)
	assert.InDelta(t, 0, curve[1].RecoveredRate, 1e-9)

	stats, err := d.GetVerdictStats()
	require.NoError(t, err)
	assert.Len(t, stats, 3)
}

func TestInsertResultsReplaces(t *testing.T) {
	d := openTest(t)
	id, err := d.InsertCover("a", "synthetic", 8, 8)
	require.NoError(t, err)

	r := &Result{CoverID: id, Channel: "red", Strategy: "sequential", TargetRate: 0.5, RM: 1, Verdict: "embedded"}
	require.NoError(t, d.InsertResults([]*Result{r}))
	r.RM = 2
	require.NoError(t, d.InsertResults([]*Result{r}))

	count, err := d.CountResults()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	curve, err := d.RateCurve("red", "sequential")
	require.NoError(t, err)
	require.Len(t, curve, 1)
	assert.InDelta(t, 2, curve[0].AvgRM, 1e-9)
}
