package maxest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulgrocholske/bwplan/internal/config"
	"github.com/paulgrocholske/bwplan/internal/maxest"
	"github.com/paulgrocholske/bwplan/internal/model"
)

func testMaxEstimatorConfig(t *testing.T) config.MaxEstimator {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg.MaxEstimator
}

func TestEstimate_RequiresAtLeastTwoSets(t *testing.T) {
	cfg := testMaxEstimatorConfig(t)
	_, ok := maxest.Estimate([]model.CompletedSet{{Reps: 10}}, cfg)
	assert.False(t, ok)
}

func TestEstimate_ReturnsBothEstimatesForMultiSetSession(t *testing.T) {
	cfg := testMaxEstimatorConfig(t)
	sets := []model.CompletedSet{
		{Reps: 10, RestS: 180},
		{Reps: 8, RestS: 180},
		{Reps: 7, RestS: 180},
	}
	pair, ok := maxest.Estimate(sets, cfg)
	require.True(t, ok)
	assert.Greater(t, pair.FIEstimate, 0.0)
	assert.Greater(t, pair.NZEstimate, 0.0)
}

func TestEstimate_UsesReportedRIRWhenPresent(t *testing.T) {
	cfg := testMaxEstimatorConfig(t)
	rir := 2
	withRIR := []model.CompletedSet{
		{Reps: 10, RestS: 180, RIR: &rir},
		{Reps: 9, RestS: 180},
	}
	pair, ok := maxest.Estimate(withRIR, cfg)
	require.True(t, ok)
	assert.Greater(t, pair.NZEstimate, 0.0)
}

func TestEstimate_LowFatigueIndexGivesHigherFIEstimate(t *testing.T) {
	cfg := testMaxEstimatorConfig(t)
	noFatigue := []model.CompletedSet{{Reps: 10, RestS: 180}, {Reps: 10, RestS: 180}}
	heavyFatigue := []model.CompletedSet{{Reps: 10, RestS: 180}, {Reps: 3, RestS: 180}}

	// A flat fatigue index (FI=0) is below the reserve threshold, so it
	// adds a reserve bonus on top of set 1's corrected rep count; a
	// steep drop-off (FI>threshold) gets none.
	pairNoFatigue, ok1 := maxest.Estimate(noFatigue, cfg)
	pairFatigued, ok2 := maxest.Estimate(heavyFatigue, cfg)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Greater(t, pairNoFatigue.FIEstimate, pairFatigued.FIEstimate)
}
