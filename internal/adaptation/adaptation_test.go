package adaptation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulgrocholske/bwplan/internal/adaptation"
	"github.com/paulgrocholske/bwplan/internal/config"
	"github.com/paulgrocholske/bwplan/internal/exercisedef"
	"github.com/paulgrocholske/bwplan/internal/metrics"
	"github.com/paulgrocholske/bwplan/internal/model"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestAutoregulate_NoOpBelowGateSessions(t *testing.T) {
	cfg := testConfig(t)
	sets, reps := adaptation.Autoregulate(5, 8, 9, -2.0, cfg.Adaptation)
	assert.Equal(t, 5, sets)
	assert.Equal(t, 8, reps)
}

func TestAutoregulate_LowReadinessTrimsSetsOnceGated(t *testing.T) {
	cfg := testConfig(t)
	sets, reps := adaptation.Autoregulate(5, 8, 10, -2.0, cfg.Adaptation)
	assert.Less(t, sets, 5)
	assert.Equal(t, 8, reps)
	assert.GreaterOrEqual(t, sets, cfg.Adaptation.AutoregMinSets)
}

func TestAutoregulate_HighReadinessAddsRepOnceGated(t *testing.T) {
	cfg := testConfig(t)
	sets, reps := adaptation.Autoregulate(5, 8, 10, 2.0, cfg.Adaptation)
	assert.Equal(t, 5, sets)
	assert.Equal(t, 9, reps)
}

func TestProgressionRate_DecreasesAsTMApproachesTarget(t *testing.T) {
	cfg := testConfig(t)
	early := adaptation.ProgressionRate(5, 29, cfg.Adaptation)
	late := adaptation.ProgressionRate(25, 29, cfg.Adaptation)
	atTarget := adaptation.ProgressionRate(29, 29, cfg.Adaptation)

	assert.Greater(t, early, late)
	assert.Greater(t, late, atTarget)
	assert.InDelta(t, cfg.Adaptation.ProgressionBaseRate, atTarget, 1e-9)
}

func TestDeloadRecommended_TriggersOnLowCompliance(t *testing.T) {
	cfg := testConfig(t)
	assert.True(t, adaptation.DeloadRecommended(false, 0, false, 0.5, cfg.Adaptation))
	assert.False(t, adaptation.DeloadRecommended(false, 0, false, 0.9, cfg.Adaptation))
}

func TestOvertrainingSeverity_ZeroWithNoHistory(t *testing.T) {
	cfg := testConfig(t)
	result := adaptation.OvertrainingSeverity(nil, time.Now(), 3, cfg.Adaptation)
	assert.Equal(t, 0, result.Level)
	assert.Equal(t, 0, result.ExtraRestDays)
}

func TestOvertrainingSeverity_RisesWithCompressedCadence(t *testing.T) {
	cfg := testConfig(t)
	asOf := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	// 3 sessions per week target, but all 6 sessions crammed into 2 days.
	var events []model.SessionResult
	day1 := asOf.AddDate(0, 0, -6)
	day2 := asOf.AddDate(0, 0, -5)
	for i := 0; i < 3; i++ {
		events = append(events,
			model.SessionResult{Date: day1, SessionType: model.Strength, Sets: []model.CompletedSet{{Reps: 5}}},
			model.SessionResult{Date: day2, SessionType: model.Strength, Sets: []model.CompletedSet{{Reps: 5}}},
		)
	}

	result := adaptation.OvertrainingSeverity(events, asOf, 3, cfg.Adaptation)
	assert.Greater(t, result.Level, 0)
}

func TestEvaluate_IsDeterministicOverSameHistory(t *testing.T) {
	cfg := testConfig(t)
	ex := exercisedef.PullUp()
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	history := []model.SessionResult{
		{Date: asOf.AddDate(0, 0, -14), ExerciseID: ex.ID, SessionType: model.Test, Variant: "pronated",
			Sets: []model.CompletedSet{{Reps: 15}, {Reps: 12}}},
		{Date: asOf.AddDate(0, 0, -7), ExerciseID: ex.ID, SessionType: model.Strength, Variant: "pronated",
			Sets: []model.CompletedSet{{Reps: 9, RestS: 180}, {Reps: 8, RestS: 180}}},
	}

	status1, _, ot1 := adaptation.Evaluate(history, ex, 15, 80, 3, asOf, cfg)
	status2, _, ot2 := adaptation.Evaluate(history, ex, 15, 80, 3, asOf, cfg)

	assert.Equal(t, status1, status2)
	assert.Equal(t, ot1, ot2)
}

func TestPlateau_FlatSlopeAndNoRecentRecordIsPlateau(t *testing.T) {
	cfg := testConfig(t)
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	points := []metrics.TrendPoint{
		{Date: asOf.AddDate(0, 0, -10), Value: 9},
	}
	assert.True(t, adaptation.Plateau(0, points, 10, asOf, cfg.Adaptation))
}

func TestPlateau_NewAllTimeRecordInWindowIsNotPlateau(t *testing.T) {
	cfg := testConfig(t)
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// The only TEST within the trend window beats the best established
	// before the window, so this is a fresh PR, not a plateau, even
	// though the OLS slope over a single point reads 0.
	points := []metrics.TrendPoint{
		{Date: asOf.AddDate(0, 0, -5), Value: 12},
	}
	assert.False(t, adaptation.Plateau(0, points, 10, asOf, cfg.Adaptation))
}

func TestEvaluate_RecentPRWithinWindowIsNotPlateau(t *testing.T) {
	cfg := testConfig(t)
	ex := exercisedef.PullUp()
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	history := []model.SessionResult{
		{Date: asOf.AddDate(0, 0, -60), ExerciseID: ex.ID, SessionType: model.Test, Variant: "pronated",
			Sets: []model.CompletedSet{{Reps: 10}}},
		{Date: asOf.AddDate(0, 0, -5), ExerciseID: ex.ID, SessionType: model.Test, Variant: "pronated",
			Sets: []model.CompletedSet{{Reps: 12}}},
	}

	status, _, _ := adaptation.Evaluate(history, ex, 10, 80, 3, asOf, cfg)
	assert.False(t, status.IsPlateau)
}
