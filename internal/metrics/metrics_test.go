package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/paulgrocholske/bwplan/internal/config"
	"github.com/paulgrocholske/bwplan/internal/metrics"
	"github.com/paulgrocholske/bwplan/internal/model"
)

func testMetricsConfig() config.Metrics {
	return config.Metrics{
		RestFactorFloorS:   30,
		RestFactorRefS:     180,
		RestFactorExponent: 0.20,
		RestFactorMin:      0.80,
		RestFactorMax:      1.05,
		EstimateRIRMax:     5,
	}
}

func TestRestFactor_ClampsAtFloorAndCeiling(t *testing.T) {
	cfg := testMetricsConfig()

	// Below the floor clamps the same as exactly at the floor.
	assert.Equal(t, metrics.RestFactor(10, cfg), metrics.RestFactor(30, cfg))

	// A very long rest saturates at the configured max.
	assert.InDelta(t, cfg.RestFactorMax, metrics.RestFactor(3600, cfg), 1e-9)

	// Reference rest produces a factor of exactly 1.0 before clamping.
	assert.InDelta(t, 1.0, metrics.RestFactor(180, cfg), 1e-9)
}

func TestEffectiveReps_ShortRestCreditsMoreThanLiteralReps(t *testing.T) {
	cfg := testMetricsConfig()
	short := metrics.EffectiveReps(10, 30, cfg)
	long := metrics.EffectiveReps(10, 600, cfg)
	assert.Greater(t, short, long)
}

func TestRelativeLoad_BWPlusExternal(t *testing.T) {
	// Same bodyweight and added weight as the reference gives 1.0.
	l := metrics.RelativeLoad(80, 0, 80, 1.0)
	assert.InDelta(t, 1.0, l, 1e-9)

	// Added external weight increases relative load above 1.0.
	l2 := metrics.RelativeLoad(80, 20, 80, 1.0)
	assert.Greater(t, l2, 1.0)
}

func TestTrainingMaxFrom_FloorsAndNeverBelowOne(t *testing.T) {
	assert.Equal(t, 18, metrics.TrainingMaxFrom(20))
	assert.Equal(t, 1, metrics.TrainingMaxFrom(0))
	assert.Equal(t, 1, metrics.TrainingMaxFrom(1))
}

func TestDropOff_RequiresAtLeastThreeSets(t *testing.T) {
	twoSets := []model.CompletedSet{{Reps: 10}, {Reps: 8}}
	assert.Equal(t, 0.0, metrics.DropOff(twoSets))

	threeSets := []model.CompletedSet{{Reps: 10}, {Reps: 8}, {Reps: 6}}
	assert.InDelta(t, 0.3, metrics.DropOff(threeSets), 1e-9)
}

func TestLinearTrend_FlatWithFewerThanTwoPointsInWindow(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []metrics.TrendPoint{{Date: base, Value: 10}}
	assert.Equal(t, 0.0, metrics.LinearTrend(points, 21))
}

func TestLinearTrend_PositiveSlopeForIncreasingMaxes(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []metrics.TrendPoint{
		{Date: base, Value: 10},
		{Date: base.AddDate(0, 0, 7), Value: 12},
		{Date: base.AddDate(0, 0, 14), Value: 14},
	}
	slope := metrics.LinearTrend(points, 21)
	assert.InDelta(t, 2.0, slope, 1e-6)
}

func TestSessionCompliance_FullCreditWithNoPlannedSets(t *testing.T) {
	assert.Equal(t, 1.0, metrics.SessionCompliance(nil, nil))
}

func TestSessionCompliance_RatioOfActualToTarget(t *testing.T) {
	actual := []model.CompletedSet{{Reps: 8}, {Reps: 8}}
	target := []model.PlannedSet{{Reps: 10}, {Reps: 10}}
	assert.InDelta(t, 0.8, metrics.SessionCompliance(actual, target), 1e-9)
}

func TestWeeklyCompliance_FullCreditWithNoSessionsInWindow(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1.0, metrics.WeeklyCompliance(asOf, 1, nil))
}

func TestWeeklyCompliance_AveragesWithinWindowOnly(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	sessions := []metrics.DatedCompliance{
		{Date: asOf.AddDate(0, 0, -2), Compliance: 1.0},
		{Date: asOf.AddDate(0, 0, -4), Compliance: 0.5},
		{Date: asOf.AddDate(0, 0, -30), Compliance: 0.0}, // outside the 1-week window
	}
	assert.InDelta(t, 0.75, metrics.WeeklyCompliance(asOf, 1, sessions), 1e-9)
}
