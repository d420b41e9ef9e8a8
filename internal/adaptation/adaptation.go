// Package adaptation implements the trend, plateau, underperformance,
// deload-trigger, autoregulation, overtraining-severity, progression-rate,
// and volume-policy rules of spec.md §4.3.
package adaptation

import (
	"math"
	"sort"
	"time"

	"github.com/paulgrocholske/bwplan/internal/config"
	"github.com/paulgrocholske/bwplan/internal/metrics"
	"github.com/paulgrocholske/bwplan/internal/model"
	"github.com/paulgrocholske/bwplan/internal/physiology"
)

// TrainingStatus is the §4.3 status summary surfaced to `status` and used
// by the planner.
type TrainingStatus struct {
	TrainingMax             int
	LatestTestMax           float64
	TrendSlope              float64
	IsPlateau               bool
	DeloadRecommended       bool
	ReadinessZScore         float64
	Fitness                 float64
	Fatigue                 float64
	WeeklyCompliance        float64
	CompletedNonTestSessions int
}

// OvertrainingResult is the §4.3 severity assessment and its planner
// effects.
type OvertrainingResult struct {
	Level         int
	ExtraRestDays int
}

// underperfPoint is a non-TEST S session's own-date performance snapshot.
type underperfPoint struct {
	date    time.Time
	maxReps float64
	mPred   float64
}

// Evaluate replays exercise-filtered history once and derives the full
// training status, the terminal fitness-fatigue state, and the current
// overtraining assessment. History must already be filtered to one
// exercise; REST records are included so decay and the overtraining
// window can see them.
func Evaluate(history []model.SessionResult, exercise model.Exercise, baselineMax, bwRefKg float64, daysPerWeek int, asOf time.Time, cfg config.Config) (TrainingStatus, model.FitnessFatigueState, OvertrainingResult) {
	events := make([]model.SessionResult, len(history))
	copy(events, history)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })

	state := physiology.NewState(baselineMax, cfg.Physiology)
	var lastDate time.Time
	hasLast := false

	var testPoints []metrics.TrendPoint
	bestBeforeWindow := 0.0
	trendCutoff := asOf.AddDate(0, 0, -cfg.Adaptation.TrendWindowDays)
	var latestTestMax float64
	hasTest := false

	var underperf []underperfPoint
	completedNonTestCount := 0
	var compliances []metrics.DatedCompliance

	for _, ev := range events {
		var deltaDays float64
		if hasLast {
			deltaDays = ev.Date.Sub(lastDate).Hours() / 24
		}

		var w float64
		if ev.SessionType != model.Rest {
			w = physiology.Impulse(ev.Sets, ev.Variant, exercise.VariantStressFactor, ev.BodyweightKg, bwRefKg, exercise.BWFraction, state.MHat, cfg.Physiology, cfg.Metrics)
		}

		state.Fitness = state.Fitness*math.Exp(-deltaDays/cfg.Physiology.FitnessTauDays) + cfg.Physiology.FitnessWeight*w
		state.Fatigue = state.Fatigue*math.Exp(-deltaDays/cfg.Physiology.FatigueTauDays) + cfg.Physiology.FatigueWeight*w
		lastDate = ev.Date
		hasLast = true

		if ev.SessionType == model.Test {
			mObs := physiology.ObservedMax(ev.Sets)
			state = physiology.UpdateMax(state, mObs, cfg.Physiology)
			testPoints = append(testPoints, metrics.TrendPoint{Date: ev.Date, Value: mObs})
			if ev.Date.Before(trendCutoff) && mObs > bestBeforeWindow {
				bestBeforeWindow = mObs
			}
			latestTestMax = mObs
			hasTest = true
		}

		if ev.SessionType != model.Rest {
			r := state.Fitness - state.Fatigue
			alpha := cfg.Physiology.ReadinessEWMAAlpha
			if state.UpdateCount == 0 {
				state.ReadinessMean = r
				state.ReadinessVar = 0
			} else {
				prevMean := state.ReadinessMean
				state.ReadinessMean = (1-alpha)*prevMean + alpha*r
				state.ReadinessVar = (1-alpha)*state.ReadinessVar + alpha*(r-prevMean)*(r-prevMean)
			}
			state.UpdateCount++
		}

		if ev.SessionType != model.Rest && ev.SessionType != model.Test {
			completedNonTestCount++
			compliances = append(compliances, metrics.DatedCompliance{
				Date:       ev.Date,
				Compliance: metrics.SessionCompliance(ev.Sets, ev.PlannedSets),
			})
		}

		if ev.SessionType == model.Strength {
			underperf = append(underperf, underperfPoint{
				date:    ev.Date,
				maxReps: float64(metrics.SessionMaxBWOnly(ev.Sets)),
				mPred:   physiology.PredictedMax(state, cfg.Physiology),
			})
		}
	}

	state.LastUpdate = lastDate
	state.HasLastUpdate = hasLast

	baselineForStatus := baselineMax
	if !hasTest {
		latestTestMax = baselineForStatus
	}
	trainingMax := metrics.TrainingMaxFrom(latestTestMax)

	trendSlope := metrics.LinearTrend(testPoints, cfg.Adaptation.TrendWindowDays)
	plateau := Plateau(trendSlope, testPoints, bestBeforeWindow, asOf, cfg.Adaptation)
	underperforming := Underperformance(underperf, cfg.Adaptation)
	weeklyCompliance := metrics.WeeklyCompliance(asOf, cfg.Adaptation.ComplianceWindowWeeks, compliances)
	readinessZ := physiology.ReadinessZ(state)

	deload := DeloadRecommended(plateau, readinessZ, underperforming, weeklyCompliance, cfg.Adaptation)

	status := TrainingStatus{
		TrainingMax:              trainingMax,
		LatestTestMax:            latestTestMax,
		TrendSlope:               trendSlope,
		IsPlateau:                plateau,
		DeloadRecommended:        deload,
		ReadinessZScore:          readinessZ,
		Fitness:                  state.Fitness,
		Fatigue:                  state.Fatigue,
		WeeklyCompliance:         weeklyCompliance,
		CompletedNonTestSessions: completedNonTestCount,
	}

	overtraining := OvertrainingSeverity(events, asOf, daysPerWeek, cfg.Adaptation)

	return status, state, overtraining
}

// Plateau is true when the trend slope is flat AND no TEST within the
// trend window exceeded the best max established strictly before the
// window (i.e. no recent TEST set a new all-time record).
func Plateau(trendSlope float64, testPoints []metrics.TrendPoint, bestBeforeWindow float64, asOf time.Time, cfg config.Adaptation) bool {
	if trendSlope >= cfg.PlateauSlopeThreshold {
		return false
	}
	cutoff := asOf.AddDate(0, 0, -cfg.TrendWindowDays)
	for _, p := range testPoints {
		if p.Date.Before(cutoff) {
			continue
		}
		if p.Value > bestBeforeWindow {
			return false
		}
	}
	return true
}

// Underperformance is true when the last two non-TEST S sessions both
// fell short of their own-date readiness-adjusted max prediction.
func Underperformance(points []underperfPoint, cfg config.Adaptation) bool {
	if len(points) < 2 {
		return false
	}
	last := points[len(points)-2:]
	for _, p := range last {
		if p.maxReps >= cfg.UnderperformanceFraction*p.mPred {
			return false
		}
	}
	return true
}

// DeloadRecommended combines plateau, underperformance, and compliance
// into the single deload trigger.
func DeloadRecommended(plateau bool, readinessZ float64, underperforming bool, weeklyCompliance float64, cfg config.Adaptation) bool {
	if plateau && readinessZ < cfg.DeloadReadinessZ {
		return true
	}
	if underperforming {
		return true
	}
	if weeklyCompliance < cfg.DeloadComplianceMin {
		return true
	}
	return false
}

// Autoregulate perturbs a base (sets, reps) prescription using the
// readiness z-score, gated on having enough completed non-TEST history.
func Autoregulate(baseSets, baseReps, completedNonTestSessions int, z float64, cfg config.Adaptation) (sets, reps int) {
	if completedNonTestSessions < cfg.AutoregGateSessions {
		return baseSets, baseReps
	}
	switch {
	case z < cfg.AutoregLowZ:
		lowered := int(math.Floor(float64(baseSets) * cfg.AutoregLowSetFraction))
		if lowered < cfg.AutoregMinSets {
			lowered = cfg.AutoregMinSets
		}
		return lowered, baseReps
	case z > cfg.AutoregHighZ:
		return baseSets, baseReps + 1
	default:
		return baseSets, baseReps
	}
}

// OvertrainingSeverity computes the §4.3 overtraining level and the
// in-memory extra_rest_days it implies, from the last
// cfg.OvertrainingWindowDays calendar days of history ending at asOf,
// given the profile's target days-per-week for this exercise. events
// must already be sorted ascending by date.
func OvertrainingSeverity(events []model.SessionResult, asOf time.Time, daysPerWeek int, cfg config.Adaptation) OvertrainingResult {
	cutoff := asOf.AddDate(0, 0, -cfg.OvertrainingWindowDays)

	var nonRestDates []time.Time
	restDays := 0
	for _, ev := range events {
		if ev.Date.Before(cutoff) || ev.Date.After(asOf) {
			continue
		}
		if ev.SessionType == model.Rest {
			restDays++
			continue
		}
		nonRestDates = append(nonRestDates, ev.Date)
	}

	n := len(nonRestDates)
	if n == 0 {
		return OvertrainingResult{}
	}

	first, last := nonRestDates[0], nonRestDates[0]
	for _, d := range nonRestDates {
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	span := last.Sub(first).Hours() / 24

	return severityFromWindow(n, span, restDays, daysPerWeekOrDefault(daysPerWeek), cfg)
}

func daysPerWeekOrDefault(d int) float64 {
	if d <= 0 {
		return 3
	}
	return float64(d)
}

func severityFromWindow(n int, spanDays float64, restDaysInWindow int, daysPerWeek float64, cfg config.Adaptation) OvertrainingResult {
	expectedTime := float64(n) * (7.0 / daysPerWeek)
	extraRaw := expectedTime - (spanDays + float64(restDaysInWindow))
	extra := int(math.Round(math.Max(0, extraRaw)))

	var level int
	switch {
	case extra == 0:
		level = 0
	case extra == 1:
		level = 1
	case extra == 2, extra == 3:
		level = 2
	default:
		level = 3
	}

	result := OvertrainingResult{Level: level}
	if level == 3 {
		result.ExtraRestDays = extra
	}
	return result
}

// ProgressionRate is the calendar-week training-max increment, scaled
// down as TM approaches the long-range target.
func ProgressionRate(tm, target float64, cfg config.Adaptation) float64 {
	f := math.Max(0, 1-tm/target)
	return cfg.ProgressionBaseRate + cfg.ProgressionMaxExtra*math.Pow(f, cfg.ProgressionExponent)
}

// VolumePolicy scales a base weekly hard-set count by deload/autoreg
// state, floored and capped.
func VolumePolicy(baseSets int, deload bool, z float64, weeklyCompliance float64, cfg config.Adaptation) int {
	scaled := float64(baseSets)
	switch {
	case deload:
		scaled *= cfg.VolumeDeloadFraction
	case z < cfg.AutoregLowZ:
		scaled *= cfg.VolumeLowZFraction
	case z > cfg.AutoregHighZ && weeklyCompliance > cfg.VolumeHighZComplianceMin:
		scaled *= cfg.VolumeHighZFraction
	}
	result := int(math.Round(scaled))
	if result < cfg.VolumeFloor {
		result = cfg.VolumeFloor
	}
	if result > cfg.VolumeCap {
		result = cfg.VolumeCap
	}
	return result
}
