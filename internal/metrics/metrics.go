// Package metrics implements the pure normalization and aggregation
// functions over sets and sessions described in spec.md §4.1. Every
// function here is pure over its inputs: no I/O, no global state, no
// failure signaling — only clamping and saturation.
package metrics

import (
	"math"
	"time"

	"github.com/paulgrocholske/bwplan/internal/config"
	"github.com/paulgrocholske/bwplan/internal/model"
)

// addedOnlyEpsilon keeps BodyweightNormalizedReps finite for
// external-only loads when both added and added_ref are zero.
const addedOnlyEpsilon = 1e-6

// clamp restricts x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// RestFactor converts a rest duration in seconds into a performance
// credit multiplier: shorter rest makes the same reps count for more.
func RestFactor(restS float64, cfg config.Metrics) float64 {
	floor := float64(cfg.RestFactorFloorS)
	r := math.Max(restS, floor)
	raw := math.Pow(r/cfg.RestFactorRefS, cfg.RestFactorExponent)
	return clamp(raw, cfg.RestFactorMin, cfg.RestFactorMax)
}

// EffectiveReps credits harder work (short rest) with more than the
// literal rep count.
func EffectiveReps(reps float64, restS float64, cfg config.Metrics) float64 {
	return reps / RestFactor(restS, cfg)
}

// BodyweightNormalizedReps scales a rep count by the relative load
// carried versus a reference bodyweight/added-weight combination.
func BodyweightNormalizedReps(reps, bwKg, addedKg, bwRefKg, bwFraction float64) float64 {
	lRel := RelativeLoad(bwKg, addedKg, bwRefKg, bwFraction)
	return reps * lRel
}

// RelativeLoad is L_rel: the fraction of reference load carried in this
// set, relative to a reference bodyweight/added-weight combination.
// Exported so physiology's training-load impulse can reuse the exact
// same normalization instead of re-deriving it.
func RelativeLoad(bwKg, addedKg, bwRefKg, bwFraction float64) float64 {
	if bwFraction > 0 {
		denom := bwRefKg * bwFraction
		if denom == 0 {
			return 0
		}
		return (bwKg*bwFraction + addedKg) / denom
	}
	return (addedKg + addedOnlyEpsilon) / (addedOnlyEpsilon)
}

// VariantNormalized applies a per-variant stress/difficulty factor.
func VariantNormalized(reps, factor float64) float64 {
	return reps * factor
}

// SessionMaxBWOnly returns the maximum reps across bodyweight-only sets
// (no added weight), or 0 if none.
func SessionMaxBWOnly(sets []model.CompletedSet) int {
	best := 0
	for _, s := range sets {
		if s.WeightKg == 0 && s.Reps > best {
			best = s.Reps
		}
	}
	return best
}

// DropOff is the fractional decline from the first set's reps to the
// mean of the last two sets' reps. Undefined (treated as 0) with fewer
// than three sets.
func DropOff(sets []model.CompletedSet) float64 {
	if len(sets) < 3 {
		return 0
	}
	first := float64(sets[0].Reps)
	if first == 0 {
		return 0
	}
	n := len(sets)
	lastTwoMean := (float64(sets[n-1].Reps) + float64(sets[n-2].Reps)) / 2
	return 1 - lastTwoMean/first
}

// TrainingMaxFrom computes the training max anchor from the latest
// observed max: floor(0.9 * x), never below 1.
func TrainingMaxFrom(latestTestMax float64) int {
	tm := int(math.Floor(0.9 * latestTestMax))
	if tm < 1 {
		return 1
	}
	return tm
}

// EstimateRIR infers reps-in-reserve from the EWMA max when not
// explicitly reported, clamped to [0, cfg.EstimateRIRMax].
func EstimateRIR(reps int, mHat float64, cfg config.Metrics) float64 {
	return clamp(mHat-float64(reps), 0, float64(cfg.EstimateRIRMax))
}

// TrendPoint is one TEST observation used by LinearTrend.
type TrendPoint struct {
	Date  time.Time
	Value float64
}

// LinearTrend is the ordinary-least-squares slope, in units-per-week, of
// the TEST points falling within the last windowDays of the latest point.
// Returns 0 with fewer than two points in the window.
func LinearTrend(points []TrendPoint, windowDays int) float64 {
	if len(points) == 0 {
		return 0
	}
	latest := points[0].Date
	for _, p := range points {
		if p.Date.After(latest) {
			latest = p.Date
		}
	}
	cutoff := latest.AddDate(0, 0, -windowDays)

	var xs, ys []float64
	for _, p := range points {
		if p.Date.Before(cutoff) {
			continue
		}
		xs = append(xs, daysSinceEpoch(p.Date))
		ys = append(ys, p.Value)
	}
	if len(xs) < 2 {
		return 0
	}

	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	slopePerDay := (n*sumXY - sumX*sumY) / denom
	return slopePerDay * 7
}

func daysSinceEpoch(t time.Time) float64 {
	return float64(t.Unix()) / 86400
}

// SessionCompliance is actual reps performed over target reps
// prescribed for one session.
func SessionCompliance(actual []model.CompletedSet, target []model.PlannedSet) float64 {
	var actualSum, targetSum int
	for _, s := range actual {
		actualSum += s.Reps
	}
	for _, s := range target {
		targetSum += s.Reps
	}
	if targetSum == 0 {
		return 1
	}
	return float64(actualSum) / float64(targetSum)
}

// DatedCompliance is one session's compliance value, dated for the
// WeeklyCompliance window filter.
type DatedCompliance struct {
	Date       time.Time
	Compliance float64
}

// WeeklyCompliance averages per-session compliance over sessions whose
// date falls within the last weeks*7 days of asOf. Returns 1 (fully
// compliant) when no sessions fall in the window, since there is
// nothing to be non-compliant about.
func WeeklyCompliance(asOf time.Time, weeks int, sessions []DatedCompliance) float64 {
	cutoff := asOf.AddDate(0, 0, -weeks*7)
	var sum float64
	var n int
	for _, sc := range sessions {
		if sc.Date.Before(cutoff) {
			continue
		}
		sum += sc.Compliance
		n++
	}
	if n == 0 {
		return 1
	}
	return sum / float64(n)
}
