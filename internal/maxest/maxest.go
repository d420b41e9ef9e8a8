// Package maxest implements the between-test Track B max estimators of
// spec.md §4.4: the fatigue-index estimate and the Nuzzo
// repetitions-to-%1RM estimate.
package maxest

import (
	"math"
	"sort"

	"github.com/paulgrocholske/bwplan/internal/config"
	"github.com/paulgrocholske/bwplan/internal/model"
)

// Estimate computes the (fi_est, nz_est) pair for any completed
// non-TEST session with at least two sets. Returns ok=false otherwise.
func Estimate(sets []model.CompletedSet, cfg config.MaxEstimator) (pair model.MaxEstimatePair, ok bool) {
	if len(sets) < 2 {
		return model.MaxEstimatePair{}, false
	}

	fi := fatigueIndex(sets)
	reps1 := float64(sets[0].Reps)
	restBeforeSet1 := cfg.DefaultRestAssumedS
	if sets[0].RestS > 0 {
		// sets[0].RestS models rest taken before this set was performed
		// when the caller populates it that way; the teacher's own
		// logging flow stores rest *after* a set, so an explicit
		// pre-set rest is optional and falls back to the table default.
		restBeforeSet1 = float64(sets[0].RestS)
	}
	recoveryFactor := interpolate(pcrTable(cfg), restBeforeSet1)
	if recoveryFactor > 0 {
		reps1Corrected := reps1 / recoveryFactor
		reps1 = reps1Corrected
	}

	fiEst := reps1 * (1 + math.Max(0, cfg.ReserveThreshold-fi)*cfg.ReserveCoefficient)

	actualMaxReps := 0.0
	maxSetIdx := 0
	for i, s := range sets {
		if float64(s.Reps) > actualMaxReps {
			actualMaxReps = float64(s.Reps)
			maxSetIdx = i
		}
	}

	rirEstimated := 0.0
	if r := sets[maxSetIdx].RIR; r != nil {
		rirEstimated = float64(*r)
	} else {
		rirEstimated = math.Max(0, math.Round((cfg.ReserveThreshold-fi)*cfg.RIREstimateScale))
	}
	rHat := actualMaxReps + rirEstimated

	pct := inverseInterpolate(nuzzoTable(cfg), rHat)
	var nzEst float64
	if pct > 0 {
		nzEst = math.Round(rHat / pct)
	}

	return model.MaxEstimatePair{FIEstimate: fiEst, NZEstimate: nzEst}, true
}

// fatigueIndex is FI = 1 - mean(reps_2..n) / reps_1.
func fatigueIndex(sets []model.CompletedSet) float64 {
	if len(sets) < 2 {
		return 0
	}
	reps1 := float64(sets[0].Reps)
	if reps1 == 0 {
		return 0
	}
	var sum float64
	for _, s := range sets[1:] {
		sum += float64(s.Reps)
	}
	mean := sum / float64(len(sets)-1)
	return 1 - mean/reps1
}

func pcrTable(cfg config.MaxEstimator) []point {
	return sortedPoints(cfg.PCrRecoveryTable)
}

func nuzzoTable(cfg config.MaxEstimator) []point {
	return sortedPoints(cfg.NuzzoTable)
}

type point struct {
	x, y float64
}

func sortedPoints(m map[float64]float64) []point {
	pts := make([]point, 0, len(m))
	for k, v := range m {
		pts = append(pts, point{x: k, y: v})
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].x < pts[j].x })
	return pts
}

// interpolate performs piecewise-linear interpolation of y given x over
// an ascending table, clamping at the table's edges.
func interpolate(pts []point, x float64) float64 {
	if len(pts) == 0 {
		return 1
	}
	if x <= pts[0].x {
		return pts[0].y
	}
	if x >= pts[len(pts)-1].x {
		return pts[len(pts)-1].y
	}
	for i := 1; i < len(pts); i++ {
		if x <= pts[i].x {
			lo, hi := pts[i-1], pts[i]
			frac := (x - lo.x) / (hi.x - lo.x)
			return lo.y + frac*(hi.y-lo.y)
		}
	}
	return pts[len(pts)-1].y
}

// inverseInterpolate interpolates x->y as above but with x as the
// independent variable being the reps table's key; used to invert the
// Nuzzo table (reps -> pct) the same way the fatigue table is read
// (rest -> recovery factor), since both tables are defined ascending
// on their natural x axis.
func inverseInterpolate(pts []point, reps float64) float64 {
	return interpolate(pts, reps)
}
