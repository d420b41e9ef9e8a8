// Package physiology implements the training-load impulse, the
// two-timescale fitness-fatigue state machine, and the EWMA max
// estimator described in spec.md §4.2.
package physiology

import (
	"math"
	"sort"
	"time"

	"github.com/paulgrocholske/bwplan/internal/config"
	"github.com/paulgrocholske/bwplan/internal/metrics"
	"github.com/paulgrocholske/bwplan/internal/model"
)

// NewState creates the initial state for a fresh replay, anchored on a
// baseline max (from the profile) with the configured initial
// uncertainty.
func NewState(baselineMax float64, cfg config.Physiology) model.FitnessFatigueState {
	return model.FitnessFatigueState{
		MHat:    baselineMax,
		SigmaM2: cfg.InitialSigmaM * cfg.InitialSigmaM,
	}
}

// Impulse computes w(session): the total training-load impulse across
// a session's completed sets (spec §4.2). Rest stress is intentionally
// excluded — it is already credited via effective_reps in Metrics, and
// re-adding it here would double-count.
func Impulse(sets []model.CompletedSet, variant string, variantStress map[string]float64, bwKg, bwRefKg, bwFraction float64, mHat float64, pcfg config.Physiology, mcfg config.Metrics) float64 {
	sVariant := variantStress[variant]
	if sVariant == 0 {
		sVariant = 1
	}

	var w float64
	for _, s := range sets {
		var rir float64
		if s.RIR != nil {
			rir = float64(*s.RIR)
		} else {
			rir = metrics.EstimateRIR(s.Reps, mHat, mcfg)
		}
		hr := float64(s.Reps) * (1 + pcfg.RIRPenaltyCoeff*math.Max(0, pcfg.RIRBaseline-rir))
		lRel := metrics.RelativeLoad(bwKg, s.WeightKg, bwRefKg, bwFraction)
		sLoad := math.Pow(lRel, pcfg.LoadExponent)
		w += hr * sLoad * sVariant
	}
	return w
}

// decayAndAdd applies one fitness-fatigue update step across Δ days
// with impulse w (w == 0 models a pure decay step, e.g. a rest day or a
// logging gap — the exponential decay over Δ days is exact whether or
// not it is subdivided into per-day steps, since no impulse occurs on
// the intervening days).
func decayAndAdd(state model.FitnessFatigueState, deltaDays float64, w float64, cfg config.Physiology) model.FitnessFatigueState {
	state.Fitness = state.Fitness*math.Exp(-deltaDays/cfg.FitnessTauDays) + cfg.FitnessWeight*w
	state.Fatigue = state.Fatigue*math.Exp(-deltaDays/cfg.FatigueTauDays) + cfg.FatigueWeight*w
	return state
}

// updateReadinessStats folds today's readiness R = G - H into the
// running EWMA mean/variance. Not called for rest days.
func updateReadinessStats(state model.FitnessFatigueState, cfg config.Physiology) model.FitnessFatigueState {
	r := state.Fitness - state.Fatigue
	alpha := cfg.ReadinessEWMAAlpha
	if state.UpdateCount == 0 {
		state.ReadinessMean = r
		state.ReadinessVar = 0
	} else {
		prevMean := state.ReadinessMean
		state.ReadinessMean = (1-alpha)*prevMean + alpha*r
		state.ReadinessVar = (1-alpha)*state.ReadinessVar + alpha*(r-prevMean)*(r-prevMean)
	}
	state.UpdateCount++
	return state
}

// ReadinessZ returns the current readiness z-score against the running
// mean/variance. 0 when variance has not yet accumulated (fewer than
// two training updates).
func ReadinessZ(state model.FitnessFatigueState) float64 {
	if state.ReadinessVar <= 0 {
		return 0
	}
	r := state.Fitness - state.Fatigue
	return (r - state.ReadinessMean) / math.Sqrt(state.ReadinessVar)
}

// UpdateMax applies the EWMA max estimator after an observed TEST
// result M_obs.
func UpdateMax(state model.FitnessFatigueState, mObs float64, cfg config.Physiology) model.FitnessFatigueState {
	prevMHat := state.MHat
	state.MHat = (1-cfg.MaxEWMAAlpha)*state.MHat + cfg.MaxEWMAAlpha*mObs
	diff := mObs - prevMHat
	state.SigmaM2 = (1-cfg.MaxSigmaAlpha)*state.SigmaM2 + cfg.MaxSigmaAlpha*diff*diff
	return state
}

// PredictedMax returns the readiness-adjusted max prediction M_pred.
func PredictedMax(state model.FitnessFatigueState, cfg config.Physiology) float64 {
	r := state.Fitness - state.Fatigue
	return state.MHat * (1 + cfg.ReadinessPredCoeff*(r-state.ReadinessMean))
}

// ObservedMax returns the all-out result of a TEST session: the best
// (maximum) rep count among its completed sets. TEST is a reps-based
// assessment regardless of the exercise's long-range target metric.
func ObservedMax(sets []model.CompletedSet) float64 {
	best := 0
	for _, s := range sets {
		if s.Reps > best {
			best = s.Reps
		}
	}
	return float64(best)
}

// historyEvent is an internal replay record: one history record
// (training session or REST day, told apart by its SessionType) and its
// original position, used to break same-date ties.
type historyEvent struct {
	date    time.Time
	session *model.SessionResult
	order   int
}

// BuildState replays history in ascending date order (ties broken by
// original position) and returns the terminal FitnessFatigueState. Pure
// and deterministic over the input slice (spec §8: build(H) == build(H)).
func BuildState(history []model.SessionResult, exercise model.Exercise, baselineMax float64, bwRefKg float64, cfg config.Config) model.FitnessFatigueState {
	state := NewState(baselineMax, cfg.Physiology)
	if len(history) == 0 {
		return state
	}

	events := make([]historyEvent, len(history))
	for i := range history {
		events[i] = historyEvent{date: history[i].Date, session: &history[i], order: i}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].date.Equal(events[j].date) {
			return events[i].date.Before(events[j].date)
		}
		return events[i].order < events[j].order
	})

	var lastDate time.Time
	hasLast := false

	for _, ev := range events {
		var deltaDays float64
		if hasLast {
			deltaDays = ev.date.Sub(lastDate).Hours() / 24
		}

		var w float64
		if ev.session.SessionType != model.Rest {
			w = Impulse(ev.session.Sets, ev.session.Variant, exercise.VariantStressFactor, ev.session.BodyweightKg, bwRefKg, exercise.BWFraction, state.MHat, cfg.Physiology, cfg.Metrics)
		}

		state = decayAndAdd(state, deltaDays, w, cfg.Physiology)
		lastDate = ev.date
		hasLast = true

		if ev.session.SessionType == model.Test {
			mObs := ObservedMax(ev.session.Sets)
			state = UpdateMax(state, mObs, cfg.Physiology)
		}

		if ev.session.SessionType != model.Rest {
			state = updateReadinessStats(state, cfg.Physiology)
		}
	}

	state.LastUpdate = lastDate
	state.HasLastUpdate = hasLast
	return state
}
