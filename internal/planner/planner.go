// Package planner implements the schedule calendar, type rotation,
// variant rotation, prescription generator, adaptive rest rule, and TEST
// insertion of spec.md §4.5 — the core plan() algorithm.
package planner

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/paulgrocholske/bwplan/internal/adaptation"
	"github.com/paulgrocholske/bwplan/internal/bwerr"
	"github.com/paulgrocholske/bwplan/internal/caltime"
	"github.com/paulgrocholske/bwplan/internal/config"
	"github.com/paulgrocholske/bwplan/internal/metrics"
	"github.com/paulgrocholske/bwplan/internal/model"
)

// scheduleTemplates maps days-per-week to the cyclic session-type
// rotation (spec §4.5 step 3).
var scheduleTemplates = map[int][]model.SessionType{
	1: {model.Strength},
	2: {model.Strength, model.Hypertrophy},
	3: {model.Strength, model.Hypertrophy, model.Endurance},
	4: {model.Strength, model.Hypertrophy, model.Technique, model.Endurance},
	5: {model.Strength, model.Hypertrophy, model.Technique, model.Endurance, model.Strength},
}

// dayOffsets maps days-per-week to the Monday-anchored day offsets used
// within each scheduled week.
var dayOffsets = map[int][]int{
	1: {0},
	2: {0, 3},
	3: {0, 2, 4},
	4: {0, 1, 3, 5},
	5: {0, 1, 2, 4, 5},
}

// Request bundles everything Generate needs for one exercise.
type Request struct {
	Profile      model.UserProfile
	Exercise     model.Exercise
	History      []model.SessionResult // all records for this exercise, REST included
	PlanStart    time.Time
	HorizonWeeks int
	AsOf         time.Time
	Config       config.Config
}

// Result is the generated plan plus the status/overtraining context it
// was derived from, for display and for the timeline merge.
type Result struct {
	Plans        []model.SessionPlan
	Status       adaptation.TrainingStatus
	Overtraining adaptation.OvertrainingResult
	FirstMonday  time.Time
	PlanStart    time.Time // after any overtraining shift
}

// Generate runs the full §4.5 algorithm and returns the future
// SessionPlans for the requested horizon. Deterministic over
// (profile, history, exercise, plan_start, horizon, asOf) — two calls
// with no intervening history change produce byte-equal plans (spec §8).
func Generate(req Request) (Result, error) {
	daysPerWeek := req.Profile.DaysPerWeek(req.Exercise.ID)
	template, ok := scheduleTemplates[daysPerWeek]
	if !ok {
		return Result{}, bwerr.InvalidInput(fmt.Sprintf("days-per-week %d out of range 1..5", daysPerWeek), nil)
	}
	offsets := dayOffsets[daysPerWeek]

	baseline := req.Profile.BaselineMax[req.Exercise.ID]
	bwRef := req.Profile.BodyweightKg

	status, _, overtraining := adaptation.Evaluate(req.History, req.Exercise, baseline, bwRef, daysPerWeek, req.AsOf, req.Config)

	// Step 1: tm_float ramps from the proven ceiling, not the
	// conservative display TM (spec §4.5 step 1, §9 open question).
	tmFloat := status.LatestTestMax

	// Step 2: overtraining shift.
	planStart := req.PlanStart
	if overtraining.ExtraRestDays > 0 {
		planStart = planStart.AddDate(0, 0, overtraining.ExtraRestDays)
	}

	nonRestDates := nonRestHistoryDates(req.History)
	firstMonday := caltime.FirstMonday(nonRestDates, planStart)

	// Step 4: resume rotation index.
	resumeCount := countNonTestNonRest(req.History)
	typeIdx := resumeCount % len(template)

	// Step 5: variant rotation counters, seeded from history.
	variantCounters := seedVariantCounters(req.History)

	lastLoggedByType := mostRecentByType(req.History)
	lastTestWeight := mostRecentTestAddedWeight(req.History)

	// Build the flat chronological date grid for the horizon.
	dates := buildDateGrid(planStart, req.HorizonWeeks, offsets)

	// Step 7: determine which grid dates become TEST insertions.
	lastTestDate, hasTest := mostRecentTestDate(req.History)
	if !hasTest {
		lastTestDate = planStart
	}
	testDates := testInsertionDates(dates, lastTestDate, req.Exercise.TestFrequencyWeeks)
	testDateSet := make(map[string]bool, len(testDates))
	for _, d := range testDates {
		testDateSet[dateKey(d)] = true
	}

	var lastWeekKey int
	haveWeekKey := false
	var plans []model.SessionPlan

	target := req.Exercise.TargetValue
	if req.Profile.TargetMaxReps > 0 {
		target = float64(req.Profile.TargetMaxReps)
	}

	for _, date := range dates {
		weekKey := caltime.WeekNumber(date, firstMonday)
		if !haveWeekKey {
			haveWeekKey = true
			lastWeekKey = weekKey
		} else if weekKey != lastWeekKey {
			tmFloat += adaptation.ProgressionRate(math.Round(tmFloat), target, req.Config.Adaptation)
			lastWeekKey = weekKey
		}
		tm := int(math.Round(tmFloat))

		isTest := testDateSet[dateKey(date)]

		var sessionType model.SessionType
		var variant string
		if isTest {
			sessionType = model.Test
			variant = req.Exercise.PrimaryVariant
		} else {
			sessionType = template[typeIdx]
			typeIdx = (typeIdx + 1) % len(template)
			variant = chooseVariant(req.Exercise, sessionType, variantCounters)
		}

		plan := model.SessionPlan{
			Date:        date,
			ExerciseID:  req.Exercise.ID,
			SessionType: sessionType,
			Variant:     variant,
			ExpectedTM:  tm,
			WeekNumber:  weekKey,
		}

		if isTest {
			plan.PlannedSets = testPrescription(tm, req.Exercise)
		} else {
			plan.PlannedSets = prescribeSession(sessionType, tm, req.Exercise, status, overtraining, lastLoggedByType[sessionType], lastTestWeight, req.Config)
		}

		plans = append(plans, plan)
	}

	return Result{
		Plans:        plans,
		Status:       status,
		Overtraining: overtraining,
		FirstMonday:  firstMonday,
		PlanStart:    planStart,
	}, nil
}

func dateKey(d time.Time) string {
	return d.Format("2006-01-02")
}

func nonRestHistoryDates(history []model.SessionResult) []time.Time {
	var dates []time.Time
	for _, h := range history {
		if h.SessionType != model.Rest {
			dates = append(dates, h.Date)
		}
	}
	return dates
}

func countNonTestNonRest(history []model.SessionResult) int {
	n := 0
	for _, h := range history {
		if h.SessionType != model.Rest && h.SessionType != model.Test {
			n++
		}
	}
	return n
}

// seedVariantCounters counts, per session type, how many past sessions
// of that type exist so rotation resumes where history left off.
func seedVariantCounters(history []model.SessionResult) map[model.SessionType]int {
	counters := make(map[model.SessionType]int)
	for _, h := range history {
		if h.SessionType == model.Rest {
			continue
		}
		counters[h.SessionType]++
	}
	return counters
}

func chooseVariant(ex model.Exercise, t model.SessionType, counters map[model.SessionType]int) string {
	if !ex.HasVariantRotation {
		return ex.PrimaryVariant
	}
	cycle := ex.GripCycles[t]
	if len(cycle) == 0 {
		return ex.PrimaryVariant
	}
	idx := counters[t] % len(cycle)
	counters[t]++
	return cycle[idx]
}

func mostRecentByType(history []model.SessionResult) map[model.SessionType]model.SessionResult {
	latest := make(map[model.SessionType]model.SessionResult)
	for _, h := range history {
		if h.SessionType == model.Rest {
			continue
		}
		cur, ok := latest[h.SessionType]
		if !ok || h.Date.After(cur.Date) {
			latest[h.SessionType] = h
		}
	}
	return latest
}

func mostRecentTestDate(history []model.SessionResult) (time.Time, bool) {
	var best time.Time
	found := false
	for _, h := range history {
		if h.SessionType != model.Test {
			continue
		}
		if !found || h.Date.After(best) {
			best = h.Date
			found = true
		}
	}
	return best, found
}

// mostRecentTestAddedWeight returns the heaviest (i.e. the TEST's own)
// logged added weight from the most recent TEST, used to carry forward
// BSS's external-only added weight (spec §4.5 step 6.j).
func mostRecentTestAddedWeight(history []model.SessionResult) float64 {
	date, found := mostRecentTestDate(history)
	if !found {
		return 0
	}
	for _, h := range history {
		if h.SessionType == model.Test && h.Date.Equal(date) {
			best := 0.0
			for _, s := range h.Sets {
				if s.WeightKg > best {
					best = s.WeightKg
				}
			}
			return best
		}
	}
	return 0
}

func buildDateGrid(planStart time.Time, horizonWeeks int, offsets []int) []time.Time {
	var dates []time.Time
	for w := 0; w < horizonWeeks; w++ {
		for _, off := range offsets {
			dates = append(dates, planStart.AddDate(0, 0, 7*w+off))
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// testInsertionDates computes, for each test_frequency_weeks interval
// from lastTestDate, the next scheduled grid date at or after the
// trigger, within the grid's own range.
func testInsertionDates(grid []time.Time, lastTestDate time.Time, frequencyWeeks int) []time.Time {
	if frequencyWeeks <= 0 || len(grid) == 0 {
		return nil
	}
	horizonEnd := grid[len(grid)-1]

	var result []time.Time
	seen := make(map[string]bool)
	for k := 1; ; k++ {
		trigger := lastTestDate.AddDate(0, 0, frequencyWeeks*7*k)
		if trigger.After(horizonEnd) {
			break
		}
		d, ok := nextAtOrAfter(grid, trigger)
		if !ok {
			break
		}
		key := dateKey(d)
		if !seen[key] {
			seen[key] = true
			result = append(result, d)
		}
	}
	return result
}

func nextAtOrAfter(grid []time.Time, t time.Time) (time.Time, bool) {
	for _, d := range grid {
		if !d.Before(t) {
			return d, true
		}
	}
	return time.Time{}, false
}

// testPrescription is the minimal prescription for an inserted TEST
// slot: a single all-out set, performer-paced.
func testPrescription(tm int, ex model.Exercise) []model.PlannedSet {
	return []model.PlannedSet{{Reps: tm, WeightKg: 0, RestS: 300}}
}

// prescribeSession runs §4.5 step 6 (b through k) for one non-TEST
// scheduled session.
func prescribeSession(t model.SessionType, tm int, ex model.Exercise, status adaptation.TrainingStatus, ot adaptation.OvertrainingResult, lastLogged model.SessionResult, lastTestAddedWeight float64, cfg config.Config) []model.PlannedSet {
	p, ok := ex.SessionParams[t]
	if !ok {
		return nil
	}

	low := maxInt(p.RepsMin, int(math.Floor(float64(tm)*p.RepsFractionLow)))
	high := minInt(p.RepsMax, int(math.Floor(float64(tm)*p.RepsFractionHigh)))
	if high < low {
		high = low
	}
	baseReps := (low + high) / 2
	baseSets := (p.SetsMin + p.SetsMax) / 2

	sets, reps := adaptation.Autoregulate(baseSets, baseReps, status.CompletedNonTestSessions, status.ReadinessZScore, cfg.Adaptation)

	if ot.Level >= 2 {
		sets--
		if sets < 1 {
			sets = 1
		}
	}
	if ot.Level >= 3 {
		reps--
		if reps < 1 {
			reps = 1
		}
	}

	restS := adaptiveRest(p, lastLogged, status.ReadinessZScore, ot, cfg)

	weight := addedWeight(t, tm, ex, lastTestAddedWeight, cfg.Planner)

	if t == model.Endurance {
		return enduranceLadder(tm, baseReps, sets, weight, restS, ex, cfg.Planner)
	}

	planned := make([]model.PlannedSet, sets)
	for i := range planned {
		planned[i] = model.PlannedSet{Reps: reps, WeightKg: weight, RestS: restS}
	}
	return planned
}

func adaptiveRest(p model.SessionTypeParams, lastLogged model.SessionResult, readinessZ float64, ot adaptation.OvertrainingResult, cfg config.Config) int {
	base := float64((p.RestMin + p.RestMax) / 2)

	if len(lastLogged.Sets) > 0 {
		lowRIR := false
		allHighRIR := true
		haveRIR := false
		for _, s := range lastLogged.Sets {
			if s.RIR == nil {
				allHighRIR = false
				continue
			}
			haveRIR = true
			rir := float64(*s.RIR)
			if rir <= 1 {
				lowRIR = true
			}
			if rir < cfg.Planner.AdaptiveRestHighRIRThreshold {
				allHighRIR = false
			}
		}
		if !haveRIR {
			allHighRIR = false
		}
		if lowRIR {
			base += float64(cfg.Planner.AdaptiveRestLowRIRAddS)
		}
		if metrics.DropOff(lastLogged.Sets) > cfg.Planner.AdaptiveRestDropOffThreshold {
			base += float64(cfg.Planner.AdaptiveRestDropOffAddS)
		}
		if allHighRIR {
			base -= float64(cfg.Planner.AdaptiveRestHighRIRSubS)
		}
	}
	if readinessZ < cfg.Adaptation.AutoregLowZ {
		base += float64(cfg.Planner.AdaptiveRestLowZAddS)
	}
	base = clampF(base, float64(p.RestMin), float64(p.RestMax))

	if ot.Level >= 1 {
		base += float64(cfg.Adaptation.OvertrainingRestAddS)
		base = clampF(base, float64(p.RestMin), float64(p.RestMax))
	}
	return int(math.Round(base))
}

func addedWeight(t model.SessionType, tm int, ex model.Exercise, lastTestAddedWeight float64, pcfg config.Planner) float64 {
	if ex.LoadType == model.LoadExternalOnly {
		return lastTestAddedWeight
	}
	if t != model.Strength {
		return 0
	}
	if float64(tm) <= ex.WeightTMThreshold {
		return 0
	}
	raw := ex.WeightIncrementFraction * (float64(tm) - ex.WeightTMThreshold)
	rounded := math.Round(raw/pcfg.AddedWeightRoundKg) * pcfg.AddedWeightRoundKg
	if rounded > ex.MaxAddedWeightKg {
		rounded = ex.MaxAddedWeightKg
	}
	if rounded < 0 {
		rounded = 0
	}
	return rounded
}

func enduranceLadder(tm, baseReps, sets int, weight float64, restS int, ex model.Exercise, pcfg config.Planner) []model.PlannedSet {
	k := pcfg.EnduranceKBase + pcfg.EnduranceKMax*clampF((float64(tm)-pcfg.EnduranceTMRefLow)/pcfg.EnduranceTMRefSpan, 0, 1)
	totalTarget := int(k * float64(tm))

	var planned []model.PlannedSet
	reps := baseReps
	accumulated := 0
	for len(planned) < sets && accumulated < totalTarget {
		if reps < pcfg.EnduranceMinSetReps {
			reps = pcfg.EnduranceMinSetReps
		}
		planned = append(planned, model.PlannedSet{Reps: reps, WeightKg: weight, RestS: restS})
		accumulated += reps
		reps--
	}
	return planned
}

func clampF(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
