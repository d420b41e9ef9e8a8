// Package timeline merges logged history with a freshly generated plan
// into the single past/future view of spec.md §4.6. The past is read
// entirely from history; the planner is never consulted for a date that
// already has a logged result (invariant: past prescriptions are
// immutable).
package timeline

import (
	"sort"
	"time"

	"github.com/paulgrocholske/bwplan/internal/caltime"
	"github.com/paulgrocholske/bwplan/internal/config"
	"github.com/paulgrocholske/bwplan/internal/maxest"
	"github.com/paulgrocholske/bwplan/internal/model"
)

// Build produces the merged, date-ordered timeline for one exercise.
// history is every logged SessionResult for the exercise (REST included);
// plans is the planner's freshly computed future schedule. asOf is the
// date used to split "missed" from "planned" and to pick the "next"
// entry. firstMonday is the Monday on or before the earliest non-REST
// history date (or the earliest plan date, when there is no history),
// the cumulative week-numbering anchor of spec §4.6 point 1; every
// entry's week_number is derived from it, not just plan-matched ones
// (spec §4.6 point 4).
func Build(history []model.SessionResult, plans []model.SessionPlan, asOf, firstMonday time.Time, cfg config.MaxEstimator) []model.TimelineEntry {
	byDate := make(map[string]model.SessionResult, len(history))
	for _, h := range history {
		byDate[dateKey(h.Date)] = h
	}

	planByDate := make(map[string]model.SessionPlan, len(plans))
	for _, p := range plans {
		planByDate[dateKey(p.Date)] = p
	}

	allDates := make(map[string]time.Time, len(history)+len(plans))
	for _, h := range history {
		allDates[dateKey(h.Date)] = h.Date
	}
	for _, p := range plans {
		allDates[dateKey(p.Date)] = p.Date
	}

	keys := make([]string, 0, len(allDates))
	for k := range allDates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return allDates[keys[i]].Before(allDates[keys[j]]) })

	var entries []model.TimelineEntry
	nextAssigned := false

	for _, k := range keys {
		date := allDates[k]
		actual, hasActual := byDate[k]
		plan, hasPlan := planByDate[k]

		entry := model.TimelineEntry{Date: date, WeekNumber: caltime.WeekNumber(date, firstMonday)}

		switch {
		case hasActual:
			h := actual
			entry.SessionType = h.SessionType
			entry.Variant = h.Variant
			entry.Actual = &h
			entry.Prescribed = h.PlannedSets
			if h.HistoryID != 0 {
				id := h.HistoryID
				entry.HistoryID = &id
			}
			if hasPlan {
				entry.ExpectedTM = plan.ExpectedTM
			}
			if h.SessionType == model.Rest {
				entry.Status = model.StatusRested
			} else if hasPlan {
				entry.Status = model.StatusDone
			} else {
				entry.Status = model.StatusExtra
			}
			if h.SessionType != model.Rest && h.SessionType != model.Test {
				if pair, ok := maxest.Estimate(h.Sets, cfg); ok {
					entry.TrackBMax = &pair
				}
			}

		case hasPlan:
			entry.SessionType = plan.SessionType
			entry.Variant = plan.Variant
			entry.Prescribed = plan.PlannedSets
			entry.ExpectedTM = plan.ExpectedTM
			switch {
			case date.Before(asOf):
				entry.Status = model.StatusMissed
			case !nextAssigned:
				entry.Status = model.StatusNext
				nextAssigned = true
			default:
				entry.Status = model.StatusPlanned
			}
		}

		entries = append(entries, entry)
	}

	return entries
}

func dateKey(d time.Time) string {
	return d.Format("2006-01-02")
}
