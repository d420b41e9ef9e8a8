// Package store persists session history and the user profile as plain
// JSON files, in the teacher's direct os.ReadFile/os.WriteFile style
// (spec.md §6).
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/paulgrocholske/bwplan/internal/bwerr"
	"github.com/paulgrocholske/bwplan/internal/model"
)

// LoadHistory reads every logged session from path. A missing file is
// not an error: it means no sessions have been logged yet.
func LoadHistory(path string) ([]model.SessionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var records []model.SessionResult
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, bwerr.Inconsistent(fmt.Sprintf("history file %s is not valid JSON", path), err)
	}
	return records, nil
}

// ForExercise filters a full history slice down to one exercise's
// records, history-ordered.
func ForExercise(history []model.SessionResult, exerciseID string) []model.SessionResult {
	var out []model.SessionResult
	for _, h := range history {
		if h.ExerciseID == exerciseID {
			out = append(out, h)
		}
	}
	return out
}

// AppendSession assigns the next HistoryID and appends result to the
// file at path, rewriting the whole file (spec §6: append-per-session).
//
// Per spec §8 scenario 5 ("overperformance promotion"), if result is a
// completed non-REST, non-TEST session whose best set exceeds this
// exercise's latest logged TEST max, a synthesized TEST record dated
// the same day (max_reps = that best set) is appended alongside it so
// latest_test_max is updated without waiting for a dedicated TEST
// session. The synthesized record, if any, is returned as the second
// value.
func AppendSession(path string, result model.SessionResult) (model.SessionResult, *model.SessionResult, error) {
	records, err := LoadHistory(path)
	if err != nil {
		return model.SessionResult{}, nil, err
	}

	nextID := func() int {
		id := 1
		for _, r := range records {
			if r.HistoryID >= id {
				id = r.HistoryID + 1
			}
		}
		return id
	}

	result.HistoryID = nextID()
	records = append(records, result)

	var promoted *model.SessionResult
	if bestReps, latestTestMax, ok := overperformance(records, result); ok {
		test := model.SessionResult{
			HistoryID:   nextID(),
			Date:        result.Date,
			ExerciseID:  result.ExerciseID,
			SessionType: model.Test,
			Variant:     result.Variant,
			Sets:        []model.CompletedSet{{Reps: bestReps}},
			Notes:       fmt.Sprintf("auto-promoted: best set %d reps exceeded latest test max %.0f", bestReps, latestTestMax),
		}
		records = append(records, test)
		promoted = &test
	}

	if err := writeHistory(path, records); err != nil {
		return model.SessionResult{}, nil, err
	}
	return result, promoted, nil
}

// overperformance reports whether the just-appended result warrants a
// synthesized TEST promotion: it must be a completed, non-REST,
// non-TEST session whose best logged set exceeds the most recent TEST
// max already on file for the same exercise (spec §8 scenario 5).
func overperformance(records []model.SessionResult, result model.SessionResult) (bestReps int, latestTestMax float64, ok bool) {
	if result.SessionType == model.Rest || result.SessionType == model.Test {
		return 0, 0, false
	}

	haveTest := false
	var latestTest model.SessionResult
	for _, r := range records {
		if r.ExerciseID != result.ExerciseID || r.SessionType != model.Test || r.HistoryID == result.HistoryID {
			continue
		}
		if !haveTest || !r.Date.Before(latestTest.Date) {
			latestTest = r
			haveTest = true
		}
	}
	if !haveTest {
		return 0, 0, false
	}
	for _, s := range latestTest.Sets {
		if float64(s.Reps) > latestTestMax {
			latestTestMax = float64(s.Reps)
		}
	}

	for _, s := range result.Sets {
		if s.Reps > bestReps {
			bestReps = s.Reps
		}
	}
	if float64(bestReps) <= latestTestMax {
		return 0, 0, false
	}
	return bestReps, latestTestMax, true
}

// DeleteByID removes the record with the given HistoryID and rewrites
// the file. Returns bwerr.MissingState if no such record exists.
func DeleteByID(path string, id int) error {
	records, err := LoadHistory(path)
	if err != nil {
		return err
	}

	idx := -1
	for i, r := range records {
		if r.HistoryID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return bwerr.MissingState(fmt.Sprintf("no history record with id %d", id), nil)
	}

	records = append(records[:idx], records[idx+1:]...)
	return writeHistory(path, records)
}

func writeHistory(path string, records []model.SessionResult) error {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history file: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
