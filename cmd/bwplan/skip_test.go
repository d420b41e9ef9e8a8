package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulgrocholske/bwplan/internal/model"
	"github.com/paulgrocholske/bwplan/internal/store"
)

// resetSkipTestFlags points the package-level CLI flags at a fresh temp
// directory and returns the history/profile paths, restoring the
// previous flag values on cleanup.
func resetSkipTestFlags(t *testing.T) (historyPath, profilePath string) {
	t.Helper()
	dir := t.TempDir()
	historyPath = filepath.Join(dir, "history.json")
	profilePath = filepath.Join(dir, "profile.json")

	prevHistory, prevProfile, prevExercise := historyPathFlag, profilePathFlag, exerciseFlag
	historyPathFlag = historyPath
	profilePathFlag = profilePath
	exerciseFlag = "pull_up"
	t.Cleanup(func() {
		historyPathFlag, profilePathFlag, exerciseFlag = prevHistory, prevProfile, prevExercise
	})
	return historyPath, profilePath
}

// TestSkip_ForwardAppendsConsecutiveRestDaysAndShiftsPlanStart is spec
// §8 scenario 3: history ends with S on 2026-02-04; skip(from=2026-02-06,
// days=3) must append REST records for 02-06, -07, -08 and set
// plan_start to 02-09.
func TestSkip_ForwardAppendsConsecutiveRestDaysAndShiftsPlanStart(t *testing.T) {
	historyPath, profilePath := resetSkipTestFlags(t)

	_, _, err := store.AppendSession(historyPath, model.SessionResult{
		Date: time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC), ExerciseID: "pull_up", SessionType: model.Strength,
		Sets: []model.CompletedSet{{Reps: 8, RestS: 180}},
	})
	require.NoError(t, err)
	require.NoError(t, store.SaveProfile(profilePath, model.UserProfile{PlanStartDate: map[string]time.Time{}}))

	skipFrom = "2026-02-06"
	skipDays = 3
	require.NoError(t, skipCmd.RunE(skipCmd, nil))

	history, err := store.LoadHistory(historyPath)
	require.NoError(t, err)
	var restDates []time.Time
	for _, h := range history {
		if h.SessionType == model.Rest {
			restDates = append(restDates, h.Date)
		}
	}
	require.Len(t, restDates, 3)
	assert.True(t, restDates[0].Equal(time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)))
	assert.True(t, restDates[1].Equal(time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)))
	assert.True(t, restDates[2].Equal(time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)))

	profile, _, err := store.LoadProfile(profilePath)
	require.NoError(t, err)
	assert.True(t, profile.PlanStartDate["pull_up"].Equal(time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)))
}

// TestSkip_BackwardRemovesOnlyInRangeRestRecords is spec §8 scenario 4:
// after scenario 3, skip(from=2026-02-09, days=-2) must remove the REST
// records for 02-07 and -08, leave 02-06 intact, and set plan_start to
// 02-07.
func TestSkip_BackwardRemovesOnlyInRangeRestRecords(t *testing.T) {
	historyPath, profilePath := resetSkipTestFlags(t)

	_, _, err := store.AppendSession(historyPath, model.SessionResult{
		Date: time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC), ExerciseID: "pull_up", SessionType: model.Strength,
		Sets: []model.CompletedSet{{Reps: 8, RestS: 180}},
	})
	require.NoError(t, err)
	for _, d := range []time.Time{
		time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC),
	} {
		_, _, err := store.AppendSession(historyPath, model.SessionResult{Date: d, ExerciseID: "pull_up", SessionType: model.Rest})
		require.NoError(t, err)
	}
	require.NoError(t, store.SaveProfile(profilePath, model.UserProfile{
		PlanStartDate: map[string]time.Time{"pull_up": time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)},
	}))

	skipFrom = "2026-02-09"
	skipDays = -2
	require.NoError(t, skipCmd.RunE(skipCmd, nil))

	history, err := store.LoadHistory(historyPath)
	require.NoError(t, err)
	var restDates []time.Time
	for _, h := range history {
		if h.SessionType == model.Rest {
			restDates = append(restDates, h.Date)
		}
	}
	require.Len(t, restDates, 1)
	assert.True(t, restDates[0].Equal(time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)))

	profile, _, err := store.LoadProfile(profilePath)
	require.NoError(t, err)
	assert.True(t, profile.PlanStartDate["pull_up"].Equal(time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)))
}

func TestSkip_ZeroDaysIsInvalid(t *testing.T) {
	resetSkipTestFlags(t)
	skipFrom = "2026-02-06"
	skipDays = 0
	err := skipCmd.RunE(skipCmd, nil)
	assert.Error(t, err)
}
