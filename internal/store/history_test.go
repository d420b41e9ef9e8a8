package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulgrocholske/bwplan/internal/model"
	"github.com/paulgrocholske/bwplan/internal/store"
)

func TestLoadHistory_MissingFileReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	records, err := store.LoadHistory(path)
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestAppendSession_AssignsSequentialIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	first, promoted, err := store.AppendSession(path, model.SessionResult{Date: time.Now().UTC(), ExerciseID: "pull_up"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.HistoryID)
	assert.Nil(t, promoted)

	second, promoted, err := store.AppendSession(path, model.SessionResult{Date: time.Now().UTC(), ExerciseID: "pull_up"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.HistoryID)
	assert.Nil(t, promoted)

	all, err := store.LoadHistory(path)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteByID_RemovesOnlyTheMatchingRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	_, _, err := store.AppendSession(path, model.SessionResult{Date: time.Now().UTC(), ExerciseID: "pull_up"})
	require.NoError(t, err)
	_, _, err = store.AppendSession(path, model.SessionResult{Date: time.Now().UTC(), ExerciseID: "dip"})
	require.NoError(t, err)

	err = store.DeleteByID(path, 1)
	require.NoError(t, err)

	remaining, err := store.LoadHistory(path)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, 2, remaining[0].HistoryID)
}

func TestDeleteByID_MissingRecordReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	_, _, err := store.AppendSession(path, model.SessionResult{Date: time.Now().UTC(), ExerciseID: "pull_up"})
	require.NoError(t, err)

	err = store.DeleteByID(path, 99)
	assert.Error(t, err)
}

func TestAppendSession_OverperformanceSynthesizesTest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	testDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	hDate := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	_, _, err := store.AppendSession(path, model.SessionResult{
		Date: testDate, ExerciseID: "pull_up", SessionType: model.Test,
		Sets: []model.CompletedSet{{Reps: 10}},
	})
	require.NoError(t, err)

	stored, promoted, err := store.AppendSession(path, model.SessionResult{
		Date: hDate, ExerciseID: "pull_up", SessionType: model.Hypertrophy,
		Sets: []model.CompletedSet{{Reps: 8}, {Reps: 12}, {Reps: 7}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.Hypertrophy, stored.SessionType)
	require.NotNil(t, promoted)
	assert.Equal(t, model.Test, promoted.SessionType)
	assert.True(t, promoted.Date.Equal(hDate))
	require.Len(t, promoted.Sets, 1)
	assert.Equal(t, 12, promoted.Sets[0].Reps)

	all, err := store.LoadHistory(path)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestAppendSession_NoPromotionWhenWithinExistingMax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	testDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	hDate := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	_, _, err := store.AppendSession(path, model.SessionResult{
		Date: testDate, ExerciseID: "pull_up", SessionType: model.Test,
		Sets: []model.CompletedSet{{Reps: 10}},
	})
	require.NoError(t, err)

	_, promoted, err := store.AppendSession(path, model.SessionResult{
		Date: hDate, ExerciseID: "pull_up", SessionType: model.Hypertrophy,
		Sets: []model.CompletedSet{{Reps: 8}, {Reps: 9}},
	})
	require.NoError(t, err)
	assert.Nil(t, promoted)

	all, err := store.LoadHistory(path)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestForExercise_FiltersByExerciseID(t *testing.T) {
	all := []model.SessionResult{
		{ExerciseID: "pull_up"},
		{ExerciseID: "dip"},
		{ExerciseID: "pull_up"},
	}
	filtered := store.ForExercise(all, "pull_up")
	assert.Len(t, filtered, 2)
}
