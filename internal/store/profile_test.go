package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulgrocholske/bwplan/internal/model"
	"github.com/paulgrocholske/bwplan/internal/store"
)

func TestLoadProfile_MissingFileReturnsNotOK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	_, ok, err := store.LoadProfile(path)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveAndLoadProfile_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	profile := model.UserProfile{
		BodyweightKg:       82.5,
		DefaultDaysPerWeek: 3,
		BaselineMax:        map[string]float64{"pull_up": 15},
	}

	require.NoError(t, store.SaveProfile(path, profile))

	loaded, ok, err := store.LoadProfile(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, profile.BodyweightKg, loaded.BodyweightKg)
	assert.Equal(t, profile.BaselineMax, loaded.BaselineMax)
}
