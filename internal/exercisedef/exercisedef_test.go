package exercisedef_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulgrocholske/bwplan/internal/exercisedef"
	"github.com/paulgrocholske/bwplan/internal/model"
)

func TestLookup_KnownExercises(t *testing.T) {
	for _, id := range []string{exercisedef.PullUpID, exercisedef.DipID, exercisedef.BSSID} {
		ex, err := exercisedef.Lookup(id)
		require.NoError(t, err)
		assert.Equal(t, id, ex.ID)
	}
}

func TestLookup_UnknownExerciseIsInconsistent(t *testing.T) {
	_, err := exercisedef.Lookup("nonexistent_exercise")
	assert.Error(t, err)
}

func TestBSS_IsExternalOnlyLoad(t *testing.T) {
	bss := exercisedef.BSS()
	assert.Equal(t, model.LoadExternalOnly, bss.LoadType)
	assert.False(t, bss.OneRMIncludesBW)
}

func TestPullUpAndDip_AreBodyweightPlusExternal(t *testing.T) {
	assert.Equal(t, model.LoadBWPlusExternal, exercisedef.PullUp().LoadType)
	assert.Equal(t, model.LoadBWPlusExternal, exercisedef.Dip().LoadType)
}

func TestAll_ReturnsAllThreeExercises(t *testing.T) {
	assert.Len(t, exercisedef.All(), 3)
}
