package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/paulgrocholske/bwplan/internal/model"
)

// DefaultProfileFile is the bundled-alongside-history profile path, in
// the teacher's memory.go naming convention.
const DefaultProfileFile = ".bwplan_profile.json"

// profileSnapshot wraps the profile with a save timestamp, mirroring the
// teacher's memory.Snapshot.
type profileSnapshot struct {
	SavedAt time.Time         `json:"saved_at"`
	Profile model.UserProfile `json:"profile"`
}

// LoadProfile reads the user profile from path. A missing file returns
// the zero UserProfile and ok=false so callers can distinguish "never
// initialized" from a populated-but-empty profile.
func LoadProfile(path string) (model.UserProfile, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.UserProfile{}, false, nil
		}
		return model.UserProfile{}, false, fmt.Errorf("failed to read profile file: %w", err)
	}

	var snap profileSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.UserProfile{}, false, fmt.Errorf("failed to parse profile file: %w", err)
	}
	return snap.Profile, true, nil
}

// SaveProfile writes the profile to path, overwriting any previous
// snapshot.
func SaveProfile(path string, profile model.UserProfile) error {
	snap := profileSnapshot{SavedAt: time.Now().UTC(), Profile: profile}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile file: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}
	return nil
}
