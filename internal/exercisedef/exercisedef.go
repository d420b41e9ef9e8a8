// Package exercisedef provides the built-in ExerciseDefinitions for the
// three bodyweight exercises in scope: pull-up, parallel-bar dip, and
// Bulgarian split squat (spec.md §1, §3).
package exercisedef

import (
	"fmt"

	"github.com/paulgrocholske/bwplan/internal/bwerr"
	"github.com/paulgrocholske/bwplan/internal/model"
)

const (
	PullUpID = "pull_up"
	DipID    = "dip"
	BSSID    = "bss"
)

func sp(low, high float64, repsMin, repsMax, setsMin, setsMax, restMin, restMax int, rir float64) model.SessionTypeParams {
	return model.SessionTypeParams{
		RepsFractionLow:  low,
		RepsFractionHigh: high,
		RepsMin:          repsMin,
		RepsMax:          repsMax,
		SetsMin:          setsMin,
		SetsMax:          setsMax,
		RestMin:          restMin,
		RestMax:          restMax,
		RIRTarget:        rir,
	}
}

// PullUp returns the pull-up ExerciseDefinition: pronated/neutral/supinated
// grip rotation, bodyweight-plus-external loading.
func PullUp() model.Exercise {
	return model.Exercise{
		ID:          PullUpID,
		Name:        "Pull-Up",
		MuscleGroup: "back",
		BWFraction:  1.0,
		LoadType:    model.LoadBWPlusExternal,
		Variants:    []string{"pronated", "neutral", "supinated"},
		PrimaryVariant: "pronated",
		VariantStressFactor: map[string]float64{
			"pronated":  1.00,
			"neutral":   0.95,
			"supinated": 1.05,
		},
		HasVariantRotation: true,
		GripCycles: map[model.SessionType][]string{
			model.Strength:    {"pronated", "neutral", "supinated"},
			model.Hypertrophy: {"pronated", "supinated"},
			model.Endurance:   {"pronated"},
			model.Technique:   {"pronated"},
			model.Test:        {"pronated"},
		},
		SessionParams: map[model.SessionType]model.SessionTypeParams{
			model.Strength:    sp(0.60, 0.80, 3, 8, 3, 5, 180, 300, 1),
			model.Hypertrophy: sp(0.45, 0.70, 6, 12, 4, 6, 90, 150, 2),
			model.Endurance:   sp(0.25, 0.45, 8, 20, 3, 6, 45, 90, 3),
			model.Technique:   sp(0.40, 0.60, 3, 6, 3, 4, 120, 180, 2),
		},
		TargetMetric:       model.TargetMaxReps,
		TargetValue:        20,
		TestFrequencyWeeks: 3,
		OneRMIncludesBW:    true,

		WeightIncrementFraction: 0.02,
		WeightTMThreshold:       12,
		MaxAddedWeightKg:        40,
	}
}

// Dip returns the parallel-bar dip ExerciseDefinition: parallel/ring
// variant rotation, bodyweight-plus-external loading.
func Dip() model.Exercise {
	return model.Exercise{
		ID:          DipID,
		Name:        "Parallel-Bar Dip",
		MuscleGroup: "chest/triceps",
		BWFraction:  0.92,
		LoadType:    model.LoadBWPlusExternal,
		Variants:    []string{"parallel", "ring"},
		PrimaryVariant: "parallel",
		VariantStressFactor: map[string]float64{
			"parallel": 1.00,
			"ring":     1.08,
		},
		HasVariantRotation: true,
		GripCycles: map[model.SessionType][]string{
			model.Strength:    {"parallel", "ring"},
			model.Hypertrophy: {"parallel"},
			model.Endurance:   {"parallel"},
			model.Technique:   {"parallel"},
			model.Test:        {"parallel"},
		},
		SessionParams: map[model.SessionType]model.SessionTypeParams{
			model.Strength:    sp(0.60, 0.80, 3, 8, 3, 5, 180, 300, 1),
			model.Hypertrophy: sp(0.45, 0.70, 6, 12, 4, 6, 90, 150, 2),
			model.Endurance:   sp(0.25, 0.45, 8, 20, 3, 6, 45, 90, 3),
			model.Technique:   sp(0.40, 0.60, 3, 6, 3, 4, 120, 180, 2),
		},
		TargetMetric:       model.TargetMaxReps,
		TargetValue:        25,
		TestFrequencyWeeks: 3,
		OneRMIncludesBW:    true,

		WeightIncrementFraction: 0.025,
		WeightTMThreshold:       15,
		MaxAddedWeightKg:        50,
	}
}

// BSS returns the Bulgarian split squat ExerciseDefinition: left/right
// leg-lead rotation, external-only loading (1RM excludes bodyweight).
func BSS() model.Exercise {
	return model.Exercise{
		ID:          BSSID,
		Name:        "Bulgarian Split Squat",
		MuscleGroup: "legs",
		BWFraction:  0.71,
		LoadType:    model.LoadExternalOnly,
		Variants:    []string{"right_lead", "left_lead"},
		PrimaryVariant: "right_lead",
		VariantStressFactor: map[string]float64{
			"right_lead": 1.00,
			"left_lead":  1.00,
		},
		HasVariantRotation: true,
		GripCycles: map[model.SessionType][]string{
			model.Strength:    {"right_lead", "left_lead"},
			model.Hypertrophy: {"right_lead", "left_lead"},
			model.Endurance:   {"right_lead"},
			model.Technique:   {"right_lead"},
			model.Test:        {"right_lead"},
		},
		SessionParams: map[model.SessionType]model.SessionTypeParams{
			model.Strength:    sp(0.60, 0.80, 4, 10, 3, 5, 120, 240, 1),
			model.Hypertrophy: sp(0.45, 0.70, 8, 15, 4, 6, 75, 120, 2),
			model.Endurance:   sp(0.25, 0.45, 10, 25, 3, 6, 45, 90, 3),
			model.Technique:   sp(0.40, 0.60, 4, 8, 3, 4, 90, 150, 2),
		},
		TargetMetric:       model.TargetMaxReps,
		TargetValue:        15,
		TestFrequencyWeeks: 3,
		OneRMIncludesBW:    false,

		WeightIncrementFraction: 0,
		WeightTMThreshold:       999, // disabled: BSS carries added weight from the latest TEST instead (spec §4.5 step 6.j)
		MaxAddedWeightKg:        100,
	}
}

// Lookup returns the built-in definition for exerciseID, or an
// Inconsistent error for an unknown id (spec §7: history referencing an
// unknown exercise is refused, not silently accepted).
func Lookup(exerciseID string) (model.Exercise, error) {
	switch exerciseID {
	case PullUpID:
		return PullUp(), nil
	case DipID:
		return Dip(), nil
	case BSSID:
		return BSS(), nil
	default:
		return model.Exercise{}, bwerr.Inconsistent(fmt.Sprintf("unknown exercise id %q", exerciseID), nil)
	}
}

// All returns every built-in exercise, in a stable order.
func All() []model.Exercise {
	return []model.Exercise{PullUp(), Dip(), BSS()}
}
