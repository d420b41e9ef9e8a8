package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/model"
	"github.com/paulgrocholske/bwplan/internal/store"
)

var (
	initHeightCm     float64
	initBodyweightKg float64
	initSex          string
	initDaysPerWeek  int
	initTargetReps   int
	initExercises    []string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or overwrite the user profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(initExercises) == 0 {
			initExercises = []string{"pull_up", "dip", "bss"}
		}

		profile := model.UserProfile{
			HeightCm:            initHeightCm,
			Sex:                 initSex,
			BodyweightKg:        initBodyweightKg,
			DefaultDaysPerWeek:  initDaysPerWeek,
			ExerciseDaysPerWeek: map[string]int{},
			TargetMaxReps:       initTargetReps,
			EnabledExercises:    initExercises,
			PlanStartDate:       map[string]time.Time{},
			BaselineMax:         map[string]float64{},
		}

		if err := store.SaveProfile(profilePathFlag, profile); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile saved to %s\n", profilePathFlag)
		return nil
	},
}

func init() {
	initCmd.Flags().Float64Var(&initHeightCm, "height-cm", 0, "height in centimeters")
	initCmd.Flags().Float64Var(&initBodyweightKg, "bodyweight-kg", 0, "bodyweight in kilograms")
	initCmd.Flags().StringVar(&initSex, "sex", "", "sex, free text, used for informational display only")
	initCmd.Flags().IntVar(&initDaysPerWeek, "days-per-week", 3, "default training days per week (1-5)")
	initCmd.Flags().IntVar(&initTargetReps, "target-max-reps", 0, "long-range max-reps goal, 0 to use each exercise's built-in default")
	initCmd.Flags().StringSliceVar(&initExercises, "exercises", nil, "enabled exercise ids (default: pull_up,dip,bss)")
}
