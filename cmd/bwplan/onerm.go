package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/bwerr"
	"github.com/paulgrocholske/bwplan/internal/store"
)

var oneRMValue float64

// oneRMCmd sets or overrides the baseline max used to seed the
// fitness-fatigue state before any TEST session has been logged.
var oneRMCmd = &cobra.Command{
	Use:   "1rm",
	Short: "Set the baseline max-reps value an exercise starts from",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadContext(true)
		if err != nil {
			return err
		}
		if oneRMValue <= 0 {
			return bwerr.InvalidInput("--value must be positive", nil)
		}

		if ctx.Profile.BaselineMax == nil {
			ctx.Profile.BaselineMax = map[string]float64{}
		}
		ctx.Profile.BaselineMax[ctx.Exercise.ID] = oneRMValue

		if err := store.SaveProfile(profilePathFlag, ctx.Profile); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Baseline max for %s set to %.1f\n", ctx.Exercise.Name, oneRMValue)
		return nil
	},
}

func init() {
	oneRMCmd.Flags().Float64Var(&oneRMValue, "value", 0, "baseline max (reps, or kg for external-only exercises)")
}
