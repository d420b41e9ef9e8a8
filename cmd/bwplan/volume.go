package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/adaptation"
)

var volumeWeeks int

var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Print the current hard-set volume policy for an exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadContext(true)
		if err != nil {
			return err
		}

		daysPerWeek := ctx.Profile.DaysPerWeek(ctx.Exercise.ID)
		baseline := ctx.Profile.BaselineMax[ctx.Exercise.ID]
		asOf := today()
		if cmd.Flags().Changed("weeks") {
			ctx.Config.Adaptation.ComplianceWindowWeeks = volumeWeeks
		}

		status, _, _ := adaptation.Evaluate(ctx.History, ctx.Exercise, baseline, ctx.Profile.BodyweightKg, daysPerWeek, asOf, ctx.Config)

		baseSets := (ctx.Exercise.SessionParams["S"].SetsMin + ctx.Exercise.SessionParams["S"].SetsMax) / 2
		sets := adaptation.VolumePolicy(baseSets*daysPerWeek, status.DeloadRecommended, status.ReadinessZScore, status.WeeklyCompliance, ctx.Config.Adaptation)

		fmt.Fprintf(cmd.OutOrStdout(), "Recommended weekly hard sets for %s: %d (base %d x %d days, deload=%v, z=%.2f)\n",
			ctx.Exercise.Name, sets, baseSets, daysPerWeek, status.DeloadRecommended, status.ReadinessZScore)
		return nil
	},
}

func init() {
	volumeCmd.Flags().IntVar(&volumeWeeks, "weeks", 1, "compliance averaging window in weeks")
}
