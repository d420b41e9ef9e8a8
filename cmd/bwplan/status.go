package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/adaptation"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current training status for an exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadContext(true)
		if err != nil {
			return err
		}

		daysPerWeek := ctx.Profile.DaysPerWeek(ctx.Exercise.ID)
		baseline := ctx.Profile.BaselineMax[ctx.Exercise.ID]
		asOf := today()

		result, _, overtraining := adaptation.Evaluate(ctx.History, ctx.Exercise, baseline, ctx.Profile.BodyweightKg, daysPerWeek, asOf, ctx.Config)

		if jsonFlag {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Status       adaptation.TrainingStatus     `json:"status"`
				Overtraining adaptation.OvertrainingResult `json:"overtraining"`
			}{result, overtraining})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Exercise:           %s\n", ctx.Exercise.Name)
		fmt.Fprintf(out, "Training max:       %d\n", result.TrainingMax)
		fmt.Fprintf(out, "Latest test max:    %.1f\n", result.LatestTestMax)
		fmt.Fprintf(out, "Trend:              %.2f reps/week\n", result.TrendSlope)
		fmt.Fprintf(out, "Plateau:            %v\n", result.IsPlateau)
		fmt.Fprintf(out, "Deload recommended: %v\n", result.DeloadRecommended)
		fmt.Fprintf(out, "Readiness z-score:  %.2f\n", result.ReadinessZScore)
		fmt.Fprintf(out, "Fitness / Fatigue:  %.2f / %.2f\n", result.Fitness, result.Fatigue)
		fmt.Fprintf(out, "Weekly compliance:  %.0f%%\n", result.WeeklyCompliance*100)
		fmt.Fprintf(out, "Overtraining level: %d (extra rest days: %d)\n", overtraining.Level, overtraining.ExtraRestDays)
		return nil
	},
}
