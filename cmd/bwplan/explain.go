package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/bwerr"
	"github.com/paulgrocholske/bwplan/internal/model"
	"github.com/paulgrocholske/bwplan/internal/planner"
	"github.com/paulgrocholske/bwplan/internal/timeline"
)

const explainHorizonWeeks = 8

// explainCmd looks up one timeline entry, by an explicit date or the
// literal "next", and prints the reasoning behind its prescription.
var explainCmd = &cobra.Command{
	Use:   "explain <date|next>",
	Short: "Explain why a given (or the next) session was prescribed the way it was",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadContext(true)
		if err != nil {
			return err
		}

		planStart := ctx.Profile.PlanStartDate[ctx.Exercise.ID]
		if planStart.IsZero() {
			planStart = today()
		}

		result, err := planner.Generate(planner.Request{
			Profile:      ctx.Profile,
			Exercise:     ctx.Exercise,
			History:      ctx.History,
			PlanStart:    planStart,
			HorizonWeeks: explainHorizonWeeks,
			AsOf:         today(),
			Config:       ctx.Config,
		})
		if err != nil {
			return err
		}

		entries := timeline.Build(ctx.History, result.Plans, today(), result.FirstMonday, ctx.Config.MaxEstimator)

		var target *model.TimelineEntry
		if args[0] == "next" {
			for i := range entries {
				if entries[i].Status == model.StatusNext {
					target = &entries[i]
					break
				}
			}
		} else {
			want, err := parseDateFlag(args[0], today())
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", args[0], err)
			}
			for i := range entries {
				if entries[i].Date.Equal(want) {
					target = &entries[i]
					break
				}
			}
		}
		if target == nil {
			return bwerr.MissingState(fmt.Sprintf("no timeline entry found for %q", args[0]), nil)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s  %s  status=%s\n", target.Date.Format("2006-01-02"), target.SessionType, target.Variant, target.Status)
		fmt.Fprintf(out, "Week %d, expected TM %d\n", target.WeekNumber, target.ExpectedTM)
		fmt.Fprintf(out, "Training status: plateau=%v deload=%v readiness_z=%.2f weekly_compliance=%.0f%%\n",
			result.Status.IsPlateau, result.Status.DeloadRecommended, result.Status.ReadinessZScore, result.Status.WeeklyCompliance*100)
		if result.Overtraining.Level > 0 {
			fmt.Fprintf(out, "Overtraining level %d: plan start shifted to %s\n", result.Overtraining.Level, result.PlanStart.Format("2006-01-02"))
		}
		for i, s := range target.Prescribed {
			fmt.Fprintf(out, "  set %d: %d reps @ %.1fkg, rest %ds\n", i+1, s.Reps, s.WeightKg, s.RestS)
		}
		if target.TrackBMax != nil {
			fmt.Fprintf(out, "Between-test max estimate: fi=%.1f nz=%.1f\n", target.TrackBMax.FIEstimate, target.TrackBMax.NZEstimate)
		}
		return nil
	},
}
