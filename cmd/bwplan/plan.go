package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/export"
	"github.com/paulgrocholske/bwplan/internal/planner"
)

var (
	planWeeks      int
	planStartFlag  string
	planExportPath string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate the upcoming session schedule for an exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadContext(true)
		if err != nil {
			return err
		}

		planStart := ctx.Profile.PlanStartDate[ctx.Exercise.ID]
		if planStart.IsZero() {
			planStart = today()
		}
		if v, err := parseDateFlag(planStartFlag, planStart); err != nil {
			return fmt.Errorf("invalid --plan-start date: %w", err)
		} else {
			planStart = v
		}

		asOf := today()

		result, err := planner.Generate(planner.Request{
			Profile:      ctx.Profile,
			Exercise:     ctx.Exercise,
			History:      ctx.History,
			PlanStart:    planStart,
			HorizonWeeks: planWeeks,
			AsOf:         asOf,
			Config:       ctx.Config,
		})
		if err != nil {
			return err
		}

		if planExportPath != "" {
			if err := export.ToCSV(result.Plans, planExportPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan exported to %s\n", planExportPath)
			return nil
		}

		if jsonFlag {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result.Plans)
		}

		printPlan(cmd, result)
		return nil
	},
}

func printPlan(cmd *cobra.Command, result planner.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Training status: TM=%d, trend=%.2f reps/wk, plateau=%v, deload=%v, readiness_z=%.2f\n",
		result.Status.TrainingMax, result.Status.TrendSlope, result.Status.IsPlateau, result.Status.DeloadRecommended, result.Status.ReadinessZScore)
	if result.Overtraining.Level > 0 {
		fmt.Fprintf(out, "Overtraining level %d detected; plan start shifted to %s\n", result.Overtraining.Level, result.PlanStart.Format("2006-01-02"))
	}
	fmt.Fprintln(out)

	for _, p := range result.Plans {
		fmt.Fprintf(out, "%s  week %-3d  %-4s  %-10s  TM=%d\n", p.Date.Format("2006-01-02"), p.WeekNumber, p.SessionType, p.Variant, p.ExpectedTM)
		for i, s := range p.PlannedSets {
			fmt.Fprintf(out, "    set %d: %d reps @ %.1fkg, rest %ds\n", i+1, s.Reps, s.WeightKg, s.RestS)
		}
	}
}

func init() {
	planCmd.Flags().IntVar(&planWeeks, "weeks", 4, "number of weeks to generate")
	planCmd.Flags().StringVar(&planStartFlag, "plan-start", "", "override plan start date (YYYY-MM-DD)")
	planCmd.Flags().StringVar(&planExportPath, "export-csv", "", "write the generated plan to a CSV file instead of printing it")
}
