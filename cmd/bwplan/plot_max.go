package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/maxest"
	"github.com/paulgrocholske/bwplan/internal/model"
	"github.com/paulgrocholske/bwplan/internal/physiology"
)

var plotMaxTrajectory bool

var plotMaxCmd = &cobra.Command{
	Use:   "plot-max",
	Short: "Print the max-reps trajectory: TEST observations and between-test estimates",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadContext(true)
		if err != nil {
			return err
		}

		sorted := append([]model.SessionResult{}, ctx.History...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

		out := cmd.OutOrStdout()
		for _, h := range sorted {
			switch h.SessionType {
			case model.Test:
				fmt.Fprintf(out, "%s  TEST   observed=%.0f\n", h.Date.Format("2006-01-02"), physiology.ObservedMax(h.Sets))
			case model.Rest:
				continue
			default:
				if pair, ok := maxest.Estimate(h.Sets, ctx.Config.MaxEstimator); ok {
					fmt.Fprintf(out, "%s  %-4s   fi_est=%.1f  nz_est=%.1f\n", h.Date.Format("2006-01-02"), h.SessionType, pair.FIEstimate, pair.NZEstimate)
				}
			}
		}

		if plotMaxTrajectory {
			baseline := ctx.Profile.BaselineMax[ctx.Exercise.ID]
			state := physiology.BuildState(ctx.History, ctx.Exercise, baseline, ctx.Profile.BodyweightKg, ctx.Config)
			predicted := physiology.PredictedMax(state, ctx.Config.Physiology)
			fmt.Fprintf(out, "\nCurrent readiness-adjusted max prediction: %.1f\n", predicted)
		}
		return nil
	},
}

func init() {
	plotMaxCmd.Flags().BoolVar(&plotMaxTrajectory, "trajectory", false, "also print the current readiness-adjusted max prediction")
}
