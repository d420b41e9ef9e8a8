package main

import (
	"github.com/spf13/cobra"
)

var helpAdaptationCmd = &cobra.Command{
	Use:   "help-adaptation",
	Short: "Explain the adaptation rules behind plan and status output",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		out.Write([]byte(adaptationHelpText))
		return nil
	},
}

const adaptationHelpText = `Adaptation rules:

plateau       the 21-day OLS trend slope across TEST points is flat (< 0.05
              reps/week) and no TEST within that window beat the all-time
              best observed max.

deload        recommended when a plateau coincides with low readiness, OR
              the last two non-TEST strength sessions both underperformed
              their own-date readiness-adjusted prediction by more than
              10%, OR weekly compliance has fallen below 70%.

autoregulation  once 10 non-TEST sessions have been completed, each
              session's base (sets, reps) is nudged by the readiness
              z-score: low readiness trims sets, high readiness adds a
              rep.

overtraining  compares the actual cadence of the last 7 days of training
              against the days-per-week target; training more densely
              than the target (too few days between sessions) raises the
              severity level (0-3), adding rest and, at the top level,
              shifting the whole upcoming plan forward.

training max  floor(0.9 x latest TEST max); the planner's own rep target
              ramps from the raw latest TEST max between tests, so the
              displayed training max is intentionally more conservative
              than what the planner is progressing toward.
`
