package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/bwerr"
	"github.com/paulgrocholske/bwplan/internal/model"
	"github.com/paulgrocholske/bwplan/internal/store"
)

var (
	skipDays int
	skipFrom string
)

// skipCmd is the shift-forward operator of spec §4.5 step 8. A positive
// --days appends that many consecutive dated REST records starting at
// --from and advances plan_start past them; a negative --days removes
// only the REST records in [from+days, from) and rewinds plan_start,
// never touching a non-REST record (spec invariant 6).
var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Shift the plan forward or backward by adding or removing REST records",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadContext(true)
		if err != nil {
			return err
		}

		from, err := parseDateFlag(skipFrom, today())
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}

		if skipDays == 0 {
			return bwerr.InvalidInput("--days must not be zero", nil)
		}

		if skipDays > 0 {
			return shiftForward(cmd.OutOrStdout(), ctx, from, skipDays)
		}
		return shiftBackward(cmd.OutOrStdout(), ctx, from, skipDays)
	},
}

// shiftForward appends shiftDays consecutive REST records dated
// from..from+shiftDays-1 and sets plan_start to the day after the last
// of them.
func shiftForward(out io.Writer, ctx appContext, from time.Time, shiftDays int) error {
	var lastRestDate time.Time
	for i := 0; i < shiftDays; i++ {
		date := from.AddDate(0, 0, i)
		rest := model.SessionResult{
			Date:        date,
			ExerciseID:  ctx.Exercise.ID,
			SessionType: model.Rest,
			Notes:       fmt.Sprintf("shift plan forward from %s", from.Format("2006-01-02")),
		}
		if _, _, err := store.AppendSession(historyPathFlag, rest); err != nil {
			return err
		}
		lastRestDate = date
	}

	planStart := lastRestDate.AddDate(0, 0, 1)
	if err := savePlanStart(ctx, ctx.Exercise.ID, planStart); err != nil {
		return err
	}

	fmt.Fprintf(out, "Appended %d REST day(s) from %s; plan_start set to %s\n",
		shiftDays, from.Format("2006-01-02"), planStart.Format("2006-01-02"))
	return nil
}

// shiftBackward removes only the REST records in [from+shiftDays, from)
// and rewinds plan_start to max(from+shiftDays, first_training_date).
func shiftBackward(out io.Writer, ctx appContext, from time.Time, shiftDays int) error {
	rangeStart := from.AddDate(0, 0, shiftDays)

	var toDelete []int
	for _, h := range ctx.History {
		if h.SessionType != model.Rest {
			continue
		}
		if !h.Date.Before(rangeStart) && h.Date.Before(from) {
			toDelete = append(toDelete, h.HistoryID)
		}
	}
	for _, id := range toDelete {
		if err := store.DeleteByID(historyPathFlag, id); err != nil {
			return err
		}
	}

	firstTraining, hasTraining := firstTrainingDate(ctx.History)
	planStart := rangeStart
	if hasTraining && firstTraining.After(planStart) {
		planStart = firstTraining
	}
	if err := savePlanStart(ctx, ctx.Exercise.ID, planStart); err != nil {
		return err
	}

	fmt.Fprintf(out, "Removed %d REST record(s) in [%s, %s); plan_start set to %s\n",
		len(toDelete), rangeStart.Format("2006-01-02"), from.Format("2006-01-02"), planStart.Format("2006-01-02"))
	return nil
}

func firstTrainingDate(history []model.SessionResult) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, h := range history {
		if h.SessionType == model.Rest {
			continue
		}
		if !found || h.Date.Before(earliest) {
			earliest = h.Date
			found = true
		}
	}
	return earliest, found
}

func savePlanStart(ctx appContext, exerciseID string, planStart time.Time) error {
	profile := ctx.Profile
	if profile.PlanStartDate == nil {
		profile.PlanStartDate = map[string]time.Time{}
	}
	profile.PlanStartDate[exerciseID] = planStart
	return store.SaveProfile(profilePathFlag, profile)
}

func init() {
	skipCmd.Flags().IntVar(&skipDays, "days", 1, "days to shift the plan by; positive adds rest days, negative removes them")
	skipCmd.Flags().StringVar(&skipFrom, "from", "", "date the shift is anchored to (YYYY-MM-DD), default today")
}
