// Package export writes a generated plan to CSV, in the teacher's
// export/csv.go shape: open a file, write a header, write one row per
// set.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/paulgrocholske/bwplan/internal/model"
)

// ToCSV writes plans to filename, one row per prescribed set.
func ToCSV(plans []model.SessionPlan, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Date", "Week", "Type", "Variant", "SetNum", "Reps", "WeightKg", "RestS", "ExpectedTM"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, plan := range plans {
		for i, set := range plan.PlannedSets {
			row := formatRow(plan, i+1, set)
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	return nil
}

func formatRow(plan model.SessionPlan, setNum int, set model.PlannedSet) []string {
	return []string{
		plan.Date.Format("2006-01-02"),
		fmt.Sprintf("%d", plan.WeekNumber),
		string(plan.SessionType),
		plan.Variant,
		fmt.Sprintf("%d", setNum),
		fmt.Sprintf("%d", set.Reps),
		fmt.Sprintf("%.1f", set.WeightKg),
		fmt.Sprintf("%d", set.RestS),
		fmt.Sprintf("%d", plan.ExpectedTM),
	}
}
