package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/model"
)

var showHistoryLimit int

var showHistoryCmd = &cobra.Command{
	Use:   "show-history",
	Short: "Print logged sessions for an exercise, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadContext(true)
		if err != nil {
			return err
		}

		sorted := append([]model.SessionResult{}, ctx.History...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
		if showHistoryLimit > 0 && len(sorted) > showHistoryLimit {
			sorted = sorted[:showHistoryLimit]
		}

		if jsonFlag {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sorted)
		}

		out := cmd.OutOrStdout()
		for _, h := range sorted {
			fmt.Fprintf(out, "#%-4d %s  %-4s  %-10s  %d sets\n", h.HistoryID, h.Date.Format("2006-01-02"), h.SessionType, h.Variant, len(h.Sets))
			for i, s := range h.Sets {
				rir := "-"
				if s.RIR != nil {
					rir = fmt.Sprintf("%d", *s.RIR)
				}
				fmt.Fprintf(out, "    set %d: %d reps @ %.1fkg, rest %ds, rir %s\n", i+1, s.Reps, s.WeightKg, s.RestS, rir)
			}
		}
		return nil
	},
}

func init() {
	showHistoryCmd.Flags().IntVar(&showHistoryLimit, "limit", 20, "maximum number of sessions to show, 0 for all")
}
