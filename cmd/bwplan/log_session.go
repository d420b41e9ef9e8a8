package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/bwerr"
	"github.com/paulgrocholske/bwplan/internal/model"
	"github.com/paulgrocholske/bwplan/internal/store"
)

var (
	logDateFlag        string
	logSessionTypeFlag string
	logVariantFlag     string
	logBodyweightFlag  float64
	logSetsFlag        []string
	logNotesFlag       string
	logEquipmentFlag   []string
)

// logSessionCmd appends one completed session. Sets are given with
// --set "reps/weight_kg/rest_s" or "reps/weight_kg/rest_s/rir", repeated
// once per set, in performance order.
var logSessionCmd = &cobra.Command{
	Use:   "log-session",
	Short: "Log a completed training session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadContext(true)
		if err != nil {
			return err
		}

		date, err := parseDateFlag(logDateFlag, today())
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}

		sessionType, err := parseSessionType(logSessionTypeFlag)
		if err != nil {
			return err
		}

		sets, err := parseSets(logSetsFlag)
		if err != nil {
			return err
		}
		if len(sets) == 0 && sessionType != model.Rest {
			return bwerr.InvalidInput("at least one --set is required unless --type is REST", nil)
		}

		variant := logVariantFlag
		if variant == "" {
			variant = ctx.Exercise.PrimaryVariant
		}

		result := model.SessionResult{
			Date:         date,
			ExerciseID:   ctx.Exercise.ID,
			SessionType:  sessionType,
			Variant:      variant,
			BodyweightKg: logBodyweightFlag,
			Sets:         sets,
			Notes:        logNotesFlag,
		}
		if len(logEquipmentFlag) > 0 {
			data, err := parseEquipment(logEquipmentFlag)
			if err != nil {
				return err
			}
			result.Equipment = &model.EquipmentSnapshot{RevisionID: uuid.NewString(), Data: data}
		}

		stored, promoted, err := store.AppendSession(historyPathFlag, result)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Logged session #%d: %s %s on %s, %d sets\n", stored.HistoryID, ctx.Exercise.ID, stored.SessionType, stored.Date.Format("2006-01-02"), len(stored.Sets))
		if promoted != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Overperformance detected: synthesized TEST record #%d with max_reps=%d\n", promoted.HistoryID, promoted.Sets[0].Reps)
		}
		return nil
	},
}

func parseSessionType(s string) (model.SessionType, error) {
	switch strings.ToUpper(s) {
	case "S":
		return model.Strength, nil
	case "H":
		return model.Hypertrophy, nil
	case "E":
		return model.Endurance, nil
	case "T":
		return model.Technique, nil
	case "TEST":
		return model.Test, nil
	case "REST":
		return model.Rest, nil
	default:
		return "", bwerr.InvalidInput(fmt.Sprintf("unknown session type %q (want S, H, E, T, TEST, or REST)", s), nil)
	}
}

// parseSets parses "reps/weight_kg/rest_s" or "reps/weight_kg/rest_s/rir"
// notation, one string per set.
func parseSets(raw []string) ([]model.CompletedSet, error) {
	sets := make([]model.CompletedSet, 0, len(raw))
	for _, s := range raw {
		fields := strings.Split(s, "/")
		if len(fields) < 3 || len(fields) > 4 {
			return nil, bwerr.InvalidInput(fmt.Sprintf("malformed --set %q, want reps/weight_kg/rest_s[/rir]", s), nil)
		}

		reps, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, bwerr.InvalidInput(fmt.Sprintf("malformed reps in --set %q", s), err)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, bwerr.InvalidInput(fmt.Sprintf("malformed weight in --set %q", s), err)
		}
		rest, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, bwerr.InvalidInput(fmt.Sprintf("malformed rest in --set %q", s), err)
		}

		set := model.CompletedSet{Reps: reps, WeightKg: weight, RestS: rest}
		if len(fields) == 4 {
			rir, err := strconv.Atoi(strings.TrimSpace(fields[3]))
			if err != nil {
				return nil, bwerr.InvalidInput(fmt.Sprintf("malformed rir in --set %q", s), err)
			}
			set.RIR = &rir
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func parseEquipment(raw []string) (map[string]string, error) {
	data := make(map[string]string, len(raw))
	for _, kv := range raw {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return nil, bwerr.InvalidInput(fmt.Sprintf("malformed --equipment %q, want key=value", kv), nil)
		}
		data[parts[0]] = parts[1]
	}
	return data, nil
}

func init() {
	logSessionCmd.Flags().StringVar(&logDateFlag, "date", "", "session date (YYYY-MM-DD), default today")
	logSessionCmd.Flags().StringVar(&logSessionTypeFlag, "type", "S", "session type: S, H, E, T, TEST, or REST")
	logSessionCmd.Flags().StringVar(&logVariantFlag, "variant", "", "variant/grip performed, default the exercise's primary variant")
	logSessionCmd.Flags().Float64Var(&logBodyweightFlag, "bodyweight-kg", 0, "bodyweight at time of session")
	logSessionCmd.Flags().StringArrayVar(&logSetsFlag, "set", nil, "one set as reps/weight_kg/rest_s[/rir], repeatable")
	logSessionCmd.Flags().StringVar(&logNotesFlag, "notes", "", "free-text notes")
	logSessionCmd.Flags().StringArrayVar(&logEquipmentFlag, "equipment", nil, "equipment snapshot key=value pair, repeatable")
}
