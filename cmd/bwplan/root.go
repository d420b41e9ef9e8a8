// Package main is the bwplan CLI: a cobra command tree over the
// internal planning core, in the style the pack's greyskull-derived
// command tests exercise (package-level *cobra.Command vars with RunE,
// testable via cmd.SetOut/SetErr).
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/applog"
	"github.com/paulgrocholske/bwplan/internal/config"
	"github.com/paulgrocholske/bwplan/internal/exercisedef"
	"github.com/paulgrocholske/bwplan/internal/model"
	"github.com/paulgrocholske/bwplan/internal/store"
)

var (
	exerciseFlag    string
	historyPathFlag string
	profilePathFlag string
	configPathFlag  string
	jsonFlag        bool
	debugFlag       bool
)

const defaultHistoryPath = "bwplan_history.json"

var rootCmd = &cobra.Command{
	Use:           "bwplan",
	Short:         "A bodyweight resistance-training planner",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&exerciseFlag, "exercise", "", "exercise id (pull_up, dip, bss)")
	rootCmd.PersistentFlags().StringVar(&historyPathFlag, "history-path", defaultHistoryPath, "path to the session history file")
	rootCmd.PersistentFlags().StringVar(&profilePathFlag, "profile-path", store.DefaultProfileFile, "path to the user profile file")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "path to a config overlay YAML file")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "emit machine-readable JSON instead of text")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug-level diagnostic logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(logSessionCmd)
	rootCmd.AddCommand(showHistoryCmd)
	rootCmd.AddCommand(plotMaxCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(volumeCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(skipCmd)
	rootCmd.AddCommand(deleteRecordCmd)
	rootCmd.AddCommand(updateWeightCmd)
	rootCmd.AddCommand(oneRMCmd)
	rootCmd.AddCommand(updateEquipmentCmd)
	rootCmd.AddCommand(helpAdaptationCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// appContext bundles the state every subcommand needs once flags are
// parsed: the resolved exercise, config, logger, profile, and the full
// history for that exercise.
type appContext struct {
	Exercise model.Exercise
	Config   config.Config
	Logger   *slog.Logger
	Profile  model.UserProfile
	History  []model.SessionResult
}

func loadContext(requireExercise bool) (appContext, error) {
	var ctx appContext

	ctx.Logger = applog.New(os.Stderr, jsonFlag, debugFlag)

	cfg, err := config.Load(configPathFlag)
	if err != nil {
		ctx.Logger.Warn("config load degraded", "error", err)
	}
	ctx.Config = cfg

	if requireExercise {
		if exerciseFlag == "" {
			return ctx, fmt.Errorf("--exercise is required (one of: pull_up, dip, bss)")
		}
		ex, err := exercisedef.Lookup(exerciseFlag)
		if err != nil {
			return ctx, err
		}
		ctx.Exercise = ex
	}

	profile, _, err := store.LoadProfile(profilePathFlag)
	if err != nil {
		return ctx, err
	}
	ctx.Profile = profile

	all, err := store.LoadHistory(historyPathFlag)
	if err != nil {
		return ctx, err
	}
	if requireExercise {
		ctx.History = store.ForExercise(all, ctx.Exercise.ID)
	} else {
		ctx.History = all
	}

	return ctx, nil
}

func parseDateFlag(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", value)
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
