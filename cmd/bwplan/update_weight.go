package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/bwerr"
	"github.com/paulgrocholske/bwplan/internal/store"
)

var updateWeightValue float64

var updateWeightCmd = &cobra.Command{
	Use:   "update-weight",
	Short: "Update the stored bodyweight used for load normalization",
	RunE: func(cmd *cobra.Command, args []string) error {
		if updateWeightValue <= 0 {
			return bwerr.InvalidInput("--kg must be positive", nil)
		}

		profile, _, err := store.LoadProfile(profilePathFlag)
		if err != nil {
			return err
		}
		profile.BodyweightKg = updateWeightValue

		if err := store.SaveProfile(profilePathFlag, profile); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Bodyweight updated to %.1fkg\n", updateWeightValue)
		return nil
	},
}

func init() {
	updateWeightCmd.Flags().Float64Var(&updateWeightValue, "kg", 0, "new bodyweight in kilograms")
}
