package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/bwerr"
)

var updateEquipmentFlag []string

// updateEquipmentCmd prints a freshly tagged equipment snapshot for the
// caller to attach to their next log-session --equipment flags. Nothing
// is stored: the printed revision id is a new random id on every call,
// and log-session generates its own new id for each snapshot it stores.
var updateEquipmentCmd = &cobra.Command{
	Use:   "update-equipment",
	Short: "Mint a new equipment snapshot revision id for key=value pairs",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseEquipment(updateEquipmentFlag)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return bwerr.InvalidInput("at least one --equipment key=value pair is required", nil)
		}

		revisionID := uuid.NewString()
		fmt.Fprintf(cmd.OutOrStdout(), "Equipment revision %s:\n", revisionID)
		for k, v := range data {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", k, v)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nPass --equipment key=value to log-session to attach this snapshot.")
		return nil
	},
}

func init() {
	updateEquipmentCmd.Flags().StringArrayVar(&updateEquipmentFlag, "equipment", nil, "equipment key=value pair, repeatable")
}
