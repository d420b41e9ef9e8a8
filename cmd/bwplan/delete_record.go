package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/paulgrocholske/bwplan/internal/bwerr"
	"github.com/paulgrocholske/bwplan/internal/store"
)

var deleteRecordCmd = &cobra.Command{
	Use:   "delete-record <id>",
	Short: "Delete a logged session by its history id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return bwerr.InvalidInput(fmt.Sprintf("invalid history id %q", args[0]), err)
		}

		if err := store.DeleteByID(historyPathFlag, id); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted history record #%d\n", id)
		return nil
	},
}
