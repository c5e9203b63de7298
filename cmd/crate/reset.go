// Reset command clears all stored data.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all items and stacks",
	Long: `Reset removes every item, stack, and membership and restarts id
numbering. Requires --yes to confirm.`,
	Args: wrapArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("reset deletes all data; re-run with --yes")
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Reset(); err != nil {
			return fmt.Errorf("reset: %w", err)
		}

		fmt.Println("Collection reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm deleting all data")
}
