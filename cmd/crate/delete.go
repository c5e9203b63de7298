// Delete command removes an item.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an item",
	Long: `Delete removes an item and its stack memberships. Stacks themselves
are never deleted by this command.`,
	Args: wrapArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeleteItem(id); err != nil {
			return fmt.Errorf("delete item %d: %w", id, err)
		}

		fmt.Printf("Deleted item %d\n", id)
		return nil
	},
}
