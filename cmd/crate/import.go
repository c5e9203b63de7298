// Import command restores a JSONL snapshot.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importYes bool

var importCmd = &cobra.Command{
	Use:   "import DIR",
	Short: "Import a JSONL snapshot",
	Long: `Import replaces the current collection with the snapshot in DIR.
Existing items, stacks, and memberships are removed first. Requires
--yes to confirm.`,
	Args: wrapArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !importYes {
			return fmt.Errorf("import replaces the current collection; re-run with --yes")
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.ImportJSONL(args[0]); err != nil {
			return fmt.Errorf("import: %w", err)
		}

		fmt.Printf("Imported snapshot from %s\n", args[0])
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importYes, "yes", false, "confirm replacing the current collection")
}
