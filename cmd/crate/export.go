// Export command writes a JSONL snapshot of the collection.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [DIR]",
	Short: "Export the collection as JSONL",
	Long: `Export writes items, stacks, and memberships as JSONL files into DIR
(default: current directory), plus a manifest.json identifying the
snapshot. The snapshot can be restored with crate import.`,
	Args: wrapArgs(cobra.MaximumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		snapshotID, err := store.ExportJSONL(dir)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		if flagJSON {
			return printJSON(map[string]string{"snapshot_id": snapshotID, "dir": dir})
		}
		fmt.Printf("Exported snapshot %s to %s\n", snapshotID, dir)
		return nil
	},
}
