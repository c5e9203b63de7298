// Note command sets or clears an item's note.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var noteClear bool

var noteCmd = &cobra.Command{
	Use:   "note ID [TEXT...]",
	Short: "Set or clear an item's note",
	Long: `Note attaches free text to an item. Remaining arguments are joined
with spaces. Use --clear to remove the note.

Example:
  crate note 12 heard on NTS, check the B side
  crate note 12 --clear`,
	Args: wrapArgs(cobra.MinimumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		text := strings.Join(args[1:], " ")
		if noteClear {
			text = ""
		} else if text == "" {
			return fmt.Errorf("note text required (or --clear)")
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.SetItemNote(id, text); err != nil {
			return fmt.Errorf("set note on item %d: %w", id, err)
		}

		if text == "" {
			fmt.Printf("Cleared note on item %d\n", id)
		} else {
			fmt.Printf("Noted item %d\n", id)
		}
		return nil
	},
}

func init() {
	noteCmd.Flags().BoolVar(&noteClear, "clear", false, "remove the note")
}
