// Show command displays a single item in full.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one item in full",
	Args:  wrapArgs(cobra.ExactArgs(1)),
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

		item, err := store.GetItem(id)
		if err != nil {
			return fmt.Errorf("get item %d: %w", id, err)
		}

		if flagJSON {
			return printJSON(item)
		}

		fmt.Printf("ID:      %d\n", item.ID)
		fmt.Printf("URL:     %s\n", item.URL)
		fmt.Printf("Title:   %s\n", item.Title)
		fmt.Printf("Artist:  %s\n", item.Artist)
		fmt.Printf("Kind:    %s\n", item.Kind)
		fmt.Printf("Rating:  %s\n", formatRating(item.Rating))
		fmt.Printf("Stacks:  %s\n", stackNames(item.Stacks))
		fmt.Printf("Created: %s\n", item.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("Updated: %s\n", item.UpdatedAt.Format("2006-01-02 15:04"))
		if item.Note != "" {
			fmt.Printf("Note:    %s\n", item.Note)
		}
		return nil
	},
}
