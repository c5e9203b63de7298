// Rate command sets an item's rating.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cratedig/crate/pkg/types"
)

var rateCmd = &cobra.Command{
	Use:   "rate ID RATING",
	Short: "Rate an item from 1 to 5 (0 clears)",
	Args:  wrapArgs(cobra.ExactArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		rating, err := strconv.Atoi(args[1])
		if err != nil || !types.ValidRating(rating) {
			return fmt.Errorf("rating %q: %w", args[1], types.ErrInvalidRating)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.RateItem(id, rating); err != nil {
			return fmt.Errorf("rate item %d: %w", id, err)
		}

		if rating == types.RatingUnset {
			fmt.Printf("Cleared rating on item %d\n", id)
		} else {
			fmt.Printf("Rated item %d: %s\n", id, formatRating(rating))
		}
		return nil
	},
}
