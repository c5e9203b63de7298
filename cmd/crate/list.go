// List command queries bookmarked items.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cratedig/crate/pkg/types"
)

var (
	listStack     string
	listKind      string
	listMinRating int
	listSearch    string
	listLimit     int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarked items",
	Long: `List shows bookmarked items, newest first.

Example:
  crate list
  crate list --stack favorites
  crate list --kind album --min-rating 4
  crate list --search ambient --json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listStack, "stack", "", "filter by stack (name or id)")
	listCmd.Flags().StringVar(&listKind, "kind", "", "filter by kind (album, track, mix, other)")
	listCmd.Flags().IntVar(&listMinRating, "min-rating", 0, "filter by minimum rating (1-5)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "match against title, artist, and URL")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of results (0 = no limit)")
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	filter := make(map[string]any)
	if listStack != "" {
		stack, err := resolveStack(store, listStack)
		if err != nil {
			return fmt.Errorf("stack %q: %w", listStack, err)
		}
		filter["stack_id"] = stack.ID
	}
	if listKind != "" {
		filter["kind"] = listKind
	}
	if listMinRating > 0 {
		filter["min_rating"] = listMinRating
	}
	if listSearch != "" {
		filter["search"] = listSearch
	}
	if listLimit > 0 {
		filter["limit"] = listLimit
	}

	items, err := store.ListItems(filter)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	if flagJSON {
		return printJSON(items)
	}
	printItemTable(items)
	return nil
}

// printItemTable prints items in a human-readable table format.
func printItemTable(items []*types.Item) {
	if len(items) == 0 {
		fmt.Println("No items found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tARTIST\tKIND\tRATING\tSTACKS")
	fmt.Fprintln(w, "--\t-----\t------\t----\t------\t------")
	for _, item := range items {
		title := item.Title
		if title == "" {
			title = item.URL
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			item.ID,
			truncate(title, 40),
			truncate(item.Artist, 24),
			item.Kind,
			formatRating(item.Rating),
			stackNames(item.Stacks),
		)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d item(s)\n", len(items))
}

// formatRating renders a rating as stars, or a dash when unrated.
func formatRating(rating int) string {
	if rating == types.RatingUnset {
		return "-"
	}
	return strings.Repeat("*", rating)
}
