// Add command bookmarks a new music link.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cratedig/crate/pkg/types"
)

var (
	addTitle   string
	addArtist  string
	addKind    string
	addNoFetch bool
	addStacks  []string
)

var addCmd = &cobra.Command{
	Use:   "add URL",
	Short: "Bookmark a music link",
	Long: `Add bookmarks a music link. By default the page is fetched and its
title, artist, and kind are extracted from Open Graph metadata. Use
--no-fetch to skip the network and set fields by hand.

Example:
  crate add https://artist.bandcamp.com/album/lp1
  crate add https://example.com/mix --no-fetch --title "Spring Mix" --kind mix
  crate add https://soundcloud.com/artist/cut --stack favorites`,
	Args: wrapArgs(cobra.ExactArgs(1)),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "item title (overrides fetched value)")
	addCmd.Flags().StringVar(&addArtist, "artist", "", "item artist (overrides fetched value)")
	addCmd.Flags().StringVar(&addKind, "kind", "", "item kind (album, track, mix, other)")
	addCmd.Flags().BoolVar(&addNoFetch, "no-fetch", false, "skip metadata fetch")
	addCmd.Flags().StringSliceVar(&addStacks, "stack", nil, "assign to stack (name or id, repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	rawURL := args[0]
	if err := types.ValidateURL(rawURL); err != nil {
		return fmt.Errorf("url %q: %w", rawURL, err)
	}
	if addKind != "" && !types.ValidKind(addKind) {
		return fmt.Errorf("kind %q: %w", addKind, types.ErrInvalidKind)
	}

	item := &types.Item{
		URL:    rawURL,
		Title:  addTitle,
		Artist: addArtist,
		Kind:   addKind,
	}

	if !addNoFetch {
		client, err := newFetchClient()
		if err != nil {
			return err
		}
		meta, err := client.Extract(cmd.Context(), rawURL)
		if err != nil {
			// Fetch failure is not fatal; the bookmark is still worth
			// keeping. Flags win over fetched values either way.
			logger.Warn("metadata fetch failed", zap.String("url", rawURL), zap.Error(err))
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: metadata fetch failed, saving bare link")
		} else {
			if item.Title == "" {
				item.Title = meta.Title
			}
			if item.Artist == "" {
				item.Artist = meta.Artist
			}
			if item.Kind == "" {
				item.Kind = meta.Kind
			}
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	saved, err := store.AddItem(item)
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}

	for _, arg := range addStacks {
		stack, err := resolveStack(store, arg)
		if err != nil {
			return fmt.Errorf("stack %q: %w", arg, err)
		}
		if err := store.AssignStack(saved.ID, stack.ID); err != nil {
			return fmt.Errorf("assign stack %q: %w", arg, err)
		}
	}
	if len(addStacks) > 0 {
		if saved, err = store.GetItem(saved.ID); err != nil {
			return fmt.Errorf("reload item: %w", err)
		}
	}

	if flagJSON {
		return printJSON(saved)
	}
	fmt.Printf("Added item %d: %s\n", saved.ID, displayTitle(saved))
	return nil
}

// displayTitle picks the most useful human label for an item.
func displayTitle(item *types.Item) string {
	switch {
	case item.Title != "" && item.Artist != "":
		return item.Title + " - " + item.Artist
	case item.Title != "":
		return item.Title
	default:
		return item.URL
	}
}
