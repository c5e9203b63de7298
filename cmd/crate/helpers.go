// Shared helpers for crate CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cratedig/crate/internal/fetch"
	"github.com/cratedig/crate/internal/sqlite"
	"github.com/cratedig/crate/pkg/types"
)

// wrapArgs converts argument-count validation failures into usage
// errors so they exit with the user-error code.
func wrapArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// openStore resolves configuration and opens the SQLite store. The
// caller must defer store.Close().
func openStore() (*sqlite.Store, error) {
	cfg, err := storeConfig()
	if err != nil {
		return nil, err
	}

	store, err := sqlite.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

// newFetchClient builds a metadata fetch client from the loaded
// configuration.
func newFetchClient() (*fetch.Client, error) {
	cfg, err := storeConfig()
	if err != nil {
		return nil, err
	}
	return fetch.NewClient(cfg, logger), nil
}

// parseID parses a positional id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q: %w", arg, types.ErrInvalidID)
	}
	return id, nil
}

// resolveStack looks a stack up by numeric id or by name.
func resolveStack(store *sqlite.Store, arg string) (*types.Stack, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil && id > 0 {
		return store.GetStack(id)
	}
	return store.FindStack(arg)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// stackNames renders an item's stacks as a comma-separated list for
// table output.
func stackNames(refs []types.StackRef) string {
	if len(refs) == 0 {
		return "-"
	}
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.Name
	}
	return strings.Join(names, ", ")
}

// truncate shortens s for table display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
