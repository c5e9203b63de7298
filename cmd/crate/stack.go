// Stack commands manage named stacks and item memberships.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cratedig/crate/pkg/types"
)

var stackCmd = &cobra.Command{
	Use:   "stack",
	Short: "Manage stacks",
	Long: `Stacks are named groups of items. An item can sit in any number of
stacks at once.`,
}

func init() {
	stackCmd.AddCommand(stackAddCmd)
	stackCmd.AddCommand(stackListCmd)
	stackCmd.AddCommand(stackRenameCmd)
	stackCmd.AddCommand(stackDeleteCmd)
	stackCmd.AddCommand(stackAssignCmd)
	stackCmd.AddCommand(stackUnassignCmd)
}

var stackAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a new stack",
	Args:  wrapArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		stack, err := store.AddStack(args[0])
		if err != nil {
			return fmt.Errorf("add stack %q: %w", args[0], err)
		}

		if flagJSON {
			return printJSON(stack)
		}
		fmt.Printf("Created stack %d: %s\n", stack.ID, stack.Name)
		return nil
	},
}

var stackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stacks with item counts",
	Args:  wrapArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		stacks, err := store.ListStacks()
		if err != nil {
			return fmt.Errorf("list stacks: %w", err)
		}

		if flagJSON {
			return printJSON(stacks)
		}
		printStackTable(stacks)
		return nil
	},
}

var stackRenameCmd = &cobra.Command{
	Use:   "rename STACK NAME",
	Short: "Rename a stack",
	Args:  wrapArgs(cobra.ExactArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		stack, err := resolveStack(store, args[0])
		if err != nil {
			return fmt.Errorf("stack %q: %w", args[0], err)
		}
		if err := store.RenameStack(stack.ID, args[1]); err != nil {
			return fmt.Errorf("rename stack %d: %w", stack.ID, err)
		}

		fmt.Printf("Renamed stack %d: %s\n", stack.ID, args[1])
		return nil
	},
}

var stackDeleteCmd = &cobra.Command{
	Use:   "delete STACK",
	Short: "Delete a stack",
	Long: `Delete removes a stack and its memberships. Items that were in the
stack are kept.`,
	Args: wrapArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		stack, err := resolveStack(store, args[0])
		if err != nil {
			return fmt.Errorf("stack %q: %w", args[0], err)
		}
		if err := store.DeleteStack(stack.ID); err != nil {
			return fmt.Errorf("delete stack %d: %w", stack.ID, err)
		}

		fmt.Printf("Deleted stack %d: %s\n", stack.ID, stack.Name)
		return nil
	},
}

var stackAssignCmd = &cobra.Command{
	Use:   "assign ITEM_ID STACK",
	Short: "Add an item to a stack",
	Args:  wrapArgs(cobra.ExactArgs(2)),
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

		stack, err := resolveStack(store, args[1])
		if err != nil {
			return fmt.Errorf("stack %q: %w", args[1], err)
		}
		if err := store.AssignStack(id, stack.ID); err != nil {
			return fmt.Errorf("assign item %d to stack %d: %w", id, stack.ID, err)
		}

		fmt.Printf("Assigned item %d to stack %s\n", id, stack.Name)
		return nil
	},
}

var stackUnassignCmd = &cobra.Command{
	Use:   "unassign ITEM_ID STACK",
	Short: "Remove an item from a stack",
	Args:  wrapArgs(cobra.ExactArgs(2)),
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

		stack, err := resolveStack(store, args[1])
		if err != nil {
			return fmt.Errorf("stack %q: %w", args[1], err)
		}
		if err := store.UnassignStack(id, stack.ID); err != nil {
			return fmt.Errorf("unassign item %d from stack %d: %w", id, stack.ID, err)
		}

		fmt.Printf("Removed item %d from stack %s\n", id, stack.Name)
		return nil
	},
}

// printStackTable prints stacks in a human-readable table format.
func printStackTable(stacks []*types.Stack) {
	if len(stacks) == 0 {
		fmt.Println("No stacks found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tITEMS\tCREATED")
	fmt.Fprintln(w, "--\t----\t-----\t-------")
	for _, s := range stacks {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n",
			s.ID,
			truncate(s.Name, 40),
			s.ItemCount,
			s.CreatedAt.Format("2006-01-02"),
		)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d stack(s)\n", len(stacks))
}
