// Init command for the crate CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize crate storage",
	Long: `Init creates the configuration directory with a default config.yaml
and opens the data directory, creating the database on first run.`,
	Args: wrapArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}
		if err := ensureConfigDir(configDir); err != nil {
			return fmt.Errorf("init: %w", err)
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			return fmt.Errorf("init: %w", err)
		}

		// Opening the store creates the data directory and database.
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}
		defer store.Close()

		dataDir, err := resolveDataDir()
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}

		fmt.Println("Crate initialized")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		return nil
	},
}
