// Version command for the crate CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags.
var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the crate version",
	Args:  wrapArgs(cobra.NoArgs),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("crate", version)
	},
}
