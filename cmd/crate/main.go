// Package main provides the crate CLI, a bookmarking tool for music
// links. Items are stored in a local SQLite database and grouped into
// named stacks.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cratedig/crate/pkg/types"
)

// Exit codes. User errors (bad input, missing records) exit 1; system
// errors (storage, network) exit 2.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "crate:", err)
		os.Exit(exitCode(err))
	}
}

// usageError marks command-line mistakes surfaced by cobra (unknown
// flags, wrong argument counts) so they exit as user errors.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// userErrors are the sentinel errors caused by bad input rather than a
// failing system.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidURL,
	types.ErrInvalidRating,
	types.ErrInvalidName,
	types.ErrInvalidKind,
	types.ErrInvalidFilter,
	types.ErrDuplicateURL,
	types.ErrDuplicateName,
}

func exitCode(err error) int {
	var ue usageError
	if errors.As(err, &ue) {
		return exitUserError
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}
