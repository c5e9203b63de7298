package main

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratedig/crate/pkg/types"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitUserError, exitCode(types.ErrNotFound))
	assert.Equal(t, exitUserError, exitCode(fmt.Errorf("get item 9: %w", types.ErrNotFound)))
	assert.Equal(t, exitUserError, exitCode(types.ErrInvalidRating))
	assert.Equal(t, exitUserError, exitCode(usageError{errors.New("unknown flag: --bogus")}))
	assert.Equal(t, exitSysError, exitCode(errors.New("database is locked")))
}

func TestCommandLineMistakesAreUserErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus"}},
		{"missing argument", []string{"show"}},
		{"extra argument", []string{"version", "extra"}},
		{"wrong argument count", []string{"rate", "1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rootCmd.SetOut(io.Discard)
			rootCmd.SetErr(io.Discard)
			rootCmd.SetArgs(tc.args)

			err := rootCmd.Execute()
			require.Error(t, err)
			assert.Equal(t, exitUserError, exitCode(err))
		})
	}
}
