package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// OptionalPath accepts zero or one path argument.
// Returns a helpful error message with usage and examples when more are given.
func OptionalPath(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s ./src`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}

// targetPath returns the path argument, defaulting to the current directory.
func targetPath(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return "."
	}
	return filepath.Clean(args[0])
}
