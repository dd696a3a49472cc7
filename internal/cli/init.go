package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/flc/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter .license-checker.toml",
	Long: `Init writes a commented .license-checker.toml into the directory
(default: current directory). Edit license_header, then run 'flc check'.

An existing config file is never replaced unless --force is given.

Examples:
  flc init
  flc init ./myproject
  flc init --force`,
	Args:              OptionalPath,
	RunE:              runInit,
	ValidArgsFunction: completeDirectories,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := targetPath(args)

	path, err := config.WriteTemplate(dir, initForce)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "✓ Created %s\n", path)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Set license_header to your project's header")
	if dir != "." {
		fmt.Fprintf(out, "  2. flc check %s\n", dir)
	} else {
		fmt.Fprintln(out, "  2. flc check")
	}
	return nil
}
