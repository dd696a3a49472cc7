package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/flc/internal/config"
	"github.com/vvka-141/flc/internal/report"
)

var stylesCmd = &cobra.Command{
	Use:   "styles [path]",
	Short: "List the comment style used for each file extension",
	Long: `Styles prints the effective extension to comment style table: the built-in
defaults merged with comment_styles from the config file found in the
directory (default: current directory).`,
	Args:              OptionalPath,
	RunE:              runStyles,
	ValidArgsFunction: completeDirectories,
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}

func runStyles(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(targetPath(args), globalFlags.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), report.StylesTable(cfg.CommentStyles))
	return err
}
