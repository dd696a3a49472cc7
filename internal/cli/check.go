package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/flc/internal/files/scanner"
	"github.com/vvka-141/flc/internal/report"
	"github.com/vvka-141/flc/internal/tui"
	"github.com/vvka-141/flc/pkg/flc"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Report files missing the license header",
	Long: `Check walks the directory (default: current directory) and reports every
source file that does not start with the license header.

Binary, empty, non-UTF-8 files and files without a known comment style are
skipped. Ignore rules from .gitignore, .flcignore and ignore_patterns apply.

Examples:
  flc check
  flc check ./src --license LICENSE-HEADER.txt
  flc check -o github          # annotate files in GitHub Actions
  flc check -o json | jq .failing`,
	Args:              OptionalPath,
	RunE:              runCheck,
	ValidArgsFunction: completeDirectories,
}

type checkFlagValues struct {
	strict bool
}

var checkFlags checkFlagValues

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.ValidArgsFunction = completeDirectories

	checkCmd.Flags().BoolVar(&checkFlags.strict, "strict", false,
		"Also fail on malformed headers and unreadable files")
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, err := buildRunSettings(cmd, targetPath(args))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := scan(ctx, cmd, settings)
	if err != nil {
		return err
	}

	if err := report.Render(settings.out, summary, settings.reportOptions()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return checkResult(summary, checkFlags.strict)
}

// scan runs the scanner with a spinner when stderr is an interactive terminal.
func scan(ctx context.Context, cmd *cobra.Command, settings *runSettings) (flc.RunSummary, error) {
	sc, err := settings.newScanner()
	if err != nil {
		return flc.RunSummary{}, err
	}

	if settings.showProgress(cmd) {
		progress := tui.StartProgress(cmd.ErrOrStderr(), "Checking license headers")
		sc = sc.WithOnRecord(func(flc.FileRecord) { progress.Add(1) })
		defer progress.Stop()
	}

	settings.logger.Verbose("Scanning %s", settings.root)
	summary, err := sc.Scan(ctx, settings.root)
	if err != nil {
		if scanner.IsCancelled(err) {
			return flc.RunSummary{}, fmt.Errorf("check interrupted: %w", err)
		}
		return flc.RunSummary{}, fmt.Errorf("check failed: %w", err)
	}
	return summary, nil
}

// checkResult maps a summary to the command's error.
func checkResult(s flc.RunSummary, strict bool) error {
	if s.HasFailures() {
		return fmt.Errorf("%w: %d %s missing the license header", flc.ErrChecksFailed, s.Failed, plural(s.Failed, "file", "files"))
	}
	if strict && (s.Fuzzy > 0 || s.Errored > 0) {
		return fmt.Errorf("%w: %d malformed, %d unreadable (--strict)", flc.ErrChecksFailed, s.Fuzzy, s.Errored)
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
