package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/flc/internal/files/scanner"
	"github.com/vvka-141/flc/internal/report"
	"github.com/vvka-141/flc/internal/tui"
	"github.com/vvka-141/flc/internal/ui"
	"github.com/vvka-141/flc/pkg/flc"
)

var fixCmd = &cobra.Command{
	Use:   "fix [path]",
	Short: "Add the license header to files missing it",
	Long: `Fix checks the directory like 'flc check', then inserts the license header
into every file that has none. Files are rewritten atomically: the new
content goes to a temporary file next to the original, is verified, and
then renamed over it, so a file is never left half written.

Shebang lines and XML declarations stay first. Byte order marks and CRLF
line endings are preserved. Files with a malformed header are reported and
left untouched for manual review.

On an interactive terminal you are asked to confirm before anything is
written. Use --yes to skip the prompt. Non-interactive runs proceed
without asking. Run one fix per tree at a time; concurrent writers to the
same files are not supported.

Examples:
  flc fix --dry-run            # list what would change
  flc fix ./src --yes
  flc fix --header "Copyright (c) 2026 Example Corp"`,
	Args:              OptionalPath,
	RunE:              runFix,
	ValidArgsFunction: completeDirectories,
}

type fixFlagValues struct {
	dryRun bool
	yes    bool
}

var fixFlags fixFlagValues

func init() {
	rootCmd.AddCommand(fixCmd)

	fixCmd.Flags().BoolVar(&fixFlags.dryRun, "dry-run", false,
		"Report which files would be fixed without writing anything")
	fixCmd.Flags().BoolVarP(&fixFlags.yes, "yes", "y", false,
		"Skip the confirmation prompt")
}

func runFix(cmd *cobra.Command, args []string) error {
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

	// Malformed headers go through the fixer too, which refuses them and
	// reports them as failures.
	targets := scanner.FixTargets(summary)

	if len(summary.Failing) > 0 && !fixFlags.dryRun {
		approved, err := selectApprover(settings).RequestApproval(ctx, settings.root, len(summary.Failing))
		if err != nil {
			return fmt.Errorf("approval failed: %w", err)
		}
		if !approved {
			return flc.ErrApprovalDenied
		}
	}

	fx := settings.newFixer(fixFlags.dryRun)
	if settings.showProgress(cmd) && len(targets) > 0 {
		progress := tui.StartProgress(cmd.ErrOrStderr(), "Adding license headers")
		fx = fx.WithOnResult(func(string, flc.FixAction) { progress.Add(1) })
		defer progress.Stop()
	}
	result, err := fx.FixAll(ctx, targets)
	return finishFix(settings.out, result, summary.Errors, err, len(targets), fixFlags.dryRun, settings.reportOptions())
}

// finishFix adds the files the scan could not read to result as failures,
// renders it, and maps the outcome to an error. An interrupted run still
// renders what it completed.
func finishFix(w io.Writer, result flc.FixSummary, unreadable []flc.FileRecord, fixErr error, targets int, dryRun bool, opts report.Options) error {
	attempted := result.Total
	for _, r := range unreadable {
		result.Add(r.Path, flc.FixAction{State: flc.FixFailed, Err: r.Err})
	}
	result.SortResults()

	if err := report.RenderFix(w, result, dryRun, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if fixErr != nil {
		return fmt.Errorf("fix interrupted after %d of %d files: %w", attempted, targets, fixErr)
	}
	if result.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", flc.ErrFixesFailed, result.Failed, result.Total)
	}
	return nil
}

// selectApprover prompts only when a human can answer.
func selectApprover(settings *runSettings) flc.Approver {
	if fixFlags.yes || !tui.IsInteractive() {
		return ui.NewForcedApprover(globalFlags.verbose)
	}
	return ui.NewInteractiveApprover(globalFlags.verbose)
}
