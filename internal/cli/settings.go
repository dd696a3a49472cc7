package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/flc/internal/classify"
	"github.com/vvka-141/flc/internal/config"
	"github.com/vvka-141/flc/internal/files/scanner"
	"github.com/vvka-141/flc/internal/files/walker"
	"github.com/vvka-141/flc/internal/fileutil"
	"github.com/vvka-141/flc/internal/fixer"
	"github.com/vvka-141/flc/internal/header"
	"github.com/vvka-141/flc/internal/logging"
	"github.com/vvka-141/flc/internal/report"
	"github.com/vvka-141/flc/internal/tui"
	"github.com/vvka-141/flc/pkg/flc"
)

// runSettings is everything a check or fix run needs, resolved from config
// files, environment, and flags.
type runSettings struct {
	root   string
	cfg    *config.Config
	header flc.Header
	format report.Format
	color  bool
	out    io.Writer
	logger *logging.ConsoleLogger
}

// buildRunSettings resolves the configuration for root.
// Precedence: flags > FLC_* environment (.env included) > config file > defaults.
func buildRunSettings(cmd *cobra.Command, root string) (*runSettings, error) {
	format, err := report.ParseFormat(globalFlags.output)
	if err != nil {
		return nil, err
	}

	errOut := cmd.ErrOrStderr()
	logger := logging.New(errOut, logging.Options{
		Verbose: globalFlags.verbose,
		Quiet:   globalFlags.quiet,
		Color:   !globalFlags.noColor && tui.ColorEnabled(errOut),
	})

	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}

	if err := config.LoadDotEnv("."); err != nil {
		return nil, err
	}

	cfg, err := config.Load(root, globalFlags.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Source != "" {
		logger.Verbose("Using config %s", cfg.Source)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h, err := cfg.Header()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateHeader(h); err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	s := &runSettings{
		root:   root,
		cfg:    cfg,
		header: h,
		format: format,
		color:  !globalFlags.noColor && tui.ColorEnabled(out),
		out:    out,
		logger: logger,
	}
	logger.Verbose("Header: %d lines, threshold %d%%, %d workers, %d comment styles",
		len(h.Lines()), cfg.SimilarityThreshold, cfg.Jobs(), len(cfg.CommentStyles))
	return s, nil
}

// applyFlags overrides cfg with the flags the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("license") {
		cfg.LicenseFile = globalFlags.licenseFile
		cfg.LicenseHeader = ""
	}
	if flags.Changed("header") {
		cfg.LicenseHeader = globalFlags.header
	}
	if flags.Changed("jobs") {
		cfg.ParallelJobs = globalFlags.jobs
	}
	if flags.Changed("max-bytes") {
		cfg.MaxHeaderBytes = globalFlags.maxBytes
	}
	if flags.Changed("threshold") {
		cfg.SimilarityThreshold = globalFlags.threshold
	}
}

func (s *runSettings) classifier() *classify.Classifier {
	return classify.New(classify.Options{
		SkipEmpty:   s.cfg.SkipEmptyFiles,
		MaxFileSize: s.cfg.MaxFileSize,
	})
}

func (s *runSettings) matcher() *header.Matcher {
	return header.NewMatcher(s.header, s.cfg.SimilarityThreshold)
}

func (s *runSettings) walkOptions() walker.Options {
	ignoreFiles := []string{flc.IgnoreFileName}
	if s.cfg.FollowGitignore {
		ignoreFiles = walker.DefaultIgnoreFiles()
	}
	return walker.Options{
		Jobs:           s.cfg.Jobs(),
		IgnorePatterns: s.cfg.IgnorePatterns,
		IgnoreFiles:    ignoreFiles,
		IncludeHidden:  s.cfg.IncludeHidden,
		ReportIgnored:  s.cfg.CountIgnored,
	}
}

func (s *runSettings) newScanner() (*scanner.Scanner, error) {
	return scanner.NewScanner(s.classifier(), s.matcher(), scanner.Options{
		MaxHeaderBytes: s.cfg.MaxHeaderBytes,
		Jobs:           s.cfg.Jobs(),
		Styles:         s.cfg.CommentStyles,
		Walk:           s.walkOptions(),
	}, s.logger)
}

func (s *runSettings) newFixer(dryRun bool) *fixer.Fixer {
	writer := fileutil.NewDefaultWriter(s.logger).WithVerify(s.cfg.VerifyWrites)
	return fixer.New(s.classifier(), s.matcher(), writer, fixer.Options{
		DryRun: dryRun,
		Jobs:   s.cfg.Jobs(),
		Styles: s.cfg.CommentStyles,
	}, s.logger)
}

func (s *runSettings) reportOptions() report.Options {
	return report.Options{Format: s.format, Color: s.color, Root: s.root}
}

// showProgress reports whether a spinner may be drawn on stderr.
func (s *runSettings) showProgress(cmd *cobra.Command) bool {
	return s.format == report.FormatText &&
		!globalFlags.quiet &&
		cmd.ErrOrStderr() == os.Stderr &&
		tui.IsInteractive()
}
