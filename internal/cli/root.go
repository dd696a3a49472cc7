package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/flc/internal/report"
)

var rootCmd = &cobra.Command{
	Use:   "flc [path]",
	Short: "Check and add license headers in source files",
	Long: `flc verifies that every source file under a directory starts with the
project's license header, and can add the header where it is missing.

Files are walked in parallel, binary and non-UTF-8 files are skipped, and
shebang lines and XML declarations stay on top. A header that is close to
the expected text but not identical is reported as malformed and never
rewritten automatically.

Running flc without a subcommand is the same as 'flc check'.

Configuration is read from .license-checker.toml, .flc.toml, flc.toml,
.flc.yaml or .flc.yml in the scanned directory, then FLC_* environment
variables (optionally from .env), then flags.

Exit Codes:
  0  - Success
  1  - Files are missing the header, or general error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or license header
  11 - At least one file could not be fixed
  12 - User declined the fix`,
	Args:          OptionalPath,
	RunE:          runCheck,
	SilenceUsage:  true,
	SilenceErrors: false,
}

type globalFlagValues struct {
	configPath  string
	licenseFile string
	header      string
	jobs        int
	maxBytes    int
	threshold   int
	output      string
	noColor     bool
	quiet       bool
	verbose     bool
}

var globalFlags globalFlagValues

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&globalFlags.configPath, "config", "c", "",
		"Config file (default: discovered in the scanned directory)")
	pf.StringVarP(&globalFlags.licenseFile, "license", "l", "",
		"File holding the license header text")
	pf.StringVar(&globalFlags.header, "header", "",
		"License header text (mutually exclusive with --license)")
	pf.IntVarP(&globalFlags.jobs, "jobs", "j", 0,
		"Parallel workers (default: number of CPUs)")
	pf.IntVar(&globalFlags.maxBytes, "max-bytes", 0,
		"Bytes read from the start of each file when checking; files whose header runs past it are read whole (default 8192)")
	pf.IntVar(&globalFlags.threshold, "threshold", 0,
		"Similarity percentage at or above which a mismatch is reported as malformed (default 70)")
	pf.StringVarP(&globalFlags.output, "output", "o", string(report.FormatText),
		"Output format: text, json, github")
	pf.BoolVar(&globalFlags.noColor, "no-color", false, "Disable colored output")
	pf.BoolVarP(&globalFlags.quiet, "quiet", "q", false, "Only print the report and errors")
	pf.BoolVarP(&globalFlags.verbose, "verbose", "v", false, "Enable verbose output for all commands")

	rootCmd.MarkFlagsMutuallyExclusive("license", "header")
	rootCmd.MarkFlagsMutuallyExclusive("quiet", "verbose")
	_ = rootCmd.RegisterFlagCompletionFunc("output", completeOutputFormats)
	_ = rootCmd.MarkPersistentFlagFilename("license")
	_ = rootCmd.MarkPersistentFlagFilename("config", "toml", "yaml", "yml")

	rootCmd.Flags().BoolVar(&checkFlags.strict, "strict", false,
		"Also fail on malformed headers and unreadable files (same as 'flc check --strict')")
}
