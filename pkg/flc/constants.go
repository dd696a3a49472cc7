package flc

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: Check failed or general error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // All checked files carry the header
	ExitCheckFailed    = 1  // Files are missing the header
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration or header
	ExitFixFailed      = 11 // At least one file could not be fixed
	ExitApprovalDenied = 12 // User declined the fix
)

const (
	// DefaultMaxHeaderBytes is how much of each file a scan reads.
	DefaultMaxHeaderBytes = 8192

	// MinMaxHeaderBytes is the smallest accepted scan read window.
	MinMaxHeaderBytes = 256

	// DefaultMaxFileSize is the fix-mode ceiling above which files are skipped as too large.
	DefaultMaxFileSize int64 = 10 << 20

	// DefaultSimilarityThreshold is the score at or above which a mismatch is reported as fuzzy.
	DefaultSimilarityThreshold = 70

	// DefaultConfigFile is the config file name looked up in the scan root.
	DefaultConfigFile = ".license-checker.toml"

	// IgnoreFileName is the tool-specific ignore file honored next to .gitignore.
	IgnoreFileName = ".flcignore"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "FLC_"
)
