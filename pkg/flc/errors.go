package flc

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	action := fixer.Fix(path)
//	if errors.Is(action.Err, flc.ErrReadOnly) {
//	    // Surface the permission problem to the user
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyHeader indicates the expected license header is empty after trimming.
	ErrEmptyHeader = errors.New("license header is empty")

	// ErrInvalidThreshold indicates a similarity threshold outside 0..100.
	ErrInvalidThreshold = errors.New("similarity threshold must be between 0 and 100")

	// ErrHeaderTooLong indicates the formatted header cannot fit in the scan read window.
	ErrHeaderTooLong = errors.New("formatted header exceeds max_header_bytes")

	// ErrMalformedHeader indicates a header-like region that does not match exactly.
	// Such files are never rewritten automatically.
	ErrMalformedHeader = errors.New("malformed header, manual review required")

	// ErrReadOnly indicates the target file cannot be written.
	ErrReadOnly = errors.New("file is read-only")

	// ErrWriteFailed indicates the atomic write sequence failed before commit.
	ErrWriteFailed = errors.New("atomic write failed")

	// ErrChecksumMismatch indicates the temp file does not hold the bytes written to it.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrChecksFailed indicates a scan found files missing the header.
	ErrChecksFailed = errors.New("license check failed")

	// ErrFixesFailed indicates at least one file could not be fixed.
	ErrFixesFailed = errors.New("some files could not be fixed")

	// ErrApprovalDenied indicates the user declined the fix.
	ErrApprovalDenied = errors.New("approval denied")
)

// IsConfigError reports whether err is a configuration-level failure.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrEmptyHeader) ||
		errors.Is(err, ErrInvalidThreshold) ||
		errors.Is(err, ErrHeaderTooLong)
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrChecksFailed):
		return ExitCheckFailed
	case IsConfigError(err):
		return ExitConfigError
	case errors.Is(err, ErrFixesFailed):
		return ExitFixFailed
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "accepts ") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "invalid argument") ||
		strings.Contains(errStr, "if any flags in the group") {
		return ExitUsageError
	}

	return ExitGeneralError
}
