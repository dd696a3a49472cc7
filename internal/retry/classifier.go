package retry

import (
	"context"
	"errors"
	"io/fs"

	"github.com/vvka-141/flc/pkg/flc"
)

// FSErrorClassifier implements flc.ErrorClassifier for filesystem operations.
//
// Only conditions that clear on their own are transient: interrupted syscalls,
// a busy target, and on Windows a sharing or lock violation held by another
// process. Missing files, permission errors, and a full disk are fatal.
type FSErrorClassifier struct{}

// NewFSErrorClassifier creates a new filesystem error classifier.
func NewFSErrorClassifier() *FSErrorClassifier {
	return &FSErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *FSErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return isTransientErrno(err)
}

var _ flc.ErrorClassifier = (*FSErrorClassifier)(nil)
