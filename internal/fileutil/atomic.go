package fileutil

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/flc/internal/checksum"
	"github.com/vvka-141/flc/internal/retry"
	"github.com/vvka-141/flc/pkg/flc"
)

// TempMarker appears in the name of every temporary file a Writer creates.
const TempMarker = ".flc-"

// Writer performs verified atomic replacements.
// Writer is safe for concurrent use on distinct targets.
type Writer struct {
	calc     checksum.Calculator
	executor *retry.Executor
	logger   flc.Logger
	verify   bool

	// Test hooks. A non-nil error aborts the write at that point.
	beforeRename func(tmp, target string) error
	afterRename  func(target string) error
}

// NewWriter creates a Writer. Panics if any dependency is nil.
func NewWriter(calc checksum.Calculator, executor *retry.Executor, logger flc.Logger) *Writer {
	if calc == nil {
		panic("calc cannot be nil")
	}
	if executor == nil {
		panic("executor cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Writer{calc: calc, executor: executor, logger: logger, verify: true}
}

// WithVerify returns a new Writer that does or does not re-read the temporary
// file to compare checksums. The receiver is unchanged.
func (w *Writer) WithVerify(verify bool) *Writer {
	clone := *w
	clone.verify = verify
	return &clone
}

// NewDefaultWriter creates a Writer with xxHash verification and a short
// rename retry budget.
func NewDefaultWriter(logger flc.Logger) *Writer {
	executor := retry.NewExecutor(retry.NewFSErrorClassifier(), retry.NewExponentialBackoff(5))
	return NewWriter(checksum.New(), executor, logger)
}

// TempName returns a fresh temporary file name for target, in target's directory.
func TempName(target string) string {
	dir, base := filepath.Split(target)
	return filepath.Join(dir, "."+base+TempMarker+uuid.NewString()+".tmp")
}

// IsTempName reports whether name looks like a Writer temporary file.
func IsTempName(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, ".") && strings.Contains(base, TempMarker) && strings.HasSuffix(base, ".tmp")
}

// WriteAtomic replaces target with content. The replacement keeps info's
// permission bits and, where the platform allows, its owner. Every failure
// wraps flc.ErrWriteFailed and leaves target untouched.
func (w *Writer) WriteAtomic(ctx context.Context, target string, content []byte, info fs.FileInfo) (err error) {
	tmp := TempName(target)
	defer func() {
		if err != nil {
			if rmErr := os.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
				w.logger.Verbose("failed to remove temporary file %s: %v", tmp, rmErr)
			}
			err = fmt.Errorf("%w: %s: %w", flc.ErrWriteFailed, target, err)
		}
	}()

	if err := w.writeTemp(tmp, content, info); err != nil {
		return err
	}

	if w.verify {
		if err := w.verifyTemp(tmp, content); err != nil {
			return err
		}
	}

	if w.beforeRename != nil {
		if err := w.beforeRename(tmp, target); err != nil {
			return err
		}
	}

	err = w.executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		w.logger.Verbose("rename %s busy (attempt %d): %v; retrying in %v", target, attempt+1, err, delay)
	}).Execute(ctx, func(context.Context) error {
		return replaceFile(tmp, target)
	})
	if err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	if w.afterRename != nil {
		if err := w.afterRename(target); err != nil {
			return err
		}
	}

	if err := syncDir(filepath.Dir(target)); err != nil {
		// The rename already happened; the new contents are visible.
		w.logger.Verbose("directory sync failed for %s: %v", target, err)
	}
	return nil
}

func (w *Writer) verifyTemp(tmp string, content []byte) error {
	got, err := w.calc.SumFile(tmp)
	if err != nil {
		return err
	}
	if want := w.calc.Sum(content); got != want {
		return fmt.Errorf("%w: wrote %s, read back %s", flc.ErrChecksumMismatch, checksum.Hex(want), checksum.Hex(got))
	}
	return nil
}

func (w *Writer) writeTemp(tmp string, content []byte, info fs.FileInfo) error {
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temporary file: %w", err)
	}
	if info != nil {
		// chown clears setuid and setgid, so it must run before chmod.
		preserveOwner(f, info)
		if err := f.Chmod(preservedMode(info.Mode())); err != nil {
			f.Close()
			return fmt.Errorf("chmod temporary file: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temporary file: %w", err)
	}
	return nil
}

// preservedMode keeps the permission bits plus setuid, setgid and sticky.
func preservedMode(m fs.FileMode) fs.FileMode {
	return m & (fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky)
}
