// Package retry repeats filesystem operations that fail for transient reasons.
//
// Renaming a temporary file over its target can fail briefly when another
// process holds the target open (virus scanners and indexers on Windows, an
// interrupted syscall on Unix). The fixer wraps that step in an Executor so a
// momentary conflict does not turn into a failed fix.
//
// # Example Usage
//
//	executor := retry.NewExecutor(
//	    retry.NewFSErrorClassifier(),
//	    retry.NewExponentialBackoff(4),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return os.Rename(tmp, target)
//	})
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to create
// independent configurations per goroutine.
package retry
