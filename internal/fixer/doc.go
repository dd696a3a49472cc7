// Package fixer inserts the license header into files that lack it.
//
// Each file goes through the same gates as a scan (size, content class, comment
// style) and is then matched against the header. Files that already carry the
// exact header are left alone, files whose header is close but not exact are
// refused for manual review, and everything else is rewritten through
// fileutil.Writer so a failure never leaves a partially written file behind.
//
// A fix is idempotent: running it on its own output reports
// flc.FixAlreadyHasHeader and performs no write.
package fixer
