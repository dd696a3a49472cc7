package fileutil

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/vvka-141/flc/pkg/flc"
)

// CheckWritable returns an error wrapping flc.ErrReadOnly when target cannot be
// replaced: its permission bits deny writing, or the caller lacks write access
// to the file or its directory.
func CheckWritable(target string, info fs.FileInfo) error {
	if info.Mode().Perm()&0o222 == 0 {
		return fmt.Errorf("%w: %s", flc.ErrReadOnly, target)
	}
	if err := access(target); err != nil {
		return fmt.Errorf("%w: %s: %w", flc.ErrReadOnly, target, err)
	}
	if err := access(filepath.Dir(target)); err != nil {
		return fmt.Errorf("%w: directory of %s: %w", flc.ErrReadOnly, target, err)
	}
	return nil
}
