//go:build !windows

package fileutil

import (
	"io/fs"
	"os"
	"syscall"
)

func replaceFile(from, to string) error {
	return os.Rename(from, to)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}

// preserveOwner is best effort; only root may give a file away.
func preserveOwner(f *os.File, info fs.FileInfo) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	_ = f.Chown(int(st.Uid), int(st.Gid))
}
