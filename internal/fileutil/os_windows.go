//go:build windows

package fileutil

import (
	"io/fs"
	"os"

	"golang.org/x/sys/windows"
)

func replaceFile(from, to string) error {
	src, err := windows.UTF16PtrFromString(from)
	if err != nil {
		return err
	}
	dst, err := windows.UTF16PtrFromString(to)
	if err != nil {
		return err
	}
	if err := windows.MoveFileEx(src, dst, windows.MOVEFILE_REPLACE_EXISTING|windows.MOVEFILE_WRITE_THROUGH); err != nil {
		return &os.LinkError{Op: "rename", Old: from, New: to, Err: err}
	}
	return nil
}

// Directory handles cannot be flushed on Windows; MOVEFILE_WRITE_THROUGH covers it.
func syncDir(string) error { return nil }

func preserveOwner(*os.File, fs.FileInfo) {}
