//go:build windows

package fileutil

import "golang.org/x/sys/windows"

func access(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return err
	}
	if attrs&windows.FILE_ATTRIBUTE_READONLY != 0 && attrs&windows.FILE_ATTRIBUTE_DIRECTORY == 0 {
		return windows.ERROR_ACCESS_DENIED
	}
	return nil
}
