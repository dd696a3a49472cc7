//go:build !windows

package fileutil

import "golang.org/x/sys/unix"

func access(path string) error {
	return unix.Access(path, unix.W_OK)
}
