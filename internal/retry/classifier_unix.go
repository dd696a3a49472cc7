//go:build !windows

package retry

import (
	"errors"

	"golang.org/x/sys/unix"
)

func isTransientErrno(err error) bool {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return false
	}
	switch errno {
	case unix.EINTR, unix.EAGAIN, unix.EBUSY, unix.ETXTBSY:
		return true
	}
	return false
}
