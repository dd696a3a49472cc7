//go:build windows

package retry

import (
	"errors"

	"golang.org/x/sys/windows"
)

func isTransientErrno(err error) bool {
	var errno windows.Errno
	if !errors.As(err, &errno) {
		return false
	}
	switch errno {
	case windows.ERROR_SHARING_VIOLATION, windows.ERROR_LOCK_VIOLATION, windows.ERROR_ACCESS_DENIED:
		// Access denied is reported while a scanner or indexer holds the target.
		return true
	}
	return false
}
