package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// DirEntry is an alias for fs.DirEntry from the standard library.
type DirEntry = fs.DirEntry

// FileSystemProvider is the read side of a filesystem.
// Implementations must be safe for concurrent use.
type FileSystemProvider interface {
	// ReadDir returns the entries of the directory at path, sorted by name.
	ReadDir(path string) ([]DirEntry, error)

	// ReadPrefix reads at most limit bytes from the start of the file at path.
	// truncated reports whether the file holds more than limit bytes.
	ReadPrefix(path string, limit int) (data []byte, truncated bool, err error)

	// ReadFile reads the whole file at path.
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}
