// Package walker enumerates candidate files under a root directory.
//
// It owns the traversal policy: hidden entries, .gitignore and .flcignore files,
// and configured ignore patterns. Directories are read in parallel by a bounded
// worker pool and file paths are streamed to the caller over a channel, so
// evaluation can start before traversal finishes.
//
// Only regular files are emitted. Symbolic links, devices, pipes, and sockets
// are never followed or reported.
package walker
