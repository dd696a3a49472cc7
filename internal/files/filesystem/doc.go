// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines the read operations the scanner and walker need, enabling
// testability through an in-memory implementation while keeping bounded reads
// cheap on the OS filesystem.
//
// Key interfaces:
//   - FileSystemProvider: directory listing, bounded prefix reads, full reads, stat
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
