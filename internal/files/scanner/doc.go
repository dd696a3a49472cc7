// Package scanner checks every candidate file under a root for the license header.
//
// The scanner is responsible for:
//   - Streaming candidate paths from the walker into a fixed-size worker pool
//   - Reading a bounded prefix of each file and classifying it
//   - Resolving the comment style and matching the expected header
//   - Reducing per-file records into a flc.RunSummary
//
// Each file is evaluated independently, so workers share nothing but the
// read-only classifier, matcher, and style map. Records are folded on a single
// collector goroutine and sorted by path, which keeps summaries identical across
// runs on unchanged input regardless of scheduling.
//
// The scanner is designed to be filesystem-agnostic through the use of
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
package scanner
