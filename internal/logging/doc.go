// Package logging provides concrete implementations of the flc.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes prefixed diagnostics to stderr (or any writer) with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//
// Diagnostics never go to stdout, which is reserved for reports.
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
