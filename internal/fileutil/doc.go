// Package fileutil replaces file contents atomically.
//
// A Writer never modifies a target in place. It writes the new bytes to a
// uniquely named temporary file in the target's directory, flushes it to
// stable storage, verifies the bytes on disk against a checksum, and renames
// it over the target. A reader observes either the old contents or the new
// contents, never a mix, and a failure at any step leaves the target intact
// and removes the temporary file.
package fileutil
