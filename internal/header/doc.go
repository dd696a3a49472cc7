// Package header locates where a license header belongs in a file and decides
// whether the expected header is there.
//
// The header is expected right after an optional preamble: a UTF-8 byte order
// mark, then either a shebang line or an XML declaration. Matching compares the
// formatted header against the bytes at that offset. An exact byte match passes;
// otherwise a position-wise similarity score separates a stale or edited header
// (fuzzy, needs review) from a missing one (absent, safe to insert).
//
// Every function in this package is total: none of them panics on any input.
package header
