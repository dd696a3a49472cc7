// Package report renders scan and fix summaries for people and machines.
//
// Three formats are supported: text (styled headline plus a table of the
// files that need attention), json (a stable object for tooling), and github
// (GitHub Actions workflow commands that annotate the offending files).
// Paths are shown relative to Options.Root when possible.
package report
