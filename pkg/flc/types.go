package flc

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Header is the license text every compliant file must carry.
// It is immutable once constructed and safe to share across goroutines.
type Header struct {
	text  string
	lines []string
}

// NewHeader normalizes text into a Header.
// Line endings are normalized to LF and trailing line breaks are dropped.
// Returns ErrEmptyHeader when nothing but whitespace remains.
func NewHeader(text string) (Header, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return Header{}, ErrEmptyHeader
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return Header{
		text:  strings.Join(lines, "\n"),
		lines: lines,
	}, nil
}

// Text returns the normalized header text.
func (h Header) Text() string {
	return h.text
}

// Lines returns a copy of the header lines.
func (h Header) Lines() []string {
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// IsZero reports whether h was never initialized through NewHeader.
func (h Header) IsZero() bool {
	return h.text == ""
}

// CommentStyle describes how header lines are wrapped for one file type.
// An empty Suffix means line comments.
type CommentStyle struct {
	Prefix string `json:"prefix" toml:"prefix" yaml:"prefix"`
	Suffix string `json:"suffix,omitempty" toml:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// Validate rejects styles that cannot round-trip through insertion: an empty
// prefix, line breaks in either marker, or a prefix that would itself read
// as a shebang or XML declaration.
func (s CommentStyle) Validate() error {
	switch {
	case s.Prefix == "":
		return fmt.Errorf("comment prefix is empty: %w", ErrInvalidConfig)
	case strings.ContainsAny(s.Prefix+s.Suffix, "\r\n"):
		return fmt.Errorf("comment style %q contains a line break: %w", s.String(), ErrInvalidConfig)
	case strings.HasPrefix(s.Prefix, "#!"), strings.HasPrefix(s.Prefix, "<?xml"), strings.HasPrefix(s.Prefix, "\xef\xbb\xbf"):
		return fmt.Errorf("comment prefix %q collides with a file preamble: %w", s.Prefix, ErrInvalidConfig)
	}
	return nil
}

func (s CommentStyle) String() string {
	if s.Suffix == "" {
		return s.Prefix
	}
	return s.Prefix + " " + s.Suffix
}

// StyleMap maps a normalized extension (lowercase, no leading dot) or a
// lowercase base name such as "dockerfile" to a CommentStyle.
type StyleMap map[string]CommentStyle

// NormalizeExtension lowercases ext and strips a leading dot.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Lookup resolves the style for path. The lowercase base name wins over the
// extension so extensionless files like Makefile can be configured.
func (m StyleMap) Lookup(path string) (CommentStyle, bool) {
	base := strings.ToLower(filepath.Base(path))
	if style, ok := m[base]; ok {
		return style, true
	}
	ext := NormalizeExtension(filepath.Ext(base))
	if ext == "" {
		return CommentStyle{}, false
	}
	style, ok := m[ext]
	return style, ok
}

// Keys returns the configured names in sorted order.
func (m StyleMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MatchKind classifies how a file's leading content relates to the expected header.
type MatchKind int

const (
	// MatchAbsent means no header-like region was found at the preamble end.
	MatchAbsent MatchKind = iota
	// MatchExact means the formatted header is present byte for byte.
	MatchExact
	// MatchFuzzy means a similar but not identical header is present.
	MatchFuzzy
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "absent"
	}
}

// MatchOutcome is the result of matching one buffer against the header.
// Similarity is only meaningful for MatchFuzzy.
type MatchOutcome struct {
	Kind       MatchKind
	Similarity int
}

// Exact returns an exact outcome.
func Exact() MatchOutcome { return MatchOutcome{Kind: MatchExact, Similarity: 100} }

// Fuzzy returns a fuzzy outcome with the given score.
func Fuzzy(score int) MatchOutcome { return MatchOutcome{Kind: MatchFuzzy, Similarity: score} }

// Absent returns an absent outcome.
func Absent() MatchOutcome { return MatchOutcome{Kind: MatchAbsent} }

func (o MatchOutcome) String() string {
	if o.Kind == MatchFuzzy {
		return fmt.Sprintf("fuzzy(%d)", o.Similarity)
	}
	return o.Kind.String()
}

// SkipReason explains why a file was excluded from matching or fixing.
// The zero value SkipNone means the file was not skipped.
type SkipReason string

const (
	SkipNone                SkipReason = ""
	SkipBinary              SkipReason = "binary"
	SkipEmpty               SkipReason = "empty"
	SkipTooLarge            SkipReason = "too_large"
	SkipUnsupportedEncoding SkipReason = "unsupported_encoding"
	SkipNoCommentStyle      SkipReason = "no_comment_style"
	SkipIgnored             SkipReason = "ignored"
)

// AllSkipReasons lists every non-empty reason in display order.
var AllSkipReasons = []SkipReason{
	SkipBinary,
	SkipEmpty,
	SkipTooLarge,
	SkipUnsupportedEncoding,
	SkipNoCommentStyle,
	SkipIgnored,
}

// Skipped reports whether r is an actual skip reason.
func (r SkipReason) Skipped() bool {
	return r != SkipNone
}

// Description returns a human readable explanation of r.
func (r SkipReason) Description() string {
	switch r {
	case SkipBinary:
		return "binary content"
	case SkipEmpty:
		return "empty file"
	case SkipTooLarge:
		return "exceeds maximum file size"
	case SkipUnsupportedEncoding:
		return "not valid UTF-8"
	case SkipNoCommentStyle:
		return "no comment style for file type"
	case SkipIgnored:
		return "excluded by ignore rules"
	case SkipNone:
		return ""
	default:
		return string(r)
	}
}

// FixState is the terminal state of a single fix attempt.
type FixState int

const (
	FixFailed FixState = iota
	FixFixed
	FixAlreadyHasHeader
	FixSkipped
	FixWouldFix
)

func (s FixState) String() string {
	switch s {
	case FixFixed:
		return "fixed"
	case FixAlreadyHasHeader:
		return "already_has_header"
	case FixSkipped:
		return "skipped"
	case FixWouldFix:
		return "would_fix"
	default:
		return "failed"
	}
}

// FixAction is the outcome of fixing one path.
type FixAction struct {
	State      FixState
	Skip       SkipReason
	Similarity int
	Err        error
}

func (a FixAction) String() string {
	switch a.State {
	case FixSkipped:
		return fmt.Sprintf("skipped(%s)", a.Skip)
	case FixFailed:
		if a.Similarity > 0 {
			return fmt.Sprintf("failed(%v, similarity %d%%)", a.Err, a.Similarity)
		}
		return fmt.Sprintf("failed(%v)", a.Err)
	default:
		return a.State.String()
	}
}

// FileRecord is the immutable per-path result produced by a scan or fix.
// Exactly one of Outcome, Skip, or Err carries the verdict; Action is set in fix mode.
type FileRecord struct {
	Path    string
	Outcome MatchOutcome
	Skip    SkipReason
	Err     error
	Action  *FixAction
}

// Passed reports whether the record carries an exact header.
func (r FileRecord) Passed() bool {
	return r.Err == nil && !r.Skip.Skipped() && r.Outcome.Kind == MatchExact
}

// RunSummary aggregates the records of one scan. Read-only once built.
type RunSummary struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Fuzzy   int
	Errored int

	// Failing, FuzzyMatches, and Errors are sorted by path.
	Failing      []FileRecord
	FuzzyMatches []FileRecord
	Errors       []FileRecord

	SkipCounts map[SkipReason]int
	Elapsed    time.Duration
}

// HasFailures reports whether any file is missing its header.
func (s RunSummary) HasFailures() bool {
	return s.Failed > 0
}

// NeedsAttention reports whether anything other than a clean pass or skip was found.
func (s RunSummary) NeedsAttention() bool {
	return s.Failed > 0 || s.Fuzzy > 0 || s.Errored > 0
}

// FixSummary aggregates the actions of one fix run.
type FixSummary struct {
	Total            int
	Fixed            int
	AlreadyHasHeader int
	Skipped          int
	Failed           int
	WouldFix         int

	// Results holds one record per attempted path, sorted by path.
	Results []FileRecord
	Elapsed time.Duration
}

// Add folds one action into the summary counters.
func (s *FixSummary) Add(path string, action FixAction) {
	s.Total++
	switch action.State {
	case FixFixed:
		s.Fixed++
	case FixAlreadyHasHeader:
		s.AlreadyHasHeader++
	case FixSkipped:
		s.Skipped++
	case FixWouldFix:
		s.WouldFix++
	default:
		s.Failed++
	}
	a := action
	s.Results = append(s.Results, FileRecord{Path: path, Skip: action.Skip, Err: action.Err, Action: &a})
}

// SortResults orders Results by path.
func (s *FixSummary) SortResults() {
	sort.Slice(s.Results, func(i, j int) bool {
		return s.Results[i].Path < s.Results[j].Path
	})
}
