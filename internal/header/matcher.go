package header

import (
	"bytes"
	"sync"

	"github.com/vvka-141/flc/pkg/flc"
)

type formatKey struct {
	style flc.CommentStyle
	eol   string
}

// Matcher matches file content against one expected header.
// Safe for concurrent use; formatted headers are cached per style and line ending.
type Matcher struct {
	header    flc.Header
	threshold int

	mu        sync.RWMutex
	formatted map[formatKey][]byte
}

// NewMatcher creates a Matcher. threshold is the minimum similarity reported as fuzzy;
// values outside 0..100 are clamped.
func NewMatcher(h flc.Header, threshold int) *Matcher {
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 100 {
		threshold = 100
	}
	return &Matcher{
		header:    h,
		threshold: threshold,
		formatted: make(map[formatKey][]byte),
	}
}

// Formatted returns the header rendered for style and eol. The returned slice
// is shared and must not be modified.
func (m *Matcher) Formatted(style flc.CommentStyle, eol string) []byte {
	key := formatKey{style: style, eol: eol}

	m.mu.RLock()
	b, ok := m.formatted[key]
	m.mu.RUnlock()
	if ok {
		return b
	}

	b = Format(m.header, style, eol)
	m.mu.Lock()
	if existing, ok := m.formatted[key]; ok {
		b = existing
	} else {
		m.formatted[key] = b
	}
	m.mu.Unlock()
	return b
}

// FormattedFor renders the header with the line ending used by content.
func (m *Matcher) FormattedFor(content []byte, style flc.CommentStyle) []byte {
	return m.Formatted(style, LineEnding(content))
}

// Match decides whether content carries the header in style.
//
// The formatted header is compared with the content at the preamble end. A byte
// for byte prefix match is exact. Otherwise the equal-length window (shorter if
// content ends first) is scored with Similarity; scores at or above the threshold
// are fuzzy, the rest absent.
func (m *Matcher) Match(content []byte, style flc.CommentStyle) flc.MatchOutcome {
	formatted := m.FormattedFor(content, style)
	offset := PreambleEnd(content)
	region := content[offset:]

	if bytes.HasPrefix(region, formatted) {
		return flc.Exact()
	}

	window := region
	if len(window) > len(formatted) {
		window = window[:len(formatted)]
	}
	score := Similarity(formatted, window)
	if score >= m.threshold {
		return flc.Fuzzy(score)
	}
	return flc.Absent()
}

// Span returns how many leading bytes of content Match needs to see the whole
// header region: the preamble plus the formatted header. A shebang or XML
// declaration that does not end within content spans all of it.
func (m *Matcher) Span(content []byte, style flc.CommentStyle) int {
	start := PreambleEnd(content)
	rest := bytes.TrimPrefix(content, utf8BOM)
	if start == len(content)-len(rest) && (bytes.HasPrefix(rest, shebang) || bytes.HasPrefix(rest, xmlDecl)) {
		start = len(content)
	}
	return start + len(m.FormattedFor(content, style))
}

// Insert places the header, formatted for content's line ending, at the preamble end.
func (m *Matcher) Insert(content []byte, style flc.CommentStyle) []byte {
	return Insert(content, m.FormattedFor(content, style))
}
