package walker

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/flc/pkg/flc"
)

// Rule is one compiled line of an ignore file, in gitignore syntax.
type Rule struct {
	pattern string
	base    string
	negate  bool
	dirOnly bool
	source  string
}

// String returns the rule as written, prefixed by its origin.
func (r Rule) String() string {
	return r.source
}

// ParseRule compiles one gitignore-style line. base is the slash-separated
// directory, relative to the walk root, that the rule is scoped to ("" for the
// root). ok is false for blank lines and comments.
func ParseRule(base, line string) (rule Rule, ok bool, err error) {
	line = strings.TrimRight(line, "\r")
	if !strings.HasSuffix(line, `\ `) {
		line = strings.TrimRight(line, " \t")
	}
	if line == "" || strings.HasPrefix(line, "#") {
		return Rule{}, false, nil
	}

	r := Rule{base: strings.Trim(base, "/"), source: line}
	if strings.HasPrefix(line, "!") {
		r.negate = true
		line = line[1:]
	} else if strings.HasPrefix(line, `\!`) || strings.HasPrefix(line, `\#`) {
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		r.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	if line == "" {
		return Rule{}, false, nil
	}

	// A slash anywhere but the end anchors the pattern to base; otherwise it
	// matches the name at any depth.
	if strings.Contains(line, "/") {
		line = strings.TrimPrefix(line, "/")
	} else {
		line = "**/" + line
	}
	if !doublestar.ValidatePattern(line) {
		return Rule{}, false, fmt.Errorf("invalid ignore pattern %q: %w", r.source, flc.ErrInvalidConfig)
	}
	r.pattern = line
	return r, true, nil
}

// ParseRules compiles every line read from r.
func ParseRules(base string, r io.Reader) ([]Rule, error) {
	var rules []Rule
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		rule, ok, err := ParseRule(base, sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if ok {
			rules = append(rules, rule)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

// match reports whether the rule applies to rel, a slash-separated path
// relative to the walk root.
func (r Rule) match(rel string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}
	if r.base != "" {
		if !strings.HasPrefix(rel, r.base+"/") {
			return false
		}
		rel = rel[len(r.base)+1:]
	}
	ok, err := doublestar.Match(r.pattern, rel)
	return err == nil && ok
}

// RuleSet is an immutable, ordered list of rules. The last matching rule wins,
// so a later negation re-includes a path excluded earlier.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet compiles root-level patterns such as the configured ignore_patterns.
func NewRuleSet(patterns []string) (*RuleSet, error) {
	rs := &RuleSet{}
	for _, p := range patterns {
		rule, ok, err := ParseRule("", p)
		if err != nil {
			return nil, err
		}
		if ok {
			rs.rules = append(rs.rules, rule)
		}
	}
	return rs, nil
}

// With returns a new RuleSet with more appended. The receiver is unchanged,
// so sibling directories never see each other's ignore files.
func (rs *RuleSet) With(more []Rule) *RuleSet {
	if len(more) == 0 {
		return rs
	}
	rules := make([]Rule, 0, len(rs.rules)+len(more))
	rules = append(rules, rs.rules...)
	rules = append(rules, more...)
	return &RuleSet{rules: rules}
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Ignored reports whether rel is excluded.
func (rs *RuleSet) Ignored(rel string, isDir bool) bool {
	rel = path.Clean(strings.TrimPrefix(rel, "./"))
	ignored := false
	for _, r := range rs.rules {
		if r.match(rel, isDir) {
			ignored = !r.negate
		}
	}
	return ignored
}
