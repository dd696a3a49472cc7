package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vvka-141/flc/pkg/flc"
)

// Format selects a renderer.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatGitHub Format = "github"
)

// Formats lists the accepted --output values.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatGitHub)}
}

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatGitHub:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: unknown output format %q (want one of %s)",
		flc.ErrInvalidConfig, s, strings.Join(Formats(), ", "))
}

// Options controls rendering.
type Options struct {
	Format Format

	// Color enables ANSI styling in the text format.
	Color bool

	// Root is the scan root. Paths under it are shown relative to it.
	Root string
}

func (o Options) rel(path string) string {
	if o.Root == "" {
		return filepath.ToSlash(path)
	}
	r, err := filepath.Rel(o.Root, path)
	if err != nil || strings.HasPrefix(r, "..") {
		return filepath.ToSlash(path)
	}
	if r == "." {
		return filepath.ToSlash(filepath.Base(path))
	}
	return filepath.ToSlash(r)
}
