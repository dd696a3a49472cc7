package report

import (
	"fmt"
	"io"

	"github.com/vvka-141/flc/pkg/flc"
)

// Render writes a scan summary in opts.Format.
func Render(w io.Writer, s flc.RunSummary, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return renderJSON(w, s, opts)
	case FormatGitHub:
		return renderGitHub(w, s, opts)
	case FormatText, "":
		return renderText(w, s, opts)
	}
	return fmt.Errorf("unknown output format %q", opts.Format)
}

// RenderFix writes a fix summary in opts.Format.
func RenderFix(w io.Writer, s flc.FixSummary, dryRun bool, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return renderFixJSON(w, s, dryRun, opts)
	case FormatGitHub:
		return renderFixGitHub(w, s, dryRun, opts)
	case FormatText, "":
		return renderFixText(w, s, dryRun, opts)
	}
	return fmt.Errorf("unknown output format %q", opts.Format)
}
