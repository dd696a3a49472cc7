package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vvka-141/flc/internal/tui"
	"github.com/vvka-141/flc/pkg/flc"
)

func renderText(w io.Writer, s flc.RunSummary, opts Options) error {
	p := tui.NewPalette(w, opts.Color)
	var b strings.Builder

	rows := make([][]string, 0, len(s.Failing)+len(s.FuzzyMatches)+len(s.Errors))
	for _, r := range s.Failing {
		rows = append(rows, []string{p.Error.Render("missing"), opts.rel(r.Path), "no license header"})
	}
	for _, r := range s.FuzzyMatches {
		rows = append(rows, []string{
			p.Warning.Render("malformed"),
			opts.rel(r.Path),
			fmt.Sprintf("%d%% similar, review manually", r.Outcome.Similarity),
		})
	}
	for _, r := range s.Errors {
		rows = append(rows, []string{p.Error.Render("error"), opts.rel(r.Path), errText(r.Err)})
	}
	if t := renderTable([]string{"Status", "File", "Detail"}, rows, nil); t != "" {
		b.WriteString(t)
		b.WriteString("\n\n")
	}

	checked := s.Total - s.Skipped
	switch {
	case s.Total == 0:
		b.WriteString(p.Muted.Render("No files found."))
	case !s.NeedsAttention():
		b.WriteString(p.Success.Render(fmt.Sprintf("%s All %d checked %s carry the license header",
			tui.SymbolCheck, checked, plural(checked, "file", "files"))))
	default:
		b.WriteString(p.Error.Render(fmt.Sprintf("%s %d of %d checked %s need attention",
			tui.SymbolCross, s.Failed+s.Fuzzy+s.Errored, checked, plural(checked, "file", "files"))))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "  %s %d passed, %d missing, %d malformed, %d errors",
		tui.SymbolBullet, s.Passed, s.Failed, s.Fuzzy, s.Errored)
	if checked > 0 {
		fmt.Fprintf(&b, " (%.1f%% pass rate)", 100*float64(s.Passed)/float64(checked))
	}
	b.WriteString("\n")

	if s.Skipped > 0 {
		fmt.Fprintf(&b, "  %s %d skipped: %s\n", tui.SymbolBullet, s.Skipped, skipBreakdown(s.SkipCounts))
	}
	b.WriteString(p.Muted.Render(fmt.Sprintf("  %s in %s", tui.SymbolBullet, roundElapsed(s.Elapsed))))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func renderFixText(w io.Writer, s flc.FixSummary, dryRun bool, opts Options) error {
	p := tui.NewPalette(w, opts.Color)
	var b strings.Builder

	var rows [][]string
	for _, r := range s.Results {
		a := r.Action
		if a == nil {
			continue
		}
		switch a.State {
		case flc.FixFailed:
			rows = append(rows, []string{p.Error.Render("failed"), opts.rel(r.Path), fixFailureText(*a)})
		case flc.FixWouldFix:
			rows = append(rows, []string{p.Accent.Render("would fix"), opts.rel(r.Path), "header would be added"})
		}
	}
	if t := renderTable([]string{"Status", "File", "Detail"}, rows, nil); t != "" {
		b.WriteString(t)
		b.WriteString("\n\n")
	}

	switch {
	case s.Failed > 0:
		b.WriteString(p.Error.Render(fmt.Sprintf("%s %d %s could not be fixed",
			tui.SymbolCross, s.Failed, plural(s.Failed, "file", "files"))))
	case dryRun:
		b.WriteString(p.Accent.Render(fmt.Sprintf("%s Dry run: %d %s would be fixed, nothing was written",
			tui.SymbolBullet, s.WouldFix, plural(s.WouldFix, "file", "files"))))
	case s.Fixed == 0:
		b.WriteString(p.Success.Render(fmt.Sprintf("%s Nothing to fix", tui.SymbolCheck)))
	default:
		b.WriteString(p.Success.Render(fmt.Sprintf("%s Added the license header to %d %s",
			tui.SymbolCheck, s.Fixed, plural(s.Fixed, "file", "files"))))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "  %s %d fixed, %d already had the header, %d skipped, %d failed",
		tui.SymbolBullet, s.Fixed, s.AlreadyHasHeader, s.Skipped, s.Failed)
	if dryRun {
		fmt.Fprintf(&b, ", %d would fix", s.WouldFix)
	}
	b.WriteString("\n")
	b.WriteString(p.Muted.Render(fmt.Sprintf("  %s in %s", tui.SymbolBullet, roundElapsed(s.Elapsed))))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func skipBreakdown(counts map[flc.SkipReason]int) string {
	parts := make([]string, 0, len(counts))
	for _, reason := range flc.AllSkipReasons {
		if n := counts[reason]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, reason.Description()))
		}
	}
	return strings.Join(parts, ", ")
}

func fixFailureText(a flc.FixAction) string {
	if a.Similarity > 0 {
		return fmt.Sprintf("%s (%d%% similar)", errText(a.Err), a.Similarity)
	}
	return errText(a.Err)
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

func roundElapsed(d time.Duration) time.Duration {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond)
	case d >= time.Millisecond:
		return d.Round(time.Millisecond)
	}
	return d
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
