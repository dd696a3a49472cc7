package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/flc/pkg/flc"
)

// Workflow command escaping, see
// https://docs.github.com/actions/using-workflows/workflow-commands-for-github-actions
var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func workflowCommand(w io.Writer, level, file, title, msg string) error {
	var props []string
	if file != "" {
		props = append(props, "file="+propertyEscaper.Replace(file), "line=1")
	}
	if title != "" {
		props = append(props, "title="+propertyEscaper.Replace(title))
	}
	cmd := "::" + level
	if len(props) > 0 {
		cmd += " " + strings.Join(props, ",")
	}
	_, err := fmt.Fprintf(w, "%s::%s\n", cmd, dataEscaper.Replace(msg))
	return err
}

func renderGitHub(w io.Writer, s flc.RunSummary, opts Options) error {
	for _, r := range s.Failing {
		if err := workflowCommand(w, "error", opts.rel(r.Path), "Missing license header",
			"file does not start with the license header"); err != nil {
			return err
		}
	}
	for _, r := range s.FuzzyMatches {
		msg := fmt.Sprintf("license header is %d%% similar to the expected text, review manually", r.Outcome.Similarity)
		if err := workflowCommand(w, "warning", opts.rel(r.Path), "Malformed license header", msg); err != nil {
			return err
		}
	}
	for _, r := range s.Errors {
		if err := workflowCommand(w, "warning", opts.rel(r.Path), "License check error", errText(r.Err)); err != nil {
			return err
		}
	}

	level := "notice"
	if s.NeedsAttention() {
		level = "error"
	}
	msg := fmt.Sprintf("%d files: %d passed, %d missing, %d malformed, %d errors, %d skipped",
		s.Total, s.Passed, s.Failed, s.Fuzzy, s.Errored, s.Skipped)
	return workflowCommand(w, level, "", "License check", msg)
}

func renderFixGitHub(w io.Writer, s flc.FixSummary, dryRun bool, opts Options) error {
	for _, r := range s.Results {
		a := r.Action
		if a == nil {
			continue
		}
		switch a.State {
		case flc.FixFailed:
			if err := workflowCommand(w, "error", opts.rel(r.Path), "License fix failed", fixFailureText(*a)); err != nil {
				return err
			}
		case flc.FixWouldFix:
			if err := workflowCommand(w, "warning", opts.rel(r.Path), "Missing license header",
				"header would be added by flc fix"); err != nil {
				return err
			}
		}
	}

	level := "notice"
	if s.Failed > 0 {
		level = "error"
	}
	msg := fmt.Sprintf("%d files: %d fixed, %d already had the header, %d skipped, %d failed",
		s.Total, s.Fixed, s.AlreadyHasHeader, s.Skipped, s.Failed)
	if dryRun {
		msg += fmt.Sprintf(", %d would fix (dry run)", s.WouldFix)
	}
	return workflowCommand(w, level, "", "License fix", msg)
}
