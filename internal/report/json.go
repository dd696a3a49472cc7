package report

import (
	"encoding/json"
	"io"

	"github.com/vvka-141/flc/pkg/flc"
)

type jsonCounts struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Fuzzy   int `json:"fuzzy"`
	Errored int `json:"errored"`
	Skipped int `json:"skipped"`
}

type jsonFuzzy struct {
	Path       string `json:"path"`
	Similarity int    `json:"similarity"`
}

type jsonError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type jsonReport struct {
	Summary   jsonCounts     `json:"summary"`
	Failing   []string       `json:"failing"`
	Fuzzy     []jsonFuzzy    `json:"fuzzy"`
	Errors    []jsonError    `json:"errors"`
	Skipped   map[string]int `json:"skipped"`
	ElapsedMS int64          `json:"elapsed_ms"`
}

func renderJSON(w io.Writer, s flc.RunSummary, opts Options) error {
	out := jsonReport{
		Summary: jsonCounts{
			Total:   s.Total,
			Passed:  s.Passed,
			Failed:  s.Failed,
			Fuzzy:   s.Fuzzy,
			Errored: s.Errored,
			Skipped: s.Skipped,
		},
		Failing:   make([]string, 0, len(s.Failing)),
		Fuzzy:     make([]jsonFuzzy, 0, len(s.FuzzyMatches)),
		Errors:    make([]jsonError, 0, len(s.Errors)),
		Skipped:   make(map[string]int, len(s.SkipCounts)),
		ElapsedMS: s.Elapsed.Milliseconds(),
	}
	for _, r := range s.Failing {
		out.Failing = append(out.Failing, opts.rel(r.Path))
	}
	for _, r := range s.FuzzyMatches {
		out.Fuzzy = append(out.Fuzzy, jsonFuzzy{Path: opts.rel(r.Path), Similarity: r.Outcome.Similarity})
	}
	for _, r := range s.Errors {
		out.Errors = append(out.Errors, jsonError{Path: opts.rel(r.Path), Error: errText(r.Err)})
	}
	for reason, n := range s.SkipCounts {
		if n > 0 {
			out.Skipped[string(reason)] = n
		}
	}
	return encode(w, out)
}

type jsonFixCounts struct {
	Total            int  `json:"total"`
	Fixed            int  `json:"fixed"`
	AlreadyHasHeader int  `json:"already_has_header"`
	Skipped          int  `json:"skipped"`
	Failed           int  `json:"failed"`
	WouldFix         int  `json:"would_fix"`
	DryRun           bool `json:"dry_run"`
}

type jsonFixResult struct {
	Path       string `json:"path"`
	State      string `json:"state"`
	Reason     string `json:"reason,omitempty"`
	Similarity int    `json:"similarity,omitempty"`
	Error      string `json:"error,omitempty"`
}

type jsonFixReport struct {
	Summary   jsonFixCounts   `json:"summary"`
	Results   []jsonFixResult `json:"results"`
	ElapsedMS int64           `json:"elapsed_ms"`
}

func renderFixJSON(w io.Writer, s flc.FixSummary, dryRun bool, opts Options) error {
	out := jsonFixReport{
		Summary: jsonFixCounts{
			Total:            s.Total,
			Fixed:            s.Fixed,
			AlreadyHasHeader: s.AlreadyHasHeader,
			Skipped:          s.Skipped,
			Failed:           s.Failed,
			WouldFix:         s.WouldFix,
			DryRun:           dryRun,
		},
		Results:   make([]jsonFixResult, 0, len(s.Results)),
		ElapsedMS: s.Elapsed.Milliseconds(),
	}
	for _, r := range s.Results {
		if r.Action == nil {
			continue
		}
		res := jsonFixResult{
			Path:       opts.rel(r.Path),
			State:      r.Action.State.String(),
			Reason:     string(r.Action.Skip),
			Similarity: r.Action.Similarity,
		}
		if r.Action.Err != nil {
			res.Error = r.Action.Err.Error()
		}
		out.Results = append(out.Results, res)
	}
	return encode(w, out)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
