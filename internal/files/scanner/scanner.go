package scanner

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/flc/internal/classify"
	"github.com/vvka-141/flc/internal/files/filesystem"
	"github.com/vvka-141/flc/internal/files/walker"
	"github.com/vvka-141/flc/internal/header"
	"github.com/vvka-141/flc/pkg/flc"
)

// Options configures a Scanner.
type Options struct {
	// MaxHeaderBytes is how much of each file is read. Zero means flc.DefaultMaxHeaderBytes.
	MaxHeaderBytes int

	// Jobs is the worker pool size. Zero means runtime.NumCPU().
	Jobs int

	// Styles maps extensions to comment styles. Read-only during a scan.
	Styles flc.StyleMap

	// Walk configures traversal. Walk.Jobs defaults to Jobs.
	Walk walker.Options
}

// Scanner evaluates files under a root against the expected header.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
	walker     *walker.Walker
	classifier *classify.Classifier
	matcher    *header.Matcher
	opts       Options
	logger     flc.Logger
	onRecord   func(flc.FileRecord)
}

// NewScanner creates a scanner over the OS filesystem.
// Panics if classifier, matcher, or logger is nil.
func NewScanner(classifier *classify.Classifier, matcher *header.Matcher, opts Options, logger flc.Logger) (*Scanner, error) {
	return NewScannerWithFS(filesystem.NewOSFileSystem(), classifier, matcher, opts, logger)
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if any dependency is nil; returns an error for invalid ignore patterns.
func NewScannerWithFS(
	fsProvider filesystem.FileSystemProvider,
	classifier *classify.Classifier,
	matcher *header.Matcher,
	opts Options,
	logger flc.Logger,
) (*Scanner, error) {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if matcher == nil {
		panic("matcher cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if opts.MaxHeaderBytes <= 0 {
		opts.MaxHeaderBytes = flc.DefaultMaxHeaderBytes
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.Walk.Jobs <= 0 {
		opts.Walk.Jobs = opts.Jobs
	}

	w, err := walker.New(fsProvider, opts.Walk, logger)
	if err != nil {
		return nil, err
	}
	return &Scanner{
		fsProvider: fsProvider,
		walker:     w,
		classifier: classifier,
		matcher:    matcher,
		opts:       opts,
		logger:     logger,
	}, nil
}

// WithOnRecord returns a new Scanner that calls fn for every record as it is
// collected. fn runs on the collector goroutine only. The receiver is unchanged.
func (s *Scanner) WithOnRecord(fn func(flc.FileRecord)) *Scanner {
	clone := *s
	clone.onRecord = fn
	return &clone
}

// Scan evaluates every candidate under root and reduces the records into a summary.
// On cancellation the summary covers the files evaluated so far and the context
// error is returned alongside it.
func (s *Scanner) Scan(ctx context.Context, root string) (flc.RunSummary, error) {
	start := time.Now()
	records, err := s.Records(ctx, root)
	return Summarize(records, time.Since(start)), err
}

// Records evaluates every candidate under root and returns the records sorted by path.
func (s *Scanner) Records(ctx context.Context, root string) ([]flc.FileRecord, error) {
	g, gctx := errgroup.WithContext(ctx)
	entries := make(chan walker.Entry, s.opts.Jobs*4)
	results := make(chan flc.FileRecord, s.opts.Jobs*4)

	g.Go(func() error {
		defer close(entries)
		return s.walker.Walk(gctx, root, entries)
	})

	workers, wctx := errgroup.WithContext(gctx)
	for i := 0; i < s.opts.Jobs; i++ {
		workers.Go(func() error {
			for entry := range entries {
				if err := wctx.Err(); err != nil {
					return err
				}
				select {
				case results <- s.evaluate(entry):
				case <-wctx.Done():
					return wctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workers.Wait()
	})

	var records []flc.FileRecord
	for rec := range results {
		records = append(records, rec)
		if s.onRecord != nil {
			s.onRecord(rec)
		}
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	sortRecords(records)
	return records, err
}

func (s *Scanner) evaluate(entry walker.Entry) flc.FileRecord {
	rec := flc.FileRecord{Path: entry.Path}
	switch {
	case entry.Err != nil:
		rec.Err = entry.Err
		return rec
	case entry.Ignored:
		rec.Skip = flc.SkipIgnored
		return rec
	}

	prefix, truncated, err := s.fsProvider.ReadPrefix(entry.Path, s.opts.MaxHeaderBytes)
	if err != nil {
		s.logger.Verbose("read failed for %s: %v", entry.Path, err)
		rec.Err = err
		return rec
	}

	if reason := s.classifier.Classify(prefix, truncated); reason.Skipped() {
		rec.Skip = reason
		return rec
	}

	style, ok := s.opts.Styles.Lookup(entry.Path)
	if !ok {
		rec.Skip = flc.SkipNoCommentStyle
		return rec
	}

	rec.Outcome = s.matcher.Match(prefix, style)
	if truncated && rec.Outcome.Kind != flc.MatchExact && s.matcher.Span(prefix, style) > len(prefix) {
		// A long preamble pushed the header past the read window.
		full, err := s.fsProvider.ReadFile(entry.Path)
		if err != nil {
			s.logger.Verbose("read failed for %s: %v", entry.Path, err)
			rec.Err = err
			return rec
		}
		rec.Outcome = s.matcher.Match(full, style)
	}
	return rec
}

// Summarize folds records into a RunSummary. Lists are sorted by path.
func Summarize(records []flc.FileRecord, elapsed time.Duration) flc.RunSummary {
	summary := flc.RunSummary{
		Total:      len(records),
		SkipCounts: make(map[flc.SkipReason]int),
		Elapsed:    elapsed,
	}

	for _, rec := range records {
		switch {
		case rec.Err != nil:
			summary.Errored++
			summary.Errors = append(summary.Errors, rec)
		case rec.Skip.Skipped():
			summary.Skipped++
			summary.SkipCounts[rec.Skip]++
		case rec.Passed():
			summary.Passed++
		case rec.Outcome.Kind == flc.MatchFuzzy:
			summary.Fuzzy++
			summary.FuzzyMatches = append(summary.FuzzyMatches, rec)
		default:
			summary.Failed++
			summary.Failing = append(summary.Failing, rec)
		}
	}

	sortRecords(summary.Failing)
	sortRecords(summary.FuzzyMatches)
	sortRecords(summary.Errors)
	return summary
}

// FixTargets returns the paths a fix pass must visit: files missing the
// header and files with a malformed one, sorted by path.
func FixTargets(summary flc.RunSummary) []string {
	paths := make([]string, 0, len(summary.Failing)+len(summary.FuzzyMatches))
	for _, rec := range summary.Failing {
		paths = append(paths, rec.Path)
	}
	for _, rec := range summary.FuzzyMatches {
		paths = append(paths, rec.Path)
	}
	sort.Strings(paths)
	return paths
}

func sortRecords(records []flc.FileRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})
}

// IsCancelled reports whether err comes from a cancelled or expired context.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
