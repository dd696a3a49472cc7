package fixer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/flc/internal/classify"
	"github.com/vvka-141/flc/internal/fileutil"
	"github.com/vvka-141/flc/internal/files/filesystem"
	"github.com/vvka-141/flc/internal/header"
	"github.com/vvka-141/flc/pkg/flc"
)

// Options configures a Fixer.
type Options struct {
	// DryRun reports WouldFix instead of writing.
	DryRun bool

	// Jobs bounds FixAll concurrency. Zero means runtime.NumCPU().
	Jobs int

	Styles flc.StyleMap
}

// Fixer rewrites files to carry the header. Safe for concurrent use on
// distinct paths; concurrent fixes of the same path are not supported.
type Fixer struct {
	fsProvider filesystem.FileSystemProvider
	classifier *classify.Classifier
	matcher    *header.Matcher
	writer     *fileutil.Writer
	opts       Options
	logger     flc.Logger
	onResult   func(path string, action flc.FixAction)
}

// New creates a Fixer over the OS filesystem. Panics if any dependency is nil.
func New(classifier *classify.Classifier, matcher *header.Matcher, writer *fileutil.Writer, opts Options, logger flc.Logger) *Fixer {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if matcher == nil {
		panic("matcher cannot be nil")
	}
	if writer == nil {
		panic("writer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	return &Fixer{
		fsProvider: filesystem.NewOSFileSystem(),
		classifier: classifier,
		matcher:    matcher,
		writer:     writer,
		opts:       opts,
		logger:     logger,
	}
}

// WithOnResult returns a new Fixer that calls fn after each FixAll result.
// fn runs on the collecting goroutine only. The receiver is unchanged.
func (f *Fixer) WithOnResult(fn func(path string, action flc.FixAction)) *Fixer {
	clone := *f
	clone.onResult = fn
	return &clone
}

// DryRun reports whether the fixer is configured to skip writes.
func (f *Fixer) DryRun() bool {
	return f.opts.DryRun
}

// Fix brings one file into compliance.
func (f *Fixer) Fix(ctx context.Context, path string) flc.FixAction {
	if err := ctx.Err(); err != nil {
		return failed(err)
	}

	info, err := f.fsProvider.Stat(path)
	if err != nil {
		return failed(err)
	}
	if !info.Mode().IsRegular() {
		return failed(fmt.Errorf("not a regular file: %s", path))
	}
	if reason := f.classifier.CheckSize(info.Size()); reason.Skipped() {
		return skipped(reason)
	}

	content, err := f.fsProvider.ReadFile(path)
	if err != nil {
		return failed(err)
	}
	if reason := f.classifier.Classify(content, false); reason.Skipped() {
		return skipped(reason)
	}

	style, ok := f.opts.Styles.Lookup(path)
	if !ok {
		return skipped(flc.SkipNoCommentStyle)
	}

	switch outcome := f.matcher.Match(content, style); outcome.Kind {
	case flc.MatchExact:
		return flc.FixAction{State: flc.FixAlreadyHasHeader}
	case flc.MatchFuzzy:
		return flc.FixAction{State: flc.FixFailed, Err: flc.ErrMalformedHeader, Similarity: outcome.Similarity}
	}

	updated := f.matcher.Insert(content, style)
	if f.opts.DryRun {
		return flc.FixAction{State: flc.FixWouldFix}
	}

	if err := fileutil.CheckWritable(path, info); err != nil {
		return failed(err)
	}
	if err := f.writer.WriteAtomic(ctx, path, updated, info); err != nil {
		f.logger.Verbose("write failed for %s: %v", path, err)
		return failed(err)
	}
	f.logger.Verbose("added header to %s", path)
	return flc.FixAction{State: flc.FixFixed}
}

// FixAll fixes paths with a bounded worker pool. Results are sorted by path.
// On cancellation the summary covers the paths finished so far and the
// context error is returned alongside it.
func (f *Fixer) FixAll(ctx context.Context, paths []string) (flc.FixSummary, error) {
	start := time.Now()

	type result struct {
		path   string
		action flc.FixAction
	}
	work := make(chan string)
	results := make(chan result, f.opts.Jobs)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(work)
		for _, p := range paths {
			select {
			case work <- p:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	workers, wctx := errgroup.WithContext(gctx)
	for i := 0; i < f.opts.Jobs; i++ {
		workers.Go(func() error {
			for p := range work {
				if err := wctx.Err(); err != nil {
					return err
				}
				results <- result{path: p, action: f.Fix(wctx, p)}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workers.Wait()
	})

	var summary flc.FixSummary
	for r := range results {
		// A fix interrupted by cancellation is not a result.
		if isCancelled(r.action.Err) && ctx.Err() != nil {
			continue
		}
		summary.Add(r.path, r.action)
		if f.onResult != nil {
			f.onResult(r.path, r.action)
		}
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	summary.SortResults()
	summary.Elapsed = time.Since(start)
	return summary, err
}

func failed(err error) flc.FixAction {
	return flc.FixAction{State: flc.FixFailed, Err: err}
}

func skipped(reason flc.SkipReason) flc.FixAction {
	return flc.FixAction{State: flc.FixSkipped, Skip: reason}
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
