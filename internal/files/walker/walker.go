package walker

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/flc/internal/files/filesystem"
	"github.com/vvka-141/flc/internal/fileutil"
	"github.com/vvka-141/flc/pkg/flc"
)

// Entry is one candidate produced by a walk.
type Entry struct {
	// Path is the filesystem path, rooted like the walk root.
	Path string

	// Rel is the slash-separated path relative to the walk root.
	Rel string

	// Ignored is set for files excluded by policy; emitted only with Options.ReportIgnored.
	Ignored bool

	// Err is set when a directory could not be read. Path then names the directory.
	Err error
}

// Options configures a Walker.
type Options struct {
	// Jobs bounds the number of directories read concurrently. Zero means runtime.NumCPU().
	Jobs int

	// IgnorePatterns are gitignore-style patterns relative to the walk root.
	IgnorePatterns []string

	// IgnoreFiles are per-directory ignore file names, e.g. ".gitignore" and ".flcignore".
	IgnoreFiles []string

	// IncludeHidden walks entries whose name starts with a dot. ".git" is always skipped.
	IncludeHidden bool

	// ReportIgnored emits files excluded by policy with Entry.Ignored set,
	// including every file below an excluded directory.
	ReportIgnored bool
}

// DefaultIgnoreFiles returns the ignore files honored by default.
func DefaultIgnoreFiles() []string {
	return []string{".gitignore", flc.IgnoreFileName}
}

// Walker enumerates regular files under a root.
type Walker struct {
	fsProvider filesystem.FileSystemProvider
	opts       Options
	rules      *RuleSet
	logger     flc.Logger
}

// New creates a Walker. It returns an error wrapping flc.ErrInvalidConfig when an
// ignore pattern does not compile. Panics if fsProvider or logger is nil.
func New(fsProvider filesystem.FileSystemProvider, opts Options, logger flc.Logger) (*Walker, error) {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	rules, err := NewRuleSet(opts.IgnorePatterns)
	if err != nil {
		return nil, err
	}
	return &Walker{
		fsProvider: fsProvider,
		opts:       opts,
		rules:      rules,
		logger:     logger,
	}, nil
}

// Walk sends every candidate under root to out and returns when traversal is
// complete or ctx is cancelled. out is not closed. A root that is a regular file
// is emitted as the only entry. Per-directory read failures are emitted as
// entries with Err set and do not stop the walk.
func (w *Walker) Walk(ctx context.Context, root string, out chan<- Entry) error {
	info, err := w.fsProvider.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to access %s: %w", root, err)
	}
	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return fmt.Errorf("not a regular file or directory: %s", root)
		}
		return send(ctx, out, Entry{Path: root, Rel: filepath.ToSlash(filepath.Base(root))})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.opts.Jobs)

	var visit func(dir, rel string, rules *RuleSet, ignored bool) error
	visit = func(dir, rel string, rules *RuleSet, ignored bool) error {
		if err := gctx.Err(); err != nil {
			return err
		}

		entries, err := w.fsProvider.ReadDir(dir)
		if err != nil {
			w.logger.Verbose("cannot read directory %s: %v", dir, err)
			if ignored {
				return nil
			}
			return send(gctx, out, Entry{Path: dir, Rel: rel, Err: err})
		}
		if !ignored {
			rules = rules.With(w.loadIgnoreFiles(dir, rel, entries))
		}

		for _, entry := range entries {
			name := entry.Name()
			childPath := filepath.Join(dir, name)
			childRel := joinRel(rel, name)
			isDir := entry.IsDir()

			if pruned(name, isDir) {
				continue
			}
			childIgnored := ignored || w.excluded(name, childRel, isDir, rules)
			if childIgnored && !w.opts.ReportIgnored {
				continue
			}

			if isDir {
				child := func() error { return visit(childPath, childRel, rules, childIgnored) }
				if !g.TryGo(child) {
					if err := child(); err != nil {
						return err
					}
				}
				continue
			}

			if !entry.Type().IsRegular() {
				continue
			}
			if err := send(gctx, out, Entry{Path: childPath, Rel: childRel, Ignored: childIgnored}); err != nil {
				return err
			}
		}
		return nil
	}

	w.logger.Verbose("walking %s with %d ignore patterns", root, w.rules.Len())
	g.Go(func() error { return visit(root, "", w.rules, false) })
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// pruned reports entries that are never walked nor reported: the ".git"
// directory and temporary files left behind by an interrupted fix.
func pruned(name string, isDir bool) bool {
	if isDir {
		return name == ".git"
	}
	return fileutil.IsTempName(name)
}

func (w *Walker) excluded(name, rel string, isDir bool, rules *RuleSet) bool {
	if !w.opts.IncludeHidden && strings.HasPrefix(name, ".") {
		return true
	}
	return rules.Ignored(rel, isDir)
}

// loadIgnoreFiles compiles the ignore files present in dir. Unreadable or
// invalid files are logged and skipped.
func (w *Walker) loadIgnoreFiles(dir, rel string, entries []filesystem.DirEntry) []Rule {
	if len(w.opts.IgnoreFiles) == 0 {
		return nil
	}
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			present[e.Name()] = true
		}
	}

	var rules []Rule
	for _, name := range w.opts.IgnoreFiles {
		if !present[name] {
			continue
		}
		p := filepath.Join(dir, name)
		data, err := w.fsProvider.ReadFile(p)
		if err != nil {
			w.logger.Verbose("cannot read %s: %v", p, err)
			continue
		}
		parsed, err := ParseRules(rel, bytes.NewReader(data))
		if err != nil {
			w.logger.Error("ignoring %s: %v", p, err)
			continue
		}
		rules = append(rules, parsed...)
	}
	return rules
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return path.Join(rel, name)
}

func send(ctx context.Context, out chan<- Entry, e Entry) error {
	select {
	case out <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
