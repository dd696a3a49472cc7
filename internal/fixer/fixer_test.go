package fixer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/flc/internal/classify"
	"github.com/vvka-141/flc/internal/fileutil"
	"github.com/vvka-141/flc/internal/header"
	"github.com/vvka-141/flc/internal/logging"
	"github.com/vvka-141/flc/pkg/flc"
)

var testStyles = flc.StyleMap{
	"go":  {Prefix: "//"},
	"rs":  {Prefix: "//"},
	"sh":  {Prefix: "#"},
	"py":  {Prefix: "#"},
	"xml": {Prefix: "<!--", Suffix: "-->"},
}

func newTestFixer(t *testing.T, headerText string, opts Options) *Fixer {
	t.Helper()
	h, err := flc.NewHeader(headerText)
	require.NoError(t, err)
	if opts.Styles == nil {
		opts.Styles = testStyles
	}
	log := logging.NewNullLogger()
	return New(
		classify.New(classify.Options{SkipEmpty: true, MaxFileSize: 1 << 20}),
		header.NewMatcher(h, flc.DefaultSimilarityThreshold),
		fileutil.NewDefaultWriter(log),
		opts,
		log,
	)
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestFix_AddsHeader(t *testing.T) {
	f := newTestFixer(t, "MIT", Options{})
	path := write(t, t.TempDir(), "main.rs", "fn main() {}")

	action := f.Fix(context.Background(), path)
	require.Equal(t, flc.FixFixed, action.State, action.String())
	assert.Equal(t, "// MIT\n\nfn main() {}", read(t, path))
}

func TestFix_Idempotent(t *testing.T) {
	f := newTestFixer(t, "Copyright 2026 Example\nSPDX-License-Identifier: MIT", Options{})
	path := write(t, t.TempDir(), "main.go", "package main\n")

	require.Equal(t, flc.FixFixed, f.Fix(context.Background(), path).State)
	once := read(t, path)

	assert.Equal(t, flc.FixAlreadyHasHeader, f.Fix(context.Background(), path).State)
	assert.Equal(t, once, read(t, path))
}

func TestFix_AfterShebang(t *testing.T) {
	f := newTestFixer(t, "MIT", Options{})
	path := write(t, t.TempDir(), "run.sh", "#!/bin/bash\necho hi")

	require.Equal(t, flc.FixFixed, f.Fix(context.Background(), path).State)
	assert.Equal(t, "#!/bin/bash\n# MIT\n\necho hi", read(t, path))
}

func TestFix_AfterXMLDeclaration(t *testing.T) {
	f := newTestFixer(t, "MIT", Options{})
	path := write(t, t.TempDir(), "pom.xml", "<?xml version=\"1.0\"?>\n<project/>\n")

	require.Equal(t, flc.FixFixed, f.Fix(context.Background(), path).State)
	assert.Equal(t, "<?xml version=\"1.0\"?>\n<!-- MIT -->\n\n<project/>\n", read(t, path))
}

func TestFix_AfterBOM(t *testing.T) {
	f := newTestFixer(t, "MIT", Options{})
	path := write(t, t.TempDir(), "a.go", "\ufeffpackage a\n")

	require.Equal(t, flc.FixFixed, f.Fix(context.Background(), path).State)
	assert.Equal(t, "\ufeff// MIT\n\npackage a\n", read(t, path))
	assert.Equal(t, flc.FixAlreadyHasHeader, f.Fix(context.Background(), path).State)
}

func TestFix_PreservesCRLF(t *testing.T) {
	f := newTestFixer(t, "MIT", Options{})
	path := write(t, t.TempDir(), "a.go", "package a\r\n")

	require.Equal(t, flc.FixFixed, f.Fix(context.Background(), path).State)
	assert.Equal(t, "// MIT\r\n\r\npackage a\r\n", read(t, path))
}

func TestFix_FuzzyHeaderIsRefused(t *testing.T) {
	f := newTestFixer(t, "MIT License", Options{})
	original := "// MIT License (old)\n\nfn x() {}\n"
	path := write(t, t.TempDir(), "old.rs", original)

	action := f.Fix(context.Background(), path)
	assert.Equal(t, flc.FixFailed, action.State)
	assert.ErrorIs(t, action.Err, flc.ErrMalformedHeader)
	assert.Equal(t, 87, action.Similarity)
	assert.Equal(t, original, read(t, path))
}

func TestFix_DryRunDoesNotWrite(t *testing.T) {
	f := newTestFixer(t, "MIT", Options{DryRun: true})
	path := write(t, t.TempDir(), "a.go", "package a\n")

	assert.True(t, f.DryRun())
	assert.Equal(t, flc.FixWouldFix, f.Fix(context.Background(), path).State)
	assert.Equal(t, "package a\n", read(t, path))
}

func TestFix_ReadOnlyFile(t *testing.T) {
	f := newTestFixer(t, "MIT", Options{})
	path := write(t, t.TempDir(), "a.go", "package a\n")
	require.NoError(t, os.Chmod(path, 0o444))
	t.Cleanup(func() { _ = os.Chmod(path, 0o644) })

	action := f.Fix(context.Background(), path)
	assert.Equal(t, flc.FixFailed, action.State)
	assert.ErrorIs(t, action.Err, flc.ErrReadOnly)
	assert.Equal(t, "package a\n", read(t, path))
}

func TestFix_PreservesExecutableBit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits")
	}
	f := newTestFixer(t, "MIT", Options{})
	path := write(t, t.TempDir(), "run.sh", "#!/bin/sh\necho hi\n")
	require.NoError(t, os.Chmod(path, 0o755))

	require.Equal(t, flc.FixFixed, f.Fix(context.Background(), path).State)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestFix_Skips(t *testing.T) {
	dir := t.TempDir()
	f := newTestFixer(t, "MIT", Options{})

	tests := []struct {
		name    string
		file    string
		content string
		want    flc.SkipReason
	}{
		{"binary", "blob.go", "GIF89a\x00\x01", flc.SkipBinary},
		{"empty", "empty.go", "", flc.SkipEmpty},
		{"latin1", "latin.go", "caf\xe9\n", flc.SkipUnsupportedEncoding},
		{"no style", "data.bin2", "hello", flc.SkipNoCommentStyle},
		{"too large", "big.go", strings.Repeat("x", (1<<20)+1), flc.SkipTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(t, dir, tt.file, tt.content)
			action := f.Fix(context.Background(), path)
			assert.Equal(t, flc.FixSkipped, action.State)
			assert.Equal(t, tt.want, action.Skip)
			assert.Equal(t, tt.content, read(t, path))
		})
	}
}

func TestFix_MissingFile(t *testing.T) {
	f := newTestFixer(t, "MIT", Options{})
	action := f.Fix(context.Background(), filepath.Join(t.TempDir(), "gone.go"))
	assert.Equal(t, flc.FixFailed, action.State)
	assert.ErrorIs(t, action.Err, os.ErrNotExist)
}

func TestFix_Directory(t *testing.T) {
	f := newTestFixer(t, "MIT", Options{})
	action := f.Fix(context.Background(), t.TempDir())
	assert.Equal(t, flc.FixFailed, action.State)
}

func TestFixAll_MixedTree(t *testing.T) {
	dir := t.TempDir()
	f := newTestFixer(t, "MIT", Options{Jobs: 4})

	paths := []string{
		write(t, dir, "c.go", "package c\n"),
		write(t, dir, "a.go", "// MIT\n\npackage a\n"),
		write(t, dir, "b.go", "\x00binary"),
		write(t, dir, "sub/d.go", "package d\n"),
	}

	summary, err := f.FixAll(context.Background(), paths)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Fixed)
	assert.Equal(t, 1, summary.AlreadyHasHeader)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)

	require.Len(t, summary.Results, 4)
	for i := 1; i < len(summary.Results); i++ {
		assert.Less(t, summary.Results[i-1].Path, summary.Results[i].Path)
	}
	assert.Equal(t, "// MIT\n\npackage d\n", read(t, filepath.Join(dir, "sub/d.go")))
}

func TestFixAll_NoDataLoss(t *testing.T) {
	dir := t.TempDir()
	f := newTestFixer(t, "Copyright 2026 Example\n\nLicensed under MIT.", Options{Jobs: 8})

	originals := map[string]string{}
	var paths []string
	for i := 0; i < 40; i++ {
		content := fmt.Sprintf("package p%d\n\nfunc F%d() {}\n", i, i)
		path := write(t, dir, fmt.Sprintf("p%02d.go", i), content)
		originals[path] = content
		paths = append(paths, path)
	}

	summary, err := f.FixAll(context.Background(), paths)
	require.NoError(t, err)
	assert.Equal(t, 40, summary.Fixed)

	for path, original := range originals {
		got := read(t, path)
		assert.True(t, strings.HasSuffix(got, original), "original content lost in %s", path)
		assert.True(t, strings.HasPrefix(got, "// Copyright 2026 Example\n//\n// Licensed under MIT.\n\n"))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, fileutil.IsTempName(e.Name()), "temporary file left behind: %s", e.Name())
	}
}

func TestFixAll_OnResult(t *testing.T) {
	dir := t.TempDir()
	var seen []string
	f := newTestFixer(t, "MIT", Options{}).WithOnResult(func(path string, _ flc.FixAction) {
		seen = append(seen, path)
	})

	paths := []string{write(t, dir, "a.go", "package a\n"), write(t, dir, "b.go", "package b\n")}
	_, err := f.FixAll(context.Background(), paths)
	require.NoError(t, err)
	assert.ElementsMatch(t, paths, seen)
}

func TestFixAll_Cancelled(t *testing.T) {
	dir := t.TempDir()
	f := newTestFixer(t, "MIT", Options{Jobs: 2})
	var paths []string
	for i := 0; i < 10; i++ {
		paths = append(paths, write(t, dir, fmt.Sprintf("f%d.go", i), "package f\n"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := f.FixAll(ctx, paths)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, summary.Fixed)
	for _, p := range paths {
		assert.Equal(t, "package f\n", read(t, p))
	}
}

func TestNew_PanicsOnNil(t *testing.T) {
	h, _ := flc.NewHeader("MIT")
	m := header.NewMatcher(h, 70)
	c := classify.New(classify.Options{})
	log := logging.NewNullLogger()
	w := fileutil.NewDefaultWriter(log)

	assert.Panics(t, func() { New(nil, m, w, Options{}, log) })
	assert.Panics(t, func() { New(c, nil, w, Options{}, log) })
	assert.Panics(t, func() { New(c, m, nil, Options{}, log) })
	assert.Panics(t, func() { New(c, m, w, Options{}, nil) })
}
