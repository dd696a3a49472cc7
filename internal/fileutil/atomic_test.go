package fileutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/flc/internal/checksum"
	"github.com/vvka-141/flc/internal/logging"
	"github.com/vvka-141/flc/pkg/flc"
)

func writeFile(t *testing.T, dir, name, content string, perm os.FileMode) (string, os.FileInfo) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
	info, err := os.Stat(path)
	require.NoError(t, err)
	return path, info
}

func leftovers(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		if IsTempName(e.Name()) {
			out = append(out, e.Name())
		}
	}
	return out
}

// sumMismatch reports a checksum for the file on disk that never matches.
type sumMismatch struct{ checksum.XXHash }

func (s sumMismatch) SumFile(path string) (uint64, error) {
	sum, err := s.XXHash.SumFile(path)
	return sum + 1, err
}

func TestWriteAtomic_ReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path, info := writeFile(t, dir, "a.go", "package a\n", 0o644)

	w := NewDefaultWriter(logging.NewNullLogger())
	require.NoError(t, w.WriteAtomic(context.Background(), path, []byte("// MIT\n\npackage a\n"), info))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "// MIT\n\npackage a\n", string(got))
	assert.Empty(t, leftovers(t, dir))
}

func TestWriteAtomic_PreservesPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits")
	}
	dir := t.TempDir()
	path, info := writeFile(t, dir, "run.sh", "#!/bin/sh\necho hi\n", 0o755)

	w := NewDefaultWriter(logging.NewNullLogger())
	require.NoError(t, w.WriteAtomic(context.Background(), path, []byte("#!/bin/sh\n# MIT\n\necho hi\n"), info))

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), after.Mode().Perm())
}

func TestWriteAtomic_PreservesSpecialModeBits(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX mode bits")
	}
	dir := t.TempDir()
	want := os.FileMode(0o755) | os.ModeSetgid | os.ModeSticky
	path, info := writeFile(t, dir, "tool.sh", "#!/bin/sh\necho hi\n", want)
	if info.Mode()&want != want {
		t.Skip("filesystem refused setgid or sticky bits")
	}

	w := NewDefaultWriter(logging.NewNullLogger())
	require.NoError(t, w.WriteAtomic(context.Background(), path, []byte("#!/bin/sh\n# MIT\n\necho hi\n"), info))

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Mode(), after.Mode())
}

func TestPreservedMode(t *testing.T) {
	m := os.FileMode(0o751) | os.ModeSetuid | os.ModeSticky | os.ModeDir
	got := preservedMode(m)
	assert.Equal(t, os.FileMode(0o751)|os.ModeSetuid|os.ModeSticky, got)
	assert.Zero(t, got&os.ModeDir)
}

func TestWriteAtomic_FailureBeforeRenameLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	path, info := writeFile(t, dir, "a.go", "package a\n", 0o644)

	w := NewDefaultWriter(logging.NewNullLogger())
	var sawTemp bool
	w.beforeRename = func(tmp, target string) error {
		_, err := os.Stat(tmp)
		sawTemp = err == nil
		return errors.New("interrupted")
	}

	err := w.WriteAtomic(context.Background(), path, []byte("// MIT\n\npackage a\n"), info)
	require.Error(t, err)
	assert.ErrorIs(t, err, flc.ErrWriteFailed)
	assert.True(t, sawTemp, "temporary file should exist before rename")

	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "package a\n", string(got))
	assert.Empty(t, leftovers(t, dir))
}

func TestWriteAtomic_FailureAfterRenameReportsError(t *testing.T) {
	dir := t.TempDir()
	path, info := writeFile(t, dir, "a.go", "package a\n", 0o644)

	w := NewDefaultWriter(logging.NewNullLogger())
	w.afterRename = func(string) error { return errors.New("crash") }

	err := w.WriteAtomic(context.Background(), path, []byte("new\n"), info)
	require.ErrorIs(t, err, flc.ErrWriteFailed)

	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "new\n", string(got), "the rename already committed")
	assert.Empty(t, leftovers(t, dir))
}

func TestWriteAtomic_ChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	path, info := writeFile(t, dir, "a.go", "package a\n", 0o644)

	base := NewDefaultWriter(logging.NewNullLogger())
	w := NewWriter(sumMismatch{checksum.New()}, base.executor, logging.NewNullLogger())

	err := w.WriteAtomic(context.Background(), path, []byte("new\n"), info)
	require.Error(t, err)
	assert.ErrorIs(t, err, flc.ErrWriteFailed)
	assert.ErrorIs(t, err, flc.ErrChecksumMismatch)

	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "package a\n", string(got))
	assert.Empty(t, leftovers(t, dir))
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	w := NewDefaultWriter(logging.NewNullLogger())
	err := w.WriteAtomic(context.Background(), filepath.Join(t.TempDir(), "nope", "a.go"), []byte("x"), nil)
	require.ErrorIs(t, err, flc.ErrWriteFailed)
}

func TestWriteAtomic_ConcurrentDistinctTargets(t *testing.T) {
	dir := t.TempDir()
	w := NewDefaultWriter(logging.NewNullLogger())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		name := filepath.Join(dir, string(rune('a'+i))+".go")
		require.NoError(t, os.WriteFile(name, []byte("package p\n"), 0o644))
		info, err := os.Stat(name)
		require.NoError(t, err)

		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, w.WriteAtomic(context.Background(), name, []byte("// MIT\n\npackage p\n"), info))
		}()
	}
	wg.Wait()
	assert.Empty(t, leftovers(t, dir))
}

func TestTempName(t *testing.T) {
	a := TempName("/src/main.go")
	b := TempName("/src/main.go")
	assert.NotEqual(t, a, b)
	assert.Equal(t, filepath.Clean("/src"), filepath.Dir(a))
	assert.True(t, IsTempName(a))
	assert.False(t, IsTempName("main.go"))
	assert.False(t, IsTempName(".main.go.swp"))
}

func TestNewWriter_PanicsOnNil(t *testing.T) {
	base := NewDefaultWriter(logging.NewNullLogger())
	assert.Panics(t, func() { NewWriter(nil, base.executor, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewWriter(checksum.New(), nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewWriter(checksum.New(), base.executor, nil) })
}

func TestWriteAtomic_VerifyDisabled(t *testing.T) {
	dir := t.TempDir()
	path, info := writeFile(t, dir, "a.go", "package a\n", 0o644)

	base := NewDefaultWriter(logging.NewNullLogger())
	w := NewWriter(sumMismatch{checksum.New()}, base.executor, logging.NewNullLogger()).WithVerify(false)

	require.NoError(t, w.WriteAtomic(context.Background(), path, []byte("new\n"), info))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(got))
}
