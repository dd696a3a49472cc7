package fileutil

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/flc/pkg/flc"
)

func TestCheckWritable_WritableFile(t *testing.T) {
	p, info := writeFile(t, t.TempDir(), "a.go", "x", 0o644)
	assert.NoError(t, CheckWritable(p, info))
}

func TestCheckWritable_ReadOnlyFile(t *testing.T) {
	dir := t.TempDir()
	p, info := writeFile(t, dir, "a.go", "x", 0o444)
	t.Cleanup(func() { _ = os.Chmod(p, 0o644) })

	err := CheckWritable(p, info)
	require.Error(t, err)
	assert.ErrorIs(t, err, flc.ErrReadOnly)
}

func TestCheckWritable_ReadOnlyDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory write bits are not enforced on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}
	dir := t.TempDir()
	p, info := writeFile(t, dir, "a.go", "x", 0o644)
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	assert.ErrorIs(t, CheckWritable(p, info), flc.ErrReadOnly)
}
