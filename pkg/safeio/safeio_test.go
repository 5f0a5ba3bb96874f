package safeio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanUserPath(t *testing.T) {
	got, err := CleanUserPath("a/b/./c")
	require.NoError(t, err)
	assert.Equal(t, "a/b/c", got)

	_, err = CleanUserPath("a/../../etc/passwd")
	assert.Error(t, err)
}

func TestReadFileContained(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inside.txt")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	data, err := ReadFileContained(dir, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)

	_, err = ReadFileContained(dir, filepath.Join(dir, "..", "outside.txt"))
	assert.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o600))

	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	st, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode()&0o777)

	// Source is left in place.
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "moved.bin")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	require.NoError(t, MoveFile(src, dst))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, EnsureDir(dir))
	st, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, st.IsDir())
	// Idempotent.
	assert.NoError(t, EnsureDir(dir))
}
