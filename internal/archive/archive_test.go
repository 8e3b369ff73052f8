package archive

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	files := map[string]string{
		"top.txt":            "top level",
		"sub/nested.txt":     "nested content",
		"sub/deeper/leaf.md": "leaf",
	}
	writeTree(t, src, files)

	var buf bytes.Buffer
	require.NoError(t, Pack(src, nil, &buf))

	dst := t.TempDir()
	require.NoError(t, Unpack(&buf, dst))

	for name, content := range files {
		got, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(name)))
		require.NoError(t, err)
		require.Equal(t, content, string(got), name)
	}
}

func TestPackExcludes(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"keep.txt":        "keep",
		"skip.log":        "skip",
		"logs/deep.txt":   "skip whole dir",
		"sub/another.log": "skip by basename",
	})

	var buf bytes.Buffer
	require.NoError(t, Pack(src, []string{"*.log", "logs"}, &buf))

	dst := t.TempDir()
	require.NoError(t, Unpack(&buf, dst))

	_, err := os.Stat(filepath.Join(dst, "keep.txt"))
	require.NoError(t, err)

	for _, name := range []string{"skip.log", "logs", "sub/another.log"} {
		_, err := os.Stat(filepath.Join(dst, filepath.FromSlash(name)))
		require.ErrorIs(t, err, os.ErrNotExist, name)
	}
}

func TestPackBadExcludePattern(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := Pack(t.TempDir(), []string{"[unclosed"}, &buf)
	require.Error(t, err)
}

func TestUnpackRejectsTraversal(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"../escape.txt", "/abs.txt", "a/../../escape.txt"} {
		_, err := safeJoin(t.TempDir(), name)
		require.ErrorIs(t, err, ErrUnsafePath, name)
	}
}

func TestUnpackGarbageInput(t *testing.T) {
	t.Parallel()

	err := Unpack(bytes.NewReader([]byte("not a tar archive at all")), t.TempDir())
	require.Error(t, err)
}
