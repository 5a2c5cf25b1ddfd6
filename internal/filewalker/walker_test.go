package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
}

func files(entries []FileEntry) [][]string {
	out := make([][]string, len(entries))
	for i, e := range entries {
		out[i] = e.File
	}
	return out
}

func TestWalkAssets(t *testing.T) {
	assets := t.TempDir()
	touch(t, filepath.Join(assets, "data", "database.json"))
	touch(t, filepath.Join(assets, "data", "maps", "bergen.json"))
	touch(t, filepath.Join(assets, "data", "maps", "notes.txt"))
	touch(t, filepath.Join(assets, "extension", "fish", "fish.json"))

	entries, err := NewWalker().WalkAssets(assets)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"database.json"},
		{"maps", "bergen.json"},
		{"extension", "fish", "fish.json"},
	}, files(entries))
	assert.Equal(t, filepath.Join(assets, "data", "maps", "bergen.json"), entries[1].Path)
}

func TestWalkAssetsWithoutExtension(t *testing.T) {
	assets := t.TempDir()
	touch(t, filepath.Join(assets, "data", "item-database.json"))

	entries, err := NewWalker().WalkAssets(assets)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"item-database.json"}}, files(entries))
}

func TestWalkErrors(t *testing.T) {
	_, err := NewWalker().Walk(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "a.json")
	touch(t, file)
	_, err = NewWalker().Walk(file)
	assert.Error(t, err)
}
