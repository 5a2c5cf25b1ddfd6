package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// assetRoots lists the asset subdirectories holding game data, and the prefix
// their files get in a game reference.
var assetRoots = []struct {
	dir    string
	prefix []string
}{
	{dir: "data"},
	{dir: "extension", prefix: []string{"extension"}},
}

// FileEntry is a discovered data file.
type FileEntry struct {
	// Path is the absolute path on disk.
	Path string
	// File is the path relative to the data root, split into components, as
	// used in game references.
	File []string
}

// Walker discovers game data files.
type Walker struct {
	exts map[string]bool
}

// NewWalker creates a Walker for JSON data files.
func NewWalker() *Walker {
	return &Walker{exts: map[string]bool{".json": true}}
}

// Walk discovers all data files under root, in lexical order.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	return w.walk(root, nil)
}

// WalkAssets discovers the data files of a game's assets directory: those
// under data/ and, prefixed with "extension", those under extension/.
// Missing subdirectories are skipped.
func (w *Walker) WalkAssets(assetsDir string) ([]FileEntry, error) {
	var entries []FileEntry
	for _, r := range assetRoots {
		dir := filepath.Join(assetsDir, r.dir)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			log.Debug().Str("dir", dir).Msg("Skipping missing asset directory")
			continue
		}
		found, err := w.walk(dir, r.prefix)
		if err != nil {
			return nil, err
		}
		entries = append(entries, found...)
	}
	return entries, nil
}

func (w *Walker) walk(root string, prefix []string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !w.exts[ext] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		file := append(append([]string{}, prefix...), strings.Split(filepath.ToSlash(rel), "/")...)
		entries = append(entries, FileEntry{Path: path, File: file})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Debug().Int("count", len(entries)).Str("root", root).Msg("Discovered files")
	return entries, nil
}
