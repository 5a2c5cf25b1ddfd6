package gamedata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"l10n-checker/internal/dictpath"
	"l10n-checker/internal/filewalker"
	"l10n-checker/internal/tags"
)

// ErrNoAssets is returned when a game directory has no assets directory.
var ErrNoAssets = errors.New("could not find game assets")

// FindAssets locates the assets directory of a game installation. gameDir may
// be the assets directory, any directory below it, or its parent.
func FindAssets(gameDir string) (string, error) {
	abs, err := filepath.Abs(gameDir)
	if err != nil {
		return "", fmt.Errorf("resolve game dir: %w", err)
	}
	for dir := abs; ; dir = filepath.Dir(dir) {
		if filepath.Base(dir) == "assets" {
			return dir, nil
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}
	maybe := filepath.Join(abs, "assets")
	if info, err := os.Stat(maybe); err == nil && info.IsDir() {
		return maybe, nil
	}
	return "", fmt.Errorf("%w: searched in %s and %s", ErrNoAssets, gameDir, maybe)
}

// AssetReader reads strings straight from the game's JSON files. Loaded
// files are kept in memory. It is safe for concurrent use.
type AssetReader struct {
	assetsDir string
	locale    string

	mu    sync.Mutex
	files map[string]gjson.Result
}

// NewAssetReader creates a reader for the game installed at gameDir. locale
// is the source language, e.g. en_US.
func NewAssetReader(gameDir, locale string) (*AssetReader, error) {
	assets, err := FindAssets(gameDir)
	if err != nil {
		return nil, err
	}
	return &AssetReader{
		assetsDir: assets,
		locale:    locale,
		files:     make(map[string]gjson.Result),
	}, nil
}

// AssetsDir returns the assets directory being read.
func (r *AssetReader) AssetsDir() string {
	return r.assetsDir
}

// load returns the parsed content of a data file. Files under "extension"
// are looked up in assets/ when assets/data/ does not have them.
func (r *AssetReader) load(file []string) gjson.Result {
	key := strings.Join(file, "/")

	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.files[key]; ok {
		return doc
	}

	candidates := []string{filepath.Join(append([]string{r.assetsDir, "data"}, file...)...)}
	if len(file) > 0 && file[0] == "extension" {
		candidates = append(candidates, filepath.Join(append([]string{r.assetsDir}, file...)...))
	}

	var doc gjson.Result
	var lastErr error
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		if !gjson.ValidBytes(data) {
			lastErr = fmt.Errorf("%s: invalid JSON", path)
			continue
		}
		doc, lastErr = gjson.ParseBytes(data), nil
		break
	}
	if lastErr != nil {
		log.Warn().Err(lastErr).Str("file", key).Msg("Cannot find game file")
	}
	r.files[key] = doc
	return doc
}

// lookup indexes the file of ref along its dict path. parents holds every
// value traversed, outermost first.
func (r *AssetReader) lookup(ref dictpath.Ref) (value gjson.Result, parents []gjson.Result, ok bool) {
	value = r.load(ref.File)
	if !value.Exists() {
		return gjson.Result{}, nil, false
	}
	for _, component := range ref.Dict {
		parents = append(parents, value)
		value = child(value, component)
		if !value.Exists() {
			return gjson.Result{}, nil, false
		}
	}
	return value, parents, true
}

func child(v gjson.Result, key string) gjson.Result {
	if v.IsArray() {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 {
			return gjson.Result{}
		}
		items := v.Array()
		if i >= len(items) {
			return gjson.Result{}
		}
		return items[i]
	}
	if !v.IsObject() {
		return gjson.Result{}
	}
	return v.Get(escapeKey(key))
}

// escapeKey makes key usable as a single gjson path component.
func escapeKey(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c < 0x80 && !isSafeKeyChar(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isSafeKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}

func isLangFile(file []string) bool {
	return len(file) > 0 && file[0] == "lang"
}

// Get implements Reader. Outside of lang files the value at ref is a lang
// label and the source locale is picked from it.
func (r *AssetReader) Get(ref dictpath.Ref) (any, bool) {
	value, _, ok := r.lookup(ref)
	if !ok {
		return nil, false
	}
	if isLangFile(ref.File) || !value.IsObject() {
		return value.Value(), true
	}
	text := value.Get(escapeKey(r.locale))
	if !text.Exists() {
		return nil, false
	}
	return text.Value(), true
}

// Complete implements Reader.
func (r *AssetReader) Complete(ref dictpath.Ref) (Entry, bool) {
	value, parents, ok := r.lookup(ref)
	if !ok {
		return Entry{}, false
	}
	entry := Entry{Ref: ref, Tags: tags.Find(ref, parents)}
	if isLangFile(ref.File) {
		if value.Type != gjson.String {
			return Entry{}, false
		}
		entry.LangLabel = map[string]string{r.locale: value.String()}
		return entry, true
	}
	entry.LangLabel = langLabel(value)
	return entry, true
}

func langLabel(v gjson.Result) map[string]string {
	label := make(map[string]string)
	v.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String {
			label[key.String()] = value.String()
		}
		return true
	})
	return label
}

// Walk calls fn for every lang label of the game, file by file. Lang files
// only contribute the file of the source locale.
func (r *AssetReader) Walk(fn func(Entry) error) error {
	files, err := filewalker.NewWalker().WalkAssets(r.assetsDir)
	if err != nil {
		return err
	}

	for _, f := range files {
		if isLangFile(f.File) && !strings.HasSuffix(f.File[len(f.File)-1], "."+r.locale+".json") {
			continue
		}
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("read %s: %w", f.Path, err)
		}
		if !gjson.ValidBytes(data) {
			log.Warn().Str("path", f.Path).Msg("Skipping invalid JSON file")
			continue
		}
		doc := gjson.ParseBytes(data)

		w := labelWalker{file: f.File, locale: r.locale, fn: fn}
		if isLangFile(f.File) {
			labels := doc.Get("labels")
			if !labels.Exists() {
				log.Warn().Str("path", f.Path).Msg("Found lang file without labels")
				continue
			}
			err = w.walkLangFile(labels, []string{"labels"}, []gjson.Result{doc})
		} else {
			err = w.walk(doc, nil, nil)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type labelWalker struct {
	file   []string
	locale string
	fn     func(Entry) error
}

func (w *labelWalker) emit(dict []string, parents []gjson.Result, label map[string]string) error {
	ref := dictpath.New(w.file, dict)
	return w.fn(Entry{Ref: ref, LangLabel: label, Tags: tags.Find(ref, parents)})
}

// walk looks for objects holding the source locale and does not descend
// into them.
func (w *labelWalker) walk(v gjson.Result, dict []string, parents []gjson.Result) error {
	if v.IsObject() && v.Get(escapeKey(w.locale)).Exists() {
		return w.emit(dict, parents, langLabel(v))
	}
	return w.eachChild(v, dict, parents, w.walk)
}

// walkLangFile emits every string of a lang file.
func (w *labelWalker) walkLangFile(v gjson.Result, dict []string, parents []gjson.Result) error {
	if v.Type == gjson.String {
		return w.emit(dict, parents, map[string]string{w.locale: v.String()})
	}
	return w.eachChild(v, dict, parents, w.walkLangFile)
}

func (w *labelWalker) eachChild(v gjson.Result, dict []string, parents []gjson.Result,
	next func(gjson.Result, []string, []gjson.Result) error) error {
	if !v.IsObject() && !v.IsArray() {
		return nil
	}
	var err error
	index := 0
	childParents := append(parents[:len(parents):len(parents)], v)
	v.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if v.IsArray() {
			name = strconv.Itoa(index)
			index++
		}
		childDict := append(dict[:len(dict):len(dict)], name)
		err = next(value, childDict, childParents)
		return err == nil
	})
	return err
}
