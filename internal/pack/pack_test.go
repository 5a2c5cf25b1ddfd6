package pack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePack = `{
	"item-database.json/items/3/name": {"orig": "Coconut", "text": "Noix de coco"},
	"database.json/lore/hist-1/title": {"orig": "History", "text": "", "quality": "incomplete"},
	"lang/sc/gui.en_US.json/labels/menu/ok": {"text": "Ok", "quality": "spell", "note": "check"},
	"maps/bergen.json/entities/2/event/0/message/en_US": {"orig": "Hi", "ciphertext": "AAAA"}
}`

func TestParseKeepsOrder(t *testing.T) {
	p, err := Parse([]byte(samplePack))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"item-database.json/items/3/name",
		"database.json/lore/hist-1/title",
		"lang/sc/gui.en_US.json/labels/menu/ok",
		"maps/bergen.json/entities/2/event/0/message/en_US",
	}, p.Keys())
	assert.Equal(t, 4, p.Len())

	e, ok := p.Lookup("lang/sc/gui.en_US.json/labels/menu/ok")
	require.True(t, ok)
	assert.Nil(t, e.Orig)
	assert.Equal(t, "check", e.Note)
	assert.False(t, e.Encrypted())
}

func TestGet(t *testing.T) {
	p, err := Parse([]byte(samplePack))
	require.NoError(t, err)

	e, ok := p.Get("item-database.json/items/3/name", "Coconut")
	require.True(t, ok)
	assert.Equal(t, "Noix de coco", e.Text)

	_, ok = p.Get("item-database.json/items/3/name", "Banana")
	assert.False(t, ok, "stale entry")

	_, ok = p.Get("lang/sc/gui.en_US.json/labels/menu/ok", "anything")
	assert.True(t, ok, "no recorded orig")

	_, ok = p.Get("missing.json/x", "")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	p, err := Parse([]byte(samplePack))
	require.NoError(t, err)

	s := p.Stats()
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Translated)
	assert.Equal(t, 1, s.Encrypted)
	assert.Equal(t, map[string]int{"incomplete": 1, "spell": 1}, s.Quality)
	assert.Equal(t, []string{"incomplete", "spell"}, s.QualityNames())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{"a": `))
	assert.Error(t, err)

	_, err = Parse([]byte(`[]`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"a": {"text": 3}}`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fr_FR.json")
	require.NoError(t, os.WriteFile(path, []byte(samplePack), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
