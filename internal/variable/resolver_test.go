package variable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l10n-checker/internal/diag"
	"l10n-checker/internal/dictpath"
)

// fakeSource serves values keyed by serialized reference.
type fakeSource struct {
	texts     map[string]any
	originals map[string]string
	asked     []string
}

func (f *fakeSource) Text(ref dictpath.Ref, _ diag.ReportFunc) (any, bool) {
	f.asked = append(f.asked, ref.String())
	v, ok := f.texts[ref.String()]
	return v, ok
}

func (f *fakeSource) Original(ref dictpath.Ref) (string, bool) {
	v, ok := f.originals[ref.String()]
	return v, ok
}

func newSource() *fakeSource {
	return &fakeSource{
		texts: map[string]any{
			"database.json/areas/rhombus-sqr/name":                 "Rhombus-Platz",
			"database.json/areas/autumn-fall/landmarks/hidden/name": "Verstecktes Lager",
			"item-database.json/items/42/name":                      "Kokosnuss",
			"database.json/enemies/hedgehog.boss/name":              "Igelboss",
			"database.json/lore/weird/title":                        map[string]any{"en_US": "not a string"},
		},
		originals: map[string]string{
			"database.json/areas/rhombus-sqr/name":                 "Rhombus Square",
			"database.json/areas/autumn-fall/landmarks/hidden/name": "Hidden Camp",
			"item-database.json/items/42/name":                      "Coconut",
			"database.json/enemies/hedgehog.boss/name":              "Hedgehog Boss",
		},
	}
}

func resolve(t *testing.T, name, orig string, src Source) (string, *diag.Collector) {
	t.Helper()
	c := diag.NewCollector("test.json/x", "text")
	r := NewResolver(DefaultTemplates())
	return r.Resolve(name, c.Report, orig, src), c
}

func TestResolveExternal(t *testing.T) {
	src := newSource()
	text, c := resolve(t, "area.rhombus-sqr.name", `Welcome to \v[area.rhombus-sqr.name]`, src)
	assert.Equal(t, "Rhombus-Platz", text)
	assert.Empty(t, c.Diagnostics())

	text, c = resolve(t, "area.autumn-fall.landmark.name.hidden", "You reach the hidden camp.", src)
	assert.Equal(t, "Verstecktes Lager", text)
	assert.Empty(t, c.Diagnostics(), "original value loosely present in original text")
}

func TestResolveNewReferenceNotice(t *testing.T) {
	text, c := resolve(t, "item.42.name", "Bring me something tasty.", newSource())
	assert.Equal(t, "Kokosnuss", text)
	require.Len(t, c.Diagnostics(), 1)
	d := c.Diagnostics()[0]
	assert.Equal(t, diag.Notice, d.Severity)
	assert.Contains(t, d.Message, "item.42.name")
	assert.Equal(t, "Bring me something tasty.", d.Detail)
}

func TestResolveRestJoinsComponents(t *testing.T) {
	src := newSource()
	text, c := resolve(t, "combat.name.hedgehog/boss", `\v[combat.name.hedgehog/boss]`, src)
	assert.Empty(t, c.Diagnostics())
	assert.Equal(t, "Igelboss", text)
	assert.Equal(t, []string{"database.json/enemies/hedgehog.boss/name"}, src.asked)

	src = newSource()
	text, _ = resolve(t, "combat.name.hedgehog.boss", `\v[combat.name.hedgehog.boss]`, src)
	assert.Equal(t, "Igelboss", text)
	assert.Equal(t, []string{"database.json/enemies/hedgehog.boss/name"}, src.asked)
}

func TestResolveComputed(t *testing.T) {
	text, c := resolve(t, "misc.localNum.7", "", newSource())
	assert.Equal(t, "7", text)
	assert.Empty(t, c.Diagnostics())
}

func TestResolveInvalidNumber(t *testing.T) {
	src := newSource()
	text, c := resolve(t, "item.abc.name", "", src)
	assert.Equal(t, Invalid, text)
	require.Len(t, c.Diagnostics(), 1)
	assert.Equal(t, diag.Error, c.Diagnostics()[0].Severity)
	assert.Equal(t, "'abc' is not a number", c.Diagnostics()[0].Message)
	assert.Empty(t, src.asked)
}

func TestResolveNotFoundAndNotText(t *testing.T) {
	text, c := resolve(t, "area.nowhere.name", "", newSource())
	assert.Equal(t, Invalid, text)
	require.Len(t, c.Diagnostics(), 1)
	assert.Equal(t, "invalid variable reference 'area.nowhere.name': not found", c.Diagnostics()[0].Message)

	text, c = resolve(t, "lore.title.weird", "", newSource())
	assert.Equal(t, Invalid, text)
	require.Len(t, c.Diagnostics(), 1)
	assert.Equal(t, "variable reference 'lore.title.weird' is not text", c.Diagnostics()[0].Message)
}

func TestResolveUnknownVariable(t *testing.T) {
	text, c := resolve(t, "tmp.counter", `You have \v[tmp.counter] coins`, newSource())
	assert.Equal(t, Unknown, text)
	assert.Empty(t, c.Diagnostics())

	text, c = resolve(t, "tmp.counter", "You have some coins", newSource())
	assert.Equal(t, Unknown, text)
	require.Len(t, c.Diagnostics(), 1)
	assert.Equal(t, diag.Warn, c.Diagnostics()[0].Severity)
	assert.Equal(t, "unknown variable tmp.counter not in original", c.Diagnostics()[0].Message)
}

func TestResolveFixed(t *testing.T) {
	r := NewResolver([]Template{{
		Pattern: []Component{Lit("player"), Named("stat")},
		Target:  Fixed("(stat)"),
	}})
	c := diag.NewCollector("x.json/y", "")
	assert.Equal(t, "(stat)", r.Resolve("player.hp", c.Report, "", newSource()))
	assert.Empty(t, c.Diagnostics())
}

func TestNewResolverRejectsTemplateWithoutPlaceholder(t *testing.T) {
	assert.Panics(t, func() {
		NewResolver([]Template{{Pattern: []Component{Lit("a"), Lit("b")}, Target: Fixed("x")}})
	})
}

func TestLookupDoesNotMatchWrongLength(t *testing.T) {
	r := NewResolver(DefaultTemplates())
	_, _, ok := r.Lookup("area.x.landmark.name", diag.Discard)
	assert.False(t, ok)
	_, _, ok = r.Lookup("combat.something", diag.Discard)
	assert.False(t, ok)
}
