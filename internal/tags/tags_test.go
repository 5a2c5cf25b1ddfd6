package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"l10n-checker/internal/dictpath"
	"l10n-checker/internal/layout"
)

func parents(docs ...string) []gjson.Result {
	out := make([]gjson.Result, len(docs))
	for i, d := range docs {
		out[i] = gjson.Parse(d)
	}
	return out
}

func TestFindDatabase(t *testing.T) {
	ref := dictpath.New([]string{"database.json"}, []string{"lore", "hist-1", "title"})
	got := Find(ref, parents(`{}`, `{}`, `{"category": "HISTORY"}`))
	assert.Equal(t, []string{"data-lore", "lore-history", "lore-title"}, got)

	ref = dictpath.New([]string{"database.json"}, []string{"quests", "q1", "location"})
	got = Find(ref, parents(`{}`, `{}`, `{"area": "bergen"}`))
	assert.Equal(t, []string{"data-quests", "quests-location", "quests-bergen"}, got)

	ref = dictpath.New([]string{"database.json"}, []string{"achievements", "a1", "name"})
	assert.Equal(t, []string{"data-achievements", "achievements-name"}, Find(ref, nil))
}

func TestFindItemsAndLang(t *testing.T) {
	ref := dictpath.New([]string{"item-database.json"}, []string{"items", "3", "description"})
	assert.Equal(t, []string{"item", "item-description"}, Find(ref, nil))

	ref = dictpath.New([]string{"lang", "sc", "gui.en_US.json"}, []string{"labels", "menu", "equip", "descriptions", "atk"})
	assert.Equal(t, []string{"langfile", "equip-description"}, Find(ref, nil))
}

func TestFindConversation(t *testing.T) {
	ref := dictpath.New([]string{"maps", "bergen.json"}, []string{"entities", "2", "event", "0", "message"})
	got := Find(ref, parents(`{}`, `[]`, `{}`, `{}`, `[]`,
		`{"type": "SHOW_SIDE_MSG", "person": {"person": "main.lea", "expression": "SMILE"}}`))
	assert.Equal(t, []string{"maps-message", "side", "conv", "main.lea", "smile"}, got)

	box, ok := BoxByTags(got)
	assert.True(t, ok)
	assert.Equal(t, BoxType{"normal", VBox, 202, 5}, box)
	assert.Equal(t, 202, box.WidthLimit())
}

func TestBoxByTags(t *testing.T) {
	box, ok := BoxByTags([]string{"data-items", "item-name"})
	assert.True(t, ok)
	assert.Equal(t, HBox, box.Orientation)
	assert.Equal(t, layout.Unbounded, box.WidthLimit())
	assert.Equal(t, "hbox", box.Orientation.String())

	_, ok = BoxByTags([]string{"Unknown"})
	assert.False(t, ok)
}
