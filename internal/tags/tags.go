// Package tags guesses what kind of game text a string is from where it was
// found, and maps those guesses to the box the text must fit in.
package tags

import (
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	"l10n-checker/internal/dictpath"
	"l10n-checker/internal/layout"
)

// Orientation of a text box.
type Orientation int

const (
	// HBox boxes only break lines on explicit newlines.
	HBox Orientation = iota
	// VBox boxes wrap at their width.
	VBox
)

func (o Orientation) String() string {
	if o == HBox {
		return "hbox"
	}
	return "vbox"
}

// BoxType is the layout constraint of a piece of text.
type BoxType struct {
	Font        string
	Orientation Orientation
	Width       int
	MaxLines    int
}

// WidthLimit is the width lines are wrapped at.
func (b BoxType) WidthLimit() int {
	if b.Orientation == HBox {
		return layout.Unbounded
	}
	return b.Width
}

// boxes maps tags to box types. Most sizes were measured in game; the
// comments say which ones are approximations.
var boxes = map[string]BoxType{
	// quest descriptions in the hub menu (exact)
	"quests-location": {"small", VBox, 238, 2},
	// item names: 142 comes often but includes the icon; it starts at 116
	// and stops at 122.
	"item-name": {"normal", HBox, 122, 1},
	// buffs can cost up to 90px of this.
	"item-description":  {"normal", HBox, 558, 1},
	"equip-description": {"small", VBox, 290, 2},
	// 128 in the status menu, closer to 110 in the circuit menu depending on
	// the translated art type.
	"players-lea-name":         {"normal", HBox, 128, 1},
	"achievements-name":        {"normal", HBox, 239, 1},
	"achievements-description": {"small", VBox, 224, 2},
	// subtasks in the quest menu
	"quests-text":        {"small", HBox, 220, 1},
	"quests-description": {"small", VBox, 254, 4},
	// only 6 lines fit in the ending dialog box (unconfirmed)
	"quests-briefing": {"small", VBox, 254, 6},
	// side messages, confirmed; 5 lines is a lot already
	"side": {"normal", VBox, 202, 5},
}

// BoxByTags returns the box of the first tag that has one.
func BoxByTags(tags []string) (BoxType, bool) {
	for _, tag := range tags {
		if box, ok := boxes[tag]; ok {
			return box, true
		}
	}
	return BoxType{}, false
}

// Find infers the tags of the string at ref. parents holds the objects
// enclosing it, outermost first, as returned by the game data readers.
func Find(ref dictpath.Ref, parents []gjson.Result) []string {
	var tags []string
	if len(ref.File) == 0 || len(ref.Dict) == 0 {
		return []string{"Unknown"}
	}

	first := strings.TrimSuffix(ref.File[0], ".json")
	last := ref.Dict[len(ref.Dict)-1]
	parentAt := func(i int) gjson.Result {
		if i < len(parents) {
			return parents[i]
		}
		return gjson.Result{}
	}

	switch {
	case first == "database":
		tags = append(tags, "data-"+ref.Dict[0])
		switch ref.Dict[0] {
		case "lore":
			category := strings.ToLower(parentAt(2).Get("category").String())
			return append(tags, "lore-"+category, "lore-"+last)
		case "quests":
			tags = append(tags, "quests-"+last, "quests-"+parentAt(2).Get("area").String())
		case "commonEvents":
		default:
			return append(tags, ref.Dict[0]+"-"+last)
		}
	case first == "item-database":
		tags = append(tags, "item", "item-"+last)
	case first == "lang" && ref.Dict[0] == "labels":
		tags = append(tags, "langfile")
		if strings.HasPrefix(ref.File[len(ref.File)-1], "gui") && len(ref.Dict) >= 4 &&
			slices.Equal(ref.Dict[1:4], []string{"menu", "equip", "descriptions"}) {
			tags = append(tags, "equip-description")
		}
	case first == "players" && len(ref.File) > 1 && ref.File[1] == "lea.json":
		tags = append(tags, "players-lea-"+last)
	default:
		tags = append(tags, first+"-"+last)
	}

	if len(parents) > 0 {
		tags = append(tags, eventTags(parents[len(parents)-1], last)...)
	}
	if len(tags) == 0 {
		tags = append(tags, "Unknown")
	}
	return tags
}

// eventTags derives tags from the event object holding the text.
func eventTags(parent gjson.Result, last string) []string {
	if !parent.IsObject() {
		return nil
	}
	if msgType := parent.Get("msgType").String(); msgType != "" {
		msgType = strings.ToLower(msgType)
		return []string{msgType, msgType + "-" + last}
	}
	textType := strings.ToLower(parent.Get("type").String())
	if textType == "" {
		return nil
	}
	textType = strings.TrimPrefix(textType, "show_")
	textType = strings.TrimSuffix(textType, "_msg")
	tags := []string{textType}
	if textType != "msg" && textType != "side" {
		return tags
	}
	tags = append(tags, "conv")
	who := parent.Get("person")
	switch {
	case who.Type == gjson.String && who.String() != "":
		tags = append(tags, who.String())
	case who.IsObject():
		tags = append(tags, who.Get("person").String(), strings.ToLower(who.Get("expression").String()))
	}
	return tags
}
