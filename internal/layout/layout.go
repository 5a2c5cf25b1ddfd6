package layout

import (
	"fmt"
	"strings"

	"l10n-checker/internal/diag"
	"l10n-checker/internal/render"
)

// Unbounded is the width limit of horizontal boxes, which never wrap.
const Unbounded = 999999

// Metrics maps a character, or an icon name, to its width in pixels.
type Metrics map[string]int

// SpaceSize returns the width of ' ', 1 when unknown.
func (m Metrics) SpaceSize() int {
	if size, ok := m[" "]; ok {
		return size
	}
	return 1
}

// Words splits fragments into words. Styles and icons stick to the word being
// built; ' ' and '\n' end a word and become its separator. The last word,
// possibly empty, has SepNone.
func Words(fragments []render.Fragment) []RenderedText {
	var words []RenderedText
	var current RenderedText
	for _, f := range fragments {
		if f.Kind != render.Text || f.Value == "" {
			current.Append(FromFragment(f), 0)
			continue
		}
		plain := f.Value
		for plain != "" {
			next := strings.IndexAny(plain, " \n")
			if next < 0 {
				current.AddPlain(plain)
				break
			}
			current.AddPlain(plain[:next])
			current.Sep = SepSpace
			if plain[next] == '\n' {
				current.Sep = SepNewline
			}
			words = append(words, current)
			current = RenderedText{}
			plain = plain[next+1:]
		}
	}
	return append(words, current)
}

// Measure returns the width of rt: every plain character plus every icon.
// Anything missing from metrics counts as 1px and is reported.
func Measure(rt RenderedText, metrics Metrics, report diag.ReportFunc) int {
	size := 0
	for _, r := range rt.Plain {
		w, ok := metrics[string(r)]
		if !ok {
			report(diag.Warn, fmt.Sprintf("Character %q has no metrics", r))
			w = 1
		}
		size += w
	}
	for _, icon := range rt.Icons {
		w, ok := metrics[icon]
		if !ok {
			report(diag.Warn, fmt.Sprintf("Icon %q has no metrics", icon))
			w = 1
		}
		size += w
	}
	return size
}

// MeasureAll sets the Size of every word.
func MeasureAll(words []RenderedText, metrics Metrics, report diag.ReportFunc) {
	for i := range words {
		words[i].Size = Measure(words[i], metrics, report)
	}
}

// Wrap packs measured words into lines no wider than widthLimit, if
// possible. A word that does not fit starts a new line; a word followed by a
// newline ends its line.
func Wrap(words []RenderedText, widthLimit, spaceSize int) []RenderedText {
	var lines []RenderedText
	var current RenderedText
	for _, word := range words {
		space := 0
		if current.Sep == SepSpace {
			space = spaceSize
		}
		if current.Size+word.Size+space > widthLimit {
			lines = append(lines, current)
			current = RenderedText{}
		}
		current.Append(word, spaceSize)
		if current.Sep == SepNewline {
			lines = append(lines, current)
			current = RenderedText{}
		}
	}
	return append(lines, current)
}

// Join concatenates words or lines back into one text, separators included.
func Join(rts []RenderedText) RenderedText {
	var out RenderedText
	for _, rt := range rts {
		out.Append(rt, 0)
	}
	return out
}
