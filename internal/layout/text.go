// Package layout splits rendered fragments into words and packs them into
// lines under a pixel width, the way the game does.
package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"l10n-checker/internal/render"
)

// Sep is the separator following a word or a line.
type Sep int

const (
	// SepNone only ends the last word or line.
	SepNone Sep = iota
	SepSpace
	SepNewline
)

func (s Sep) String() string {
	switch s {
	case SepSpace:
		return " "
	case SepNewline:
		return "\n"
	}
	return ""
}

// RenderedText holds the same text twice: Plain, used for measurement and
// for humans, and Styled, with ANSI sequences and icon placeholders for
// display.
type RenderedText struct {
	Plain  string
	Styled string
	// Size is the width in pixels, filled by Measure or Wrap.
	Size int
	// Sep follows the text; SepNone only for the last word or line.
	Sep   Sep
	Icons []string
}

// FromFragment converts one render fragment.
func FromFragment(f render.Fragment) RenderedText {
	switch f.Kind {
	case render.Style:
		return RenderedText{Styled: f.Value}
	case render.Icon:
		return RenderedText{Styled: render.IconPlaceholder, Icons: []string{f.Value}}
	}
	return RenderedText{Plain: f.Value, Styled: f.Value}
}

// AddPlain appends literal text to both forms.
func (rt *RenderedText) AddPlain(text string) {
	rt.Plain += text
	rt.Styled += text
}

// Append concatenates other after rt, inserting rt's separator first.
// spaceSize is added to the size only when that separator is a space.
func (rt *RenderedText) Append(other RenderedText, spaceSize int) {
	sep := rt.Sep.String()
	rt.Plain += sep + other.Plain
	rt.Styled += sep + other.Styled
	rt.Size += other.Size
	if rt.Sep == SepSpace {
		rt.Size += spaceSize
	}
	rt.Sep = other.Sep
	if len(other.Icons) > 0 {
		icons := make([]string, 0, len(rt.Icons)+len(other.Icons))
		rt.Icons = append(append(icons, rt.Icons...), other.Icons...)
	}
}

// trailingStyle matches an ANSI SGR sequence at the end of styled text.
var trailingStyle = regexp.MustCompile("\x1b\\[[0-9;]*m$")

// ChompLast removes the last character or icon and returns it (the icon
// placeholder for icons). Styles trailing the removed unit are dropped with
// it. ok is false once nothing is left to remove. Size is not updated.
func (rt *RenderedText) ChompLast() (removed string, ok bool) {
	for {
		rt.Styled = trailingStyle.ReplaceAllString(rt.Styled, "")
		if rt.Plain != "" {
			last, n := utf8.DecodeLastRuneInString(rt.Plain)
			if strings.HasSuffix(rt.Styled, string(last)) {
				rt.Plain = rt.Plain[:len(rt.Plain)-n]
				rt.Styled = rt.Styled[:len(rt.Styled)-n]
				return string(last), true
			}
		}
		if len(rt.Icons) > 0 && strings.HasSuffix(rt.Styled, render.IconPlaceholder) {
			rt.Icons = rt.Icons[:len(rt.Icons)-1]
			rt.Styled = strings.TrimSuffix(rt.Styled, render.IconPlaceholder)
			return render.IconPlaceholder, true
		}
		if rt.Plain == "" {
			return "", false
		}
		// Styled ends with something unknown: drop it and look again.
		_, n := utf8.DecodeLastRuneInString(rt.Styled)
		if n == 0 {
			return "", false
		}
		rt.Styled = rt.Styled[:len(rt.Styled)-n]
	}
}
