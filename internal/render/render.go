// Package render interprets a token stream: it tracks colour and speed,
// resolves variables and produces styled fragments ready for layout.
package render

import (
	"strings"

	"l10n-checker/internal/diag"
	"l10n-checker/internal/markup"
	"l10n-checker/internal/variable"
)

// IconPlaceholder stands for an icon in styled text.
const IconPlaceholder = "@"

const (
	defaultColor = "0"
	unsetSpeed   = "-1"
	validSpeeds  = "01234567"
)

// gameColors maps \c[] parameters to palette colour names. The actual hue
// depends on the font; this is a mix. "3" is called purple by the game, "4"
// is grey and "5" orange.
var gameColors = map[string]string{
	"0": "normal",
	"1": "red",
	"2": "green",
	"3": "yellow",
	"4": "purple",
	"5": "orange",
}

// Kind tells what a Fragment carries.
type Kind int

const (
	// Text fragments hold literal game text.
	Text Kind = iota
	// Style fragments only carry an ANSI sequence.
	Style
	// Icon fragments stand for one icon; Value is the icon name.
	Icon
)

// Fragment is one unit of rendered output.
type Fragment struct {
	Kind  Kind
	Value string
}

// Renderer turns markup into fragments. It is safe for concurrent use: all
// state lives in a single Render call.
type Renderer struct {
	palette  *diag.Palette
	resolver *variable.Resolver
}

// New creates a renderer.
func New(palette *diag.Palette, resolver *variable.Resolver) *Renderer {
	if palette == nil {
		palette = diag.NewPalette(false)
	}
	return &Renderer{palette: palette, resolver: resolver}
}

// state is what one Render call tracks across tokens.
type state struct {
	color       string
	speed       string
	emittedText bool
}

// Render tokenizes text and renders it. orig is the untranslated text and
// src serves the strings referenced by variables.
func (r *Renderer) Render(text, orig string, report diag.ReportFunc, src variable.Source) []Fragment {
	var fragments []Fragment
	st := state{color: defaultColor, speed: unsetSpeed}

	for _, tok := range markup.Tokenize(text, report) {
		switch tok.Kind {
		case markup.Text:
			fragments = append(fragments, Fragment{Kind: Text, Value: tok.Value})
			st.emittedText = true
		case markup.Delay:
		case markup.Escape:
			report(diag.Notice, `\ present in text, is this intended ?`)
		case markup.Color:
			if f, ok := r.color(&st, tok.Value, report); ok {
				fragments = append(fragments, f)
			}
		case markup.Speed:
			r.speed(&st, tok.Value, report)
		case markup.Icon:
			if !markup.Contains(orig, markup.Icon, tok.Value) {
				report(diag.Notice, "icon not present in original text")
			}
			fragments = append(fragments, Fragment{Kind: Icon, Value: tok.Value})
		case markup.VarRef:
			value := r.resolver.Resolve(tok.Value, report, orig, src)
			fragments = append(fragments, Fragment{Kind: Text, Value: value})
			st.emittedText = true
		}
	}

	if st.color != defaultColor {
		report(diag.Notice, "color does not end with 0")
	}
	return fragments
}

func (r *Renderer) color(st *state, value string, report diag.ReportFunc) (Fragment, bool) {
	name, ok := gameColors[value]
	if !ok {
		report(diag.Error, `bad \c[] command`)
		return Fragment{}, false
	}
	if value == st.color {
		report(diag.Warn, "same color assigned twice")
	}
	st.color = value
	ansi := r.palette.Named(name)
	if ansi == "" {
		return Fragment{}, false
	}
	return Fragment{Kind: Style, Value: ansi}, true
}

func (r *Renderer) speed(st *state, value string, report diag.ReportFunc) {
	if len(value) != 1 || strings.IndexByte(validSpeeds, value[0]) < 0 {
		report(diag.Error, `bad \s[] command`)
		return
	}
	if st.emittedText {
		report(diag.Notice, "speed not at start of text, unusual")
	}
	if value == st.speed {
		report(diag.Warn, "same speed specified twice")
	}
	st.speed = value
}

