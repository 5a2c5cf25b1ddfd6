// Package checker validates one translated string: markup, variable
// references and, when the box it goes into is known, its layout.
package checker

import (
	"fmt"
	"strings"

	"l10n-checker/internal/diag"
	"l10n-checker/internal/layout"
	"l10n-checker/internal/render"
	"l10n-checker/internal/tags"
	"l10n-checker/internal/variable"
)

// TextCheck is an optional extra check run on the rendered plain text, e.g.
// a glossary or a grammar checker.
type TextCheck interface {
	CheckText(plain, orig string, report diag.ReportFunc)
}

// Checker runs the whole pipeline on single strings. It keeps no state
// between calls and can be shared between goroutines.
type Checker struct {
	settings *Settings
	renderer *render.Renderer
	extras   []TextCheck
}

// New creates a checker.
func New(settings *Settings, renderer *render.Renderer, extras ...TextCheck) *Checker {
	return &Checker{settings: settings, renderer: renderer, extras: extras}
}

// Result is what a check laid out. Lines is empty when no box or metrics
// were available for the tags.
type Result struct {
	Box    tags.BoxType
	HasBox bool
	Lines  []layout.RenderedText
}

// CheckText checks text, the translation of orig. tagList selects the box,
// src resolves variable references.
func (c *Checker) CheckText(text, orig string, tagList []string, report diag.ReportFunc, src variable.Source) Result {
	if c.settings.Pipeline != nil {
		text = c.settings.Pipeline.Apply(text, report)
	}

	fragments := c.renderer.Render(text, orig, report, src)
	words := layout.Words(fragments)

	if len(c.extras) > 0 {
		plain := layout.Join(words).Plain
		for _, extra := range c.extras {
			extra.CheckText(plain, orig, report)
		}
	}

	box, ok := tags.BoxByTags(tagList)
	if !ok {
		return Result{}
	}
	metrics, ok := c.settings.Metrics[box.Font]
	if !ok {
		return Result{}
	}

	layout.MeasureAll(words, metrics, report)
	lines := layout.Wrap(words, box.WidthLimit(), metrics.SpaceSize())
	CheckBoxes(lines, box, metrics, report)
	return Result{Box: box, HasBox: true, Lines: lines}
}

// CheckBoxes reports lines overflowing box. For the widest line it finds
// where the text must be cut and shows it as prefix[]suffix.
func CheckBoxes(lines []layout.RenderedText, box tags.BoxType, metrics layout.Metrics, report diag.ReportFunc) {
	if len(lines) > box.MaxLines {
		styled := make([]string, len(lines))
		for i, l := range lines {
			styled[i] = l.Styled
		}
		report(diag.Error, fmt.Sprintf("Overfull %s: too many lines", box.Orientation), strings.Join(styled, "\n"))
	}

	maxSize, maxIndex := 0, -1
	for i, l := range lines {
		if maxIndex < 0 || l.Size > maxSize {
			maxSize, maxIndex = l.Size, i
		}
	}
	if maxIndex < 0 || maxSize <= box.Width {
		return
	}

	line := lines[maxIndex]
	overflow := ""
	for {
		removed, ok := line.ChompLast()
		if !ok {
			break
		}
		overflow = removed + overflow
		if layout.Measure(line, metrics, diag.Discard) < box.Width {
			break
		}
	}
	report(diag.Error,
		fmt.Sprintf("Overfull %s: %dpx too large", box.Orientation, maxSize-box.Width),
		line.Plain+"[]"+overflow)
}
