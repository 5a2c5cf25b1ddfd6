package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l10n-checker/internal/diag"
	"l10n-checker/internal/render"
)

const red = "\033[31m"
const normal = "\033[0m"

func text(s string) render.Fragment  { return render.Fragment{Kind: render.Text, Value: s} }
func style(s string) render.Fragment { return render.Fragment{Kind: render.Style, Value: s} }
func icon(s string) render.Fragment  { return render.Fragment{Kind: render.Icon, Value: s} }

func plains(rts []RenderedText) []string {
	out := make([]string, len(rts))
	for i, rt := range rts {
		out[i] = rt.Plain
	}
	return out
}

func TestWords(t *testing.T) {
	words := Words([]render.Fragment{
		text("Hi "),
		style(red),
		text("Lea"),
		style(normal),
		text(", take\nthis "),
		icon("helm"),
		text("helm"),
	})
	assert.Equal(t, []string{"Hi", "Lea,", "take", "this", "helm"}, plains(words))
	assert.Equal(t, []Sep{SepSpace, SepSpace, SepNewline, SepSpace, SepNone}, []Sep{
		words[0].Sep, words[1].Sep, words[2].Sep, words[3].Sep, words[4].Sep,
	})
	assert.Equal(t, red+"Lea"+normal+",", words[1].Styled)
	assert.Equal(t, "@helm", words[4].Styled)
	assert.Equal(t, []string{"helm"}, words[4].Icons)
}

func TestWordsTrailingSeparators(t *testing.T) {
	words := Words([]render.Fragment{text("a  b\n")})
	assert.Equal(t, []string{"a", "", "b", ""}, plains(words))
	assert.Equal(t, SepNone, words[len(words)-1].Sep)

	words = Words(nil)
	require.Len(t, words, 1)
	assert.Equal(t, RenderedText{}, words[0])
}

func TestWordsNeverContainSeparators(t *testing.T) {
	words := Words([]render.Fragment{text("one two"), text(" three\nfour"), text("five six")})
	for _, w := range words {
		assert.NotContains(t, w.Plain, " ")
		assert.NotContains(t, w.Plain, "\n")
	}
	assert.Equal(t, []string{"one", "two", "three", "fourfive", "six"}, plains(words))
}

var unitMetrics = Metrics{"a": 1, "b": 1, " ": 1}

func layoutText(t *testing.T, s string, width int) []RenderedText {
	t.Helper()
	words := Words([]render.Fragment{text(s)})
	c := diag.NewCollector("x.json/y", s)
	MeasureAll(words, unitMetrics, c.Report)
	require.Empty(t, c.Diagnostics())
	return Wrap(words, width, unitMetrics.SpaceSize())
}

func TestWrapHorizontalNeverWraps(t *testing.T) {
	lines := layoutText(t, "ab ab", Unbounded)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Size)
	assert.Equal(t, "ab ab", lines[0].Plain)
}

func TestWrapVertical(t *testing.T) {
	lines := layoutText(t, "ab ab", 3)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.LessOrEqual(t, l.Size, 3)
		assert.Equal(t, "ab", l.Plain)
	}
	assert.Equal(t, SepNone, lines[1].Sep)
}

func TestWrapExplicitNewline(t *testing.T) {
	lines := layoutText(t, "a\nb ab", Unbounded)
	assert.Equal(t, []string{"a", "b ab"}, plains(lines))
	assert.Equal(t, []int{1, 4}, []int{lines[0].Size, lines[1].Size})
}

func TestWrapExactFit(t *testing.T) {
	lines := layoutText(t, "ab a ab", 4)
	assert.Equal(t, []string{"ab a", "ab"}, plains(lines))
	assert.Equal(t, 4, lines[0].Size)
}

func TestMeasureDefaults(t *testing.T) {
	c := diag.NewCollector("x.json/y", "")
	rt := RenderedText{Plain: "abz", Icons: []string{"helm"}}
	assert.Equal(t, 4, Measure(rt, Metrics{"a": 1, "b": 1}, c.Report))
	require.Len(t, c.Diagnostics(), 2)
	assert.Equal(t, `Character 'z' has no metrics`, c.Diagnostics()[0].Message)
	assert.Equal(t, `Icon "helm" has no metrics`, c.Diagnostics()[1].Message)

	assert.Equal(t, 0, Measure(RenderedText{}, nil, c.Report))
	assert.Equal(t, 1, Metrics{}.SpaceSize())
}

func TestChompLast(t *testing.T) {
	rt := RenderedText{}
	rt.Append(FromFragment(text("ab")), 0)
	rt.Append(FromFragment(style(red)), 0)
	rt.Append(FromFragment(icon("helm")), 0)
	rt.Append(FromFragment(text("c")), 0)
	rt.Append(FromFragment(style(normal)), 0)

	var removed []string
	for {
		r, ok := rt.ChompLast()
		if !ok {
			break
		}
		removed = append(removed, r)
	}
	assert.Equal(t, []string{"c", "@", "b", "a"}, removed)
	assert.Empty(t, rt.Plain)
	assert.Empty(t, rt.Styled)
	assert.Empty(t, rt.Icons)
}
