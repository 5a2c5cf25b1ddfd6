package replace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l10n-checker/internal/diag"
)

func TestParseSubstitution(t *testing.T) {
	sub, err := ParseSubstitution(`s/(\d+) ?%/\1 %/`)
	require.NoError(t, err)
	assert.Equal(t, "50 % more, 3 % less", sub.Apply("50% more, 3 % less"))

	sub, err = ParseSubstitution(`s|a/b|c$d|`)
	require.NoError(t, err)
	assert.Equal(t, "xc$dx", sub.Apply("xa/bx"))
}

func TestParseSubstitutionErrors(t *testing.T) {
	for _, rule := range []string{
		"s//",
		"x/a/b/",
		"s/a/b/c",
		"s/a/b",
		"s/(/b/",
	} {
		_, err := ParseSubstitution(rule)
		assert.Error(t, err, rule)
	}
}

func TestTrimAnnotations(t *testing.T) {
	assert.Equal(t, "Hello ", TrimAnnotations("Hello <<C<<check the context"))
	assert.Equal(t, "Hi", TrimAnnotations("Hi<<A<<alt <<C<<comment"))
	assert.Equal(t, "Hi", TrimAnnotations("Hi<<C<<comment <<A<<alt"))
	assert.Equal(t, "plain", TrimAnnotations("plain"))
}

func TestPipelineBadnessBeforeAndAfter(t *testing.T) {
	p, err := NewPipeline(
		map[string]string{
			"double-space": "  ",
			"ascii-quote":  `"`,
		},
		[]string{`s/''/"/`, `s/\.\.\./…/`},
	)
	require.NoError(t, err)

	c := diag.NewCollector("x.json/y", "")
	out := p.Apply("He said ''hi''...  really<<C<<note with \"quotes\"", c.Report)
	assert.Equal(t, "He said \"hi\"…  really", out)

	var messages []string
	for _, d := range c.Diagnostics() {
		assert.Equal(t, diag.Warn, d.Severity)
		messages = append(messages, d.Message)
	}
	assert.Equal(t, []string{
		"badness 'ascii-quote' in text before substs",
		"badness 'double-space' in text before substs",
	}, messages, "the quote was already in the annotation, so it is not reported again")

	c = diag.NewCollector("x.json/y", "")
	p.Apply("He said ''hi''", c.Report)
	require.Len(t, c.Diagnostics(), 1)
	assert.Equal(t, "badness 'ascii-quote' in text after substs", c.Diagnostics()[0].Message)
}

func TestNewPipelineRejectsBadRegex(t *testing.T) {
	_, err := NewPipeline(map[string]string{"broken": "("}, nil)
	assert.Error(t, err)
	_, err = NewPipeline(nil, []string{"nope"})
	assert.Error(t, err)
}
