// Package replace applies the configured text substitutions to a translation
// before it is laid out, and flags configured "badness" patterns.
package replace

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"l10n-checker/internal/diag"
)

// annotationMarks start authoring notes appended to a translation. Everything
// from the first one onwards is not game text.
var annotationMarks = []string{"<<C<<", "<<A<<"}

// backref matches python-style \1 back-references in replacement strings.
var backref = regexp.MustCompile(`\\([0-9]+)`)

// Substitution is one compiled s/pattern/replacement/ rule.
type Substitution struct {
	Source      string
	pattern     *regexp.Regexp
	replacement string
}

// Apply runs the substitution over text, replacing every match.
func (s Substitution) Apply(text string) string {
	return s.pattern.ReplaceAllString(text, s.replacement)
}

// ParseSubstitution compiles a rule written as s/pattern/replacement/. The
// character after the 's' is the delimiter, so s|a/b|c| works too.
func ParseSubstitution(rule string) (Substitution, error) {
	if len(rule) < len("s///") {
		return Substitution{}, fmt.Errorf("substitution %q too short", rule)
	}
	parts := strings.Split(rule, rule[1:2])
	if len(parts) != 4 || parts[0] != "s" || parts[3] != "" {
		return Substitution{}, fmt.Errorf("substitution %q has invalid syntax", rule)
	}
	pattern, err := regexp.Compile(parts[1])
	if err != nil {
		return Substitution{}, fmt.Errorf("regex substitution %q failed: %w", rule, err)
	}
	sub := Substitution{
		Source:      rule,
		pattern:     pattern,
		replacement: backref.ReplaceAllString(strings.ReplaceAll(parts[2], "$", "$$"), `$${$1}`),
	}
	sub.Apply("this is a test of your regex: œ")
	return sub, nil
}

// Badness is a named pattern that should not appear in translated text.
type Badness struct {
	Name    string
	pattern *regexp.Regexp
}

// Match reports whether the badness occurs in text.
func (b Badness) Match(text string) bool {
	return b.pattern.MatchString(text)
}

// Pipeline holds the configured badnesses and substitutions.
type Pipeline struct {
	badnesses     []Badness
	substitutions []Substitution
}

// NewPipeline compiles the configuration. Badnesses are evaluated in name
// order so that diagnostics are stable.
func NewPipeline(badnesses map[string]string, substitutions []string) (*Pipeline, error) {
	p := &Pipeline{}

	names := make([]string, 0, len(badnesses))
	for name := range badnesses {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pattern, err := regexp.Compile(badnesses[name])
		if err != nil {
			return nil, fmt.Errorf("badness regex %q failed: %w", badnesses[name], err)
		}
		p.badnesses = append(p.badnesses, Badness{Name: name, pattern: pattern})
	}

	for _, rule := range substitutions {
		sub, err := ParseSubstitution(rule)
		if err != nil {
			return nil, err
		}
		p.substitutions = append(p.substitutions, sub)
	}
	return p, nil
}

// Apply flags badnesses, trims annotations and runs the substitutions in
// order. A badness matching only after the substitutions is reported
// separately: the rule introduced it, not the translator.
func (p *Pipeline) Apply(text string, report diag.ReportFunc) string {
	flagged := make(map[string]bool, len(p.badnesses))
	for _, b := range p.badnesses {
		if b.Match(text) {
			flagged[b.Name] = true
			report(diag.Warn, fmt.Sprintf("badness '%s' in text before substs", b.Name))
		}
	}

	text = TrimAnnotations(text)
	for _, sub := range p.substitutions {
		text = sub.Apply(text)
	}

	for _, b := range p.badnesses {
		if !flagged[b.Name] && b.Match(text) {
			report(diag.Warn, fmt.Sprintf("badness '%s' in text after substs", b.Name))
		}
	}
	return text
}

// TrimAnnotations cuts text at the earliest annotation mark.
func TrimAnnotations(text string) string {
	cut := len(text)
	for _, mark := range annotationMarks {
		if index := strings.Index(text, mark); index >= 0 && index < cut {
			cut = index
		}
	}
	return text[:cut]
}
