package variable

import (
	"strconv"
	"strings"

	"l10n-checker/internal/diag"
	"l10n-checker/internal/dictpath"
)

type componentKind int

const (
	literal componentKind = iota
	number
	named
	rest
)

// Component is one dotted part of a variable pattern.
type Component struct {
	kind componentKind
	// value is the literal text, or the parameter key for placeholders.
	value string
}

// Lit matches exactly s.
func Lit(s string) Component { return Component{kind: literal, value: s} }

// Num binds a decimal integer parameter. Its key in path templates is "$n".
func Num(n int) Component { return Component{kind: number, value: "$" + strconv.Itoa(n)} }

// Named binds an arbitrary string parameter. Its key is "#name".
func Named(name string) Component { return Component{kind: named, value: "#" + name} }

// Rest binds every remaining component, joined back with '.'. It must be the
// last component of a pattern. Its key is "#*".
func Rest() Component { return Component{kind: rest, value: "#*"} }

// Key returns the parameter key of a placeholder, or "" for literals.
func (c Component) Key() string {
	if c.kind == literal {
		return ""
	}
	return c.value
}

// Params maps placeholder keys to the matched components.
type Params map[string]string

// Target says what a matched variable resolves to.
type Target interface {
	isTarget()
}

// External resolves to a string stored in the game data. Elements of Path
// equal to a parameter key are substituted by the bound value.
type External struct {
	File []string
	Path []string
}

// Computed synthesizes the replacement text from the parameters.
type Computed func(params Params, report diag.ReportFunc) string

// Fixed resolves to a constant text.
type Fixed string

func (External) isTarget() {}
func (Computed) isTarget() {}
func (Fixed) isTarget()    {}

// Ref builds the concrete reference for the given parameters. Slashes in
// parameters become dots so they cannot be mistaken for path separators.
func (e External) Ref(params Params) dictpath.Ref {
	dict := make([]string, len(e.Path))
	for i, component := range e.Path {
		if subst := params[component]; subst != "" {
			dict[i] = strings.ReplaceAll(subst, "/", ".")
		} else {
			dict[i] = component
		}
	}
	return dictpath.New(e.File, dict)
}

// Template associates a variable pattern with its target.
type Template struct {
	Pattern []Component
	Target  Target
}

func (t Template) placeholders() int {
	n := 0
	for _, c := range t.Pattern {
		if c.kind != literal {
			n++
		}
	}
	return n
}

func (t Template) String() string {
	parts := make([]string, len(t.Pattern))
	for i, c := range t.Pattern {
		parts[i] = c.value
	}
	return strings.Join(parts, ".")
}

// match aligns a split variable name against the template pattern. It returns
// ok=false when the pattern does not apply. A pattern that applies but binds
// a non-numeric value to a Num placeholder reports an error and returns an
// empty Params with ok=true.
func (t Template) match(actual []string, report diag.ReportFunc) (Params, bool) {
	split := actual
	if n := len(t.Pattern); n > 0 && t.Pattern[n-1].kind == rest && len(actual) >= n-1 {
		head := n - 1
		split = append(append([]string(nil), actual[:head]...), strings.Join(actual[head:], "."))
	}
	if len(split) != len(t.Pattern) {
		return nil, false
	}

	params := make(Params)
	for i, c := range t.Pattern {
		if c.kind == literal {
			if split[i] != c.value {
				return nil, false
			}
			continue
		}
		params[c.value] = split[i]
	}

	for _, c := range t.Pattern {
		if c.kind != number {
			continue
		}
		if value := params[c.value]; !isDigits(value) {
			report(diag.Error, "'"+value+"' is not a number")
			return Params{}, true
		}
	}
	return params, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DefaultTemplates returns the variables known to appear in the game texts,
// in priority order.
func DefaultTemplates() []Template {
	database := []string{"database.json"}
	return []Template{
		{
			Pattern: []Component{Lit("lore"), Lit("title"), Named("1")},
			Target:  External{File: database, Path: []string{"lore", "#1", "title"}},
		},
		{
			Pattern: []Component{Lit("item"), Num(0), Lit("name")},
			Target:  External{File: []string{"item-database.json"}, Path: []string{"items", "$0", "name"}},
		},
		{
			Pattern: []Component{Lit("area"), Named("1"), Lit("name")},
			Target:  External{File: database, Path: []string{"areas", "#1", "name"}},
		},
		{
			Pattern: []Component{Lit("area"), Named("1"), Lit("landmark"), Lit("name"), Named("2")},
			Target:  External{File: database, Path: []string{"areas", "#1", "landmarks", "#2", "name"}},
		},
		{
			Pattern: []Component{Lit("misc"), Lit("localNum"), Num(0)},
			Target: Computed(func(params Params, _ diag.ReportFunc) string {
				return params["$0"]
			}),
		},
		{
			Pattern: []Component{Lit("combat"), Lit("name"), Rest()},
			Target:  External{File: database, Path: []string{"enemies", "#*", "name"}},
		},
	}
}
