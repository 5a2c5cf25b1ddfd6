// Package variable resolves \v[...] references against a table of known
// variable templates.
package variable

import (
	"fmt"
	"strings"

	"l10n-checker/internal/diag"
	"l10n-checker/internal/dictpath"
	"l10n-checker/internal/markup"
	"l10n-checker/internal/textutil"
)

// Replacement texts used when a reference cannot be resolved.
const (
	Unknown = "(something)"
	Invalid = "(invalid)"
)

// Source gives access to the strings referenced by variables.
type Source interface {
	// Text returns the value to display for ref, usually its translation.
	// found is false when nothing exists at ref.
	Text(ref dictpath.Ref, report diag.ReportFunc) (value any, found bool)
	// Original returns the untranslated value at ref.
	Original(ref dictpath.Ref) (string, bool)
}

// Resolver matches variable names against templates in priority order.
type Resolver struct {
	templates []Template
}

// NewResolver creates a resolver. Every template must bind at least one
// parameter: a template without placeholders is a bug in the table.
func NewResolver(templates []Template) *Resolver {
	for _, t := range templates {
		if t.placeholders() == 0 {
			panic(fmt.Sprintf("variable template %q binds no parameter", t.String()))
		}
	}
	return &Resolver{templates: templates}
}

// Lookup finds the first template matching name. ok is false if none does.
// An empty params with ok=true means the template matched with an invalid
// parameter, which was reported.
func (r *Resolver) Lookup(name string, report diag.ReportFunc) (tpl Template, params Params, ok bool) {
	split := strings.Split(name, ".")
	for _, t := range r.templates {
		if p, matched := t.match(split, report); matched {
			return t, p, true
		}
	}
	return Template{}, nil, false
}

// Resolve returns the text replacing the variable reference name. orig is the
// untranslated text being checked, used to decide whether a reference was
// already there before translation.
func (r *Resolver) Resolve(name string, report diag.ReportFunc, orig string, src Source) string {
	tpl, params, ok := r.Lookup(name, report)
	if !ok {
		if !markup.Contains(orig, markup.VarRef, name) {
			report(diag.Warn, fmt.Sprintf("unknown variable %s not in original", name))
		}
		return Unknown
	}
	if len(params) == 0 {
		return Invalid
	}

	switch target := tpl.Target.(type) {
	case Computed:
		return target(params, report)
	case Fixed:
		return string(target)
	case External:
		return r.resolveExternal(name, target.Ref(params), report, orig, src)
	}
	panic(fmt.Sprintf("variable template %q has no target", tpl.String()))
}

func (r *Resolver) resolveExternal(name string, ref dictpath.Ref, report diag.ReportFunc, orig string, src Source) string {
	value, found := src.Text(ref, report)
	if !found || value == nil {
		report(diag.Error, fmt.Sprintf("invalid variable reference '%s': not found", name))
		return Invalid
	}
	text, isText := value.(string)
	if !isText {
		report(diag.Error, fmt.Sprintf("variable reference '%s' is not text", name))
		return Invalid
	}

	if !markup.Contains(orig, markup.VarRef, name) {
		origValue, ok := src.Original(ref)
		if !ok || !textutil.LaxContains(origValue, orig) {
			report(diag.Notice, fmt.Sprintf(
				"variable reference %s is known (%s) but neither a reference nor its value (%s) were found in original text:",
				name, text, origValue), orig)
		}
	}
	return text
}
