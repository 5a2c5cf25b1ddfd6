// Package glossary checks that established terms are translated consistently.
package glossary

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"l10n-checker/internal/diag"
	"l10n-checker/internal/textutil"
)

// Term is a glossary entry: source must be translated as target.
type Term struct {
	Source   string
	Target   string
	Category string // character, item, location, skill, general
}

// Glossary checks translations against a list of terms.
type Glossary struct {
	terms []Term
}

// New creates a glossary. Longer source terms are checked first.
func New(terms []Term) *Glossary {
	sorted := append([]Term(nil), terms...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Source) > len(sorted[j].Source)
	})
	return &Glossary{terms: sorted}
}

// Len returns the number of terms.
func (g *Glossary) Len() int {
	return len(g.terms)
}

// CheckText reports terms present in orig whose translation is missing from
// plain, the rendered translated text.
func (g *Glossary) CheckText(plain, orig string, report diag.ReportFunc) {
	for _, t := range g.terms {
		if !textutil.LaxContains(t.Source, orig) {
			continue
		}
		if textutil.LaxContains(t.Target, plain) {
			continue
		}
		report(diag.Notice, fmt.Sprintf("glossary term '%s' not translated as '%s'", t.Source, t.Target))
	}
}

// ParseTSV reads terms from tab separated lines: source, target and an
// optional category. Blank lines and lines starting with '#' are skipped.
func ParseTSV(r io.Reader) ([]Term, error) {
	var terms []Term
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			return nil, fmt.Errorf("line %d: expected source<TAB>target[<TAB>category]", lineNum)
		}
		t := Term{Source: fields[0], Target: fields[1], Category: "general"}
		if len(fields) > 2 && fields[2] != "" {
			t.Category = fields[2]
		}
		terms = append(terms, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}
	return terms, nil
}
