package diag

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/reflow/wrap"
)

const (
	locationWidth = 77
	detailWidth   = 72
)

// Printer writes diagnostics in a human readable form and counts errors.
type Printer struct {
	mu      sync.Mutex
	out     io.Writer
	palette *Palette
	errors  int
	counts  map[Severity]int
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, palette *Palette) *Printer {
	if palette == nil {
		palette = NewPalette(false)
	}
	return &Printer{out: out, palette: palette, counts: make(map[Severity]int)}
}

// Print writes a single diagnostic.
func (p *Printer) Print(d Diagnostic) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s: %s%s\n", p.palette.Label(d.Severity), d.Message, p.palette.Normal)
	fmt.Fprintf(p.out, "at %s\n", wrapOutput(d.Location, locationWidth, "\t\t", "\t\t"))
	fmt.Fprintf(p.out, "   %s%s\n", wrapOutput(d.Detail, detailWidth, "\t", "   "), p.palette.Normal)

	p.counts[d.Severity]++
	if d.Severity == Error {
		p.errors++
	}
}

// PrintAll writes diagnostics in order.
func (p *Printer) PrintAll(ds []Diagnostic) {
	for _, d := range ds {
		p.Print(d)
	}
}

// Reporter returns a ReportFunc printing directly, for sequential callers.
func (p *Printer) Reporter(location, defaultDetail string) ReportFunc {
	return func(sev Severity, msg string, detail ...string) {
		d := Diagnostic{Severity: sev, Location: location, Message: msg, Detail: defaultDetail}
		if len(detail) > 0 {
			d.Detail = detail[0]
		}
		p.Print(d)
	}
}

// Errors returns the number of error diagnostics printed so far.
func (p *Printer) Errors() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errors
}

// Count returns the number of diagnostics printed with the given severity.
func (p *Printer) Count(sev Severity) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[sev]
}

// wrapOutput hard-wraps every line of text at length. The first chunk of the
// first line is not indented, continuation chunks get indent, and chunks
// starting a new source line get indentNewline.
func wrapOutput(text string, length int, indent, indentNewline string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		w := wrap.NewWriter(length)
		w.PreserveSpace = true
		_, _ = w.Write([]byte(line))
		for i, chunk := range strings.Split(w.String(), "\n") {
			if chunk == "" && i > 0 {
				continue
			}
			switch {
			case len(out) == 0:
				out = append(out, chunk)
			case i > 0:
				out = append(out, indent+chunk)
			default:
				out = append(out, indentNewline+chunk)
			}
		}
	}
	return strings.Join(out, "\n")
}
