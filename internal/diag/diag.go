package diag

import "fmt"

// Severity ranks a diagnostic. Only Error counts as a failure.
type Severity int

const (
	Error Severity = iota
	Warn
	Notice
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warn:
		return "warn"
	case Notice:
		return "notice"
	case Note:
		return "note"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Diagnostic is one problem found in a checked text.
type Diagnostic struct {
	Severity Severity
	// Location is the serialized reference of the checked text.
	Location string
	Message  string
	// Detail is the text shown under the message, usually the checked text itself.
	Detail string
}

// ReportFunc receives diagnostics. detail is optional; when it is omitted the
// receiver falls back to its own default (the checked text).
type ReportFunc func(sev Severity, msg string, detail ...string)

// Discard is a ReportFunc that drops everything. It lets the tokenizer run as
// a pure scanner.
func Discard(Severity, string, ...string) {}

// Collector buffers the diagnostics of a single text so that parallel checks
// can be printed in a stable order afterwards.
type Collector struct {
	location      string
	defaultDetail string
	diagnostics   []Diagnostic
}

// NewCollector creates a collector for one location.
func NewCollector(location, defaultDetail string) *Collector {
	return &Collector{location: location, defaultDetail: defaultDetail}
}

// Report implements ReportFunc.
func (c *Collector) Report(sev Severity, msg string, detail ...string) {
	d := Diagnostic{Severity: sev, Location: c.location, Message: msg, Detail: c.defaultDetail}
	if len(detail) > 0 {
		d.Detail = detail[0]
	}
	c.diagnostics = append(c.diagnostics, d)
}

// Diagnostics returns everything reported so far, in order.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// Count returns how many diagnostics of the given severity were reported.
func (c *Collector) Count(sev Severity) int {
	n := 0
	for _, d := range c.diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Errors is a shorthand for Count(Error).
func (c *Collector) Errors() int {
	return c.Count(Error)
}
