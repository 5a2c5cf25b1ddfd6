package diag

import (
	"os"

	"golang.org/x/term"
)

// Palette holds the ANSI sequences used for output. A zero Palette prints
// plain text.
type Palette struct {
	Red    string
	Green  string
	Yellow string
	Purple string
	// Blue is actually light blue (36); 34 is too dark on most terminals.
	Blue   string
	Normal string
}

// NewPalette returns the ANSI palette when enabled, the plain one otherwise.
func NewPalette(enabled bool) *Palette {
	if !enabled {
		return &Palette{}
	}
	return &Palette{
		Red:    "\033[31m",
		Green:  "\033[32m",
		Yellow: "\033[33m",
		Purple: "\033[35m",
		Blue:   "\033[36m",
		Normal: "\033[0m",
	}
}

// ColorEnabled resolves a --color mode (auto, always, never) against a file.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Named returns the sequence for a colour name, or "" when the palette has
// no representation for it.
func (p *Palette) Named(name string) string {
	switch name {
	case "red":
		return p.Red
	case "green":
		return p.Green
	case "yellow":
		return p.Yellow
	case "purple":
		return p.Purple
	case "blue":
		return p.Blue
	case "normal":
		return p.Normal
	}
	return ""
}

// Label returns the coloured, capitalized name of a severity.
func (p *Palette) Label(sev Severity) string {
	switch sev {
	case Error:
		return p.Red + "Error" + p.Normal
	case Warn:
		return p.Yellow + "Warning" + p.Normal
	case Notice:
		return p.Green + "Notice" + p.Normal
	case Note:
		return p.Blue + "Note" + p.Normal
	}
	return sev.String()
}
