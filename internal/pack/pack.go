// Package pack reads translation packs: JSON objects mapping a serialized
// game reference to the translation of the string found there.
package pack

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/tidwall/gjson"
)

// Entry is one translated string.
type Entry struct {
	// Orig is the source text the translation was made from. nil when the
	// pack does not record it.
	Orig *string `json:"orig,omitempty"`
	Text string  `json:"text"`
	// Quality is a reviewer flag: bad, incomplete, unknown, wrong or spell.
	Quality    string `json:"quality,omitempty"`
	Note       string `json:"note,omitempty"`
	Ciphertext any    `json:"ciphertext,omitempty"`
}

// Encrypted reports whether the entry only carries an encrypted translation.
func (e *Entry) Encrypted() bool {
	return e.Ciphertext != nil
}

// Pack is a loaded translation pack. Keys keep the order of the file.
type Pack struct {
	entries map[string]*Entry
	keys    []string
}

// Load reads and parses a pack file.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a pack.
func Parse(data []byte) (*Pack, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid pack JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("pack is not a JSON object")
	}

	p := &Pack{entries: make(map[string]*Entry)}
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		entry := &Entry{}
		if err = json.Unmarshal([]byte(value.Raw), entry); err != nil {
			err = fmt.Errorf("entry %q: %w", key.String(), err)
			return false
		}
		k := key.String()
		if _, dup := p.entries[k]; !dup {
			p.keys = append(p.keys, k)
		}
		p.entries[k] = entry
		return true
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Keys returns the references of all entries in file order.
func (p *Pack) Keys() []string {
	return p.keys
}

// Len returns the number of entries.
func (p *Pack) Len() int {
	return len(p.keys)
}

// Lookup returns the entry for ref, if any.
func (p *Pack) Lookup(ref string) (*Entry, bool) {
	e, ok := p.entries[ref]
	return e, ok
}

// Get returns the entry for ref when it was translated from orig. An entry
// made from another source text is stale and treated as missing.
func (p *Pack) Get(ref, orig string) (*Entry, bool) {
	e, ok := p.entries[ref]
	if !ok {
		return nil, false
	}
	if e.Orig != nil && *e.Orig != orig {
		return nil, false
	}
	return e, true
}

// Stats counts the entries of a pack.
type Stats struct {
	Total      int
	Translated int
	Encrypted  int
	// Quality counts entries per quality flag.
	Quality map[string]int
}

// Stats computes the statistics of the pack.
func (p *Pack) Stats() Stats {
	s := Stats{Total: len(p.keys), Quality: make(map[string]int)}
	for _, k := range p.keys {
		e := p.entries[k]
		switch {
		case e.Text != "":
			s.Translated++
		case e.Encrypted():
			s.Encrypted++
		}
		if e.Quality != "" {
			s.Quality[e.Quality]++
		}
	}
	return s
}

// QualityNames returns the quality flags present, sorted.
func (s Stats) QualityNames() []string {
	names := make([]string, 0, len(s.Quality))
	for name := range s.Quality {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
