// Package dictpath names a string inside the game data: a file path plus the
// chain of keys leading to the string inside that JSON file.
package dictpath

import (
	"fmt"
	"strings"
)

// Ref points at a value inside a game JSON file.
type Ref struct {
	// File is the path relative to assets/data, split on '/', e.g.
	// ["database.json"] or ["lang", "sc", "gui.en_US.json"].
	File []string
	// Dict is the list of object keys / array indices inside the file.
	Dict []string
}

// New builds a Ref, copying its arguments.
func New(file, dict []string) Ref {
	return Ref{File: append([]string(nil), file...), Dict: append([]string(nil), dict...)}
}

// String serializes the reference as "file/path.json/dict/path".
func (r Ref) String() string {
	return strings.Join(r.File, "/") + "/" + strings.Join(r.Dict, "/")
}

// FileString returns the file part only.
func (r Ref) FileString() string {
	return strings.Join(r.File, "/")
}

// Parse is the inverse of String: the file part ends at the first component
// with a .json extension.
func Parse(s string) (Ref, error) {
	parts := strings.Split(s, "/")
	for i, part := range parts {
		if strings.HasSuffix(part, ".json") {
			return Ref{File: parts[:i+1], Dict: parts[i+1:]}, nil
		}
	}
	return Ref{}, fmt.Errorf("parse reference %q: no .json component", s)
}

// Child returns a copy of r with key appended to its dict path.
func (r Ref) Child(key string) Ref {
	dict := make([]string, len(r.Dict), len(r.Dict)+1)
	copy(dict, r.Dict)
	return Ref{File: r.File, Dict: append(dict, key)}
}
