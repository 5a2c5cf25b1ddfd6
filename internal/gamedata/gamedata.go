// Package gamedata reads the strings of the game: directly from its JSON
// assets or from a string cache stored in PostgreSQL.
package gamedata

import (
	"l10n-checker/internal/dictpath"
)

// Entry is a translatable string of the game.
type Entry struct {
	Ref dictpath.Ref
	// LangLabel maps locales to the text in that locale.
	LangLabel map[string]string
	// Tags describe what kind of text this is.
	Tags []string
}

// Reader gives access to game strings by reference.
type Reader interface {
	// Get returns the value at ref in the source locale. It is usually a
	// string, but a reference may also point at other JSON data.
	Get(ref dictpath.Ref) (any, bool)
	// Complete returns the entry at ref with all its locales and tags.
	Complete(ref dictpath.Ref) (Entry, bool)
}

// Walker is a Reader that can also list every string it knows.
type Walker interface {
	Reader
	Walk(fn func(Entry) error) error
}
