// Package markup tokenizes the game's escape-command markup.
//
// The markup is a plain string where a backslash introduces a command:
//
//	\. \!        reveal delays
//	\\           a literal backslash
//	\c[N]        colour change
//	\s[N]        text speed
//	\i[NAME]     inline icon
//	\v[A.B.C]    variable reference
package markup

import (
	"fmt"
	"strings"

	"l10n-checker/internal/diag"
)

// Kind is the type of a token.
type Kind int

const (
	Text Kind = iota
	Delay
	Escape
	Color
	Speed
	VarRef
	Icon
)

var kindNames = [...]string{"TEXT", "DELAY", "ESCAPE", "COLOR", "SPEED", "VARREF", "ICON"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one lexical unit. Value depends on Kind: the literal text for
// Text, '.' or '!' for Delay, `\` for Escape, and the bracketed parameter for
// Color, Speed, VarRef and Icon.
type Token struct {
	Kind  Kind
	Value string
}

// bracketed maps command letters to the token kind they produce.
var bracketed = map[byte]Kind{
	'c': Color,
	's': Speed,
	'i': Icon,
	'v': VarRef,
}

// Tokenize splits text into tokens. Malformed commands are reported and
// skipped; scanning always continues.
func Tokenize(text string, report diag.ReportFunc) []Token {
	var tokens []Token
	last := 0
	for {
		index := strings.IndexByte(text[last:], '\\')
		if index < 0 {
			break
		}
		index += last
		if index > last {
			tokens = append(tokens, Token{Kind: Text, Value: text[last:index]})
		}
		next, tok, ok := command(text, index, report)
		if ok {
			tokens = append(tokens, tok)
		}
		last = next
	}
	if last < len(text) {
		tokens = append(tokens, Token{Kind: Text, Value: text[last:]})
	}
	return tokens
}

// command decodes the escape starting at index and returns where scanning
// resumes: two bytes further by default, or right after the closing bracket.
func command(text string, index int, report diag.ReportFunc) (next int, tok Token, ok bool) {
	next = min(index+2, len(text))
	if index+1 >= len(text) {
		report(diag.Warn, "unknown escape '\\'")
		return next, tok, false
	}
	char := text[index+1]
	switch char {
	case '.', '!':
		return next, Token{Kind: Delay, Value: string(char)}, true
	case '\\':
		return next, Token{Kind: Escape, Value: `\`}, true
	}

	kind, isBracketed := bracketed[char]
	if !isBracketed {
		report(diag.Warn, fmt.Sprintf("unknown escape '\\%s'", escapeChar(text, index+1)))
		return skipRune(text, index+1), tok, false
	}
	if index+2 >= len(text) || text[index+2] != '[' {
		report(diag.Error, fmt.Sprintf("'\\%c' not followed by '['", char))
		return next, tok, false
	}
	end := strings.IndexByte(text[index+2:], ']')
	if end < 0 {
		report(diag.Error, fmt.Sprintf("'\\%c[' not finished", char))
		return next, tok, false
	}
	end += index + 2
	return end + 1, Token{Kind: kind, Value: text[index+3 : end]}, true
}

// escapeChar returns the whole rune at i, so multi-byte characters are
// reported intact.
func escapeChar(text string, i int) string {
	return text[i:skipRune(text, i)]
}

func skipRune(text string, i int) int {
	for j := i + 1; j <= len(text); j++ {
		if j == len(text) || text[j]&0xC0 != 0x80 {
			return j
		}
	}
	return len(text)
}

// Scan tokenizes text without reporting anything and returns the values of
// every token of the given kind. It is used to look for references and icons
// already present in an original text.
func Scan(text string, kind Kind) []string {
	var values []string
	for _, tok := range Tokenize(text, diag.Discard) {
		if tok.Kind == kind {
			values = append(values, tok.Value)
		}
	}
	return values
}

// Contains reports whether text holds a token of the given kind and value.
func Contains(text string, kind Kind, value string) bool {
	for _, v := range Scan(text, kind) {
		if v == value {
			return true
		}
	}
	return false
}

// String reconstructs the markup for a token.
func (t Token) String() string {
	switch t.Kind {
	case Text:
		return t.Value
	case Delay:
		return `\` + t.Value
	case Escape:
		return `\\`
	case Color:
		return `\c[` + t.Value + `]`
	case Speed:
		return `\s[` + t.Value + `]`
	case Icon:
		return `\i[` + t.Value + `]`
	case VarRef:
		return `\v[` + t.Value + `]`
	}
	return ""
}
