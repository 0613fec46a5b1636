// Package lexer tokenizes Snowball source text (spec §4.1): identifiers,
// reserved words, integers, single-quoted string literals with
// {name}-style escape expansion, and punctuation.
package lexer

import (
	"github.com/snowballc/sbc/source"
)

// Kind enumerates the token classes produced by the lexer.
type Kind int

const (
	EOF Kind = iota
	Ident
	Keyword
	Int
	String
	Punct
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "eof"
	case Ident:
		return "identifier"
	case Keyword:
		return "keyword"
	case Int:
		return "integer"
	case String:
		return "string"
	case Punct:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Token is one lexical unit. Text holds the literal source text for
// Ident/Keyword/Punct/Int tokens and the escape-expanded contents
// (without the surrounding quotes) for String tokens.
type Token struct {
	Kind Kind
	Text string
	pos  source.Pos
}

func (t Token) Line() int       { return t.pos.Line() }
func (t Token) Col() int        { return t.pos.Col() }
func (t Token) Pos() source.Pos { return t.pos }

// Is reports whether the token is a Keyword or Punct with the given text,
// the common case when the parser checks for a specific reserved word or
// operator.
func (t Token) Is(text string) bool {
	return (t.Kind == Keyword || t.Kind == Punct) && t.Text == text
}

func newToken(kind Kind, text string, pos source.Pos) Token {
	return Token{Kind: kind, Text: text, pos: pos}
}
