package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/snowballc/sbc/errors"
	"github.com/snowballc/sbc/source"
)

// Keywords is the reserved-word set, matched after an identifier-shaped
// run of characters is scanned (spec §4.1). It is a superset of the
// command names spec.md calls out directly, filled out with the rest of
// the original grammar's keyword list (tolimit/atlimit/setlimit, set,
// unset, reverse, for) per SPEC_FULL §12.
var Keywords = map[string]bool{
	"maxint": true, "minint": true, "cursor": true, "limit": true,
	"size": true, "sizeof": true, "or": true, "and": true,
	"strings": true, "integers": true, "booleans": true, "routines": true,
	"externals": true, "groupings": true, "define": true, "as": true,
	"not": true, "test": true, "try": true, "do": true, "fail": true,
	"goto": true, "gopast": true, "repeat": true, "loop": true,
	"atleast": true, "insert": true, "attach": true, "delete": true,
	"hop": true, "next": true, "setmark": true, "tomark": true,
	"atmark": true, "tolimit": true, "atlimit": true, "setlimit": true,
	"for": true, "backwards": true, "reverse": true, "substring": true,
	"among": true, "set": true, "unset": true, "non": true,
	"true": true, "false": true, "backwardmode": true,
	"stringescapes": true, "stringdef": true, "hex": true, "decimal": true,
}

// puncts lists the punctuation tokens, longest first so that e.g. "<-"
// is preferred over "<". "<+" is the insert-command alias for the
// "insert" keyword and "->" introduces an export-slice command
// (original_source/src/sbl2py/grammar.py: CMD_INSERT, CMD_EXPORT_SLICE).
var puncts = []string{
	"<-", "<=", "<+", "==", "!=", ">=", "+=", "-=", "*=", "/=", "->",
	"(", ")", "[", "]", "<", ">", "=", "+", "-", "*", "/", "$", ",",
}

// Lexer tokenizes one Source, expanding {name}-style string escapes
// inline as it scans string literals (spec §4.1). The escape delimiter
// pair and the name->rune table are mutated as stringescapes/stringdef
// directives are encountered; those two directives are fully consumed
// by the lexer and never reach the parser, mirroring sbl2py's grammar
// actions for them (which likewise produce no AST node — see
// original_source/src/sbl2py/grammar.py, stringescapes_cmd_action and
// stringdef_cmd_action, both of which `return []`).
type Lexer struct {
	src               *source.Source
	content           []byte
	pos               int
	escLeft, escRight rune
	stringdefs        map[string]rune
}

// New creates a Lexer over src. Escape delimiters default to { and }
// per spec §9's Open Question resolution: a stringescapes directive is
// only required when the source wants different delimiters.
func New(src *source.Source) *Lexer {
	return &Lexer{
		src:        src,
		content:    src.Content(),
		escLeft:    '{',
		escRight:   '}',
		stringdefs: map[string]rune{},
	}
}

func (l *Lexer) posAt(byteOffset int) source.Pos {
	return source.NewPos(l.src, byteOffset)
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.content)
}

func (l *Lexer) peekRune() (rune, int) {
	if l.eof() {
		return 0, 0
	}
	return utf8.DecodeRune(l.content[l.pos:])
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

// Next returns the next token, expanding escapes and skipping comments,
// whitespace, and fully-consumed stringescapes/stringdef directives.
// Once the source is exhausted it returns an EOF-kind token forever,
// never an error.
func (l *Lexer) Next() (Token, error) {
	for {
		l.skipSpaceAndComments()
		if l.eof() {
			return newToken(EOF, "", l.posAt(l.pos)), nil
		}

		start := l.pos
		r, _ := l.peekRune()

		switch {
		case r == '\'':
			return l.scanString()

		case isDigit(r):
			return l.scanInt(), nil

		case isIdentStart(r):
			ident := l.scanIdent()
			switch ident {
			case "stringescapes":
				if err := l.consumeStringescapes(start); err != nil {
					return Token{}, err
				}
				continue
			case "stringdef":
				if err := l.consumeStringdef(); err != nil {
					return Token{}, err
				}
				continue
			}
			pos := l.posAt(start)
			if Keywords[ident] {
				return newToken(Keyword, ident, pos), nil
			}
			return newToken(Ident, ident, pos), nil

		default:
			if p := l.matchPunct(); p != "" {
				return newToken(Punct, p, l.posAt(start)), nil
			}
			return Token{}, errors.At(errors.Lex, l.posAt(start), "unexpected character %q", r)
		}
	}
}

func (l *Lexer) skipSpaceAndComments() {
	for !l.eof() {
		r, size := l.peekRune()
		if isSpace(r) {
			l.pos += size
			continue
		}
		if r == '/' && l.pos+1 < len(l.content) && l.content[l.pos+1] == '/' {
			for !l.eof() && l.content[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		if r == '/' && l.pos+1 < len(l.content) && l.content[l.pos+1] == '*' {
			l.pos += 2
			for !l.eof() && !(l.content[l.pos] == '*' && l.pos+1 < len(l.content) && l.content[l.pos+1] == '/') {
				l.pos++
			}
			if !l.eof() {
				l.pos += 2
			}
			continue
		}
		return
	}
}

func (l *Lexer) scanIdent() string {
	start := l.pos
	for !l.eof() {
		r, size := l.peekRune()
		if !isIdentCont(r) {
			break
		}
		l.pos += size
	}
	return string(l.content[start:l.pos])
}

func (l *Lexer) scanInt() Token {
	start := l.pos
	for !l.eof() {
		r, _ := l.peekRune()
		if !isDigit(r) {
			break
		}
		l.pos++
	}
	return newToken(Int, string(l.content[start:l.pos]), l.posAt(start))
}

func (l *Lexer) matchPunct() string {
	for _, p := range puncts {
		n := len(p)
		if l.pos+n <= len(l.content) && string(l.content[l.pos:l.pos+n]) == p {
			l.pos += n
			return p
		}
	}
	return ""
}

// scanString reads a single-quoted literal, expanding {name} escape
// references via the active escLeft/escRight/stringdefs table.
func (l *Lexer) scanString() (Token, error) {
	start := l.pos
	l.pos++ // opening quote
	var out []rune
	for {
		if l.eof() {
			return Token{}, errors.At(errors.Lex, l.posAt(start), "unterminated string literal")
		}
		r, size := l.peekRune()
		if r == '\'' {
			l.pos += size
			break
		}
		if r == l.escLeft {
			escStart := l.pos
			l.pos += size
			name, ok := l.scanEscapeName()
			if !ok {
				return Token{}, errors.At(errors.Lex, l.posAt(escStart), "malformed string escape")
			}
			repl, ok := l.stringdefs[name]
			if !ok {
				return Token{}, errors.At(errors.Lex, l.posAt(escStart), "unknown string escape name %q", name)
			}
			out = append(out, repl)
			continue
		}
		out = append(out, r)
		l.pos += size
	}
	return newToken(String, string(out), l.posAt(start)), nil
}

// scanEscapeName reads up to the escRight delimiter and returns the
// enclosed text (the stringdef name, or "'"/"[" for the two builtin
// self-escapes).
func (l *Lexer) scanEscapeName() (string, bool) {
	start := l.pos
	for !l.eof() {
		r, size := l.peekRune()
		if r == l.escRight {
			name := string(l.content[start:l.pos])
			l.pos += size
			return name, true
		}
		l.pos += size
	}
	return "", false
}

// consumeStringdef parses `stringdef NAME (hex|decimal) 'XX XX ...'` and
// registers NAME in the escape table. It never emits a token.
func (l *Lexer) consumeStringdef() error {
	l.skipSpaceAndComments()
	nameStart := l.pos
	name := l.scanEscapeDefName()
	if name == "" {
		return errors.At(errors.Escape, l.posAt(nameStart), "expected stringdef name")
	}
	l.skipSpaceAndComments()
	modeStart := l.pos
	mode := l.scanIdent()
	if mode != "hex" && mode != "decimal" {
		return errors.At(errors.Escape, l.posAt(modeStart), "expected \"hex\" or \"decimal\" in stringdef, got %q", mode)
	}
	l.skipSpaceAndComments()
	if l.eof() || l.peekByteIsQuote() == false {
		return errors.At(errors.Escape, l.posAt(l.pos), "expected string literal in stringdef")
	}
	tok, err := l.scanString()
	if err != nil {
		return err
	}
	r, err := decodeCodepoint(tok.Text, mode)
	if err != nil {
		return errors.At(errors.Escape, l.posAt(nameStart), "%s", err.Error())
	}
	l.stringdefs[name] = r
	return nil
}

func (l *Lexer) peekByteIsQuote() bool {
	r, _ := l.peekRune()
	return r == '\''
}

// scanEscapeDefName reads a stringdef name, which per the original
// grammar may contain punctuation such as a trailing quote character
// (e.g. `a"`), so it is scanned up to the next whitespace rather than
// as a plain identifier.
func (l *Lexer) scanEscapeDefName() string {
	start := l.pos
	for !l.eof() {
		r, size := l.peekRune()
		if isSpace(r) {
			break
		}
		l.pos += size
	}
	return string(l.content[start:l.pos])
}

// consumeStringescapes parses `stringescapes LR` (two literal
// characters, unquoted) and installs them as the active delimiters,
// also registering the two builtin self-escapes for the apostrophe and
// opening bracket (mirrors sbl2py's stringescapes_cmd_action).
func (l *Lexer) consumeStringescapes(start int) error {
	if len(l.stringdefs) > 0 {
		return errors.At(errors.Escape, l.posAt(start), "stringescapes must appear before any stringdef")
	}
	l.skipSpaceAndComments()
	left, ok := l.nextRawChar()
	if !ok {
		return errors.At(errors.Escape, l.posAt(l.pos), "expected left escape delimiter")
	}
	l.skipSpaceAndComments()
	right, ok := l.nextRawChar()
	if !ok {
		return errors.At(errors.Escape, l.posAt(l.pos), "expected right escape delimiter")
	}
	l.escLeft = left
	l.escRight = right
	l.stringdefs["'"] = '\''
	l.stringdefs["["] = '['
	return nil
}

func (l *Lexer) nextRawChar() (rune, bool) {
	if l.eof() {
		return 0, false
	}
	r, size := l.peekRune()
	l.pos += size
	return r, true
}

// decodeCodepoint turns a stringdef's raw literal text (space-separated
// hex or decimal code point runs, e.g. "E4" or "228") into the single
// rune it denotes. Multi-codepoint stringdefs are rejected: spec's
// execution model binds one name to "a literal character".
func decodeCodepoint(raw, mode string) (rune, error) {
	fields := strings.Fields(raw)
	if len(fields) != 1 {
		return 0, strconv.ErrSyntax
	}
	base := 16
	if mode == "decimal" {
		base = 10
	}
	v, err := strconv.ParseInt(fields[0], base, 32)
	if err != nil {
		return 0, err
	}
	return rune(v), nil
}
