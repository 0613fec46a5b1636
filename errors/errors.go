// Package errors defines the diagnostic type shared by every compiler
// phase (lexer, parser, semantic analyzer, code generator) plus the
// driver's I/O errors.
package errors

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Phase identifies which pipeline stage raised an Error.
type Phase int

const (
	Lex Phase = iota
	Parse
	Name
	Mode
	Escape
	IO
)

func (p Phase) String() string {
	switch p {
	case Lex:
		return "lex"
	case Parse:
		return "parse"
	case Name, Mode, Escape:
		return "semantic"
	case IO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the single diagnostic type returned by every compiler phase.
// Phase, Line and Col place the failure; Message is a one-line human
// description. Suggestion, when non-empty, names the closest declared
// identifier for an undeclared-name error.
type Error struct {
	Phase      Phase
	Line, Col  int
	Message    string
	Suggestion string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Phase)
	if e.Line != 0 {
		msg += fmt.Sprintf(" at line %d col %d", e.Line, e.Col)
	}
	msg += ": " + e.Message
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// SourcePos is implemented by anything carrying a line/col, such as a
// lexer.Token or an ast node.
type SourcePos interface {
	Line() int
	Col() int
}

func New(phase Phase, line, col int, msg string, params ...interface{}) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return &Error{Phase: phase, Line: line, Col: col, Message: msg}
}

func At(phase Phase, pos SourcePos, msg string, params ...interface{}) *Error {
	if pos == nil {
		return New(phase, 0, 0, msg, params...)
	}
	return New(phase, pos.Line(), pos.Col(), msg, params...)
}

// Undeclared builds a Name error for an undeclared identifier, attaching
// the closest match among known names as a suggestion (nil/empty known
// is fine, it just yields no suggestion).
func Undeclared(pos SourcePos, kind, name string, known []string) *Error {
	e := At(Name, pos, "undeclared %s %q", kind, name)
	ranks := fuzzy.RankFindFold(name, known)
	if len(ranks) > 0 {
		best := ranks[0]
		for _, r := range ranks {
			if r.Distance < best.Distance {
				best = r
			}
		}
		e.Suggestion = best.Target
	}
	return e
}

// Duplicate builds a Name error for a redeclared identifier.
func Duplicate(pos SourcePos, kind, name string) *Error {
	return At(Name, pos, "%s %q already declared", kind, name)
}
