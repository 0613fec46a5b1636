// Package ast defines the node types produced by package parser: one
// Program per compilation unit, built from declarations, routine and
// grouping definitions, and the command trees that make up routine
// bodies (spec §3, §4.2). The node shapes mirror
// original_source/src/sbl2py/ast.py's class set, adapted from a single
// heterogeneous Node list type to concrete Go structs per construct.
package ast

import "github.com/snowballc/sbc/source"

// Node is implemented by every AST node and carries the source position
// used for diagnostics and (eventually) generated-code comments.
type Node interface {
	Pos() source.Pos
}

// base is embedded in every concrete node to supply Pos().
type base struct {
	pos source.Pos
}

func (b base) Pos() source.Pos { return b.pos }

func newBase(pos source.Pos) base { return base{pos: pos} }

// Program is the root node: the ordered sequence of top-level items a
// .sbl file contains (spec §3 Program). Order matters for name
// resolution (sem walks Items in order, as later declarations may not
// be referenced by earlier ones) and for emitting routines/groupings in
// a stable order.
type Program struct {
	base
	Items []TopLevel
}

func NewProgram(pos source.Pos, items []TopLevel) *Program {
	return &Program{base: newBase(pos), Items: items}
}

// TopLevel is implemented by every node that may appear directly inside
// a Program or inside a BackwardSection: Declaration, RoutineDef,
// GroupingDef, and BackwardSection itself.
type TopLevel interface {
	Node
	isTopLevel()
}

// DeclKind identifies which of the six header sections a Declaration
// belongs to (spec §3 Declarations).
type DeclKind int

const (
	StringsDecl DeclKind = iota
	IntegersDecl
	BooleansDecl
	RoutinesDecl
	ExternalsDecl
	GroupingsDecl
)

func (k DeclKind) String() string {
	switch k {
	case StringsDecl:
		return "strings"
	case IntegersDecl:
		return "integers"
	case BooleansDecl:
		return "booleans"
	case RoutinesDecl:
		return "routines"
	case ExternalsDecl:
		return "externals"
	case GroupingsDecl:
		return "groupings"
	default:
		return "unknown"
	}
}

// Declaration is one `strings ( ... )`-shaped header block. An
// externals block also implicitly declares its names as routines
// (spec §3: "every external is also a routine"), which the parser
// handles by registering the names in its routine table as well,
// rather than by anything visible in this node.
type Declaration struct {
	base
	Kind  DeclKind
	Names []string
}

func (d *Declaration) isTopLevel() {}

func NewDeclaration(pos source.Pos, kind DeclKind, names []string) *Declaration {
	return &Declaration{base: newBase(pos), Kind: kind, Names: names}
}

// RoutineDef is a `define NAME as COMMAND` body.
type RoutineDef struct {
	base
	Name string
	Body Command
}

func (r *RoutineDef) isTopLevel() {}

func NewRoutineDef(pos source.Pos, name string, body Command) *RoutineDef {
	return &RoutineDef{base: newBase(pos), Name: name, Body: body}
}

// BackwardSection wraps the routine and grouping definitions declared
// inside a `backwardmode ( ... )` block (spec §4.2): every routine
// defined in Items runs with its initial direction reversed.
type BackwardSection struct {
	base
	Items []TopLevel
}

func (b *BackwardSection) isTopLevel() {}

func NewBackwardSection(pos source.Pos, items []TopLevel) *BackwardSection {
	return &BackwardSection{base: newBase(pos), Items: items}
}

// GroupingExpr is the right-hand side of a grouping definition: a
// reference to a previously defined grouping, a literal character set,
// or a union/difference of two such expressions (spec §3 Groupings).
type GroupingExpr interface {
	Node
	isGroupingExpr()
}

// GroupingRef names a previously declared grouping used as an operand
// in a grouping definition's algebra (distinct from GroupingCmd, which
// is the same reference used as a routine-body command).
type GroupingRef struct {
	base
	Name string
}

func (g *GroupingRef) isGroupingExpr() {}

func NewGroupingRef(pos source.Pos, name string) *GroupingRef {
	return &GroupingRef{base: newBase(pos), Name: name}
}

// CharSet is a literal run of characters contributing to a grouping,
// e.g. 'aeiouy'.
type CharSet struct {
	base
	Chars string
}

func (c *CharSet) isGroupingExpr() {}

func NewCharSet(pos source.Pos, chars string) *CharSet {
	return &CharSet{base: newBase(pos), Chars: chars}
}

type SetUnion struct {
	base
	Left, Right GroupingExpr
}

func (s *SetUnion) isGroupingExpr() {}

func NewSetUnion(pos source.Pos, left, right GroupingExpr) *SetUnion {
	return &SetUnion{base: newBase(pos), Left: left, Right: right}
}

type SetDifference struct {
	base
	Left, Right GroupingExpr
}

func (s *SetDifference) isGroupingExpr() {}

func NewSetDifference(pos source.Pos, left, right GroupingExpr) *SetDifference {
	return &SetDifference{base: newBase(pos), Left: left, Right: right}
}

// GroupingDef is `define NAME GROUPING_EXPR` (spec §3 Groupings).
type GroupingDef struct {
	base
	Name string
	Expr GroupingExpr
}

func (g *GroupingDef) isTopLevel() {}

func NewGroupingDef(pos source.Pos, name string, expr GroupingExpr) *GroupingDef {
	return &GroupingDef{base: newBase(pos), Name: name, Expr: expr}
}

// Chars is the operand type shared by insert/attach/<-/startswith-like
// commands (grammar.py's CHARS = STR_LITERAL | CHARS_REF): either a
// literal string or a reference to a previously declared string name.
type Chars struct {
	base
	Literal bool
	Text    string // literal text, or the referenced string's name
}

func NewCharsLiteral(pos source.Pos, text string) Chars {
	return Chars{base: newBase(pos), Literal: true, Text: text}
}

func NewCharsRef(pos source.Pos, name string) Chars {
	return Chars{base: newBase(pos), Literal: false, Text: name}
}
