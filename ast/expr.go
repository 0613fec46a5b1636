package ast

import "github.com/snowballc/sbc/source"

// IntExpr is an integer-valued expression: a literal, a reference, one
// of the built-in pseudo-variables (maxint, minint, cursor, limit, size,
// sizeof), or an arithmetic combination of these (spec §3, grammar.py's
// EXPRESSION_OPERAND/EXPRESSION precedence table: unary '-' binds
// tightest, then '*' '/', then '+' '-').
type IntExpr interface {
	Node
	isIntExpr()
}

type IntLit struct {
	base
	Value int
}

func (IntLit) isIntExpr() {}

func NewIntLit(pos source.Pos, value int) *IntLit {
	return &IntLit{base: newBase(pos), Value: value}
}

// IntRef names a previously declared integer variable.
type IntRef struct {
	base
	Name string
}

func (IntRef) isIntExpr() {}

func NewIntRef(pos source.Pos, name string) *IntRef {
	return &IntRef{base: newBase(pos), Name: name}
}

type MaxInt struct{ base }

func (MaxInt) isIntExpr() {}

func NewMaxInt(pos source.Pos) *MaxInt { return &MaxInt{newBase(pos)} }

type MinInt struct{ base }

func (MinInt) isIntExpr() {}

func NewMinInt(pos source.Pos) *MinInt { return &MinInt{newBase(pos)} }

// Cursor reads the current cursor position (spec §4 abstract machine).
type Cursor struct{ base }

func (Cursor) isIntExpr() {}

func NewCursor(pos source.Pos) *Cursor { return &Cursor{newBase(pos)} }

// Limit reads the current limit (end of slice in the active direction).
type Limit struct{ base }

func (Limit) isIntExpr() {}

func NewLimit(pos source.Pos) *Limit { return &Limit{newBase(pos)} }

// Size is the number of characters remaining between cursor and limit.
type Size struct{ base }

func (Size) isIntExpr() {}

func NewSize(pos source.Pos) *Size { return &Size{newBase(pos)} }

// SizeOf is the declared byte/rune length of a string reference.
type SizeOf struct {
	base
	Ref string
}

func (SizeOf) isIntExpr() {}

func NewSizeOf(pos source.Pos, ref string) *SizeOf {
	return &SizeOf{base: newBase(pos), Ref: ref}
}

type Negate struct {
	base
	X IntExpr
}

func (Negate) isIntExpr() {}

func NewNegate(pos source.Pos, x IntExpr) *Negate {
	return &Negate{base: newBase(pos), X: x}
}

// ArithOp is the binary operator of a Mul/Add node pair (spec's
// multiplicative and additive expression levels).
type ArithOp int

const (
	OpMul ArithOp = iota
	OpDiv
	OpAdd
	OpSub
)

func (o ArithOp) String() string {
	switch o {
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	default:
		return "?"
	}
}

type BinaryExpr struct {
	base
	Op          ArithOp
	Left, Right IntExpr
}

func (BinaryExpr) isIntExpr() {}

func NewBinaryExpr(pos source.Pos, op ArithOp, left, right IntExpr) *BinaryExpr {
	return &BinaryExpr{base: newBase(pos), Op: op, Left: left, Right: right}
}

// IntOp is the comparison/assignment operator of an IntCmd (spec §4.2
// integer commands: $x OP EXPRESSION).
type IntOp int

const (
	IntAssign IntOp = iota
	IntIncBy
	IntDecBy
	IntMulBy
	IntDivBy
	IntEq
	IntNe
	IntGe
	IntLe
	IntGt
	IntLt
)

func (o IntOp) String() string {
	switch o {
	case IntAssign:
		return "="
	case IntIncBy:
		return "+="
	case IntDecBy:
		return "-="
	case IntMulBy:
		return "*="
	case IntDivBy:
		return "/="
	case IntEq:
		return "=="
	case IntNe:
		return "!="
	case IntGe:
		return ">="
	case IntLe:
		return "<="
	case IntGt:
		return ">"
	case IntLt:
		return "<"
	default:
		return "?"
	}
}

// IsTest reports whether op only tests a condition (no mutation of the
// slot), i.e. every comparison operator. Such commands fail/succeed as
// a boolean command; the assignment/update forms always succeed.
func (o IntOp) IsTest() bool {
	switch o {
	case IntEq, IntNe, IntGe, IntLe, IntGt, IntLt:
		return true
	default:
		return false
	}
}

// IntCmd is `$slot OP expression`, used both to mutate an integer slot
// (=, +=, -=, *=, /=) and to test it (==, !=, >=, <=, >, <).
type IntCmd struct {
	base
	Slot string
	Op   IntOp
	Expr IntExpr
}

func (*IntCmd) isCommand() {}

func NewIntCmd(pos source.Pos, slot string, op IntOp, expr IntExpr) *IntCmd {
	return &IntCmd{base: newBase(pos), Slot: slot, Op: op, Expr: expr}
}
