package ast

import "github.com/snowballc/sbc/source"

// Command is implemented by every node that can appear as (or inside)
// a routine body: the STR_CMD grammar of spec §4.2 plus the integer
// commands of §3/§4.2. A Command either succeeds, advancing state, or
// fails, restoring whatever its enclosing combinator requires restored
// (spec §4.4).
type Command interface {
	Node
	isCommand()
}

// --- literal/reference leaf commands ---

// StartsWith tests whether the input at the cursor begins with Value,
// advancing the cursor past the match on success (grammar.py's bare
// CHARS used as a command, wrapped in StartsWithNode).
type StartsWith struct {
	base
	Value Chars
}

func (*StartsWith) isCommand() {}

func NewStartsWith(pos source.Pos, value Chars) *StartsWith {
	return &StartsWith{base: newBase(pos), Value: value}
}

// RoutineCall invokes a previously declared or external routine by
// name.
type RoutineCall struct {
	base
	Name string
}

func (*RoutineCall) isCommand() {}

func NewRoutineCall(pos source.Pos, name string) *RoutineCall {
	return &RoutineCall{base: newBase(pos), Name: name}
}

// GroupingCmd tests whether the next character (in the active
// direction) belongs to the named grouping, advancing past it on
// success.
type GroupingCmd struct {
	base
	Name string
}

func (*GroupingCmd) isCommand() {}

func NewGroupingCmd(pos source.Pos, name string) *GroupingCmd {
	return &GroupingCmd{base: newBase(pos), Name: name}
}

// NonCmd is `non GROUPING` / `non-GROUPING`: tests that the next
// character is NOT in the named grouping, advancing past that one
// character on success (spec §4.2 Non).
type NonCmd struct {
	base
	Name string
}

func (*NonCmd) isCommand() {}

func NewNonCmd(pos source.Pos, name string) *NonCmd {
	return &NonCmd{base: newBase(pos), Name: name}
}

// BooleanTest succeeds or fails according to the named boolean slot's
// current value, without changing it.
type BooleanTest struct {
	base
	Name string
}

func (*BooleanTest) isCommand() {}

func NewBooleanTest(pos source.Pos, name string) *BooleanTest {
	return &BooleanTest{base: newBase(pos), Name: name}
}

type SetBool struct {
	base
	Name string
}

func (*SetBool) isCommand() {}

func NewSetBool(pos source.Pos, name string) *SetBool {
	return &SetBool{base: newBase(pos), Name: name}
}

type UnsetBool struct {
	base
	Name string
}

func (*UnsetBool) isCommand() {}

func NewUnsetBool(pos source.Pos, name string) *UnsetBool {
	return &UnsetBool{base: newBase(pos), Name: name}
}

// --- always-succeeding nullary commands ---

type nullary struct{ base }

func (*nullary) isCommand() {}

// Next advances the cursor by one character and always succeeds unless
// it is already at the limit, in which case it fails (spec §4.2 next).
type Next struct{ nullary }

func NewNext(pos source.Pos) *Next { return &Next{nullary{newBase(pos)}} }

// SetLeft sets bra to the current cursor ('[').
type SetLeft struct{ nullary }

func NewSetLeft(pos source.Pos) *SetLeft { return &SetLeft{nullary{newBase(pos)}} }

// SetRight sets ket to the current cursor (']').
type SetRight struct{ nullary }

func NewSetRight(pos source.Pos) *SetRight { return &SetRight{nullary{newBase(pos)}} }

// Delete removes the bra..ket slice from the backing buffer.
type Delete struct{ nullary }

func NewDelete(pos source.Pos) *Delete { return &Delete{nullary{newBase(pos)}} }

// AtLimit tests whether the cursor is exactly at the limit.
type AtLimit struct{ nullary }

func NewAtLimit(pos source.Pos) *AtLimit { return &AtLimit{nullary{newBase(pos)}} }

// ToLimit moves the cursor to the limit, always succeeding.
type ToLimit struct{ nullary }

func NewToLimit(pos source.Pos) *ToLimit { return &ToLimit{nullary{newBase(pos)}} }

// TrueCmd always succeeds without side effects.
type TrueCmd struct{ nullary }

func NewTrueCmd(pos source.Pos) *TrueCmd { return &TrueCmd{nullary{newBase(pos)}} }

// FalseCmd always fails without side effects.
type FalseCmd struct{ nullary }

func NewFalseCmd(pos source.Pos) *FalseCmd { return &FalseCmd{nullary{newBase(pos)}} }

// Substring is a marker consumed by the following `among`: it records
// the bra..ket region to examine instead of the full remaining input
// (spec §4.3, SPEC_FULL §12's "substring precedes among").
type Substring struct{ nullary }

func NewSubstring(pos source.Pos) *Substring { return &Substring{nullary{newBase(pos)}} }

// EmptyCmd is the literal `()`: always succeeds, used as a placeholder
// among-arm command or STR_CMD operand.
type EmptyCmd struct{ nullary }

func NewEmptyCmd(pos source.Pos) *EmptyCmd { return &EmptyCmd{nullary{newBase(pos)}} }

// --- operand-carrying commands ---

type Insert struct {
	base
	Value Chars
}

func (*Insert) isCommand() {}

func NewInsert(pos source.Pos, value Chars) *Insert {
	return &Insert{base: newBase(pos), Value: value}
}

type Attach struct {
	base
	Value Chars
}

func (*Attach) isCommand() {}

func NewAttach(pos source.Pos, value Chars) *Attach {
	return &Attach{base: newBase(pos), Value: value}
}

// ReplaceSlice is `<- CHARS`: replaces the bra..ket slice with Value.
type ReplaceSlice struct {
	base
	Value Chars
}

func (*ReplaceSlice) isCommand() {}

func NewReplaceSlice(pos source.Pos, value Chars) *ReplaceSlice {
	return &ReplaceSlice{base: newBase(pos), Value: value}
}

// ExportSlice is `-> STR_REF`: copies the bra..ket slice into the named
// string variable (SPEC_FULL §12 supplement).
type ExportSlice struct {
	base
	Ref string
}

func (*ExportSlice) isCommand() {}

func NewExportSlice(pos source.Pos, ref string) *ExportSlice {
	return &ExportSlice{base: newBase(pos), Ref: ref}
}

// Hop advances (or, backwards, retreats) the cursor by N characters,
// failing if that would move past the limit.
type Hop struct {
	base
	N IntExpr
}

func (*Hop) isCommand() {}

func NewHop(pos source.Pos, n IntExpr) *Hop {
	return &Hop{base: newBase(pos), N: n}
}

// SetMark stores the current cursor position into the named integer
// slot (grammar.py: CMD_SETMARK takes an INT_REF, not an arbitrary
// expression).
type SetMark struct {
	base
	Slot string
}

func (*SetMark) isCommand() {}

func NewSetMark(pos source.Pos, slot string) *SetMark {
	return &SetMark{base: newBase(pos), Slot: slot}
}

// ToMark moves the cursor forward to the position given by Target,
// failing if the cursor would have to move backward to get there.
type ToMark struct {
	base
	Target IntExpr
}

func (*ToMark) isCommand() {}

func NewToMark(pos source.Pos, target IntExpr) *ToMark {
	return &ToMark{base: newBase(pos), Target: target}
}

// AtMark succeeds without moving the cursor iff the cursor already
// equals Target.
type AtMark struct {
	base
	Target IntExpr
}

func (*AtMark) isCommand() {}

func NewAtMark(pos source.Pos, target IntExpr) *AtMark {
	return &AtMark{base: newBase(pos), Target: target}
}

// SetLimit is `setlimit STR_CMD for (STR_CMD)`: runs Bound, and if it
// succeeds, temporarily narrows the limit to the cursor position it
// left, runs Body under that narrowed limit, then restores the
// original limit regardless of Body's outcome (SPEC_FULL §12).
type SetLimit struct {
	base
	Bound Command
	Body  Command
}

func (*SetLimit) isCommand() {}

func NewSetLimit(pos source.Pos, bound, body Command) *SetLimit {
	return &SetLimit{base: newBase(pos), Bound: bound, Body: body}
}

// --- among ---

// AmongString is one quoted alternative inside an among-arm, optionally
// naming a routine that must also succeed (at the position just past
// the match) for the alternative to be taken (spec §4.3).
type AmongString struct {
	Text    string
	Routine string // "" if none
}

// AmongArm groups one or more AmongStrings that share a single command
// (spec §4.3: "(STRING+ COMMAND?)" groups).
type AmongArm struct {
	Strings []AmongString
	Cmd     Command // nil if the arm has no command (bare match)
}

// Among is `among ( COMMON? ARM+ )`. Common, when present, runs before
// the matched arm's own command (grammar.py's cmd_among_action:
// common_cmd is the optional leading `(STR_CMD)` before the first arm).
// Matching is longest-alternative-wins across all arms, with
// declaration order as a tiebreaker (spec §4.3), which
// runtime.FindAmong/FindAmongB implement with a linear scan over the
// candidates rather than anything stored here; no trie is built.
type Among struct {
	base
	Common Command // nil if absent
	Arms   []AmongArm
}

func (*Among) isCommand() {}

func NewAmong(pos source.Pos, common Command, arms []AmongArm) *Among {
	return &Among{base: newBase(pos), Common: common, Arms: arms}
}

// --- unary prefix commands ---

// Not succeeds iff Cmd fails, restoring cursor/bra/ket as Cmd itself
// would have restored them on failure (spec §4.4).
type Not struct {
	base
	Cmd Command
}

func (*Not) isCommand() {}

func NewNot(pos source.Pos, cmd Command) *Not { return &Not{base: newBase(pos), Cmd: cmd} }

// Test runs Cmd and succeeds iff it does, but always restores the
// cursor to its value before Cmd ran (spec §4.2 test).
type Test struct {
	base
	Cmd Command
}

func (*Test) isCommand() {}

func NewTest(pos source.Pos, cmd Command) *Test { return &Test{base: newBase(pos), Cmd: cmd} }

// Try runs Cmd; if Cmd fails, Try still succeeds, with the cursor put
// back where it was before Cmd ran (failure of Cmd is absorbed).
type Try struct {
	base
	Cmd Command
}

func (*Try) isCommand() {}

func NewTry(pos source.Pos, cmd Command) *Try { return &Try{base: newBase(pos), Cmd: cmd} }

// Do runs Cmd for its side effects and always succeeds, regardless of
// whether Cmd succeeded, putting the cursor back to its entry position
// in either case.
type Do struct {
	base
	Cmd Command
}

func (*Do) isCommand() {}

func NewDo(pos source.Pos, cmd Command) *Do { return &Do{base: newBase(pos), Cmd: cmd} }

// Fail runs Cmd for its side effects (keeping them even on success) but
// always reports failure to its caller.
type Fail struct {
	base
	Cmd Command
}

func (*Fail) isCommand() {}

func NewFail(pos source.Pos, cmd Command) *Fail { return &Fail{base: newBase(pos), Cmd: cmd} }

// GoTo repeatedly advances one character at a time until Cmd succeeds
// at the new position, without consuming the match itself.
type GoTo struct {
	base
	Cmd Command
}

func (*GoTo) isCommand() {}

func NewGoTo(pos source.Pos, cmd Command) *GoTo { return &GoTo{base: newBase(pos), Cmd: cmd} }

// GoPast is GoTo but leaves the cursor just past the successful match.
type GoPast struct {
	base
	Cmd Command
}

func (*GoPast) isCommand() {}

func NewGoPast(pos source.Pos, cmd Command) *GoPast { return &GoPast{base: newBase(pos), Cmd: cmd} }

// Repeat runs Cmd repeatedly until it fails, always succeeding overall
// (spec §4.2 repeat).
type Repeat struct {
	base
	Cmd Command
}

func (*Repeat) isCommand() {}

func NewRepeat(pos source.Pos, cmd Command) *Repeat { return &Repeat{base: newBase(pos), Cmd: cmd} }

// Loop runs Cmd exactly N times, failing as soon as one iteration
// fails.
type Loop struct {
	base
	N   IntExpr
	Cmd Command
}

func (*Loop) isCommand() {}

func NewLoop(pos source.Pos, n IntExpr, cmd Command) *Loop {
	return &Loop{base: newBase(pos), N: n, Cmd: cmd}
}

// AtLeast runs Cmd greedily, at least N times, succeeding overall iff
// it ran at least N times.
type AtLeast struct {
	base
	N   IntExpr
	Cmd Command
}

func (*AtLeast) isCommand() {}

func NewAtLeast(pos source.Pos, n IntExpr, cmd Command) *AtLeast {
	return &AtLeast{base: newBase(pos), N: n, Cmd: cmd}
}

// Backwards runs Cmd with the active direction flipped for its
// duration (spec §4.2 backwards, distinct from the program-wide
// `backwardmode` section).
type Backwards struct {
	base
	Cmd Command
}

func (*Backwards) isCommand() {}

func NewBackwards(pos source.Pos, cmd Command) *Backwards {
	return &Backwards{base: newBase(pos), Cmd: cmd}
}

// --- combinators ---

// Sequence runs each command in order, stopping at (and failing with)
// the first failure; a bare juxtaposition of commands in source is
// concatenation (grammar.py's Empty()-separated operator level).
type Sequence struct {
	base
	Cmds []Command
}

func (*Sequence) isCommand() {}

func NewSequence(pos source.Pos, cmds []Command) *Sequence {
	return &Sequence{base: newBase(pos), Cmds: cmds}
}

// And requires both operands to succeed in order (spec §4.2). Unlike
// Sequence, the cursor is put back to its position before Left ran
// before Right is tried, so both operands are tested from the same
// starting point. It groups left-associatively at the same precedence
// as `or`.
type And struct {
	base
	Left, Right Command
}

func (*And) isCommand() {}

func NewAnd(pos source.Pos, left, right Command) *And {
	return &And{base: newBase(pos), Left: left, Right: right}
}

// Or runs Left; if it fails, state is restored and Right is run
// instead.
type Or struct {
	base
	Left, Right Command
}

func (*Or) isCommand() {}

func NewOr(pos source.Pos, left, right Command) *Or {
	return &Or{base: newBase(pos), Left: left, Right: right}
}
