// Package runtime implements the Snowball abstract machine (spec §4):
// a cursor-based string rewriter with a bra/ket marked region, a
// limit/limitBackward pair bounding legal cursor motion (narrowed by
// setlimit), and the primitive operations every generated routine
// calls into. It is imported once by every file package sbc/codegen
// emits, the same way a real Snowball-compiler-generated Go package
// imports "github.com/blevesearch/snowballstem" (found vendored under
// _examples/matrix-org-matrix-search) rather than inlining this
// boilerplate per file (SPEC_FULL.md preamble).
//
// As in that real generated runtime, forward and backward operations
// are separate method families (EqS vs EqSB, InGrouping vs
// InGroupingB, matching the vendored reference's naming) chosen by
// package codegen according to each command's statically known
// direction. A routine declared inside backwardmode(...) needs nothing
// more than that codegen-time choice. An inline `backwards C` command,
// though, also moves Cursor and LimitBackward at run time (see
// codegen's genBackwards): it is not purely a compile-time switch.
package runtime

// Env holds one routine invocation's mutable state: the rune buffer
// being rewritten, the cursor, the bra/ket slice markers, and the
// forward/backward limits (spec §4.1 "Abstract machine state").
type Env struct {
	Input         []rune
	Cursor        int
	Limit         int
	LimitBackward int
	Bra, Ket      int
}

// NewEnv creates an Env over s, with the cursor at the start and the
// limits at the buffer's two ends (spec §4.1 initial state).
func NewEnv(s string) *Env {
	input := []rune(s)
	return &Env{Input: input, Cursor: 0, Limit: len(input), LimitBackward: 0}
}

// Current returns the buffer's current contents as a string.
func (e *Env) Current() string {
	return string(e.Input)
}

// SetCurrent replaces the buffer and resets the cursor/limits/markers
// to their initial state, for reusing one Env across multiple inputs.
func (e *Env) SetCurrent(s string) {
	e.Input = []rune(s)
	e.Cursor = 0
	e.Limit = len(e.Input)
	e.LimitBackward = 0
	e.Bra, e.Ket = 0, 0
}

// --- single-character motion ---

// NextChar advances the cursor one rune forward, failing at Limit.
func (e *Env) NextChar() bool {
	if e.Cursor >= e.Limit {
		return false
	}
	e.Cursor++
	return true
}

// PrevChar retreats the cursor one rune backward, failing at
// LimitBackward.
func (e *Env) PrevChar() bool {
	if e.Cursor <= e.LimitBackward {
		return false
	}
	e.Cursor--
	return true
}

// --- hop ---

// Hop advances the cursor by n runes, failing (without moving) if
// that would pass Limit.
func (e *Env) Hop(n int) bool {
	if n < 0 || e.Limit-e.Cursor < n {
		return false
	}
	e.Cursor += n
	return true
}

// HopB retreats the cursor by n runes, failing if that would pass
// LimitBackward.
func (e *Env) HopB(n int) bool {
	if n < 0 || e.Cursor-e.LimitBackward < n {
		return false
	}
	e.Cursor -= n
	return true
}

// --- grouping tests ---

// Grouping is anything that can answer rune membership; satisfied by
// *charset.Set without this package depending on it, since a generated
// program may also build ad-hoc groupings.
type Grouping interface {
	Contains(r rune) bool
}

// InGrouping tests whether the rune at the cursor belongs to g,
// advancing past it on success.
func (e *Env) InGrouping(g Grouping) bool {
	if e.Cursor >= e.Limit || !g.Contains(e.Input[e.Cursor]) {
		return false
	}
	e.Cursor++
	return true
}

// InGroupingB is InGrouping read backward from the cursor.
func (e *Env) InGroupingB(g Grouping) bool {
	if e.Cursor <= e.LimitBackward || !g.Contains(e.Input[e.Cursor-1]) {
		return false
	}
	e.Cursor--
	return true
}

// OutGrouping tests that the rune at the cursor does NOT belong to g,
// advancing past it on success.
func (e *Env) OutGrouping(g Grouping) bool {
	if e.Cursor >= e.Limit || g.Contains(e.Input[e.Cursor]) {
		return false
	}
	e.Cursor++
	return true
}

// OutGroupingB is OutGrouping read backward from the cursor.
func (e *Env) OutGroupingB(g Grouping) bool {
	if e.Cursor <= e.LimitBackward || g.Contains(e.Input[e.Cursor-1]) {
		return false
	}
	e.Cursor--
	return true
}

// --- literal matching ---

// EqS tests whether the buffer at the cursor starts with s, advancing
// past it on success.
func (e *Env) EqS(s string) bool {
	rs := []rune(s)
	if e.Limit-e.Cursor < len(rs) {
		return false
	}
	for i, r := range rs {
		if e.Input[e.Cursor+i] != r {
			return false
		}
	}
	e.Cursor += len(rs)
	return true
}

// EqSB is EqS matched ending at the cursor, retreating past it.
func (e *Env) EqSB(s string) bool {
	rs := []rune(s)
	if e.Cursor-e.LimitBackward < len(rs) {
		return false
	}
	start := e.Cursor - len(rs)
	for i, r := range rs {
		if e.Input[start+i] != r {
			return false
		}
	}
	e.Cursor = start
	return true
}

// --- marks ---

// ToMark advances the cursor to target, failing if target lies behind
// the cursor.
func (e *Env) ToMark(target int) bool {
	if e.Cursor > target {
		return false
	}
	e.Cursor = target
	return true
}

// ToMarkB retreats the cursor to target, failing if target lies ahead
// of the cursor.
func (e *Env) ToMarkB(target int) bool {
	if e.Cursor < target {
		return false
	}
	e.Cursor = target
	return true
}

// AtMark succeeds, without moving, iff the cursor already equals
// target.
func (e *Env) AtMark(target int) bool {
	return e.Cursor == target
}

// AtLimit succeeds iff the cursor is exactly at Limit.
func (e *Env) AtLimit() bool {
	return e.Cursor == e.Limit
}

// ToLimit moves the cursor to Limit, always succeeding.
func (e *Env) ToLimit() bool {
	e.Cursor = e.Limit
	return true
}

// --- slice mutation ---

// replaceRegion splices repl in place of Input[from:to], shifting
// Cursor/Limit/LimitBackward/Bra/Ket that lie at or past to by the
// resulting length delta (mirrors the reference Snowball runtime's
// replace_s, which keeps every live pointer consistent across a
// buffer-length-changing edit).
func (e *Env) replaceRegion(from, to int, repl []rune) {
	delta := len(repl) - (to - from)
	next := make([]rune, 0, len(e.Input)+delta)
	next = append(next, e.Input[:from]...)
	next = append(next, repl...)
	next = append(next, e.Input[to:]...)
	e.Input = next

	adjust := func(pos int) int {
		switch {
		case pos >= to:
			return pos + delta
		case pos > from:
			return from
		default:
			return pos
		}
	}
	e.Cursor = adjust(e.Cursor)
	e.Limit = adjust(e.Limit)
	e.LimitBackward = adjust(e.LimitBackward)
	e.Bra = adjust(e.Bra)
	e.Ket = adjust(e.Ket)
}

// SliceFrom replaces the bra..ket region with s.
func (e *Env) SliceFrom(s string) bool {
	e.replaceRegion(e.Bra, e.Ket, []rune(s))
	return true
}

// SliceDel deletes the bra..ket region.
func (e *Env) SliceDel() bool {
	return e.SliceFrom("")
}

// SliceTo returns the text currently spanning bra..ket (used by the
// export-slice command, SPEC_FULL.md §12).
func (e *Env) SliceTo() string {
	return string(e.Input[e.Bra:e.Ket])
}

// Insert splices s in at [at, at), used by the insert/attach commands
// (both splice at the cursor; codegen decides where the cursor ends up
// afterwards).
func (e *Env) Insert(at int, s string) bool {
	e.replaceRegion(at, at, []rune(s))
	return true
}
