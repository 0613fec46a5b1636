package runtime

import "testing"

func TestEqSAdvancesCursor(t *testing.T) {
	e := NewEnv("hello")
	if !e.EqS("he") {
		t.Fatal("expected match")
	}
	if e.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", e.Cursor)
	}
	if e.EqS("zz") {
		t.Fatal("expected no match")
	}
	if e.Cursor != 2 {
		t.Fatalf("cursor should not move on failed match, got %d", e.Cursor)
	}
}

func TestEqSBMatchesEndingAtCursor(t *testing.T) {
	e := NewEnv("running")
	e.Cursor = e.Limit
	if !e.EqSB("ing") {
		t.Fatal("expected backward match")
	}
	if e.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", e.Cursor)
	}
}

func TestSliceFromAdjustsPointers(t *testing.T) {
	e := NewEnv("running")
	e.Bra, e.Ket = 3, 7 // "ning"
	e.Cursor = 7
	if !e.SliceFrom("ned") {
		t.Fatal("expected success")
	}
	if e.Current() != "runned" {
		t.Fatalf("expected %q, got %q", "runned", e.Current())
	}
	if e.Cursor != 6 || e.Limit != 6 {
		t.Fatalf("expected cursor/limit to track the shrink, got cursor=%d limit=%d", e.Cursor, e.Limit)
	}
}

func TestInsertShiftsTrailingPointers(t *testing.T) {
	e := NewEnv("cat")
	e.Cursor = 3
	if !e.Insert(3, "s") {
		t.Fatal("expected success")
	}
	if e.Current() != "cats" || e.Cursor != 4 {
		t.Fatalf("unexpected state: %q cursor=%d", e.Current(), e.Cursor)
	}
}

type runeSet map[rune]bool

func (s runeSet) Contains(r rune) bool { return s[r] }

func TestInOutGrouping(t *testing.T) {
	vowels := runeSet{'a': true, 'e': true, 'i': true, 'o': true, 'u': true}
	e := NewEnv("sky")
	if e.InGrouping(vowels) {
		t.Fatal("'s' should not be a vowel")
	}
	if !e.OutGrouping(vowels) {
		t.Fatal("'s' should pass OutGrouping")
	}
	if e.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", e.Cursor)
	}
}

func TestFindAmongLongestMatchWins(t *testing.T) {
	e := NewEnv("running")
	e.Cursor = 7
	amongs := []*Among{
		{Str: "ing", Result: 1},
		{Str: "ning", Result: 2},
	}
	result := e.FindAmongB(amongs)
	if result != 2 {
		t.Fatalf("expected the longer alternative (2) to win, got %d", result)
	}
	if e.Cursor != 3 {
		t.Fatalf("expected cursor 3 after consuming \"ning\", got %d", e.Cursor)
	}
}

func TestFindAmongCheckGatesAMatch(t *testing.T) {
	e := NewEnv("xa")
	amongs := []*Among{
		{Str: "xa", Result: 1, Check: func(env *Env) bool { return env.AtLimit() }},
		{Str: "x", Result: 2},
	}
	e.Cursor = 0
	result := e.FindAmong(amongs)
	if result != 1 {
		t.Fatalf("expected the checked alternative to win when its gate passes, got %d", result)
	}
}

func TestFindAmongCheckFailureFallsBack(t *testing.T) {
	e := NewEnv("xab")
	amongs := []*Among{
		{Str: "xa", Result: 1, Check: func(env *Env) bool { return env.AtLimit() }},
		{Str: "x", Result: 2},
	}
	e.Cursor = 0
	result := e.FindAmong(amongs)
	if result != 2 {
		t.Fatalf("expected fallback to the shorter alternative when the gate fails, got %d", result)
	}
	if e.Cursor != 1 {
		t.Fatalf("expected cursor to reflect only the winning match, got %d", e.Cursor)
	}
}

// TestFindAmongCheckConsumesBeyondLiteral mirrors
// original_source/test/test_sbl2py.py's test_substring_among:
// `routines(r) define r as 'foo' define check as among('x' 'y' r (<+
// 'z'))`. Matching "yfoo" must leave the cursor past both the matched
// literal "y" and the routine-consumed "foo" — at 4, not 1 — so that a
// following `<+ 'z'` inserts after "yfoo" rather than right after "y".
func TestFindAmongCheckConsumesBeyondLiteral(t *testing.T) {
	e := NewEnv("yfoo")
	r := func(env *Env) bool { return env.EqS("foo") }
	amongs := []*Among{
		{Str: "x", Result: 1},
		{Str: "y", Result: 2, Check: r},
	}
	e.Cursor = 0
	result := e.FindAmong(amongs)
	if result != 2 {
		t.Fatalf("expected the \"y\" alternative to win, got %d", result)
	}
	if e.Cursor != 4 {
		t.Fatalf("expected cursor to land past the routine-consumed \"foo\" too, got %d", e.Cursor)
	}
}

// TestBackwardsDeleteSuffix drives an Env through the exact sequence
// codegen.genBackwards emits for `backwards(['ly'] delete)`, the
// minimal program used as an end-to-end scenario: stemming
// "fabulously" should drop the trailing "ly" and leave "fabulous".
// This exercises the save/jump/run/restore cycle directly against the
// runtime, without going through code generation or the Go toolchain.
func TestBackwardsDeleteSuffix(t *testing.T) {
	e := NewEnv("fabulously")

	savedCursor := e.Cursor
	savedLimitBackward := e.LimitBackward
	e.LimitBackward = e.Cursor
	e.Cursor = e.Limit

	ok := func() bool {
		e.Ket = e.Cursor
		if !e.EqSB("ly") {
			return false
		}
		e.Bra = e.Cursor
		return e.SliceDel()
	}()

	e.Cursor = e.LimitBackward
	e.LimitBackward = savedLimitBackward
	if !ok {
		e.Cursor = savedCursor
		t.Fatal("expected the backward match against \"ly\" to succeed")
	}

	if e.Current() != "fabulous" {
		t.Fatalf("expected %q, got %q", "fabulous", e.Current())
	}
}

// TestBackwardsRestoresStateOnFailure checks the other half of the
// invariant: when the nested command fails, backwards must leave the
// Env exactly as it found it.
func TestBackwardsRestoresStateOnFailure(t *testing.T) {
	e := NewEnv("fabulous")
	e.Cursor = 3

	savedCursor := e.Cursor
	savedLimit := e.Limit
	savedLimitBackward := e.LimitBackward
	e.LimitBackward = e.Cursor
	e.Cursor = e.Limit

	ok := func() bool {
		e.Ket = e.Cursor
		if !e.EqSB("ly") {
			return false
		}
		e.Bra = e.Cursor
		return e.SliceDel()
	}()

	e.Cursor = e.LimitBackward
	e.LimitBackward = savedLimitBackward
	if !ok {
		e.Cursor = savedCursor
	}

	if ok {
		t.Fatal("expected no match against \"ly\"")
	}
	if e.Cursor != savedCursor || e.Limit != savedLimit || e.LimitBackward != savedLimitBackward {
		t.Fatalf("expected full state restoration on failure, got cursor=%d limit=%d limitBackward=%d",
			e.Cursor, e.Limit, e.LimitBackward)
	}
	if e.Current() != "fabulous" {
		t.Fatalf("expected buffer untouched, got %q", e.Current())
	}
}
