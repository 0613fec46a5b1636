package runtime

// Among is one compiled alternative of a `among (...)` command: the
// literal text to match, the routine gate to additionally require (nil
// if the arm named none), and the result value codegen's switch
// dispatches on (spec §4.3). Field names echo the vendored reference
// generator's Among (Str/F), minus its A/B back-link optimization
// fields: this package matches candidates by a straightforward
// longest-match scan rather than the reference runtime's sorted-table
// binary search with common-prefix back-links, since the externally
// observable behavior (longest match wins, declaration order breaks
// ties) is the same either way and the scan is far easier to verify by
// reading (see DESIGN.md).
type Among struct {
	Str    string
	Result int32
	Check  func(*Env) bool
}

// FindAmong matches forward from the cursor against amongs, advancing
// past the longest candidate whose text matches and whose Check (if
// any) passes when run just after that match, and returns its Result.
// Ties among literal matches are broken by declaration order (the
// earlier entry in amongs wins, per the literal text's own length, not
// whatever a Check routine goes on to consume), and FindAmong returns 0
// with no cursor movement if nothing matches. A Check routine runs with
// the cursor positioned just past the literal and is free to advance it
// further (e.g. a routine that itself matches more literal text): that
// extra consumption belongs to the winning candidate's end position,
// not just the literal's own length, grounded on ast.py's among
// dispatch, which calls the gate routine in place with no save/restore
// around it.
func (e *Env) FindAmong(amongs []*Among) int32 {
	start := e.Cursor
	best, bestLen, bestEnd := -1, -1, start
	for i, a := range amongs {
		rs := []rune(a.Str)
		if e.Limit-start < len(rs) || !runesEqualAt(e.Input, start, rs) {
			continue
		}
		end := start + len(rs)
		if a.Check != nil {
			e.Cursor = end
			ok := a.Check(e)
			end = e.Cursor
			e.Cursor = start
			if !ok {
				continue
			}
		}
		if len(rs) > bestLen {
			bestLen, best, bestEnd = len(rs), i, end
		}
	}
	if best == -1 {
		return 0
	}
	e.Cursor = bestEnd
	return amongs[best].Result
}

// FindAmongB is FindAmong matched backward, ending at the cursor.
func (e *Env) FindAmongB(amongs []*Among) int32 {
	start := e.Cursor
	best, bestLen, bestEnd := -1, -1, start
	for i, a := range amongs {
		rs := []rune(a.Str)
		if start-e.LimitBackward < len(rs) || !runesEqualAt(e.Input, start-len(rs), rs) {
			continue
		}
		end := start - len(rs)
		if a.Check != nil {
			e.Cursor = end
			ok := a.Check(e)
			end = e.Cursor
			e.Cursor = start
			if !ok {
				continue
			}
		}
		if len(rs) > bestLen {
			bestLen, best, bestEnd = len(rs), i, end
		}
	}
	if best == -1 {
		return 0
	}
	e.Cursor = bestEnd
	return amongs[best].Result
}

func runesEqualAt(buf []rune, at int, want []rune) bool {
	for i, r := range want {
		if buf[at+i] != r {
			return false
		}
	}
	return true
}
