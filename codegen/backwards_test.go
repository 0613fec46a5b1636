package codegen

import (
	"strings"
	"testing"

	"github.com/snowballc/sbc/ast"
	"github.com/snowballc/sbc/source"
)

// TestGenBackwardsSavesAndRestoresState locks in the fix for backwards:
// an inline `backwards C` command must move Cursor/LimitBackward at run
// time, not just flip the compile-time direction flag used to pick
// forward vs backward method names (see DESIGN.md, codegen section).
func TestGenBackwardsSavesAndRestoresState(t *testing.T) {
	pos := source.Pos{}
	body := ast.NewSequence(pos, []ast.Command{
		ast.NewSetLeft(pos),
		ast.NewStartsWith(pos, ast.NewCharsLiteral(pos, "ly")),
		ast.NewSetRight(pos),
		ast.NewDelete(pos),
	})
	cmd := ast.NewBackwards(pos, body)

	g := &generator{}
	out := g.gen(cmd, "return false")

	for _, want := range []string{
		"savedCursor := env.Cursor",
		"savedLimitBackward := env.LimitBackward",
		"env.LimitBackward = env.Cursor",
		"env.Cursor = env.Limit",
		"env.Cursor = env.LimitBackward",
		"env.LimitBackward = savedLimitBackward",
		"env.Cursor = savedCursor",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected generated code to contain %q, got:\n%s", want, out)
		}
	}

	// The nested command must be compiled in backward direction: [
	// becomes env.Ket (not env.Bra) while running backward, matching
	// how the vendored reference's backward routines assign the slice
	// markers (see DESIGN.md, codegen section).
	if !strings.Contains(out, "env.EqSB(\"ly\")") {
		t.Errorf("expected backward EqSB match, got:\n%s", out)
	}
	if !strings.Contains(out, "env.Ket = env.Cursor") {
		t.Errorf("expected [ to set Ket while running backward, got:\n%s", out)
	}
	if !strings.Contains(out, "env.Bra = env.Cursor") {
		t.Errorf("expected ] to set Bra while running backward, got:\n%s", out)
	}

	// g.backward must be restored to its pre-call value once genBackwards
	// returns, so a sibling forward command compiled right after it is
	// not accidentally compiled backward too.
	if g.backward {
		t.Errorf("expected g.backward to be restored to false after genBackwards")
	}
}

// TestGenDoSavesLimitRelativeCursor locks in the fix for `do`: its
// saved/restored position must be a gap from env.Limit, not a raw
// env.Cursor snapshot, so a deleting/replacing body doesn't leave the
// cursor pointing past the end of a buffer that just shrank.
func TestGenDoSavesLimitRelativeCursor(t *testing.T) {
	pos := source.Pos{}
	g := &generator{}
	out := g.gen(ast.NewDo(pos, ast.NewDelete(pos)), "return false")

	if !strings.Contains(out, "v := env.Limit - env.Cursor") {
		t.Errorf("expected a Limit-relative save, got:\n%s", out)
	}
	if !strings.Contains(out, "env.Cursor = env.Limit - v") {
		t.Errorf("expected a Limit-relative restore, got:\n%s", out)
	}
	if strings.Contains(out, "v := env.Cursor\n") {
		t.Errorf("did not expect a raw cursor snapshot, got:\n%s", out)
	}
}
