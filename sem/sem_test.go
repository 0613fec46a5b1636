package sem

import (
	"testing"

	"github.com/snowballc/sbc/ast"
	"github.com/snowballc/sbc/parser"
	"github.com/snowballc/sbc/source"
)

func analyze(t *testing.T, text string) *Program {
	t.Helper()
	prog, err := parser.ParseProgram(source.New("test.sbl", []byte(text)))
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	sp, err := Analyze(prog)
	if err != nil {
		t.Fatalf("analyze error: %s", err)
	}
	return sp
}

func TestGroupingMaterialization(t *testing.T) {
	sp := analyze(t, `
		groupings ( v c )
		define v 'aeiou'
		define c v - 'e'
	`)
	vowels := sp.GroupingSets["v"]
	if !vowels.Contains('a') || vowels.Contains('x') {
		t.Fatalf("unexpected vowel set contents")
	}
	consonantsMinusE := sp.GroupingSets["c"]
	if consonantsMinusE.Contains('e') || !consonantsMinusE.Contains('a') {
		t.Fatalf("expected c to be v-'e': got Contains('e')=%v Contains('a')=%v",
			consonantsMinusE.Contains('e'), consonantsMinusE.Contains('a'))
	}
}

func TestRoutineBackwardFlag(t *testing.T) {
	sp := analyze(t, `
		define forward_r as true
		backwardmode (
			define backward_r as true
		)
	`)
	var forward, backward *Routine
	for _, r := range sp.Routines {
		switch r.Name {
		case "forward_r":
			forward = r
		case "backward_r":
			backward = r
		}
	}
	if forward == nil || forward.Backward {
		t.Fatalf("expected forward_r to be a forward routine")
	}
	if backward == nil || !backward.Backward {
		t.Fatalf("expected backward_r to be a backward routine")
	}
}

func TestSliceOpWithoutBraKetIsError(t *testing.T) {
	_, err := Analyze(mustParse(t, `
		strings ( s )
		define r as 'x' <- 'y'
	`))
	if err == nil {
		t.Fatal("expected a missing-bra-ket error")
	}
}

func TestSliceOpWithBraKetIsOK(t *testing.T) {
	sp := analyze(t, `
		define r as [ 'x' ] <- 'y'
	`)
	if len(sp.Routines) != 1 {
		t.Fatalf("expected 1 routine, got %d", len(sp.Routines))
	}
}

func TestDuplicateDeclarationIsError(t *testing.T) {
	_, err := Analyze(mustParse(t, `
		booleans ( b )
		define b 'x'
	`))
	if err == nil {
		t.Fatal("expected a duplicate-declaration error")
	}
}

func mustParse(t *testing.T, text string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseProgram(source.New("test.sbl", []byte(text)))
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	return prog
}
