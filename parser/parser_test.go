package parser

import (
	"testing"

	"github.com/snowballc/sbc/ast"
	"github.com/snowballc/sbc/source"
)

func parse(t *testing.T, text string) *ast.Program {
	t.Helper()
	prog, err := ParseProgram(source.New("test.sbl", []byte(text)))
	if err != nil {
		t.Fatalf("source %q: unexpected error: %s", text, err)
	}
	return prog
}

func TestDeclarationAndRoutine(t *testing.T) {
	prog := parse(t, `
		strings ( s )
		booleans ( found )
		define check as (
			true
		)
	`)
	if len(prog.Items) != 3 {
		t.Fatalf("expected 3 top-level items, got %d", len(prog.Items))
	}
	decl, ok := prog.Items[0].(*ast.Declaration)
	if !ok || decl.Kind != ast.StringsDecl || len(decl.Names) != 1 || decl.Names[0] != "s" {
		t.Fatalf("unexpected first declaration: %#v", prog.Items[0])
	}
	routine, ok := prog.Items[2].(*ast.RoutineDef)
	if !ok || routine.Name != "check" {
		t.Fatalf("unexpected routine def: %#v", prog.Items[2])
	}
}

func TestSequenceAndAndOr(t *testing.T) {
	prog := parse(t, `
		booleans ( b )
		define r as 'a' 'b' and 'c' or 'd'
	`)
	routine := prog.Items[1].(*ast.RoutineDef)
	seq, ok := routine.Body.(*ast.Sequence)
	if !ok || len(seq.Cmds) != 2 {
		t.Fatalf("expected a 2-element sequence, got %#v", routine.Body)
	}
	if _, ok := seq.Cmds[0].(*ast.StartsWith); !ok {
		t.Fatalf("expected first element to be a StartsWith, got %#v", seq.Cmds[0])
	}
	orNode, ok := seq.Cmds[1].(*ast.Or)
	if !ok {
		t.Fatalf("expected second element to be an Or, got %#v", seq.Cmds[1])
	}
	if _, ok := orNode.Left.(*ast.And); !ok {
		t.Fatalf("expected or's left operand to be an And, got %#v", orNode.Left)
	}
}

func TestUnaryChain(t *testing.T) {
	prog := parse(t, `define r as not test 'x'`)
	routine := prog.Items[0].(*ast.RoutineDef)
	notNode, ok := routine.Body.(*ast.Not)
	if !ok {
		t.Fatalf("expected Not, got %#v", routine.Body)
	}
	if _, ok := notNode.Cmd.(*ast.Test); !ok {
		t.Fatalf("expected nested Test, got %#v", notNode.Cmd)
	}
}

func TestIntegerCommandAndExpression(t *testing.T) {
	prog := parse(t, `
		integers ( x y )
		define r as $x = y + 1 * 2
	`)
	routine := prog.Items[1].(*ast.RoutineDef)
	intCmd, ok := routine.Body.(*ast.IntCmd)
	if !ok || intCmd.Slot != "x" || intCmd.Op != ast.IntAssign {
		t.Fatalf("unexpected int command: %#v", routine.Body)
	}
	add, ok := intCmd.Expr.(*ast.BinaryExpr)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("expected an addition at the top, got %#v", intCmd.Expr)
	}
	if _, ok := add.Left.(*ast.IntRef); !ok {
		t.Fatalf("expected left operand to be IntRef, got %#v", add.Left)
	}
	mul, ok := add.Right.(*ast.BinaryExpr)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("expected right operand to be a multiplication (tighter precedence), got %#v", add.Right)
	}
}

func TestAmong(t *testing.T) {
	prog := parse(t, `
		routines ( step )
		define r as among ( 'a' 'b' (true) 'c' (step) )
	`)
	routine := prog.Items[1].(*ast.RoutineDef)
	among, ok := routine.Body.(*ast.Among)
	if !ok {
		t.Fatalf("expected Among, got %#v", routine.Body)
	}
	if len(among.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(among.Arms))
	}
	if len(among.Arms[0].Strings) != 2 {
		t.Fatalf("expected the first arm to group 'a' and 'b', got %#v", among.Arms[0].Strings)
	}
	if _, ok := among.Arms[1].Cmd.(*ast.RoutineCall); !ok {
		t.Fatalf("expected the second arm's command to be a routine call, got %#v", among.Arms[1].Cmd)
	}
}

func TestGroupingDefAlgebra(t *testing.T) {
	prog := parse(t, `
		groupings ( x y )
		define x 'ab'
		define y x + 'd' - 'b'
	`)
	x := prog.Items[1].(*ast.GroupingDef)
	if _, ok := x.Expr.(*ast.CharSet); !ok {
		t.Fatalf("expected x's expr to be a CharSet, got %#v", x.Expr)
	}
	y := prog.Items[2].(*ast.GroupingDef)
	diff, ok := y.Expr.(*ast.SetDifference)
	if !ok {
		t.Fatalf("expected y's expr to be a SetDifference, got %#v", y.Expr)
	}
	if _, ok := diff.Left.(*ast.SetUnion); !ok {
		t.Fatalf("expected the difference's left side to be a SetUnion, got %#v", diff.Left)
	}
}

func TestBackwardMode(t *testing.T) {
	prog := parse(t, `
		backwardmode (
			define r as true
		)
	`)
	section, ok := prog.Items[0].(*ast.BackwardSection)
	if !ok || len(section.Items) != 1 {
		t.Fatalf("expected a backward section with 1 item, got %#v", prog.Items[0])
	}
}

func TestUndeclaredNameIsError(t *testing.T) {
	_, err := ParseProgram(source.New("test.sbl", []byte(`define r as bogus`)))
	if err == nil {
		t.Fatal("expected an undeclared-name error")
	}
}

func TestSetLimitAndSubstring(t *testing.T) {
	prog := parse(t, `
		routines ( step )
		define r as setlimit tomark 1 for ( substring among ( 'x' (step) ) )
	`)
	routine := prog.Items[1].(*ast.RoutineDef)
	setLimit, ok := routine.Body.(*ast.SetLimit)
	if !ok {
		t.Fatalf("expected SetLimit, got %#v", routine.Body)
	}
	if _, ok := setLimit.Bound.(*ast.ToMark); !ok {
		t.Fatalf("expected bound to be ToMark, got %#v", setLimit.Bound)
	}
	seq, ok := setLimit.Body.(*ast.Sequence)
	if !ok || len(seq.Cmds) != 2 {
		t.Fatalf("expected body to be a 2-element sequence, got %#v", setLimit.Body)
	}
}
