// Package sem performs semantic analysis on a parsed ast.Program: it
// rebuilds (and cross-checks) the declaration tables independently of
// the parser's own on-the-fly tracking, materializes grouping
// definitions into concrete charset.Set values, flattens backwardmode
// sections into a flat routine list tagged with their initial
// direction, and runs a conservative legality pass over every routine
// body (spec §3 Declarations/Groupings, §4.2 backwardmode, §4.4
// invariants). Grounded on the teacher's own two-pass style
// (`langdef`'s separate parse-then-resolve stages, before that package
// was dropped per DESIGN.md) applied to Snowball's declarations.
package sem

import (
	"github.com/snowballc/sbc/ast"
	"github.com/snowballc/sbc/charset"
	"github.com/snowballc/sbc/errors"
)

// Routine is one flattened routine definition, tagged with the
// direction it starts in.
type Routine struct {
	Name     string
	Body     ast.Command
	Backward bool
}

// Program is the result of semantic analysis: the declaration tables,
// the materialized groupings, and the flat, validated routine list.
type Program struct {
	Strings, Integers, Booleans, Externals, Groupings []string
	GroupingSets                                      map[string]*charset.Set
	Routines                                          []*Routine
}

type analyzer struct {
	prog      *Program
	declaredAt map[string]ast.Node // name -> declaring node, across every namespace
}

// Analyze builds a Program from prog, returning the first error
// encountered (duplicate declaration, undeclared grouping reference in
// a grouping definition, or an illegal command shape).
func Analyze(prog *ast.Program) (*Program, error) {
	a := &analyzer{
		prog: &Program{
			GroupingSets: map[string]*charset.Set{},
		},
		declaredAt: map[string]ast.Node{},
	}
	if err := a.walkItems(prog.Items, false); err != nil {
		return nil, err
	}
	for _, r := range a.prog.Routines {
		if err := validateCommand(r.Body); err != nil {
			return nil, err
		}
	}
	return a.prog, nil
}

func (a *analyzer) walkItems(items []ast.TopLevel, backward bool) error {
	for _, item := range items {
		switch n := item.(type) {
		case *ast.Declaration:
			if err := a.declare(n); err != nil {
				return err
			}
		case *ast.GroupingDef:
			if err := a.declareName(n.Name, n, "grouping"); err != nil {
				return err
			}
			set, err := a.evalGroupingExpr(n.Expr)
			if err != nil {
				return err
			}
			a.prog.Groupings = append(a.prog.Groupings, n.Name)
			a.prog.GroupingSets[n.Name] = set
		case *ast.RoutineDef:
			if err := a.declareName(n.Name, n, "routine"); err != nil {
				return err
			}
			a.prog.Routines = append(a.prog.Routines, &Routine{
				Name: n.Name, Body: n.Body, Backward: backward,
			})
		case *ast.BackwardSection:
			if err := a.walkItems(n.Items, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *analyzer) declare(decl *ast.Declaration) error {
	for _, name := range decl.Names {
		// groupings(...)/routines(...)/externals(...) only forward-declare
		// a name so a later GROUPING_REF/ROUTINE_REF can recognize it
		// before its body is seen; the matching GroupingDef/RoutineDef is
		// the real declaration, and is where declareName runs for those
		// names, since the same name must appear in both places without
		// tripping the duplicate check.
		switch decl.Kind {
		case ast.GroupingsDecl, ast.RoutinesDecl, ast.ExternalsDecl:
		default:
			if err := a.declareName(name, decl, decl.Kind.String()); err != nil {
				return err
			}
		}
		switch decl.Kind {
		case ast.StringsDecl:
			a.prog.Strings = append(a.prog.Strings, name)
		case ast.IntegersDecl:
			a.prog.Integers = append(a.prog.Integers, name)
		case ast.BooleansDecl:
			a.prog.Booleans = append(a.prog.Booleans, name)
		case ast.ExternalsDecl:
			a.prog.Externals = append(a.prog.Externals, name)
		case ast.GroupingsDecl:
			// Forward declaration only; the definition supplies the set.
		}
	}
	return nil
}

// declareName records name as belonging to kind's namespace, failing
// if it was already declared (spec treats strings/integers/booleans/
// routines/externals/groupings as one shared identifier namespace, per
// grammar.py's single NAME token feeding every Reference list).
func (a *analyzer) declareName(name string, node ast.Node, kind string) error {
	if _, ok := a.declaredAt[name]; ok {
		return errors.Duplicate(node.Pos(), kind, name)
	}
	a.declaredAt[name] = node
	return nil
}

func (a *analyzer) evalGroupingExpr(expr ast.GroupingExpr) (*charset.Set, error) {
	switch e := expr.(type) {
	case *ast.CharSet:
		return charset.New([]rune(e.Chars)...), nil
	case *ast.GroupingRef:
		set, ok := a.prog.GroupingSets[e.Name]
		if !ok {
			return nil, errors.At(errors.Name, e.Pos(), "grouping %q used before its definition", e.Name)
		}
		return set, nil
	case *ast.SetUnion:
		left, err := a.evalGroupingExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := a.evalGroupingExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return charset.Union(left, right), nil
	case *ast.SetDifference:
		left, err := a.evalGroupingExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := a.evalGroupingExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return charset.Subtract(left, right), nil
	default:
		return nil, errors.At(errors.Name, expr.Pos(), "unsupported grouping expression")
	}
}
