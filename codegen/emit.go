package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/snowballc/sbc/ast"
)

// gen compiles cmd to a sequence of Go statements that fall through on
// success; on failure they execute onFail, which must itself be a
// control-transferring statement (return false / break <label> /
// continue) so gen's callers never need to add their own fail-through
// logic after it. This mirrors the Sequence/And semantics of
// original_source/src/sbl2py/ast.py's `_make_if_chain`, where each
// step's failure propagates to the same place the step before it
// would have propagated to.
func (g *generator) gen(cmd ast.Command, onFail string) string {
	switch c := cmd.(type) {

	case *ast.Sequence:
		parts := make([]string, len(c.Cmds))
		for i, sub := range c.Cmds {
			parts[i] = g.gen(sub, onFail)
		}
		return strings.Join(parts, "\n")

	case *ast.And:
		return g.genAnd(c, onFail)
	case *ast.Or:
		return g.genOr(c, onFail)

	case *ast.StartsWith:
		return g.leafGuard(fmt.Sprintf("env.%s(%s)", g.dir("EqS"), g.chars(c.Value)), onFail)
	case *ast.RoutineCall:
		return g.leafGuard(fmt.Sprintf("r_%s(env, ctx)", c.Name), onFail)
	case *ast.GroupingCmd:
		return g.leafGuard(fmt.Sprintf("env.%s(G_%s)", g.dir("InGrouping"), c.Name), onFail)
	case *ast.NonCmd:
		return g.leafGuard(fmt.Sprintf("env.%s(G_%s)", g.dir("OutGrouping"), c.Name), onFail)
	case *ast.BooleanTest:
		return g.leafGuard(fmt.Sprintf("ctx.B_%s", c.Name), onFail)
	case *ast.SetBool:
		return fmt.Sprintf("ctx.B_%s = true", c.Name)
	case *ast.UnsetBool:
		return fmt.Sprintf("ctx.B_%s = false", c.Name)

	case *ast.Next:
		if g.backward {
			return g.leafGuard("env.PrevChar()", onFail)
		}
		return g.leafGuard("env.NextChar()", onFail)
	case *ast.SetLeft:
		if g.backward {
			return "env.Ket = env.Cursor"
		}
		return "env.Bra = env.Cursor"
	case *ast.SetRight:
		if g.backward {
			return "env.Bra = env.Cursor"
		}
		return "env.Ket = env.Cursor"
	case *ast.Delete:
		return g.leafGuard("env.SliceDel()", onFail)
	case *ast.AtLimit:
		return g.leafGuard("env.AtLimit()", onFail)
	case *ast.ToLimit:
		return "env.ToLimit()"
	case *ast.TrueCmd:
		return ""
	case *ast.FalseCmd:
		return onFail
	case *ast.Substring:
		return "// substring: the following among reads from the current cursor/limit"
	case *ast.EmptyCmd:
		return ""

	case *ast.Insert:
		return g.genInsert(c.Value)
	case *ast.Attach:
		return g.genAttach(c.Value)
	case *ast.ReplaceSlice:
		return g.leafGuard(fmt.Sprintf("env.SliceFrom(%s)", g.chars(c.Value)), onFail)
	case *ast.ExportSlice:
		return fmt.Sprintf("ctx.S_%s = env.SliceTo()", c.Ref)
	case *ast.Hop:
		return g.leafGuard(fmt.Sprintf("env.%s(%s)", g.dir("Hop"), g.intExpr(c.N)), onFail)
	case *ast.SetMark:
		return fmt.Sprintf("ctx.I_%s = env.Cursor", c.Slot)
	case *ast.ToMark:
		return g.leafGuard(fmt.Sprintf("env.%s(%s)", g.dir("ToMark"), g.intExpr(c.Target)), onFail)
	case *ast.AtMark:
		return g.leafGuard(fmt.Sprintf("env.AtMark(%s)", g.intExpr(c.Target)), onFail)
	case *ast.SetLimit:
		return g.genSetLimit(c, onFail)

	case *ast.Among:
		return g.genAmong(c, onFail)

	case *ast.Not:
		return g.genNot(c, onFail)
	case *ast.Test:
		return g.genTest(c, onFail)
	case *ast.Try:
		return g.genTry(c)
	case *ast.Do:
		return g.genDo(c)
	case *ast.Fail:
		return g.genFail(c, onFail)
	case *ast.GoTo:
		return g.genGoTo(c, onFail)
	case *ast.GoPast:
		return g.genGoPast(c, onFail)
	case *ast.Repeat:
		return g.genRepeat(c)
	case *ast.Loop:
		return g.genLoop(c, onFail)
	case *ast.AtLeast:
		return g.genAtLeast(c, onFail)
	case *ast.Backwards:
		return g.genBackwards(c, onFail)

	case *ast.IntCmd:
		return g.genIntCmd(c, onFail)

	default:
		return fmt.Sprintf("// unhandled command %T", cmd)
	}
}

// dir appends "B" to name when the active direction is backward,
// matching the vendored reference's EqS/EqSB-style method-family
// naming (see runtime package doc).
func (g *generator) dir(name string) string {
	if g.backward {
		return name + "B"
	}
	return name
}

func (g *generator) leafGuard(cond, onFail string) string {
	return fmt.Sprintf("if !(%s) {\n%s\n}", cond, indent(onFail))
}

// asBool compiles cmd into a self-contained boolean expression by
// wrapping its generated statements (which fail via "return false") in
// an immediately invoked closure. This is how every backtracking
// combinator below gets a plain bool to branch on instead of the
// vendored reference's hand-numbered labels (see DESIGN.md).
func (g *generator) asBool(cmd ast.Command) string {
	body := g.gen(cmd, "return false")
	if body == "" {
		return "true"
	}
	return fmt.Sprintf("func() bool {\n%s\n\treturn true\n}()", indent(body))
}

func (g *generator) chars(c ast.Chars) string {
	if c.Literal {
		return strconv.Quote(c.Text)
	}
	return "ctx.S_" + c.Text
}

// genInsert compiles `insert`/`<+`. Insert and attach splice text in at
// the same point but leave the cursor in different places: grounded on
// original_source/src/sbl2py/ast.py's String.insert/String.attach
// (insert advances the cursor past the inserted text when running
// forward; attach never does, only growing the limit out from under
// it). env.Insert's own bookkeeping (replaceRegion) already advances
// env.Cursor past the splice point regardless of direction, which
// happens to be exactly insert's forward behavior already, but ast.py
// says insert should leave the cursor where it started when running
// backward, so that case needs an explicit reset back.
func (g *generator) genInsert(value ast.Chars) string {
	if g.backward {
		return fmt.Sprintf(`{
	v := env.Cursor
	env.Insert(v, %s)
	env.Cursor = v
}`, g.chars(value))
	}
	return fmt.Sprintf("env.Insert(env.Cursor, %s)", g.chars(value))
}

// genAttach compiles `attach`. It wants the opposite of genInsert's
// direction split: cursor restored to the splice point when running
// forward (env.Insert's natural post-splice advance has to be undone),
// left at env.Insert's natural advanced position when running
// backward (see genInsert's doc comment for the ast.py grounding).
func (g *generator) genAttach(value ast.Chars) string {
	if g.backward {
		return fmt.Sprintf("env.Insert(env.Cursor, %s)", g.chars(value))
	}
	return fmt.Sprintf(`{
	v := env.Cursor
	env.Insert(v, %s)
	env.Cursor = v
}`, g.chars(value))
}

func (g *generator) genAnd(c *ast.And, onFail string) string {
	return fmt.Sprintf(`{
	v := env.Cursor
	if !(%s) {
%s
	}
	env.Cursor = v
%s
}`, g.asBool(c.Left), indent(indent(onFail)), indent(g.gen(c.Right, onFail)))
}

func (g *generator) genOr(c *ast.Or, onFail string) string {
	return fmt.Sprintf(`{
	v := env.Cursor
	if !(%s) {
		env.Cursor = v
%s
	}
}`, g.asBool(c.Left), indent(indent(g.gen(c.Right, onFail))))
}

func (g *generator) genNot(c *ast.Not, onFail string) string {
	return fmt.Sprintf(`{
	v := env.Cursor
	if !(%s) {
		env.Cursor = v
	} else {
%s
	}
}`, g.asBool(c.Cmd), indent(indent(onFail)))
}

func (g *generator) genTest(c *ast.Test, onFail string) string {
	return fmt.Sprintf(`{
	v := env.Cursor
	ok := %s
	env.Cursor = v
	if !ok {
%s
	}
}`, g.asBool(c.Cmd), indent(indent(onFail)))
}

func (g *generator) genTry(c *ast.Try) string {
	return fmt.Sprintf(`{
	v := env.Cursor
	if !(%s) {
		env.Cursor = v
	}
}`, g.asBool(c.Cmd))
}

// genDo compiles `do C`: run C, discard its success/failure, and put
// the cursor back. The saved value is a gap from env.Limit rather
// than env.Cursor's raw value: grounded on porter_stemmer.go's Stem
// function, which saves every step call's entry position the same
// way (`v_N := env.Limit - env.Cursor` / `env.Cursor = env.Limit -
// v_N`), not as a plain cursor snapshot. That distinction only matters
// when C's body deletes or replaces text (shrinking or growing the
// buffer, which shifts env.Limit itself via replaceRegion): a plain
// saved cursor value would then point past the end of the shrunk
// buffer, while the gap from env.Limit still lands at the same
// logical position relative to the new buffer end.
func (g *generator) genDo(c *ast.Do) string {
	return fmt.Sprintf(`{
	v := env.Limit - env.Cursor
	_ = %s
	env.Cursor = env.Limit - v
}`, g.asBool(c.Cmd))
}

func (g *generator) genFail(c *ast.Fail, onFail string) string {
	return fmt.Sprintf(`{
	_ = %s
%s
}`, g.asBool(c.Cmd), indent(onFail))
}

// genGoTo repeatedly probes one position at a time until cmd succeeds,
// leaving the cursor just *before* the successful position (spec §4.2
// goto). Grounded on original_source/src/sbl2py/ast.py's GoToNode
// pseudo code, translated into the closure-based idiom this package
// uses throughout.
func (g *generator) genGoTo(c *ast.GoTo, onFail string) string {
	limit := "env.Limit"
	step := "env.Cursor++"
	if g.backward {
		limit = "env.LimitBackward"
		step = "env.Cursor--"
	}
	return fmt.Sprintf(`for {
	v := env.Cursor
	if %s {
		env.Cursor = v
		break
	}
	env.Cursor = v
	if env.Cursor == %s {
%s
	}
	%s
}`, g.asBool(c.Cmd), limit, indent(indent(onFail)), step)
}

// genGoPast is genGoTo but leaves the cursor just past the match. The
// nested-label shape here is kept close to the vendored reference's
// own `gopast` output (the one construct where this package directly
// observed the real generated form) rather than collapsed into the
// closure idiom used elsewhere, since the label form reads at least as
// clearly for a simple two-level break.
func (g *generator) genGoPast(c *ast.GoPast, onFail string) string {
	limit := "env.Limit"
	step := "env.Cursor++"
	if g.backward {
		limit = "env.LimitBackward"
		step = "env.Cursor--"
	}
	return fmt.Sprintf(`golab:
	for {
		v := env.Cursor
	lab:
		for {
			if !(%s) {
				env.Cursor = v
				break lab
			}
			break golab
		}
		if env.Cursor == %s {
%s
		}
		%s
	}`, g.asBool(c.Cmd), limit, indent(indent(indent(onFail))), step)
}

func (g *generator) genRepeat(c *ast.Repeat) string {
	return fmt.Sprintf(`for {
	v := env.Cursor
	if !(%s) {
		env.Cursor = v
		break
	}
}`, g.asBool(c.Cmd))
}

func (g *generator) genLoop(c *ast.Loop, onFail string) string {
	return fmt.Sprintf(`for i, n := 0, %s; i < n; i++ {
%s
}`, g.intExpr(c.N), indent(g.gen(c.Cmd, onFail)))
}

func (g *generator) genAtLeast(c *ast.AtLeast, onFail string) string {
	return fmt.Sprintf(`for i, n := 0, %s; i < n; i++ {
%s
}
for {
	v := env.Cursor
	if !(%s) {
		env.Cursor = v
		break
	}
}`, g.intExpr(c.N), indent(g.gen(c.Cmd, onFail)), g.asBool(c.Cmd))
}

// genSetLimit narrows the active limit to where Bound's match ends,
// runs Body against that narrower limit starting over from Bound's
// original starting cursor, then always restores the limit (spec's
// setlimit, supplemented from ast.py's SetLimitNode: the restore line
// runs unconditionally, so the limit is never left narrowed even if
// Body fails).
func (g *generator) genSetLimit(c *ast.SetLimit, onFail string) string {
	limitField := "env.Limit"
	if g.backward {
		limitField = "env.LimitBackward"
	}
	return fmt.Sprintf(`{
	v0 := env.Cursor
%s
	saved := %s
	%s = env.Cursor
	env.Cursor = v0
	ok := %s
	%s = saved
	if !ok {
%s
	}
}`, indent(g.gen(c.Bound, onFail)), limitField, limitField, g.asBool(c.Body), limitField, indent(indent(onFail)))
}

// genBackwards compiles `backwards C`. Unlike a routine declared inside
// backwardmode(...), which only needs g.backward flipped at codegen
// time (ast.py's BackwardModeNode emits no runtime code for the
// switch), an inline backwards command must also move the cursor at
// run time: grounded on original_source/src/sbl2py/ast.py's
// BackwardsNode pseudo code and on the vendored
// blevesearch/snowballstem/porter/porter_stemmer.go's `// backwards`
// block (env.LimitBackward = env.Cursor; env.Cursor = env.Limit),
// confirmed equivalent to ast.py's save/swap/restore pair once the
// length-relative bookkeeping there is translated to this package's
// absolute Cursor/Limit/LimitBackward fields. Cursor and LimitBackward
// are restored unconditionally after C runs, win or lose, so a failing
// backwards leaves state exactly as it found it (spec's backtracking
// invariant); on failure the saved pre-attempt cursor is also
// reinstated before control passes to onFail.
func (g *generator) genBackwards(c *ast.Backwards, onFail string) string {
	savedBackward := g.backward
	g.backward = !g.backward
	inner := g.asBool(c.Cmd)
	g.backward = savedBackward

	return fmt.Sprintf(`{
	savedCursor := env.Cursor
	savedLimitBackward := env.LimitBackward
	env.LimitBackward = env.Cursor
	env.Cursor = env.Limit
	ok := %s
	env.Cursor = env.LimitBackward
	env.LimitBackward = savedLimitBackward
	if !ok {
		env.Cursor = savedCursor
%s
	}
}`, inner, indent(indent(onFail)))
}

func (g *generator) genIntCmd(c *ast.IntCmd, onFail string) string {
	expr := g.intExpr(c.Expr)
	if c.Op.IsTest() {
		return g.leafGuard(fmt.Sprintf("ctx.I_%s %s (%s)", c.Slot, c.Op.String(), expr), onFail)
	}
	return fmt.Sprintf("ctx.I_%s %s %s", c.Slot, c.Op.String(), expr)
}

func (g *generator) intExpr(e ast.IntExpr) string {
	switch x := e.(type) {
	case *ast.IntLit:
		return strconv.Itoa(x.Value)
	case *ast.IntRef:
		return "ctx.I_" + x.Name
	case *ast.MaxInt:
		g.usesMath = true
		return "math.MaxInt32"
	case *ast.MinInt:
		g.usesMath = true
		return "math.MinInt32"
	case *ast.Cursor:
		return "env.Cursor"
	case *ast.Limit:
		if g.backward {
			return "env.LimitBackward"
		}
		return "env.Limit"
	case *ast.Size:
		if g.backward {
			return "(env.Cursor - env.LimitBackward)"
		}
		return "(env.Limit - env.Cursor)"
	case *ast.SizeOf:
		return fmt.Sprintf("len([]rune(ctx.S_%s))", x.Ref)
	case *ast.Negate:
		return fmt.Sprintf("(-(%s))", g.intExpr(x.X))
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", g.intExpr(x.Left), x.Op.String(), g.intExpr(x.Right))
	default:
		return "0 /* unhandled int expression */"
	}
}
