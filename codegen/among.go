package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/snowballc/sbc/ast"
)

// genAmong compiles an `among ( COMMON? ARM+ )` command. The candidate
// table is built as a local slice literal at the call site rather than
// a package-level var: an arm gated by (ROUTINE) closes over this
// call's own ctx, which a package-level table has no way to capture
// (see DESIGN.md). Dispatch on the winning arm is a switch over the
// declaration-order arm index, playing the role of the vendored
// reference's `among_var == N` chain (porter_stemmer.go).
func (g *generator) genAmong(c *ast.Among, onFail string) string {
	var entries []string
	for armIdx, arm := range c.Arms {
		result := armIdx + 1
		for _, s := range arm.Strings {
			entry := fmt.Sprintf("{Str: %s, Result: %d", strconv.Quote(s.Text), result)
			if s.Routine != "" {
				entry += fmt.Sprintf(", Check: func(env *runtime.Env) bool { return r_%s(env, ctx) }", s.Routine)
			}
			entry += "}"
			entries = append(entries, entry)
		}
	}

	var b strings.Builder
	b.WriteString("{\n")
	b.WriteString("\tamongs := []*runtime.Among{\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "\t\t%s,\n", e)
	}
	b.WriteString("\t}\n")
	fmt.Fprintf(&b, "\tamongVar := env.%s(amongs)\n", g.dir("FindAmong"))
	b.WriteString("\tif amongVar == 0 {\n")
	b.WriteString(indent(indent(onFail)))
	b.WriteString("\n\t}\n")

	if c.Common != nil {
		b.WriteString(indent(g.gen(c.Common, onFail)))
		b.WriteString("\n")
	}

	b.WriteString("\tswitch amongVar {\n")
	for armIdx, arm := range c.Arms {
		fmt.Fprintf(&b, "\tcase %d:\n", armIdx+1)
		if arm.Cmd != nil {
			lines := g.gen(arm.Cmd, onFail)
			if lines != "" {
				b.WriteString(indent(indent(lines)))
				b.WriteString("\n")
			}
		}
	}
	b.WriteString("\t}\n")
	b.WriteString("}")
	return b.String()
}
