package sem

import (
	"github.com/snowballc/sbc/ast"
	"github.com/snowballc/sbc/errors"
)

// children returns cmd's direct command operands, for generic
// recursive traversal over the Command tree shapes that wrap other
// commands.
func children(cmd ast.Command) []ast.Command {
	switch c := cmd.(type) {
	case *ast.Sequence:
		return c.Cmds
	case *ast.And:
		return []ast.Command{c.Left, c.Right}
	case *ast.Or:
		return []ast.Command{c.Left, c.Right}
	case *ast.Not:
		return []ast.Command{c.Cmd}
	case *ast.Test:
		return []ast.Command{c.Cmd}
	case *ast.Try:
		return []ast.Command{c.Cmd}
	case *ast.Do:
		return []ast.Command{c.Cmd}
	case *ast.Fail:
		return []ast.Command{c.Cmd}
	case *ast.GoTo:
		return []ast.Command{c.Cmd}
	case *ast.GoPast:
		return []ast.Command{c.Cmd}
	case *ast.Repeat:
		return []ast.Command{c.Cmd}
	case *ast.Loop:
		return []ast.Command{c.Cmd}
	case *ast.AtLeast:
		return []ast.Command{c.Cmd}
	case *ast.Backwards:
		return []ast.Command{c.Cmd}
	case *ast.SetLimit:
		return []ast.Command{c.Bound, c.Body}
	case *ast.Among:
		cmds := make([]ast.Command, 0, len(c.Arms)+1)
		if c.Common != nil {
			cmds = append(cmds, c.Common)
		}
		for _, arm := range c.Arms {
			if arm.Cmd != nil {
				cmds = append(cmds, arm.Cmd)
			}
		}
		return cmds
	default:
		return nil
	}
}

// validateCommand runs a conservative legality check over a routine
// body: any slice-mutating command (<-, ->, delete) must coexist with
// at least one "[" and one "]" somewhere in the same routine (spec
// §4.2: those commands all operate on the bra..ket region). This does
// not attempt full control-flow ordering across or/and and
// backtracking combinators — doing so precisely is no simpler than
// proving the routine terminates with a given slice state, since
// among/goto/repeat can revisit the same node under different
// histories. It only catches the unambiguous case of a slice mutation
// with no "[" / "]" anywhere in the routine at all.
func validateCommand(body ast.Command) error {
	var hasLeft, hasRight bool
	var sliceOp ast.Command

	var walk func(ast.Command)
	walk = func(cmd ast.Command) {
		switch cmd.(type) {
		case *ast.SetLeft:
			hasLeft = true
		case *ast.SetRight:
			hasRight = true
		case *ast.ReplaceSlice, *ast.ExportSlice, *ast.Delete:
			if sliceOp == nil {
				sliceOp = cmd
			}
		}
		for _, child := range children(cmd) {
			walk(child)
		}
	}
	walk(body)

	if sliceOp != nil && !(hasLeft && hasRight) {
		return errors.At(errors.Mode, sliceOp.Pos(), "slice operation requires an established [ ... ] region")
	}
	return nil
}
