package parser

import (
	"github.com/snowballc/sbc/ast"
	"github.com/snowballc/sbc/errors"
	"github.com/snowballc/sbc/lexer"
)

// parseStrCmd parses a full command (a routine body, or any nested
// command position) at the loosest precedence level: a sequence of
// and/or-expressions joined by bare juxtaposition (grammar.py's
// Empty()-separated concatenation level, the last and therefore
// lowest-precedence entry in STR_CMD's operatorPrecedence table).
func (p *Parser) parseStrCmd() (ast.Command, error) {
	pos := p.tok.Pos()
	first, err := p.parseAndOr()
	if err != nil {
		return nil, err
	}
	cmds := []ast.Command{first}
	for p.startsCommand() {
		next, err := p.parseAndOr()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, next)
	}
	if len(cmds) == 1 {
		return cmds[0], nil
	}
	return ast.NewSequence(pos, cmds), nil
}

// parseAndOr parses a left-associative chain of Unary commands joined
// by "and"/"or" (the middle precedence level).
func (p *Parser) parseAndOr() (ast.Command, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.Is("and") || p.tok.Is("or") {
		pos := p.tok.Pos()
		isAnd := p.tok.Is("and")
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if isAnd {
			left = ast.NewAnd(pos, left, right)
		} else {
			left = ast.NewOr(pos, left, right)
		}
	}
	return left, nil
}

// unaryKeywords lists the right-associative unary prefix commands
// (grammar.py's UNARY_OPERATOR), the tightest-binding level above
// and/or.
var unaryKeywords = map[string]bool{
	"not": true, "test": true, "try": true, "do": true, "fail": true,
	"goto": true, "gopast": true, "repeat": true, "backwards": true,
}

// parseUnary parses a (possibly empty) run of unary prefix keywords
// wrapping a single atomic command/operand.
func (p *Parser) parseUnary() (ast.Command, error) {
	pos := p.tok.Pos()
	switch {
	case p.tok.Is("loop"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		cmd, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewLoop(pos, n, cmd), nil

	case p.tok.Is("atleast"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		cmd, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewAtLeast(pos, n, cmd), nil

	case unaryKeywords[p.tok.Text] && p.tok.Kind == lexer.Keyword:
		kw := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		cmd, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		switch kw {
		case "not":
			return ast.NewNot(pos, cmd), nil
		case "test":
			return ast.NewTest(pos, cmd), nil
		case "try":
			return ast.NewTry(pos, cmd), nil
		case "do":
			return ast.NewDo(pos, cmd), nil
		case "fail":
			return ast.NewFail(pos, cmd), nil
		case "goto":
			return ast.NewGoTo(pos, cmd), nil
		case "gopast":
			return ast.NewGoPast(pos, cmd), nil
		case "repeat":
			return ast.NewRepeat(pos, cmd), nil
		case "backwards":
			return ast.NewBackwards(pos, cmd), nil
		}
	}
	return p.parseOperand()
}

// startsCommand reports whether the current token can begin a new
// and/or-expression, used by parseStrCmd to decide whether
// concatenation continues. It is the complement of every token that
// terminates an enclosing construct: ")", "for", "and", "or", EOF, and
// the tokens that open the next top-level item ("define",
// "backwardmode", or a declaration keyword).
func (p *Parser) startsCommand() bool {
	if _, ok := declKeywords[p.tok.Text]; ok && p.tok.Kind == lexer.Keyword {
		return false
	}
	switch {
	case p.tok.Kind == lexer.EOF:
		return false
	case p.tok.Is(")") || p.tok.Is("for") || p.tok.Is("and") || p.tok.Is("or"):
		return false
	case p.tok.Is("define") || p.tok.Is("backwardmode"):
		return false
	default:
		return true
	}
}

// parseOperand parses one STR_CMD_OPERAND: an integer command, a
// literal/reference command, or a parenthesized/among/setlimit form
// (spec §4.2, grammar.py's STR_CMD_OPERAND).
func (p *Parser) parseOperand() (ast.Command, error) {
	pos := p.tok.Pos()

	if p.tok.Is("$") {
		return p.parseIntCmd()
	}

	if p.tok.Is("(") {
		return p.parseParenOrEmpty()
	}

	if p.tok.Is("substring") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewSubstring(pos), nil
	}

	if p.tok.Is("among") {
		return p.parseAmong()
	}

	if p.tok.Is("setlimit") {
		return p.parseSetLimit()
	}

	if p.tok.Is("insert") || p.tok.Is("<+") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.parseChars()
		if err != nil {
			return nil, err
		}
		return ast.NewInsert(pos, v), nil
	}

	if p.tok.Is("attach") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.parseChars()
		if err != nil {
			return nil, err
		}
		return ast.NewAttach(pos, v), nil
	}

	if p.tok.Is("<-") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.parseChars()
		if err != nil {
			return nil, err
		}
		return ast.NewReplaceSlice(pos, v), nil
	}

	if p.tok.Is("->") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		tok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if !p.decls.strings[tok.Text] {
			return nil, errors.Undeclared(tok.Pos(), "string", tok.Text, p.knownNames())
		}
		return ast.NewExportSlice(pos, tok.Text), nil
	}

	if p.tok.Is("delete") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewDelete(pos), nil
	}

	if p.tok.Is("hop") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewHop(pos, n), nil
	}

	if p.tok.Is("next") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewNext(pos), nil
	}

	if p.tok.Is("[") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewSetLeft(pos), nil
	}

	if p.tok.Is("]") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewSetRight(pos), nil
	}

	if p.tok.Is("setmark") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		tok, err := p.expectIntRef()
		if err != nil {
			return nil, err
		}
		return ast.NewSetMark(pos, tok.Text), nil
	}

	if p.tok.Is("tomark") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewToMark(pos, n), nil
	}

	if p.tok.Is("atmark") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewAtMark(pos, n), nil
	}

	if p.tok.Is("tolimit") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewToLimit(pos), nil
	}

	if p.tok.Is("atlimit") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewAtLimit(pos), nil
	}

	if p.tok.Is("set") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		tok, err := p.expectBooleanRef()
		if err != nil {
			return nil, err
		}
		return ast.NewSetBool(pos, tok.Text), nil
	}

	if p.tok.Is("unset") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		tok, err := p.expectBooleanRef()
		if err != nil {
			return nil, err
		}
		return ast.NewUnsetBool(pos, tok.Text), nil
	}

	if p.tok.Is("true") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewTrueCmd(pos), nil
	}

	if p.tok.Is("false") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewFalseCmd(pos), nil
	}

	if p.tok.Is("non") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Is("-") { // optional hyphen: "non-vowel"
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		tok, err := p.expectGroupingRef()
		if err != nil {
			return nil, err
		}
		return ast.NewNonCmd(pos, tok.Text), nil
	}

	if p.tok.Kind == lexer.String {
		v, err := p.parseChars()
		if err != nil {
			return nil, err
		}
		return ast.NewStartsWith(pos, v), nil
	}

	if p.tok.Kind == lexer.Ident {
		return p.parseNameOperand()
	}

	return nil, p.errf("expected a command, got %q", p.tok.Text)
}

// parseNameOperand disambiguates a bare identifier used as a command
// into a routine call, a grouping test, or a boolean test, based on
// which declaration list it was registered under (grammar.py achieves
// the same distinction via per-category dynamic Reference lookups).
func (p *Parser) parseNameOperand() (ast.Command, error) {
	pos := p.tok.Pos()
	name := p.tok.Text
	switch {
	case p.decls.routines[name]:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewRoutineCall(pos, name), nil
	case p.decls.groupings[name]:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewGroupingCmd(pos, name), nil
	case p.decls.booleans[name]:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewBooleanTest(pos, name), nil
	default:
		return nil, errors.Undeclared(pos, "name", name, p.knownNames())
	}
}

func (p *Parser) expectIntRef() (lexer.Token, error) {
	if p.tok.Kind != lexer.Ident || !p.decls.integers[p.tok.Text] {
		if p.tok.Kind == lexer.Ident {
			return lexer.Token{}, errors.Undeclared(p.tok.Pos(), "integer", p.tok.Text, p.knownNames())
		}
		return lexer.Token{}, p.errf("expected an integer name, got %q", p.tok.Text)
	}
	tok := p.tok
	return tok, p.advance()
}

func (p *Parser) expectBooleanRef() (lexer.Token, error) {
	if p.tok.Kind != lexer.Ident || !p.decls.booleans[p.tok.Text] {
		if p.tok.Kind == lexer.Ident {
			return lexer.Token{}, errors.Undeclared(p.tok.Pos(), "boolean", p.tok.Text, p.knownNames())
		}
		return lexer.Token{}, p.errf("expected a boolean name, got %q", p.tok.Text)
	}
	tok := p.tok
	return tok, p.advance()
}

func (p *Parser) expectGroupingRef() (lexer.Token, error) {
	if p.tok.Kind != lexer.Ident || !p.decls.groupings[p.tok.Text] {
		if p.tok.Kind == lexer.Ident {
			return lexer.Token{}, errors.Undeclared(p.tok.Pos(), "grouping", p.tok.Text, p.knownNames())
		}
		return lexer.Token{}, p.errf("expected a grouping name, got %q", p.tok.Text)
	}
	tok := p.tok
	return tok, p.advance()
}

// parseParenOrEmpty parses either "()" (EmptyCmd) or "( STR_CMD )".
func (p *Parser) parseParenOrEmpty() (ast.Command, error) {
	pos := p.tok.Pos()
	if err := p.advance(); err != nil { // consume "("
		return nil, err
	}
	if p.tok.Is(")") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewEmptyCmd(pos), nil
	}
	cmd, err := p.parseStrCmd()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return cmd, nil
}

// parseSetLimit parses `setlimit STR_CMD for ( STR_CMD )`.
func (p *Parser) parseSetLimit() (ast.Command, error) {
	pos := p.tok.Pos()
	if err := p.advance(); err != nil { // consume "setlimit"
		return nil, err
	}
	bound, err := p.parseStrCmd()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("for"); err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	body, err := p.parseStrCmd()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return ast.NewSetLimit(pos, bound, body), nil
}

// parseAmong parses `among ( COMMON? ARM+ )` where COMMON is an
// optional leading `(STR_CMD)` and each ARM is one-or-more quoted
// strings (each optionally naming a routine) followed by an optional
// command (spec §4.3).
func (p *Parser) parseAmong() (ast.Command, error) {
	pos := p.tok.Pos()
	if err := p.advance(); err != nil { // consume "among"
		return nil, err
	}
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}

	var common ast.Command
	if p.tok.Is("(") {
		c, err := p.parseParenOrEmpty()
		if err != nil {
			return nil, err
		}
		if _, ok := c.(*ast.EmptyCmd); !ok {
			common = c
		}
	}

	var arms []ast.AmongArm
	for p.tok.Kind == lexer.String {
		arm, err := p.parseAmongArm()
		if err != nil {
			return nil, err
		}
		arms = append(arms, arm)
	}
	if len(arms) == 0 {
		return nil, p.errf("among requires at least one string alternative")
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return ast.NewAmong(pos, common, arms), nil
}

func (p *Parser) parseAmongArm() (ast.AmongArm, error) {
	var arm ast.AmongArm
	for p.tok.Kind == lexer.String {
		text := p.tok.Text
		if err := p.advance(); err != nil {
			return arm, err
		}
		routine := ""
		if p.tok.Kind == lexer.Ident && p.decls.routines[p.tok.Text] {
			routine = p.tok.Text
			if err := p.advance(); err != nil {
				return arm, err
			}
		}
		arm.Strings = append(arm.Strings, ast.AmongString{Text: text, Routine: routine})
	}
	if p.tok.Is("(") {
		cmd, err := p.parseParenOrEmpty()
		if err != nil {
			return arm, err
		}
		if _, ok := cmd.(*ast.EmptyCmd); !ok {
			arm.Cmd = cmd
		}
	}
	return arm, nil
}

// parseIntCmd parses `$INT_REF OP EXPRESSION`.
func (p *Parser) parseIntCmd() (ast.Command, error) {
	pos := p.tok.Pos()
	if err := p.advance(); err != nil { // consume "$"
		return nil, err
	}
	slotTok, err := p.expectIntRef()
	if err != nil {
		return nil, err
	}
	op, ok := intOps[p.tok.Text]
	if !ok || p.tok.Kind != lexer.Punct {
		return nil, p.errf("expected an integer operator, got %q", p.tok.Text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewIntCmd(pos, slotTok.Text, op, expr), nil
}

var intOps = map[string]ast.IntOp{
	"=":  ast.IntAssign,
	"+=": ast.IntIncBy,
	"-=": ast.IntDecBy,
	"*=": ast.IntMulBy,
	"/=": ast.IntDivBy,
	"==": ast.IntEq,
	"!=": ast.IntNe,
	">=": ast.IntGe,
	"<=": ast.IntLe,
	">":  ast.IntGt,
	"<":  ast.IntLt,
}
