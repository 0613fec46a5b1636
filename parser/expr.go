package parser

import (
	"strconv"

	"github.com/snowballc/sbc/ast"
	"github.com/snowballc/sbc/errors"
	"github.com/snowballc/sbc/lexer"
)

// parseExpression parses an integer expression at the additive level
// (loosest), per grammar.py's EXPRESSION precedence table: unary minus
// binds tightest, then '*'/'/' , then '+'/'-'.
func (p *Parser) parseExpression() (ast.IntExpr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.Is("+") || p.tok.Is("-") {
		pos := p.tok.Pos()
		isAdd := p.tok.Is("+")
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		op := ast.OpSub
		if isAdd {
			op = ast.OpAdd
		}
		left = ast.NewBinaryExpr(pos, op, left, right)
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.IntExpr, error) {
	left, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	for p.tok.Is("*") || p.tok.Is("/") {
		pos := p.tok.Pos()
		isMul := p.tok.Is("*")
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		op := ast.OpDiv
		if isMul {
			op = ast.OpMul
		}
		left = ast.NewBinaryExpr(pos, op, left, right)
	}
	return left, nil
}

func (p *Parser) parseUnaryExpr() (ast.IntExpr, error) {
	if p.tok.Is("-") {
		pos := p.tok.Pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewNegate(pos, x), nil
	}
	return p.parseExprOperand()
}

func (p *Parser) parseExprOperand() (ast.IntExpr, error) {
	pos := p.tok.Pos()
	switch {
	case p.tok.Is("maxint"):
		return p.consumeExprKeyword(func() ast.IntExpr { return ast.NewMaxInt(pos) })
	case p.tok.Is("minint"):
		return p.consumeExprKeyword(func() ast.IntExpr { return ast.NewMinInt(pos) })
	case p.tok.Is("cursor"):
		return p.consumeExprKeyword(func() ast.IntExpr { return ast.NewCursor(pos) })
	case p.tok.Is("limit"):
		return p.consumeExprKeyword(func() ast.IntExpr { return ast.NewLimit(pos) })
	case p.tok.Is("size"):
		return p.consumeExprKeyword(func() ast.IntExpr { return ast.NewSize(pos) })
	case p.tok.Is("sizeof"):
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
		return ast.NewSizeOf(pos, tok.Text), nil
	case p.tok.Kind == lexer.Int:
		v, err := strconv.Atoi(p.tok.Text)
		if err != nil {
			return nil, p.errf("invalid integer literal %q", p.tok.Text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewIntLit(pos, v), nil
	case p.tok.Kind == lexer.Ident:
		if !p.decls.integers[p.tok.Text] {
			return nil, errors.Undeclared(pos, "integer", p.tok.Text, p.knownNames())
		}
		name := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewIntRef(pos, name), nil
	default:
		return nil, p.errf("expected an integer expression, got %q", p.tok.Text)
	}
}

func (p *Parser) consumeExprKeyword(build func() ast.IntExpr) (ast.IntExpr, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	return build(), nil
}
