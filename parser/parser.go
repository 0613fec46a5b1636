// Package parser implements a hand-written recursive-descent parser
// over the token stream produced by package lexer, building an
// ast.Program (spec §4.2). The grammar and precedence levels follow
// original_source/src/sbl2py/grammar.py's PROGRAM/STR_CMD/EXPRESSION
// rules; unlike that grammar's dynamically-updated Reference
// primitives, this parser tracks declared names itself (in declSets)
// so that a bare identifier used as a command can be classified as a
// routine call, a grouping test, or a boolean test at parse time, the
// same distinction grammar.py makes via its per-category Reference
// lookups.
package parser

import (
	"github.com/snowballc/sbc/ast"
	"github.com/snowballc/sbc/errors"
	"github.com/snowballc/sbc/lexer"
	"github.com/snowballc/sbc/source"
)

// declSets tracks which names have been declared in which category so
// far, purely to disambiguate identifiers while parsing; package sem
// performs the real (complete, order-independent) legality checks
// afterwards.
type declSets struct {
	strings   map[string]bool
	integers  map[string]bool
	booleans  map[string]bool
	routines  map[string]bool
	groupings map[string]bool
}

func newDeclSets() *declSets {
	return &declSets{
		strings:   map[string]bool{},
		integers:  map[string]bool{},
		booleans:  map[string]bool{},
		routines:  map[string]bool{},
		groupings: map[string]bool{},
	}
}

// Parser consumes a lexer.Lexer and produces an ast.Program.
type Parser struct {
	lex   *lexer.Lexer
	tok   lexer.Token
	decls *declSets
}

// New creates a Parser over src.
func New(src *source.Source) (*Parser, error) {
	l := lexer.New(src)
	p := &Parser{lex: l, decls: newDeclSets()}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) errf(format string, args ...interface{}) error {
	return errors.At(errors.Parse, p.tok.Pos(), format, args...)
}

func (p *Parser) expectPunct(text string) (lexer.Token, error) {
	if !p.tok.Is(text) {
		return lexer.Token{}, p.errf("expected %q, got %q", text, p.tok.Text)
	}
	tok := p.tok
	return tok, p.advance()
}

func (p *Parser) expectIdent() (lexer.Token, error) {
	if p.tok.Kind != lexer.Ident {
		return lexer.Token{}, p.errf("expected a name, got %q", p.tok.Text)
	}
	tok := p.tok
	return tok, p.advance()
}

// ParseProgram parses an entire compilation unit.
func ParseProgram(src *source.Source) (*ast.Program, error) {
	p, err := New(src)
	if err != nil {
		return nil, err
	}
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	pos := p.tok.Pos()
	var items []ast.TopLevel
	for p.tok.Kind != lexer.EOF {
		item, err := p.parseProgramAtom()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return ast.NewProgram(pos, items), nil
}

var declKeywords = map[string]ast.DeclKind{
	"strings":   ast.StringsDecl,
	"integers":  ast.IntegersDecl,
	"booleans":  ast.BooleansDecl,
	"routines":  ast.RoutinesDecl,
	"externals": ast.ExternalsDecl,
	"groupings": ast.GroupingsDecl,
}

func (p *Parser) parseProgramAtom() (ast.TopLevel, error) {
	if _, ok := declKeywords[p.tok.Text]; ok && p.tok.Kind == lexer.Keyword {
		return p.parseDeclaration()
	}
	switch {
	case p.tok.Is("define"):
		return p.parseDefine()
	case p.tok.Is("backwardmode"):
		return p.parseBackwardSection()
	default:
		return nil, p.errf("expected a declaration, a define, or backwardmode, got %q", p.tok.Text)
	}
}

func (p *Parser) parseDeclaration() (*ast.Declaration, error) {
	pos := p.tok.Pos()
	kind, ok := declKeywords[p.tok.Text]
	if !ok {
		return nil, p.errf("expected a declaration keyword, got %q", p.tok.Text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var names []string
	for !p.tok.Is(")") {
		if p.tok.Kind == lexer.EOF {
			return nil, p.errf("unterminated declaration, expected \")\"")
		}
		tok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, tok.Text)
		p.registerDecl(kind, tok.Text)
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return ast.NewDeclaration(pos, kind, names), nil
}

// registerDecl records name under kind (and, for externals, also as a
// routine: spec §3, "every external is also a routine").
func (p *Parser) registerDecl(kind ast.DeclKind, name string) {
	switch kind {
	case ast.StringsDecl:
		p.decls.strings[name] = true
	case ast.IntegersDecl:
		p.decls.integers[name] = true
	case ast.BooleansDecl:
		p.decls.booleans[name] = true
	case ast.RoutinesDecl:
		p.decls.routines[name] = true
	case ast.ExternalsDecl:
		p.decls.routines[name] = true
	case ast.GroupingsDecl:
		p.decls.groupings[name] = true
	}
}

func (p *Parser) parseDefine() (ast.TopLevel, error) {
	pos := p.tok.Pos()
	if err := p.advance(); err != nil { // consume "define"
		return nil, err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if p.tok.Is("as") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		p.decls.routines[nameTok.Text] = true
		body, err := p.parseStrCmd()
		if err != nil {
			return nil, err
		}
		return ast.NewRoutineDef(pos, nameTok.Text, body), nil
	}
	p.decls.groupings[nameTok.Text] = true
	expr, err := p.parseGroupingExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewGroupingDef(pos, nameTok.Text, expr), nil
}

func (p *Parser) parseGroupingExpr() (ast.GroupingExpr, error) {
	left, err := p.parseGroupingAtom()
	if err != nil {
		return nil, err
	}
	for p.tok.Is("+") || p.tok.Is("-") {
		pos := p.tok.Pos()
		op := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseGroupingAtom()
		if err != nil {
			return nil, err
		}
		if op == "+" {
			left = ast.NewSetUnion(pos, left, right)
		} else {
			left = ast.NewSetDifference(pos, left, right)
		}
	}
	return left, nil
}

func (p *Parser) parseGroupingAtom() (ast.GroupingExpr, error) {
	pos := p.tok.Pos()
	if p.tok.Kind == lexer.Ident && p.decls.groupings[p.tok.Text] {
		name := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewGroupingRef(pos, name), nil
	}
	if p.tok.Kind == lexer.String {
		text := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewCharSet(pos, text), nil
	}
	return nil, p.errf("expected a grouping name or a string literal, got %q", p.tok.Text)
}

func (p *Parser) parseBackwardSection() (*ast.BackwardSection, error) {
	pos := p.tok.Pos()
	if err := p.advance(); err != nil { // consume "backwardmode"
		return nil, err
	}
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var items []ast.TopLevel
	for !p.tok.Is(")") {
		if p.tok.Kind == lexer.EOF {
			return nil, p.errf("unterminated backwardmode section, expected \")\"")
		}
		item, err := p.parseProgramAtom()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return ast.NewBackwardSection(pos, items), nil
}

// parseChars parses the CHARS operand (a string literal or a
// previously declared string name) shared by insert/attach/<- and the
// bare string-match command.
func (p *Parser) parseChars() (ast.Chars, error) {
	pos := p.tok.Pos()
	if p.tok.Kind == lexer.String {
		text := p.tok.Text
		if err := p.advance(); err != nil {
			return ast.Chars{}, err
		}
		return ast.NewCharsLiteral(pos, text), nil
	}
	if p.tok.Kind == lexer.Ident {
		name := p.tok.Text
		if !p.decls.strings[name] {
			return ast.Chars{}, errors.Undeclared(p.tok.Pos(), "string", name, p.knownNames())
		}
		if err := p.advance(); err != nil {
			return ast.Chars{}, err
		}
		return ast.NewCharsRef(pos, name), nil
	}
	return ast.Chars{}, p.errf("expected a string literal or string name, got %q", p.tok.Text)
}

func (p *Parser) knownNames() []string {
	var out []string
	for _, set := range []map[string]bool{p.decls.strings, p.decls.integers, p.decls.booleans, p.decls.routines, p.decls.groupings} {
		for name := range set {
			out = append(out, name)
		}
	}
	return out
}
