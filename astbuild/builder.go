// Package astbuild implements C5: a second, independent recursive-descent
// pass over the same token stream C4 has already validated, producing
// the AST the rest of the interpreter walks. It does not re-validate
// syntax — Builder assumes the tokens form a valid program and panics
// only on a genuine internal inconsistency, never on malformed input.
package astbuild

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shadowCow/nettopo/ast"
	"github.com/shadowCow/nettopo/grammar"
	"github.com/shadowCow/nettopo/langdef"
	"github.com/shadowCow/nettopo/lexer"
)

// Builder holds state during AST construction.
type Builder struct {
	tokens   []lexer.Token
	position int
}

// NewBuilder creates a builder over tokens, which must already have
// WHITESPACE dropped and must have validated successfully against the
// grammar (astbuild does not re-check syntax).
func NewBuilder(tokens []lexer.Token) *Builder {
	return &Builder{tokens: tokens}
}

// Build parses the token stream into a *ast.Program. A token mismatch
// here means the stream did not actually pass C4 validation first — a
// caller bug, not a user-facing syntax error — so it is reported as a
// returned error rather than left to crash the process.
func (b *Builder) Build() (program *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			program = nil
			err = fmt.Errorf("%v", r)
		}
	}()

	start := b.pos()
	b.expect(langdef.KwPrograma)
	name := b.expect(langdef.TokIdentifier).Lexeme
	b.expect(langdef.OpSemicolon)

	defs := b.parseDefs(start)

	var modules []*ast.ModuleDef
	for b.peek().Kind == langdef.KwModulo {
		modules = append(modules, b.parseModuleDef())
	}

	b.expect(langdef.KwInicio)
	body := b.parseStmtList()
	b.expect(langdef.KwFin)
	b.expect(langdef.OpDot)

	return &ast.Program{
		Position: start,
		Name:     name,
		Defs:     defs,
		Modules:  modules,
		Body:     body,
	}, nil
}

func (b *Builder) parseDefs(start ast.Position) *ast.Defs {
	defs := &ast.Defs{Position: start}

	for b.peek().Kind == langdef.KwDefine {
		b.advance()
		switch b.peek().Kind {
		case langdef.KwMaquinas:
			b.advance()
			defs.Machines = append(defs.Machines, b.parseIdentList()...)
			b.expect(langdef.OpSemicolon)

		case langdef.KwConcentradores:
			b.advance()
			defs.Hubs = append(defs.Hubs, b.parseHubList()...)
			b.expect(langdef.OpSemicolon)

		case langdef.KwCoaxial:
			b.advance()
			defs.Coaxials = append(defs.Coaxials, b.parseCoaxList()...)
			b.expect(langdef.OpSemicolon)

		default:
			panic(fmt.Sprintf("astbuild: expected a define-clause keyword, found %s at line %d", b.peek().Kind, b.peek().Line))
		}
	}

	return defs
}

func (b *Builder) parseIdentList() []string {
	names := []string{b.expect(langdef.TokIdentifier).Lexeme}
	for b.peek().Kind == langdef.OpComma {
		b.advance()
		names = append(names, b.expect(langdef.TokIdentifier).Lexeme)
	}
	return names
}

func (b *Builder) parseHubList() []ast.HubDecl {
	decls := []ast.HubDecl{b.parseHubItem()}
	for b.peek().Kind == langdef.OpComma {
		b.advance()
		decls = append(decls, b.parseHubItem())
	}
	return decls
}

func (b *Builder) parseHubItem() ast.HubDecl {
	start := b.pos()
	name := b.expect(langdef.TokIdentifier).Lexeme
	b.expect(langdef.OpEquals)
	ports := b.parseIntLiteral()

	decl := ast.HubDecl{Position: start, Name: name, Ports: ports}
	if b.peek().Kind == langdef.OpDot {
		b.advance()
		decl.HasTap = true
		decl.TapPosition = b.parseIntLiteral()
	}
	return decl
}

func (b *Builder) parseCoaxList() []ast.CoaxDecl {
	decls := []ast.CoaxDecl{b.parseCoaxItem()}
	for b.peek().Kind == langdef.OpComma {
		b.advance()
		decls = append(decls, b.parseCoaxItem())
	}
	return decls
}

func (b *Builder) parseCoaxItem() ast.CoaxDecl {
	start := b.pos()
	name := b.expect(langdef.TokIdentifier).Lexeme
	b.expect(langdef.OpEquals)
	length := b.parseIntLiteral()
	return ast.CoaxDecl{Position: start, Name: name, Length: length}
}

func (b *Builder) parseIntLiteral() int {
	tok := b.expect(langdef.TokNumber)
	value, err := strconv.Atoi(tok.Lexeme)
	if err != nil {
		panic(fmt.Sprintf("astbuild: malformed number literal %q at line %d", tok.Lexeme, tok.Line))
	}
	return value
}

func (b *Builder) parseModuleDef() *ast.ModuleDef {
	start := b.pos()
	b.expect(langdef.KwModulo)
	name := b.expect(langdef.TokIdentifier).Lexeme
	b.expect(langdef.OpSemicolon)
	b.expect(langdef.KwInicio)
	body := b.parseStmtList()
	b.expect(langdef.KwFin)

	return &ast.ModuleDef{Position: start, Name: name, Body: body}
}

func (b *Builder) parseStmtList() []ast.Statement {
	var stmts []ast.Statement
	for isStmtStart(b.peek().Kind) {
		stmts = append(stmts, b.parseStmt())
	}
	return stmts
}

func isStmtStart(kind grammar.TokenType) bool {
	switch kind {
	case langdef.KwColoca, langdef.KwColocaCoaxial, langdef.KwUneMaquinaPuerto,
		langdef.KwAsignaPuerto, langdef.KwMaquinaCoaxial, langdef.KwAsignaMaquinaCoaxial,
		langdef.KwEscribe, langdef.KwSi, langdef.TokIdentifier:
		return true
	}
	return false
}

func (b *Builder) parseStmt() ast.Statement {
	start := b.pos()

	switch b.peek().Kind {
	case langdef.KwColoca:
		b.advance()
		b.expect(langdef.OpLParen)
		name := b.expect(langdef.TokIdentifier).Lexeme
		b.expect(langdef.OpComma)
		x := b.parseExpr()
		b.expect(langdef.OpComma)
		y := b.parseExpr()
		b.expect(langdef.OpRParen)
		b.expect(langdef.OpSemicolon)
		return &ast.PlaceStmt{Position: start, Name: name, X: x, Y: y}

	case langdef.KwColocaCoaxial:
		b.advance()
		b.expect(langdef.OpLParen)
		coax := b.expect(langdef.TokIdentifier).Lexeme
		b.expect(langdef.OpComma)
		x := b.parseExpr()
		b.expect(langdef.OpComma)
		y := b.parseExpr()
		b.expect(langdef.OpComma)
		dir := b.parseSide()
		b.expect(langdef.OpRParen)
		b.expect(langdef.OpSemicolon)
		return &ast.PlaceCoaxStmt{Position: start, Coax: coax, X: x, Y: y, Dir: dir}

	case langdef.KwUneMaquinaPuerto:
		b.advance()
		b.expect(langdef.OpLParen)
		machine := b.expect(langdef.TokIdentifier).Lexeme
		b.expect(langdef.OpComma)
		hub := b.expect(langdef.TokIdentifier).Lexeme
		b.expect(langdef.OpComma)
		port := b.parseExpr()
		b.expect(langdef.OpRParen)
		b.expect(langdef.OpSemicolon)
		return &ast.HubConnectStmt{Position: start, Machine: machine, Hub: hub, Port: port}

	case langdef.KwAsignaPuerto:
		b.advance()
		b.expect(langdef.OpLParen)
		hub := b.expect(langdef.TokIdentifier).Lexeme
		b.expect(langdef.OpComma)
		machine := b.expect(langdef.TokIdentifier).Lexeme
		b.expect(langdef.OpRParen)
		b.expect(langdef.OpSemicolon)
		return &ast.AssignPortStmt{Position: start, Hub: hub, Machine: machine}

	case langdef.KwMaquinaCoaxial:
		b.advance()
		b.expect(langdef.OpLParen)
		machine := b.expect(langdef.TokIdentifier).Lexeme
		b.expect(langdef.OpComma)
		coax := b.expect(langdef.TokIdentifier).Lexeme
		b.expect(langdef.OpComma)
		pos := b.parseExpr()
		b.expect(langdef.OpRParen)
		b.expect(langdef.OpSemicolon)
		return &ast.CoaxConnectStmt{Position: start, Machine: machine, Coax: coax, TapPos: pos}

	case langdef.KwAsignaMaquinaCoaxial:
		b.advance()
		b.expect(langdef.OpLParen)
		coax := b.expect(langdef.TokIdentifier).Lexeme
		b.expect(langdef.OpComma)
		machine := b.expect(langdef.TokIdentifier).Lexeme
		b.expect(langdef.OpRParen)
		b.expect(langdef.OpSemicolon)
		return &ast.AssignCoaxStmt{Position: start, Coax: coax, Machine: machine}

	case langdef.KwEscribe:
		b.advance()
		b.expect(langdef.OpLParen)
		val := b.parseExpr()
		b.expect(langdef.OpRParen)
		b.expect(langdef.OpSemicolon)
		return &ast.WriteStmt{Position: start, Value: val}

	case langdef.KwSi:
		b.advance()
		b.expect(langdef.OpLParen)
		cond := b.parseExpr()
		b.expect(langdef.OpRParen)
		b.expect(langdef.KwInicio)
		then := b.parseStmtList()
		b.expect(langdef.KwFin)

		var elseBody []ast.Statement
		if b.peek().Kind == langdef.KwSino {
			b.advance()
			b.expect(langdef.KwInicio)
			elseBody = b.parseStmtList()
			b.expect(langdef.KwFin)
		}
		return &ast.IfStmt{Position: start, Cond: cond, Then: then, Else: elseBody}

	default:
		name := b.expect(langdef.TokIdentifier).Lexeme
		b.expect(langdef.OpSemicolon)
		return &ast.ModuleCallStmt{Position: start, Name: name}
	}
}

func (b *Builder) parseSide() string {
	tok := b.advance()
	switch tok.Kind {
	case langdef.KwArriba, langdef.KwAbajo, langdef.KwIzquierda, langdef.KwDerecha:
		return tok.Lexeme
	}
	panic(fmt.Sprintf("astbuild: expected a side keyword, found %s at line %d", tok.Kind, tok.Line))
}

// parseExpr parses the lowest-precedence level (logical or) and descends.
func (b *Builder) parseExpr() ast.Expr { return b.parseOr() }

func (b *Builder) parseOr() ast.Expr {
	left := b.parseAnd()
	for b.peek().Kind == langdef.OpOr {
		start := b.pos()
		b.advance()
		right := b.parseAnd()
		left = &ast.LogicExpr{Position: start, Op: ast.LogicOr, Left: left, Right: right}
	}
	return left
}

func (b *Builder) parseAnd() ast.Expr {
	left := b.parseNot()
	for b.peek().Kind == langdef.OpAnd {
		start := b.pos()
		b.advance()
		right := b.parseNot()
		left = &ast.LogicExpr{Position: start, Op: ast.LogicAnd, Left: left, Right: right}
	}
	return left
}

func (b *Builder) parseNot() ast.Expr {
	if b.peek().Kind == langdef.OpNot {
		start := b.pos()
		b.advance()
		return &ast.NotExpr{Position: start, Inner: b.parseNot()}
	}
	return b.parseRel()
}

var relOps = map[grammar.TokenType]ast.RelOp{
	langdef.OpEquals: ast.RelEq,
	langdef.OpNeq:    ast.RelNeq,
	langdef.OpLt:     ast.RelLt,
	langdef.OpLte:    ast.RelLte,
	langdef.OpGt:     ast.RelGt,
	langdef.OpGte:    ast.RelGte,
}

func (b *Builder) parseRel() ast.Expr {
	left := b.parseUnary()
	if op, ok := relOps[b.peek().Kind]; ok {
		start := b.pos()
		b.advance()
		right := b.parseUnary()
		return &ast.RelExpr{Position: start, Op: op, Left: left, Right: right}
	}
	return left
}

func (b *Builder) parseUnary() ast.Expr {
	expr := b.parseAtom()
	for {
		switch b.peek().Kind {
		case langdef.OpDot:
			start := b.pos()
			b.advance()
			field := b.parseFieldName()
			expr = &ast.FieldAccess{Position: start, Target: expr, Field: field}
		case langdef.OpLBracket:
			start := b.pos()
			b.advance()
			index := b.parseExpr()
			b.expect(langdef.OpRBracket)
			expr = &ast.IndexAccess{Position: start, Target: expr, Index: index}
		default:
			return expr
		}
	}
}

func (b *Builder) parseFieldName() string {
	tok := b.advance()
	return tok.Lexeme
}

func (b *Builder) parseAtom() ast.Expr {
	start := b.pos()
	tok := b.advance()

	switch tok.Kind {
	case langdef.TokNumber:
		value, err := strconv.Atoi(tok.Lexeme)
		if err != nil {
			panic(fmt.Sprintf("astbuild: malformed number literal %q at line %d", tok.Lexeme, tok.Line))
		}
		return &ast.NumberLit{Position: start, Value: value}

	case langdef.TokString:
		return &ast.StringLit{Position: start, Value: unquote(tok.Lexeme)}

	case langdef.TokIdentifier:
		return &ast.Ident{Position: start, Name: tok.Lexeme}

	case langdef.OpLParen:
		inner := b.parseExpr()
		b.expect(langdef.OpRParen)
		return inner

	default:
		panic(fmt.Sprintf("astbuild: unexpected token %s at line %d", tok.Kind, tok.Line))
	}
}

// unquote strips the surrounding quote characters and resolves the three
// escape sequences the lexical grammar admits inside a string body: \\,
// \", and \n.
func unquote(lexeme string) string {
	if len(lexeme) < 2 {
		return lexeme
	}
	body := lexeme[1 : len(lexeme)-1]

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			i++
			switch body[i] {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			default:
				b.WriteByte('\\')
				b.WriteByte(body[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// --- token stream helpers: peek/advance/expect over the flat token slice ---

func (b *Builder) peek() lexer.Token {
	if b.position >= len(b.tokens) {
		return lexer.Token{Kind: langdef.TokEOF}
	}
	return b.tokens[b.position]
}

func (b *Builder) advance() lexer.Token {
	tok := b.peek()
	if b.position < len(b.tokens) {
		b.position++
	}
	return tok
}

func (b *Builder) expect(kind grammar.TokenType) lexer.Token {
	tok := b.peek()
	if tok.Kind != kind {
		panic(fmt.Sprintf("astbuild: expected %s, found %s at line %d, col %d", kind, tok.Kind, tok.Line, tok.Col))
	}
	return b.advance()
}

func (b *Builder) pos() ast.Position {
	tok := b.peek()
	return ast.Position{Line: tok.Line, Col: tok.Col}
}
