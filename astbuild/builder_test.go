package astbuild

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowCow/nettopo/ast"
	"github.com/shadowCow/nettopo/langdef"
	"github.com/shadowCow/nettopo/lexer"
)

func TestBuildMinimalProgram(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: langdef.KwPrograma, Lexeme: "programa", Line: 1, Col: 1},
		{Kind: langdef.TokIdentifier, Lexeme: "demo", Line: 1, Col: 10},
		{Kind: langdef.OpSemicolon, Lexeme: ";", Line: 1, Col: 14},

		{Kind: langdef.KwDefine, Lexeme: "define", Line: 2, Col: 1},
		{Kind: langdef.KwMaquinas, Lexeme: "maquinas", Line: 2, Col: 8},
		{Kind: langdef.TokIdentifier, Lexeme: "m1", Line: 2, Col: 17},
		{Kind: langdef.OpSemicolon, Lexeme: ";", Line: 2, Col: 19},

		{Kind: langdef.KwInicio, Lexeme: "inicio", Line: 3, Col: 1},

		{Kind: langdef.KwColoca, Lexeme: "coloca", Line: 4, Col: 1},
		{Kind: langdef.OpLParen, Lexeme: "(", Line: 4, Col: 7},
		{Kind: langdef.TokIdentifier, Lexeme: "m1", Line: 4, Col: 8},
		{Kind: langdef.OpComma, Lexeme: ",", Line: 4, Col: 10},
		{Kind: langdef.TokNumber, Lexeme: "1", Line: 4, Col: 11},
		{Kind: langdef.OpComma, Lexeme: ",", Line: 4, Col: 12},
		{Kind: langdef.TokNumber, Lexeme: "2", Line: 4, Col: 13},
		{Kind: langdef.OpRParen, Lexeme: ")", Line: 4, Col: 14},
		{Kind: langdef.OpSemicolon, Lexeme: ";", Line: 4, Col: 15},

		{Kind: langdef.KwFin, Lexeme: "fin", Line: 5, Col: 1},
		{Kind: langdef.OpDot, Lexeme: ".", Line: 5, Col: 4},
		{Kind: langdef.TokEOF, Lexeme: "", Line: 6, Col: 1},
	}

	prog, err := NewBuilder(tokens).Build()
	require.NoError(t, err)

	assert.Equal(t, "demo", prog.Name)
	require.Len(t, prog.Defs.Machines, 1)
	assert.Equal(t, "m1", prog.Defs.Machines[0])

	require.Len(t, prog.Body, 1)
	place, ok := prog.Body[0].(*ast.PlaceStmt)
	require.True(t, ok)
	assert.Equal(t, "m1", place.Name)
	assert.Equal(t, 1, place.X.(*ast.NumberLit).Value)
	assert.Equal(t, 2, place.Y.(*ast.NumberLit).Value)
}

func TestParseHubListWithTapMarker(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: langdef.TokIdentifier, Lexeme: "h1"},
		{Kind: langdef.OpEquals, Lexeme: "="},
		{Kind: langdef.TokNumber, Lexeme: "2"},
		{Kind: langdef.OpDot, Lexeme: "."},
		{Kind: langdef.TokNumber, Lexeme: "5"},
		{Kind: langdef.TokEOF, Lexeme: ""},
	}

	b := NewBuilder(tokens)
	decls := b.parseHubList()

	require.Len(t, decls, 1)
	assert.Equal(t, "h1", decls[0].Name)
	assert.Equal(t, 2, decls[0].Ports)
	assert.True(t, decls[0].HasTap)
	assert.Equal(t, 5, decls[0].TapPosition)
}

func TestParseHubListWithoutTapMarker(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: langdef.TokIdentifier, Lexeme: "h1"},
		{Kind: langdef.OpEquals, Lexeme: "="},
		{Kind: langdef.TokNumber, Lexeme: "4"},
		{Kind: langdef.OpComma, Lexeme: ","},
		{Kind: langdef.TokIdentifier, Lexeme: "h2"},
		{Kind: langdef.OpEquals, Lexeme: "="},
		{Kind: langdef.TokNumber, Lexeme: "8"},
		{Kind: langdef.TokEOF, Lexeme: ""},
	}

	b := NewBuilder(tokens)
	decls := b.parseHubList()

	require.Len(t, decls, 2)
	assert.False(t, decls[0].HasTap)
	assert.Equal(t, "h2", decls[1].Name)
	assert.Equal(t, 8, decls[1].Ports)
}

func TestParseStmtAssignaPuertoArgumentOrderIsHubThenMachine(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: langdef.KwAsignaPuerto, Lexeme: "asignaPuerto"},
		{Kind: langdef.OpLParen, Lexeme: "("},
		{Kind: langdef.TokIdentifier, Lexeme: "h1"},
		{Kind: langdef.OpComma, Lexeme: ","},
		{Kind: langdef.TokIdentifier, Lexeme: "m1"},
		{Kind: langdef.OpRParen, Lexeme: ")"},
		{Kind: langdef.OpSemicolon, Lexeme: ";"},
		{Kind: langdef.TokEOF, Lexeme: ""},
	}

	stmt := NewBuilder(tokens).parseStmt()
	assign, ok := stmt.(*ast.AssignPortStmt)
	require.True(t, ok)
	assert.Equal(t, "h1", assign.Hub)
	assert.Equal(t, "m1", assign.Machine)
}

func TestParseStmtAsignaMaquinaCoaxialArgumentOrderIsCoaxThenMachine(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: langdef.KwAsignaMaquinaCoaxial, Lexeme: "asignaMaquinaCoaxial"},
		{Kind: langdef.OpLParen, Lexeme: "("},
		{Kind: langdef.TokIdentifier, Lexeme: "c1"},
		{Kind: langdef.OpComma, Lexeme: ","},
		{Kind: langdef.TokIdentifier, Lexeme: "m1"},
		{Kind: langdef.OpRParen, Lexeme: ")"},
		{Kind: langdef.OpSemicolon, Lexeme: ";"},
		{Kind: langdef.TokEOF, Lexeme: ""},
	}

	stmt := NewBuilder(tokens).parseStmt()
	assign, ok := stmt.(*ast.AssignCoaxStmt)
	require.True(t, ok)
	assert.Equal(t, "c1", assign.Coax)
	assert.Equal(t, "m1", assign.Machine)
}

func TestParseStmtColocaCoaxialCapturesDirection(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: langdef.KwColocaCoaxial, Lexeme: "colocaCoaxial"},
		{Kind: langdef.OpLParen, Lexeme: "("},
		{Kind: langdef.TokIdentifier, Lexeme: "c1"},
		{Kind: langdef.OpComma, Lexeme: ","},
		{Kind: langdef.TokNumber, Lexeme: "1"},
		{Kind: langdef.OpComma, Lexeme: ","},
		{Kind: langdef.TokNumber, Lexeme: "2"},
		{Kind: langdef.OpComma, Lexeme: ","},
		{Kind: langdef.KwArriba, Lexeme: "arriba"},
		{Kind: langdef.OpRParen, Lexeme: ")"},
		{Kind: langdef.OpSemicolon, Lexeme: ";"},
		{Kind: langdef.TokEOF, Lexeme: ""},
	}

	stmt := NewBuilder(tokens).parseStmt()
	place, ok := stmt.(*ast.PlaceCoaxStmt)
	require.True(t, ok)
	assert.Equal(t, "c1", place.Coax)
	assert.Equal(t, "arriba", place.Dir)
}

func TestParseStmtModuleCallIsBareIdentifier(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: langdef.TokIdentifier, Lexeme: "miModulo"},
		{Kind: langdef.OpSemicolon, Lexeme: ";"},
		{Kind: langdef.TokEOF, Lexeme: ""},
	}

	stmt := NewBuilder(tokens).parseStmt()
	call, ok := stmt.(*ast.ModuleCallStmt)
	require.True(t, ok)
	assert.Equal(t, "miModulo", call.Name)
}

func TestParseExprPrecedenceFieldAccessOverRelational(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: langdef.TokIdentifier, Lexeme: "m1"},
		{Kind: langdef.OpDot, Lexeme: "."},
		{Kind: langdef.TokIdentifier, Lexeme: "presente"},
		{Kind: langdef.OpEquals, Lexeme: "="},
		{Kind: langdef.TokNumber, Lexeme: "1"},
		{Kind: langdef.TokEOF, Lexeme: ""},
	}

	expr := NewBuilder(tokens).parseExpr()
	rel, ok := expr.(*ast.RelExpr)
	require.True(t, ok)
	assert.Equal(t, ast.RelEq, rel.Op)

	fa, ok := rel.Left.(*ast.FieldAccess)
	require.True(t, ok)
	assert.Equal(t, "presente", fa.Field)
}

func TestParseExprIndexAccessOnHubPortVector(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: langdef.TokIdentifier, Lexeme: "h1"},
		{Kind: langdef.OpDot, Lexeme: "."},
		{Kind: langdef.TokIdentifier, Lexeme: "p"},
		{Kind: langdef.OpLBracket, Lexeme: "["},
		{Kind: langdef.TokNumber, Lexeme: "3"},
		{Kind: langdef.OpRBracket, Lexeme: "]"},
		{Kind: langdef.TokEOF, Lexeme: ""},
	}

	expr := NewBuilder(tokens).parseExpr()
	idx, ok := expr.(*ast.IndexAccess)
	require.True(t, ok)
	fa, ok := idx.Target.(*ast.FieldAccess)
	require.True(t, ok)
	assert.Equal(t, "p", fa.Field)
	assert.Equal(t, 3, idx.Index.(*ast.NumberLit).Value)
}

// TestBuildFullProgramMatchesExpectedTreeExactly builds a program with a
// module definition, a conditional, and a module call, then diffs the
// whole resulting tree against a hand-built expectation. cmp.Diff gives a
// path-qualified diff on mismatch where assert.Equal would just dump both
// trees, which matters once nesting goes a few levels deep.
func TestBuildFullProgramMatchesExpectedTreeExactly(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: langdef.KwPrograma, Lexeme: "programa"},
		{Kind: langdef.TokIdentifier, Lexeme: "net"},
		{Kind: langdef.OpSemicolon, Lexeme: ";"},

		{Kind: langdef.KwDefine, Lexeme: "define"},
		{Kind: langdef.KwMaquinas, Lexeme: "maquinas"},
		{Kind: langdef.TokIdentifier, Lexeme: "m1"},
		{Kind: langdef.OpSemicolon, Lexeme: ";"},

		{Kind: langdef.KwModulo, Lexeme: "modulo"},
		{Kind: langdef.TokIdentifier, Lexeme: "setup"},
		{Kind: langdef.OpSemicolon, Lexeme: ";"},
		{Kind: langdef.KwInicio, Lexeme: "inicio"},
		{Kind: langdef.KwColoca, Lexeme: "coloca"},
		{Kind: langdef.OpLParen, Lexeme: "("},
		{Kind: langdef.TokIdentifier, Lexeme: "m1"},
		{Kind: langdef.OpComma, Lexeme: ","},
		{Kind: langdef.TokNumber, Lexeme: "1"},
		{Kind: langdef.OpComma, Lexeme: ","},
		{Kind: langdef.TokNumber, Lexeme: "2"},
		{Kind: langdef.OpRParen, Lexeme: ")"},
		{Kind: langdef.OpSemicolon, Lexeme: ";"},
		{Kind: langdef.KwFin, Lexeme: "fin"},

		{Kind: langdef.KwInicio, Lexeme: "inicio"},
		{Kind: langdef.KwSi, Lexeme: "si"},
		{Kind: langdef.OpLParen, Lexeme: "("},
		{Kind: langdef.TokIdentifier, Lexeme: "m1"},
		{Kind: langdef.OpDot, Lexeme: "."},
		{Kind: langdef.TokIdentifier, Lexeme: "presente"},
		{Kind: langdef.OpEquals, Lexeme: "="},
		{Kind: langdef.TokNumber, Lexeme: "1"},
		{Kind: langdef.OpRParen, Lexeme: ")"},
		{Kind: langdef.KwInicio, Lexeme: "inicio"},
		{Kind: langdef.TokIdentifier, Lexeme: "setup"},
		{Kind: langdef.OpSemicolon, Lexeme: ";"},
		{Kind: langdef.KwFin, Lexeme: "fin"},
		{Kind: langdef.KwFin, Lexeme: "fin"},
		{Kind: langdef.OpDot, Lexeme: "."},
		{Kind: langdef.TokEOF, Lexeme: ""},
	}

	got, err := NewBuilder(tokens).Build()
	require.NoError(t, err)

	want := &ast.Program{
		Name: "net",
		Defs: &ast.Defs{Machines: []string{"m1"}},
		Modules: []*ast.ModuleDef{
			{
				Name: "setup",
				Body: []ast.Statement{
					&ast.PlaceStmt{
						Name: "m1",
						X:    &ast.NumberLit{Value: 1},
						Y:    &ast.NumberLit{Value: 2},
					},
				},
			},
		},
		Body: []ast.Statement{
			&ast.IfStmt{
				Cond: &ast.RelExpr{
					Op:    ast.RelEq,
					Left:  &ast.FieldAccess{Target: &ast.Ident{Name: "m1"}, Field: "presente"},
					Right: &ast.NumberLit{Value: 1},
				},
				Then: []ast.Statement{
					&ast.ModuleCallStmt{Name: "setup"},
				},
			},
		},
	}

	ignorePositions := cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".Position"
	}, cmp.Ignore())

	if diff := cmp.Diff(want, got, ignorePositions); diff != "" {
		t.Errorf("parsed program mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMissingPeriodTerminatorFails(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: langdef.KwPrograma, Lexeme: "programa"},
		{Kind: langdef.TokIdentifier, Lexeme: "demo"},
		{Kind: langdef.OpSemicolon, Lexeme: ";"},
		{Kind: langdef.KwInicio, Lexeme: "inicio"},
		{Kind: langdef.KwFin, Lexeme: "fin"},
		{Kind: langdef.TokEOF, Lexeme: ""},
	}

	_, err := NewBuilder(tokens).Build()
	require.Error(t, err)
}

func TestUnquoteResolvesEscapes(t *testing.T) {
	cases := []struct {
		lexeme string
		want   string
	}{
		{`""`, ``},
		{`"hola"`, `hola`},
		{`"linea uno\nlinea dos"`, "linea uno\nlinea dos"},
		{`"comilla: \""`, `comilla: "`},
		{`"barra: \\"`, `barra: \`},
		{`"\\n"`, `\n`},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, unquote(c.lexeme), "lexeme %q", c.lexeme)
	}
}

func TestParseStringLiteralWithEscapes(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: langdef.KwEscribe, Lexeme: "escribe", Line: 1, Col: 1},
		{Kind: langdef.OpLParen, Lexeme: "(", Line: 1, Col: 8},
		{Kind: langdef.TokString, Lexeme: `"hola \"mundo\"\ncon barra \\"`, Line: 1, Col: 9},
		{Kind: langdef.OpRParen, Lexeme: ")", Line: 1, Col: 39},
		{Kind: langdef.OpSemicolon, Lexeme: ";", Line: 1, Col: 40},
		{Kind: langdef.TokEOF, Lexeme: ""},
	}

	stmt := NewBuilder(tokens).parseStmt()

	write, ok := stmt.(*ast.WriteStmt)
	require.True(t, ok)
	lit, ok := write.Value.(*ast.StringLit)
	require.True(t, ok)
	assert.Equal(t, "hola \"mundo\"\ncon barra \\", lit.Value)
}
