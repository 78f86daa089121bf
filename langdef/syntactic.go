package langdef

import "github.com/shadowCow/nettopo/grammar"

// Non-terminal symbol names, grouped the way the productions below read.
const (
	symProgram    grammar.Symbol = "Program"
	symDefClauses grammar.Symbol = "DefClauses"
	symDefClause  grammar.Symbol = "DefClause"
	symDefBody    grammar.Symbol = "DefBody"

	symIdentList grammar.Symbol = "IdentList"
	symIdentTail grammar.Symbol = "IdentTail"

	symHubList    grammar.Symbol = "HubList"
	symHubItem    grammar.Symbol = "HubItem"
	symHubTap     grammar.Symbol = "HubTap"
	symHubTail    grammar.Symbol = "HubTail"
	symCoaxList   grammar.Symbol = "CoaxList"
	symCoaxItem   grammar.Symbol = "CoaxItem"
	symCoaxTail   grammar.Symbol = "CoaxTail"

	symModuleDefList grammar.Symbol = "ModuleDefList"
	symModuleDef     grammar.Symbol = "ModuleDef"

	symStmtList   grammar.Symbol = "StmtList"
	symStmt       grammar.Symbol = "Stmt"
	symSide       grammar.Symbol = "Side"
	symElseClause grammar.Symbol = "ElseClause"

	symExpr      grammar.Symbol = "Expr"
	symOrExpr    grammar.Symbol = "OrExpr"
	symOrTail    grammar.Symbol = "OrTail"
	symAndExpr   grammar.Symbol = "AndExpr"
	symAndTail   grammar.Symbol = "AndTail"
	symNotExpr   grammar.Symbol = "NotExpr"
	symRelExpr   grammar.Symbol = "RelExpr"
	symRelTail   grammar.Symbol = "RelTail"
	symRelOp     grammar.Symbol = "RelOp"
	symUnary     grammar.Symbol = "Unary"
	symPostfix   grammar.Symbol = "Postfix"
	symAtom      grammar.Symbol = "Atom"
	symFieldName grammar.Symbol = "FieldName"
)

func term(t grammar.TokenType) grammar.ProductionRule { return grammar.Terminal{TokenType: t} }
func nt(s grammar.Symbol) grammar.ProductionRule      { return grammar.NonTerminal{Symbol: s} }
func seq(rules ...grammar.ProductionRule) grammar.ProductionRule {
	return grammar.SynSequence(rules)
}
func alt(rules ...grammar.ProductionRule) grammar.ProductionRule {
	return grammar.SynAlternative(rules)
}

// GetSyntacticGrammar returns the LL(1) grammar for the network-topology
// language, per the EBNF sketch: a program declares machines, hubs, and
// coaxial segments, optionally factors named modules, and then issues
// placement/wiring calls in a main block.
func GetSyntacticGrammar() grammar.SyntacticGrammar {
	productions := map[grammar.Symbol]grammar.ProductionRule{
		symProgram: seq(
			term(KwPrograma), term(TokIdentifier), term(OpSemicolon),
			nt(symDefClauses),
			nt(symModuleDefList),
			term(KwInicio), nt(symStmtList), term(KwFin),
			term(OpDot),
		),

		// Defs := DefM? DefH? DefC?, generalized to any number of 'define'
		// clauses in any order: each clause disambiguates on the keyword
		// immediately following 'define', keeping the grammar LL(1).
		symDefClauses: grammar.SynZeroOrMore{Inner: nt(symDefClause)},
		symDefClause:  seq(term(KwDefine), nt(symDefBody)),
		symDefBody: alt(
			seq(term(KwMaquinas), nt(symIdentList), term(OpSemicolon)),
			seq(term(KwConcentradores), nt(symHubList), term(OpSemicolon)),
			seq(term(KwCoaxial), nt(symCoaxList), term(OpSemicolon)),
		),

		symIdentList: seq(term(TokIdentifier), nt(symIdentTail)),
		symIdentTail: grammar.SynZeroOrMore{Inner: seq(term(OpComma), term(TokIdentifier))},

		// HubList := IDENT '=' Int ('.' Int)?  (',' …)*
		symHubList: seq(nt(symHubItem), nt(symHubTail)),
		symHubItem: seq(term(TokIdentifier), term(OpEquals), term(TokNumber), nt(symHubTap)),
		symHubTap:  grammar.SynOptional{Inner: seq(term(OpDot), term(TokNumber))},
		symHubTail: grammar.SynZeroOrMore{Inner: seq(term(OpComma), nt(symHubItem))},

		// CoaxList := IDENT '=' Int (',' …)*
		symCoaxList: seq(nt(symCoaxItem), nt(symCoaxTail)),
		symCoaxItem: seq(term(TokIdentifier), term(OpEquals), term(TokNumber)),
		symCoaxTail: grammar.SynZeroOrMore{Inner: seq(term(OpComma), nt(symCoaxItem))},

		symModuleDefList: grammar.SynZeroOrMore{Inner: nt(symModuleDef)},
		symModuleDef: seq(
			term(KwModulo), term(TokIdentifier), term(OpSemicolon),
			term(KwInicio), nt(symStmtList), term(KwFin),
		),

		symStmtList: grammar.SynZeroOrMore{Inner: nt(symStmt)},

		symStmt: alt(
			// coloca(id, x, y);
			seq(term(KwColoca), term(OpLParen), term(TokIdentifier), term(OpComma), nt(symExpr), term(OpComma), nt(symExpr), term(OpRParen), term(OpSemicolon)),
			// colocaCoaxial(c, x, y, dir);
			seq(term(KwColocaCoaxial), term(OpLParen), term(TokIdentifier), term(OpComma), nt(symExpr), term(OpComma), nt(symExpr), term(OpComma), nt(symSide), term(OpRParen), term(OpSemicolon)),
			// uneMaquinaPuerto(m, h, p);
			seq(term(KwUneMaquinaPuerto), term(OpLParen), term(TokIdentifier), term(OpComma), term(TokIdentifier), term(OpComma), nt(symExpr), term(OpRParen), term(OpSemicolon)),
			// asignaPuerto(h, m);
			seq(term(KwAsignaPuerto), term(OpLParen), term(TokIdentifier), term(OpComma), term(TokIdentifier), term(OpRParen), term(OpSemicolon)),
			// maquinaCoaxial(m, c, pos);
			seq(term(KwMaquinaCoaxial), term(OpLParen), term(TokIdentifier), term(OpComma), term(TokIdentifier), term(OpComma), nt(symExpr), term(OpRParen), term(OpSemicolon)),
			// asignaMaquinaCoaxial(c, m);
			seq(term(KwAsignaMaquinaCoaxial), term(OpLParen), term(TokIdentifier), term(OpComma), term(TokIdentifier), term(OpRParen), term(OpSemicolon)),
			// escribe(expr);
			seq(term(KwEscribe), term(OpLParen), nt(symExpr), term(OpRParen), term(OpSemicolon)),
			// si (expr) inicio ... fin [sino inicio ... fin]
			seq(term(KwSi), term(OpLParen), nt(symExpr), term(OpRParen), term(KwInicio), nt(symStmtList), term(KwFin), nt(symElseClause)),
			// module call: ident;
			seq(term(TokIdentifier), term(OpSemicolon)),
		),

		symSide: alt(term(KwArriba), term(KwAbajo), term(KwIzquierda), term(KwDerecha)),

		symElseClause: grammar.SynOptional{
			Inner: seq(term(KwSino), term(KwInicio), nt(symStmtList), term(KwFin)),
		},

		symExpr: nt(symOrExpr),

		symOrExpr: seq(nt(symAndExpr), nt(symOrTail)),
		symOrTail: grammar.SynZeroOrMore{Inner: seq(term(OpOr), nt(symAndExpr))},

		symAndExpr: seq(nt(symNotExpr), nt(symAndTail)),
		symAndTail: grammar.SynZeroOrMore{Inner: seq(term(OpAnd), nt(symNotExpr))},

		symNotExpr: alt(
			seq(term(OpNot), nt(symNotExpr)),
			nt(symRelExpr),
		),

		symRelExpr: seq(nt(symUnary), nt(symRelTail)),
		symRelTail: grammar.SynOptional{Inner: seq(nt(symRelOp), nt(symUnary))},
		symRelOp: alt(
			term(OpEquals), term(OpNeq), term(OpLt), term(OpLte), term(OpGt), term(OpGte),
		),

		symUnary: seq(nt(symAtom), nt(symPostfix)),
		symPostfix: grammar.SynZeroOrMore{Inner: alt(
			seq(term(OpDot), nt(symFieldName)),
			seq(term(OpLBracket), nt(symExpr), term(OpRBracket)),
		)},

		symAtom: alt(
			term(TokNumber),
			term(TokString),
			term(TokIdentifier),
			seq(term(OpLParen), nt(symExpr), term(OpRParen)),
		),

		symFieldName: alt(
			term(TokIdentifier),
			term(KwCoaxial), term(KwMaquinas), term(KwConcentradores),
			term(KwDerecha), term(KwIzquierda), term(KwArriba), term(KwAbajo),
			term(KwModulo),
		),
	}

	return grammar.SyntacticGrammar{
		Productions: productions,
		StartSymbol: symProgram,
	}
}
