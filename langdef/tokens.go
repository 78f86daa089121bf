// Package langdef defines the concrete network-topology grammar: the
// lexical grammar C1/C2 compile, and the syntactic grammar C3/C4 build a
// parse table from. Everything else in the interpreter is generic over
// grammar.LexicalGrammar/SyntacticGrammar; this package is the one place
// that says what the language actually looks like.
package langdef

import "github.com/shadowCow/nettopo/grammar"

// Reserved keywords. All 21 are case-sensitive Spanish words naming the
// statement and section forms of the language.
const (
	KwPrograma             grammar.TokenType = "PROGRAMA"
	KwDefine               grammar.TokenType = "DEFINE"
	KwMaquinas             grammar.TokenType = "MAQUINAS"
	KwConcentradores       grammar.TokenType = "CONCENTRADORES"
	KwCoaxial              grammar.TokenType = "COAXIAL"
	KwModulo               grammar.TokenType = "MODULO"
	KwInicio               grammar.TokenType = "INICIO"
	KwFin                  grammar.TokenType = "FIN"
	KwSi                   grammar.TokenType = "SI"
	KwSino                 grammar.TokenType = "SINO"
	KwArriba               grammar.TokenType = "ARRIBA"
	KwAbajo                grammar.TokenType = "ABAJO"
	KwIzquierda            grammar.TokenType = "IZQUIERDA"
	KwDerecha              grammar.TokenType = "DERECHA"
	KwColoca               grammar.TokenType = "COLOCA"
	KwColocaCoaxial        grammar.TokenType = "COLOCA_COAXIAL"
	KwUneMaquinaPuerto     grammar.TokenType = "UNE_MAQUINA_PUERTO"
	KwAsignaPuerto         grammar.TokenType = "ASIGNA_PUERTO"
	KwMaquinaCoaxial       grammar.TokenType = "MAQUINA_COAXIAL"
	KwAsignaMaquinaCoaxial grammar.TokenType = "ASIGNA_MAQUINA_COAXIAL"
	KwEscribe              grammar.TokenType = "ESCRIBE"
)

// Operators and delimiters.
const (
	OpSemicolon grammar.TokenType = "SEMICOLON"
	OpComma     grammar.TokenType = "COMMA"
	OpEquals    grammar.TokenType = "EQUALS"
	OpLt        grammar.TokenType = "LT"
	OpGt        grammar.TokenType = "GT"
	OpLte       grammar.TokenType = "LTE"
	OpGte       grammar.TokenType = "GTE"
	OpNeq       grammar.TokenType = "NEQ"
	OpAnd       grammar.TokenType = "AND"
	OpOr        grammar.TokenType = "OR"
	OpNot       grammar.TokenType = "NOT"
	OpLParen    grammar.TokenType = "LPAREN"
	OpRParen    grammar.TokenType = "RPAREN"
	OpDot       grammar.TokenType = "DOT"
	OpLBracket  grammar.TokenType = "LBRACKET"
	OpRBracket  grammar.TokenType = "RBRACKET"
)

// Other token kinds.
const (
	TokIdentifier grammar.TokenType = "IDENTIFIER"
	TokNumber     grammar.TokenType = "NUMBER"
	TokString     grammar.TokenType = "STRING"
	TokWhitespace grammar.TokenType = "WHITESPACE"
	TokEOF        grammar.TokenType = "EOF"
)

// KeywordEntry pairs a literal keyword spelling with the token kind it
// lexes to.
type KeywordEntry struct {
	Word string
	Kind grammar.TokenType
}

var keywordEntries = []KeywordEntry{
	{"programa", KwPrograma},
	{"define", KwDefine},
	{"maquinas", KwMaquinas},
	{"concentradores", KwConcentradores},
	{"coaxial", KwCoaxial},
	{"modulo", KwModulo},
	{"inicio", KwInicio},
	{"fin", KwFin},
	{"si", KwSi},
	{"sino", KwSino},
	{"arriba", KwArriba},
	{"abajo", KwAbajo},
	{"izquierda", KwIzquierda},
	{"derecha", KwDerecha},
	{"coloca", KwColoca},
	{"colocaCoaxial", KwColocaCoaxial},
	{"uneMaquinaPuerto", KwUneMaquinaPuerto},
	{"asignaPuerto", KwAsignaPuerto},
	{"maquinaCoaxial", KwMaquinaCoaxial},
	{"asignaMaquinaCoaxial", KwAsignaMaquinaCoaxial},
	{"escribe", KwEscribe},
}
