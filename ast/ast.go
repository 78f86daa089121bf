// Package ast defines the Abstract Syntax Tree node types for the
// network-topology language: the output of the second, AST-building
// pass (C5) that runs once C4 has confirmed the token stream validates
// against the grammar.
package ast

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() Position
}

// Position locates a node in the source file that produced it.
type Position struct {
	Line int
	Col  int
}

func (p Position) Pos() Position { return p }

// Statement is a node that performs an action rather than producing a value.
type Statement interface {
	Node
	statementNode()
}

// Expr is a node that evaluates to a value.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of the tree: a name, a declarations block, zero or
// more module definitions, and the main statement block.
type Program struct {
	Position
	Name    string
	Defs    *Defs
	Modules []*ModuleDef
	Body    []Statement
}

// Defs lists the machines, hubs, and coaxial segments a program declares,
// before any statement references them.
type Defs struct {
	Position
	Machines []string
	Hubs     []HubDecl
	Coaxials []CoaxDecl
}

// HubDecl declares a hub with a fixed port count. A hub with a trailing
// ".Int" tap marker also exposes a coaxial tap at the given position.
type HubDecl struct {
	Position
	Name        string
	Ports       int
	HasTap      bool
	TapPosition int
}

// CoaxDecl declares a coaxial segment of a fixed integer length.
type CoaxDecl struct {
	Position
	Name   string
	Length int
}

// ModuleDef is a named, parameterless block of statements that can be
// invoked by name from the main body or from another module defined
// earlier (forward references are rejected by semantic analysis).
type ModuleDef struct {
	Position
	Name string
	Body []Statement
}

// PlaceStmt places a declared machine, hub, or coaxial segment at an
// integer (x, y) position.
type PlaceStmt struct {
	Position
	Name string
	X, Y Expr
}

func (*PlaceStmt) statementNode() {}

// PlaceCoaxStmt places a coaxial segment at an integer (x, y) position
// and records the direction it runs.
type PlaceCoaxStmt struct {
	Position
	Coax string
	X, Y Expr
	Dir  string
}

func (*PlaceCoaxStmt) statementNode() {}

// HubConnectStmt wires a machine to an explicit port number on a hub.
type HubConnectStmt struct {
	Position
	Machine string
	Hub     string
	Port    Expr
}

func (*HubConnectStmt) statementNode() {}

// AssignPortStmt assigns the next free port on a hub to a machine
// without specifying the port number explicitly.
type AssignPortStmt struct {
	Position
	Hub     string
	Machine string
}

func (*AssignPortStmt) statementNode() {}

// CoaxConnectStmt wires a machine onto a coaxial segment at an explicit
// integer tap position.
type CoaxConnectStmt struct {
	Position
	Machine string
	Coax    string
	TapPos  Expr
}

func (*CoaxConnectStmt) statementNode() {}

// AssignCoaxStmt wires a machine onto a coaxial segment at the next free
// tap position.
type AssignCoaxStmt struct {
	Position
	Coax    string
	Machine string
}

func (*AssignCoaxStmt) statementNode() {}

// WriteStmt prints the value of an expression, one line per call.
type WriteStmt struct {
	Position
	Value Expr
}

func (*WriteStmt) statementNode() {}

// IfStmt runs Then when Cond holds, else Else (which may be empty).
type IfStmt struct {
	Position
	Cond Expr
	Then []Statement
	Else []Statement
}

func (*IfStmt) statementNode() {}

// ModuleCallStmt invokes a previously-defined module by name.
type ModuleCallStmt struct {
	Position
	Name string
}

func (*ModuleCallStmt) statementNode() {}

// NumberLit is a signed 32-bit integer literal.
type NumberLit struct {
	Position
	Value int
}

func (*NumberLit) exprNode() {}

// StringLit is a quoted string literal.
type StringLit struct {
	Position
	Value string
}

func (*StringLit) exprNode() {}

// Ident references a declared machine, hub, or coaxial segment by name.
type Ident struct {
	Position
	Name string
}

func (*Ident) exprNode() {}

// FieldAccess reads a named attribute off an entity, e.g. maquina.presente.
type FieldAccess struct {
	Position
	Target Expr
	Field  string
}

func (*FieldAccess) exprNode() {}

// IndexAccess reads an indexed element, e.g. a hub's port vector (h.p[3]).
type IndexAccess struct {
	Position
	Target Expr
	Index  Expr
}

func (*IndexAccess) exprNode() {}

// RelOp is one of the relational comparison operators.
type RelOp string

const (
	RelEq  RelOp = "="
	RelNeq RelOp = "<>"
	RelLt  RelOp = "<"
	RelLte RelOp = "<="
	RelGt  RelOp = ">"
	RelGte RelOp = ">="
)

// RelExpr compares two expressions.
type RelExpr struct {
	Position
	Op          RelOp
	Left, Right Expr
}

func (*RelExpr) exprNode() {}

// LogicOp is one of the boolean connective operators.
type LogicOp string

const (
	LogicAnd LogicOp = "&&"
	LogicOr  LogicOp = "||"
)

// LogicExpr combines two boolean expressions.
type LogicExpr struct {
	Position
	Op          LogicOp
	Left, Right Expr
}

func (*LogicExpr) exprNode() {}

// NotExpr negates a boolean expression.
type NotExpr struct {
	Position
	Inner Expr
}

func (*NotExpr) exprNode() {}
