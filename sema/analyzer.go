// Package sema implements C6: a single pass over the AST that resolves
// every name to its declaring namespace and type-checks every
// expression, failing fast on the first violation.
package sema

import "github.com/shadowCow/nettopo/ast"

// Analyzer walks a *ast.Program, building and consulting a SymbolTable.
type Analyzer struct {
	symbols *SymbolTable
	defined map[string]bool // module names whose bodies have already analyzed clean (I7)
}

// NewAnalyzer creates an analyzer ready to run over a single program.
func NewAnalyzer() *Analyzer {
	return &Analyzer{symbols: newSymbolTable(), defined: make(map[string]bool)}
}

// Analyze runs the full semantic pass, returning the first
// *SemanticError encountered, or nil if the program is well-formed.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	if err := a.declareDefs(prog.Defs); err != nil {
		return err
	}

	for _, mod := range prog.Modules {
		if err := a.symbols.declare(mod.Name, KindModule, mod.Position); err != nil {
			return err
		}
		if err := a.analyzeStmts(mod.Body); err != nil {
			return err
		}
		a.defined[mod.Name] = true
	}

	return a.analyzeStmts(prog.Body)
}

func (a *Analyzer) declareDefs(defs *ast.Defs) error {
	if defs == nil {
		return nil
	}
	for _, name := range defs.Machines {
		if err := a.symbols.declare(name, KindMachine, defs.Position); err != nil {
			return err
		}
	}
	for _, hub := range defs.Hubs {
		if err := a.symbols.declareHub(hub); err != nil {
			return err
		}
	}
	for _, coax := range defs.Coaxials {
		if err := a.symbols.declareCoax(coax); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStmts(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := a.analyzeStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStmt(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.PlaceStmt:
		if !a.symbols.isDevice(s.Name) {
			return a.undeclaredDevice(s.Name, s.Position)
		}
		if _, err := a.checkInt(s.X); err != nil {
			return err
		}
		if _, err := a.checkInt(s.Y); err != nil {
			return err
		}
		return nil

	case *ast.PlaceCoaxStmt:
		if !a.symbols.isKind(s.Coax, KindCoax) {
			return newSemanticError(s.Position, "%q is not declared as a coaxial segment", s.Coax)
		}
		if _, err := a.checkInt(s.X); err != nil {
			return err
		}
		if _, err := a.checkInt(s.Y); err != nil {
			return err
		}
		return nil

	case *ast.HubConnectStmt:
		if !a.symbols.isKind(s.Machine, KindMachine) {
			return newSemanticError(s.Position, "%q is not declared as a machine", s.Machine)
		}
		if !a.symbols.isKind(s.Hub, KindHub) {
			return newSemanticError(s.Position, "%q is not declared as a hub", s.Hub)
		}
		_, err := a.checkInt(s.Port)
		return err

	case *ast.AssignPortStmt:
		if !a.symbols.isKind(s.Hub, KindHub) {
			return newSemanticError(s.Position, "%q is not declared as a hub", s.Hub)
		}
		if !a.symbols.isKind(s.Machine, KindMachine) {
			return newSemanticError(s.Position, "%q is not declared as a machine", s.Machine)
		}
		return nil

	case *ast.CoaxConnectStmt:
		if !a.symbols.isKind(s.Machine, KindMachine) {
			return newSemanticError(s.Position, "%q is not declared as a machine", s.Machine)
		}
		if !a.symbols.isKind(s.Coax, KindCoax) {
			return newSemanticError(s.Position, "%q is not declared as a coaxial segment", s.Coax)
		}
		_, err := a.checkInt(s.TapPos)
		return err

	case *ast.AssignCoaxStmt:
		if !a.symbols.isKind(s.Coax, KindCoax) {
			return newSemanticError(s.Position, "%q is not declared as a coaxial segment", s.Coax)
		}
		if !a.symbols.isKind(s.Machine, KindMachine) {
			return newSemanticError(s.Position, "%q is not declared as a machine", s.Machine)
		}
		return nil

	case *ast.WriteStmt:
		_, err := a.analyzeExpr(s.Value)
		return err

	case *ast.IfStmt:
		t, err := a.analyzeExpr(s.Cond)
		if err != nil {
			return err
		}
		if t != TypeBool {
			return newSemanticError(s.Position, "if condition must be a relational or logical expression, got %s", t)
		}
		if err := a.analyzeStmts(s.Then); err != nil {
			return err
		}
		return a.analyzeStmts(s.Else)

	case *ast.ModuleCallStmt:
		if !a.defined[s.Name] {
			if a.symbols.isKind(s.Name, KindModule) {
				return newSemanticError(s.Position, "module %q called before its definition completes", s.Name)
			}
			return newSemanticError(s.Position, "%q is not a declared module", s.Name)
		}
		return nil

	default:
		return newSemanticError(stmt.Pos(), "internal: unhandled statement type %T", stmt)
	}
}

func (a *Analyzer) checkInt(expr ast.Expr) (ExprType, error) {
	t, err := a.analyzeExpr(expr)
	if err != nil {
		return t, err
	}
	if t != TypeInt {
		return t, newSemanticError(expr.Pos(), "expected an Int expression, got %s", t)
	}
	return t, nil
}

func (a *Analyzer) analyzeExpr(expr ast.Expr) (ExprType, error) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return TypeInt, nil

	case *ast.StringLit:
		return TypeString, nil

	case *ast.Ident:
		return 0, newSemanticError(e.Position, "%q cannot be used as a value directly; access a field such as .presente", e.Name)

	case *ast.FieldAccess:
		return a.analyzeFieldAccess(e)

	case *ast.IndexAccess:
		return a.analyzeIndexAccess(e)

	case *ast.RelExpr:
		lt, err := a.analyzeExpr(e.Left)
		if err != nil {
			return 0, err
		}
		rt, err := a.analyzeExpr(e.Right)
		if err != nil {
			return 0, err
		}
		if lt != rt {
			return 0, newSemanticError(e.Position, "cannot compare %s with %s", lt, rt)
		}
		return TypeBool, nil

	case *ast.LogicExpr:
		if err := a.requireBool(e.Left); err != nil {
			return 0, err
		}
		if err := a.requireBool(e.Right); err != nil {
			return 0, err
		}
		return TypeBool, nil

	case *ast.NotExpr:
		if err := a.requireBool(e.Inner); err != nil {
			return 0, err
		}
		return TypeBool, nil

	default:
		return 0, newSemanticError(expr.Pos(), "internal: unhandled expression type %T", expr)
	}
}

func (a *Analyzer) requireBool(expr ast.Expr) error {
	t, err := a.analyzeExpr(expr)
	if err != nil {
		return err
	}
	if t != TypeBool {
		return newSemanticError(expr.Pos(), "expected a Bool expression, got %s", t)
	}
	return nil
}

// resolveObject requires expr to be a bare identifier naming a declared
// device, and returns which kind of device it is.
func (a *Analyzer) resolveObject(expr ast.Expr) (Kind, string, error) {
	id, ok := expr.(*ast.Ident)
	if !ok {
		return 0, "", newSemanticError(expr.Pos(), "field and index access require a declared device name")
	}
	kind, ok := a.symbols.lookup(id.Name)
	if !ok {
		return 0, "", newSemanticError(id.Position, "undeclared name %q", id.Name)
	}
	if kind == KindModule {
		return 0, "", newSemanticError(id.Position, "%q is a module, not a device", id.Name)
	}
	return kind, id.Name, nil
}

func (a *Analyzer) analyzeFieldAccess(fa *ast.FieldAccess) (ExprType, error) {
	kind, name, err := a.resolveObject(fa.Target)
	if err != nil {
		return 0, err
	}

	switch kind {
	case KindMachine:
		if fa.Field == "presente" {
			return TypeInt, nil
		}
	case KindHub:
		switch fa.Field {
		case "presente", "coaxial":
			return TypeInt, nil
		case "p":
			return 0, newSemanticError(fa.Position, "hub.p requires an index, e.g. %s.p[i]", name)
		}
	case KindCoax:
		switch fa.Field {
		case "presente", "completo", "longitud":
			return TypeInt, nil
		}
	}

	return 0, newSemanticError(fa.Position, "%q has no field %q for a %s", name, fa.Field, kind)
}

func (a *Analyzer) analyzeIndexAccess(ia *ast.IndexAccess) (ExprType, error) {
	fa, ok := ia.Target.(*ast.FieldAccess)
	if !ok || fa.Field != "p" {
		return 0, newSemanticError(ia.Position, "index access is only valid on a hub's port vector, e.g. h.p[i]")
	}
	kind, name, err := a.resolveObject(fa.Target)
	if err != nil {
		return 0, err
	}
	if kind != KindHub {
		return 0, newSemanticError(ia.Position, "%q is not a hub, has no port vector", name)
	}
	if _, err := a.checkInt(ia.Index); err != nil {
		return 0, err
	}
	return TypeInt, nil
}

func (a *Analyzer) undeclaredDevice(name string, pos ast.Position) error {
	return newSemanticError(pos, "%q is not declared as a machine, hub, or coaxial segment", name)
}
