// Package interp implements C7: the interpreter that walks a program's
// AST and executes its statements against a topology.Topology,
// enforcing the domain invariants the topology package owns.
package interp

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shadowCow/nettopo/ast"
	"github.com/shadowCow/nettopo/topology"
)

// Interpreter executes a single program's statements, in source order,
// against one topology. Module dispatch is dynamically scoped: a
// module's body sees and mutates the same shared topology as its caller.
type Interpreter struct {
	output  io.Writer
	topo    *topology.Topology
	modules map[string]*ast.ModuleDef
}

// New creates an interpreter that writes write() output to output and
// mutates topo.
func New(output io.Writer, topo *topology.Topology) *Interpreter {
	return &Interpreter{output: output, topo: topo, modules: make(map[string]*ast.ModuleDef)}
}

// Run declares every device named in the program, registers its
// modules, then executes the main block in order.
func (in *Interpreter) Run(prog *ast.Program) error {
	in.declareDefs(prog.Defs)

	for _, mod := range prog.Modules {
		in.modules[mod.Name] = mod
	}

	return in.execStmts(prog.Body)
}

// FlushOutput writes the accumulated write() log to the interpreter's
// output writer, one line per entry. Callers should only flush after a
// successful Run: per the fail-fast failure semantics, no output is
// produced if execution aborts partway through.
func (in *Interpreter) FlushOutput() error {
	for _, line := range in.topo.Output {
		if _, err := fmt.Fprintln(in.output, line); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) declareDefs(defs *ast.Defs) {
	if defs == nil {
		return
	}
	for _, name := range defs.Machines {
		in.topo.DeclareMachine(name)
	}
	for _, hub := range defs.Hubs {
		in.topo.DeclareHub(hub.Name, hub.Ports, hub.HasTap, hub.TapPosition)
	}
	for _, coax := range defs.Coaxials {
		in.topo.DeclareCoax(coax.Name, coax.Length)
	}
}

func (in *Interpreter) execStmts(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := in.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execStmt(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.PlaceStmt:
		x, err := in.evalInt(s.X)
		if err != nil {
			return err
		}
		y, err := in.evalInt(s.Y)
		if err != nil {
			return err
		}
		return wrapErr(s.Position, in.placeDevice(s.Name, x, y))

	case *ast.PlaceCoaxStmt:
		x, err := in.evalInt(s.X)
		if err != nil {
			return err
		}
		y, err := in.evalInt(s.Y)
		if err != nil {
			return err
		}
		return wrapErr(s.Position, in.topo.PlaceCoax(s.Coax, x, y, s.Dir))

	case *ast.HubConnectStmt:
		port, err := in.evalInt(s.Port)
		if err != nil {
			return err
		}
		return wrapErr(s.Position, in.topo.ConnectHub(s.Machine, s.Hub, port))

	case *ast.AssignPortStmt:
		return wrapErr(s.Position, in.topo.AssignHubPort(s.Hub, s.Machine))

	case *ast.CoaxConnectStmt:
		pos, err := in.evalInt(s.TapPos)
		if err != nil {
			return err
		}
		return wrapErr(s.Position, in.topo.ConnectCoax(s.Machine, s.Coax, pos))

	case *ast.AssignCoaxStmt:
		return wrapErr(s.Position, in.topo.AssignCoax(s.Coax, s.Machine))

	case *ast.WriteStmt:
		value, err := in.evalExpr(s.Value)
		if err != nil {
			return err
		}
		in.topo.Write(renderValue(value))
		return nil

	case *ast.IfStmt:
		cond, err := in.evalBool(s.Cond)
		if err != nil {
			return err
		}
		if cond {
			return in.execStmts(s.Then)
		}
		return in.execStmts(s.Else)

	case *ast.ModuleCallStmt:
		mod, ok := in.modules[s.Name]
		if !ok {
			return wrapErr(s.Position, fmt.Errorf("module %q is not defined", s.Name))
		}
		return in.execStmts(mod.Body)

	default:
		return wrapErr(stmt.Pos(), fmt.Errorf("internal: unhandled statement type %T", stmt))
	}
}

// placeDevice places whichever kind of device name was declared as:
// coloca() is generic over machines, hubs, and coaxial segments. A
// coaxial segment placed this way gets no direction; colocaCoaxial is
// the dedicated form that supplies one.
func (in *Interpreter) placeDevice(name string, x, y int) error {
	if _, ok := in.topo.Machines[name]; ok {
		return in.topo.PlaceMachine(name, x, y)
	}
	if _, ok := in.topo.Hubs[name]; ok {
		return in.topo.PlaceHub(name, x, y)
	}
	if _, ok := in.topo.Coaxials[name]; ok {
		return in.topo.PlaceCoax(name, x, y, "")
	}
	return fmt.Errorf("%q is not declared as a machine, hub, or coaxial segment", name)
}

func (in *Interpreter) evalInt(expr ast.Expr) (int, error) {
	v, err := in.evalExpr(expr)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, wrapErr(expr.Pos(), fmt.Errorf("internal: expected Int, got %T", v))
	}
	return n, nil
}

func (in *Interpreter) evalBool(expr ast.Expr) (bool, error) {
	v, err := in.evalExpr(expr)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, wrapErr(expr.Pos(), fmt.Errorf("internal: expected Bool, got %T", v))
	}
	return b, nil
}

// evalExpr evaluates an expression to its runtime value: an int,
// string, or bool. Semantic analysis has already confirmed the
// expression is well-typed, so no type errors are expected here.
func (in *Interpreter) evalExpr(expr ast.Expr) (interface{}, error) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return e.Value, nil

	case *ast.StringLit:
		return e.Value, nil

	case *ast.FieldAccess:
		return in.evalFieldAccess(e)

	case *ast.IndexAccess:
		return in.evalIndexAccess(e)

	case *ast.RelExpr:
		return in.evalRelExpr(e)

	case *ast.LogicExpr:
		return in.evalLogicExpr(e)

	case *ast.NotExpr:
		inner, err := in.evalBool(e.Inner)
		if err != nil {
			return nil, err
		}
		return !inner, nil

	default:
		return nil, wrapErr(expr.Pos(), fmt.Errorf("internal: unhandled expression type %T", expr))
	}
}

func (in *Interpreter) evalFieldAccess(fa *ast.FieldAccess) (interface{}, error) {
	id, ok := fa.Target.(*ast.Ident)
	if !ok {
		return nil, wrapErr(fa.Position, fmt.Errorf("internal: field access target is not an identifier"))
	}

	if m, ok := in.topo.Machines[id.Name]; ok {
		if fa.Field == "presente" {
			return boolToInt(m.State != topology.Declared), nil
		}
	}
	if h, ok := in.topo.Hubs[id.Name]; ok {
		switch fa.Field {
		case "presente":
			return boolToInt(h.State != topology.Declared), nil
		case "coaxial":
			return boolToInt(h.HasTap), nil
		}
	}
	if c, ok := in.topo.Coaxials[id.Name]; ok {
		switch fa.Field {
		case "presente":
			return boolToInt(c.State != topology.Declared), nil
		case "completo":
			return boolToInt(c.Completo), nil
		case "longitud":
			return c.Length, nil
		}
	}

	return nil, wrapErr(fa.Position, fmt.Errorf("internal: no runtime field %q on %q", fa.Field, id.Name))
}

func (in *Interpreter) evalIndexAccess(ia *ast.IndexAccess) (interface{}, error) {
	fa, ok := ia.Target.(*ast.FieldAccess)
	if !ok {
		return nil, wrapErr(ia.Position, fmt.Errorf("internal: index target is not a field access"))
	}
	id, ok := fa.Target.(*ast.Ident)
	if !ok {
		return nil, wrapErr(ia.Position, fmt.Errorf("internal: index target field is not on an identifier"))
	}
	hub, ok := in.topo.Hubs[id.Name]
	if !ok {
		return nil, wrapErr(ia.Position, fmt.Errorf("internal: %q is not a hub", id.Name))
	}
	idx, err := in.evalInt(ia.Index)
	if err != nil {
		return nil, err
	}
	return boolToInt(hub.HubPortOccupied(idx)), nil
}

func (in *Interpreter) evalRelExpr(re *ast.RelExpr) (interface{}, error) {
	left, err := in.evalExpr(re.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpr(re.Right)
	if err != nil {
		return nil, err
	}

	switch l := left.(type) {
	case int:
		r := right.(int)
		return compareInt(re.Op, l, r), nil
	case string:
		r := right.(string)
		return compareString(re.Op, l, r), nil
	default:
		return nil, wrapErr(re.Position, fmt.Errorf("internal: unsupported relational operand type %T", left))
	}
}

func compareInt(op ast.RelOp, l, r int) bool {
	switch op {
	case ast.RelEq:
		return l == r
	case ast.RelNeq:
		return l != r
	case ast.RelLt:
		return l < r
	case ast.RelLte:
		return l <= r
	case ast.RelGt:
		return l > r
	case ast.RelGte:
		return l >= r
	default:
		return false
	}
}

func compareString(op ast.RelOp, l, r string) bool {
	switch op {
	case ast.RelEq:
		return l == r
	case ast.RelNeq:
		return l != r
	case ast.RelLt:
		return l < r
	case ast.RelLte:
		return l <= r
	case ast.RelGt:
		return l > r
	case ast.RelGte:
		return l >= r
	default:
		return false
	}
}

// evalLogicExpr evaluates && and || with short-circuit semantics.
func (in *Interpreter) evalLogicExpr(le *ast.LogicExpr) (interface{}, error) {
	left, err := in.evalBool(le.Left)
	if err != nil {
		return nil, err
	}

	if le.Op == ast.LogicAnd && !left {
		return false, nil
	}
	if le.Op == ast.LogicOr && left {
		return true, nil
	}

	return in.evalBool(le.Right)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func renderValue(v interface{}) string {
	switch val := v.(type) {
	case int:
		return strconv.Itoa(val)
	case string:
		return val
	case bool:
		return strconv.Itoa(boolToInt(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}
