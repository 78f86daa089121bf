package sema

import "github.com/shadowCow/nettopo/ast"

// Kind identifies which of the four disjoint namespaces a declared name
// belongs to (I1).
type Kind int

const (
	KindMachine Kind = iota
	KindHub
	KindCoax
	KindModule
)

func (k Kind) String() string {
	switch k {
	case KindMachine:
		return "machine"
	case KindHub:
		return "hub"
	case KindCoax:
		return "coaxial"
	case KindModule:
		return "module"
	default:
		return "unknown"
	}
}

// SymbolTable tracks every declared name across the four namespaces.
// Names are unique within a namespace, and a name declared in one
// namespace may not reappear in another.
type SymbolTable struct {
	owner map[string]Kind

	hubs     map[string]ast.HubDecl
	coaxials map[string]ast.CoaxDecl
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{
		owner:    make(map[string]Kind),
		hubs:     make(map[string]ast.HubDecl),
		coaxials: make(map[string]ast.CoaxDecl),
	}
}

// declare registers name under kind, rejecting a duplicate within the
// same namespace and a collision across namespaces.
func (s *SymbolTable) declare(name string, kind Kind, pos ast.Position) error {
	if existing, ok := s.owner[name]; ok {
		if existing == kind {
			return newSemanticError(pos, "duplicate %s declaration %q", kind, name)
		}
		return newSemanticError(pos, "%q is already declared as a %s, cannot also be a %s", name, existing, kind)
	}
	s.owner[name] = kind
	return nil
}

func (s *SymbolTable) declareHub(decl ast.HubDecl) error {
	if err := s.declare(decl.Name, KindHub, decl.Position); err != nil {
		return err
	}
	s.hubs[decl.Name] = decl
	return nil
}

func (s *SymbolTable) declareCoax(decl ast.CoaxDecl) error {
	if err := s.declare(decl.Name, KindCoax, decl.Position); err != nil {
		return err
	}
	s.coaxials[decl.Name] = decl
	return nil
}

// lookup reports the namespace a declared name belongs to, if any.
func (s *SymbolTable) lookup(name string) (Kind, bool) {
	kind, ok := s.owner[name]
	return kind, ok
}

// isKind reports whether name is declared and belongs to kind.
func (s *SymbolTable) isKind(name string, kind Kind) bool {
	actual, ok := s.lookup(name)
	return ok && actual == kind
}

// isDevice reports whether name is declared as a machine, hub, or
// coaxial segment (any of the three device namespaces).
func (s *SymbolTable) isDevice(name string) bool {
	kind, ok := s.lookup(name)
	return ok && (kind == KindMachine || kind == KindHub || kind == KindCoax)
}
