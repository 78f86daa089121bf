// Package topology implements C8: the runtime entities a program built,
// and the lifecycle and capacity invariants that apply to them as
// statements execute.
package topology

import (
	"sort"
	"strconv"
)

// DeviceState is a device's position in its Declared -> Placed ->
// (optionally) Connected lifecycle. Placed is monotone: once placed, a
// device is never unplaced.
type DeviceState int

const (
	Declared DeviceState = iota
	Placed
	Connected
)

func (s DeviceState) String() string {
	switch s {
	case Declared:
		return "declared"
	case Placed:
		return "placed"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// ConnKind identifies which of the two mutually exclusive connection
// forms a machine holds.
type ConnKind int

const (
	ConnNone ConnKind = iota
	ConnPort
	ConnCoax
)

// Connection is the single connection a machine may hold: either a hub
// port or a coaxial tap, never both.
type Connection struct {
	Kind ConnKind
	Hub  string
	Port int // 1-based
	Coax string
	Pos  int
}

// Machine is a single declared endpoint device.
type Machine struct {
	Name       string
	State      DeviceState
	X, Y       int
	Connection *Connection
}

// Hub is a multi-port concentrator with a fixed port count, optionally
// exposing its own coaxial tap.
type Hub struct {
	Name           string
	State          DeviceState
	X, Y           int
	Ports          int
	Occupied       []bool // 1-based ports stored at index port-1
	HasTap         bool
	TapPosition    int
	AvailableCount int
}

// coaxTap is one machine's position on a coaxial segment.
type coaxTap struct {
	Machine  string
	Position int
}

// Coax is a coaxial segment of fixed integer length hosting machines at
// distinct integer positions in [0, Length].
type Coax struct {
	Name     string
	State    DeviceState
	X, Y     int
	Dir      string
	Length   int
	taps     []coaxTap // kept sorted by Position
	Completo bool
}

// Taps returns the segment's occupied positions in ascending order.
func (c *Coax) Taps() []coaxTap { return append([]coaxTap(nil), c.taps...) }

// Topology is the full runtime state a program builds as its statements
// execute.
type Topology struct {
	Machines map[string]*Machine
	Hubs     map[string]*Hub
	Coaxials map[string]*Coax

	Output []string
}

// New creates an empty topology. Entities are registered via
// Declare{Machine,Hub,Coax} before any placement or connection statement
// can reference them.
func New() *Topology {
	return &Topology{
		Machines: make(map[string]*Machine),
		Hubs:     make(map[string]*Hub),
		Coaxials: make(map[string]*Coax),
	}
}

// DeclareMachine registers a machine in the Declared state.
func (t *Topology) DeclareMachine(name string) {
	t.Machines[name] = &Machine{Name: name, State: Declared}
}

// DeclareHub registers a hub with ports free ports and, if hasTap, a
// coaxial tap at tapPosition.
func (t *Topology) DeclareHub(name string, ports int, hasTap bool, tapPosition int) {
	t.Hubs[name] = &Hub{
		Name:           name,
		State:          Declared,
		Ports:          ports,
		Occupied:       make([]bool, ports),
		HasTap:         hasTap,
		TapPosition:    tapPosition,
		AvailableCount: ports,
	}
}

// DeclareCoax registers a coaxial segment of the given length in the
// Declared state.
func (t *Topology) DeclareCoax(name string, length int) {
	t.Coaxials[name] = &Coax{Name: name, State: Declared, Length: length}
}

// PlaceMachine moves a machine from Declared to Placed at (x, y) (I3).
func (t *Topology) PlaceMachine(name string, x, y int) error {
	m, ok := t.Machines[name]
	if !ok {
		return newRuntimeError("machine %q is not declared", name)
	}
	if m.State != Declared {
		return newRuntimeError("machine %q is already placed, cannot be placed again", name)
	}
	m.State, m.X, m.Y = Placed, x, y
	return nil
}

// PlaceHub moves a hub from Declared to Placed at (x, y) (I3).
func (t *Topology) PlaceHub(name string, x, y int) error {
	h, ok := t.Hubs[name]
	if !ok {
		return newRuntimeError("hub %q is not declared", name)
	}
	if h.State != Declared {
		return newRuntimeError("hub %q is already placed, cannot be placed again", name)
	}
	h.State, h.X, h.Y = Placed, x, y
	return nil
}

// PlaceCoax moves a coaxial segment from Declared to Placed at (x, y)
// along the given direction (I3).
func (t *Topology) PlaceCoax(name string, x, y int, dir string) error {
	c, ok := t.Coaxials[name]
	if !ok {
		return newRuntimeError("coaxial segment %q is not declared", name)
	}
	if c.State != Declared {
		return newRuntimeError("coaxial segment %q is already placed, cannot be placed again", name)
	}
	c.State, c.X, c.Y, c.Dir = Placed, x, y, dir
	return nil
}

// ConnectHub wires a placed machine to an explicit 1-based port on a
// placed hub (I4).
func (t *Topology) ConnectHub(machineName, hubName string, port int) error {
	m, err := t.requireMachinePlaced(machineName)
	if err != nil {
		return err
	}
	hub, ok := t.Hubs[hubName]
	if !ok {
		return newRuntimeError("hub %q is not declared", hubName)
	}
	if hub.State == Declared {
		return newRuntimeError("hub %q must be placed before machines connect to it", hubName)
	}
	if port < 1 || port > hub.Ports {
		return newRuntimeError("hub %q has no port %d (valid range 1..%d)", hubName, port, hub.Ports)
	}
	if hub.Occupied[port-1] {
		return newRuntimeError("hub %q port %d is already occupied", hubName, port)
	}

	hub.Occupied[port-1] = true
	hub.AvailableCount--
	m.State = Connected
	m.Connection = &Connection{Kind: ConnPort, Hub: hubName, Port: port}
	return nil
}

// AssignHubPort connects a placed machine to the smallest free port on a
// hub (I4).
func (t *Topology) AssignHubPort(hubName, machineName string) error {
	hub, ok := t.Hubs[hubName]
	if !ok {
		return newRuntimeError("hub %q is not declared", hubName)
	}
	for i, occ := range hub.Occupied {
		if !occ {
			return t.ConnectHub(machineName, hubName, i+1)
		}
	}
	return newRuntimeError("hub %q is full", hubName)
}

// ConnectCoax taps a placed machine onto a placed coaxial segment at the
// given integer position (I5). Completo becomes true once every integer
// position in [0, Length] is occupied.
func (t *Topology) ConnectCoax(machineName, coaxName string, position int) error {
	m, err := t.requireMachinePlaced(machineName)
	if err != nil {
		return err
	}
	coax, ok := t.Coaxials[coaxName]
	if !ok {
		return newRuntimeError("coaxial segment %q is not declared", coaxName)
	}
	if coax.State == Declared {
		return newRuntimeError("coaxial segment %q must be placed before machines tap onto it", coaxName)
	}
	if position < 0 || position > coax.Length {
		return newRuntimeError("coaxial segment %q has no position %d (valid range 0..%d)", coaxName, position, coax.Length)
	}
	if coax.Completo {
		return newRuntimeError("coaxial segment %q is full", coaxName)
	}
	for _, tap := range coax.taps {
		if tap.Position == position {
			return newRuntimeError("coaxial segment %q position %d is already occupied by %q", coaxName, position, tap.Machine)
		}
	}

	coax.taps = append(coax.taps, coaxTap{Machine: machineName, Position: position})
	sort.Slice(coax.taps, func(i, j int) bool { return coax.taps[i].Position < coax.taps[j].Position })
	coax.Completo = len(coax.taps) > coax.Length

	m.State = Connected
	m.Connection = &Connection{Kind: ConnCoax, Coax: coaxName, Pos: position}
	return nil
}

// AssignCoax taps a placed machine onto a coaxial segment at the next
// free integer position starting from zero (I5).
func (t *Topology) AssignCoax(coaxName, machineName string) error {
	coax, ok := t.Coaxials[coaxName]
	if !ok {
		return newRuntimeError("coaxial segment %q is not declared", coaxName)
	}
	occupied := make(map[int]bool, len(coax.taps))
	for _, tap := range coax.taps {
		occupied[tap.Position] = true
	}
	for position := 0; position <= coax.Length; position++ {
		if !occupied[position] {
			return t.ConnectCoax(machineName, coaxName, position)
		}
	}
	return newRuntimeError("coaxial segment %q is full", coaxName)
}

func (t *Topology) requireMachinePlaced(machineName string) (*Machine, error) {
	m, ok := t.Machines[machineName]
	if !ok {
		return nil, newRuntimeError("machine %q is not declared", machineName)
	}
	if m.State == Declared {
		return nil, newRuntimeError("machine %q must be placed before it can be connected", machineName)
	}
	if m.State == Connected {
		return nil, newRuntimeError("machine %q is already connected", machineName)
	}
	return m, nil
}

// HubPortOccupied reports whether the 1-based port on a hub is taken,
// backing the h.p[i] field/index expression.
func (h *Hub) HubPortOccupied(port int) bool {
	if port < 1 || port > len(h.Occupied) {
		return false
	}
	return h.Occupied[port-1]
}

// Write appends a rendered write() result to the output log, in
// execution order.
func (t *Topology) Write(line string) {
	t.Output = append(t.Output, line)
}

// Snapshot renders a deterministic, human-readable description of the
// topology's current state, used by the --visualize flag.
func (t *Topology) Snapshot() []string {
	var lines []string

	names := make([]string, 0, len(t.Machines))
	for name := range t.Machines {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m := t.Machines[name]
		switch {
		case m.Connection != nil && m.Connection.Kind == ConnPort:
			lines = append(lines, name+": hub="+m.Connection.Hub+" port="+strconv.Itoa(m.Connection.Port))
		case m.Connection != nil && m.Connection.Kind == ConnCoax:
			lines = append(lines, name+": coax="+m.Connection.Coax+" pos="+strconv.Itoa(m.Connection.Pos))
		default:
			lines = append(lines, name+": "+m.State.String())
		}
	}

	hubNames := make([]string, 0, len(t.Hubs))
	for name := range t.Hubs {
		hubNames = append(hubNames, name)
	}
	sort.Strings(hubNames)
	for _, name := range hubNames {
		h := t.Hubs[name]
		lines = append(lines, name+": hub available="+strconv.Itoa(h.AvailableCount)+"/"+strconv.Itoa(h.Ports))
	}

	coaxNames := make([]string, 0, len(t.Coaxials))
	for name := range t.Coaxials {
		coaxNames = append(coaxNames, name)
	}
	sort.Strings(coaxNames)
	for _, name := range coaxNames {
		c := t.Coaxials[name]
		lines = append(lines, name+": coax length="+strconv.Itoa(c.Length)+" taps="+strconv.Itoa(len(c.taps)))
	}

	return lines
}
