// Package host declares the capabilities snapgraph requires from a live
// visual-programming host: type lookup, node instantiation, and access to
// a node's named input and output parameters.
//
// The core treats these as opaque collaborators and never implements them
// against a real canvas; the memhost subpackage provides a complete
// in-memory implementation for tests, the demo command, and round-trip
// verification.
//
// All host access is assumed to happen on a single logical thread, matching
// the UI-thread serialization every real host enforces. Nothing in this
// package locks.
package host

// NodeKind is the tagged variant distinguishing how a node is captured and
// reconstructed. It is computed once per node from its type descriptor and
// matched exhaustively, never re-derived by runtime type tests.
type NodeKind int

const (
	// KindGeneric nodes round-trip through the property descriptor table.
	KindGeneric NodeKind = iota
	// KindSlider nodes round-trip through a packed textual value.
	KindSlider
	// KindScript nodes carry source text and registrable parameters.
	KindScript
)

// Access is a parameter's item-access mode.
type Access int

const (
	AccessItem Access = iota
	AccessList
	AccessTree
)

// String returns the document vocabulary for the access mode.
func (a Access) String() string {
	switch a {
	case AccessList:
		return "list"
	case AccessTree:
		return "tree"
	default:
		return "item"
	}
}

// ParseAccess maps document vocabulary back to an access mode.
// The empty string means item access, the document default.
func ParseAccess(s string) (Access, bool) {
	switch s {
	case "", "item":
		return AccessItem, true
	case "list":
		return AccessList, true
	case "tree":
		return AccessTree, true
	}
	return AccessItem, false
}

// Mapping is a parameter's data-mapping mode.
type Mapping int

const (
	MappingNone Mapping = iota
	MappingFlatten
	MappingGraft
)

// String returns the document vocabulary for the mapping mode.
func (m Mapping) String() string {
	switch m {
	case MappingFlatten:
		return "flatten"
	case MappingGraft:
		return "graft"
	default:
		return "none"
	}
}

// ParseMapping maps document vocabulary back to a mapping mode.
// The empty string means no mapping, the document default.
func ParseMapping(s string) (Mapping, bool) {
	switch s {
	case "", "none":
		return MappingNone, true
	case "flatten":
		return MappingFlatten, true
	case "graft":
		return MappingGraft, true
	}
	return MappingNone, false
}

// Modifiers are the per-parameter modifier flags.
type Modifiers struct {
	Reverse  bool
	Simplify bool
	Locked   bool
	Invert   bool
}

// TypeDescriptor identifies an instantiable node type. GUID is the stable
// type key; Name is the human name used as fallback lookup.
type TypeDescriptor struct {
	GUID string
	Name string
	Kind NodeKind
}

// Endpoint names one parameter on one node instance.
type Endpoint struct {
	NodeID    string
	Parameter string
}

// Node is a live node instance. The host owns it; snapgraph only reads and
// writes through this surface.
type Node interface {
	// ID returns the host-assigned instance GUID. Callers can never choose
	// it; reconstruction records an old-to-new id remap instead.
	ID() string
	// Type returns the node's type descriptor.
	Type() TypeDescriptor
	// Name returns the display name.
	Name() string

	Pivot() (x, y float64, ok bool)
	SetPivot(x, y float64)
	Selected() bool
	SetSelected(bool)

	Inputs() []Parameter
	Outputs() []Parameter

	// PropertyValue reads a named property as its runtime value. Which
	// names exist is the node type's business; capture only asks for
	// names on its explicit allow-list.
	PropertyValue(name string) (any, bool)
	// SetPropertyValue writes a named property from its runtime value.
	SetPropertyValue(name string, v any) error

	// Warnings and Errors return the node's current runtime messages.
	Warnings() []string
	Errors() []string
}

// Parameter is one named input or output on a node.
type Parameter interface {
	Name() string
	Access() Access
	Mapping() Mapping
	Modifiers() Modifiers
	Required() bool
	Principal() bool

	// Converter names the parameter's configured value converter (e.g.
	// "Curve", "double"). It backs the pluggable fallback used when
	// signature-based hint extraction yields nothing.
	Converter() string

	// Recipients returns, for an output parameter, every input endpoint it
	// feeds. Connections are derived exclusively from this side so each
	// physical wire is captured exactly once. Empty for inputs.
	Recipients() []Endpoint
}

// ParameterConfig is the full description used to register a brand-new
// script parameter or update an existing one in place.
type ParameterConfig struct {
	Name      string
	TypeHint  string
	Access    Access
	Mapping   Mapping
	Modifiers Modifiers
	Required  bool
	Principal bool
}

// ScriptNode is a node whose behavior is embedded source text.
type ScriptNode interface {
	Node

	// Dialect returns the scripting dialect key ("csharp", "python").
	Dialect() string
	Source() string
	SetSource(string)

	// AddInput and AddOutput register a brand-new parameter.
	AddInput(ParameterConfig) error
	AddOutput(ParameterConfig) error

	// ConfigureInput and ConfigureOutput update an existing parameter's
	// access, mapping, and modifiers in place.
	ConfigureInput(name string, cfg ParameterConfig) error
	ConfigureOutput(name string, cfg ParameterConfig) error

	// RefreshVariables re-runs the node's own variable-parameter
	// bookkeeping after parameters change.
	RefreshVariables()
}

// SliderNode is a node whose current value only round-trips through a
// packed textual description carrying accuracy and limits; the raw numeric
// property alone loses precision semantics.
type SliderNode interface {
	Node

	// Packed returns "digits;min;max;value".
	Packed() string
	// SetFromPacked restores accuracy, limits, and value in one step.
	SetFromPacked(packed string) error
}

// TypeRegistry resolves type descriptors by stable key or by human name.
type TypeRegistry interface {
	ResolveGUID(guid string) (TypeDescriptor, bool)
	ResolveName(name string) (TypeDescriptor, bool)
}

// Canvas is the live graph surface reconstruction targets: resolve types,
// instantiate blank nodes, and attach wires.
type Canvas interface {
	Types() TypeRegistry

	// Instantiate creates a blank node of the given type with a fresh
	// host-assigned instance id.
	Instantiate(td TypeDescriptor) (Node, error)

	// Connect attaches the source output endpoint to the target input
	// endpoint. It fails when either node or named parameter is missing.
	Connect(from, to Endpoint) error

	// Nodes enumerates the live nodes in creation order.
	Nodes() []Node
}
