// Package document defines the portable JSON representation of a
// node-based visual-programming graph.
//
// A Document is the shared contract between capture, validation, and
// reconstruction: the extractor produces one from a live graph, the
// validator checks one, and the reconstruction engine materializes one
// into a fresh live graph. Documents are value-like records with no
// back-references to any live object; ownership of live counterparts
// always stays with the host.
//
// The format is designed for round-trip fidelity: capture, persist,
// reconstruct, and re-capture produces identical components, connections,
// and properties. Instance ids and pivots are excepted: the host always
// assigns fresh ids, and layout is recomputed when absent.
package document

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Access modes for script-node parameters.
const (
	AccessItem = "item"
	AccessList = "list"
	AccessTree = "tree"
)

// Data-mapping modes for script-node parameters.
const (
	MappingNone    = "none"
	MappingFlatten = "flatten"
	MappingGraft   = "graft"
)

// =============================================================================
// Document - Top-Level Container
// =============================================================================

// Document is the canonical serialization format for a captured graph.
// It owns nothing beyond its two collections; order of components and
// connections carries no meaning beyond within-layer placement grouping.
type Document struct {
	Components  []Component  `json:"components" bson:"components"`
	Connections []Connection `json:"connections" bson:"connections"`
}

// Component returns the component with the given instance GUID, or nil.
func (d *Document) Component(instanceGUID string) *Component {
	for i := range d.Components {
		if d.Components[i].InstanceGUID == instanceGUID {
			return &d.Components[i]
		}
	}
	return nil
}

// =============================================================================
// Component - One Node Instance
// =============================================================================

// Component is one node instance. ComponentGUID is the stable type key;
// Name doubles as a fallback lookup when the key cannot be resolved.
// InstanceGUID is unique within one document but never survives
// reconstruction; the host assigns fresh ids.
type Component struct {
	Name          string                   `json:"name" bson:"name"`
	ComponentGUID string                   `json:"componentGuid" bson:"componentGuid"`
	InstanceGUID  string                   `json:"instanceGuid" bson:"instanceGuid"`
	Pivot         *Pivot                   `json:"pivot,omitempty" bson:"pivot,omitempty"`
	Selected      bool                     `json:"selected,omitempty" bson:"selected,omitempty"`
	Properties    map[string]PropertyValue `json:"properties,omitempty" bson:"properties,omitempty"`
	Inputs        []ParameterSettings      `json:"inputs,omitempty" bson:"inputs,omitempty"`
	Outputs       []ParameterSettings      `json:"outputs,omitempty" bson:"outputs,omitempty"`
	Warnings      []string                 `json:"warnings,omitempty" bson:"warnings,omitempty"`
	Errors        []string                 `json:"errors,omitempty" bson:"errors,omitempty"`
}

// Property returns the named property value and whether it exists.
func (c *Component) Property(name string) (PropertyValue, bool) {
	v, ok := c.Properties[name]
	return v, ok
}

// Pivot is a 2-D canvas position.
type Pivot struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// PropertyValue is one typed property. Value is usually a codec token
// (see pkg/codec); Type names the runtime type it decodes to.
// HumanReadable is a best-effort display string, attached only when it
// differs from the default rendering of the type.
type PropertyValue struct {
	Value         string `json:"value" bson:"value"`
	Type          string `json:"type" bson:"type"`
	HumanReadable string `json:"humanReadable,omitempty" bson:"humanReadable,omitempty"`
}

// =============================================================================
// ParameterSettings - Script Parameter Metadata
// =============================================================================

// ParameterSettings records everything needed to re-register one script
// input or output: names, type hint, access mode, flags, and modifiers.
// VariableName is omitted when identical to ParameterName to avoid
// redundant duplication.
type ParameterSettings struct {
	ParameterName string             `json:"parameterName" bson:"parameterName"`
	VariableName  string             `json:"variableName,omitempty" bson:"variableName,omitempty"`
	TypeHint      string             `json:"typeHint,omitempty" bson:"typeHint,omitempty"`
	Access        string             `json:"access,omitempty" bson:"access,omitempty"`
	Required      bool               `json:"required,omitempty" bson:"required,omitempty"`
	Principal     bool               `json:"principal,omitempty" bson:"principal,omitempty"`
	DataMapping   string             `json:"dataMapping,omitempty" bson:"dataMapping,omitempty"`
	Additional    AdditionalSettings `json:"additional,omitempty" bson:"additional,omitempty"`
}

// Variable returns the script variable name: the explicit VariableName
// when present, otherwise the parameter display name.
func (p ParameterSettings) Variable() string {
	if p.VariableName != "" {
		return p.VariableName
	}
	return p.ParameterName
}

// AdditionalSettings carries the per-parameter modifier flags.
type AdditionalSettings struct {
	Reverse  bool `json:"reverse,omitempty" bson:"reverse,omitempty"`
	Simplify bool `json:"simplify,omitempty" bson:"simplify,omitempty"`
	Locked   bool `json:"locked,omitempty" bson:"locked,omitempty"`
	Invert   bool `json:"invert,omitempty" bson:"invert,omitempty"`
}

// =============================================================================
// Connection - Directed Data-Flow Wire
// =============================================================================

// Connection is an ordered pair of endpoints: output From feeds input To.
// A connection is valid only when both endpoints resolve to components in
// the same document; dangling connections are dropped silently during
// reconstruction, never fatal.
type Connection struct {
	From Endpoint `json:"from" bson:"from"`
	To   Endpoint `json:"to" bson:"to"`
}

// Endpoint identifies one side of a connection by component instance and
// parameter name.
type Endpoint struct {
	InstanceID string `json:"instanceId" bson:"instanceId"`
	Name       string `json:"name" bson:"name"`
}
