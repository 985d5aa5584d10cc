// Package memhost is a complete in-memory implementation of the host
// surface. It backs the unit tests, the demo command, and round-trip
// verification, so the core never needs a live canvas to be exercised
// end to end.
//
// Instance ids are minted with google/uuid at instantiation time and can
// never be chosen by the caller, matching real host behavior.
package memhost

import (
	"strings"

	"github.com/google/uuid"

	"github.com/snapgraph/snapgraph/pkg/errors"
	"github.com/snapgraph/snapgraph/pkg/geom"
	"github.com/snapgraph/snapgraph/pkg/host"
)

// Builtin type GUIDs. Stable across runs so captured documents can be
// restored into a fresh host.
const (
	GUIDSlider         = "57da07bd-ecab-415d-9d86-af36d7073abc"
	GUIDAddition       = "a0d62394-a118-422d-abb3-6af115c75b25"
	GUIDPanel          = "59e0b89a-e487-49f8-bab8-b5bab16be14c"
	GUIDConstructPoint = "3581f42a-9592-4549-bd6b-1c0fc39d067b"
	GUIDPointParam     = "fbac3e32-f100-4292-8692-77240a42fd1a"
	GUIDColourSwatch   = "9c53bac0-ba66-40bd-8154-ce9829b9db1a"
	GUIDCSharpScript   = "a9a8ebd2-fff5-4c44-a8f5-739736d129ba"
	GUIDPythonScript   = "410755b1-224a-4c1e-a407-bf32fb45ea7e"
)

type paramTemplate struct {
	name      string
	converter string
	access    host.Access
	required  bool
	principal bool
}

type typeTemplate struct {
	desc    host.TypeDescriptor
	inputs  []paramTemplate
	outputs []paramTemplate
	props   func() map[string]any
	dialect string
	source  string
}

// builtins enumerates every instantiable type in registration order.
func builtins() []typeTemplate {
	return []typeTemplate{
		{
			desc:    host.TypeDescriptor{GUID: GUIDSlider, Name: "Number Slider", Kind: host.KindSlider},
			outputs: []paramTemplate{{name: "Value", converter: "double"}},
		},
		{
			desc: host.TypeDescriptor{GUID: GUIDAddition, Name: "Addition", Kind: host.KindGeneric},
			inputs: []paramTemplate{
				{name: "A", converter: "double", required: true, principal: true},
				{name: "B", converter: "double", required: true},
			},
			outputs: []paramTemplate{{name: "Result", converter: "double"}},
		},
		{
			desc:   host.TypeDescriptor{GUID: GUIDPanel, Name: "Panel", Kind: host.KindGeneric},
			inputs: []paramTemplate{{name: "Input", converter: "object", access: host.AccessList}},
			props:  func() map[string]any { return map[string]any{"UserText": ""} },
		},
		{
			desc: host.TypeDescriptor{GUID: GUIDConstructPoint, Name: "Construct Point", Kind: host.KindGeneric},
			inputs: []paramTemplate{
				{name: "X", converter: "double"},
				{name: "Y", converter: "double"},
				{name: "Z", converter: "double"},
			},
			outputs: []paramTemplate{{name: "Pt", converter: "Point3d"}},
		},
		{
			desc:    host.TypeDescriptor{GUID: GUIDPointParam, Name: "Point", Kind: host.KindGeneric},
			outputs: []paramTemplate{{name: "Pt", converter: "Point3d"}},
			// Persistent data is a branch tree: path -> items.
			props: func() map[string]any {
				return map[string]any{"Value": map[string][]any{"{0}": {geom.Point3{}}}}
			},
		},
		{
			desc:    host.TypeDescriptor{GUID: GUIDColourSwatch, Name: "Colour Swatch", Kind: host.KindGeneric},
			outputs: []paramTemplate{{name: "Colour", converter: "Colour"}},
			props: func() map[string]any {
				return map[string]any{"SwatchColour": geom.Color{A: 255, R: 255, G: 255, B: 255}}
			},
		},
		{
			desc: host.TypeDescriptor{GUID: GUIDCSharpScript, Name: "C# Script", Kind: host.KindScript},
			inputs: []paramTemplate{
				{name: "x", converter: "object"},
				{name: "y", converter: "object"},
			},
			outputs: []paramTemplate{{name: "a", converter: "object"}},
			dialect: "csharp",
			source:  "private void RunScript(object x, object y, ref object a)\n{\n}\n",
		},
		{
			desc: host.TypeDescriptor{GUID: GUIDPythonScript, Name: "Python Script", Kind: host.KindScript},
			inputs: []paramTemplate{
				{name: "x", converter: "object"},
				{name: "y", converter: "object"},
			},
			outputs: []paramTemplate{{name: "a", converter: "object"}},
			dialect: "python",
			source:  "a = x\n",
		},
	}
}

// registry resolves builtin type descriptors.
type registry struct {
	byGUID map[string]typeTemplate
	byName map[string]typeTemplate
}

func newRegistry() *registry {
	r := &registry{
		byGUID: make(map[string]typeTemplate),
		byName: make(map[string]typeTemplate),
	}
	for _, tmpl := range builtins() {
		r.byGUID[tmpl.desc.GUID] = tmpl
		r.byName[strings.ToLower(tmpl.desc.Name)] = tmpl
	}
	return r
}

func (r *registry) ResolveGUID(guid string) (host.TypeDescriptor, bool) {
	tmpl, ok := r.byGUID[guid]
	return tmpl.desc, ok
}

// ResolveName matches case-insensitively; hosts are sloppy about display
// name casing across versions.
func (r *registry) ResolveName(name string) (host.TypeDescriptor, bool) {
	tmpl, ok := r.byName[strings.ToLower(name)]
	return tmpl.desc, ok
}

// ParameterType resolves a template parameter's value converter, backing
// connection compatibility checks. Parameters registered on a live script
// node after instantiation are not in the template and resolve false.
func (r *registry) ParameterType(typeGUID, paramName string, output bool) (string, bool) {
	tmpl, ok := r.byGUID[typeGUID]
	if !ok {
		return "", false
	}
	list := tmpl.inputs
	if output {
		list = tmpl.outputs
	}
	for _, pt := range list {
		if pt.name == paramName {
			return pt.converter, true
		}
	}
	return "", false
}

// Host is an in-memory canvas with the builtin type palette.
type Host struct {
	types *registry
	nodes []host.Node
	byID  map[string]host.Node
}

// New creates an empty canvas.
func New() *Host {
	return &Host{
		types: newRegistry(),
		byID:  make(map[string]host.Node),
	}
}

// Types returns the builtin type registry.
func (h *Host) Types() host.TypeRegistry { return h.types }

// Instantiate creates a blank node of the given type with a fresh
// instance id.
func (h *Host) Instantiate(td host.TypeDescriptor) (host.Node, error) {
	tmpl, ok := h.types.byGUID[td.GUID]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownType, "no type with GUID %s", td.GUID)
	}

	base := node{
		id:   uuid.NewString(),
		td:   tmpl.desc,
		name: tmpl.desc.Name,
	}
	if tmpl.props != nil {
		base.props = tmpl.props()
	}
	for _, pt := range tmpl.inputs {
		base.inputs = append(base.inputs, newParam(pt))
	}
	for _, pt := range tmpl.outputs {
		base.outputs = append(base.outputs, newParam(pt))
	}

	var n host.Node
	switch tmpl.desc.Kind {
	case host.KindSlider:
		n = &sliderNode{node: base, digits: 3, min: 0, max: 10}
	case host.KindScript:
		n = &scriptNode{node: base, dialect: tmpl.dialect, source: tmpl.source}
	default:
		n = &base
	}

	h.nodes = append(h.nodes, n)
	h.byID[n.ID()] = n
	return n, nil
}

// AddByName instantiates a builtin type by its display name.
func (h *Host) AddByName(name string) (host.Node, error) {
	td, ok := h.types.ResolveName(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownType, "no type named %q", name)
	}
	return h.Instantiate(td)
}

// Connect attaches an output endpoint to an input endpoint.
func (h *Host) Connect(from, to host.Endpoint) error {
	src, ok := h.byID[from.NodeID]
	if !ok {
		return errors.New(errors.ErrCodeUnknownComponent, "no node %s", from.NodeID)
	}
	dst, ok := h.byID[to.NodeID]
	if !ok {
		return errors.New(errors.ErrCodeUnknownComponent, "no node %s", to.NodeID)
	}

	out := findParam(src.Outputs(), from.Parameter)
	if out == nil {
		return errors.New(errors.ErrCodeUnknownParameter,
			"node %s has no output %q", src.Name(), from.Parameter)
	}
	if findParam(dst.Inputs(), to.Parameter) == nil {
		return errors.New(errors.ErrCodeUnknownParameter,
			"node %s has no input %q", dst.Name(), to.Parameter)
	}

	out.(*param).recipients = append(out.(*param).recipients, to)
	return nil
}

// Nodes returns live nodes in creation order.
func (h *Host) Nodes() []host.Node {
	out := make([]host.Node, len(h.nodes))
	copy(out, h.nodes)
	return out
}

// Node looks a node up by instance id.
func (h *Host) Node(id string) (host.Node, bool) {
	n, ok := h.byID[id]
	return n, ok
}

func findParam(params []host.Parameter, name string) host.Parameter {
	for _, p := range params {
		if p.Name() == name {
			return p
		}
	}
	return nil
}
