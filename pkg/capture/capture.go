// Package capture extracts a portable document from a live graph.
//
// Capture never fails outright: a property whose value cannot be encoded,
// or a node surface that does not match its declared kind, is skipped with
// a log line and the rest of the graph is still captured. The caller gets
// the most faithful document the live state allows.
package capture

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/snapgraph/snapgraph/pkg/codec"
	"github.com/snapgraph/snapgraph/pkg/document"
	"github.com/snapgraph/snapgraph/pkg/host"
	"github.com/snapgraph/snapgraph/pkg/script"
)

// Document property names used for script nodes.
const (
	PropScript  = "Script"
	PropDialect = "Dialect"
	PropSlider  = "Value"
)

// Capturer walks live nodes and produces documents.
type Capturer struct {
	codecs *codec.Registry
	descs  *Descriptors

	// hintFallback supplies a type hint for a typed-dialect parameter when
	// signature extraction finds nothing. The default reads the
	// parameter's configured value converter.
	hintFallback func(host.Parameter) string
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithHintFallback replaces the converter-based type-hint fallback.
func WithHintFallback(fn func(host.Parameter) string) Option {
	return func(c *Capturer) { c.hintFallback = fn }
}

// New creates a Capturer over the given codec registry and property
// descriptor tables.
func New(codecs *codec.Registry, descs *Descriptors, opts ...Option) *Capturer {
	c := &Capturer{
		codecs:       codecs,
		descs:        descs,
		hintFallback: func(p host.Parameter) string { return p.Converter() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capture extracts every node on the canvas.
func (c *Capturer) Capture(ctx context.Context, canvas host.Canvas) *document.Document {
	return c.CaptureNodes(ctx, canvas.Nodes())
}

// CaptureNodes extracts the given nodes and the wires between their
// outputs and any recipient. Connections are derived exclusively from
// output recipient lists, so each physical wire appears exactly once.
func (c *Capturer) CaptureNodes(ctx context.Context, nodes []host.Node) *document.Document {
	logger := log.FromContext(ctx)
	doc := &document.Document{}

	for _, n := range nodes {
		doc.Components = append(doc.Components, c.captureNode(logger, n))

		for _, out := range n.Outputs() {
			for _, rcpt := range out.Recipients() {
				doc.Connections = append(doc.Connections, document.Connection{
					From: document.Endpoint{InstanceID: n.ID(), Name: out.Name()},
					To:   document.Endpoint{InstanceID: rcpt.NodeID, Name: rcpt.Parameter},
				})
			}
		}
	}
	return doc
}

func (c *Capturer) captureNode(logger *log.Logger, n host.Node) document.Component {
	td := n.Type()
	comp := document.Component{
		Name:          n.Name(),
		ComponentGUID: td.GUID,
		InstanceGUID:  n.ID(),
		Selected:      n.Selected(),
		Warnings:      n.Warnings(),
		Errors:        n.Errors(),
	}
	if x, y, ok := n.Pivot(); ok {
		comp.Pivot = &document.Pivot{X: x, Y: y}
	}

	switch td.Kind {
	case host.KindSlider:
		c.captureSlider(logger, n, &comp)
	case host.KindScript:
		c.captureScript(logger, n, &comp)
	default:
		c.captureProperties(logger, n, &comp)
	}
	return comp
}

// captureSlider records the packed accuracy/lower/upper/value text. The
// raw numeric value alone would lose precision and limit semantics.
func (c *Capturer) captureSlider(logger *log.Logger, n host.Node, comp *document.Component) {
	slider, ok := n.(host.SliderNode)
	if !ok {
		logger.Warn("slider-kind node without packed value surface", "node", n.Name())
		return
	}

	packed := slider.Packed()
	pv := document.PropertyValue{Value: codec.PrefixText + ":" + packed, Type: codec.PrefixText}
	if parts := strings.Split(packed, ";"); len(parts) == 4 {
		pv.HumanReadable = parts[3]
	}
	setProperty(comp, PropSlider, pv)
}

func (c *Capturer) captureScript(logger *log.Logger, n host.Node, comp *document.Component) {
	s, ok := n.(host.ScriptNode)
	if !ok {
		logger.Warn("script-kind node without script surface", "node", n.Name())
		return
	}

	source := s.Source()
	dialect := s.Dialect()
	setProperty(comp, PropScript, document.PropertyValue{
		Value: codec.PrefixText + ":" + source,
		Type:  codec.PrefixText,
	})
	setProperty(comp, PropDialect, document.PropertyValue{
		Value: codec.PrefixText + ":" + dialect,
		Type:  codec.PrefixText,
	})

	typed := false
	if d, found := script.Lookup(dialect); found {
		typed = d.Typed()
	}

	for _, p := range s.Inputs() {
		comp.Inputs = append(comp.Inputs, c.parameterSettings(dialect, typed, source, p))
	}
	for _, p := range s.Outputs() {
		comp.Outputs = append(comp.Outputs, c.parameterSettings(dialect, typed, source, p))
	}
}

// parameterSettings records one script parameter. The display name is
// stored as-is; the code identifier is stored only when sanitation had to
// change it.
func (c *Capturer) parameterSettings(dialect string, typed bool, source string, p host.Parameter) document.ParameterSettings {
	name := p.Name()
	variable := script.Sanitize(name)

	ps := document.ParameterSettings{
		ParameterName: name,
		Required:      p.Required(),
		Principal:     p.Principal(),
	}
	if variable != name {
		ps.VariableName = variable
	}

	hint, found := script.Extract(dialect, source, variable)
	if !found && typed {
		hint = c.hintFallback(p)
	}
	ps.TypeHint = hint

	if a := p.Access(); a != host.AccessItem {
		ps.Access = a.String()
	}
	if m := p.Mapping(); m != host.MappingNone {
		ps.DataMapping = m.String()
	}
	mods := p.Modifiers()
	ps.Additional = document.AdditionalSettings{
		Reverse:  mods.Reverse,
		Simplify: mods.Simplify,
		Locked:   mods.Locked,
		Invert:   mods.Invert,
	}
	return ps
}

// captureProperties walks the node type's allow-list. Properties missing
// from the live node are silently absent; encoding failures skip just
// that property.
func (c *Capturer) captureProperties(logger *log.Logger, n host.Node, comp *document.Component) {
	for _, desc := range c.descs.For(n.Type().GUID) {
		v, ok := desc.Get(n)
		if !ok {
			continue
		}
		if desc.Tree {
			c.captureTree(logger, n, comp, desc, v)
			continue
		}

		token, err := c.encode(desc.Prefix, v)
		if err != nil {
			logger.Warn("skipping property",
				"node", n.Name(), "property", desc.Name, "err", err)
			continue
		}
		pv := document.PropertyValue{Value: token, Type: desc.Prefix}
		if desc.Human != nil {
			pv.HumanReadable = desc.Human(v)
		}
		setProperty(comp, desc.Name, pv)
	}
}

// captureTree flattens a persistent-data branch tree to path-keyed
// properties, one per item, in sorted path order.
func (c *Capturer) captureTree(logger *log.Logger, n host.Node, comp *document.Component, desc PropertyDescriptor, v any) {
	tree, ok := v.(map[string][]any)
	if !ok {
		logger.Warn("persistent data is not a branch tree",
			"node", n.Name(), "property", desc.Name)
		return
	}

	paths := make([]string, 0, len(tree))
	for path := range tree {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		for i, item := range tree[path] {
			token, err := c.encode(desc.Prefix, item)
			if err != nil {
				logger.Warn("skipping persistent item",
					"node", n.Name(), "property", desc.Name,
					"path", path, "index", i, "err", err)
				continue
			}
			setProperty(comp, TreeKey(desc.Name, path, i), document.PropertyValue{
				Value: token,
				Type:  desc.Prefix,
			})
		}
	}
}

func (c *Capturer) encode(prefix string, v any) (string, error) {
	cdc, ok := c.codecs.Lookup(prefix)
	if ok {
		return cdc.Serialize(v)
	}
	// Descriptor without a registered prefix: dispatch on runtime type.
	return c.codecs.Encode(v)
}

func setProperty(comp *document.Component, name string, pv document.PropertyValue) {
	if comp.Properties == nil {
		comp.Properties = make(map[string]document.PropertyValue)
	}
	comp.Properties[name] = pv
}
