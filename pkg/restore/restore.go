// Package restore materializes a document into a live graph.
//
// Reconstruction is deliberately forgiving: a component whose type cannot
// be resolved, a property that fails to decode, or a wire whose endpoint
// went missing is logged and skipped, and the rest of the document is
// still built. The philosophy is that a mostly restored graph the author
// can repair beats an error message.
//
// Ordering is strict in one place only: every component is instantiated
// before any wire is attached, so connection targets always exist by the
// time wiring starts.
package restore

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/snapgraph/snapgraph/pkg/capture"
	"github.com/snapgraph/snapgraph/pkg/codec"
	"github.com/snapgraph/snapgraph/pkg/document"
	"github.com/snapgraph/snapgraph/pkg/host"
	"github.com/snapgraph/snapgraph/pkg/script"
)

// Restorer rebuilds live graphs from documents.
type Restorer struct {
	codecs *codec.Registry
	descs  *capture.Descriptors

	originX  float64
	originY  float64
	spacingX float64
	spacingY float64
}

// Option configures a Restorer.
type Option func(*Restorer)

// WithOrigin moves the placement grid's top-left corner.
func WithOrigin(x, y float64) Option {
	return func(r *Restorer) { r.originX, r.originY = x, y }
}

// WithSpacing changes the placement grid's cell size.
func WithSpacing(x, y float64) Option {
	return func(r *Restorer) { r.spacingX, r.spacingY = x, y }
}

// New creates a Restorer sharing the capture side's codec registry and
// property descriptor tables, so whatever capture wrote restore can read.
func New(codecs *codec.Registry, descs *capture.Descriptors, opts ...Option) *Restorer {
	r := &Restorer{
		codecs:   codecs,
		descs:    descs,
		originX:  DefaultOriginX,
		originY:  DefaultOriginY,
		spacingX: DefaultSpacingX,
		spacingY: DefaultSpacingY,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result summarizes one reconstruction run.
type Result struct {
	// PlacedNames holds the distinct display names that were instantiated,
	// in first-appearance order.
	PlacedNames []string

	// IDMap maps document instance ids to the fresh ids the host assigned.
	// Components that could not be instantiated are absent.
	IDMap map[string]string

	// SkippedComponents and SkippedConnections count what was dropped.
	SkippedComponents  int
	SkippedConnections int
}

// Restore builds the document's components and connections on the canvas.
func (r *Restorer) Restore(ctx context.Context, doc *document.Document, canvas host.Canvas) *Result {
	logger := log.FromContext(ctx)
	result := &Result{IDMap: make(map[string]string, len(doc.Components))}
	pivots := r.Placements(doc)

	seenNames := make(map[string]bool)
	for i := range doc.Components {
		comp := &doc.Components[i]

		n, ok := r.instantiate(logger, canvas, comp)
		if !ok {
			result.SkippedComponents++
			continue
		}
		result.IDMap[comp.InstanceGUID] = n.ID()
		if !seenNames[comp.Name] {
			seenNames[comp.Name] = true
			result.PlacedNames = append(result.PlacedNames, comp.Name)
		}

		pivot := pivots[comp.InstanceGUID]
		n.SetPivot(pivot.X, pivot.Y)
		n.SetSelected(comp.Selected)
		r.apply(logger, n, comp)
	}

	// Wiring runs strictly after every component exists.
	for _, conn := range doc.Connections {
		fromID, fromOK := result.IDMap[conn.From.InstanceID]
		toID, toOK := result.IDMap[conn.To.InstanceID]
		if !fromOK || !toOK {
			logger.Warn("skipping dangling connection",
				"from", conn.From.InstanceID, "to", conn.To.InstanceID)
			result.SkippedConnections++
			continue
		}
		err := canvas.Connect(
			host.Endpoint{NodeID: fromID, Parameter: conn.From.Name},
			host.Endpoint{NodeID: toID, Parameter: conn.To.Name},
		)
		if err != nil {
			logger.Warn("skipping connection", "from", conn.From.Name,
				"to", conn.To.Name, "err", err)
			result.SkippedConnections++
		}
	}
	return result
}

// instantiate resolves the component's type by GUID, falling back to
// display name, and creates a blank node.
func (r *Restorer) instantiate(logger *log.Logger, canvas host.Canvas, comp *document.Component) (host.Node, bool) {
	types := canvas.Types()
	td, found := types.ResolveGUID(comp.ComponentGUID)
	if !found {
		td, found = types.ResolveName(comp.Name)
		if !found {
			logger.Warn("skipping component with unknown type",
				"name", comp.Name, "guid", comp.ComponentGUID)
			return nil, false
		}
		logger.Info("type resolved by display name", "name", comp.Name)
	}

	n, err := canvas.Instantiate(td)
	if err != nil {
		logger.Warn("skipping component", "name", comp.Name, "err", err)
		return nil, false
	}
	return n, true
}

func (r *Restorer) apply(logger *log.Logger, n host.Node, comp *document.Component) {
	switch n.Type().Kind {
	case host.KindSlider:
		r.applySlider(logger, n, comp)
	case host.KindScript:
		r.applyScript(logger, n, comp)
	default:
		r.applyProperties(logger, n, comp)
	}
}

func (r *Restorer) applySlider(logger *log.Logger, n host.Node, comp *document.Component) {
	slider, ok := n.(host.SliderNode)
	if !ok {
		logger.Warn("slider-kind node without packed value surface", "node", comp.Name)
		return
	}
	packed, ok := r.textProperty(comp, capture.PropSlider)
	if !ok {
		return
	}
	if err := slider.SetFromPacked(packed); err != nil {
		logger.Warn("slider value not restored", "node", comp.Name, "err", err)
	}
}

// applyScript restores source text, then registers or updates every
// recorded parameter, then refreshes the node's variable bookkeeping and
// re-injects the recorded type hints into the signature.
func (r *Restorer) applyScript(logger *log.Logger, n host.Node, comp *document.Component) {
	s, ok := n.(host.ScriptNode)
	if !ok {
		logger.Warn("script-kind node without script surface", "node", comp.Name)
		return
	}

	if dialect, found := r.textProperty(comp, capture.PropDialect); found && dialect != s.Dialect() {
		logger.Warn("document dialect differs from node dialect",
			"node", comp.Name, "document", dialect, "node_dialect", s.Dialect())
	}
	if source, found := r.textProperty(comp, capture.PropScript); found {
		s.SetSource(source)
	}

	inputHints := r.applyParameters(logger, comp, comp.Inputs, existingNames(s.Inputs()), s.AddInput, s.ConfigureInput)
	outputHints := r.applyParameters(logger, comp, comp.Outputs, existingNames(s.Outputs()), s.AddOutput, s.ConfigureOutput)
	s.RefreshVariables()

	if d, found := script.Lookup(s.Dialect()); found && d.Typed() {
		s.SetSource(script.Inject(s.Dialect(), s.Source(), inputHints, outputHints))
	}
}

func (r *Restorer) applyParameters(
	logger *log.Logger,
	comp *document.Component,
	settings []document.ParameterSettings,
	existing map[string]bool,
	add func(host.ParameterConfig) error,
	configure func(string, host.ParameterConfig) error,
) []script.TypeHint {
	hints := make([]script.TypeHint, 0, len(settings))

	for _, ps := range settings {
		access, _ := host.ParseAccess(ps.Access)
		mapping, _ := host.ParseMapping(ps.DataMapping)
		cfg := host.ParameterConfig{
			Name:     ps.ParameterName,
			TypeHint: ps.TypeHint,
			Access:   access,
			Mapping:  mapping,
			Modifiers: host.Modifiers{
				Reverse:  ps.Additional.Reverse,
				Simplify: ps.Additional.Simplify,
				Locked:   ps.Additional.Locked,
				Invert:   ps.Additional.Invert,
			},
			Required:  ps.Required,
			Principal: ps.Principal,
		}

		var err error
		if existing[ps.ParameterName] {
			err = configure(ps.ParameterName, cfg)
		} else {
			err = add(cfg)
		}
		if err != nil {
			logger.Warn("script parameter not restored",
				"node", comp.Name, "parameter", ps.ParameterName, "err", err)
			continue
		}
		hints = append(hints, script.TypeHint{Name: ps.Variable(), Type: ps.TypeHint})
	}
	return hints
}

// applyProperties writes generic properties back through the same
// descriptor tables capture read them from.
func (r *Restorer) applyProperties(logger *log.Logger, n host.Node, comp *document.Component) {
	for _, desc := range r.descs.For(n.Type().GUID) {
		if desc.Tree {
			r.applyTree(logger, n, comp, desc)
			continue
		}

		pv, ok := comp.Property(desc.Name)
		if !ok {
			continue
		}
		v, err := r.codecs.Decode(pv.Value)
		if err != nil {
			logger.Warn("property not restored",
				"node", comp.Name, "property", desc.Name, "err", err)
			continue
		}
		if err := desc.Set(n, v); err != nil {
			logger.Warn("property not restored",
				"node", comp.Name, "property", desc.Name, "err", err)
		}
	}
}

// applyTree reassembles a persistent-data branch tree from its flattened
// path-keyed properties.
func (r *Restorer) applyTree(logger *log.Logger, n host.Node, comp *document.Component, desc capture.PropertyDescriptor) {
	branches := make(map[string]map[int]any)
	for key, pv := range comp.Properties {
		name, path, index, ok := capture.SplitTreeKey(key)
		if !ok || name != desc.Name {
			continue
		}
		v, err := r.codecs.Decode(pv.Value)
		if err != nil {
			logger.Warn("persistent item not restored",
				"node", comp.Name, "key", key, "err", err)
			continue
		}
		if branches[path] == nil {
			branches[path] = make(map[int]any)
		}
		branches[path][index] = v
	}
	if len(branches) == 0 {
		return
	}

	tree := make(map[string][]any, len(branches))
	for path, items := range branches {
		maxIndex := 0
		for i := range items {
			if i > maxIndex {
				maxIndex = i
			}
		}
		branch := make([]any, 0, len(items))
		for i := 0; i <= maxIndex; i++ {
			if v, ok := items[i]; ok {
				branch = append(branch, v)
			}
		}
		tree[path] = branch
	}
	if err := desc.Set(n, tree); err != nil {
		logger.Warn("persistent data not restored",
			"node", comp.Name, "property", desc.Name, "err", err)
	}
}

// textProperty decodes a text-token property to its string value.
func (r *Restorer) textProperty(comp *document.Component, name string) (string, bool) {
	pv, ok := comp.Property(name)
	if !ok {
		return "", false
	}
	v, err := r.codecs.Decode(pv.Value)
	if err != nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func existingNames(params []host.Parameter) map[string]bool {
	out := make(map[string]bool, len(params))
	for _, p := range params {
		out[p.Name()] = true
	}
	return out
}
