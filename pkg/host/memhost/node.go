package memhost

import (
	"strconv"
	"strings"

	"github.com/snapgraph/snapgraph/pkg/errors"
	"github.com/snapgraph/snapgraph/pkg/host"
)

// param implements host.Parameter with plain mutable fields.
type param struct {
	name       string
	hint       string
	access     host.Access
	mapping    host.Mapping
	mods       host.Modifiers
	required   bool
	principal  bool
	converter  string
	recipients []host.Endpoint
}

func newParam(pt paramTemplate) *param {
	return &param{
		name:      pt.name,
		access:    pt.access,
		required:  pt.required,
		principal: pt.principal,
		converter: pt.converter,
	}
}

func (p *param) Name() string               { return p.name }
func (p *param) Access() host.Access        { return p.access }
func (p *param) Mapping() host.Mapping      { return p.mapping }
func (p *param) Modifiers() host.Modifiers  { return p.mods }
func (p *param) Required() bool             { return p.required }
func (p *param) Principal() bool            { return p.principal }
func (p *param) Converter() string          { return p.converter }
func (p *param) Recipients() []host.Endpoint {
	out := make([]host.Endpoint, len(p.recipients))
	copy(out, p.recipients)
	return out
}

// node implements host.Node for generic components.
type node struct {
	id       string
	td       host.TypeDescriptor
	name     string
	pivotX   float64
	pivotY   float64
	hasPivot bool
	selected bool
	inputs   []*param
	outputs  []*param
	props    map[string]any
	warnList []string
	errList  []string
}

func (n *node) ID() string                { return n.id }
func (n *node) Type() host.TypeDescriptor { return n.td }
func (n *node) Name() string              { return n.name }

func (n *node) Pivot() (float64, float64, bool) { return n.pivotX, n.pivotY, n.hasPivot }

func (n *node) SetPivot(x, y float64) {
	n.pivotX, n.pivotY = x, y
	n.hasPivot = true
}

func (n *node) Selected() bool        { return n.selected }
func (n *node) SetSelected(sel bool)  { n.selected = sel }

func (n *node) Inputs() []host.Parameter  { return asParameters(n.inputs) }
func (n *node) Outputs() []host.Parameter { return asParameters(n.outputs) }

func (n *node) PropertyValue(name string) (any, bool) {
	v, ok := n.props[name]
	return v, ok
}

func (n *node) SetPropertyValue(name string, v any) error {
	if n.props == nil {
		return errors.New(errors.ErrCodeUnknownParameter,
			"type %s has no properties", n.td.Name)
	}
	if _, ok := n.props[name]; !ok {
		return errors.New(errors.ErrCodeUnknownParameter,
			"type %s has no property %q", n.td.Name, name)
	}
	n.props[name] = v
	return nil
}

func (n *node) Warnings() []string { return n.warnList }
func (n *node) Errors() []string   { return n.errList }

// AddWarning and AddError exist so tests can exercise message capture.
func (n *node) AddWarning(msg string) { n.warnList = append(n.warnList, msg) }
func (n *node) AddError(msg string)   { n.errList = append(n.errList, msg) }

func asParameters(params []*param) []host.Parameter {
	out := make([]host.Parameter, len(params))
	for i, p := range params {
		out[i] = p
	}
	return out
}

// sliderNode adds the packed value surface on top of a plain node.
type sliderNode struct {
	node
	digits int
	min    float64
	max    float64
	value  float64
}

func (s *sliderNode) PropertyValue(name string) (any, bool) {
	if name == "Value" {
		return s.value, true
	}
	return s.node.PropertyValue(name)
}

func (s *sliderNode) SetPropertyValue(name string, v any) error {
	if name == "Value" {
		f, ok := v.(float64)
		if !ok {
			return errors.New(errors.ErrCodeKindMismatch,
				"slider value must be float64, got %T", v)
		}
		s.value = clamp(f, s.min, s.max)
		return nil
	}
	return s.node.SetPropertyValue(name, v)
}

// Packed returns "digits;min;max;value".
func (s *sliderNode) Packed() string {
	parts := []string{
		strconv.Itoa(s.digits),
		strconv.FormatFloat(s.min, 'g', -1, 64),
		strconv.FormatFloat(s.max, 'g', -1, 64),
		strconv.FormatFloat(s.value, 'g', -1, 64),
	}
	return strings.Join(parts, ";")
}

func (s *sliderNode) SetFromPacked(packed string) error {
	parts := strings.Split(packed, ";")
	if len(parts) != 4 {
		return errors.New(errors.ErrCodeInvalidInput,
			"packed slider value needs 4 fields, got %d", len(parts))
	}
	digits, err := strconv.Atoi(parts[0])
	if err != nil || digits < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "bad slider accuracy %q", parts[0])
	}
	min, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "bad slider lower limit %q", parts[1])
	}
	max, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "bad slider upper limit %q", parts[2])
	}
	value, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "bad slider value %q", parts[3])
	}
	if max < min {
		return errors.New(errors.ErrCodeInvalidInput,
			"slider limits inverted: %g > %g", min, max)
	}

	s.digits = digits
	s.min = min
	s.max = max
	s.value = clamp(value, min, max)
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// scriptNode adds source text and registrable parameters.
type scriptNode struct {
	node
	dialect string
	source  string
}

func (s *scriptNode) Dialect() string      { return s.dialect }
func (s *scriptNode) Source() string       { return s.source }
func (s *scriptNode) SetSource(src string) { s.source = src }

func (s *scriptNode) AddInput(cfg host.ParameterConfig) error {
	if findParam(s.Inputs(), cfg.Name) != nil {
		return errors.New(errors.ErrCodeInvalidInput, "input %q already exists", cfg.Name)
	}
	s.inputs = append(s.inputs, configuredParam(cfg))
	return nil
}

func (s *scriptNode) AddOutput(cfg host.ParameterConfig) error {
	if findParam(s.Outputs(), cfg.Name) != nil {
		return errors.New(errors.ErrCodeInvalidInput, "output %q already exists", cfg.Name)
	}
	s.outputs = append(s.outputs, configuredParam(cfg))
	return nil
}

func (s *scriptNode) ConfigureInput(name string, cfg host.ParameterConfig) error {
	return configure(s.inputs, name, cfg)
}

func (s *scriptNode) ConfigureOutput(name string, cfg host.ParameterConfig) error {
	return configure(s.outputs, name, cfg)
}

// RefreshVariables is a no-op here; a real host re-binds script variables
// to parameters after registration changes.
func (s *scriptNode) RefreshVariables() {}

func configuredParam(cfg host.ParameterConfig) *param {
	converter := cfg.TypeHint
	if converter == "" {
		converter = "object"
	}
	return &param{
		name:      cfg.Name,
		hint:      cfg.TypeHint,
		access:    cfg.Access,
		mapping:   cfg.Mapping,
		mods:      cfg.Modifiers,
		required:  cfg.Required,
		principal: cfg.Principal,
		converter: converter,
	}
}

func configure(params []*param, name string, cfg host.ParameterConfig) error {
	for _, p := range params {
		if p.name != name {
			continue
		}
		p.access = cfg.Access
		p.mapping = cfg.Mapping
		p.mods = cfg.Modifiers
		p.required = cfg.Required
		p.principal = cfg.Principal
		if cfg.TypeHint != "" {
			p.hint = cfg.TypeHint
			p.converter = cfg.TypeHint
		}
		return nil
	}
	return errors.New(errors.ErrCodeUnknownParameter, "no parameter %q", name)
}
