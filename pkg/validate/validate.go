// Package validate checks documents before reconstruction.
//
// Validation runs in two phases. The structural phase rejects input that
// is not a well-formed document at all: broken JSON, missing collections,
// duplicate or empty instance ids. The semantic phase checks the document
// against a type registry and the codec grammar: unknown component types
// are errors, while connection type mismatches only warn, because hosts
// perform runtime conversion and a dubious wire may still be exactly what
// the author meant.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/snapgraph/snapgraph/pkg/codec"
	"github.com/snapgraph/snapgraph/pkg/document"
	"github.com/snapgraph/snapgraph/pkg/errors"
	"github.com/snapgraph/snapgraph/pkg/host"
	"github.com/snapgraph/snapgraph/pkg/script"
)

// ParameterTypes resolves the declared value type of a parameter on a
// node type, for connection compatibility checks. Registries that cannot
// answer simply do not implement it; category checks are then skipped.
type ParameterTypes interface {
	ParameterType(typeGUID, paramName string, output bool) (string, bool)
}

// Validator checks documents against a codec registry and a host type
// registry.
type Validator struct {
	codecs *codec.Registry
	types  host.TypeRegistry
}

// New creates a Validator. types may be nil, in which case component
// type resolution is skipped and only document-local checks run.
func New(codecs *codec.Registry, types host.TypeRegistry) *Validator {
	return &Validator{codecs: codecs, types: types}
}

func issue(sev Severity, subject, format string, args ...any) Issue {
	return Issue{Severity: sev, Message: fmt.Sprintf(format, args...), Subject: subject}
}

// ValidateBytes runs the structural phase on raw JSON and, when it
// passes, the semantic phase on the decoded document.
func (v *Validator) ValidateBytes(data []byte) (*document.Document, *Report) {
	report := &Report{}

	doc, ok := v.structural(data, report)
	if !ok {
		return nil, report
	}
	v.semantic(doc, report)
	return doc, report
}

// Validate runs the semantic phase on an already-decoded document,
// including the document-local structural checks (ids, references).
func (v *Validator) Validate(doc *document.Document) *Report {
	report := &Report{}
	v.checkInstances(doc, report)
	v.semantic(doc, report)
	return report
}

// structural rejects input that is not a document shape at all.
func (v *Validator) structural(data []byte, report *Report) (*document.Document, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		report.errorf("", "malformed JSON: %v", err)
		return nil, false
	}
	for _, key := range []string{"components", "connections"} {
		raw, found := probe[key]
		if !found {
			report.errorf("", "missing %q collection", key)
			continue
		}
		if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
			report.errorf("", "%q must be an array", key)
		}
	}
	if !report.OK() {
		return nil, false
	}

	doc, err := document.Unmarshal(data)
	if err != nil {
		report.errorf("", "decode: %v", errors.UserMessage(err))
		return nil, false
	}
	v.checkInstances(doc, report)
	return doc, report.OK()
}

func (v *Validator) checkInstances(doc *document.Document, report *Report) {
	seen := make(map[string]bool, len(doc.Components))
	for i := range doc.Components {
		comp := &doc.Components[i]
		if comp.InstanceGUID == "" {
			report.errorf(comp.Name, "component has no instance id")
			continue
		}
		if seen[comp.InstanceGUID] {
			report.errorf(comp.Name, "duplicate instance id %s", comp.InstanceGUID)
		}
		seen[comp.InstanceGUID] = true

		if comp.ComponentGUID != "" {
			if err := errors.ValidateGUID(comp.ComponentGUID); err != nil {
				report.warnf(comp.Name, "component GUID %q is not a GUID", comp.ComponentGUID)
			}
		}
	}
}

// semantic checks types, tokens, script metadata, and connections.
func (v *Validator) semantic(doc *document.Document, report *Report) {
	for i := range doc.Components {
		v.checkComponent(&doc.Components[i], report)
	}
	v.checkConnections(doc, report)
}

func (v *Validator) checkComponent(comp *document.Component, report *Report) {
	if v.types != nil {
		if _, found := v.types.ResolveGUID(comp.ComponentGUID); !found {
			if _, byName := v.types.ResolveName(comp.Name); byName {
				report.infof(comp.Name, "type %s unknown, resolvable by display name", comp.ComponentGUID)
			} else {
				report.errorf(comp.Name, "unknown component type %s", comp.ComponentGUID)
			}
		}
	}

	for name, pv := range comp.Properties {
		if pv.Value == "" {
			report.warnf(comp.Name, "property %q has no value", name)
			continue
		}
		if !v.codecs.Validate(pv.Value) {
			report.errorf(comp.Name, "property %q holds an invalid token %q", name, pv.Value)
		}
	}

	if pv, ok := comp.Property("Dialect"); ok {
		if dialect, decodeErr := v.codecs.Decode(pv.Value); decodeErr == nil {
			if name, isText := dialect.(string); isText {
				if _, known := script.Lookup(name); !known {
					report.warnf(comp.Name, "unknown script dialect %q", name)
				}
			}
		}
	}

	for _, ps := range append(append([]document.ParameterSettings{}, comp.Inputs...), comp.Outputs...) {
		if ps.ParameterName == "" {
			report.errorf(comp.Name, "script parameter without a name")
		}
		if _, ok := host.ParseAccess(ps.Access); !ok {
			report.errorf(comp.Name, "parameter %q has unknown access %q", ps.ParameterName, ps.Access)
		}
		if _, ok := host.ParseMapping(ps.DataMapping); !ok {
			report.errorf(comp.Name, "parameter %q has unknown data mapping %q", ps.ParameterName, ps.DataMapping)
		}
	}
}

func (v *Validator) checkConnections(doc *document.Document, report *Report) {
	resolver, canResolve := v.types.(ParameterTypes)

	for _, conn := range doc.Connections {
		subject := conn.From.InstanceID + " -> " + conn.To.InstanceID

		from := doc.Component(conn.From.InstanceID)
		to := doc.Component(conn.To.InstanceID)
		if from == nil {
			report.errorf(subject, "connection source %s not in document", conn.From.InstanceID)
		}
		if to == nil {
			report.errorf(subject, "connection target %s not in document", conn.To.InstanceID)
		}
		if from == nil || to == nil || !canResolve {
			continue
		}

		fromType, fromOK := resolver.ParameterType(from.ComponentGUID, conn.From.Name, true)
		toType, toOK := resolver.ParameterType(to.ComponentGUID, conn.To.Name, false)
		if !fromOK {
			report.warnf(from.Name, "no output %q on type %s", conn.From.Name, from.ComponentGUID)
		}
		if !toOK {
			report.warnf(to.Name, "no input %q on type %s", conn.To.Name, to.ComponentGUID)
		}
		if !fromOK || !toOK {
			continue
		}

		if !Compatible(fromType, toType) {
			report.warnf(subject, "output %s (%s) feeds input %s (%s): types may not convert",
				conn.From.Name, fromType, conn.To.Name, toType)
		}
	}
}
