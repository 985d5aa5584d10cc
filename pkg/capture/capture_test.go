package capture_test

import (
	"context"
	"testing"

	"github.com/snapgraph/snapgraph/pkg/capture"
	"github.com/snapgraph/snapgraph/pkg/codec"
	"github.com/snapgraph/snapgraph/pkg/document"
	"github.com/snapgraph/snapgraph/pkg/geom"
	"github.com/snapgraph/snapgraph/pkg/host"
	"github.com/snapgraph/snapgraph/pkg/host/memhost"
)

func newCapturer() *capture.Capturer {
	return capture.New(codec.Default(), memhost.Descriptors())
}

func mustAdd(t *testing.T, h *memhost.Host, name string) host.Node {
	t.Helper()
	n, err := h.AddByName(name)
	if err != nil {
		t.Fatalf("AddByName(%s): %v", name, err)
	}
	return n
}

func TestCaptureSlider(t *testing.T) {
	h := memhost.New()
	slider := mustAdd(t, h, "Number Slider").(host.SliderNode)
	if err := slider.SetFromPacked("3;0;10;2.5"); err != nil {
		t.Fatal(err)
	}
	slider.SetPivot(100, 50)

	doc := newCapturer().Capture(context.Background(), h)

	if len(doc.Components) != 1 {
		t.Fatalf("components = %d", len(doc.Components))
	}
	comp := doc.Components[0]
	if comp.Name != "Number Slider" || comp.ComponentGUID != memhost.GUIDSlider {
		t.Errorf("component = %+v", comp)
	}
	if comp.InstanceGUID != slider.ID() {
		t.Errorf("instance GUID = %q", comp.InstanceGUID)
	}
	if comp.Pivot == nil || comp.Pivot.X != 100 || comp.Pivot.Y != 50 {
		t.Errorf("pivot = %+v", comp.Pivot)
	}

	pv, ok := comp.Property("Value")
	if !ok {
		t.Fatal("no Value property")
	}
	if pv.Value != "text:3;0;10;2.5" || pv.Type != "text" {
		t.Errorf("value = %+v", pv)
	}
	if pv.HumanReadable != "2.5" {
		t.Errorf("humanReadable = %q", pv.HumanReadable)
	}
}

func TestCaptureConnectionsFromRecipientsOnly(t *testing.T) {
	h := memhost.New()
	slider := mustAdd(t, h, "Number Slider")
	add := mustAdd(t, h, "Addition")

	for _, input := range []string{"A", "B"} {
		err := h.Connect(
			host.Endpoint{NodeID: slider.ID(), Parameter: "Value"},
			host.Endpoint{NodeID: add.ID(), Parameter: input},
		)
		if err != nil {
			t.Fatal(err)
		}
	}

	doc := newCapturer().Capture(context.Background(), h)

	if len(doc.Connections) != 2 {
		t.Fatalf("connections = %v", doc.Connections)
	}
	want := document.Connection{
		From: document.Endpoint{InstanceID: slider.ID(), Name: "Value"},
		To:   document.Endpoint{InstanceID: add.ID(), Name: "A"},
	}
	if doc.Connections[0] != want {
		t.Errorf("connection = %+v, want %+v", doc.Connections[0], want)
	}
}

func TestCaptureScript(t *testing.T) {
	const source = "private void RunScript(List<Curve> curves, int count, ref object result)\n{\n}\n"

	h := memhost.New()
	n := mustAdd(t, h, "C# Script").(host.ScriptNode)
	n.SetSource(source)

	// Rebuild the parameter surface to match the signature.
	for _, cfg := range []host.ParameterConfig{
		{Name: "curves", Access: host.AccessList},
		{Name: "count"},
	} {
		if err := n.AddInput(cfg); err != nil {
			t.Fatal(err)
		}
	}
	if err := n.AddOutput(host.ParameterConfig{Name: "result"}); err != nil {
		t.Fatal(err)
	}

	doc := newCapturer().Capture(context.Background(), h)
	comp := doc.Components[0]

	if pv, _ := comp.Property("Script"); pv.Value != "text:"+source {
		t.Errorf("Script property = %+v", pv)
	}
	if pv, _ := comp.Property("Dialect"); pv.Value != "text:csharp" {
		t.Errorf("Dialect property = %+v", pv)
	}

	byName := make(map[string]document.ParameterSettings)
	for _, ps := range comp.Inputs {
		byName[ps.ParameterName] = ps
	}
	if got := byName["curves"]; got.TypeHint != "List<Curve>" || got.Access != "list" {
		t.Errorf("curves settings = %+v", got)
	}
	if got := byName["count"]; got.TypeHint != "int" {
		t.Errorf("count settings = %+v", got)
	}
	if len(comp.Outputs) != 2 || comp.Outputs[1].TypeHint != "object" {
		t.Errorf("outputs = %+v", comp.Outputs)
	}
}

func TestCaptureScriptConverterFallback(t *testing.T) {
	h := memhost.New()
	n := mustAdd(t, h, "C# Script").(host.ScriptNode)
	// Default source only declares x, y, a; this input is not in the
	// signature, so the hint falls back to the converter.
	if err := n.AddInput(host.ParameterConfig{Name: "extra", TypeHint: "Curve"}); err != nil {
		t.Fatal(err)
	}

	doc := newCapturer().Capture(context.Background(), h)
	inputs := doc.Components[0].Inputs
	last := inputs[len(inputs)-1]
	if last.ParameterName != "extra" || last.TypeHint != "Curve" {
		t.Errorf("fallback settings = %+v", last)
	}
}

func TestCapturePythonScriptHasNoHints(t *testing.T) {
	h := memhost.New()
	mustAdd(t, h, "Python Script")

	doc := newCapturer().Capture(context.Background(), h)
	for _, ps := range doc.Components[0].Inputs {
		if ps.TypeHint != "" {
			t.Errorf("untyped dialect stored hint %q for %s", ps.TypeHint, ps.ParameterName)
		}
	}
}

func TestCaptureScriptSanitizedVariableName(t *testing.T) {
	h := memhost.New()
	n := mustAdd(t, h, "C# Script").(host.ScriptNode)
	if err := n.AddInput(host.ParameterConfig{Name: "Curve List"}); err != nil {
		t.Fatal(err)
	}

	doc := newCapturer().Capture(context.Background(), h)
	inputs := doc.Components[0].Inputs
	last := inputs[len(inputs)-1]
	if last.ParameterName != "Curve List" || last.VariableName != "Curve_x20List" {
		t.Errorf("settings = %+v", last)
	}
	// Unchanged names stay implicit.
	if inputs[0].VariableName != "" {
		t.Errorf("x should have no explicit variable name: %+v", inputs[0])
	}
}

func TestCaptureGenericProperties(t *testing.T) {
	h := memhost.New()
	swatch := mustAdd(t, h, "Colour Swatch")
	if err := swatch.SetPropertyValue("SwatchColour", geom.Color{A: 255, R: 10, G: 20, B: 30}); err != nil {
		t.Fatal(err)
	}

	doc := newCapturer().Capture(context.Background(), h)
	pv, ok := doc.Components[0].Property("SwatchColour")
	if !ok || pv.Value != "argb:255,10,20,30" || pv.Type != "argb" {
		t.Errorf("SwatchColour = %+v, %v", pv, ok)
	}
}

func TestCapturePersistentTree(t *testing.T) {
	h := memhost.New()
	pt := mustAdd(t, h, "Point")
	tree := map[string][]any{
		"{0}": {geom.Point3{X: 1, Y: 2, Z: 3}, geom.Point3{X: 4, Y: 5, Z: 6}},
		"{1}": {geom.Point3{X: 7, Y: 8, Z: 9}},
	}
	if err := pt.SetPropertyValue("Value", tree); err != nil {
		t.Fatal(err)
	}

	doc := newCapturer().Capture(context.Background(), h)
	props := doc.Components[0].Properties

	want := map[string]string{
		"Value{0}[0]": "pointXYZ:1,2,3",
		"Value{0}[1]": "pointXYZ:4,5,6",
		"Value{1}[0]": "pointXYZ:7,8,9",
	}
	if len(props) != len(want) {
		t.Fatalf("properties = %v", props)
	}
	for key, token := range want {
		if props[key].Value != token {
			t.Errorf("%s = %+v, want %s", key, props[key], token)
		}
	}
}

func TestCaptureSkipsUnencodableProperty(t *testing.T) {
	h := memhost.New()
	swatch := mustAdd(t, h, "Colour Swatch")
	// A struct no codec owns; capture logs and moves on.
	if err := swatch.SetPropertyValue("SwatchColour", struct{ X int }{1}); err != nil {
		t.Fatal(err)
	}

	doc := newCapturer().Capture(context.Background(), h)
	if len(doc.Components) != 1 {
		t.Fatalf("components = %d", len(doc.Components))
	}
	if _, ok := doc.Components[0].Property("SwatchColour"); ok {
		t.Error("unencodable property should be skipped")
	}
}

func TestCaptureWarningsAndSelection(t *testing.T) {
	h := memhost.New()
	add := mustAdd(t, h, "Addition")
	add.SetSelected(true)
	add.(interface{ AddWarning(string) }).AddWarning("input A unset")

	doc := newCapturer().Capture(context.Background(), h)
	comp := doc.Components[0]
	if !comp.Selected {
		t.Error("selection not captured")
	}
	if len(comp.Warnings) != 1 || comp.Warnings[0] != "input A unset" {
		t.Errorf("warnings = %v", comp.Warnings)
	}
}

func TestSplitTreeKey(t *testing.T) {
	name, path, idx, ok := capture.SplitTreeKey("Value{0;1}[12]")
	if !ok || name != "Value" || path != "{0;1}" || idx != 12 {
		t.Errorf("got %q %q %d %v", name, path, idx, ok)
	}
	for _, key := range []string{"Value", "Value[0]", "Value{0}", "Value{0}[x]", "Value{0}[-1]"} {
		if _, _, _, ok := capture.SplitTreeKey(key); ok {
			t.Errorf("SplitTreeKey(%q) should fail", key)
		}
	}
}
