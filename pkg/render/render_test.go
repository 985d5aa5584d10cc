package render

import (
	"strings"
	"testing"

	"github.com/snapgraph/snapgraph/pkg/document"
)

func sampleDocument() *document.Document {
	return &document.Document{
		Components: []document.Component{
			{Name: "Number Slider", ComponentGUID: "g1", InstanceGUID: "i1"},
			{Name: "Addition", ComponentGUID: "g2", InstanceGUID: "i2",
				Warnings: []string{"input B unset"}},
		},
		Connections: []document.Connection{
			{
				From: document.Endpoint{InstanceID: "i1", Name: "Value"},
				To:   document.Endpoint{InstanceID: "i2", Name: "A"},
			},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleDocument(), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		`"i1" [label="Number Slider"];`,
		`"i1" -> "i2" [taillabel="Value", headlabel="A", fontsize=10];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTWarningOutline(t *testing.T) {
	dot := ToDOT(sampleDocument(), Options{})
	if !strings.Contains(dot, "color=orange") {
		t.Errorf("warning outline missing:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	doc := sampleDocument()
	doc.Components[0].Properties = map[string]document.PropertyValue{
		"Value": {Value: "number:1", Type: "number"},
	}

	dot := ToDOT(doc, Options{Detailed: true})
	for _, want := range []string{"id: i1", "props: Value"} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTEscapesQuotes(t *testing.T) {
	doc := &document.Document{
		Components: []document.Component{
			{Name: `Panel "notes"`, InstanceGUID: "i1"},
		},
	}
	dot := ToDOT(doc, Options{})
	if !strings.Contains(dot, `label="Panel \"notes\""`) {
		t.Errorf("quotes not escaped:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 100.75 60.00">`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.75 60.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="101" height="60"`) {
		t.Errorf("dimensions not set: %s", out)
	}
}
