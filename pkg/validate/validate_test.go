package validate_test

import (
	"strings"
	"testing"

	"github.com/snapgraph/snapgraph/pkg/codec"
	"github.com/snapgraph/snapgraph/pkg/document"
	"github.com/snapgraph/snapgraph/pkg/host/memhost"
	"github.com/snapgraph/snapgraph/pkg/validate"
)

func newValidator() *validate.Validator {
	return validate.New(codec.Default(), memhost.New().Types())
}

func validDocument() *document.Document {
	return &document.Document{
		Components: []document.Component{
			{
				Name:          "Number Slider",
				ComponentGUID: memhost.GUIDSlider,
				InstanceGUID:  "11111111-1111-1111-1111-111111111111",
				Properties: map[string]document.PropertyValue{
					"Value": {Value: "text:3;0;10;2.5", Type: "text"},
				},
			},
			{
				Name:          "Addition",
				ComponentGUID: memhost.GUIDAddition,
				InstanceGUID:  "22222222-2222-2222-2222-222222222222",
			},
		},
		Connections: []document.Connection{
			{
				From: document.Endpoint{InstanceID: "11111111-1111-1111-1111-111111111111", Name: "Value"},
				To:   document.Endpoint{InstanceID: "22222222-2222-2222-2222-222222222222", Name: "A"},
			},
		},
	}
}

func TestValidDocumentPasses(t *testing.T) {
	report := newValidator().Validate(validDocument())
	if !report.OK() {
		t.Errorf("errors = %+v", report.Errors)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("warnings = %+v", report.Warnings)
	}
}

func TestStructuralPhase(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"broken json", `{invalid`, "malformed JSON"},
		{"missing components", `{"connections": []}`, `missing "components"`},
		{"missing connections", `{"components": []}`, `missing "connections"`},
		{"components not array", `{"components": {}, "connections": []}`, "must be an array"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, report := newValidator().ValidateBytes([]byte(tc.input))
			if doc != nil || report.OK() {
				t.Fatalf("expected structural failure, report = %+v", report)
			}
			if !strings.Contains(report.Errors[0].Message, tc.want) {
				t.Errorf("error = %q, want substring %q", report.Errors[0].Message, tc.want)
			}
		})
	}
}

func TestStructuralPassesIntoSemantic(t *testing.T) {
	data, err := document.Marshal(validDocument())
	if err != nil {
		t.Fatal(err)
	}
	doc, report := newValidator().ValidateBytes(data)
	if doc == nil || !report.OK() {
		t.Errorf("report = %+v", report)
	}
}

func TestDuplicateInstanceID(t *testing.T) {
	doc := validDocument()
	doc.Components[1].InstanceGUID = doc.Components[0].InstanceGUID
	doc.Connections = nil

	report := newValidator().Validate(doc)
	if report.OK() {
		t.Fatal("expected error for duplicate instance id")
	}
	if !strings.Contains(report.Errors[0].Message, "duplicate") {
		t.Errorf("error = %+v", report.Errors[0])
	}
}

func TestUnknownComponentTypeIsError(t *testing.T) {
	doc := validDocument()
	doc.Components[1].ComponentGUID = "99999999-9999-9999-9999-999999999999"
	doc.Components[1].Name = "Not A Real Node"
	doc.Connections = nil

	report := newValidator().Validate(doc)
	if report.OK() {
		t.Fatal("expected error for unknown type")
	}
	if !strings.Contains(report.Errors[0].Message, "unknown component type") {
		t.Errorf("error = %+v", report.Errors[0])
	}
}

func TestUnknownGUIDKnownNameIsInfo(t *testing.T) {
	doc := validDocument()
	doc.Components[1].ComponentGUID = "99999999-9999-9999-9999-999999999999"
	doc.Connections = nil

	report := newValidator().Validate(doc)
	if !report.OK() {
		t.Fatalf("errors = %+v", report.Errors)
	}
	if len(report.Infos) == 0 || !strings.Contains(report.Infos[0].Message, "display name") {
		t.Errorf("infos = %+v", report.Infos)
	}
}

func TestInvalidTokenIsError(t *testing.T) {
	doc := validDocument()
	doc.Components[0].Properties["Value"] = document.PropertyValue{Value: "pointXYZ:1,2", Type: "pointXYZ"}

	report := newValidator().Validate(doc)
	if report.OK() {
		t.Fatal("expected error for invalid token")
	}
	if !strings.Contains(report.Errors[0].Message, "invalid token") {
		t.Errorf("error = %+v", report.Errors[0])
	}
}

func TestDanglingConnectionIsError(t *testing.T) {
	doc := validDocument()
	doc.Connections[0].To.InstanceID = "33333333-3333-3333-3333-333333333333"

	report := newValidator().Validate(doc)
	if report.OK() {
		t.Fatal("expected error for dangling connection")
	}
}

func TestTypeMismatchIsWarningOnly(t *testing.T) {
	doc := validDocument()
	// Colour output into a numeric input: dubious but not fatal.
	doc.Components[0] = document.Component{
		Name:          "Colour Swatch",
		ComponentGUID: memhost.GUIDColourSwatch,
		InstanceGUID:  "11111111-1111-1111-1111-111111111111",
	}
	doc.Connections[0].From.Name = "Colour"

	report := newValidator().Validate(doc)
	if !report.OK() {
		t.Fatalf("mismatch must not be an error: %+v", report.Errors)
	}
	if len(report.Warnings) == 0 || !strings.Contains(report.Warnings[0].Message, "may not convert") {
		t.Errorf("warnings = %+v", report.Warnings)
	}
}

func TestUnknownParameterIsWarning(t *testing.T) {
	doc := validDocument()
	doc.Connections[0].To.Name = "Nope"

	report := newValidator().Validate(doc)
	if !report.OK() {
		t.Fatalf("errors = %+v", report.Errors)
	}
	if len(report.Warnings) == 0 || !strings.Contains(report.Warnings[0].Message, "no input") {
		t.Errorf("warnings = %+v", report.Warnings)
	}
}

func TestBadAccessVocabulary(t *testing.T) {
	doc := validDocument()
	doc.Components[1].Inputs = []document.ParameterSettings{
		{ParameterName: "x", Access: "sideways"},
	}

	report := newValidator().Validate(doc)
	if report.OK() {
		t.Fatal("expected error for unknown access mode")
	}
}

func TestUnknownDialectIsWarning(t *testing.T) {
	doc := validDocument()
	doc.Components[1].Properties = map[string]document.PropertyValue{
		"Dialect": {Value: "text:fortran", Type: "text"},
	}

	report := newValidator().Validate(doc)
	if !report.OK() {
		t.Fatalf("errors = %+v", report.Errors)
	}
	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w.Message, "dialect") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %+v", report.Warnings)
	}
}

func TestCompatible(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{"double", "double", true},
		{"Double", "double", true},
		{"int", "double", true},
		{"object", "Curve", true},
		{"Curve", "object", true},
		{"Point3d", "Curve", true},
		{"Colour", "String", true},
		{"Colour", "double", false},
		{"Curve", "double", false},
		{"Colour", "Colour", true},
	}
	for _, tc := range cases {
		if got := validate.Compatible(tc.from, tc.to); got != tc.want {
			t.Errorf("Compatible(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
