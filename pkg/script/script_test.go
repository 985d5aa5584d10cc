package script

import (
	"strings"
	"testing"
)

const csharpSource = `using System;

public class Script_Instance
{
  private void RunScript(List<Curve> curveList, int count, ref object result)
  {
    var total = Sum(curveList, count);
    result = total;
  }

  private double Sum(List<Curve> curves, int n) { return 0; }
}
`

func TestCSharpExtract(t *testing.T) {
	tests := []struct {
		name     string
		varName  string
		wantType string
		wantOK   bool
	}{
		{"FirstInput", "curveList", "List<Curve>", true},
		{"SecondInput", "count", "int", true},
		{"Output", "result", "object", true},
		{"NoMatch", "missing", "", false},
		{"CaseSensitive", "CurveList", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract("csharp", csharpSource, tt.varName)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.wantType {
				t.Errorf("type = %q, want %q", got, tt.wantType)
			}
		})
	}
}

func TestCSharpExtractSanitizedName(t *testing.T) {
	// The display name "Curve List" sanitizes to the signature's variable name.
	src := "private void RunScript(double Curve_x20List, ref object a)\n{\n}"
	got, ok := Extract("csharp", src, "Curve List")
	if !ok || got != "double" {
		t.Errorf("Extract = %q, %v; want double, true", got, ok)
	}
}

func TestCSharpExtractNoSignature(t *testing.T) {
	if _, ok := Extract("csharp", "int x = 1;", "x"); ok {
		t.Error("expected no hint without an entry-point signature")
	}
}

func TestCSharpExtractMultiArgGeneric(t *testing.T) {
	// The inner comma of a multi-argument generic must not break the split.
	src := "private void RunScript(Dictionary<string, Curve> table, int n, ref object result)\n{\n}"

	got, ok := Extract("csharp", src, "table")
	if !ok || got != "Dictionary<string, Curve>" {
		t.Errorf("table type = %q, %v; want Dictionary<string, Curve>, true", got, ok)
	}
	got, ok = Extract("csharp", src, "n")
	if !ok || got != "int" {
		t.Errorf("n type = %q, %v; want int, true", got, ok)
	}
}

func TestCSharpInject(t *testing.T) {
	inputs := []TypeHint{
		{Name: "curveList", Type: "List<Brep>"},
		{Name: "count", Type: ""}, // empty hint preserves the original type
	}
	outputs := []TypeHint{
		{Name: "result", Type: "double"},
	}

	got := Inject("csharp", csharpSource, inputs, outputs)

	if !strings.Contains(got, "RunScript(List<Brep> curveList, int count, ref double result)") {
		t.Errorf("signature not rewritten as expected:\n%s", got)
	}
	// The body and the unrelated helper method stay untouched.
	if !strings.Contains(got, "var total = Sum(curveList, count);") {
		t.Error("function body was modified")
	}
	if !strings.Contains(got, "private double Sum(List<Curve> curves, int n) { return 0; }") {
		t.Error("helper method was modified")
	}
}

func TestCSharpInjectPreservesOrderAndQualifier(t *testing.T) {
	src := "private void RunScript(int a, ref object x, double b, out object y)\n{\n}"
	got := Inject("csharp", src,
		[]TypeHint{{Name: "a", Type: "string"}, {Name: "b"}},
		[]TypeHint{{Name: "x", Type: "Curve"}, {Name: "y", Type: "Point3d"}},
	)
	want := "private void RunScript(string a, ref Curve x, double b, out Point3d y)\n{\n}"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestCSharpInjectNoSignature(t *testing.T) {
	src := "int x = 1;"
	if got := Inject("csharp", src, nil, nil); got != src {
		t.Errorf("source changed without a signature: %q", got)
	}
}

func TestCSharpInjectMoreParamsThanHints(t *testing.T) {
	src := "private void RunScript(int a, int b, ref object r)\n{\n}"
	got := Inject("csharp", src, []TypeHint{{Name: "a", Type: "double"}}, nil)
	want := "private void RunScript(double a, int b, ref object r)\n{\n}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPythonDialect(t *testing.T) {
	src := "def RunScript(x, y):\n    return x + y\n"

	if _, ok := Extract("python", src, "x"); ok {
		t.Error("python dialect must never report a type hint")
	}
	if got := Inject("python", src, []TypeHint{{Name: "x", Type: "int"}}, nil); got != src {
		t.Error("python inject must return the source unchanged")
	}
}

func TestUnknownDialect(t *testing.T) {
	if _, ok := Extract("fortran", "x", "x"); ok {
		t.Error("unknown dialect must extract nothing")
	}
	if got := Inject("fortran", "x", nil, nil); got != "x" {
		t.Error("unknown dialect must inject nothing")
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"csharp", "python"} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("dialect %q not registered", name)
		}
	}
	if _, ok := Lookup("lua"); ok {
		t.Error("unexpected dialect registration")
	}
}
