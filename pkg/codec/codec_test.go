package codec

import (
	"math"
	"strings"
	"testing"

	"github.com/snapgraph/snapgraph/pkg/errors"
	"github.com/snapgraph/snapgraph/pkg/geom"
)

const tol = 1e-12

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		value      any
		wantPrefix string
	}{
		{"Point", geom.Point3{X: 1.5, Y: -2, Z: 0}, "pointXYZ"},
		{"Vector", geom.Vector3{X: 0, Y: 0, Z: 1}, "vectorXYZ"},
		{"Line", geom.Line{From: geom.Point3{X: 0.25, Y: 0, Z: 0}, To: geom.Point3{X: 10, Y: -3.5, Z: 2}}, "line2p"},
		{
			"Plane",
			geom.Plane{
				Origin: geom.Point3{X: 1, Y: 2, Z: 3},
				XAxis:  geom.Vector3{X: 1, Y: 0, Z: 0},
				YAxis:  geom.Vector3{X: 0, Y: 1, Z: 0},
			},
			"planeOXY",
		},
		{
			"Circle",
			geom.Circle{
				Center: geom.Point3{X: 0, Y: 0, Z: 0},
				Normal: geom.Vector3{X: 0, Y: 0, Z: 1},
				Radius: 2.5,
				Start:  geom.Point3{X: 2.5, Y: 0, Z: 0},
			},
			"circleCNRS",
		},
		{
			"Arc",
			geom.Arc{
				Center:     geom.Point3{X: 1, Y: 1, Z: 0},
				Normal:     geom.Vector3{X: 0, Y: 0, Z: 1},
				Radius:     4,
				StartAngle: 0,
				EndAngle:   math.Pi / 2,
			},
			"arcCNRAB",
		},
		{"Box", geom.Box{Min: geom.Point3{X: -1, Y: -1, Z: -1}, Max: geom.Point3{X: 1, Y: 1, Z: 1}}, "box2p"},
		{
			"Rectangle",
			geom.Rectangle{
				Plane: geom.Plane{
					Origin: geom.Point3{},
					XAxis:  geom.Vector3{X: 1},
					YAxis:  geom.Vector3{Y: 1},
				},
				X: geom.Interval{Min: 0, Max: 10},
				Y: geom.Interval{Min: -5, Max: 5},
			},
			"rectangleOXY",
		},
		{"Domain", geom.Interval{Min: -0.5, Max: 1.25}, "domain"},
		{"Color", geom.Color{A: 255, R: 128, G: 0, B: 64}, "argb"},
		{"Bounds", geom.Bounds{Width: 1920, Height: 1080.5}, "bounds"},
		{"Number", 3.14159, "number"},
		{"Integer", 42, "integer"},
		{"Boolean", true, "boolean"},
		{"Text", "hello, world; a<b:c", "text"},
	}

	reg := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := reg.Encode(tt.value)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !strings.HasPrefix(tok, tt.wantPrefix+":") {
				t.Fatalf("token = %q, want prefix %q", tok, tt.wantPrefix)
			}
			if !reg.Validate(tok) {
				t.Fatalf("Validate(%q) = false, want true", tok)
			}

			got, err := reg.Decode(tok)
			if err != nil {
				t.Fatalf("Decode(%q): %v", tok, err)
			}
			assertValueEqual(t, tt.value, got)
		})
	}
}

// assertValueEqual compares decoded values against their originals within
// floating-point tolerance.
func assertValueEqual(t *testing.T, want, got any) {
	t.Helper()
	switch w := want.(type) {
	case float64:
		g, ok := got.(float64)
		if !ok || !almostEqual(w, g) {
			t.Errorf("got %v, want %v", got, want)
		}
	case geom.Point3:
		g := got.(geom.Point3)
		if !almostEqual(w.X, g.X) || !almostEqual(w.Y, g.Y) || !almostEqual(w.Z, g.Z) {
			t.Errorf("got %+v, want %+v", g, w)
		}
	case geom.Arc:
		g := got.(geom.Arc)
		if !almostEqual(w.Radius, g.Radius) || !almostEqual(w.StartAngle, g.StartAngle) || !almostEqual(w.EndAngle, g.EndAngle) {
			t.Errorf("got %+v, want %+v", g, w)
		}
	default:
		if got != want {
			t.Errorf("got %#v, want %#v", got, want)
		}
	}
}

func TestPointTokenForm(t *testing.T) {
	tok, err := Default().Encode(geom.Point3{X: 1.5, Y: -2, Z: 0})
	if err != nil {
		t.Fatal(err)
	}
	if tok != "pointXYZ:1.5,-2,0" {
		t.Errorf("token = %q, want %q", tok, "pointXYZ:1.5,-2,0")
	}
}

func TestValidateRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"ColorWrongFieldCount", "argb:255,0"},
		{"ColorChannelOverflow", "argb:255,0,0,300"},
		{"PointTwoFields", "pointXYZ:1,2"},
		{"PointFourFields", "pointXYZ:1,2,3,4"},
		{"PointBadNumber", "pointXYZ:1,abc,3"},
		{"LineOneGroup", "line2p:1,2,3"},
		{"PlaneTwoGroups", "planeOXY:0,0,0;1,0,0"},
		{"PlaneZeroAxis", "planeOXY:0,0,0;0,0,0;0,1,0"},
		{"CircleZeroRadius", "circleCNRS:0,0,0;0,0,1;0;1,0,0"},
		{"CircleNegativeRadius", "circleCNRS:0,0,0;0,0,1;-2;1,0,0"},
		{"CircleZeroNormal", "circleCNRS:0,0,0;0,0,0;1;1,0,0"},
		{"ArcZeroRadius", "arcCNRAB:0,0,0;0,0,1;0;0;1"},
		{"ArcMissingAngle", "arcCNRAB:0,0,0;0,0,1;2;0"},
		{"DomainNoSeparator", "domain:1,2"},
		{"DomainBadBound", "domain:a<2"},
		{"IntegerFloat", "integer:1.5"},
		{"BooleanYes", "boolean:yes"},
		{"BooleanCase", "boolean:True"},
		{"BoundsOneField", "bounds:100"},
		{"RectangleFourGroups", "rectangleOXY:0,0,0;1,0,0;0,1,0;0<1"},
		{"UnknownPrefix", "quaternion:1,2,3,4"},
		{"NoPrefix", "1,2,3"},
		{"EmptyPrefix", ":payload"},
		{"Empty", ""},
	}

	reg := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if reg.Validate(tt.token) {
				t.Errorf("Validate(%q) = true, want false", tt.token)
			}
			if _, err := reg.Decode(tt.token); err == nil {
				t.Errorf("Decode(%q) succeeded, want error", tt.token)
			}
		})
	}
}

func TestSerializeKindMismatch(t *testing.T) {
	reg := Default()

	point, _ := reg.Lookup(PrefixPoint)
	_, err := point.Serialize("not a point")
	if err == nil {
		t.Fatal("expected kind mismatch error")
	}
	if !errors.Is(err, errors.ErrCodeKindMismatch) {
		t.Errorf("code = %v, want KIND_MISMATCH", errors.GetCode(err))
	}
	if !strings.Contains(err.Error(), "geom.Point3") || !strings.Contains(err.Error(), "string") {
		t.Errorf("error should name expected and actual types: %v", err)
	}
}

func TestEncodeUnregisteredType(t *testing.T) {
	type alien struct{}
	_, err := Default().Encode(alien{})
	if !errors.Is(err, errors.ErrCodeKindMismatch) {
		t.Errorf("code = %v, want KIND_MISMATCH", errors.GetCode(err))
	}
}

func TestDecodeErrorCode(t *testing.T) {
	_, err := Default().Decode("pointXYZ:1,2")
	if !errors.Is(err, errors.ErrCodeInvalidToken) {
		t.Errorf("code = %v, want INVALID_TOKEN", errors.GetCode(err))
	}
}

func TestTextPreservesSeparators(t *testing.T) {
	reg := Default()
	const s = "a;b,c<d:e"
	tok, err := reg.Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	got, err := reg.Decode(tok)
	if err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Errorf("got %q, want %q", got, s)
	}
}

func TestIntegerAcceptsInt64(t *testing.T) {
	c, _ := Default().Lookup(PrefixInteger)
	tok, err := c.Serialize(int64(7))
	if err != nil {
		t.Fatal(err)
	}
	if tok != "integer:7" {
		t.Errorf("token = %q, want integer:7", tok)
	}
}

func TestFloatFormattingIsLocaleIndependent(t *testing.T) {
	// Shortest round-trip formatting must use "." and no grouping.
	tok, err := Default().Encode(1234567.25)
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(tok, " ' ") {
		t.Errorf("token contains grouping characters: %q", tok)
	}
	got, err := Default().Decode(tok)
	if err != nil {
		t.Fatal(err)
	}
	if got.(float64) != 1234567.25 {
		t.Errorf("round trip = %v, want 1234567.25", got)
	}
}
