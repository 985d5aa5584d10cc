package codec

import (
	"strconv"
	"strings"

	"github.com/snapgraph/snapgraph/pkg/errors"
	"github.com/snapgraph/snapgraph/pkg/geom"
)

// formatFloat writes a float with strconv's shortest round-trip form.
// The output always uses "." as the decimal separator and no grouping,
// independent of the process locale.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// parseFloat parses a single numeric field. No surrounding whitespace is
// tolerated; tokens are machine-written, not hand-edited.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidToken, "invalid numeric field: %q", s)
	}
	return f, nil
}

// groups splits a payload on ";" into its component groups.
func groups(payload string) []string {
	return strings.Split(payload, ";")
}

// formatTriple writes an x,y,z group.
func formatTriple(x, y, z float64) string {
	return formatFloat(x) + "," + formatFloat(y) + "," + formatFloat(z)
}

// parseTriple parses an x,y,z group. Exactly three fields are required.
func parseTriple(group string) (x, y, z float64, err error) {
	fields := strings.Split(group, ",")
	if len(fields) != 3 {
		return 0, 0, 0, errors.New(errors.ErrCodeInvalidToken, "expected 3 fields in group %q, got %d", group, len(fields))
	}
	if x, err = parseFloat(fields[0]); err != nil {
		return 0, 0, 0, err
	}
	if y, err = parseFloat(fields[1]); err != nil {
		return 0, 0, 0, err
	}
	if z, err = parseFloat(fields[2]); err != nil {
		return 0, 0, 0, err
	}
	return x, y, z, nil
}

// formatPoint and parsePoint handle Point3 groups.
func formatPoint(p geom.Point3) string { return formatTriple(p.X, p.Y, p.Z) }

func parsePoint(group string) (geom.Point3, error) {
	x, y, z, err := parseTriple(group)
	if err != nil {
		return geom.Point3{}, err
	}
	return geom.Point3{X: x, Y: y, Z: z}, nil
}

// formatVector and parseVector handle Vector3 groups.
func formatVector(v geom.Vector3) string { return formatTriple(v.X, v.Y, v.Z) }

func parseVector(group string) (geom.Vector3, error) {
	x, y, z, err := parseTriple(group)
	if err != nil {
		return geom.Vector3{}, err
	}
	return geom.Vector3{X: x, Y: y, Z: z}, nil
}

// formatInterval writes an "a<b" interval group.
func formatInterval(iv geom.Interval) string {
	return formatFloat(iv.Min) + "<" + formatFloat(iv.Max)
}

// parseInterval parses an "a<b" interval group.
func parseInterval(group string) (geom.Interval, error) {
	lo, hi, found := strings.Cut(group, "<")
	if !found {
		return geom.Interval{}, errors.New(errors.ErrCodeInvalidToken, "interval %q missing '<' separator", group)
	}
	min, err := parseFloat(lo)
	if err != nil {
		return geom.Interval{}, err
	}
	max, err := parseFloat(hi)
	if err != nil {
		return geom.Interval{}, err
	}
	return geom.Interval{Min: min, Max: max}, nil
}

// kindMismatch builds the standard argument-kind error naming the expected
// and actual runtime types.
func kindMismatch(prefix, expected string, got any) error {
	return errors.New(errors.ErrCodeKindMismatch, "%s expects %s, got %T", prefix, expected, got)
}

// wantGroups checks the group count for a payload.
func wantGroups(prefix string, gs []string, n int) error {
	if len(gs) != n {
		return errors.New(errors.ErrCodeInvalidToken, "%s expects %d groups, got %d", prefix, n, len(gs))
	}
	return nil
}
