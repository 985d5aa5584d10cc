package codec

import (
	"github.com/snapgraph/snapgraph/pkg/errors"
	"github.com/snapgraph/snapgraph/pkg/geom"
)

// pointCodec encodes geom.Point3 as "pointXYZ:x,y,z".
func pointCodec() *Codec {
	return &Codec{
		prefix: PrefixPoint,
		encode: func(v any) (string, error) {
			p, ok := v.(geom.Point3)
			if !ok {
				return "", kindMismatch(PrefixPoint, "geom.Point3", v)
			}
			return formatPoint(p), nil
		},
		decode: func(payload string) (any, error) {
			return parsePoint(payload)
		},
	}
}

// vectorCodec encodes geom.Vector3 as "vectorXYZ:x,y,z".
func vectorCodec() *Codec {
	return &Codec{
		prefix: PrefixVector,
		encode: func(v any) (string, error) {
			vec, ok := v.(geom.Vector3)
			if !ok {
				return "", kindMismatch(PrefixVector, "geom.Vector3", v)
			}
			return formatVector(vec), nil
		},
		decode: func(payload string) (any, error) {
			return parseVector(payload)
		},
	}
}

// lineCodec encodes geom.Line as "line2p:x1,y1,z1;x2,y2,z2".
func lineCodec() *Codec {
	return &Codec{
		prefix: PrefixLine,
		encode: func(v any) (string, error) {
			l, ok := v.(geom.Line)
			if !ok {
				return "", kindMismatch(PrefixLine, "geom.Line", v)
			}
			return formatPoint(l.From) + ";" + formatPoint(l.To), nil
		},
		decode: func(payload string) (any, error) {
			gs := groups(payload)
			if err := wantGroups(PrefixLine, gs, 2); err != nil {
				return nil, err
			}
			from, err := parsePoint(gs[0])
			if err != nil {
				return nil, err
			}
			to, err := parsePoint(gs[1])
			if err != nil {
				return nil, err
			}
			return geom.Line{From: from, To: to}, nil
		},
	}
}

// planeCodec encodes geom.Plane as "planeOXY:origin;xaxis;yaxis".
func planeCodec() *Codec {
	return &Codec{
		prefix: PrefixPlane,
		encode: func(v any) (string, error) {
			p, ok := v.(geom.Plane)
			if !ok {
				return "", kindMismatch(PrefixPlane, "geom.Plane", v)
			}
			if p.IsDegenerate() {
				return "", errors.New(errors.ErrCodeInvalidInput, "plane has a zero axis")
			}
			return formatPoint(p.Origin) + ";" + formatVector(p.XAxis) + ";" + formatVector(p.YAxis), nil
		},
		decode: func(payload string) (any, error) {
			p, err := decodePlaneGroups(groups(payload))
			if err != nil {
				return nil, err
			}
			return p, nil
		},
	}
}

// decodePlaneGroups parses the three origin/xaxis/yaxis groups shared by
// the plane and rectangle codecs.
func decodePlaneGroups(gs []string) (geom.Plane, error) {
	if err := wantGroups(PrefixPlane, gs, 3); err != nil {
		return geom.Plane{}, err
	}
	origin, err := parsePoint(gs[0])
	if err != nil {
		return geom.Plane{}, err
	}
	xaxis, err := parseVector(gs[1])
	if err != nil {
		return geom.Plane{}, err
	}
	yaxis, err := parseVector(gs[2])
	if err != nil {
		return geom.Plane{}, err
	}
	p := geom.Plane{Origin: origin, XAxis: xaxis, YAxis: yaxis}
	if p.IsDegenerate() {
		return geom.Plane{}, errors.New(errors.ErrCodeInvalidToken, "plane has a zero axis")
	}
	return p, nil
}

// circleCodec encodes geom.Circle as "circleCNRS:center;normal;radius;start".
// The start point recovers the circle's orientation; an internal reference
// frame cannot be serialized directly.
func circleCodec() *Codec {
	return &Codec{
		prefix: PrefixCircle,
		encode: func(v any) (string, error) {
			c, ok := v.(geom.Circle)
			if !ok {
				return "", kindMismatch(PrefixCircle, "geom.Circle", v)
			}
			if c.IsDegenerate() {
				return "", errors.New(errors.ErrCodeInvalidInput, "degenerate circle (radius %g)", c.Radius)
			}
			return formatPoint(c.Center) + ";" + formatVector(c.Normal) + ";" + formatFloat(c.Radius) + ";" + formatPoint(c.Start), nil
		},
		decode: func(payload string) (any, error) {
			gs := groups(payload)
			if err := wantGroups(PrefixCircle, gs, 4); err != nil {
				return nil, err
			}
			center, err := parsePoint(gs[0])
			if err != nil {
				return nil, err
			}
			normal, err := parseVector(gs[1])
			if err != nil {
				return nil, err
			}
			radius, err := parseFloat(gs[2])
			if err != nil {
				return nil, err
			}
			start, err := parsePoint(gs[3])
			if err != nil {
				return nil, err
			}
			c := geom.Circle{Center: center, Normal: normal, Radius: radius, Start: start}
			if c.IsDegenerate() {
				return nil, errors.New(errors.ErrCodeInvalidToken, "degenerate circle (radius %g)", radius)
			}
			return c, nil
		},
	}
}

// arcCodec encodes geom.Arc as "arcCNRAB:center;normal;radius;a;b" where a
// and b are the start and end angles in radians.
func arcCodec() *Codec {
	return &Codec{
		prefix: PrefixArc,
		encode: func(v any) (string, error) {
			a, ok := v.(geom.Arc)
			if !ok {
				return "", kindMismatch(PrefixArc, "geom.Arc", v)
			}
			if a.IsDegenerate() {
				return "", errors.New(errors.ErrCodeInvalidInput, "degenerate arc (radius %g)", a.Radius)
			}
			return formatPoint(a.Center) + ";" + formatVector(a.Normal) + ";" + formatFloat(a.Radius) +
				";" + formatFloat(a.StartAngle) + ";" + formatFloat(a.EndAngle), nil
		},
		decode: func(payload string) (any, error) {
			gs := groups(payload)
			if err := wantGroups(PrefixArc, gs, 5); err != nil {
				return nil, err
			}
			center, err := parsePoint(gs[0])
			if err != nil {
				return nil, err
			}
			normal, err := parseVector(gs[1])
			if err != nil {
				return nil, err
			}
			radius, err := parseFloat(gs[2])
			if err != nil {
				return nil, err
			}
			start, err := parseFloat(gs[3])
			if err != nil {
				return nil, err
			}
			end, err := parseFloat(gs[4])
			if err != nil {
				return nil, err
			}
			a := geom.Arc{Center: center, Normal: normal, Radius: radius, StartAngle: start, EndAngle: end}
			if a.IsDegenerate() {
				return nil, errors.New(errors.ErrCodeInvalidToken, "degenerate arc (radius %g)", radius)
			}
			return a, nil
		},
	}
}

// boxCodec encodes geom.Box as "box2p:min;max".
func boxCodec() *Codec {
	return &Codec{
		prefix: PrefixBox,
		encode: func(v any) (string, error) {
			b, ok := v.(geom.Box)
			if !ok {
				return "", kindMismatch(PrefixBox, "geom.Box", v)
			}
			return formatPoint(b.Min) + ";" + formatPoint(b.Max), nil
		},
		decode: func(payload string) (any, error) {
			gs := groups(payload)
			if err := wantGroups(PrefixBox, gs, 2); err != nil {
				return nil, err
			}
			min, err := parsePoint(gs[0])
			if err != nil {
				return nil, err
			}
			max, err := parsePoint(gs[1])
			if err != nil {
				return nil, err
			}
			return geom.Box{Min: min, Max: max}, nil
		},
	}
}

// rectangleCodec encodes geom.Rectangle as
// "rectangleOXY:origin;xaxis;yaxis;x0<x1;y0<y1".
func rectangleCodec() *Codec {
	return &Codec{
		prefix: PrefixRectangle,
		encode: func(v any) (string, error) {
			r, ok := v.(geom.Rectangle)
			if !ok {
				return "", kindMismatch(PrefixRectangle, "geom.Rectangle", v)
			}
			if r.Plane.IsDegenerate() {
				return "", errors.New(errors.ErrCodeInvalidInput, "rectangle plane has a zero axis")
			}
			return formatPoint(r.Plane.Origin) + ";" + formatVector(r.Plane.XAxis) + ";" + formatVector(r.Plane.YAxis) +
				";" + formatInterval(r.X) + ";" + formatInterval(r.Y), nil
		},
		decode: func(payload string) (any, error) {
			gs := groups(payload)
			if err := wantGroups(PrefixRectangle, gs, 5); err != nil {
				return nil, err
			}
			plane, err := decodePlaneGroups(gs[:3])
			if err != nil {
				return nil, err
			}
			x, err := parseInterval(gs[3])
			if err != nil {
				return nil, err
			}
			y, err := parseInterval(gs[4])
			if err != nil {
				return nil, err
			}
			return geom.Rectangle{Plane: plane, X: x, Y: y}, nil
		},
	}
}

// domainCodec encodes geom.Interval as "domain:a<b".
func domainCodec() *Codec {
	return &Codec{
		prefix: PrefixDomain,
		encode: func(v any) (string, error) {
			iv, ok := v.(geom.Interval)
			if !ok {
				return "", kindMismatch(PrefixDomain, "geom.Interval", v)
			}
			return formatInterval(iv), nil
		},
		decode: func(payload string) (any, error) {
			return parseInterval(payload)
		},
	}
}
