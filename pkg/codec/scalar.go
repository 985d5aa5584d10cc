package codec

import (
	"strconv"
	"strings"

	"github.com/snapgraph/snapgraph/pkg/errors"
	"github.com/snapgraph/snapgraph/pkg/geom"
)

// colorCodec encodes geom.Color as "argb:a,r,g,b".
func colorCodec() *Codec {
	return &Codec{
		prefix: PrefixColor,
		encode: func(v any) (string, error) {
			c, ok := v.(geom.Color)
			if !ok {
				return "", kindMismatch(PrefixColor, "geom.Color", v)
			}
			parts := []string{
				strconv.Itoa(int(c.A)),
				strconv.Itoa(int(c.R)),
				strconv.Itoa(int(c.G)),
				strconv.Itoa(int(c.B)),
			}
			return strings.Join(parts, ","), nil
		},
		decode: func(payload string) (any, error) {
			fields := strings.Split(payload, ",")
			if len(fields) != 4 {
				return nil, errors.New(errors.ErrCodeInvalidToken, "argb expects 4 fields, got %d", len(fields))
			}
			var ch [4]uint8
			for i, f := range fields {
				n, err := strconv.ParseUint(f, 10, 8)
				if err != nil {
					return nil, errors.New(errors.ErrCodeInvalidToken, "invalid color channel: %q", f)
				}
				ch[i] = uint8(n)
			}
			return geom.Color{A: ch[0], R: ch[1], G: ch[2], B: ch[3]}, nil
		},
	}
}

// boundsCodec encodes geom.Bounds as "bounds:w,h".
func boundsCodec() *Codec {
	return &Codec{
		prefix: PrefixBounds,
		encode: func(v any) (string, error) {
			b, ok := v.(geom.Bounds)
			if !ok {
				return "", kindMismatch(PrefixBounds, "geom.Bounds", v)
			}
			return formatFloat(b.Width) + "," + formatFloat(b.Height), nil
		},
		decode: func(payload string) (any, error) {
			fields := strings.Split(payload, ",")
			if len(fields) != 2 {
				return nil, errors.New(errors.ErrCodeInvalidToken, "bounds expects 2 fields, got %d", len(fields))
			}
			w, err := parseFloat(fields[0])
			if err != nil {
				return nil, err
			}
			h, err := parseFloat(fields[1])
			if err != nil {
				return nil, err
			}
			return geom.Bounds{Width: w, Height: h}, nil
		},
	}
}

// numberCodec encodes float64 as "number:1.5".
func numberCodec() *Codec {
	return &Codec{
		prefix: PrefixNumber,
		encode: func(v any) (string, error) {
			f, ok := v.(float64)
			if !ok {
				return "", kindMismatch(PrefixNumber, "float64", v)
			}
			return formatFloat(f), nil
		},
		decode: func(payload string) (any, error) {
			return parseFloat(payload)
		},
	}
}

// integerCodec encodes int as "integer:42". int64 values are accepted on the
// encode side since hosts hand counts over in either width.
func integerCodec() *Codec {
	return &Codec{
		prefix: PrefixInteger,
		encode: func(v any) (string, error) {
			switch n := v.(type) {
			case int:
				return strconv.Itoa(n), nil
			case int64:
				return strconv.FormatInt(n, 10), nil
			default:
				return "", kindMismatch(PrefixInteger, "int", v)
			}
		},
		decode: func(payload string) (any, error) {
			n, err := strconv.Atoi(payload)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidToken, "invalid integer: %q", payload)
			}
			return n, nil
		},
	}
}

// booleanCodec encodes bool as "boolean:true" / "boolean:false".
// Only the exact lowercase words are valid payloads.
func booleanCodec() *Codec {
	return &Codec{
		prefix: PrefixBoolean,
		encode: func(v any) (string, error) {
			b, ok := v.(bool)
			if !ok {
				return "", kindMismatch(PrefixBoolean, "bool", v)
			}
			return strconv.FormatBool(b), nil
		},
		decode: func(payload string) (any, error) {
			switch payload {
			case "true":
				return true, nil
			case "false":
				return false, nil
			default:
				return nil, errors.New(errors.ErrCodeInvalidToken, "invalid boolean: %q", payload)
			}
		},
	}
}

// textCodec encodes string as "text:<payload>". The payload is the raw
// string, so any character including separators and colons round-trips.
func textCodec() *Codec {
	return &Codec{
		prefix: PrefixText,
		encode: func(v any) (string, error) {
			s, ok := v.(string)
			if !ok {
				return "", kindMismatch(PrefixText, "string", v)
			}
			return s, nil
		},
		decode: func(payload string) (any, error) {
			return payload, nil
		},
	}
}
