// Package codec encodes typed runtime values as self-describing text tokens
// and decodes them back.
//
// Tokens are the one wire-format contract of a snapgraph document that must
// stay byte-stable across versions: externally generated documents are
// expected to produce them without access to any live host. A token has the
// form
//
//	<prefix>:<payload>
//
// where the prefix names the value type ("pointXYZ", "argb", "domain", ...)
// and the payload is one or more numeric groups. Fields within a point or
// vector group are separated by ",", groups by ";", and interval bounds
// by "<". All floating-point fields are written with strconv's shortest
// round-trip formatting ("." separator, no grouping), so tokens are
// byte-identical regardless of the process locale.
//
// # Contract
//
// Each codec provides three operations:
//
//	Serialize(value) -> token   // argument-kind error on wrong runtime type
//	Deserialize(token) -> value // format error if the payload grammar fails
//	Validate(token) -> bool     // non-throwing pre-check
//
// Codecs never coerce mismatched types and never panic on malformed input.
// Degenerate geometry (e.g. radius <= 0 for circles and arcs) is rejected
// by Validate and Deserialize.
package codec

import (
	"strings"

	"github.com/snapgraph/snapgraph/pkg/errors"
)

// Token prefixes understood by the default registry.
const (
	PrefixPoint     = "pointXYZ"
	PrefixVector    = "vectorXYZ"
	PrefixLine      = "line2p"
	PrefixPlane     = "planeOXY"
	PrefixCircle    = "circleCNRS"
	PrefixArc       = "arcCNRAB"
	PrefixBox       = "box2p"
	PrefixRectangle = "rectangleOXY"
	PrefixDomain    = "domain"
	PrefixColor     = "argb"
	PrefixNumber    = "number"
	PrefixInteger   = "integer"
	PrefixBoolean   = "boolean"
	PrefixText      = "text"
	PrefixBounds    = "bounds"
)

// Codec converts one value type to and from its token payload.
// The zero value is not usable; codecs are constructed by this package
// and looked up through a Registry.
type Codec struct {
	prefix string
	encode func(v any) (string, error)   // payload only
	decode func(payload string) (any, error)
}

// Prefix returns the token prefix this codec owns.
func (c *Codec) Prefix() string { return c.prefix }

// Serialize encodes v as a full "<prefix>:<payload>" token.
// Returns a KIND_MISMATCH error if v's runtime type does not match the
// codec's expected type, naming both the expected and actual type.
func (c *Codec) Serialize(v any) (string, error) {
	payload, err := c.encode(v)
	if err != nil {
		return "", err
	}
	return c.prefix + ":" + payload, nil
}

// Deserialize decodes a full token back to its runtime value.
// Returns an INVALID_TOKEN error if the prefix does not match this codec
// or the payload does not satisfy the grammar.
func (c *Codec) Deserialize(token string) (any, error) {
	prefix, payload, ok := Split(token)
	if !ok || prefix != c.prefix {
		return nil, errors.New(errors.ErrCodeInvalidToken, "expected %q token, got %q", c.prefix, token)
	}
	return c.decode(payload)
}

// Validate reports whether token would deserialize successfully.
// It never returns an error and never panics.
func (c *Codec) Validate(token string) bool {
	_, err := c.Deserialize(token)
	return err == nil
}

// Split cuts a token at the first colon into prefix and payload.
// The payload may itself contain colons (text tokens do).
func Split(token string) (prefix, payload string, ok bool) {
	i := strings.IndexByte(token, ':')
	if i <= 0 {
		return "", "", false
	}
	return token[:i], token[i+1:], true
}

// Registry maps token prefixes to codecs and dispatches runtime values to
// the codec that owns their type.
//
// Registry is immutable after construction and safe for concurrent reads.
type Registry struct {
	byPrefix map[string]*Codec
	// encoders is tried in order until one accepts the value's runtime type.
	encoders []*Codec
}

// NewRegistry builds a registry from the given codecs.
// Later codecs with a duplicate prefix overwrite earlier ones.
func NewRegistry(codecs ...*Codec) *Registry {
	r := &Registry{byPrefix: make(map[string]*Codec, len(codecs))}
	for _, c := range codecs {
		r.byPrefix[c.prefix] = c
		r.encoders = append(r.encoders, c)
	}
	return r
}

// Lookup returns the codec for a prefix, or nil and false if unknown.
func (r *Registry) Lookup(prefix string) (*Codec, bool) {
	c, ok := r.byPrefix[prefix]
	return c, ok
}

// Encode serializes v with the codec owning its runtime type.
// Returns a KIND_MISMATCH error when no registered codec accepts v.
func (r *Registry) Encode(v any) (string, error) {
	for _, c := range r.encoders {
		tok, err := c.Serialize(v)
		if err == nil {
			return tok, nil
		}
		if !errors.Is(err, errors.ErrCodeKindMismatch) {
			return "", err
		}
	}
	return "", errors.New(errors.ErrCodeKindMismatch, "no codec registered for runtime type %T", v)
}

// Decode deserializes a token by dispatching on its prefix.
// Unknown or malformed prefixes return an INVALID_TOKEN error.
func (r *Registry) Decode(token string) (any, error) {
	prefix, _, ok := Split(token)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidToken, "token has no prefix: %q", token)
	}
	c, found := r.byPrefix[prefix]
	if !found {
		return nil, errors.New(errors.ErrCodeInvalidToken, "unknown token prefix: %q", prefix)
	}
	return c.decode(token[len(prefix)+1:])
}

// Validate reports whether token parses against a registered codec.
// Unknown prefixes return false, never an error.
func (r *Registry) Validate(token string) bool {
	_, err := r.Decode(token)
	return err == nil
}

// Prefixes returns the registered prefixes in registration order.
func (r *Registry) Prefixes() []string {
	out := make([]string, len(r.encoders))
	for i, c := range r.encoders {
		out[i] = c.prefix
	}
	return out
}

// Default returns the registry with every codec this package defines.
// The scalar codecs are registered after the geometric ones so Encode
// dispatch tries the more specific types first.
func Default() *Registry {
	return NewRegistry(
		pointCodec(),
		vectorCodec(),
		lineCodec(),
		planeCodec(),
		circleCodec(),
		arcCodec(),
		boxCodec(),
		rectangleCodec(),
		domainCodec(),
		colorCodec(),
		boundsCodec(),
		numberCodec(),
		integerCodec(),
		booleanCodec(),
		textCodec(),
	)
}
