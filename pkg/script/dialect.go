// Package script recovers and restores parameter type metadata for
// script-bearing nodes, and maps display names to code identifiers.
//
// Scripted nodes carry a textual source body whose entry-point signature is
// the only authoritative record of parameter types: the live object model
// tracks names and access modes but, for the statically typed dialect, not
// types. This package parses that signature to extract a type hint for a
// named parameter, and injects updated hints back into the source without
// disturbing the rest of the script.
//
// Parsing is a small hand-written scanner rather than a regex: the
// parameter split tracks angle-bracket and parenthesis nesting so a
// parameter like "List<Curve> curves" is never split at an inner comma.
// Each dialect's grammar quirks stay behind the two-method Dialect
// interface.
//
// Failure semantics: the synchronizer never fails a capture or restore
// because of one unparsable script. Extraction that finds nothing returns
// ("", false); injection that cannot match the signature returns the source
// unchanged.
package script

// TypeHint pairs a parameter's variable name with the type text to write
// into the signature. An empty Type preserves whatever the signature
// already declares.
type TypeHint struct {
	Name string
	Type string
}

// Dialect is one supported scripting language's signature grammar.
type Dialect interface {
	// Name returns the dialect key stored in documents (e.g. "csharp").
	Name() string

	// Typed reports whether the dialect declares static parameter types.
	// Untyped dialects always extract nothing and inject nothing.
	Typed() bool

	// Extract returns the declared type of the parameter whose variable
	// name matches varName, and whether a match was found. Matching is
	// exact and case-sensitive, tried against both the raw name and its
	// sanitized form, after stripping any name-escaping marker.
	Extract(source, varName string) (string, bool)

	// Inject rewrites the entry-point signature, substituting the given
	// input and output hints positionally. Inputs and outputs are consumed
	// in lockstep with the signature's by-reference qualifier. Returns the
	// source unchanged when no signature is found or the dialect is
	// untyped.
	Inject(source string, inputs, outputs []TypeHint) string
}

// dialects is the fixed set of supported dialects, keyed by name.
var dialects = map[string]Dialect{}

func register(d Dialect) {
	dialects[d.Name()] = d
}

func init() {
	register(CSharp{})
	register(Python{})
}

// Lookup returns the dialect registered under name.
func Lookup(name string) (Dialect, bool) {
	d, ok := dialects[name]
	return d, ok
}

// Extract resolves the dialect by name and extracts a type hint.
// Unknown dialects yield ("", false) rather than an error so capture can
// fall back to converter-based inference.
func Extract(dialect, source, varName string) (string, bool) {
	d, ok := Lookup(dialect)
	if !ok {
		return "", false
	}
	return d.Extract(source, varName)
}

// Inject resolves the dialect by name and injects type hints.
// Unknown dialects return the source unchanged.
func Inject(dialect, source string, inputs, outputs []TypeHint) string {
	d, ok := Lookup(dialect)
	if !ok {
		return source
	}
	return d.Inject(source, inputs, outputs)
}
