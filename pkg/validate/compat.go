package validate

import "strings"

// Type categories for connection compatibility. Names are matched
// case-insensitively against the vocabulary hosts use for parameter value
// converters; a name in no category is compatible only with itself.
var (
	numericTypes = wordSet(
		"int", "integer", "long", "float", "double", "number", "decimal",
	)
	geometricTypes = wordSet(
		"point", "point3d", "vector", "vector3d", "line", "plane", "circle",
		"arc", "box", "rectangle", "curve", "surface", "brep", "mesh",
		"geometry", "geometrybase",
	)
	textTypes = wordSet("string", "text")
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Compatible reports whether a value of type from can feed an input of
// type to without a suspicious conversion:
//
//   - exact name match (case-insensitive)
//   - either side is the universal "object" type
//   - both sides numeric
//   - both sides geometric
//   - the target is textual (text inputs render anything)
//
// Everything else is a potential mismatch. The answer is advisory; hosts
// attempt runtime conversion regardless, so callers treat false as a
// warning, never an error.
func Compatible(from, to string) bool {
	f := strings.ToLower(strings.TrimSpace(from))
	t := strings.ToLower(strings.TrimSpace(to))

	switch {
	case f == t:
		return true
	case f == "object" || t == "object":
		return true
	case numericTypes[f] && numericTypes[t]:
		return true
	case geometricTypes[f] && geometricTypes[t]:
		return true
	case textTypes[t]:
		return true
	}
	return false
}
