package document

import (
	"fmt"
	"sort"
)

// Diff compares two documents for semantic equality, ignoring pivots and
// instance ids. Components are matched pairwise in order of appearance per
// (name, componentGuid) pair, which induces an id correspondence used to
// compare connections. Instance ids never survive reconstruction, so a
// direct field comparison would always fail; this is the equality the
// round-trip guarantee is stated in.
//
// The returned slice describes every difference found; an empty slice
// means the documents are equivalent.
func Diff(a, b *Document) []string {
	var diffs []string

	if len(a.Components) != len(b.Components) {
		diffs = append(diffs, fmt.Sprintf("component count: %d vs %d", len(a.Components), len(b.Components)))
		return diffs
	}

	// Pair components by (name, type key) in order of appearance.
	idMap := make(map[string]string, len(a.Components)) // a instance id -> b instance id
	used := make([]bool, len(b.Components))
	for i := range a.Components {
		ca := &a.Components[i]
		j := matchComponent(b.Components, used, ca)
		if j < 0 {
			diffs = append(diffs, fmt.Sprintf("component %q (%s) has no counterpart", ca.Name, ca.ComponentGUID))
			continue
		}
		used[j] = true
		cb := &b.Components[j]
		idMap[ca.InstanceGUID] = cb.InstanceGUID
		diffs = append(diffs, diffComponent(ca, cb)...)
	}

	diffs = append(diffs, diffConnections(a.Connections, b.Connections, idMap)...)
	return diffs
}

// matchComponent finds the first unused component in candidates with the
// same name and type key.
func matchComponent(candidates []Component, used []bool, want *Component) int {
	for j := range candidates {
		if used[j] {
			continue
		}
		if candidates[j].Name == want.Name && candidates[j].ComponentGUID == want.ComponentGUID {
			return j
		}
	}
	return -1
}

func diffComponent(a, b *Component) []string {
	var diffs []string
	label := fmt.Sprintf("component %q", a.Name)

	if a.Selected != b.Selected {
		diffs = append(diffs, fmt.Sprintf("%s: selected %v vs %v", label, a.Selected, b.Selected))
	}

	if len(a.Properties) != len(b.Properties) {
		diffs = append(diffs, fmt.Sprintf("%s: property count %d vs %d", label, len(a.Properties), len(b.Properties)))
	}
	for _, name := range sortedKeys(a.Properties) {
		pa := a.Properties[name]
		pb, ok := b.Properties[name]
		if !ok {
			diffs = append(diffs, fmt.Sprintf("%s: property %q missing", label, name))
			continue
		}
		if pa.Value != pb.Value || pa.Type != pb.Type {
			diffs = append(diffs, fmt.Sprintf("%s: property %q = (%s %q) vs (%s %q)",
				label, name, pa.Type, pa.Value, pb.Type, pb.Value))
		}
	}

	diffs = append(diffs, diffParams(label+" inputs", a.Inputs, b.Inputs)...)
	diffs = append(diffs, diffParams(label+" outputs", a.Outputs, b.Outputs)...)
	return diffs
}

func diffParams(label string, a, b []ParameterSettings) []string {
	if len(a) != len(b) {
		return []string{fmt.Sprintf("%s: count %d vs %d", label, len(a), len(b))}
	}
	var diffs []string
	for i := range a {
		if a[i] != b[i] {
			diffs = append(diffs, fmt.Sprintf("%s[%d]: %+v vs %+v", label, i, a[i], b[i]))
		}
	}
	return diffs
}

// diffConnections compares connection sets under the instance-id
// correspondence. Order is irrelevant.
func diffConnections(a, b []Connection, idMap map[string]string) []string {
	var diffs []string
	if len(a) != len(b) {
		diffs = append(diffs, fmt.Sprintf("connection count: %d vs %d", len(a), len(b)))
	}

	want := make(map[string]int, len(a))
	for _, c := range a {
		key := connKey(idMap[c.From.InstanceID], c.From.Name, idMap[c.To.InstanceID], c.To.Name)
		want[key]++
	}
	for _, c := range b {
		key := connKey(c.From.InstanceID, c.From.Name, c.To.InstanceID, c.To.Name)
		if want[key] == 0 {
			diffs = append(diffs, fmt.Sprintf("unexpected connection %s.%s -> %s.%s",
				c.From.InstanceID, c.From.Name, c.To.InstanceID, c.To.Name))
			continue
		}
		want[key]--
	}
	for key, n := range want {
		if n > 0 {
			diffs = append(diffs, fmt.Sprintf("missing connection %s (x%d)", key, n))
		}
	}
	return diffs
}

func connKey(fromID, fromName, toID, toName string) string {
	return fmt.Sprintf("%s.%s->%s.%s", fromID, fromName, toID, toName)
}

func sortedKeys(m map[string]PropertyValue) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
