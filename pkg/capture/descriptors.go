package capture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/snapgraph/snapgraph/pkg/host"
)

// PropertyDescriptor is one entry of a node type's capture allow-list:
// a named property, the codec prefix its value serializes under, and
// accessors against the live node. Only properties with a descriptor are
// ever captured or restored; there is no reflective walking of host state.
type PropertyDescriptor struct {
	Name   string
	Prefix string

	// Tree marks a persistent-data property whose runtime value is a
	// branch tree (path -> items). It is flattened to one path-keyed
	// document property per item.
	Tree bool

	Get func(host.Node) (any, bool)
	Set func(host.Node, any) error

	// Human renders a display string. Attached to the captured value only
	// when non-empty, since by default the token itself is the rendering.
	Human func(v any) string
}

// Prop builds a descriptor backed by the node's named property surface.
func Prop(name, prefix string) PropertyDescriptor {
	return PropertyDescriptor{
		Name:   name,
		Prefix: prefix,
		Get:    func(n host.Node) (any, bool) { return n.PropertyValue(name) },
		Set:    func(n host.Node, v any) error { return n.SetPropertyValue(name, v) },
	}
}

// TreeProp builds a persistent-data descriptor backed by the node's named
// property surface. The runtime value must be a map[string][]any.
func TreeProp(name, prefix string) PropertyDescriptor {
	d := Prop(name, prefix)
	d.Tree = true
	return d
}

// Descriptors maps node type GUIDs to their property allow-lists.
// Tables are registered once at startup and read-only afterwards.
type Descriptors struct {
	byGUID map[string][]PropertyDescriptor
}

// NewDescriptors creates an empty table set.
func NewDescriptors() *Descriptors {
	return &Descriptors{byGUID: make(map[string][]PropertyDescriptor)}
}

// Register appends descriptors for a node type.
func (d *Descriptors) Register(typeGUID string, descs ...PropertyDescriptor) {
	d.byGUID[typeGUID] = append(d.byGUID[typeGUID], descs...)
}

// For returns the allow-list for a node type. Unknown types have none,
// which captures the node with empty properties rather than failing.
func (d *Descriptors) For(typeGUID string) []PropertyDescriptor {
	return d.byGUID[typeGUID]
}

// TreeKey builds the flattened document property key for one item of a
// persistent-data branch: "<name><path>[<index>]", e.g. "Value{0}[2]".
func TreeKey(name, path string, index int) string {
	return fmt.Sprintf("%s%s[%d]", name, path, index)
}

// SplitTreeKey parses a flattened persistent-data key back into its
// property name, branch path, and item index.
func SplitTreeKey(key string) (name, path string, index int, ok bool) {
	brace := strings.IndexByte(key, '{')
	if brace < 0 {
		return "", "", 0, false
	}
	bracket := strings.LastIndexByte(key, '[')
	if bracket < brace || !strings.HasSuffix(key, "]") {
		return "", "", 0, false
	}
	idx, err := strconv.Atoi(key[bracket+1 : len(key)-1])
	if err != nil || idx < 0 {
		return "", "", 0, false
	}
	return key[:brace], key[brace:bracket], idx, true
}
