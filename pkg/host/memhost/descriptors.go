package memhost

import (
	"github.com/snapgraph/snapgraph/pkg/capture"
	"github.com/snapgraph/snapgraph/pkg/codec"
)

// Descriptors returns the property allow-lists for the builtin types.
// A real host registers its own tables at startup; these cover everything
// memhost nodes can carry.
func Descriptors() *capture.Descriptors {
	d := capture.NewDescriptors()
	d.Register(GUIDPanel, capture.Prop("UserText", codec.PrefixText))
	d.Register(GUIDColourSwatch, capture.Prop("SwatchColour", codec.PrefixColor))
	d.Register(GUIDPointParam, capture.TreeProp("Value", codec.PrefixPoint))
	return d
}
