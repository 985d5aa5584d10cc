package restore

import (
	"github.com/snapgraph/snapgraph/pkg/document"
	"github.com/snapgraph/snapgraph/pkg/topo"
)

// Default canvas geometry. Layers advance left to right, siblings stack
// top to bottom.
const (
	DefaultOriginX  = 50.0
	DefaultOriginY  = 50.0
	DefaultSpacingX = 150.0
	DefaultSpacingY = 80.0
)

// Placements computes a pivot for every component, keyed by instance id.
//
// A component with a supplied pivot keeps it. Everything else is placed on
// a grid derived from connection topology: the column is the node's layer
// under the longest-path rule (one past the deepest parent), the row is
// its first-appearance ordinal within that layer. Components on a cycle
// keep the deterministic layer the acyclic prefix pushed them to.
func (r *Restorer) Placements(doc *document.Document) map[string]document.Pivot {
	g := topo.New()
	for i := range doc.Components {
		// Duplicate or empty ids were already flagged by validation;
		// placement just works with what resolves.
		_ = g.AddNode(doc.Components[i].InstanceGUID)
	}
	for _, conn := range doc.Connections {
		if g.Has(conn.From.InstanceID) && g.Has(conn.To.InstanceID) {
			_ = g.AddEdge(conn.From.InstanceID, conn.To.InstanceID)
		}
	}

	layers := topo.Layers(g)
	rowByLayer := make(map[int]int)
	out := make(map[string]document.Pivot, len(doc.Components))

	for i := range doc.Components {
		comp := &doc.Components[i]
		if comp.Pivot != nil {
			out[comp.InstanceGUID] = *comp.Pivot
			continue
		}
		layer := layers[comp.InstanceGUID]
		row := rowByLayer[layer]
		rowByLayer[layer] = row + 1

		out[comp.InstanceGUID] = document.Pivot{
			X: r.originX + float64(layer)*r.spacingX,
			Y: r.originY + float64(row)*r.spacingY,
		}
	}
	return out
}
