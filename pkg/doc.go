// Package pkg provides the core libraries for the snapgraph document
// toolchain.
//
// # Overview
//
// Snapgraph captures live node graphs into a portable JSON document
// format and restores those documents onto a host canvas. The pkg
// directory is organized around that round trip:
//
//  1. [document] - The serialization contract (components, connections,
//     properties, parameter settings) plus a structural diff.
//  2. [codec] - Prefixed value tokens ("pt:", "num:", "text:", ...)
//     that carry property values through the document.
//  3. [script] - Script dialect handling: identifier sanitization and
//     type-hint extraction/injection for typed signatures.
//  4. [host] - The canvas abstraction capture and restore work against,
//     with an in-memory reference implementation in host/memhost.
//  5. [capture] / [restore] - The two directions of the round trip.
//  6. [validate] - Structural and semantic document checks.
//  7. [topo] - Connection topology used for grid placement.
//  8. [render] - Graphviz previews of documents.
//  9. [store] / [cache] - Named document persistence (file or MongoDB)
//     and content-hash caching of derived artifacts (file or Redis).
//
// # Data Flow
//
// The typical flow through snapgraph:
//
//	Host Canvas
//	     ↓ capture
//	Document (JSON)
//	     ↓ validate / layout / render
//	Document (JSON)
//	     ↓ restore
//	Host Canvas
//
// Capture walks the canvas and encodes every node, property, and wire
// into the document. Restore instantiates components, reapplies
// properties and script parameters, computes placements for components
// without pivots, and rewires connections. A document that restores and
// re-captures without a diff is lossless under the round trip.
//
// [document]: https://pkg.go.dev/github.com/snapgraph/snapgraph/pkg/document
// [codec]: https://pkg.go.dev/github.com/snapgraph/snapgraph/pkg/codec
// [script]: https://pkg.go.dev/github.com/snapgraph/snapgraph/pkg/script
// [host]: https://pkg.go.dev/github.com/snapgraph/snapgraph/pkg/host
// [capture]: https://pkg.go.dev/github.com/snapgraph/snapgraph/pkg/capture
// [restore]: https://pkg.go.dev/github.com/snapgraph/snapgraph/pkg/restore
// [validate]: https://pkg.go.dev/github.com/snapgraph/snapgraph/pkg/validate
// [topo]: https://pkg.go.dev/github.com/snapgraph/snapgraph/pkg/topo
// [render]: https://pkg.go.dev/github.com/snapgraph/snapgraph/pkg/render
// [store]: https://pkg.go.dev/github.com/snapgraph/snapgraph/pkg/store
// [cache]: https://pkg.go.dev/github.com/snapgraph/snapgraph/pkg/cache
package pkg
