// Package render produces visual previews of captured documents: a
// Graphviz DOT description of the component graph, and an SVG rendering
// of it. Previews are a debugging and review aid; nothing downstream
// depends on them.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/snapgraph/snapgraph/pkg/document"
)

// Options configures document rendering.
type Options struct {
	// Detailed includes instance ids and property counts in node labels.
	// When false, only the display name is shown.
	Detailed bool
}

// ToDOT converts a document to Graphviz DOT format. Components with
// recorded errors get a red outline, components with warnings an orange
// one. Edges are labelled with the parameter names they join.
func ToDOT(doc *document.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range doc.Components {
		comp := &doc.Components[i]
		attrs := fmtAttrs(comp, fmtLabel(comp, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", comp.InstanceGUID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, conn := range doc.Connections {
		fmt.Fprintf(&buf, "  %q -> %q [taillabel=%q, headlabel=%q, fontsize=10];\n",
			conn.From.InstanceID, conn.To.InstanceID, conn.From.Name, conn.To.Name)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(comp *document.Component, detailed bool) string {
	if !detailed {
		return comp.Name
	}

	parts := []string{comp.Name, "id: " + comp.InstanceGUID}
	if len(comp.Properties) > 0 {
		names := make([]string, 0, len(comp.Properties))
		for name := range comp.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		parts = append(parts, "props: "+strings.Join(names, ", "))
	}
	if len(comp.Inputs) > 0 || len(comp.Outputs) > 0 {
		parts = append(parts, fmt.Sprintf("params: %d in / %d out",
			len(comp.Inputs), len(comp.Outputs)))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(comp *document.Component, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case len(comp.Errors) > 0:
		attrs = append(attrs, "color=red", "penwidth=2")
	case len(comp.Warnings) > 0:
		attrs = append(attrs, "color=orange", "penwidth=2")
	}
	if comp.Selected {
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
