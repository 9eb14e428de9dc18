// Package nodelink renders architecture diagrams as node-link pictures
// through Graphviz.
//
// # Overview
//
// [ToDOT] turns a [diagram.Diagram] into Graphviz DOT source. Nodes are drawn
// with the shape and fill colour of their catalog kind, clusters become
// labelled subgraphs, and edges are plain arrows. [Render] hands the DOT to
// the embedded Graphviz engine:
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	png, err := nodelink.Render(ctx, dot, render.FormatPNG)
//
// # Determinism
//
// DOT output depends only on the diagram: nodes, clusters and edges are
// written in declaration order, so the same declaration always produces the
// same DOT text. Cache keys rely on this.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG, PNG
// and JPG rendering. PDF conversion requires librsvg (rsvg-convert).
package nodelink
