// Package render provides output formats and format conversion for rendered
// diagrams.
//
// # Overview
//
// Layout and drawing are delegated to Graphviz through the [nodelink]
// subpackage. This package holds what the renderers share:
//
//   - The set of supported output formats ([Format], [ParseFormat])
//   - The default output file name derived from a diagram title ([FileName])
//   - SVG to PDF conversion through rsvg-convert ([ToPDF])
//
// # Format Conversion
//
// Graphviz renders SVG, PNG and JPG in process. PDF goes through SVG and the
// external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.Render(ctx, dot, render.FormatSVG)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [nodelink]: github.com/saasfactory/archviz/pkg/render/nodelink
package render
