package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/saasfactory/archviz/pkg/diagram"
	"github.com/saasfactory/archviz/pkg/errors"
	"github.com/saasfactory/archviz/pkg/render"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the resource kind under each node label.
	Detailed bool
}

// ToDOT converts a diagram to Graphviz DOT source.
func ToDOT(d *diagram.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", d.Direction())
	fmt.Fprintf(&buf, "  label=%q;\n", d.Title())
	buf.WriteString("  labelloc=b;\n")
	buf.WriteString("  fontsize=28;\n")
	buf.WriteString("  fontname=\"Sans-Serif\";\n")
	buf.WriteString("  pad=0.5;\n")
	buf.WriteString("  nodesep=0.6;\n")
	buf.WriteString("  ranksep=0.75;\n")
	buf.WriteString("  node [style=filled, fontname=\"Sans-Serif\", fontsize=13, width=1.4, height=1.0];\n")
	buf.WriteString("  edge [color=\"#7b8894\"];\n")
	buf.WriteString("\n")

	clustered := make(map[string]bool)
	for _, c := range d.Clusters() {
		fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+c.ID)
		fmt.Fprintf(&buf, "    label=%q;\n", c.Label)
		buf.WriteString("    style=\"rounded\";\n")
		buf.WriteString("    bgcolor=\"#e5f5fd\";\n")
		buf.WriteString("    fontsize=12;\n")
		for _, id := range c.Nodes {
			n, _ := d.Node(id)
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
			clustered[id] = true
		}
		buf.WriteString("  }\n")
	}

	for _, n := range d.Nodes() {
		if clustered[n.ID] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range d.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n diagram.Node, detailed bool) string {
	if !detailed {
		return n.Label
	}
	return n.Label + "\n" + n.Kind.String()
}

func fmtAttrs(n diagram.Node, detailed bool) []string {
	return []string{
		fmt.Sprintf("label=%q", fmtLabel(n, detailed)),
		fmt.Sprintf("shape=%s", n.Kind.Shape),
		fmt.Sprintf("fillcolor=%q", n.Kind.Color),
		fmt.Sprintf("tooltip=%q", n.Kind.String()),
	}
}

// Render lays out and draws DOT source in the given format. SVG, PNG and JPG
// come straight from Graphviz; PDF is converted from SVG with rsvg-convert;
// DOT returns the source unchanged. Graphviz failures are returned wrapped
// as RENDER_FAILED.
func Render(ctx context.Context, dot string, format render.Format) ([]byte, error) {
	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		svg, err := renderGraphviz(ctx, dot, graphviz.SVG)
		if err != nil {
			return nil, err
		}
		return normalizeViewBox(svg), nil
	case render.FormatPNG:
		return renderGraphviz(ctx, dot, graphviz.PNG)
	case render.FormatJPG:
		return renderGraphviz(ctx, dot, graphviz.JPG)
	case render.FormatPDF:
		svg, err := Render(ctx, dot, render.FormatSVG)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "format %s is not drawn by graphviz", format)
	}
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the image scales from a
// zero origin, which Graphviz does not guarantee.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
