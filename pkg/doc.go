// Package pkg provides the core libraries for archviz, a diagram-as-code
// tool for cloud architecture pictures.
//
// # Overview
//
// archviz declares an architecture as labelled resource nodes, visual
// clusters and directed edges, then draws it through Graphviz. The pkg
// directory is organized into four areas:
//
//  1. Model: [catalog] (resource kinds), [diagram] (nodes, clusters, edges)
//     and [blueprint] (the built-in SaaS B2B declaration)
//  2. Rendering: [render] (formats, PDF conversion) and [render/nodelink]
//     (DOT emission and Graphviz drawing)
//  3. Orchestration: [pipeline] (validate, emit, render, cache) and
//     [server] (HTTP access to a served diagram)
//  4. Infrastructure: [io] (JSON/YAML/TOML definitions), [cache]
//     (file, Redis and MongoDB artifact stores), [observability] hooks,
//     [errors] and [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	blueprint or definition file
//	         ↓
//	    [diagram] package (validated data table)
//	         ↓
//	    [render/nodelink] package (DOT text)
//	         ↓
//	    Graphviz (in process) / rsvg-convert
//	         ↓
//	    SVG/PNG/JPG/PDF/DOT/JSON output
//
// # Quick Start
//
//	d, err := blueprint.SaaSB2B()
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Render(ctx, d, pipeline.Options{
//	    Formats: []render.Format{render.FormatSVG},
//	})
//	svg := res.Artifacts[render.FormatSVG]
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test -short ./pkg/...   # Skip Graphviz and network backends
//
// [catalog]: https://pkg.go.dev/github.com/saasfactory/archviz/pkg/catalog
// [diagram]: https://pkg.go.dev/github.com/saasfactory/archviz/pkg/diagram
// [blueprint]: https://pkg.go.dev/github.com/saasfactory/archviz/pkg/blueprint
// [render]: https://pkg.go.dev/github.com/saasfactory/archviz/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/saasfactory/archviz/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/saasfactory/archviz/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/saasfactory/archviz/pkg/server
// [io]: https://pkg.go.dev/github.com/saasfactory/archviz/pkg/io
// [cache]: https://pkg.go.dev/github.com/saasfactory/archviz/pkg/cache
// [observability]: https://pkg.go.dev/github.com/saasfactory/archviz/pkg/observability
// [errors]: https://pkg.go.dev/github.com/saasfactory/archviz/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/saasfactory/archviz/pkg/buildinfo
package pkg
