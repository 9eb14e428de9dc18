// Package diagram provides the in-memory model of an architecture diagram:
// labelled resource nodes, optional visual clusters, and directed edges.
//
// # Overview
//
// A [Diagram] is a plain data table. Nodes are identified by a stable ID (the
// name other declarations refer to) and drawn with a display label and a
// resource [catalog.Kind]. Clusters group nodes visually and carry no other
// meaning. Edges are ordered (from, to) pairs with no payload.
//
// # Declaring a diagram
//
// The builder methods read like a diagram-as-code script:
//
//	d := diagram.New("SaaS B2B system", diagram.WithDirection(diagram.LeftToRight))
//	cdn := d.Add("cloudflare", "Cloudflare", catalog.Cloudflare)
//	web := d.Add("webApp", "Blazor", catalog.AKS)
//	pods := d.Cluster("webAppContainers", "Web App containers", func(c *diagram.ClusterScope) {
//	    c.Add("webApp1", "1", catalog.AKS)
//	    c.Add("webApp2", "2", catalog.AKS)
//	})
//	d.Chain(cdn, web, pods)
//	if err := d.Err(); err != nil {
//	    return err
//	}
//
// [Diagram.Chain] connects consecutive steps. A step is a single [*Node] or a
// [Group]; every node of the left step is connected to every node of the
// right step.
//
// Builder methods record the first error and turn later calls into no-ops,
// so a declaration can be written without checking every line. Check
// [Diagram.Err] (or [Diagram.Validate]) once at the end. The lower-level
// [Diagram.AddNode], [Diagram.AddCluster] and [Diagram.AddEdge] return errors
// directly and are used by file loaders.
//
// # Edges are a set
//
// Declaring the same ordered pair twice records it once; the first
// declaration fixes its position in [Diagram.Edges]. This keeps the
// structure, and therefore the rendered DOT, identical across runs.
//
// # Concurrency
//
// A Diagram is not safe for concurrent mutation. Once built it can be read
// from multiple goroutines.
package diagram
