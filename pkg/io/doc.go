// Package io loads and saves diagram definitions as JSON, YAML or TOML.
//
// # Overview
//
// A definition file describes one diagram as a data table. All three
// encodings share the same shape:
//
//	{
//	  "title": "web stack",
//	  "direction": "LR",
//	  "nodes": [
//	    {"id": "lb", "label": "lb", "kind": "aws.network.ELB"},
//	    {"id": "web1", "label": "1", "kind": "aws.compute.EC2"},
//	    {"id": "web2", "label": "2", "kind": "aws.compute.EC2"},
//	    {"id": "db", "label": "userdb", "kind": "aws.database.RDS"}
//	  ],
//	  "clusters": [
//	    {"id": "web", "label": "Web tier", "nodes": ["web1", "web2"]}
//	  ],
//	  "edges": [
//	    {"from": "web1", "to": "db"}
//	  ],
//	  "chains": [
//	    ["lb", "web", "db"]
//	  ]
//	}
//
// # Fields
//
// Required:
//   - nodes[].id, nodes[].kind: kind is a dotted catalog name, see [catalog.Lookup]
//
// Optional:
//   - title (defaults to "diagram"), direction (defaults to LR)
//   - nodes[].label (defaults to the id)
//   - clusters: each node may belong to at most one cluster
//   - edges: explicit from/to pairs
//   - chains: each inner list connects consecutive entries; an entry naming a
//     cluster stands for all of its nodes
//
// Unknown fields are rejected so typos surface as errors instead of silently
// missing nodes.
//
// # Round trips
//
// [Write] emits nodes, clusters and explicit edges (chains are expanded into
// edges), so Read(Write(d)) rebuilds a structurally identical diagram.
package io
