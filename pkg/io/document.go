package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/saasfactory/archviz/pkg/catalog"
	"github.com/saasfactory/archviz/pkg/diagram"
	"github.com/saasfactory/archviz/pkg/errors"
)

// Encoding is a definition file encoding.
type Encoding string

const (
	JSON Encoding = "json"
	YAML Encoding = "yaml"
	TOML Encoding = "toml"
)

// ParseEncoding parses an encoding name ("yml" is accepted for YAML).
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported definition encoding %q (must be json, yaml or toml)", s)
	}
}

// EncodingOf infers the encoding from a file extension.
func EncodingOf(path string) (Encoding, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer encoding of %s: no extension", path)
	}
	return ParseEncoding(ext)
}

type document struct {
	Title     string       `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Direction string       `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"`
	Nodes     []nodeDoc    `json:"nodes" yaml:"nodes" toml:"nodes"`
	Clusters  []clusterDoc `json:"clusters,omitempty" yaml:"clusters,omitempty" toml:"clusters,omitempty"`
	Edges     []edgeDoc    `json:"edges,omitempty" yaml:"edges,omitempty" toml:"edges,omitempty"`
	Chains    [][]string   `json:"chains,omitempty" yaml:"chains,omitempty" toml:"chains,omitempty"`
}

type nodeDoc struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Label *string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Kind  string  `json:"kind" yaml:"kind" toml:"kind"`
}

type clusterDoc struct {
	ID    string   `json:"id" yaml:"id" toml:"id"`
	Label *string  `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Nodes []string `json:"nodes" yaml:"nodes" toml:"nodes"`
}

type edgeDoc struct {
	From string `json:"from" yaml:"from" toml:"from"`
	To   string `json:"to" yaml:"to" toml:"to"`
}

const defaultTitle = "diagram"

// build turns a decoded document into a validated diagram.
func (doc document) build() (*diagram.Diagram, error) {
	dir, err := diagram.ParseDirection(doc.Direction)
	if err != nil {
		return nil, err
	}
	title := doc.Title
	if strings.TrimSpace(title) == "" {
		title = defaultTitle
	}
	d := diagram.New(title, diagram.WithDirection(dir))

	for _, n := range doc.Nodes {
		kind, err := catalog.Lookup(n.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
		if err := d.AddNode(diagram.Node{ID: n.ID, Label: labelOr(n.Label, n.ID), Kind: kind}); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}

	for _, c := range doc.Clusters {
		if err := d.AddCluster(diagram.Cluster{ID: c.ID, Label: labelOr(c.Label, c.ID), Nodes: c.Nodes}); err != nil {
			return nil, fmt.Errorf("cluster %s: %w", c.ID, err)
		}
	}

	for _, e := range doc.Edges {
		if err := d.AddEdge(diagram.Edge{From: e.From, To: e.To}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	for i, chain := range doc.Chains {
		steps := make([]diagram.Step, 0, len(chain))
		for _, ref := range chain {
			step, err := resolveStep(d, ref)
			if err != nil {
				return nil, fmt.Errorf("chain %d: %w", i+1, err)
			}
			steps = append(steps, step)
		}
		d.Chain(steps...)
		if err := d.Err(); err != nil {
			return nil, fmt.Errorf("chain %d: %w", i+1, err)
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// labelOr returns the declared label, or id when the label key is absent.
// An explicit empty label is kept.
func labelOr(label *string, id string) string {
	if label == nil {
		return id
	}
	return *label
}

// resolveStep maps a chain entry to a node, or to a cluster's node group.
// Node IDs win over cluster IDs when both exist.
func resolveStep(d *diagram.Diagram, ref string) (diagram.Step, error) {
	if h, ok := d.Handle(ref); ok {
		return h, nil
	}
	if c, ok := d.ClusterByID(ref); ok {
		group := make(diagram.Group, 0, len(c.Nodes))
		for _, id := range c.Nodes {
			h, _ := d.Handle(id)
			group = append(group, h)
		}
		return group, nil
	}
	return nil, errors.New(errors.ErrCodeDanglingEdge, "unknown node or cluster %q", ref)
}

// fromDiagram captures a diagram as a document with explicit edges.
func fromDiagram(d *diagram.Diagram) document {
	doc := document{
		Title:     d.Title(),
		Direction: string(d.Direction()),
		Nodes:     make([]nodeDoc, 0, d.NodeCount()),
	}
	for _, n := range d.Nodes() {
		doc.Nodes = append(doc.Nodes, nodeDoc{ID: n.ID, Label: &n.Label, Kind: n.Kind.String()})
	}
	for _, c := range d.Clusters() {
		doc.Clusters = append(doc.Clusters, clusterDoc{ID: c.ID, Label: &c.Label, Nodes: c.Nodes})
	}
	for _, e := range d.Edges() {
		doc.Edges = append(doc.Edges, edgeDoc{From: e.From, To: e.To})
	}
	return doc
}
