package diagram

import (
	"slices"
	"strings"

	"github.com/saasfactory/archviz/pkg/catalog"
	"github.com/saasfactory/archviz/pkg/errors"
)

// Direction is the Graphviz rank direction of the rendered diagram.
type Direction string

const (
	LeftToRight Direction = "LR"
	RightToLeft Direction = "RL"
	TopToBottom Direction = "TB"
	BottomToTop Direction = "BT"
)

// DefaultDirection is used when no direction is given.
const DefaultDirection = LeftToRight

// ParseDirection parses a rank direction, case-insensitively.
// An empty string yields DefaultDirection.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(s))); d {
	case "":
		return DefaultDirection, nil
	case LeftToRight, RightToLeft, TopToBottom, BottomToTop:
		return d, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidDirection, "invalid direction %q (must be LR, RL, TB or BT)", s)
	}
}

// Node is one cloud resource drawn in the diagram.
type Node struct {
	ID    string       // Stable reference name, unique within the diagram
	Label string       // Display text
	Kind  catalog.Kind // Resource type, drives the drawing hints
}

// Cluster is a named visual grouping of nodes.
type Cluster struct {
	ID    string   // Stable reference name, unique among clusters
	Label string   // Display text
	Nodes []string // Member node IDs in declaration order
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From string
	To   string
}

// Option configures a Diagram at construction.
type Option func(*Diagram)

// WithDirection sets the rank direction.
func WithDirection(dir Direction) Option {
	return func(d *Diagram) { d.direction = dir }
}

// Diagram is a titled set of nodes, clusters and edges.
//
// The zero value is not usable - use New.
type Diagram struct {
	title     string
	direction Direction

	nodes     map[string]Node
	nodeOrder []string
	handleOf  map[string]*Node // node ID -> handle returned by Add
	handles   map[*Node]string // handle -> node ID

	clusters  []*Cluster
	clusterOf map[string]string // node ID -> cluster ID

	edges    []Edge
	edgeSet  map[Edge]struct{}
	outgoing map[string][]string
	incoming map[string][]string

	err error
}

// New creates an empty diagram.
func New(title string, opts ...Option) *Diagram {
	d := &Diagram{
		title:     title,
		direction: DefaultDirection,
		nodes:     make(map[string]Node),
		handleOf:  make(map[string]*Node),
		handles:   make(map[*Node]string),
		clusterOf: make(map[string]string),
		edgeSet:   make(map[Edge]struct{}),
		outgoing:  make(map[string][]string),
		incoming:  make(map[string][]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Title returns the diagram title.
func (d *Diagram) Title() string { return d.title }

// Direction returns the rank direction.
func (d *Diagram) Direction() Direction { return d.direction }

// SetDirection changes the rank direction.
func (d *Diagram) SetDirection(dir Direction) { d.direction = dir }

// AddNode adds a node. It returns an INVALID_ID error for a malformed ID,
// DUPLICATE_NODE if the ID is taken, and INVALID_RESOURCE if the kind is not
// in the catalog.
func (d *Diagram) AddNode(n Node) error {
	if err := errors.ValidateID(n.ID); err != nil {
		return err
	}
	if err := errors.ValidateLabel(n.Label); err != nil {
		return err
	}
	if _, exists := d.nodes[n.ID]; exists {
		return errors.New(errors.ErrCodeDuplicateNode, "duplicate node %q", n.ID)
	}
	if !catalog.Contains(n.Kind) {
		return errors.New(errors.ErrCodeInvalidResource, "node %q: unknown resource kind %q", n.ID, n.Kind.String())
	}
	d.nodes[n.ID] = n
	d.nodeOrder = append(d.nodeOrder, n.ID)
	h := &Node{ID: n.ID, Label: n.Label, Kind: n.Kind}
	d.handleOf[n.ID] = h
	d.handles[h] = n.ID
	return nil
}

// AddCluster registers a cluster over existing nodes. A node may belong to at
// most one cluster; a second membership is a CLUSTER_CONFLICT error.
func (d *Diagram) AddCluster(c Cluster) error {
	if err := errors.ValidateID(c.ID); err != nil {
		return err
	}
	if err := errors.ValidateLabel(c.Label); err != nil {
		return err
	}
	for _, existing := range d.clusters {
		if existing.ID == c.ID {
			return errors.New(errors.ErrCodeDuplicateNode, "duplicate cluster %q", c.ID)
		}
	}
	seen := make(map[string]bool, len(c.Nodes))
	for _, id := range c.Nodes {
		if _, ok := d.nodes[id]; !ok {
			return errors.New(errors.ErrCodeDanglingEdge, "cluster %q: unknown node %q", c.ID, id)
		}
		if other, ok := d.clusterOf[id]; ok {
			return errors.New(errors.ErrCodeClusterConflict, "node %q already belongs to cluster %q", id, other)
		}
		if seen[id] {
			return errors.New(errors.ErrCodeClusterConflict, "cluster %q lists node %q twice", c.ID, id)
		}
		seen[id] = true
	}
	cl := &Cluster{ID: c.ID, Label: c.Label, Nodes: slices.Clone(c.Nodes)}
	d.clusters = append(d.clusters, cl)
	for _, id := range cl.Nodes {
		d.clusterOf[id] = cl.ID
	}
	return nil
}

// AddEdge adds a directed edge between existing nodes. Adding an edge that
// already exists is a no-op. Unknown endpoints are a DANGLING_EDGE error and
// an edge from a node to itself is a SELF_LOOP error.
func (d *Diagram) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return errors.New(errors.ErrCodeDanglingEdge, "edge %s->%s: unknown source node", e.From, e.To)
	}
	if _, ok := d.nodes[e.To]; !ok {
		return errors.New(errors.ErrCodeDanglingEdge, "edge %s->%s: unknown target node", e.From, e.To)
	}
	if e.From == e.To {
		return errors.New(errors.ErrCodeSelfLoop, "edge %s->%s connects a node to itself", e.From, e.To)
	}
	if _, dup := d.edgeSet[e]; dup {
		return nil
	}
	d.edgeSet[e] = struct{}{}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// Node returns a copy of the node with the given ID and true, or the zero
// Node and false.
func (d *Diagram) Node(id string) (Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Handle returns the chain handle of the node with the given ID, as
// returned by Add. The diagram identifies a handle by its address, so
// editing its fields changes neither the diagram nor later chains.
func (d *Diagram) Handle(id string) (*Node, bool) {
	h, ok := d.handleOf[id]
	return h, ok
}

// Nodes returns copies of all nodes in declaration order.
func (d *Diagram) Nodes() []Node {
	out := make([]Node, len(d.nodeOrder))
	for i, id := range d.nodeOrder {
		out[i] = d.nodes[id]
	}
	return out
}

// Edges returns a copy of all edges in declaration order.
func (d *Diagram) Edges() []Edge { return slices.Clone(d.edges) }

// HasEdge reports whether the edge from→to exists.
func (d *Diagram) HasEdge(from, to string) bool {
	_, ok := d.edgeSet[Edge{From: from, To: to}]
	return ok
}

// Clusters returns copies of all clusters in declaration order.
func (d *Diagram) Clusters() []Cluster {
	out := make([]Cluster, len(d.clusters))
	for i, c := range d.clusters {
		out[i] = Cluster{ID: c.ID, Label: c.Label, Nodes: slices.Clone(c.Nodes)}
	}
	return out
}

// ClusterByID returns the cluster with the given ID and true, or a zero
// Cluster and false.
func (d *Diagram) ClusterByID(id string) (Cluster, bool) {
	for _, c := range d.clusters {
		if c.ID == id {
			return Cluster{ID: c.ID, Label: c.Label, Nodes: slices.Clone(c.Nodes)}, true
		}
	}
	return Cluster{}, false
}

// ClusterOf returns the ID of the cluster containing the node, or "" if the
// node is not clustered.
func (d *Diagram) ClusterOf(id string) string { return d.clusterOf[id] }

// NodeCount returns the number of nodes.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of distinct edges.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// ClusterCount returns the number of clusters.
func (d *Diagram) ClusterCount() int { return len(d.clusters) }

// Children returns the IDs the node has edges to, in declaration order.
// The returned slice should not be modified.
func (d *Diagram) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs that have edges to the node, in declaration order.
// The returned slice should not be modified.
func (d *Diagram) Parents(id string) []string { return d.incoming[id] }

// Sources returns the IDs of connected nodes with no incoming edges, in
// declaration order. Isolated nodes are not included.
func (d *Diagram) Sources() []string {
	return d.filterNodes(func(id string) bool {
		return len(d.incoming[id]) == 0 && len(d.outgoing[id]) > 0
	})
}

// Sinks returns the IDs of connected nodes with no outgoing edges, in
// declaration order. Isolated nodes are not included.
func (d *Diagram) Sinks() []string {
	return d.filterNodes(func(id string) bool {
		return len(d.outgoing[id]) == 0 && len(d.incoming[id]) > 0
	})
}

// Isolated returns the IDs of nodes without any edge, in declaration order.
func (d *Diagram) Isolated() []string {
	return d.filterNodes(func(id string) bool {
		return len(d.outgoing[id]) == 0 && len(d.incoming[id]) == 0
	})
}

func (d *Diagram) filterNodes(keep func(string) bool) []string {
	var out []string
	for _, id := range d.nodeOrder {
		if keep(id) {
			out = append(out, id)
		}
	}
	return out
}
