package diagram

import (
	"fmt"

	"github.com/saasfactory/archviz/pkg/catalog"
	"github.com/saasfactory/archviz/pkg/errors"
)

// Step is one position in a chain: a single node or a group of nodes.
type Step interface {
	stepNodes() []*Node
}

func (n *Node) stepNodes() []*Node { return []*Node{n} }

// Group is a list of nodes used as one chain step.
type Group []*Node

func (g Group) stepNodes() []*Node { return g }

// Err returns the first error recorded by a builder method, or nil.
func (d *Diagram) Err() error { return d.err }

func (d *Diagram) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// Add declares a node and returns its handle for use in chains. The handle
// is identified by address; see [Diagram.Handle]. After an error it returns
// a detached node that later chains reject.
func (d *Diagram) Add(id, label string, kind catalog.Kind) *Node {
	if d.err != nil {
		return &Node{ID: id, Label: label, Kind: kind}
	}
	if err := d.AddNode(Node{ID: id, Label: label, Kind: kind}); err != nil {
		d.fail(err)
		return &Node{ID: id, Label: label, Kind: kind}
	}
	return d.handleOf[id]
}

// ClusterScope collects the nodes declared inside a Cluster callback.
type ClusterScope struct {
	d     *Diagram
	nodes Group
}

// Add declares a node that belongs to the enclosing cluster.
func (c *ClusterScope) Add(id, label string, kind catalog.Kind) *Node {
	n := c.d.Add(id, label, kind)
	c.nodes = append(c.nodes, n)
	return n
}

// Include places an already declared node in the enclosing cluster.
func (c *ClusterScope) Include(n *Node) {
	c.nodes = append(c.nodes, n)
}

// Cluster declares a visual cluster. Nodes added through the scope inside
// fn become its members. The members are returned as a Group for chaining.
func (d *Diagram) Cluster(id, label string, fn func(c *ClusterScope)) Group {
	scope := &ClusterScope{d: d}
	fn(scope)
	if d.err != nil {
		return scope.nodes
	}
	ids := make([]string, 0, len(scope.nodes))
	for _, n := range scope.nodes {
		nid, err := d.resolve(n)
		if err != nil {
			d.fail(err)
			return scope.nodes
		}
		ids = append(ids, nid)
	}
	if err := d.AddCluster(Cluster{ID: id, Label: label, Nodes: ids}); err != nil {
		d.fail(err)
	}
	return scope.nodes
}

// Chain connects consecutive steps: Chain(a, b, c) declares a→b and b→c.
// When a step is a Group, every node of the left step is connected to every
// node of the right step.
func (d *Diagram) Chain(steps ...Step) {
	if d.err != nil {
		return
	}
	for i := 1; i < len(steps); i++ {
		for _, from := range steps[i-1].stepNodes() {
			for _, to := range steps[i].stepNodes() {
				if err := d.connect(from, to); err != nil {
					d.fail(err)
					return
				}
			}
		}
	}
}

// connect adds an edge between two node handles, rejecting handles that were
// not produced by this diagram.
func (d *Diagram) connect(from, to *Node) error {
	fromID, err := d.resolve(from)
	if err != nil {
		return err
	}
	toID, err := d.resolve(to)
	if err != nil {
		return err
	}
	return d.AddEdge(Edge{From: fromID, To: toID})
}

// resolve maps a handle back to the ID it was issued for.
func (d *Diagram) resolve(n *Node) (string, error) {
	if n == nil {
		return "", errors.New(errors.ErrCodeDanglingEdge, "chain contains a nil node")
	}
	id, ok := d.handles[n]
	if !ok {
		return "", errors.New(errors.ErrCodeDanglingEdge, "node %q is not declared in diagram %q", n.ID, d.title)
	}
	return id, nil
}

// String renders a one-line summary, e.g. "SaaS B2B system (12 nodes, 12 edges, 0 clusters)".
func (d *Diagram) String() string {
	return fmt.Sprintf("%s (%d nodes, %d edges, %d clusters)", d.title, d.NodeCount(), d.EdgeCount(), d.ClusterCount())
}
