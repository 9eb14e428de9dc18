package diagram

import (
	"github.com/saasfactory/archviz/pkg/catalog"
	"github.com/saasfactory/archviz/pkg/errors"
)

// Validate checks structural integrity and returns nil if the diagram is
// well formed. It reports the first builder error, then verifies:
//
//  1. The direction is one of LR, RL, TB, BT
//  2. Every node kind is in the catalog
//  3. Every edge connects existing, distinct nodes
//  4. Every clustered node exists and appears in exactly one cluster
//
// Cycles are allowed; a diagram is a picture, not a dependency order.
func (d *Diagram) Validate() error {
	if d.err != nil {
		return d.err
	}
	if _, err := ParseDirection(string(d.direction)); err != nil {
		return err
	}
	for _, id := range d.nodeOrder {
		if n := d.nodes[id]; !catalog.Contains(n.Kind) {
			return errors.New(errors.ErrCodeInvalidResource, "node %q: unknown resource kind %q", id, n.Kind.String())
		}
	}
	if err := d.validateEdges(); err != nil {
		return err
	}
	return d.validateClusters()
}

func (d *Diagram) validateEdges() error {
	for _, e := range d.edges {
		_, okS := d.nodes[e.From]
		_, okD := d.nodes[e.To]
		if !okS || !okD {
			return errors.New(errors.ErrCodeDanglingEdge, "edge %s->%s references a missing node", e.From, e.To)
		}
		if e.From == e.To {
			return errors.New(errors.ErrCodeSelfLoop, "edge %s->%s connects a node to itself", e.From, e.To)
		}
	}
	return nil
}

func (d *Diagram) validateClusters() error {
	owner := make(map[string]string)
	for _, c := range d.clusters {
		for _, id := range c.Nodes {
			if _, ok := d.nodes[id]; !ok {
				return errors.New(errors.ErrCodeDanglingEdge, "cluster %q references missing node %q", c.ID, id)
			}
			if prev, dup := owner[id]; dup {
				return errors.New(errors.ErrCodeClusterConflict, "node %q appears in clusters %q and %q", id, prev, c.ID)
			}
			owner[id] = c.ID
		}
	}
	return nil
}
