// Package graph holds the node and edge model shared by the filter, resolver,
// layout and rendering packages.
package graph

import (
	"strconv"
)

// Node is a vertex with a unique ID and a display label.
type Node struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// NodeID implements Identifier.
func (n *Node) NodeID() string {
	if n == nil {
		return ""
	}
	return n.ID
}

// DisplayLabel returns the label, falling back to the ID.
func (n Node) DisplayLabel() string {
	if n.Label == "" {
		return n.ID
	}
	return n.Label
}

// Identifier is implemented by values that stand in for a node inside an
// edge endpoint once the endpoint has been resolved to an object (for
// example a layout body).
type Identifier interface {
	NodeID() string
}

// Edge connects two nodes. Source and Target hold either a raw node ID or a
// resolved object; always read them through EndpointID.
type Edge struct {
	Source any `json:"source" yaml:"source"`
	Target any `json:"target" yaml:"target"`
}

// SourceID returns the ID of the source endpoint.
func (e Edge) SourceID() string { return EndpointID(e.Source) }

// TargetID returns the ID of the target endpoint.
func (e Edge) TargetID() string { return EndpointID(e.Target) }

// Touches reports whether either endpoint is id.
func (e Edge) Touches(id string) bool {
	return e.SourceID() == id || e.TargetID() == id
}

// EndpointID reads a node ID from an edge endpoint. Raw IDs are returned
// as-is, resolved objects yield their ID, and anything unrecognised yields
// the empty ID, which never matches a node.
func EndpointID(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case Identifier:
		return x.NodeID()
	case map[string]any:
		return EndpointID(x["id"])
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	default:
		return ""
	}
}

// View is a filtered subset of a graph.
type View struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// IDs returns the set of node IDs in the view.
func (v View) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(v.Nodes))
	for _, n := range v.Nodes {
		ids[n.ID] = struct{}{}
	}
	return ids
}

// Clone deep-copies nodes and edges. Edge endpoints are normalised to raw
// IDs so that nothing in the copy aliases caller-owned objects.
func Clone(nodes []Node, edges []Edge) ([]Node, []Edge) {
	clonedNodes := make([]Node, len(nodes))
	copy(clonedNodes, nodes)

	clonedEdges := make([]Edge, len(edges))
	for i, e := range edges {
		clonedEdges[i] = Edge{
			Source: e.SourceID(),
			Target: e.TargetID(),
		}
	}
	return clonedNodes, clonedEdges
}
