// Package relation computes the nodes and edges related to a node, either
// by direct adjacency or by transitive traversal along edge direction.
package relation

import (
	"fmt"
	"sort"

	"github.com/anthonybishopric/graphfocus/pkg/graph"
)

// Mode selects how related nodes are collected.
type Mode int

const (
	// Normal collects direct neighbours in either direction.
	Normal Mode = iota
	// In collects transitive predecessors.
	In
	// Out collects transitive successors.
	Out
)

// Modes lists every traversal mode.
var Modes = []Mode{Normal, In, Out}

func (m Mode) String() string {
	switch m {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return "normal"
	}
}

// ParseMode converts "normal", "in" or "out" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "normal":
		return Normal, nil
	case "in":
		return In, nil
	case "out":
		return Out, nil
	default:
		return Normal, fmt.Errorf("unknown traversal mode %q", s)
	}
}

// Result holds related node IDs and related edge positions. Edge identity
// is the edge's index in the slice handed to Resolve.
type Result struct {
	Nodes map[string]struct{}
	Edges map[int]struct{}
}

// HasNode reports whether id is related.
func (r Result) HasNode(id string) bool {
	_, ok := r.Nodes[id]
	return ok
}

// HasEdge reports whether the edge at idx is related.
func (r Result) HasEdge(idx int) bool {
	_, ok := r.Edges[idx]
	return ok
}

// NodeIDs returns the related node IDs in sorted order.
func (r Result) NodeIDs() []string {
	ids := make([]string, 0, len(r.Nodes))
	for id := range r.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EdgeIndices returns the related edge positions in ascending order.
func (r Result) EdgeIndices() []int {
	idx := make([]int, 0, len(r.Edges))
	for i := range r.Edges {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Resolve returns nodeID together with the nodes and edges related to it
// under mode. It does not modify edges.
func Resolve(edges []graph.Edge, nodeID string, mode Mode) Result {
	r := Result{
		Nodes: map[string]struct{}{nodeID: {}},
		Edges: make(map[int]struct{}),
	}

	// Read every endpoint once.
	ends := make([][2]string, len(edges))
	for i, e := range edges {
		ends[i] = [2]string{e.SourceID(), e.TargetID()}
	}

	switch mode {
	case In:
		r.collect(ends, index(ends, 1), nodeID, 0)
	case Out:
		r.collect(ends, index(ends, 0), nodeID, 1)
	default:
		for i, end := range ends {
			source, target := end[0], end[1]
			if source == nodeID && target != "" {
				r.Nodes[target] = struct{}{}
				r.Edges[i] = struct{}{}
			}
			if target == nodeID && source != "" {
				r.Nodes[source] = struct{}{}
				r.Edges[i] = struct{}{}
			}
		}
	}
	return r
}

// index groups edge positions by the endpoint at end, keeping edge order.
func index(ends [][2]string, end int) map[string][]int {
	adj := make(map[string][]int)
	for i, e := range ends {
		adj[e[end]] = append(adj[e[end]], i)
	}
	return adj
}

// collect walks depth-first from id over adj, in edge order. Edge i
// discovers ends[i][to]; only discovering edges are recorded, and a node
// already in the set is never expanded twice.
func (r Result) collect(ends [][2]string, adj map[string][]int, id string, to int) {
	for _, i := range adj[id] {
		next := ends[i][to]
		if next == "" {
			continue
		}
		if _, seen := r.Nodes[next]; seen {
			continue
		}
		r.Nodes[next] = struct{}{}
		r.Edges[i] = struct{}{}
		r.collect(ends, adj, next, to)
	}
}
