package selection

import (
	"github.com/anthonybishopric/graphfocus/pkg/graph"
)

// Filter derives the view to draw. With a selection it keeps the selected
// node and its direct neighbours, and only edges touching the selected node.
// Without one it keeps every node, or only nodes incident to at least one
// edge when filterOrphan is set. Edges whose endpoints are not in the kept
// node set are always dropped. The inputs are never modified.
func Filter(nodes []graph.Node, edges []graph.Edge, selectedID string, filterOrphan bool) graph.View {
	if selectedID != "" {
		return neighbourhood(nodes, edges, selectedID)
	}

	var keep map[string]struct{}
	if filterOrphan {
		keep = Incident(edges)
	}

	view := graph.View{Nodes: make([]graph.Node, 0, len(nodes))}
	present := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if keep != nil {
			if _, ok := keep[n.ID]; !ok {
				continue
			}
		}
		view.Nodes = append(view.Nodes, n)
		present[n.ID] = struct{}{}
	}

	view.Edges = make([]graph.Edge, 0, len(edges))
	for _, e := range edges {
		if contains(present, e.SourceID()) && contains(present, e.TargetID()) {
			view.Edges = append(view.Edges, e)
		}
	}
	return view
}

func neighbourhood(nodes []graph.Node, edges []graph.Edge, selectedID string) graph.View {
	wanted := map[string]struct{}{selectedID: {}}
	for _, e := range edges {
		source, target := e.SourceID(), e.TargetID()
		if source == selectedID {
			wanted[target] = struct{}{}
		}
		if target == selectedID {
			wanted[source] = struct{}{}
		}
	}

	view := graph.View{Nodes: []graph.Node{}, Edges: []graph.Edge{}}
	present := make(map[string]struct{}, len(wanted))
	for _, n := range nodes {
		if contains(wanted, n.ID) {
			view.Nodes = append(view.Nodes, n)
			present[n.ID] = struct{}{}
		}
	}

	for _, e := range edges {
		source, target := e.SourceID(), e.TargetID()
		if !contains(present, source) || !contains(present, target) {
			continue
		}
		if source == selectedID || target == selectedID {
			view.Edges = append(view.Edges, e)
		}
	}
	return view
}

// Incident returns the IDs that appear as an endpoint of at least one edge.
// A node absent from this set is an orphan.
func Incident(edges []graph.Edge) map[string]struct{} {
	ids := make(map[string]struct{}, len(edges)*2)
	for _, e := range edges {
		if id := e.SourceID(); id != "" {
			ids[id] = struct{}{}
		}
		if id := e.TargetID(); id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids
}

func contains(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}
