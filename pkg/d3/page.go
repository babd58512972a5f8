// Package d3 renders a graph as a self-contained D3.js page. The initial
// filtered view is computed in Go; the page script filters and resolves
// related sets itself as the user clicks and hovers.
package d3

import (
	"github.com/google/uuid"

	"github.com/anthonybishopric/graphfocus/pkg/graph"
	"github.com/anthonybishopric/graphfocus/pkg/selection"
	"github.com/anthonybishopric/graphfocus/pkg/settings"
)

// Page is the data embedded in a rendered page.
type Page struct {
	Nodes        []Node            `json:"nodes"`
	Links        []Link            `json:"links"`
	Settings     settings.Settings `json:"settings"`
	Selected     string            `json:"selected"`
	FilterOrphan bool              `json:"filterOrphan"`
	MarkerID     string            `json:"markerId"`

	// View is the filtered view for Selected, drawn first.
	View View `json:"view"`
}

// Node represents a node for D3 visualization.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Link represents an edge for D3 visualization.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// View is one filtered view. Links index Page.Links.
type View struct {
	Nodes []string `json:"nodes"`
	Links []int    `json:"links"`
}

// PageOptions configures BuildPage.
type PageOptions struct {
	Selected     string
	FilterOrphan bool
	Settings     settings.Overrides
}

// BuildPage flattens the graph for the page and filters the initial view.
// Its size is linear in the graph.
func BuildPage(nodes []graph.Node, edges []graph.Edge, opts PageOptions) *Page {
	ns, es := graph.Clone(nodes, edges)

	p := &Page{
		Nodes:        make([]Node, 0, len(ns)),
		Links:        make([]Link, 0, len(es)),
		Settings:     settings.Resolve(opts.Settings),
		Selected:     opts.Selected,
		FilterOrphan: opts.FilterOrphan,
		MarkerID:     "arrow-" + uuid.NewString()[:8],
	}
	for _, n := range ns {
		p.Nodes = append(p.Nodes, Node{ID: n.ID, Label: n.DisplayLabel()})
	}
	for _, e := range es {
		p.Links = append(p.Links, Link{Source: e.SourceID(), Target: e.TargetID()})
	}

	fv := selection.Filter(ns, es, opts.Selected, opts.FilterOrphan)
	p.View = View{
		Nodes: make([]string, 0, len(fv.Nodes)),
		Links: positions(es, fv.Edges),
	}
	for _, n := range fv.Nodes {
		p.View.Nodes = append(p.View.Nodes, n.ID)
	}
	return p
}

// positions maps an order-preserving subsequence of edges back to indices
// into edges.
func positions(edges, kept []graph.Edge) []int {
	out := make([]int, 0, len(kept))
	j := 0
	for i, e := range edges {
		if j == len(kept) {
			break
		}
		if e.SourceID() == kept[j].SourceID() && e.TargetID() == kept[j].TargetID() {
			out = append(out, i)
			j++
		}
	}
	return out
}
