package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/anthonybishopric/graphfocus/internal/ui"
	"github.com/anthonybishopric/graphfocus/pkg/graph"
	"github.com/anthonybishopric/graphfocus/pkg/relation"
	"github.com/anthonybishopric/graphfocus/pkg/selection"
)

func relatedCmd(a *app) *cobra.Command {
	var (
		node string
		mode string
	)
	cmd := &cobra.Command{
		Use:   "related [file]",
		Short: "List the nodes and edges a hover on a node would highlight",
		Long: `Resolve what hovering a node highlights within the drawn view.

  graphfocus related deps.json --node api             # direct neighbours
  graphfocus related deps.json --node api --mode in   # everything that points to api
  graphfocus related deps.json --node api --mode out  # everything api points to`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := relation.ParseMode(mode)
			if err != nil {
				return err
			}
			doc, err := loadGraph(cmd.InOrStdin(), argPath(args))
			if err != nil {
				return err
			}

			view := selection.Filter(doc.Nodes, doc.Edges, a.selected, a.cfg.Render.FilterOrphan)
			res := relation.Resolve(view.Edges, node, m)

			out := cmd.OutOrStdout()
			color := modeColor(a, m)
			fmt.Fprintf(out, "  %s %s (%s)\n\n", ui.Brand.Sprint("related to"), ui.Swatch(color, node), m)

			labels := make(map[string]string, len(view.Nodes))
			for _, n := range view.Nodes {
				labels[n.ID] = n.DisplayLabel()
			}
			nodeRows := make([][]string, 0, len(res.Nodes))
			for _, id := range res.NodeIDs() {
				label, drawn := labels[id]
				if !drawn {
					label = ui.Subtle.Sprint("(not drawn)")
				}
				nodeRows = append(nodeRows, []string{id, label})
			}
			if _, drawn := labels[node]; !drawn {
				fmt.Fprintf(out, "  %s\n\n", ui.Warn.Sprintf("%s is not in the drawn view", node))
			}
			ui.Table(out, []string{"NODE", "LABEL"}, nodeRows)

			edgeRows := make([][]string, 0, len(res.Edges))
			for _, i := range res.EdgeIndices() {
				e := view.Edges[i]
				edgeRows = append(edgeRows, []string{strconv.Itoa(i), e.SourceID(), e.TargetID()})
			}
			if len(edgeRows) > 0 {
				fmt.Fprintln(out)
				ui.Table(out, []string{"EDGE", "SOURCE", "TARGET"}, edgeRows)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&node, "node", "", "Node ID to resolve from")
	cmd.Flags().StringVar(&mode, "mode", "normal", "Traversal mode: normal, in or out")
	cmd.MarkFlagRequired("node")
	return cmd
}

func modeColor(a *app, m relation.Mode) string {
	st := resolvedSettings(a)
	switch m {
	case relation.In:
		return st.GraphInColor
	case relation.Out:
		return st.GraphOutColor
	}
	return st.FocusColor
}

func filterCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "filter [file]",
		Short: "Print the view that would be drawn for the current selection",
		Long: `Print the filtered view as JSON: the selected node with its direct
neighbours and the edges touching it, or the whole graph without a
selection. --filter-orphan drops nodes without edges.

  graphfocus filter deps.json --selected api`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadGraph(cmd.InOrStdin(), argPath(args))
			if err != nil {
				return err
			}
			view := selection.Filter(doc.Nodes, doc.Edges, a.selected, a.cfg.Render.FilterOrphan)
			nodes, edges := graph.Clone(view.Nodes, view.Edges)

			data, err := marshalIndent(graph.Document{Nodes: nodes, Edges: edges})
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
