package main

import (
	"bytes"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/anthonybishopric/graphfocus/pkg/d3"
)

func renderCmd(a *app) *cobra.Command {
	var (
		output   string
		jsonOnly bool
	)
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph as a self-contained interactive HTML page",
		Long: `Render a graph (JSON, YAML or DOT) as an HTML page driven by D3.js.

  graphfocus render deps.json -o deps.html
  graphfocus render --selected api --filter-orphan deps.dot
  cat deps.dot | graphfocus render --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadGraph(cmd.InOrStdin(), argPath(args))
			if err != nil {
				return err
			}

			page := d3.BuildPage(doc.Nodes, doc.Edges, d3.PageOptions{
				Selected:     a.selected,
				FilterOrphan: a.cfg.Render.FilterOrphan,
				Settings:     a.settings,
			})
			a.logger.Debug("built page", "nodes", len(page.Nodes), "links", len(page.Links), "drawn", len(page.View.Nodes))

			if jsonOnly {
				var buf bytes.Buffer
				enc := json.NewEncoder(&buf)
				enc.SetIndent("", "  ")
				if err := enc.Encode(page); err != nil {
					return err
				}
				return writeOutput(cmd, output, buf.Bytes())
			}

			html, err := d3.RenderHTML(page, d3.RenderOptions{
				Title:  a.cfg.Render.Title,
				Width:  a.cfg.Render.Width,
				Height: a.cfg.Render.Height,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, html)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&jsonOnly, "json", false, "Output the page data as JSON instead of HTML")
	return cmd
}
