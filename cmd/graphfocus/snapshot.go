package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/anthonybishopric/graphfocus/pkg/interaction"
	"github.com/anthonybishopric/graphfocus/pkg/layout"
	"github.com/anthonybishopric/graphfocus/pkg/relation"
	"github.com/anthonybishopric/graphfocus/pkg/visualizer"
)

func snapshotCmd(a *app) *cobra.Command {
	var (
		output  string
		hover   string
		mode    string
		advance time.Duration
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "snapshot [file]",
		Short: "Draw a graph to a static SVG, optionally mid-hover",
		Long: `Lay a graph out and write the drawing as SVG. With --hover the node is
highlighted as if the pointer rested on it, with --mode choosing which
modifier is held, and --advance runs the dash animation forward.

  graphfocus snapshot deps.json -o deps.svg
  graphfocus snapshot deps.json --hover api --mode in --advance 400ms`,
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

			opts := visualizer.Options{
				Nodes:                 doc.Nodes,
				Edges:                 doc.Edges,
				DefaultSelectedNodeID: a.selected,
				Width:                 a.cfg.Render.Width,
				Height:                a.cfg.Render.Height,
				Settings:              a.settings,
				FilterOrphan:          a.cfg.Render.FilterOrphan,
				Layout:                layout.Config{Seed: seed},
				Logger:                a.logger,
			}
			v := visualizer.Mount(opts)
			defer v.Unmount()

			if hover != "" {
				if v.Scene().Circle(hover) == nil {
					return fmt.Errorf("node %q is not drawn", hover)
				}
				if k := modifierFor(m); k != "" {
					v.KeyDown(k)
				}
				v.Hover(hover)
				v.Advance(advance)
			}

			var buf bytes.Buffer
			if err := v.Scene().WriteSVG(&buf); err != nil {
				return err
			}
			return writeOutput(cmd, output, buf.Bytes())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&hover, "hover", "", "Node ID to hover")
	cmd.Flags().StringVar(&mode, "mode", "normal", "Hover mode: normal, in (Shift held) or out (Control held)")
	cmd.Flags().DurationVar(&advance, "advance", 0, "Animation time to run after hovering")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Layout random seed")
	return cmd
}

// modifierFor returns the key that, held down, produces mode.
func modifierFor(m relation.Mode) string {
	switch m {
	case relation.In:
		return interaction.KeyShift
	case relation.Out:
		return interaction.KeyControl
	}
	return ""
}
