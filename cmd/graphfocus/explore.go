package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/anthonybishopric/graphfocus/internal/explore"
	"github.com/anthonybishopric/graphfocus/pkg/visualizer"
)

func exploreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explore [file]",
		Short: "Explore a graph in the terminal",
		Long: `Open a terminal explorer. Arrow keys move the hover between nodes, enter
selects, esc clears the selection, i and o toggle the Shift and Control
roles.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadGraph(cmd.InOrStdin(), argPath(args))
			if err != nil {
				return err
			}

			m := explore.New(visualizer.Options{
				Nodes:                 doc.Nodes,
				Edges:                 doc.Edges,
				DefaultSelectedNodeID: a.selected,
				Width:                 a.cfg.Render.Width,
				Height:                a.cfg.Render.Height,
				Settings:              a.settings,
				FilterOrphan:          a.cfg.Render.FilterOrphan,
				Logger:                a.logger,
				OnSelectNode: func(id string) {
					a.logger.Debug("node selected", "node", id)
				},
			})
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}
