// Package visualizer is the interactive graph component. It owns the
// selection, the modifier-key controller, the highlight applicator and the
// drawing, and redraws from scratch whenever its inputs change.
package visualizer

import (
	"log/slog"
	"time"

	"github.com/anthonybishopric/graphfocus/pkg/graph"
	"github.com/anthonybishopric/graphfocus/pkg/highlight"
	"github.com/anthonybishopric/graphfocus/pkg/interaction"
	"github.com/anthonybishopric/graphfocus/pkg/layout"
	"github.com/anthonybishopric/graphfocus/pkg/scene"
	"github.com/anthonybishopric/graphfocus/pkg/selection"
	"github.com/anthonybishopric/graphfocus/pkg/settings"
)

// Drawing constants.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	NodeRadius    = 16
	LabelOffset   = 36
)

// ZoomExtent bounds the pan/zoom scale.
var ZoomExtent = scene.ScaleExtent{Min: 0.2, Max: 3}

// Options configures the component.
type Options struct {
	Nodes []graph.Node
	Edges []graph.Edge

	// SelectedNodeID, when non-nil at mount, makes the selection controlled
	// for the component's lifetime.
	SelectedNodeID        *string
	DefaultSelectedNodeID string
	OnSelectNode          func(id string)

	Width  int
	Height int

	Settings     settings.Overrides
	FilterOrphan bool
	Layout       layout.Config
	Logger       *slog.Logger
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Visualizer is one mounted component. It is driven from a single
// goroutine and is not safe for concurrent use.
type Visualizer struct {
	opts   Options
	logger *slog.Logger

	selection  *selection.Selection
	controller *interaction.Controller
	applicator *highlight.Applicator

	scene *scene.Scene
	sim   *layout.Simulation
	view  graph.View
	drawn graph.View

	mounted bool
	draws   int
}

// Mount creates the component and draws it.
func Mount(opts Options) *Visualizer {
	v := &Visualizer{
		opts:   opts,
		logger: opts.Logger,
	}
	if v.logger == nil {
		v.logger = slog.New(slog.DiscardHandler)
	}

	notify := func(id string) {
		if v.opts.OnSelectNode != nil {
			v.opts.OnSelectNode(id)
		}
	}
	if opts.SelectedNodeID != nil {
		v.selection = selection.NewControlled(*opts.SelectedNodeID, notify)
	} else {
		v.selection = selection.NewUncontrolled(opts.DefaultSelectedNodeID, notify)
	}
	v.controller = interaction.NewController(v.clear)

	st := settings.Resolve(opts.Settings)
	w, h := opts.size()
	v.applicator = highlight.New(st)
	v.scene = scene.New(w, h, st.Background)
	v.mounted = true

	v.logger.Debug("mounted", "scene", v.scene.ID, "controlled", v.selection.Controlled())
	v.Draw()
	return v
}

// Update replaces the options and redraws. In controlled mode a changed
// SelectedNodeID is applied and reported through OnSelectNode.
func (v *Visualizer) Update(opts Options) {
	if !v.mounted {
		return
	}
	v.opts = opts
	if opts.Logger != nil {
		v.logger = opts.Logger
	}
	if v.selection.Controlled() {
		var value string
		if opts.SelectedNodeID != nil {
			value = *opts.SelectedNodeID
		}
		v.selection.Sync(value)
	}
	v.applicator = highlight.New(settings.Resolve(opts.Settings))
	v.Draw()
}

// Draw tears down the current drawing and recreates it from the current
// options and selection.
func (v *Visualizer) Draw() {
	if !v.mounted {
		return
	}
	v.teardown()

	st := v.applicator.Settings()
	w, h := v.opts.size()
	v.scene.Width, v.scene.Height, v.scene.Background = w, h, st.Background

	selected := v.selection.Current()
	v.view = selection.Filter(v.opts.Nodes, v.opts.Edges, selected, v.opts.FilterOrphan)

	cfg := v.opts.Layout
	cfg.Width, cfg.Height = float64(w), float64(h)
	v.sim = layout.New(v.view.Nodes, v.view.Edges, cfg)

	v.drawn = graph.View{Edges: v.sim.Edges()}
	for i, e := range v.drawn.Edges {
		v.scene.AddLine(i, e, scene.Attrs{
			Stroke:      st.LinkColor,
			StrokeWidth: highlight.BaseWidth,
			MarkerEnd:   scene.MarkerArrow,
		})
	}
	for _, b := range v.sim.Bodies() {
		v.drawn.Nodes = append(v.drawn.Nodes, b.Node)
		fill := v.applicator.BaseFill(b.ID, selected)
		v.scene.AddNode(b.Node, NodeRadius,
			scene.Attrs{Fill: fill},
			scene.Attrs{Fill: fill, FontWeight: highlight.WeightNormal, FontSize: st.FontSize},
		)
	}

	v.scene.AttachZoom(ZoomExtent)
	v.sim.OnTick(v.position)
	v.sim.Run()

	v.draws++
	v.logger.Debug("drew graph",
		"nodes", len(v.view.Nodes),
		"edges", len(v.view.Edges),
		"selected", selected,
		"draw", v.draws,
	)
}

func (v *Visualizer) teardown() {
	if v.sim != nil {
		v.sim.Stop()
		v.sim = nil
	}
	v.scene.Clear()
	v.scene.DetachZoom()
}

func (v *Visualizer) position() {
	for _, b := range v.sim.Bodies() {
		if c := v.scene.Circle(b.ID); c != nil {
			c.X, c.Y = b.X, b.Y
		}
		if l := v.scene.Label(b.ID); l != nil {
			l.X, l.Y = b.X, b.Y+LabelOffset
		}
	}
	for _, l := range v.scene.Lines() {
		if src, ok := l.Edge.Source.(*layout.Body); ok {
			l.X, l.Y = src.X, src.Y
		}
		if dst, ok := l.Edge.Target.(*layout.Body); ok {
			l.X2, l.Y2 = dst.X, dst.Y
		}
	}
}

// KeyDown forwards a key press to the modifier controller.
func (v *Visualizer) KeyDown(key string) {
	if v.mounted {
		v.controller.KeyDown(key)
	}
}

// KeyUp forwards a key release to the modifier controller.
func (v *Visualizer) KeyUp(key string) {
	if v.mounted {
		v.controller.KeyUp(key)
	}
}

// Hover highlights id using the modifier mode at this instant.
func (v *Visualizer) Hover(id string) {
	if !v.mounted {
		return
	}
	mode := v.controller.HighlightMode()
	v.applicator.Apply(v.scene, v.drawn, id, mode)
	v.logger.Debug("hover", "node", id, "mode", mode.String())
}

// HoverOut removes the hover highlight.
func (v *Visualizer) HoverOut() {
	if v.mounted {
		v.applicator.Restore(v.scene, v.selection.Current())
	}
}

// Click selects a drawn node.
func (v *Visualizer) Click(id string) {
	if !v.mounted || v.scene.Circle(id) == nil {
		return
	}
	v.selectNode(id)
}

func (v *Visualizer) clear() {
	v.selectNode("")
}

func (v *Visualizer) selectNode(id string) {
	if v.selection.Set(id) {
		v.logger.Debug("selected", "node", id)
		v.Draw()
	}
}

// Drag pins a node at x, y and lets the layout settle around it.
func (v *Visualizer) Drag(id string, x, y float64) {
	if !v.mounted || v.sim == nil {
		return
	}
	v.sim.Pin(id, x, y)
	v.sim.Run()
	v.position()
}

// Release unpins a dragged node.
func (v *Visualizer) Release(id string) {
	if v.mounted && v.sim != nil {
		v.sim.Unpin(id)
	}
}

// Zoom applies a pan/zoom gesture to the drawing.
func (v *Visualizer) Zoom(t scene.Transform) bool {
	if !v.mounted {
		return false
	}
	return v.scene.Zoom(t)
}

// Advance drives running transitions by d.
func (v *Visualizer) Advance(d time.Duration) {
	if v.mounted {
		v.scene.Advance(d)
	}
}

// Unmount tears the drawing down. Later events are ignored.
func (v *Visualizer) Unmount() {
	if !v.mounted {
		return
	}
	v.teardown()
	v.controller.Reset()
	v.mounted = false
	v.logger.Debug("unmounted", "scene", v.scene.ID)
}

// Mounted reports whether the component is live.
func (v *Visualizer) Mounted() bool { return v.mounted }

// View returns the filtered view currently drawn.
func (v *Visualizer) View() graph.View { return v.view }

// Scene returns the drawing.
func (v *Visualizer) Scene() *scene.Scene { return v.scene }

// Simulation returns the current layout, or nil after teardown.
func (v *Visualizer) Simulation() *layout.Simulation { return v.sim }

// Selected returns the displayed selection.
func (v *Visualizer) Selected() string { return v.selection.Current() }

// Mode returns the modifier state.
func (v *Visualizer) Mode() interaction.Mode { return v.controller.Mode() }

// Settings returns the resolved settings.
func (v *Visualizer) Settings() settings.Settings { return v.applicator.Settings() }

// Draws returns how many times the component has drawn.
func (v *Visualizer) Draws() int { return v.draws }
