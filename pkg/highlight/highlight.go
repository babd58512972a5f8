// Package highlight restyles a drawn graph around a hovered node.
package highlight

import (
	"time"

	"github.com/anthonybishopric/graphfocus/pkg/graph"
	"github.com/anthonybishopric/graphfocus/pkg/relation"
	"github.com/anthonybishopric/graphfocus/pkg/scene"
	"github.com/anthonybishopric/graphfocus/pkg/settings"
)

// Line styling.
const (
	BaseWidth    = 1.5
	RelatedWidth = 3.0
	DashPattern  = "8,4"
	DashPeriod   = 800 * time.Millisecond
	// DashTravel is one full dash cycle: 8 on plus 4 off, twice.
	DashTravel = 24.0
)

// Font weights.
const (
	WeightNormal = "normal"
	WeightBold   = "bold"
)

// Surface is the drawing the applicator restyles. Lookups of ids that were
// never drawn return nil.
type Surface interface {
	Circles() []*scene.Element
	Labels() []*scene.Element
	Lines() []*scene.Element
	Circle(id string) *scene.Element
	Label(id string) *scene.Element
	Transition(el *scene.Element, t scene.Transition)
	Interrupt(el *scene.Element)
}

// Applicator applies and removes hover highlights. Every Apply and Restore
// starts a new generation; dash loops started under an older generation
// stop at the end of their current cycle.
type Applicator struct {
	settings   settings.Settings
	generation uint64
}

// New returns an applicator using s.
func New(s settings.Settings) *Applicator {
	return &Applicator{settings: s}
}

// Settings returns the colors in use.
func (a *Applicator) Settings() settings.Settings { return a.settings }

// Generation returns the current generation.
func (a *Applicator) Generation() uint64 { return a.generation }

// Apply highlights nodeID and everything related to it under mode within
// the drawn view. It returns the resolved relation.
func (a *Applicator) Apply(s Surface, view graph.View, nodeID string, mode relation.Mode) relation.Result {
	a.generation++
	a.ResetGray(s)

	related := relation.Resolve(view.Edges, nodeID, mode)
	color := a.modeColor(mode)

	for id := range related.Nodes {
		a.focus(s, id, color)
	}

	for _, l := range s.Lines() {
		if !related.HasEdge(l.Index) {
			continue
		}
		a.focus(s, l.Edge.SourceID(), color)
		a.focus(s, l.Edge.TargetID(), color)

		s.Interrupt(l)
		l.StrokeWidth = RelatedWidth
		l.MarkerStart = ""
		l.MarkerEnd = scene.MarkerArrow
		l.DashOffset = 0
		if mode == relation.Normal {
			l.Stroke = a.settings.HoverColor
			l.DashArray = ""
			continue
		}
		l.Stroke = color
		l.DashArray = DashPattern
		a.flow(s, l, a.generation)
	}

	return related
}

// ResetGray de-emphasizes every drawn element. Applying it twice leaves
// the same state as applying it once.
func (a *Applicator) ResetGray(s Surface) {
	gray := a.settings.GrayColor
	for _, c := range s.Circles() {
		c.Fill = gray
	}
	for _, l := range s.Labels() {
		l.Fill = gray
		l.FontWeight = WeightNormal
		l.FontSize = a.settings.FontSize
	}
	for _, l := range s.Lines() {
		s.Interrupt(l)
		l.Stroke = gray
		l.StrokeWidth = BaseWidth
		l.DashArray = ""
		l.DashOffset = 0
	}
}

// Restore returns every element to its base style around selectedID.
func (a *Applicator) Restore(s Surface, selectedID string) {
	a.generation++
	for _, c := range s.Circles() {
		c.Fill = a.BaseFill(c.ID, selectedID)
	}
	for _, l := range s.Labels() {
		l.Fill = a.BaseFill(l.ID, selectedID)
		l.FontWeight = WeightNormal
		l.FontSize = a.settings.FontSize
	}
	for _, l := range s.Lines() {
		s.Interrupt(l)
		l.Stroke = a.settings.LinkColor
		l.StrokeWidth = BaseWidth
		l.DashArray = ""
		l.DashOffset = 0
		l.MarkerStart = ""
		l.MarkerEnd = scene.MarkerArrow
	}
}

// BaseFill is the unhighlighted fill of a node.
func (a *Applicator) BaseFill(id, selectedID string) string {
	if selectedID != "" && id == selectedID {
		return a.settings.FocusColor
	}
	return a.settings.NodeColor
}

func (a *Applicator) modeColor(mode relation.Mode) string {
	switch mode {
	case relation.In:
		return a.settings.GraphInColor
	case relation.Out:
		return a.settings.GraphOutColor
	default:
		return a.settings.FocusColor
	}
}

func (a *Applicator) focus(s Surface, id, color string) {
	if c := s.Circle(id); c != nil {
		c.Fill = color
	}
	if l := s.Label(id); l != nil {
		l.Fill = color
		l.FontWeight = WeightBold
		l.FontSize = a.settings.HoverFontSize
	}
}

func (a *Applicator) flow(s Surface, l *scene.Element, generation uint64) {
	l.DashOffset = 0
	s.Transition(l, scene.Transition{
		Duration:     DashPeriod,
		Ease:         scene.EaseLinear,
		DashOffsetTo: DashTravel,
		OnEnd: func() {
			if a.generation == generation {
				a.flow(s, l, generation)
			}
		},
	})
}
