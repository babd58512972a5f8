// Package scene is a retained-mode vector drawing surface: node circles,
// node labels and edge lines with SVG-style attributes, a pan/zoom
// transform, and attribute transitions driven by a virtual clock.
package scene

import (
	"time"

	"github.com/google/uuid"

	"github.com/anthonybishopric/graphfocus/pkg/graph"
)

// Kind identifies what an element draws.
type Kind int

const (
	KindCircle Kind = iota
	KindLabel
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindLabel:
		return "text"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// MarkerArrow is the only marker a line end can reference.
const MarkerArrow = "arrow"

// Attrs are the presentation attributes highlighting touches. An empty
// DashArray means a solid line.
type Attrs struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	FontWeight  string
	FontSize    float64
	DashArray   string
	DashOffset  float64
	MarkerStart string
	MarkerEnd   string
}

// Element is one drawn shape.
type Element struct {
	Kind  Kind
	ID    string
	Index int
	Edge  graph.Edge
	Text  string
	Class string

	X, Y   float64
	X2, Y2 float64
	Radius float64

	Attrs

	transition *running
}

// Animating reports whether a transition is in flight on the element.
func (e *Element) Animating() bool { return e.transition != nil }

// Transform is a pan/zoom transform: translate(X, Y) scale(K).
type Transform struct {
	X, Y, K float64
}

// Identity is the untransformed view.
var Identity = Transform{K: 1}

// Scene holds every element of one drawing.
type Scene struct {
	ID         uuid.UUID
	Width      int
	Height     int
	Background string

	order   []string
	circles map[string]*Element
	labels  map[string]*Element
	lines   []*Element

	zoom      *zoom
	transform Transform
	clock     time.Duration
}

// New returns an empty scene.
func New(width, height int, background string) *Scene {
	return &Scene{
		ID:         uuid.New(),
		Width:      width,
		Height:     height,
		Background: background,
		circles:    make(map[string]*Element),
		labels:     make(map[string]*Element),
		transform:  Identity,
	}
}

// MarkerID is the document-unique id of this scene's arrow marker.
func (s *Scene) MarkerID() string {
	return MarkerArrow + "-" + s.ID.String()[:8]
}

// AddLine draws the edge at position idx.
func (s *Scene) AddLine(idx int, e graph.Edge, attrs Attrs) *Element {
	el := &Element{
		Kind:  KindLine,
		ID:    e.SourceID() + "-" + e.TargetID(),
		Index: idx,
		Edge:  e,
		Class: "link link-" + e.SourceID() + "-" + e.TargetID(),
		Attrs: attrs,
	}
	s.lines = append(s.lines, el)
	return el
}

// AddNode draws a node as a label under a circle.
func (s *Scene) AddNode(n graph.Node, radius float64, circle, label Attrs) (*Element, *Element) {
	if _, ok := s.circles[n.ID]; !ok {
		s.order = append(s.order, n.ID)
	}
	l := &Element{
		Kind:  KindLabel,
		ID:    n.ID,
		Text:  n.DisplayLabel(),
		Class: "label label-" + n.ID,
		Attrs: label,
	}
	c := &Element{
		Kind:   KindCircle,
		ID:     n.ID,
		Radius: radius,
		Class:  "node node-" + n.ID,
		Attrs:  circle,
	}
	s.labels[n.ID] = l
	s.circles[n.ID] = c
	return c, l
}

// Circle returns the circle drawn for a node, or nil.
func (s *Scene) Circle(id string) *Element { return s.circles[id] }

// Label returns the label drawn for a node, or nil.
func (s *Scene) Label(id string) *Element { return s.labels[id] }

// Line returns the line drawn for the edge at idx, or nil.
func (s *Scene) Line(idx int) *Element {
	for _, l := range s.lines {
		if l.Index == idx {
			return l
		}
	}
	return nil
}

// Circles returns node circles in drawing order.
func (s *Scene) Circles() []*Element {
	out := make([]*Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.circles[id])
	}
	return out
}

// Labels returns node labels in drawing order.
func (s *Scene) Labels() []*Element {
	out := make([]*Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.labels[id])
	}
	return out
}

// Lines returns edge lines in drawing order.
func (s *Scene) Lines() []*Element {
	out := make([]*Element, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of drawn elements.
func (s *Scene) Len() int {
	return len(s.circles) + len(s.labels) + len(s.lines)
}

// Clear removes every element and stops every transition. The zoom
// behaviour is left alone; see DetachZoom.
func (s *Scene) Clear() {
	for _, el := range s.elements() {
		el.transition = nil
	}
	s.order = nil
	s.circles = make(map[string]*Element)
	s.labels = make(map[string]*Element)
	s.lines = nil
}

func (s *Scene) elements() []*Element {
	out := make([]*Element, 0, s.Len())
	out = append(out, s.lines...)
	for _, id := range s.order {
		out = append(out, s.labels[id], s.circles[id])
	}
	return out
}
