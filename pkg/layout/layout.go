// Package layout positions a graph with a force-directed simulation. The
// simulation owns a deep copy of its input and rewrites edge endpoints to
// point at its own bodies.
package layout

import (
	"math"
	"math/rand"

	"github.com/anthonybishopric/graphfocus/pkg/graph"
)

// Config configures the simulation.
type Config struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Iterations int     `json:"iterations"`
	Padding    float64 `json:"padding"`
	Seed       int64   `json:"seed"`
}

// Position is a 2D coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Body is a simulated node. A fixed body stays where it was pinned.
type Body struct {
	graph.Node
	X, Y  float64
	Fixed bool
}

// Simulation runs Fruchterman-Reingold iterations one tick at a time.
type Simulation struct {
	cfg    Config
	bodies []*Body
	byID   map[string]*Body
	edges  []graph.Edge

	k           float64
	temperature float64
	iter        int
	stopped     bool
	onTick      []func()
}

// New builds a simulation over a copy of nodes and edges. Edge endpoints
// that name a node become *Body references; the rest keep their raw id.
func New(nodes []graph.Node, edges []graph.Edge, cfg Config) *Simulation {
	if cfg.Iterations == 0 {
		cfg.Iterations = 50
	}
	if cfg.Padding == 0 {
		cfg.Padding = 50
	}
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}

	ns, es := graph.Clone(nodes, edges)
	s := &Simulation{
		cfg:    cfg,
		bodies: make([]*Body, 0, len(ns)),
		byID:   make(map[string]*Body, len(ns)),
		edges:  es,
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for _, n := range ns {
		b := &Body{
			Node: n,
			X:    rng.Float64()*(cfg.Width-2*cfg.Padding) + cfg.Padding,
			Y:    rng.Float64()*(cfg.Height-2*cfg.Padding) + cfg.Padding,
		}
		s.bodies = append(s.bodies, b)
		s.byID[n.ID] = b
	}
	if len(s.bodies) == 1 {
		s.bodies[0].X, s.bodies[0].Y = cfg.Width/2, cfg.Height/2
	}

	for i := range s.edges {
		if b, ok := s.byID[s.edges[i].SourceID()]; ok {
			s.edges[i].Source = b
		}
		if b, ok := s.byID[s.edges[i].TargetID()]; ok {
			s.edges[i].Target = b
		}
	}

	if len(s.bodies) > 0 {
		s.k = math.Sqrt((cfg.Width * cfg.Height) / float64(len(s.bodies)))
	}
	s.temperature = cfg.Width / 10.0
	return s
}

// Config returns the effective configuration.
func (s *Simulation) Config() Config { return s.cfg }

// Bodies returns the simulated nodes in input order.
func (s *Simulation) Bodies() []*Body { return s.bodies }

// Body returns the body for id, or nil.
func (s *Simulation) Body(id string) *Body { return s.byID[id] }

// Edges returns the simulation's edges with resolved endpoints.
func (s *Simulation) Edges() []graph.Edge { return s.edges }

// OnTick registers fn to run after every tick.
func (s *Simulation) OnTick(fn func()) {
	s.onTick = append(s.onTick, fn)
}

// Done reports whether the simulation has cooled or been stopped.
func (s *Simulation) Done() bool {
	return s.stopped || s.iter >= s.cfg.Iterations
}

// Stop halts the simulation and drops its tick listeners.
func (s *Simulation) Stop() {
	s.stopped = true
	s.onTick = nil
}

// Tick runs one iteration. It returns false once the simulation is done.
func (s *Simulation) Tick() bool {
	if s.Done() {
		return false
	}
	s.step()
	s.iter++
	for _, fn := range s.onTick {
		fn()
	}
	return true
}

// Run ticks until the simulation is done.
func (s *Simulation) Run() {
	for s.Tick() {
	}
}

// Pin fixes a body at x, y and reheats the simulation so its neighbours
// follow. Unknown ids are ignored.
func (s *Simulation) Pin(id string, x, y float64) {
	b := s.byID[id]
	if b == nil {
		return
	}
	b.X, b.Y, b.Fixed = x, y, true
	s.reheat()
}

// Unpin releases a pinned body.
func (s *Simulation) Unpin(id string) {
	if b := s.byID[id]; b != nil {
		b.Fixed = false
	}
}

// Positions returns every body's position.
func (s *Simulation) Positions() map[string]Position {
	out := make(map[string]Position, len(s.bodies))
	for _, b := range s.bodies {
		out[b.ID] = Position{X: b.X, Y: b.Y}
	}
	return out
}

// Fit rescales free bodies to fill the canvas inside the padding.
func (s *Simulation) Fit() {
	var free []*Body
	for _, b := range s.bodies {
		if !b.Fixed {
			free = append(free, b)
		}
	}
	normalize(free, s.cfg.Width, s.cfg.Height, s.cfg.Padding)
}

func (s *Simulation) reheat() {
	if s.stopped {
		return
	}
	warm := s.cfg.Iterations * 7 / 10
	if s.iter > warm {
		s.iter = warm
		s.temperature = s.cfg.Width / 10.0 * math.Pow(0.95, float64(warm))
	}
}

func (s *Simulation) step() {
	if len(s.bodies) < 2 {
		return
	}

	forces := make(map[*Body]Position, len(s.bodies))

	for i, b1 := range s.bodies {
		for j := i + 1; j < len(s.bodies); j++ {
			b2 := s.bodies[j]
			dx := b1.X - b2.X
			dy := b1.Y - b2.Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < 0.01 {
				dist = 0.01
			}

			force := (s.k * s.k) / dist
			fx := (dx / dist) * force
			fy := (dy / dist) * force

			f1, f2 := forces[b1], forces[b2]
			forces[b1] = Position{X: f1.X + fx, Y: f1.Y + fy}
			forces[b2] = Position{X: f2.X - fx, Y: f2.Y - fy}
		}
	}

	for _, e := range s.edges {
		src, ok1 := e.Source.(*Body)
		dst, ok2 := e.Target.(*Body)
		if !ok1 || !ok2 || src == dst {
			continue
		}
		dx := src.X - dst.X
		dy := src.Y - dst.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < 0.01 {
			continue
		}

		force := (dist * dist) / s.k
		fx := (dx / dist) * force
		fy := (dy / dist) * force

		f1, f2 := forces[src], forces[dst]
		forces[src] = Position{X: f1.X - fx, Y: f1.Y - fy}
		forces[dst] = Position{X: f2.X + fx, Y: f2.Y + fy}
	}

	cool := 1.0 - float64(s.iter)/float64(s.cfg.Iterations)
	for _, b := range s.bodies {
		if b.Fixed {
			continue
		}
		f := forces[b]
		force := math.Sqrt(f.X*f.X + f.Y*f.Y)
		if force > 0 {
			b.X += (f.X / force) * math.Min(force, s.temperature) * cool
			b.Y += (f.Y / force) * math.Min(force, s.temperature) * cool
		}
		b.X = clamp(b.X, s.cfg.Padding, s.cfg.Width-s.cfg.Padding)
		b.Y = clamp(b.Y, s.cfg.Padding, s.cfg.Height-s.cfg.Padding)
	}

	s.temperature *= 0.95
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}

// normalize scales positions to fit within bounds.
func normalize(bodies []*Body, width, height, padding float64) {
	if len(bodies) == 0 {
		return
	}

	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	for _, b := range bodies {
		minX = math.Min(minX, b.X)
		maxX = math.Max(maxX, b.X)
		minY = math.Min(minY, b.Y)
		maxY = math.Max(maxY, b.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	for _, b := range bodies {
		if rangeX < 0.01 {
			b.X = width / 2
		} else {
			b.X = padding + ((b.X-minX)/rangeX)*targetWidth
		}
		if rangeY < 0.01 {
			b.Y = height / 2
		} else {
			b.Y = padding + ((b.Y-minY)/rangeY)*targetHeight
		}
	}
}
