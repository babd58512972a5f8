package scene

import "time"

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float64) float64

// EaseLinear is the identity easing.
func EaseLinear(t float64) float64 { return t }

// Transition animates an element's dash offset towards DashOffsetTo.
// OnEnd runs when the transition completes, not when it is interrupted, and
// may start another transition on the same element.
type Transition struct {
	Duration     time.Duration
	Ease         Ease
	DashOffsetTo float64
	OnEnd        func()
}

type running struct {
	Transition
	from    float64
	elapsed time.Duration
}

// Transition starts t on el, replacing any transition already in flight.
func (s *Scene) Transition(el *Element, t Transition) {
	if el == nil {
		return
	}
	if t.Ease == nil {
		t.Ease = EaseLinear
	}
	el.transition = &running{Transition: t, from: el.DashOffset}
}

// Interrupt stops the transition on el without running its end callback.
func (s *Scene) Interrupt(el *Element) {
	if el == nil {
		return
	}
	el.transition = nil
}

// Active returns the number of transitions in flight.
func (s *Scene) Active() int {
	n := 0
	for _, el := range s.elements() {
		if el.transition != nil {
			n++
		}
	}
	return n
}

// Now returns the virtual clock.
func (s *Scene) Now() time.Duration { return s.clock }

// Advance moves the clock forward by d, stepping every transition and
// running end callbacks as transitions complete.
func (s *Scene) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	s.clock += d
	for _, el := range s.elements() {
		step(el, d)
	}
}

func step(el *Element, d time.Duration) {
	for d > 0 && el.transition != nil {
		tr := el.transition
		remaining := tr.Duration - tr.elapsed
		if d < remaining {
			tr.elapsed += d
			progress := float64(tr.elapsed) / float64(tr.Duration)
			el.DashOffset = tr.from + (tr.DashOffsetTo-tr.from)*tr.Ease(progress)
			return
		}

		d -= remaining
		el.DashOffset = tr.DashOffsetTo
		el.transition = nil
		if tr.OnEnd != nil {
			tr.OnEnd()
		}
		if tr.Duration <= 0 {
			return
		}
	}
}
