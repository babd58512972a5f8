package scene

// ScaleExtent bounds the zoom factor.
type ScaleExtent struct {
	Min, Max float64
}

type zoom struct {
	extent ScaleExtent
}

// AttachZoom installs the pan/zoom behaviour, replacing any already
// attached.
func (s *Scene) AttachZoom(extent ScaleExtent) {
	s.zoom = &zoom{extent: extent}
}

// DetachZoom removes the pan/zoom behaviour and resets the transform.
func (s *Scene) DetachZoom() {
	s.zoom = nil
	s.transform = Identity
}

// Zoomable reports whether a pan/zoom behaviour is attached.
func (s *Scene) Zoomable() bool { return s.zoom != nil }

// Transform returns the current pan/zoom transform.
func (s *Scene) Transform() Transform { return s.transform }

// Zoom applies a pan/zoom gesture. The scale is clamped to the attached
// extent; without an attached behaviour the gesture is ignored.
func (s *Scene) Zoom(t Transform) bool {
	if s.zoom == nil {
		return false
	}
	if t.K < s.zoom.extent.Min {
		t.K = s.zoom.extent.Min
	}
	if t.K > s.zoom.extent.Max {
		t.K = s.zoom.extent.Max
	}
	s.transform = t
	return true
}
