// Package selection tracks the focused node and derives the filtered view
// drawn around it.
package selection

// Selection holds the focused node ID. The empty ID means nothing is
// selected.
//
// A controlled Selection displays the value supplied by its owner; Set only
// reports the request through the change callback. An uncontrolled
// Selection stores the value itself.
type Selection struct {
	controlled bool
	value      string
	onChange   func(id string)

	// requested is the last value Set reported in controlled mode and the
	// owner has not yet synced.
	requested *string
}

// NewControlled returns a Selection whose displayed value is owned by the
// caller and updated through Sync.
func NewControlled(value string, onChange func(id string)) *Selection {
	return &Selection{controlled: true, value: value, onChange: onChange}
}

// NewUncontrolled returns a Selection seeded with defaultID.
func NewUncontrolled(defaultID string, onChange func(id string)) *Selection {
	return &Selection{value: defaultID, onChange: onChange}
}

// Controlled reports whether the owner controls the displayed value.
func (s *Selection) Controlled() bool { return s.controlled }

// Current returns the displayed selection.
func (s *Selection) Current() string { return s.value }

// Set requests a new selection and reports whether the displayed value
// changed. The change callback fires whenever id differs from the displayed
// value, in both modes.
func (s *Selection) Set(id string) bool {
	if id == s.value {
		return false
	}
	if s.onChange != nil {
		s.onChange(id)
	}
	if s.controlled {
		s.requested = &id
		return false
	}
	s.value = id
	return true
}

// Sync applies the owner's value in controlled mode, firing the change
// callback when it differs from the previous one. A value that echoes the
// last request from Set was already reported and is not reported again.
// It reports whether the displayed value changed. Uncontrolled selections
// ignore Sync: their default only seeds the initial value.
func (s *Selection) Sync(value string) bool {
	if !s.controlled {
		return false
	}
	echo := s.requested != nil && *s.requested == value
	s.requested = nil
	if value == s.value {
		return false
	}
	s.value = value
	if s.onChange != nil && !echo {
		s.onChange(value)
	}
	return true
}
