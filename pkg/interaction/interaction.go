// Package interaction tracks the keyboard modifier mode that decides how a
// hovered node is highlighted.
package interaction

import (
	"github.com/anthonybishopric/graphfocus/pkg/relation"
)

// Mode is the modifier state.
type Mode int

const (
	// None highlights direct neighbours.
	None Mode = iota
	// Refer (Control held) highlights what the node refers to.
	Refer
	// Referred (Shift held) highlights what refers to the node.
	Referred
)

func (m Mode) String() string {
	switch m {
	case Refer:
		return "refer"
	case Referred:
		return "referred"
	default:
		return "none"
	}
}

// DOM key names the controller reacts to.
const (
	KeyShift   = "Shift"
	KeyControl = "Control"
	KeyEscape  = "Escape"
)

// HighlightMode maps a modifier state to the traversal used for hovering.
func HighlightMode(m Mode) relation.Mode {
	switch m {
	case Referred:
		return relation.In
	case Refer:
		return relation.Out
	default:
		return relation.Normal
	}
}

// Controller is the per-component modifier state machine. It is owned by a
// single component instance and is not safe for concurrent use.
type Controller struct {
	mode    Mode
	onClear func()
}

// NewController returns a controller in None. onClear, if set, runs on
// Escape so the owner can clear its selection.
func NewController(onClear func()) *Controller {
	return &Controller{onClear: onClear}
}

// Mode returns the current modifier state.
func (c *Controller) Mode() Mode { return c.mode }

// HighlightMode returns the traversal for a hover happening now.
func (c *Controller) HighlightMode() relation.Mode { return HighlightMode(c.mode) }

// KeyDown handles a key press. The most recently pressed modifier wins.
func (c *Controller) KeyDown(key string) {
	switch key {
	case KeyShift:
		c.mode = Referred
	case KeyControl:
		c.mode = Refer
	case KeyEscape:
		c.mode = None
		if c.onClear != nil {
			c.onClear()
		}
	}
}

// KeyUp handles a key release. A key only resets the mode it set itself.
func (c *Controller) KeyUp(key string) {
	switch {
	case key == KeyShift && c.mode == Referred:
		c.mode = None
	case key == KeyControl && c.mode == Refer:
		c.mode = None
	}
}

// Reset returns to None without clearing the selection.
func (c *Controller) Reset() { c.mode = None }
