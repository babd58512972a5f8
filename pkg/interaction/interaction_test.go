package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anthonybishopric/graphfocus/pkg/relation"
)

func TestTransitions(t *testing.T) {
	cases := []struct {
		name  string
		steps func(c *Controller)
		want  Mode
	}{
		{"initial", func(c *Controller) {}, None},
		{"shift down", func(c *Controller) { c.KeyDown(KeyShift) }, Referred},
		{"control down", func(c *Controller) { c.KeyDown(KeyControl) }, Refer},
		{"shift released", func(c *Controller) {
			c.KeyDown(KeyShift)
			c.KeyUp(KeyShift)
		}, None},
		{"control released", func(c *Controller) {
			c.KeyDown(KeyControl)
			c.KeyUp(KeyControl)
		}, None},
		{"last pressed wins", func(c *Controller) {
			c.KeyDown(KeyShift)
			c.KeyDown(KeyControl)
		}, Refer},
		{"releasing the other key keeps the mode", func(c *Controller) {
			c.KeyDown(KeyShift)
			c.KeyDown(KeyControl)
			c.KeyUp(KeyShift)
		}, Refer},
		{"escape resets", func(c *Controller) {
			c.KeyDown(KeyShift)
			c.KeyDown(KeyEscape)
		}, None},
		{"other keys ignored", func(c *Controller) {
			c.KeyDown(KeyControl)
			c.KeyDown("a")
			c.KeyUp("Alt")
		}, Refer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController(nil)
			tc.steps(c)
			assert.Equal(t, tc.want, c.Mode())
		})
	}
}

func TestEscapeClearsSelection(t *testing.T) {
	cleared := 0
	c := NewController(func() { cleared++ })

	c.KeyDown(KeyEscape)
	assert.Equal(t, 1, cleared)

	c.KeyDown(KeyShift)
	c.Reset()
	assert.Equal(t, None, c.Mode())
	assert.Equal(t, 1, cleared, "Reset does not clear the selection")
}

func TestHighlightMode(t *testing.T) {
	assert.Equal(t, relation.In, HighlightMode(Referred))
	assert.Equal(t, relation.Out, HighlightMode(Refer))
	assert.Equal(t, relation.Normal, HighlightMode(None))

	c := NewController(nil)
	c.KeyDown(KeyShift)
	assert.Equal(t, relation.In, c.HighlightMode())
	assert.Equal(t, "referred", c.Mode().String())
}
