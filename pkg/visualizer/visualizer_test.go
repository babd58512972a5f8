package visualizer

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthonybishopric/graphfocus/pkg/graph"
	"github.com/anthonybishopric/graphfocus/pkg/highlight"
	"github.com/anthonybishopric/graphfocus/pkg/interaction"
	"github.com/anthonybishopric/graphfocus/pkg/layout"
	"github.com/anthonybishopric/graphfocus/pkg/scene"
	"github.com/anthonybishopric/graphfocus/pkg/settings"
)

func options() Options {
	return Options{
		Nodes: []graph.Node{
			{ID: "a", Label: "A"}, {ID: "b", Label: "B"}, {ID: "c", Label: "C"}, {ID: "d", Label: "D"},
		},
		Edges: []graph.Edge{
			{Source: "a", Target: "b"}, {Source: "b", Target: "c"},
		},
		Layout: layout.Config{Iterations: 10, Seed: 1},
	}
}

func drawnIDs(v *Visualizer) []string {
	var out []string
	for _, c := range v.Scene().Circles() {
		out = append(out, c.ID)
	}
	sort.Strings(out)
	return out
}

func TestMountDraws(t *testing.T) {
	v := Mount(options())
	st := v.Settings()

	assert.Equal(t, []string{"a", "b", "c", "d"}, drawnIDs(v))
	assert.Len(t, v.Scene().Lines(), 2)
	assert.Equal(t, DefaultWidth, v.Scene().Width)
	assert.Equal(t, DefaultHeight, v.Scene().Height)
	assert.True(t, v.Scene().Zoomable())
	assert.Equal(t, 1, v.Draws())

	assert.Equal(t, st.NodeColor, v.Scene().Circle("a").Fill)
	assert.Equal(t, st.LinkColor, v.Scene().Line(0).Stroke)

	c, l := v.Scene().Circle("b"), v.Scene().Label("b")
	assert.Equal(t, c.X, l.X)
	assert.Equal(t, c.Y+LabelOffset, l.Y)
	line := v.Scene().Line(0)
	assert.Equal(t, v.Scene().Circle("a").X, line.X)
	assert.Equal(t, c.Y, line.Y2)
}

func TestFilterOrphanOption(t *testing.T) {
	opts := options()
	opts.FilterOrphan = true
	v := Mount(opts)
	assert.Equal(t, []string{"a", "b", "c"}, drawnIDs(v))
}

func TestUncontrolledClickSelects(t *testing.T) {
	var reported []string
	opts := options()
	opts.OnSelectNode = func(id string) { reported = append(reported, id) }
	v := Mount(opts)

	v.Click("c")
	assert.Equal(t, "c", v.Selected())
	assert.Equal(t, []string{"c"}, reported)
	assert.Equal(t, []string{"b", "c"}, drawnIDs(v))
	assert.Equal(t, v.Settings().FocusColor, v.Scene().Circle("c").Fill)
	assert.Equal(t, 2, v.Draws())

	v.Click("c")
	assert.Equal(t, []string{"c"}, reported, "re-clicking the selection is not a change")

	v.Click("a")
	assert.Equal(t, "c", v.Selected(), "only drawn nodes are clickable")
}

func TestDefaultSelection(t *testing.T) {
	opts := options()
	opts.DefaultSelectedNodeID = "d"
	v := Mount(opts)

	assert.Equal(t, []string{"d"}, drawnIDs(v))
	assert.Empty(t, v.Scene().Lines())
}

func TestControlledSelection(t *testing.T) {
	var reported []string
	selected := "b"
	opts := options()
	opts.SelectedNodeID = &selected
	opts.OnSelectNode = func(id string) { reported = append(reported, id) }
	v := Mount(opts)
	assert.Equal(t, []string{"a", "b", "c"}, drawnIDs(v))

	v.Click("a")
	assert.Equal(t, "b", v.Selected(), "the owner's value wins")
	assert.Equal(t, []string{"a"}, reported)

	next := "a"
	opts.SelectedNodeID = &next
	v.Update(opts)
	assert.Equal(t, "a", v.Selected())
	assert.Equal(t, []string{"a"}, reported, "echoing the clicked value is reported once")
	assert.Equal(t, []string{"a", "b"}, drawnIDs(v))

	v.Update(opts)
	assert.Len(t, reported, 1, "an unchanged value is not reported")

	other := "c"
	opts.SelectedNodeID = &other
	v.Update(opts)
	assert.Equal(t, []string{"a", "c"}, reported, "an owner-driven change is reported")
}

func TestEscapeClearsSelection(t *testing.T) {
	opts := options()
	opts.DefaultSelectedNodeID = "b"
	v := Mount(opts)

	v.KeyDown(interaction.KeyShift)
	v.KeyDown(interaction.KeyEscape)
	assert.Equal(t, interaction.None, v.Mode())
	assert.Empty(t, v.Selected())
	assert.Len(t, drawnIDs(v), 4)
}

func TestHoverUsesModeAtHoverTime(t *testing.T) {
	v := Mount(options())
	st := v.Settings()

	v.KeyDown(interaction.KeyShift)
	v.Hover("c")
	assert.Equal(t, st.GraphInColor, v.Scene().Circle("a").Fill)
	assert.Equal(t, st.GraphInColor, v.Scene().Circle("c").Fill)
	assert.Equal(t, st.GrayColor, v.Scene().Circle("d").Fill)
	assert.Equal(t, highlight.DashPattern, v.Scene().Line(0).DashArray)

	v.KeyUp(interaction.KeyShift)
	assert.Equal(t, st.GraphInColor, v.Scene().Circle("a").Fill, "mode changes do not restyle retroactively")

	v.HoverOut()
	assert.Equal(t, st.NodeColor, v.Scene().Circle("a").Fill)
	assert.Zero(t, v.Scene().Active())

	v.KeyDown(interaction.KeyControl)
	v.Hover("b")
	assert.Equal(t, st.GraphOutColor, v.Scene().Circle("c").Fill)
	assert.Equal(t, st.GrayColor, v.Scene().Circle("a").Fill)
}

func TestAdvanceAnimatesDash(t *testing.T) {
	v := Mount(options())
	v.KeyDown(interaction.KeyControl)
	v.Hover("a")

	v.Advance(highlight.DashPeriod / 4)
	assert.InDelta(t, highlight.DashTravel/4, v.Scene().Line(0).DashOffset, 1e-9)
}

func TestRedrawTearsDown(t *testing.T) {
	v := Mount(options())
	v.KeyDown(interaction.KeyShift)
	v.Hover("c")
	old := v.Simulation()
	require.NotZero(t, v.Scene().Active())

	v.Update(options())
	assert.True(t, old.Done(), "the previous simulation is stopped")
	assert.Zero(t, v.Scene().Active())
	assert.Equal(t, 10, v.Scene().Len(), "no duplicate elements")
}

func TestUpdateAppliesSettingsAndSize(t *testing.T) {
	v := Mount(options())
	opts := options()
	red := "red"
	opts.Settings = settings.Overrides{NodeColor: &red}
	opts.Width, opts.Height = 300, 200
	v.Update(opts)

	assert.Equal(t, "red", v.Scene().Circle("a").Fill)
	assert.Equal(t, 300, v.Scene().Width)
	assert.Equal(t, 200, v.Scene().Height)
}

func TestDragPins(t *testing.T) {
	v := Mount(options())
	v.Drag("b", 111, 222)

	c := v.Scene().Circle("b")
	assert.Equal(t, 111.0, c.X)
	assert.Equal(t, 222.0, c.Y)
	assert.True(t, v.Simulation().Body("b").Fixed)

	v.Release("b")
	assert.False(t, v.Simulation().Body("b").Fixed)
}

func TestZoomClamps(t *testing.T) {
	v := Mount(options())
	assert.True(t, v.Zoom(scene.Transform{K: 10}))
	assert.Equal(t, ZoomExtent.Max, v.Scene().Transform().K)
}

func TestCallerDataUntouched(t *testing.T) {
	opts := options()
	opts.Edges[0].Source = &opts.Nodes[0]
	v := Mount(opts)
	v.Drag("a", 1, 1)

	assert.Same(t, &opts.Nodes[0], opts.Edges[0].Source)
	assert.Equal(t, "A", opts.Nodes[0].Label)
	assert.Len(t, v.Scene().Lines(), 2)
}

func TestEmptyGraph(t *testing.T) {
	v := Mount(Options{})
	assert.Zero(t, v.Scene().Len())
	assert.NotPanics(t, func() {
		v.Hover("x")
		v.HoverOut()
		v.Click("x")
	})
}

func TestUnmount(t *testing.T) {
	v := Mount(options())
	v.Unmount()

	assert.False(t, v.Mounted())
	assert.Zero(t, v.Scene().Len())
	assert.False(t, v.Scene().Zoomable())
	assert.Nil(t, v.Simulation())

	v.KeyDown(interaction.KeyShift)
	v.Hover("a")
	v.Update(options())
	assert.Zero(t, v.Scene().Len())
	assert.Equal(t, interaction.None, v.Mode())
}
