package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body struct{ id string }

func (b *body) NodeID() string { return b.id }

func TestEndpointID(t *testing.T) {
	n := &Node{ID: "n1"}
	var nilNode *Node

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"raw string", "a", "a"},
		{"node pointer", n, "n1"},
		{"nil node pointer", nilNode, ""},
		{"resolved body", &body{id: "b"}, "b"},
		{"decoded object", map[string]any{"id": "c", "x": 1.5}, "c"},
		{"decoded object without id", map[string]any{"x": 1.5}, ""},
		{"json number", float64(10), "10"},
		{"yaml int", 7, "7"},
		{"nil", nil, ""},
		{"unknown", struct{}{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EndpointID(tc.in))
		})
	}
}

func TestEdgeReadsBothForms(t *testing.T) {
	raw := Edge{Source: "a", Target: "b"}
	resolved := Edge{Source: &body{id: "a"}, Target: &Node{ID: "b"}}

	assert.Equal(t, raw.SourceID(), resolved.SourceID())
	assert.Equal(t, raw.TargetID(), resolved.TargetID())
	assert.True(t, resolved.Touches("b"))
	assert.False(t, resolved.Touches("c"))
}

func TestCloneDoesNotAlias(t *testing.T) {
	nodes := []Node{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}}
	shared := &body{id: "a"}
	edges := []Edge{{Source: shared, Target: "b"}}

	cn, ce := Clone(nodes, edges)
	cn[0].Label = "changed"
	ce[0].Target = "z"

	assert.Equal(t, "A", nodes[0].Label)
	assert.Equal(t, "b", edges[0].Target)
	assert.Equal(t, "a", ce[0].Source, "resolved endpoints are normalised to raw ids")
	assert.Same(t, shared, edges[0].Source)
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "A", Node{ID: "a", Label: "A"}.DisplayLabel())
	assert.Equal(t, "a", Node{ID: "a"}.DisplayLabel())
}

func TestDecodeJSON(t *testing.T) {
	src := `{"nodes":[{"id":"1","label":"one"},{"id":"2","label":"two"}],
		"edges":[{"source":"1","target":"2"}]}`

	doc, err := Decode(strings.NewReader(src), FormatJSON)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 2)
	require.Len(t, doc.Edges, 1)
	assert.Equal(t, "1", doc.Edges[0].SourceID())
	assert.Equal(t, "2", doc.Edges[0].TargetID())
}

func TestDecodeYAML(t *testing.T) {
	src := `
nodes:
  - id: a
    label: A
  - id: b
    label: B
edges:
  - source: a
    target: b
`
	doc, err := Decode(strings.NewReader(src), FormatYAML)
	require.NoError(t, err)
	assert.Len(t, doc.View().Nodes, 2)
	assert.Equal(t, "a", doc.Edges[0].SourceID())
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"nodes": [`), FormatJSON)
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("g.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("G.YAML"))
	assert.Equal(t, FormatJSON, FormatForPath("g.json"))
	assert.Equal(t, FormatJSON, FormatForPath("g"))
}
