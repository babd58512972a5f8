package relation

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthonybishopric/graphfocus/pkg/graph"
)

func edges(pairs ...string) []graph.Edge {
	out := make([]graph.Edge, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, graph.Edge{Source: pairs[i], Target: pairs[i+1]})
	}
	return out
}

func TestResolveNormal(t *testing.T) {
	es := edges("a", "b", "b", "c", "c", "d", "e", "b")

	r := Resolve(es, "b", Normal)
	assert.Equal(t, []string{"a", "b", "c", "e"}, r.NodeIDs())
	assert.Equal(t, []int{0, 1, 3}, r.EdgeIndices())
}

func TestResolveNormalIsolated(t *testing.T) {
	r := Resolve(edges("a", "b"), "z", Normal)
	assert.Equal(t, []string{"z"}, r.NodeIDs())
	assert.Empty(t, r.EdgeIndices())
}

func TestResolveIn(t *testing.T) {
	// x -> a -> b -> c, y -> b, c -> d
	es := edges("x", "a", "a", "b", "b", "c", "y", "b", "c", "d")

	r := Resolve(es, "c", In)
	assert.Equal(t, []string{"a", "b", "c", "x", "y"}, r.NodeIDs())
	assert.Equal(t, []int{0, 1, 2, 3}, r.EdgeIndices())
	assert.False(t, r.HasNode("d"))
}

func TestResolveOut(t *testing.T) {
	es := edges("x", "a", "a", "b", "b", "c", "y", "b", "c", "d")

	r := Resolve(es, "a", Out)
	assert.Equal(t, []string{"a", "b", "c", "d"}, r.NodeIDs())
	assert.Equal(t, []int{1, 2, 4}, r.EdgeIndices())
}

func TestResolveRecordsDiscoveringEdgesOnly(t *testing.T) {
	// a -> b -> c plus the shortcut a -> c; c's ancestors are found through b
	// first, so the shortcut never discovers a new node.
	es := edges("a", "b", "b", "c", "a", "c")

	r := Resolve(es, "c", In)
	assert.Equal(t, []string{"a", "b", "c"}, r.NodeIDs())
	assert.Equal(t, []int{0, 1}, r.EdgeIndices())
}

func TestResolveSelfLoopAndBackEdge(t *testing.T) {
	es := edges("a", "a", "a", "b", "b", "a")

	in := Resolve(es, "a", In)
	assert.Equal(t, []string{"a", "b"}, in.NodeIDs())
	assert.Equal(t, []int{2}, in.EdgeIndices())

	out := Resolve(es, "a", Out)
	assert.Equal(t, []string{"a", "b"}, out.NodeIDs())
	assert.Equal(t, []int{1}, out.EdgeIndices())

	normal := Resolve(es, "a", Normal)
	assert.Equal(t, []int{0, 1, 2}, normal.EdgeIndices())
}

func TestResolveDuplicateEdgesArePositional(t *testing.T) {
	es := edges("a", "b", "a", "b")

	r := Resolve(es, "a", Normal)
	assert.Equal(t, []int{0, 1}, r.EdgeIndices())
}

type resolved struct{ id string }

func (r *resolved) NodeID() string { return r.id }

func TestResolveResolvedEndpoints(t *testing.T) {
	a, b, c := &resolved{"a"}, &resolved{"b"}, &resolved{"c"}
	es := []graph.Edge{
		{Source: a, Target: b},
		{Source: b, Target: c},
	}

	r := Resolve(es, "c", In)
	assert.Equal(t, []string{"a", "b", "c"}, r.NodeIDs())
}

func TestResolveIgnoresEmptyEndpoints(t *testing.T) {
	es := []graph.Edge{{Source: "a", Target: nil}, {Source: nil, Target: "a"}}

	for _, mode := range Modes {
		r := Resolve(es, "a", mode)
		assert.Equal(t, []string{"a"}, r.NodeIDs(), mode.String())
	}
}

func TestResolveLongChain(t *testing.T) {
	const n = 5000
	es := make([]graph.Edge, 0, n)
	for i := n - 1; i > 0; i-- {
		es = append(es, graph.Edge{Source: strconv.Itoa(i - 1), Target: strconv.Itoa(i)})
	}

	out := Resolve(es, "0", Out)
	assert.Len(t, out.Nodes, n)
	assert.Len(t, out.Edges, n-1)

	in := Resolve(es, strconv.Itoa(n-1), In)
	assert.Len(t, in.Nodes, n)
	assert.True(t, in.HasEdge(0))
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("sideways")
	assert.Error(t, err)
}

// decode turns generated integers into edges over eight nodes "0".."7".
func decode(codes []int, acyclic bool) []graph.Edge {
	var es []graph.Edge
	for _, c := range codes {
		s, t := c/8, c%8
		if acyclic && s >= t {
			continue
		}
		es = append(es, graph.Edge{Source: strconv.Itoa(s), Target: strconv.Itoa(t)})
	}
	return es
}

// reach is an independent breadth-first reachability used as the oracle.
func reach(es []graph.Edge, start string, backward bool) map[string]bool {
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, e := range es {
			from, to := e.SourceID(), e.TargetID()
			if backward {
				from, to = to, from
			}
			if from == id && !seen[to] {
				seen[to] = true
				queue = append(queue, to)
			}
		}
	}
	return seen
}

func sameSet(r Result, want map[string]bool) bool {
	if len(r.Nodes) != len(want) {
		return false
	}
	for id := range want {
		if !r.HasNode(id) {
			return false
		}
	}
	return true
}

func TestResolveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("normal mode is the node plus its direct neighbours", prop.ForAll(
		func(codes []int, n int) bool {
			es := decode(codes, false)
			id := strconv.Itoa(n)
			want := map[string]bool{id: true}
			for _, e := range es {
				if e.SourceID() == id {
					want[e.TargetID()] = true
				}
				if e.TargetID() == id {
					want[e.SourceID()] = true
				}
			}
			return sameSet(Resolve(es, id, Normal), want)
		},
		gen.SliceOf(gen.IntRange(0, 63)),
		gen.IntRange(0, 7),
	))

	properties.Property("in mode on a DAG is the ancestor closure", prop.ForAll(
		func(codes []int, n int) bool {
			es := decode(codes, true)
			id := strconv.Itoa(n)
			return sameSet(Resolve(es, id, In), reach(es, id, true))
		},
		gen.SliceOf(gen.IntRange(0, 63)),
		gen.IntRange(0, 7),
	))

	properties.Property("cyclic traversal terminates with one discovering edge per node", prop.ForAll(
		func(codes []int, n int) bool {
			es := decode(codes, false)
			id := strconv.Itoa(n)
			for _, mode := range []Mode{In, Out} {
				r := Resolve(es, id, mode)
				if !sameSet(r, reach(es, id, mode == In)) {
					return false
				}
				if len(r.Edges) != len(r.Nodes)-1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 63)),
		gen.IntRange(0, 7),
	))

	properties.TestingRun(t)
}
