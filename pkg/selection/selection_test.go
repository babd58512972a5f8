package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct{ calls []string }

func (r *recorder) record(id string) { r.calls = append(r.calls, id) }

func TestUncontrolledSeedsAndStores(t *testing.T) {
	rec := &recorder{}
	s := NewUncontrolled("5", rec.record)

	assert.False(t, s.Controlled())
	assert.Equal(t, "5", s.Current())

	assert.True(t, s.Set("7"))
	assert.Equal(t, "7", s.Current())
	assert.Equal(t, []string{"7"}, rec.calls)

	assert.False(t, s.Set("7"), "re-selecting the displayed node is not a change")
	assert.Len(t, rec.calls, 1)

	assert.True(t, s.Set(""))
	assert.Equal(t, "", s.Current())
}

func TestUncontrolledIgnoresSync(t *testing.T) {
	s := NewUncontrolled("5", nil)
	assert.False(t, s.Sync("0"))
	assert.Equal(t, "5", s.Current())
}

func TestControlledValueWins(t *testing.T) {
	rec := &recorder{}
	s := NewControlled("10", rec.record)

	assert.True(t, s.Controlled())
	assert.False(t, s.Set("20"), "the owner decides what is displayed")
	assert.Equal(t, "10", s.Current())
	assert.Equal(t, []string{"20"}, rec.calls, "the request is still reported")

	assert.True(t, s.Sync("30"))
	assert.Equal(t, "30", s.Current())
	assert.Equal(t, []string{"20", "30"}, rec.calls, "an owner-driven change is reported")

	assert.False(t, s.Sync("30"))
	assert.Len(t, rec.calls, 2)
}

func TestControlledEchoReportedOnce(t *testing.T) {
	rec := &recorder{}
	s := NewControlled("10", rec.record)

	s.Set("20")
	assert.True(t, s.Sync("20"), "the owner accepts the request")
	assert.Equal(t, "20", s.Current())
	assert.Equal(t, []string{"20"}, rec.calls)

	s.Set("40")
	assert.True(t, s.Sync("50"), "the owner picks something else")
	assert.Equal(t, []string{"20", "40", "50"}, rec.calls)

	assert.True(t, s.Sync("40"), "a stale request is not an echo")
	assert.Equal(t, []string{"20", "40", "50", "40"}, rec.calls)
}

func TestNilCallback(t *testing.T) {
	s := NewControlled("", nil)
	assert.NotPanics(t, func() {
		s.Set("a")
		s.Sync("a")
	})
}
