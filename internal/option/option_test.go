package option

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opt(v string) Option[string] {
	return Option[string]{Value: v, Label: v}
}

func TestNormalizeFlat(t *testing.T) {
	opts := []Option[string]{opt("a"), opt("b")}
	n := Normalize(opts)

	assert.False(t, n.HasGroups)
	assert.Equal(t, opts, n.Flat)
	require.Len(t, n.Grouped, 1)
	assert.Equal(t, "", n.Grouped[0].Label)
	assert.Equal(t, opts, n.Grouped[0].Options)
}

func TestNormalizeDerivesGroupsInFirstSeenOrder(t *testing.T) {
	opts := []Option[string]{
		{Value: "a", Label: "a", Group: "fruit"},
		{Value: "b", Label: "b", Group: "veg"},
		{Value: "c", Label: "c", Group: "fruit"},
		{Value: "d", Label: "d"},
	}
	n := Normalize(opts)

	require.True(t, n.HasGroups)
	require.Len(t, n.Grouped, 3)
	assert.Equal(t, "fruit", n.Grouped[0].Label)
	assert.Equal(t, "veg", n.Grouped[1].Label)
	assert.Equal(t, "", n.Grouped[2].Label, "ungrouped options go in a trailing unlabeled group")
	assert.Len(t, n.Grouped[0].Options, 2)
	assert.Len(t, n.Grouped[2].Options, 1)
	assert.Equal(t, opts, n.Flat, "flat view keeps the input order")
}

func TestNormalizeGroups(t *testing.T) {
	groups := []Group[string]{
		{Label: "fruit", Options: []Option[string]{opt("a"), opt("b")}},
		{Label: "veg", Options: []Option[string]{opt("c")}},
	}
	n := NormalizeGroups(groups)

	require.True(t, n.HasGroups)
	require.Len(t, n.Flat, 3)
	assert.Equal(t, []string{"a", "b", "c"}, Values(n.Flat))
	assert.Equal(t, "fruit", n.Flat[0].Group)
	assert.Equal(t, "veg", n.Flat[2].Group)
}

func TestFindByValue(t *testing.T) {
	opts := []Option[string]{opt("a"), opt("b")}

	found, ok := FindByValue(opts, "b")
	require.True(t, ok)
	assert.Equal(t, "b", found.Value)

	_, ok = FindByValue(opts, "zzz")
	assert.False(t, ok)
	assert.Equal(t, 1, FindIndex(opts, "b"))
	assert.Equal(t, -1, FindIndex(opts, "zzz"))
}

func TestAddRespectsMax(t *testing.T) {
	sel := []Option[string]{opt("a"), opt("b")}

	got := Add(sel, opt("c"), 2)
	assert.Empty(t, cmp.Diff(sel, got), "add at max is a no-op")

	got = Add(sel, opt("c"), 3)
	assert.Equal(t, []string{"a", "b", "c"}, Values(got))
	assert.Len(t, sel, 2, "input not mutated")

	got = Add(sel, opt("a"), 0)
	assert.Equal(t, Values(sel), Values(got), "duplicate add is a no-op")
}

func TestRemoveRespectsMin(t *testing.T) {
	sel := []Option[string]{opt("a"), opt("b")}

	got := Remove(sel, opt("a"), 2)
	assert.Equal(t, Values(sel), Values(got), "remove at min is a no-op")

	got = Remove(sel, opt("a"), 0)
	assert.Equal(t, []string{"b"}, Values(got))

	got = Remove(sel, opt("zzz"), 0)
	assert.Equal(t, Values(sel), Values(got))
}

func TestToggleRoundTrip(t *testing.T) {
	sel := []Option[string]{opt("a")}

	added := Toggle(sel, opt("b"), 0, 0)
	removed := Toggle(added, opt("b"), 0, 0)
	assert.Equal(t, Values(sel), Values(removed), "toggle twice restores the prior selection")
}
