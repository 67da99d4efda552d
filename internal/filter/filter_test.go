package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selectkit/internal/option"
)

func opts(labels ...string) []option.Option[string] {
	out := make([]option.Option[string], len(labels))
	for i, l := range labels {
		out[i] = option.Option[string]{Value: l, Label: l}
	}
	return out
}

func TestSubstring(t *testing.T) {
	o := option.Option[string]{Value: "a", Label: "Green Apple"}

	assert.True(t, Substring(o, "apple"))
	assert.True(t, Substring(o, "EEN"))
	assert.True(t, Substring(o, ""))
	assert.False(t, Substring(o, "banana"))
}

func TestPrefix(t *testing.T) {
	o := option.Option[string]{Value: "a", Label: "Green Apple"}

	assert.True(t, Prefix(o, "gre"))
	assert.False(t, Prefix(o, "apple"))
}

func TestFuzzy(t *testing.T) {
	o := option.Option[string]{Value: "a", Label: "Green Apple"}

	assert.True(t, Fuzzy(o, "gapl"))
	assert.False(t, Fuzzy(o, "xyz"))
}

func TestMultiField(t *testing.T) {
	o := option.Option[string]{
		Value:       "a",
		Label:       "Apple",
		Description: "a crisp fruit",
	}
	fn := MultiField(func(o option.Option[string]) []string {
		return []string{o.Label, o.Description}
	})

	assert.True(t, fn(o, "crisp"))
	assert.True(t, fn(o, "apple"))
	assert.False(t, fn(o, "soggy"))
}

func TestApplyPreservesOrder(t *testing.T) {
	src := opts("banana", "apple", "cherry", "apricot")

	got := Apply(src, "ap", Substring[string])
	require.Len(t, got, 2)
	assert.Equal(t, "apple", got[0].Label)
	assert.Equal(t, "apricot", got[1].Label)

	// Subsequence property: every filtered result appears in the source in
	// the same relative order.
	last := -1
	for _, g := range got {
		idx := option.FindIndex(src, g.Value)
		require.Greater(t, idx, last)
		last = idx
	}
}

func TestApplyEmptyQueryReturnsInput(t *testing.T) {
	src := opts("a", "b")
	assert.Equal(t, src, Apply(src, "", Substring[string]))
	assert.Equal(t, src, Apply(src, "a", nil))
}

func TestRankScoredOrdersByRelevance(t *testing.T) {
	src := opts("application", "apple", "grape")

	got := RankScored(src, "apple")
	require.NotEmpty(t, got)
	assert.Equal(t, "apple", got[0].Option.Label, "exact-ish match ranks first")

	all := RankScored(src, "")
	assert.Len(t, all, len(src))
}
