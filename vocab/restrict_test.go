package vocab

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vocabgo/core"
)

func TestRestriction_Allows(t *testing.T) {
	v := &fakeVocab{ids: map[string]core.WordIndex{"a": 1, "b": 2, "c": 3}}

	r := NewRestriction(v, []string{"a", "c", "missing"})

	require.True(t, r.Allows(core.UnknownWordID))
	require.True(t, r.Allows(1))
	require.False(t, r.Allows(2))
	require.True(t, r.Allows(3))
	require.Equal(t, uint64(3), r.Cardinality())
}

func TestRestriction_UnionIntersect(t *testing.T) {
	v := &fakeVocab{ids: map[string]core.WordIndex{"a": 1, "b": 2, "c": 3}}

	left := NewRestriction(v, []string{"a", "b"})
	right := NewRestriction(v, []string{"b", "c"})

	left.Intersect(right)
	require.True(t, left.Allows(core.UnknownWordID))
	require.False(t, left.Allows(1))
	require.True(t, left.Allows(2))
	require.False(t, left.Allows(3))

	wide := NewRestriction(v, []string{"a"})
	wide.Union(right)
	require.True(t, wide.Allows(1))
	require.True(t, wide.Allows(2))
	require.True(t, wide.Allows(3))
}
