package set

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetKeepsInsertionOrder(t *testing.T) {
	var s Set[int]

	require.True(t, s.Insert(3))
	require.True(t, s.Insert(1))
	require.True(t, s.Insert(2))
	require.False(t, s.Insert(1))

	require.Equal(t, []int{3, 1, 2}, s.Slice())

	require.True(t, s.Remove(1))
	require.False(t, s.Remove(1))
	require.Equal(t, []int{3, 2}, s.Slice())
	require.True(t, s.Has(2))
	require.False(t, s.Has(1))

	// index must be consistent after removal
	require.True(t, s.Remove(2))
	require.Equal(t, []int{3}, s.Slice())
}

func TestSetValuesAllowsMutation(t *testing.T) {
	var s Set[string]
	s.Insert("a")
	s.Insert("b")

	for value := range s.Values() {
		s.Remove(value)
	}

	require.Zero(t, s.Len())
	require.Empty(t, slices.Collect(s.Values()))
}
