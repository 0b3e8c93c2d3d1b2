package play

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryLookupOrder(t *testing.T) {
	r := NewRegistry()

	touchA := &Callback{Kind: WhenTouching}
	touchB := &Callback{Kind: WhenTouching}
	stop := &Callback{Kind: WhenStoppedTouching}

	r.Register(WhenStoppedTouching, 1, stop)
	r.Register(WhenTouching, 1, touchA)
	r.Register(WhenTouching, 1, touchB)
	r.Register(WhenTouching, 2, &Callback{Kind: WhenTouching})

	require.Equal(t, []*Callback{touchA, touchB, stop}, r.Lookup(1, WhenTouching, WhenStoppedTouching))
	require.Empty(t, r.Lookup(3, WhenTouching))
	require.Empty(t, r.Lookup(1, WhenClicked))
}

func TestRegistryAllowsDuplicates(t *testing.T) {
	r := NewRegistry()

	cb := &Callback{Kind: WhenClicked}
	r.Register(WhenClicked, 1, cb)
	r.Register(WhenClicked, 1, cb)

	require.Len(t, r.Lookup(1, WhenClicked), 2)
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()

	a := &Callback{Kind: WhenTouching}
	b := &Callback{Kind: WhenTouching}
	r.Register(WhenTouching, 1, a)
	r.Register(WhenTouching, 1, b)

	require.True(t, r.Remove(WhenTouching, 1, a))
	require.False(t, r.Remove(WhenTouching, 1, a))
	require.Equal(t, []*Callback{b}, r.Lookup(1, WhenTouching))

	require.Equal(t, []*Callback{b}, r.RemoveAll(WhenTouching, 1))
	require.Empty(t, r.Lookup(1, WhenTouching))
	require.Empty(t, r.RemoveAll(WhenTouching, 1))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "when_touching", WhenTouching.String())
	require.Equal(t, "repeat_forever", RepeatForever.String())
	require.Equal(t, "unknown", Kind(0).String())
}
