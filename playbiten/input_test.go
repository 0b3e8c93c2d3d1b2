package playbiten

import (
	"testing"

	"github.com/oliverbestmann/play/gm"
	"github.com/stretchr/testify/require"
)

func TestScreenToWorld(t *testing.T) {
	size := gm.VecOf(800, 600)

	require.Equal(t, gm.VecZero, ScreenToWorld(gm.VecOf(400, 300), size))
	require.Equal(t, gm.VecOf(-400, 300), ScreenToWorld(gm.VecZero, size))
	require.Equal(t, gm.VecOf(400, -300), ScreenToWorld(size, size))
}

func TestWorldTransformInvertsScreenToWorld(t *testing.T) {
	size := gm.VecOf(800, 600)
	transform := WorldTransform(size)

	for _, screen := range []gm.Vec{gm.VecZero, gm.VecOf(10, 20), gm.VecOf(799, 1)} {
		world := ScreenToWorld(screen, size)

		x, y := transform.Apply(world.X, world.Y)
		require.InDelta(t, screen.X, x, 1e-9)
		require.InDelta(t, screen.Y, y, 1e-9)
	}
}

func TestBoxCorners(t *testing.T) {
	corners := boxCorners(gm.VecOf(10, 10), 4, 2, 0)
	require.Equal(t, gm.VecOf(8, 9), corners[0])
	require.Equal(t, gm.VecOf(12, 11), corners[2])
}
