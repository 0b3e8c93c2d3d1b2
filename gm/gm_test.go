package gm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVecDistance(t *testing.T) {
	require.InDelta(t, 5.0, VecOf(0, 0).DistanceTo(VecOf(3, 4)), 1e-9)
	require.Equal(t, VecZero, VecZero.Normalized())
	require.InDelta(t, 1.0, VecOf(3, 4).Normalized().Length(), 1e-9)
}

func TestVecIsNaN(t *testing.T) {
	require.False(t, VecOf(1, 2).IsNaN())
	require.True(t, VecOf(math.NaN(), 2).IsNaN())
}

func TestRectIntersects(t *testing.T) {
	a := RectWithCenterAndSize(VecZero, VecSplat(10))
	b := RectWithCenterAndSize(VecOf(9, 0), VecSplat(10))
	c := RectWithCenterAndSize(VecOf(11, 0), VecSplat(10))

	require.True(t, a.Intersects(b))
	require.False(t, a.Intersects(c))
	require.Equal(t, VecOf(-5, 5), a.TopLeft())
	require.Equal(t, VecOf(5, -5), a.BottomRight())
}

func TestRadNormalized(t *testing.T) {
	require.InDelta(t, 90.0, DegToRad(90).Degrees(), 1e-9)
	require.InDelta(t, -math.Pi/2, DegToRad(270).Normalized().Radians(), 1e-9)
}
