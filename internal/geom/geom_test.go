package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSpiralOrder(t *testing.T) {
	want := []Vec2{
		{0, 0},
		{-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0},
		{-2, -2},
	}
	if diff := cmp.Diff(want, SpiralOffsets(len(want))); diff != "" {
		t.Errorf("SpiralOffsets mismatch (-want +got):\n%s", diff)
	}
}

func TestSpiralCoversRadius(t *testing.T) {
	const r = 4
	seen := make(map[Vec2]bool)
	for _, p := range SpiralOffsets(SpiralCount(r)) {
		require.LessOrEqual(t, p.Chebyshev(), r)
		require.False(t, seen[p], "offset %v repeated", p)
		seen[p] = true
	}
	require.Len(t, seen, 81)
	require.Zero(t, SpiralCount(-1))
}

func TestDirOf(t *testing.T) {
	for d := North; d <= West; d++ {
		got, ok := DirOf(d.Vec().Scale(3))
		require.True(t, ok)
		require.Equal(t, d, got)
		require.Equal(t, d.Vec().Scale(-1), d.Opposite().Vec())
	}
	_, ok := DirOf(Vec2{X: 1, Y: 1})
	require.False(t, ok)
	_, ok = DirOf(Vec2{})
	require.False(t, ok)
}

func TestEuclideanDivision(t *testing.T) {
	require.Equal(t, -1, DivEuclid(-1, 32))
	require.Equal(t, 0, DivEuclid(31, 32))
	require.Equal(t, -2, DivEuclid(-33, 32))
	require.Equal(t, 31, RemEuclid(-1, 32))
	require.Equal(t, 3, RemEuclid(-7, 5))
	require.Equal(t, Vec2{X: -1, Y: 1}, Vec2{X: -5, Y: 40}.DivEuclid(32))
}

func TestBoxes(t *testing.T) {
	a := Aabr{Min: Vec2{0, 0}, Max: Vec2{4, 4}}
	require.True(t, a.CollidesWith(Aabr{Min: Vec2{4, 4}, Max: Vec2{6, 6}}), "touching boxes collide")
	require.False(t, a.CollidesWith(Aabr{Min: Vec2{5, 0}, Max: Vec2{6, 6}}))
	require.Equal(t, Vec2{2, 2}, a.Center())
}

func TestProjectOntoSegment(t *testing.T) {
	a, b := Vec2f{X: 0, Y: 0}, Vec2f{X: 10, Y: 0}
	require.Equal(t, Vec2f{X: 3, Y: 0}, ProjectOntoSegment(Vec2f{X: 3, Y: 5}, a, b))
	require.Equal(t, a, ProjectOntoSegment(Vec2f{X: -3, Y: 1}, a, b))
	require.Equal(t, b, ProjectOntoSegment(Vec2f{X: 30, Y: 1}, a, b))
	require.Equal(t, a, ProjectOntoSegment(Vec2f{X: 1, Y: 1}, a, a))
}

func TestRandomField(t *testing.T) {
	f := NewRandomField(7)
	p := Vec3{X: 3, Y: -9, Z: 2}
	require.Equal(t, f.Get(p), NewRandomField(7).Get(p))
	require.NotEqual(t, f.Get(p), NewRandomField(8).Get(p))

	hits := 0
	for x := 0; x < 200; x++ {
		for y := 0; y < 200; y++ {
			if f.Chance(Vec3{X: x, Y: y}, 0.25) {
				hits++
			}
		}
	}
	require.InDelta(t, 10000, hits, 600)
}
