package astar

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type pt struct{ x, y int }

func grid(blocked map[pt]bool) func(pt) []pt {
	return func(p pt) []pt {
		var out []pt
		for _, d := range []pt{{0, 1}, {1, 0}, {0, -1}, {-1, 0}} {
			n := pt{p.x + d.x, p.y + d.y}
			if !blocked[n] {
				out = append(out, n)
			}
		}
		return out
	}
}

func euclid(goal pt) func(pt) float32 {
	return func(p pt) float32 {
		dx, dy := float64(p.x-goal.x), float64(p.y-goal.y)
		return float32(math.Sqrt(dx*dx + dy*dy))
	}
}

func unit(pt, pt) float32 { return 1 }

func TestSearchStraightLine(t *testing.T) {
	goal := pt{4, 0}
	path, ok := Search(pt{0, 0}, 250, euclid(goal), grid(nil), unit, func(p pt) bool { return p == goal })
	require.True(t, ok)

	want := []pt{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}
	if diff := cmp.Diff(want, path, cmp.AllowUnexported(pt{})); diff != "" {
		t.Errorf("Search mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchStartIsGoal(t *testing.T) {
	start := pt{3, 3}
	path, ok := Search(start, 1, euclid(start), grid(nil), unit, func(p pt) bool { return p == start })
	require.True(t, ok)
	require.Equal(t, []pt{start}, path)
}

func TestSearchAroundWall(t *testing.T) {
	blocked := map[pt]bool{}
	for y := -3; y <= 3; y++ {
		blocked[pt{2, y}] = true
	}
	goal := pt{4, 0}
	path, ok := Search(pt{0, 0}, 250, euclid(goal), grid(blocked), unit, func(p pt) bool { return p == goal })
	require.True(t, ok)

	for _, p := range path {
		require.False(t, blocked[p], "path crosses wall at %v", p)
	}
	// Detour over y=4 (or y=-4) costs 4 up + 4 across + 4 down.
	require.Len(t, path, 13)
}

func TestSearchBudgetExhausted(t *testing.T) {
	goal := pt{100, 100}
	_, ok := Search(pt{0, 0}, 250, euclid(goal), grid(nil), unit, func(p pt) bool { return p == goal })
	require.False(t, ok)
}

func TestSearchUnreachable(t *testing.T) {
	goal := pt{5, 5}
	none := func(pt) []pt { return nil }
	_, ok := Search(pt{0, 0}, 250, euclid(goal), none, unit, func(p pt) bool { return p == goal })
	require.False(t, ok)
}

func TestSearchPrefersCheaperTiles(t *testing.T) {
	// Straight row y=0 is expensive; row y=1 is cheap.
	cost := func(_, to pt) float32 {
		if to.y == 0 && to.x > 0 && to.x < 6 {
			return 10
		}
		return 1
	}
	goal := pt{6, 0}
	path, ok := Search(pt{0, 0}, 250, func(pt) float32 { return 0 }, grid(nil), cost, func(p pt) bool { return p == goal })
	require.True(t, ok)
	for _, p := range path[1 : len(path)-1] {
		require.NotEqual(t, 0, p.y, "path should avoid expensive row, went through %v", p)
	}
}

func TestSearchDeterministic(t *testing.T) {
	goal := pt{5, 7}
	run := func() []pt {
		path, ok := Search(pt{0, 0}, 250, euclid(goal), grid(nil), unit, func(p pt) bool { return p == goal })
		require.True(t, ok)
		return path
	}
	first := run()
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, run(), cmp.AllowUnexported(pt{})); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}
