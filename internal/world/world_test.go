package world

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hamlet/internal/geom"
)

func TestNoiseWorldDeterministic(t *testing.T) {
	a := NewNoiseWorld(DefaultGenConfig())
	b := NewNoiseWorld(DefaultGenConfig())

	for _, p := range []geom.Vec2{{X: 0, Y: 0}, {X: 1234, Y: -987}, {X: -40000, Y: 5}} {
		require.Equal(t, a.Altitude(p), b.Altitude(p))
		require.Equal(t, a.CanHostSettlement(p), b.CanHostSettlement(p))
		if diff := cmp.Diff(a.Column(p), b.Column(p)); diff != "" {
			t.Errorf("Column(%v) mismatch (-a +b):\n%s", p, diff)
		}
	}
}

func TestSmallTestConfigHostsEverywhere(t *testing.T) {
	w := NewNoiseWorld(SmallTestConfig())
	for y := -512; y <= 512; y += 64 {
		for x := -512; x <= 512; x += 64 {
			p := geom.Vec2{X: x, Y: y}
			require.True(t, w.CanHostSettlement(p), "expected %v to be hostable", p)
			alt, ok := w.ApproxAltitude(p)
			require.True(t, ok)
			require.InDelta(t, 64, alt, 9)
		}
	}
}

func TestNearestPath(t *testing.T) {
	w := NewNoiseWorld(SmallTestConfig())

	_, ok := w.NearestPath(geom.Vec2{})
	require.False(t, ok, "no roads registered yet")

	w.AddRoad(geom.Vec2{X: -100, Y: 0}, geom.Vec2{X: 100, Y: 0})

	p, ok := w.NearestPath(geom.Vec2{X: 10, Y: 20})
	require.True(t, ok)
	require.InDelta(t, 20, p.Dist, 1e-4)
	require.Equal(t, geom.Vec2f{X: 10, Y: 0}, p.Nearest)

	_, ok = w.NearestPath(geom.Vec2{X: 10, Y: 500})
	require.False(t, ok, "path beyond range should not be reported")

	col := w.Column(geom.Vec2{X: 0, Y: 3})
	require.NotNil(t, col.Path)
	require.InDelta(t, 3, col.Path.Dist, 1e-4)
}

func TestPlaceSitesRespectsSpacing(t *testing.T) {
	w := NewNoiseWorld(DefaultGenConfig())
	cfg := SiteConfig{Count: 5, Extent: 2048, Spacing: 512}
	sites := PlaceSites(w, cfg, 7)

	require.NotEmpty(t, sites)
	require.LessOrEqual(t, len(sites), cfg.Count)
	for i := range sites {
		require.NotEmpty(t, sites[i].Name)
		require.True(t, w.CanHostSettlement(sites[i].Pos))
		for j := i + 1; j < len(sites); j++ {
			d := sites[i].Pos.DistanceSquared(sites[j].Pos)
			require.GreaterOrEqual(t, d, cfg.Spacing*cfg.Spacing, "sites %d and %d too close", i, j)
		}
	}
	require.Len(t, w.Roads(), len(sites)-1)
}

func TestLocationNameDeterministic(t *testing.T) {
	a := LocationName(rand.New(rand.NewSource(3)))
	b := LocationName(rand.New(rand.NewSource(3)))
	require.Equal(t, a, b)
	require.NotEmpty(t, a)
}

func TestGenerateNamesBeyondSyllablePairs(t *testing.T) {
	pairs := len(namePrefixes) * len(nameSuffixes)
	names := generateNames(rand.New(rand.NewSource(1)), pairs+88)

	require.Len(t, names, pairs+88)
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		require.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true
		require.Equal(t, i >= pairs, strings.HasSuffix(name, " 2"), "name %d: %q", i, name)
	}
}

func TestPlaceSitesManySites(t *testing.T) {
	w := NewNoiseWorld(DefaultGenConfig())
	sites := PlaceSites(w, SiteConfig{Count: 900, Extent: 4096, Spacing: 64}, 1)

	require.NotEmpty(t, sites)
	require.LessOrEqual(t, len(sites), 900)
	seen := make(map[string]bool, len(sites))
	for _, s := range sites {
		require.False(t, seen[s.Name], "duplicate name %q", s.Name)
		seen[s.Name] = true
	}
}
