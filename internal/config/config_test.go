package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/terrain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hamlet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
seed: 7
origin: {x: 100, y: -200}
log_level: debug
settlement:
  walls: true
world:
  sea_level: 50
colors:
  plot_grass: {r: 1, g: 2, b: 3}
`)
	got, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.Seed = 7
	want.Origin = geom.Vec2{X: 100, Y: -200}
	want.LogLevel = "debug"
	want.Settlement.Walls = true
	want.World.SeaLevel = 50
	want.Colors.PlotGrass = terrain.NewRgb(1, 2, 3)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "seed: [1, 2"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "log_level: loud"))
	require.ErrorIs(t, err, ErrUnknownLevel)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("trace")
	require.ErrorIs(t, err, ErrUnknownLevel)
}
