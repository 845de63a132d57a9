package persistence

import (
	"database/sql"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/settlement"
	"github.com/talgya/hamlet/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "hamlet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	db := openTestDB(t)
	run, err := db.NewRun(42)
	require.NoError(t, err)

	w := world.NewNoiseWorld(world.SmallTestConfig())
	params := settlement.Params{Walls: true, Roads: true}
	s := settlement.GenerateWith(geom.Vec2{X: 320, Y: -640}, w, rand.New(rand.NewSource(42)), params)
	want := s.Snapshot()

	id, err := db.SaveSettlement(run, want)
	require.NoError(t, err)

	got, err := db.LoadSnapshot(id)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadSnapshot mismatch (-want +got):\n%s", diff)
	}

	rows, err := db.Settlements(run)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, id, rows[0].ID)
	require.Equal(t, want.Name, rows[0].Name)
	require.Equal(t, want.Origin, rows[0].Origin())
}

func TestRuns(t *testing.T) {
	db := openTestDB(t)
	a, err := db.NewRun(1)
	require.NoError(t, err)
	b, err := db.NewRun(2)
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	runs, err := db.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	got := map[int64]bool{}
	for _, r := range runs {
		got[r.Seed] = true
	}
	require.Equal(t, map[int64]bool{1: true, 2: true}, got)
}

func TestLoadMissingSnapshot(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LoadSnapshot(99)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveMeta("last_run", "a"))
	require.NoError(t, db.SaveMeta("last_run", "b"))

	v, err := db.GetMeta("last_run")
	require.NoError(t, err)
	require.Equal(t, "b", v)

	_, err = db.GetMeta("missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
}
