// Package persistence provides SQLite-based storage for generated
// settlements. Each generation run gets a UUID; settlements saved under a
// run keep their tiles, farms and structures in separate tables.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/land"
	"github.com/talgya/hamlet/internal/settlement"
	"github.com/talgya/hamlet/internal/town"
)

// DB wraps a SQLite connection for settlement storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settlements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		name TEXT NOT NULL,
		seed INTEGER NOT NULL,
		origin_x INTEGER NOT NULL,
		origin_y INTEGER NOT NULL,
		town_x INTEGER,
		town_y INTEGER,
		plots_json TEXT NOT NULL,
		districts_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tiles (
		settlement_id INTEGER NOT NULL REFERENCES settlements(id),
		seq INTEGER NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		plot INTEGER NOT NULL,
		way_n INTEGER NOT NULL,
		way_e INTEGER NOT NULL,
		way_s INTEGER NOT NULL,
		way_w INTEGER NOT NULL,
		tower INTEGER NOT NULL,
		PRIMARY KEY (settlement_id, seq)
	);

	CREATE TABLE IF NOT EXISTS farms (
		settlement_id INTEGER NOT NULL REFERENCES settlements(id),
		seq INTEGER NOT NULL,
		base_x INTEGER NOT NULL,
		base_y INTEGER NOT NULL,
		PRIMARY KEY (settlement_id, seq)
	);

	CREATE TABLE IF NOT EXISTS structures (
		settlement_id INTEGER NOT NULL REFERENCES settlements(id),
		seq INTEGER NOT NULL,
		kind TEXT NOT NULL,
		min_x INTEGER NOT NULL,
		min_y INTEGER NOT NULL,
		min_z INTEGER NOT NULL,
		max_x INTEGER NOT NULL,
		max_y INTEGER NOT NULL,
		max_z INTEGER NOT NULL,
		PRIMARY KEY (settlement_id, seq)
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_settlements_run ON settlements(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run is one generation run.
type Run struct {
	ID        uuid.UUID `db:"id"`
	Seed      int64     `db:"seed"`
	CreatedAt string    `db:"created_at"`
}

// NewRun records a run and returns its id.
func (db *DB) NewRun(seed int64) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.conn.Exec(
		"INSERT INTO runs (id, seed, created_at) VALUES (?, ?, ?)",
		id.String(), seed, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// Runs returns every recorded run, oldest first.
func (db *DB) Runs() ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, "SELECT id, seed, created_at FROM runs ORDER BY created_at, id")
	return runs, err
}

// SettlementRow is the summary row of a saved settlement.
type SettlementRow struct {
	ID      int64  `db:"id"`
	RunID   string `db:"run_id"`
	Name    string `db:"name"`
	Seed    uint32 `db:"seed"`
	OriginX int    `db:"origin_x"`
	OriginY int    `db:"origin_y"`
	TownX   *int   `db:"town_x"`
	TownY   *int   `db:"town_y"`
}

// Origin returns the saved world origin.
func (r SettlementRow) Origin() geom.Vec2 { return geom.Vec2{X: r.OriginX, Y: r.OriginY} }

// SaveSettlement writes a settlement snapshot under run and returns its id.
func (db *DB) SaveSettlement(run uuid.UUID, snap settlement.Snapshot) (int64, error) {
	plotsJSON, err := json.Marshal(snap.Plots)
	if err != nil {
		return 0, fmt.Errorf("encode plots: %w", err)
	}
	districtsJSON, err := json.Marshal(snap.Districts)
	if err != nil {
		return 0, fmt.Errorf("encode districts: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var townX, townY *int
	if snap.TownBase != nil {
		townX, townY = &snap.TownBase.X, &snap.TownBase.Y
	}
	res, err := tx.Exec(`INSERT INTO settlements
		(run_id, name, seed, origin_x, origin_y, town_x, town_y, plots_json, districts_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.String(), snap.Name, snap.Seed, snap.Origin.X, snap.Origin.Y,
		townX, townY, string(plotsJSON), string(districtsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("insert settlement %q: %w", snap.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	tileStmt, err := tx.Preparex(`INSERT INTO tiles
		(settlement_id, seq, x, y, plot, way_n, way_e, way_s, way_w, tower)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer tileStmt.Close()

	for i, e := range snap.Tiles {
		w := e.Tile.Ways
		_, err := tileStmt.Exec(id, i, e.Pos.X, e.Pos.Y, e.Tile.Plot,
			w[geom.North], w[geom.East], w[geom.South], w[geom.West], e.Tile.Tower)
		if err != nil {
			return 0, fmt.Errorf("insert tile %v: %w", e.Pos, err)
		}
	}

	for i, f := range snap.Farms {
		_, err := tx.Exec("INSERT INTO farms (settlement_id, seq, base_x, base_y) VALUES (?, ?, ?, ?)",
			id, i, f.BaseTile.X, f.BaseTile.Y)
		if err != nil {
			return 0, fmt.Errorf("insert farm %d: %w", i, err)
		}
	}

	for i, st := range snap.Structures {
		b := st.Bounds
		_, err := tx.Exec(`INSERT INTO structures
			(settlement_id, seq, kind, min_x, min_y, min_z, max_x, max_y, max_z)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, st.Kind, b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
		if err != nil {
			return 0, fmt.Errorf("insert structure %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	slog.Info("settlement saved", "id", id, "name", snap.Name, "tiles", len(snap.Tiles), "structures", len(snap.Structures))
	return id, nil
}

// Settlements returns the summary rows saved under run.
func (db *DB) Settlements(run uuid.UUID) ([]SettlementRow, error) {
	var rows []SettlementRow
	err := db.conn.Select(&rows, `SELECT id, run_id, name, seed, origin_x, origin_y, town_x, town_y
		FROM settlements WHERE run_id = ? ORDER BY id`, run.String())
	return rows, err
}

type settlementRecord struct {
	SettlementRow
	PlotsJSON     string `db:"plots_json"`
	DistrictsJSON string `db:"districts_json"`
}

type tileRow struct {
	X     int          `db:"x"`
	Y     int          `db:"y"`
	Plot  land.PlotID  `db:"plot"`
	WayN  land.WayKind `db:"way_n"`
	WayE  land.WayKind `db:"way_e"`
	WayS  land.WayKind `db:"way_s"`
	WayW  land.WayKind `db:"way_w"`
	Tower land.Tower   `db:"tower"`
}

type structureRow struct {
	Kind string `db:"kind"`
	MinX int    `db:"min_x"`
	MinY int    `db:"min_y"`
	MinZ int    `db:"min_z"`
	MaxX int    `db:"max_x"`
	MaxY int    `db:"max_y"`
	MaxZ int    `db:"max_z"`
}

// LoadSnapshot reads back a saved settlement.
func (db *DB) LoadSnapshot(id int64) (settlement.Snapshot, error) {
	var rec settlementRecord
	err := db.conn.Get(&rec, `SELECT id, run_id, name, seed, origin_x, origin_y, town_x, town_y,
		plots_json, districts_json FROM settlements WHERE id = ?`, id)
	if err != nil {
		return settlement.Snapshot{}, fmt.Errorf("load settlement %d: %w", id, err)
	}

	snap := settlement.Snapshot{
		Name:   rec.Name,
		Seed:   rec.Seed,
		Origin: rec.Origin(),
	}
	if rec.TownX != nil && rec.TownY != nil {
		snap.TownBase = &geom.Vec2{X: *rec.TownX, Y: *rec.TownY}
	}
	if err := json.Unmarshal([]byte(rec.PlotsJSON), &snap.Plots); err != nil {
		return settlement.Snapshot{}, fmt.Errorf("decode plots: %w", err)
	}
	var districts []town.District
	if err := json.Unmarshal([]byte(rec.DistrictsJSON), &districts); err != nil {
		return settlement.Snapshot{}, fmt.Errorf("decode districts: %w", err)
	}
	if len(districts) > 0 {
		snap.Districts = districts
	}

	var tiles []tileRow
	if err := db.conn.Select(&tiles, `SELECT x, y, plot, way_n, way_e, way_s, way_w, tower
		FROM tiles WHERE settlement_id = ? ORDER BY seq`, id); err != nil {
		return settlement.Snapshot{}, fmt.Errorf("load tiles: %w", err)
	}
	snap.Tiles = make([]land.TileEntry, 0, len(tiles))
	for _, t := range tiles {
		var ways [4]land.WayKind
		ways[geom.North], ways[geom.East], ways[geom.South], ways[geom.West] = t.WayN, t.WayE, t.WayS, t.WayW
		snap.Tiles = append(snap.Tiles, land.TileEntry{
			Pos:  geom.Vec2{X: t.X, Y: t.Y},
			Tile: land.Tile{Plot: t.Plot, Ways: ways, Tower: t.Tower},
		})
	}

	var farms []struct {
		X int `db:"base_x"`
		Y int `db:"base_y"`
	}
	if err := db.conn.Select(&farms, "SELECT base_x, base_y FROM farms WHERE settlement_id = ? ORDER BY seq", id); err != nil {
		return settlement.Snapshot{}, fmt.Errorf("load farms: %w", err)
	}
	snap.Farms = make([]land.Farm, 0, len(farms))
	for _, f := range farms {
		snap.Farms = append(snap.Farms, land.Farm{BaseTile: geom.Vec2{X: f.X, Y: f.Y}})
	}

	var structures []structureRow
	if err := db.conn.Select(&structures, `SELECT kind, min_x, min_y, min_z, max_x, max_y, max_z
		FROM structures WHERE settlement_id = ? ORDER BY seq`, id); err != nil {
		return settlement.Snapshot{}, fmt.Errorf("load structures: %w", err)
	}
	snap.Structures = make([]settlement.StructureSnapshot, 0, len(structures))
	for _, s := range structures {
		snap.Structures = append(snap.Structures, settlement.StructureSnapshot{
			Kind: s.Kind,
			Bounds: geom.Aabb{
				Min: geom.Vec3{X: s.MinX, Y: s.MinY, Z: s.MinZ},
				Max: geom.Vec3{X: s.MaxX, Y: s.MaxY, Z: s.MaxZ},
			},
		})
	}

	return snap, nil
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}
