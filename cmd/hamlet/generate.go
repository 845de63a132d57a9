package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/hamlet/internal/config"
	"github.com/talgya/hamlet/internal/entity"
	"github.com/talgya/hamlet/internal/entropy"
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/land"
	"github.com/talgya/hamlet/internal/persistence"
	"github.com/talgya/hamlet/internal/settlement"
	"github.com/talgya/hamlet/internal/terrain"
	"github.com/talgya/hamlet/internal/world"
)

func generateCmd(opts *options) *cobra.Command {
	var x, y int
	var paint bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one settlement and print its tile map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("x") {
				cfg.Origin.X = x
			}
			if cmd.Flags().Changed("y") {
				cfg.Origin.Y = y
			}
			return runGenerate(cfg, paint, os.Stdout)
		},
	}

	cmd.Flags().IntVar(&x, "x", 0, "world x of the settlement origin (overrides config)")
	cmd.Flags().IntVar(&y, "y", 0, "world y of the settlement origin (overrides config)")
	cmd.Flags().BoolVar(&paint, "paint", false, "paint every chunk and spawn townsfolk")
	return cmd
}

func runGenerate(cfg config.Config, paint bool, out io.Writer) error {
	w := world.NewNoiseWorld(cfg.World)
	rng := rand.New(rand.NewSource(cfg.Seed))

	s := settlement.GenerateWith(cfg.Origin, w, rng, cfg.Settlement)
	slog.Info("settlement generated",
		"name", s.Name(),
		"origin", s.Origin(),
		"tiles", s.Land().TileCount(),
		"farms", len(s.Farms()),
		"structures", len(s.Structures()),
	)

	writeTileMap(out, s)

	if paint {
		index := &settlement.Index{Colors: cfg.Colors}
		dynamic := entropy.NewRand(entropy.NewClient(cfg.RandomOrgKey))
		blocks, entities := paintAll(s, w, index, dynamic)
		slog.Info("settlement painted",
			"blocks", humanize.Comma(int64(blocks)),
			"entities", len(entities),
		)
		for _, e := range entities {
			slog.Debug("spawned", "id", e.ID, "name", e.Name, "species", e.Body.Species, "pos", e.Pos)
		}
	}

	if cfg.DBPath == "" {
		return nil
	}
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := db.NewRun(cfg.Seed)
	if err != nil {
		return err
	}
	if _, err := db.SaveSettlement(run, s.Snapshot()); err != nil {
		return fmt.Errorf("save settlement: %w", err)
	}
	return db.SaveMeta("last_run", run.String())
}

var plotGlyphs = map[land.PlotKind]byte{
	land.PlotHazard: 'x',
	land.PlotDirt:   ':',
	land.PlotGrass:  ',',
	land.PlotWater:  '~',
	land.PlotTown:   '#',
	land.PlotField:  '=',
}

// writeTileMap prints one character per tile, north up.
func writeTileMap(out io.Writer, s *settlement.Settlement) {
	r := int(s.Radius()) / land.AreaSize
	var b strings.Builder
	for y := r; y >= -r; y-- {
		for x := -r; x <= r; x++ {
			pos := geom.Vec2{X: x, Y: y}
			t := s.Land().TileAt(pos)
			switch {
			case t == nil:
				b.WriteByte('.')
			case t.Tower != land.TowerNone:
				b.WriteByte('T')
			case t.Contains(land.WayWall):
				b.WriteByte('W')
			case t.Contains(land.WayPath):
				b.WriteByte('+')
			default:
				b.WriteByte(plotGlyphs[s.Land().Plot(t.Plot).Kind])
			}
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(out, b.String())
}

// paintAll paints and supplements every chunk the settlement covers and
// returns the number of blocks changed and the entities spawned.
func paintAll(s *settlement.Settlement, w *world.NoiseWorld, index *settlement.Index, dynamic *rand.Rand) (int, []entity.Info) {
	var sup entity.ChunkSupplement
	changed := 0

	r := int(s.Radius())
	lo := s.Origin().Sub(geom.Vec2{X: r, Y: r}).DivEuclid(terrain.ChunkSize)
	hi := s.Origin().Add(geom.Vec2{X: r, Y: r}).DivEuclid(terrain.ChunkSize)
	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			chunkOrigin := geom.Vec2{X: cx, Y: cy}.Scale(terrain.ChunkSize)
			columns := w.Sampler(chunkOrigin)
			chunk := worldChunk(columns)
			before := chunk.Clone()

			s.ApplyTo(index, chunkOrigin, columns, chunk)
			s.ApplySupplement(dynamic, chunkOrigin, columns, &sup)
			changed += chunk.Diff(before)
		}
	}
	return changed, sup.Entities
}

// worldChunk fills a chunk with earth up to the sampled ground.
func worldChunk(columns terrain.ColumnSampler) *terrain.Chunk {
	ground := func(offs geom.Vec2) int {
		col, ok := columns(offs)
		if !ok {
			return math.MinInt32
		}
		return int(math.Floor(float64(col.Alt)))
	}
	base := ground(geom.Vec2{X: terrain.ChunkSize / 2, Y: terrain.ChunkSize / 2})
	return terrain.NewChunkWithGround(base-48, 128, ground)
}
