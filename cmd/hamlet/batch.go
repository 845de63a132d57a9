package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/talgya/hamlet/internal/config"
	"github.com/talgya/hamlet/internal/persistence"
	"github.com/talgya/hamlet/internal/settlement"
	"github.com/talgya/hamlet/internal/world"
)

func batchCmd(opts *options) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Place sites across the world and generate a settlement at each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("count") {
				cfg.Sites.Count = count
			}
			return runBatch(cfg)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of sites (overrides config)")
	return cmd
}

func runBatch(cfg config.Config) error {
	start := time.Now()
	w := world.NewNoiseWorld(cfg.World)
	sites := world.PlaceSites(w, cfg.Sites, cfg.Seed)
	slog.Info("sites placed", "count", len(sites))

	var db *persistence.DB
	run := uuid.Nil
	if cfg.DBPath != "" {
		var err error
		if db, err = persistence.Open(cfg.DBPath); err != nil {
			return err
		}
		defer db.Close()
		if run, err = db.NewRun(cfg.Seed); err != nil {
			return err
		}
	}

	tiles, structures := 0, 0
	bar := progressbar.New(len(sites))
	for i, site := range sites {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))
		s := settlement.GenerateWith(site.Pos, w, rng, cfg.Settlement)
		tiles += s.Land().TileCount()
		structures += len(s.Structures())

		if db != nil {
			if _, err := db.SaveSettlement(run, s.Snapshot()); err != nil {
				return fmt.Errorf("save settlement at %v: %w", site.Pos, err)
			}
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Println()

	if db != nil {
		if err := db.SaveMeta("last_run", run.String()); err != nil {
			return err
		}
	}

	slog.Info("batch complete",
		"settlements", len(sites),
		"tiles", humanize.Comma(int64(tiles)),
		"structures", humanize.Comma(int64(structures)),
		"run", run,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
