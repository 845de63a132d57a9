package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/hamlet/internal/config"
	"github.com/talgya/hamlet/internal/render"
	"github.com/talgya/hamlet/internal/settlement"
	"github.com/talgya/hamlet/internal/world"
)

func renderCmd(opts *options) *cobra.Command {
	var out string
	var scale int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a settlement's map colours to a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if scale < 1 {
				return fmt.Errorf("scale must be at least 1, got %d", scale)
			}
			return runRender(cfg, out, scale)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "settlement.png", "output PNG path")
	cmd.Flags().IntVar(&scale, "scale", 2, "blocks per pixel")
	return cmd
}

func runRender(cfg config.Config, path string, scale int) error {
	w := world.NewNoiseWorld(cfg.World)
	s := settlement.GenerateWith(cfg.Origin, w, rand.New(rand.NewSource(cfg.Seed)), cfg.Settlement)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := render.WritePNG(f, s, w, &settlement.Index{Colors: cfg.Colors}, scale); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	slog.Info("map rendered", "name", s.Name(), "path", path)
	return nil
}
