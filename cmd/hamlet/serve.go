package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talgya/hamlet/internal/api"
	"github.com/talgya/hamlet/internal/persistence"
	"github.com/talgya/hamlet/internal/settlement"
	"github.com/talgya/hamlet/internal/world"
)

func serveCmd(opts *options) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve saved settlements and on-demand generation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.API.Port = port
			}

			var db *persistence.DB
			if cfg.DBPath != "" {
				if db, err = persistence.Open(cfg.DBPath); err != nil {
					return err
				}
				defer db.Close()
				slog.Info("database opened", "path", cfg.DBPath)
			}

			w := world.NewNoiseWorld(cfg.World)
			sites := world.PlaceSites(w, cfg.Sites, cfg.Seed)
			slog.Info("world ready", "sites", len(sites), "roads", len(w.Roads()))

			srv := &api.Server{
				DB:            db,
				World:         w,
				Params:        cfg.Settlement,
				Index:         &settlement.Index{Colors: cfg.Colors},
				Port:          cfg.API.Port,
				AdminKey:      os.Getenv("HAMLET_ADMIN_KEY"),
				GenerateLimit: cfg.API.GenerateLimit,
			}
			srv.Start()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig
			slog.Info("shutting down")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides config)")
	return cmd
}
