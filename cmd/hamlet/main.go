// Command hamlet generates procedural settlements on a noise world.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/hamlet/internal/config"
)

// options are the flags shared by every subcommand.
type options struct {
	configPath string
	seed       int64
	dbPath     string
	logLevel   string
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "hamlet",
		Short:         "Procedural settlement generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "generation seed (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database to save into (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(generateCmd(opts))
	rootCmd.AddCommand(batchCmd(opts))
	rootCmd.AddCommand(renderCmd(opts))
	rootCmd.AddCommand(serveCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		slog.Error("hamlet failed", "error", err)
		os.Exit(1)
	}
}

// load reads the config, applies flag overrides and installs the logger.
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("db") {
		cfg.DBPath = o.dbPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return cfg, nil
}
