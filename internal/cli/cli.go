// Package cli implements the mosaic command-line interface.
//
// This package provides commands for solving tile puzzles, inspecting
// corner tiles, rendering assembled images, serving the solve API, and
// managing the result cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - solve: Assemble a tile catalog and search it for a pattern
//   - corners: Print the corner tiles and their id product
//   - render: Export the assembled image or adjacency graph
//   - view: Browse the assembled image interactively
//   - serve: Run the HTTP solve API
//   - cache: Manage the solve result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mosaickit/mosaic/pkg/buildinfo"
	"github.com/mosaickit/mosaic/pkg/cache"
	"github.com/mosaickit/mosaic/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "mosaic"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the default config file location.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "mosaic",
		Short:        "Mosaic assembles image tiles and hunts for patterns",
		Long:         `Mosaic reconstructs an image from a catalog of bordered tiles by matching shared borders, then searches every orientation of the result for a pattern such as the classic sea monster.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/mosaic/config.toml)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.cornersCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache builds the cache backend named by the config. Backends that
// fail to initialize degrade to the null cache so solves still work.
func newCache(cfg *Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == backendNone {
		return cache.NewNullCache(), nil
	}

	switch cfg.Cache.Backend {
	case backendRedis:
		return cache.NewRedisCache(context.Background(), cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case backendMongo:
		return cache.NewMongoCache(context.Background(), cache.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/mosaic/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
