package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// Config is the on-disk CLI configuration, read from
// ~/.config/mosaic/config.toml (or the --config override).
type Config struct {
	// Pattern overrides the built-in sea monster, one row per entry.
	Pattern []string `toml:"pattern"`

	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the result cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", "mongo", or "none" (default "file").
	Backend string `toml:"backend"`

	// Dir is the file backend directory (default ~/.cache/mosaic/).
	Dir string `toml:"dir"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongodb cache backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

func defaultConfig() *Config {
	return &Config{
		Cache:  CacheConfig{Backend: backendFile},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// loadConfig reads the config file if it exists. A missing file yields
// the defaults; a malformed file is an error.
func (c *CLI) loadConfig() (*Config, error) {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		var err error
		path, err = configPath()
		if err != nil {
			return defaultConfig(), nil
		}
	}

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	switch cfg.Cache.Backend {
	case "":
		cfg.Cache.Backend = backendFile
	case backendFile, backendRedis, backendMongo, backendNone:
	default:
		return nil, fmt.Errorf("config %s: unknown cache backend %q", path, cfg.Cache.Backend)
	}
	return cfg, nil
}

// configPath returns the config file location using XDG standard
// (~/.config/mosaic/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
