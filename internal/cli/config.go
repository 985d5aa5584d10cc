package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/snapgraph/snapgraph/pkg/cache"
	"github.com/snapgraph/snapgraph/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "snapgraph"

// Config holds settings shared by the serve and store commands. It is
// read from a TOML file; every field has a working default so a missing
// config file is not an error.
type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig selects the document store backend. When MongoURI is set
// the Mongo backend is used, otherwise documents live as files in Dir.
type StoreConfig struct {
	Dir             string `toml:"dir"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDB         string `toml:"mongo_db"`
	MongoCollection string `toml:"mongo_collection"`
}

// CacheConfig selects the derived-artifact cache backend. When
// RedisAddr is set the Redis backend is used, otherwise a file cache
// in Dir. Disabled turns caching off entirely.
type CacheConfig struct {
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	Disabled  bool   `toml:"disabled"`
}

// defaultConfig returns the built-in defaults applied before any file
// is read.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Store: StoreConfig{
			MongoDB:         appName,
			MongoCollection: "documents",
		},
	}
}

// loadConfig reads the config file at path, or the default location if
// path is empty. A missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultConfigPath returns the config file location using the XDG
// standard (~/.config/snapgraph/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/snapgraph/).
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

// dataDir returns the default document store directory using the XDG
// standard (~/.local/share/snapgraph/documents).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "documents"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "documents"), nil
}

// openStore constructs the document store backend selected by cfg.
func openStore(ctx context.Context, cfg *Config) (store.Store, error) {
	if cfg.Store.MongoURI != "" {
		return store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.MongoDB, cfg.Store.MongoCollection)
	}
	dir := cfg.Store.Dir
	if dir == "" {
		var err error
		dir, err = dataDir()
		if err != nil {
			return nil, err
		}
	}
	return store.NewFileStore(dir)
}

// openCache constructs the cache backend selected by cfg. Failure to
// open the file cache degrades to no caching rather than failing the
// command.
func openCache(ctx context.Context, cfg *Config) (cache.Cache, error) {
	if cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return c, nil
}
