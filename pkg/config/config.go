// Package config loads persisted CLI defaults from a TOML file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds defaults for the command-line interface. Any field left at
// its zero value falls back to the flag's own built-in default.
type Config struct {
	Traverse TraverseConfig `toml:"traverse"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
}

// TraverseConfig holds defaults for path enumeration.
type TraverseConfig struct {
	RevisitCap int    `toml:"revisit_cap"`
	IDScheme   string `toml:"id_scheme"`
}

// CacheConfig holds defaults for the traversal/render result cache.
type CacheConfig struct {
	Backend  string `toml:"backend"` // "file", "redis", or "none"
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// ServerConfig holds defaults for the read-only query server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration used when no file is found.
func Default() *Config {
	return &Config{
		Traverse: TraverseConfig{RevisitCap: 2, IDScheme: "hash"},
		Cache:    CacheConfig{Backend: "file"},
		Server:   ServerConfig{Addr: ":8080"},
	}
}

// Load reads and decodes a TOML config file at path. A missing file is not
// an error; Default() is returned instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
