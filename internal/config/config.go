package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

const (
	configDirName    = ".idcache"
	configFileName   = "config.toml"
	defaultCacheFile = "identities.json"
)

// Config holds the settings read from the optional config file.
type Config struct {
	// Caches is the default cache file list, scanned in order when no
	// explicit --cache-source is given.
	Caches []string `toml:"caches"`
}

// overrides holds the environment knobs layered on top of the file.
type overrides struct {
	// CachePath is a path-list (colon-separated on Unix) of cache files.
	CachePath string `env:"IDCACHE_PATH"`
	// ConfigFile points at an alternate config file.
	ConfigFile string `env:"IDCACHE_CONFIG"`
}

// DefaultDir returns the per-user config directory, ~/.idcache.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName), nil
}

// Load reads a TOML config file. A missing file yields a zero config only
// when path is empty (meaning "the default location, if present").
func Load(path string) (Config, error) {
	optional := path == ""
	if optional {
		dir, err := DefaultDir()
		if err != nil {
			return Config{}, err
		}
		path = filepath.Join(dir, configFileName)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && optional {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// ResolveSources produces the ordered cache file list for one invocation.
//
// Precedence: the explicit --cache-source path, else the IDCACHE_PATH
// environment list, else the config file's caches, else the single default
// file under ~/.idcache. Components below this function only ever see the
// resolved list.
func ResolveSources(explicit, configPath string) ([]string, error) {
	if explicit != "" {
		return []string{explicit}, nil
	}

	var o overrides
	if err := env.Parse(&o); err != nil {
		return nil, err
	}
	if o.CachePath != "" {
		return filepath.SplitList(o.CachePath), nil
	}

	if configPath == "" {
		configPath = o.ConfigFile
	}
	cfg, err := Load(configPath)
	if err != nil {
		return nil, err
	}
	if len(cfg.Caches) > 0 {
		return cfg.Caches, nil
	}

	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return []string{filepath.Join(dir, defaultCacheFile)}, nil
}
