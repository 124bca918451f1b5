package app

import (
	"go.uber.org/zap"

	"idcache/internal/cache"
	"idcache/internal/config"
	"idcache/internal/logging"
	"idcache/internal/services/mutate"
	"idcache/internal/services/resolve"
)

// Config holds runtime wiring options gathered from the root command's
// persistent flags.
type Config struct {
	CacheSource string // --cache-source; empty means use the default list
	ConfigFile  string // --config; empty means ~/.idcache/config.toml
	Verbose     bool
}

// App bundles the resolved cache source and the services for subcommands.
type App struct {
	Source   cache.Source
	Resolver *resolve.Service
	Mutator  *mutate.Service
	Log      *zap.Logger
}

// New constructs the dependency graph from cfg.
func New(cfg Config) (*App, error) {
	log := logging.New(cfg.Verbose)

	paths, err := config.ResolveSources(cfg.CacheSource, cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	log.Debug("resolved cache sources", zap.Strings("paths", paths))

	resolver := resolve.New(log)
	return &App{
		Source:   cache.NewSource(paths...),
		Resolver: resolver,
		Mutator:  mutate.New(log, resolver),
		Log:      log,
	}, nil
}
