// Package config resolves which cache files a command invocation reads.
//
// Resolution layers, strongest first: the --cache-source flag, the
// IDCACHE_PATH environment variable (a path list), the caches entry of
// ~/.idcache/config.toml, and finally the built-in default cache file.
// The rest of the program receives the resolved list only and never reads
// the environment itself.
package config
