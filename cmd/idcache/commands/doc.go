// Package commands defines the idcache CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - list             List identities, optionally grouped by cache file
//   - details          Show full records for one or more identities
//   - new              Build an identity record and print it
//   - new-interactive  Prompt for fields, generate a key, save the record
//   - merge            Merge JSON from stdin into a cache file
//   - set              Update attributes of an identity everywhere it occurs
//   - rm               Remove identities, refusing ambiguous multi-file targets
//
// # Implementation
//
// The root command resolves the cache source list (flag, environment,
// config file, default) and builds the resolver and mutation services
// before any subcommand runs, so handlers share one app context.
package commands
