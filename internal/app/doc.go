// Package app wires the cache source, resolver and mutation service into a
// single context the CLI commands share.
package app
