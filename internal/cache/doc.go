// Package cache reads and writes identity cache files.
//
// A cache file is a JSON object mapping a location-derived key to an
// identity record. The package resolves a source (an explicit path or the
// configured default list) into an ordered sequence of parsed files, and
// rewrites files atomically via a temp file and rename, holding an advisory
// lock for the duration of a read-modify-write.
package cache
