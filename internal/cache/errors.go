package cache

import "github.com/cockroachdb/errors"

var (
	// ErrNotFound marks a cache file that does not exist on disk.
	ErrNotFound = errors.New("cache file not found")

	// ErrParse marks a cache file whose content is not a valid JSON
	// object of identity records.
	ErrParse = errors.New("cache file is not valid")
)
