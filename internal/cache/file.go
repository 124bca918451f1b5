package cache

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/cockroachdb/errors"

	"idcache/internal/domain"
)

// File is the in-memory form of one cache file: identities keyed by their
// location-derived key.
type File map[string]domain.Identity

// Decode parses raw cache-file bytes. Empty input decodes to an empty file.
func Decode(data []byte) (File, error) {
	if len(data) == 0 {
		return File{}, nil
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}
	return f, nil
}

// Encode renders the file in its on-disk form.
func Encode(f File) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// Put inserts an identity under its derived key, replacing any entry with
// the same location.
func (f File) Put(id domain.Identity) string {
	key := id.Key()
	f[key] = id
	return key
}

// Names returns the distinct identity names in the file, sorted.
func (f File) Names() []string {
	seen := make(map[string]struct{}, len(f))
	for _, id := range f {
		seen[id.Name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Keys returns the file's entry keys, sorted for stable iteration.
func (f File) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads and parses the cache file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	f, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return f, nil
}
