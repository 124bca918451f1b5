package cache

// Source is a resolved, ordered list of cache file paths. The explicit
// --cache-source path resolves to a single-element source; otherwise the
// configured default list is used as-is.
type Source struct {
	paths []string
}

// NewSource builds a source over the given paths, preserving their order.
func NewSource(paths ...string) Source {
	return Source{paths: paths}
}

// Paths returns the source's file paths in resolution order.
func (s Source) Paths() []string {
	return s.paths
}

// Primary returns the first path, the one mutations that target "the" cache
// file write to. ok is false for an empty source.
func (s Source) Primary() (string, bool) {
	if len(s.paths) == 0 {
		return "", false
	}
	return s.paths[0], true
}

// Each loads every file in order and hands it to fn together with its path.
// Files are read one at a time; the first load or callback error stops the
// walk. Zero paths means zero calls, not an error.
func (s Source) Each(fn func(path string, f File) error) error {
	for _, path := range s.paths {
		f, err := Load(path)
		if err != nil {
			return err
		}
		if err := fn(path, f); err != nil {
			return err
		}
	}
	return nil
}
