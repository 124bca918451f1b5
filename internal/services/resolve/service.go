package resolve

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"idcache/internal/cache"
	"idcache/internal/domain"
)

// Match is one occurrence of an identity: which file it came from, its key
// in that file, and the record itself.
type Match struct {
	Path     string
	Key      string
	Identity domain.Identity
}

// Result maps identity names to their matches across all scanned files.
type Result map[string][]Match

// Names returns the matched names, sorted.
func (r Result) Names() []string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PathsFor returns the distinct files containing name, in scan order.
func (r Result) PathsFor(name string) []string {
	var paths []string
	seen := make(map[string]struct{})
	for _, m := range r[name] {
		if _, ok := seen[m.Path]; ok {
			continue
		}
		seen[m.Path] = struct{}{}
		paths = append(paths, m.Path)
	}
	return paths
}

// AmbiguousError reports a name found in more than one cache file when the
// operation needs a single target.
type AmbiguousError struct {
	Name  string
	Paths []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf(
		"identity %q found in multiple cache files (%s); pass an explicit --cache-source or apply to all with -A",
		e.Name, strings.Join(e.Paths, ", "),
	)
}

// CheckUnambiguous returns an AmbiguousError for the first (alphabetical)
// name that resolves to more than one file.
func (r Result) CheckUnambiguous() error {
	for _, name := range r.Names() {
		if paths := r.PathsFor(name); len(paths) > 1 {
			return &AmbiguousError{Name: name, Paths: paths}
		}
	}
	return nil
}

// Service scans cache sources for identities by name.
type Service struct {
	log *zap.Logger
}

// New returns a resolver logging through log.
func New(log *zap.Logger) *Service {
	return &Service{log: log}
}

// Resolve scans every file in the source and collects matches for the
// requested names. An empty name list matches every identity. Entries are
// visited in key order within each file, so output order is stable.
func (s *Service) Resolve(src cache.Source, names []string) (Result, error) {
	var filter map[string]struct{}
	if len(names) > 0 {
		filter = make(map[string]struct{}, len(names))
		for _, n := range names {
			filter[n] = struct{}{}
		}
	}

	res := make(Result)
	err := src.Each(func(path string, f cache.File) error {
		for _, key := range f.Keys() {
			id := f[key]
			if filter != nil {
				if _, ok := filter[id.Name]; !ok {
					continue
				}
			}
			res[id.Name] = append(res[id.Name], Match{Path: path, Key: key, Identity: id})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("resolved identities",
		zap.Int("files", len(src.Paths())),
		zap.Int("requested", len(names)),
		zap.Int("matched", len(res)),
	)
	return res, nil
}
