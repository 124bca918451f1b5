package mutate

import (
	"encoding/json"
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"idcache/internal/cache"
	"idcache/internal/domain"
	"idcache/internal/services/resolve"
)

// ErrNoIdentity marks a requested identity name with no match in any
// resolved cache file.
var ErrNoIdentity = errors.New("identity not found in any cache file")

// Service applies create, merge, update and delete operations to cache
// files. Each file is read, mutated in memory and rewritten whole, under an
// advisory lock.
type Service struct {
	log      *zap.Logger
	resolver *resolve.Service
}

// New returns a mutation service using resolver for name lookups.
func New(log *zap.Logger, resolver *resolve.Service) *Service {
	return &Service{log: log, resolver: resolver}
}

// Create builds a fresh identity record and returns it with its derived
// key. It writes nothing; callers print or merge the result themselves.
func (s *Service) Create(name string, loc domain.Location, enc domain.EncryptorSpec, extra map[string]json.RawMessage) (string, domain.Identity, error) {
	if name == "" {
		return "", domain.Identity{}, errors.Wrap(domain.ErrValidation, "identity name is empty")
	}
	if _, err := enc.Scheme(); err != nil {
		return "", domain.Identity{}, err
	}
	id := domain.NewIdentity(name, loc, enc, extra)
	return id.Key(), id, nil
}

// Merge folds incoming entries into the cache file at path. Incoming
// entries are keyed by their own location, so an entry whose location
// matches an existing one replaces it and all other entries survive.
func (s *Service) Merge(path string, incoming cache.File) error {
	err := cache.Update(path, func(f cache.File) (cache.File, error) {
		for _, key := range incoming.Keys() {
			f.Put(incoming[key])
		}
		return f, nil
	})
	if err != nil {
		return err
	}
	s.log.Debug("merged entries", zap.String("path", path), zap.Int("entries", len(incoming)))
	return nil
}

// Set shallow-merges attrs into every record named name, in every file of
// the source that contains one, and rewrites each touched file. Multi-file
// matches are updated everywhere, not treated as ambiguous. Returns the
// rewritten paths in scan order.
//
// Files already rewritten stay rewritten if a later file's write fails.
func (s *Service) Set(src cache.Source, name string, attrs map[string]json.RawMessage) ([]string, error) {
	res, err := s.resolver.Resolve(src, []string{name})
	if err != nil {
		return nil, err
	}
	matches := res[name]
	if len(matches) == 0 {
		return nil, errors.Wrap(ErrNoIdentity, name)
	}

	byPath := groupByPath(matches)
	var modified []string
	for _, path := range res.PathsFor(name) {
		keys := byPath[path]
		err := cache.Update(path, func(f cache.File) (cache.File, error) {
			for _, key := range keys {
				id, ok := f[key]
				if !ok {
					// Entry vanished between resolve and lock; nothing to update.
					continue
				}
				if err := id.Apply(attrs); err != nil {
					return nil, err
				}
				if id.Key() != key {
					// Location changed; move the entry to its new key.
					delete(f, key)
				}
				f.Put(id)
			}
			return f, nil
		})
		if err != nil {
			return modified, err
		}
		modified = append(modified, path)
	}

	s.log.Debug("updated identity",
		zap.String("name", name), zap.Strings("paths", modified))
	return modified, nil
}

// RemoveReport describes what Remove did per requested name.
type RemoveReport struct {
	// Removed maps each deleted name to the files it was removed from.
	Removed map[string][]string
	// NotFound lists requested names with no match anywhere.
	NotFound []string
}

// Remove deletes every entry for the requested names and rewrites each
// affected file. Unless all is set, a name spread across several files
// aborts with a resolve.AmbiguousError before anything is written. Names
// with zero matches are reported, not errors.
func (s *Service) Remove(src cache.Source, names []string, all bool) (*RemoveReport, error) {
	res, err := s.resolver.Resolve(src, names)
	if err != nil {
		return nil, err
	}
	if !all {
		if err := res.CheckUnambiguous(); err != nil {
			return nil, err
		}
	}

	report := &RemoveReport{Removed: make(map[string][]string)}
	byPath := make(map[string][]string) // path -> keys to delete
	for _, name := range names {
		matches := res[name]
		if len(matches) == 0 {
			report.NotFound = append(report.NotFound, name)
			continue
		}
		for _, m := range matches {
			byPath[m.Path] = append(byPath[m.Path], m.Key)
		}
		report.Removed[name] = res.PathsFor(name)
	}

	for _, path := range sortedPaths(byPath) {
		keys := byPath[path]
		err := cache.Update(path, func(f cache.File) (cache.File, error) {
			for _, key := range keys {
				delete(f, key)
			}
			return f, nil
		})
		if err != nil {
			return nil, err
		}
	}

	s.log.Debug("removed identities",
		zap.Strings("names", names), zap.Int("files", len(byPath)))
	return report, nil
}

func groupByPath(matches []resolve.Match) map[string][]string {
	byPath := make(map[string][]string)
	for _, m := range matches {
		byPath[m.Path] = append(byPath[m.Path], m.Key)
	}
	return byPath
}

func sortedPaths(byPath map[string][]string) []string {
	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
