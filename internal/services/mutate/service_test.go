package mutate_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"idcache/internal/cache"
	"idcache/internal/domain"
	"idcache/internal/services/mutate"
	"idcache/internal/services/resolve"
)

func ident(t *testing.T, name, callsign string) domain.Identity {
	t.Helper()
	enc, err := domain.NewEncryptorSpec("rotate", 5)
	if err != nil {
		t.Fatalf("build spec: %v", err)
	}
	return domain.NewIdentity(name, domain.LocalLocation("local", callsign), enc, nil)
}

func writeCache(t *testing.T, dir, name string, ids ...domain.Identity) string {
	t.Helper()
	f := cache.File{}
	for _, id := range ids {
		f.Put(id)
	}
	path := filepath.Join(dir, name)
	if err := cache.Write(path, f); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func loadCache(t *testing.T, path string) cache.File {
	t.Helper()
	f, err := cache.Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return f
}

func newService() *mutate.Service {
	log := zap.NewNop()
	return mutate.New(log, resolve.New(log))
}

func TestCreate_KeyedByLocation(t *testing.T) {
	enc, err := domain.NewEncryptorSpec("rotate", 7)
	if err != nil {
		t.Fatalf("build spec: %v", err)
	}
	loc := domain.LocalLocation("local", "cli")

	key, id, err := newService().Create("alice", loc, enc, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if key != domain.DeriveKey(loc) {
		t.Fatalf("key: got %q, want %q", key, domain.DeriveKey(loc))
	}
	if id.Name != "alice" {
		t.Fatalf("name: got %q", id.Name)
	}
}

func TestCreate_EmptyNameRejected(t *testing.T) {
	enc, err := domain.NewEncryptorSpec("rotate", 7)
	if err != nil {
		t.Fatalf("build spec: %v", err)
	}
	_, _, err = newService().Create("", domain.LocalLocation("local", "cli"), enc, nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestMerge_OverwritesByLocationKeepsRest(t *testing.T) {
	dir := t.TempDir()
	alice := ident(t, "alice", "ali")
	bob := ident(t, "bob", "bobby")
	path := writeCache(t, dir, "cache.json", alice, bob)

	// Same location as alice, new name: replaces alice, keeps bob.
	replacement := ident(t, "alicia", "ali")
	if err := newService().Merge(path, cache.File{replacement.Key(): replacement}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	got := loadCache(t, path)
	if len(got) != 2 {
		t.Fatalf("entries: got %d, want 2", len(got))
	}
	if got[replacement.Key()].Name != "alicia" {
		t.Fatalf("replacement lost: %+v", got[replacement.Key()])
	}
	if got[bob.Key()].Name != "bob" {
		t.Fatalf("untouched entry lost: %+v", got[bob.Key()])
	}
}

func TestMerge_Idempotent(t *testing.T) {
	dir := t.TempDir()
	alice := ident(t, "alice", "ali")
	path := writeCache(t, dir, "cache.json", alice, ident(t, "bob", "bobby"))

	svc := newService()
	incoming := cache.File{alice.Key(): alice}
	if err := svc.Merge(path, incoming); err != nil {
		t.Fatalf("first merge: %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if err := svc.Merge(path, incoming); err != nil {
		t.Fatalf("second merge: %v", err)
	}
	again, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(after) != string(again) {
		t.Fatal("re-running the merge changed the file")
	}
}

func TestMerge_MissingTargetFails(t *testing.T) {
	err := newService().Merge(filepath.Join(t.TempDir(), "gone.json"), cache.File{})
	if !errors.Is(err, cache.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSet_UpdatesEveryFileContainingName(t *testing.T) {
	dir := t.TempDir()
	a := writeCache(t, dir, "a.json", ident(t, "alice", "ali"))
	b := writeCache(t, dir, "b.json", ident(t, "alice", "ali-backup"), ident(t, "bob", "bobby"))

	attrs := map[string]json.RawMessage{"note": json.RawMessage(`"x"`)}
	modified, err := newService().Set(cache.NewSource(a, b), "alice", attrs)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if !reflect.DeepEqual(modified, []string{a, b}) {
		t.Fatalf("modified: %v", modified)
	}

	for _, path := range []string{a, b} {
		for _, key := range loadCache(t, path).Keys() {
			id := loadCache(t, path)[key]
			if id.Name != "alice" {
				continue
			}
			if string(id.Extra["note"]) != `"x"` {
				t.Fatalf("%s: note not set on %q", path, key)
			}
		}
	}

	// bob must be untouched.
	bobKey := domain.DeriveKey(domain.LocalLocation("local", "bobby"))
	if _, ok := loadCache(t, b)[bobKey].Extra["note"]; ok {
		t.Fatal("set leaked into another identity")
	}
}

func TestSet_RekeysWhenLocationChanges(t *testing.T) {
	dir := t.TempDir()
	alice := ident(t, "alice", "ali")
	path := writeCache(t, dir, "cache.json", alice)

	attrs := map[string]json.RawMessage{
		"location": json.RawMessage(`["udp4","10.0.0.2:9000","ali"]`),
	}
	if _, err := newService().Set(cache.NewSource(path), "alice", attrs); err != nil {
		t.Fatalf("set: %v", err)
	}

	got := loadCache(t, path)
	if _, ok := got[alice.Key()]; ok {
		t.Fatal("stale key survived the location change")
	}
	newKey := `["udp4","10.0.0.2:9000","ali"]`
	if got[newKey].Name != "alice" {
		t.Fatalf("entry not re-keyed: %v", got.Keys())
	}
}

func TestSet_UnknownName(t *testing.T) {
	dir := t.TempDir()
	path := writeCache(t, dir, "cache.json", ident(t, "bob", "bobby"))

	_, err := newService().Set(cache.NewSource(path), "alice", map[string]json.RawMessage{})
	if !errors.Is(err, mutate.ErrNoIdentity) {
		t.Fatalf("got %v, want ErrNoIdentity", err)
	}
}

func TestRemove_NotFoundLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	path := writeCache(t, dir, "cache.json", ident(t, "bob", "bobby"))
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	report, err := newService().Remove(cache.NewSource(path), []string{"alice"}, false)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(report.NotFound) != 1 || report.NotFound[0] != "alice" {
		t.Fatalf("not-found report: %v", report.NotFound)
	}
	if len(report.Removed) != 0 {
		t.Fatalf("removed report: %v", report.Removed)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(before) != string(after) {
		t.Fatal("file changed on a no-op remove")
	}
}

func TestRemove_AmbiguousAbortsUnchanged(t *testing.T) {
	dir := t.TempDir()
	a := writeCache(t, dir, "a.json", ident(t, "alice", "ali"))
	b := writeCache(t, dir, "b.json", ident(t, "alice", "ali-backup"))
	beforeA, _ := os.ReadFile(a)
	beforeB, _ := os.ReadFile(b)

	_, err := newService().Remove(cache.NewSource(a, b), []string{"alice"}, false)
	var ambiguous *resolve.AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("got %v, want AmbiguousError", err)
	}

	afterA, _ := os.ReadFile(a)
	afterB, _ := os.ReadFile(b)
	if string(beforeA) != string(afterA) || string(beforeB) != string(afterB) {
		t.Fatal("ambiguous remove mutated a file")
	}
}

func TestRemove_AllSourcesRemovesEverywhere(t *testing.T) {
	dir := t.TempDir()
	a := writeCache(t, dir, "a.json", ident(t, "alice", "ali"), ident(t, "bob", "bobby"))
	b := writeCache(t, dir, "b.json", ident(t, "alice", "ali-backup"))

	report, err := newService().Remove(cache.NewSource(a, b), []string{"alice"}, true)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if paths := report.Removed["alice"]; len(paths) != 2 {
		t.Fatalf("removed paths: %v", paths)
	}

	if names := loadCache(t, a).Names(); !reflect.DeepEqual(names, []string{"bob"}) {
		t.Fatalf("a.json names: %v", names)
	}
	if len(loadCache(t, b)) != 0 {
		t.Fatalf("b.json still has entries: %v", loadCache(t, b).Keys())
	}
}

func TestRemove_SingleSourceNoFlagNeeded(t *testing.T) {
	dir := t.TempDir()
	path := writeCache(t, dir, "cache.json", ident(t, "alice", "ali"))

	report, err := newService().Remove(cache.NewSource(path), []string{"alice"}, false)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(report.Removed["alice"]) != 1 {
		t.Fatalf("removed report: %v", report.Removed)
	}
	if len(loadCache(t, path)) != 0 {
		t.Fatal("entry survived removal")
	}
}
