package cache

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Write rewrites the cache file at path via a temp file, then atomically
// replaces the target, so a crash never leaves a half-written file behind.
func Write(path string, f File) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}
	return writeFile(path, data, 0o600)
}

func writeFile(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmpFile, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmp := tmpFile.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := tmpFile.Write(b); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Chmod(mode); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// Update runs a read-modify-write cycle on one cache file under an advisory
// lock. The lock lives in a sidecar file so the rename in Write does not
// release it mid-cycle. Concurrent invocations of this binary serialize on
// it; external writers remain a last-writer-wins race.
//
// A nil file from mutate, with no error, skips the rewrite.
func Update(path string, mutate func(File) (File, error)) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	f, err := Load(path)
	if err != nil {
		return err
	}
	out, err := mutate(f)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return Write(path, out)
}
