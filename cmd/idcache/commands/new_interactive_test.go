package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"idcache/internal/cache"
)

func TestNewInteractive_PromptsAndSavesToPrimary(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "fresh", "identities.json")
	setTestApp(t, target)

	var out bytes.Buffer
	cmd := newInteractiveCmd()
	cmd.SetIn(strings.NewReader("mitzi\n\n\nmitzi-call\nrotate\ny\n"))
	cmd.SetOut(&out)

	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	if !strings.Contains(out.String(), "Fingerprint:") {
		t.Fatalf("no fingerprint printed:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Saved mitzi to "+target) {
		t.Fatalf("no save confirmation:\n%s", out.String())
	}

	f, err := cache.Load(target)
	if err != nil {
		t.Fatalf("load %s: %v", target, err)
	}
	id, ok := f[`["local",null,"mitzi-call"]`]
	if !ok {
		t.Fatalf("saved cache keys: %v", f.Keys())
	}
	if id.Name != "mitzi" {
		t.Fatalf("saved name %q, want mitzi", id.Name)
	}
}

func TestNewInteractive_DeclinedSavePrintsRecordOnly(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "identities.json")
	setTestApp(t, target)

	var out bytes.Buffer
	cmd := newInteractiveCmd()
	cmd.SetIn(strings.NewReader("mitzi\n\n\nmitzi-call\nrotate\nn\n"))
	cmd.SetOut(&out)

	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := cache.Load(target); err == nil {
		t.Fatal("declined save still wrote the cache file")
	}
	if !strings.Contains(out.String(), `"mitzi"`) {
		t.Fatalf("record not printed on decline:\n%s", out.String())
	}
}
