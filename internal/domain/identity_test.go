package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"idcache/internal/domain"
)

func TestDeriveKey_CompactWireForm(t *testing.T) {
	local := domain.LocalLocation("local", "mitzi")
	if got, want := domain.DeriveKey(local), `["local",null,"mitzi"]`; got != want {
		t.Fatalf("derive key: got %q, want %q", got, want)
	}

	remote := domain.NewLocation("udp4", "10.0.0.1:9000", "atlas")
	if got, want := domain.DeriveKey(remote), `["udp4","10.0.0.1:9000","atlas"]`; got != want {
		t.Fatalf("derive key: got %q, want %q", got, want)
	}
}

func TestLocation_RoundTrip(t *testing.T) {
	var loc domain.Location
	if err := json.Unmarshal([]byte(`["local",null,"mitzi"]`), &loc); err != nil {
		t.Fatalf("unmarshal location: %v", err)
	}
	if loc.Type != "local" || loc.Addr != nil || loc.Callsign != "mitzi" {
		t.Fatalf("unexpected location: %+v", loc)
	}
	out, err := json.Marshal(loc)
	if err != nil {
		t.Fatalf("marshal location: %v", err)
	}
	if string(out) != `["local",null,"mitzi"]` {
		t.Fatalf("round trip changed wire form: %s", out)
	}
}

func TestLocation_BadShape(t *testing.T) {
	for _, raw := range []string{`"local"`, `["local",null]`, `[1,null,"x"]`, `["local",2,"x"]`} {
		var loc domain.Location
		err := json.Unmarshal([]byte(raw), &loc)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("unmarshal %s: got %v, want validation error", raw, err)
		}
	}
}

func TestIdentity_RoundTrip_PreservesExtras(t *testing.T) {
	raw := []byte(`{
		"name": "calvin",
		"location": ["local", null, "calvin-freckle-mcmurray"],
		"encryptor": ["rotate", 4],
		"comment": "lives dangerously",
		"score": 41.5
	}`)

	var id domain.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		t.Fatalf("unmarshal identity: %v", err)
	}
	if id.Name != "calvin" {
		t.Fatalf("name: got %q", id.Name)
	}
	if string(id.Extra["comment"]) != `"lives dangerously"` {
		t.Fatalf("comment not preserved: %s", id.Extra["comment"])
	}

	out, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("marshal identity: %v", err)
	}
	var again domain.Identity
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("unmarshal again: %v", err)
	}
	if string(again.Extra["score"]) != "41.5" {
		t.Fatalf("score not preserved: %s", again.Extra["score"])
	}
	if again.Key() != id.Key() {
		t.Fatalf("key changed across round trip: %q vs %q", again.Key(), id.Key())
	}
}

func TestIdentity_Unmarshal_MissingProperty(t *testing.T) {
	cases := map[string]string{
		"name":      `{"location":["local",null,"x"],"encryptor":["rotate",1]}`,
		"location":  `{"name":"x","encryptor":["rotate",1]}`,
		"encryptor": `{"name":"x","location":["local",null,"x"]}`,
	}
	for missing, raw := range cases {
		var id domain.Identity
		err := json.Unmarshal([]byte(raw), &id)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("missing %s: got %v, want validation error", missing, err)
		}
	}
}

func TestIdentity_Apply(t *testing.T) {
	enc, err := domain.NewEncryptorSpec("rotate", 8)
	if err != nil {
		t.Fatalf("build spec: %v", err)
	}
	id := domain.NewIdentity("alice", domain.LocalLocation("local", "cli"), enc, nil)
	oldKey := id.Key()

	attrs, err := domain.ParseAttrs([]byte(`{"note":"x","name":"alicia","location":["udp4","1.2.3.4:5","cli"]}`))
	if err != nil {
		t.Fatalf("parse attrs: %v", err)
	}
	if err := id.Apply(attrs); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if id.Name != "alicia" {
		t.Fatalf("name not updated: %q", id.Name)
	}
	if string(id.Extra["note"]) != `"x"` {
		t.Fatalf("note not set: %s", id.Extra["note"])
	}
	if id.Key() == oldKey {
		t.Fatal("key should change when the location changes")
	}
}

func TestNewIdentity_IgnoresReservedExtras(t *testing.T) {
	enc, err := domain.NewEncryptorSpec("rotate", 1)
	if err != nil {
		t.Fatalf("build spec: %v", err)
	}
	extra := map[string]json.RawMessage{
		"name": json.RawMessage(`"evil"`),
		"note": json.RawMessage(`"ok"`),
	}
	id := domain.NewIdentity("alice", domain.LocalLocation("local", "cli"), enc, extra)
	if id.Name != "alice" {
		t.Fatalf("reserved extra overrode name: %q", id.Name)
	}
	if _, ok := id.Extra["name"]; ok {
		t.Fatal("reserved key leaked into the attribute bag")
	}
	if string(id.Extra["note"]) != `"ok"` {
		t.Fatalf("note missing: %v", id.Extra)
	}
}
