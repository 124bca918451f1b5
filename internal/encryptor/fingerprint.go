package encryptor

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"idcache/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a spec's public form.
//
// It hashes the public spec's wire encoding with SHA-256 and truncates to
// 10 bytes (20 hex chars).
func Fingerprint(spec domain.EncryptorSpec) (string, error) {
	pub, err := DerivePublic(spec)
	if err != nil {
		return "", err
	}
	wire, err := json.Marshal(pub)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(wire)
	return hex.EncodeToString(sum[:10]), nil
}
