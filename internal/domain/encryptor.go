package domain

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// EncryptorSpec is the wire form of key material: a JSON array whose first
// element names the scheme and whose remaining elements are scheme-specific,
// e.g. ["rotate",8] or ["rsa","<pem>"]. Elements beyond the scheme name are
// kept raw so private material round-trips byte for byte.
type EncryptorSpec []json.RawMessage

// Scheme returns the scheme name in the spec's first element.
func (s EncryptorSpec) Scheme() (string, error) {
	if len(s) == 0 {
		return "", errors.Wrap(ErrValidation, "encryptor spec is empty")
	}
	var name string
	if err := json.Unmarshal(s[0], &name); err != nil {
		return "", errors.Wrap(ErrValidation, "encryptor scheme is not a string")
	}
	return name, nil
}

// NewEncryptorSpec assembles a spec from a scheme name and its material.
func NewEncryptorSpec(scheme string, material ...any) (EncryptorSpec, error) {
	spec := make(EncryptorSpec, 0, len(material)+1)
	name, err := json.Marshal(scheme)
	if err != nil {
		return nil, err
	}
	spec = append(spec, name)
	for _, m := range material {
		raw, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		spec = append(spec, raw)
	}
	return spec, nil
}

// ParseEncryptorSpec decodes a spec from caller-supplied JSON and checks its
// shape.
func ParseEncryptorSpec(data []byte) (EncryptorSpec, error) {
	var s EncryptorSpec
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(ErrValidation, "encryptor spec is not a JSON array")
	}
	if _, err := s.Scheme(); err != nil {
		return nil, err
	}
	return s, nil
}

// Equal reports whether two specs have identical wire forms.
func (s EncryptorSpec) Equal(other EncryptorSpec) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if string(s[i]) != string(other[i]) {
			return false
		}
	}
	return true
}
