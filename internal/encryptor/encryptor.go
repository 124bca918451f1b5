package encryptor

import (
	"github.com/cockroachdb/errors"

	"idcache/internal/domain"
)

// ErrUnknownScheme marks an encryptor spec naming a scheme this build does
// not implement.
var ErrUnknownScheme = errors.New("unknown encryptor scheme")

// ErrCannotSign is returned by schemes without signature support.
var ErrCannotSign = errors.New("encryptor scheme cannot sign")

// Encryptor is the behavior behind one encryptor spec.
type Encryptor interface {
	// Spec returns the wire form this encryptor was built from.
	Spec() domain.EncryptorSpec

	// Public returns the spec with private material stripped. Calling it
	// on an already-public spec returns an equivalent spec.
	Public() (domain.EncryptorSpec, error)

	// IsPublic reports whether the spec carries no private material.
	IsPublic() bool

	// Sign signs msg with the spec's private material.
	Sign(msg []byte) ([]byte, error)

	// Verify checks a signature over msg against the public material.
	Verify(msg, sig []byte) error
}

// Make builds the Encryptor for a spec.
func Make(spec domain.EncryptorSpec) (Encryptor, error) {
	scheme, err := spec.Scheme()
	if err != nil {
		return nil, err
	}
	switch scheme {
	case schemeRotate:
		return newRotate(spec)
	case schemeRSA:
		return newRSA(spec)
	case schemeX25519:
		return newX25519(spec)
	default:
		return nil, errors.Wrap(ErrUnknownScheme, scheme)
	}
}

// DerivePublic returns the public counterpart of a spec.
func DerivePublic(spec domain.EncryptorSpec) (domain.EncryptorSpec, error) {
	e, err := Make(spec)
	if err != nil {
		return nil, err
	}
	return e.Public()
}

// Generate creates fresh key material for a scheme, returned in its private
// spec form.
func Generate(scheme string) (domain.EncryptorSpec, error) {
	switch scheme {
	case schemeRotate:
		return generateRotate()
	case schemeRSA:
		return generateRSA()
	case schemeX25519:
		return generateX25519()
	default:
		return nil, errors.Wrap(ErrUnknownScheme, scheme)
	}
}

// Schemes lists the scheme names Generate accepts.
func Schemes() []string {
	return []string{schemeRotate, schemeRSA, schemeX25519}
}
