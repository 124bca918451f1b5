package encryptor

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/curve25519"

	"idcache/internal/domain"
)

const schemeX25519 = "x25519"

// x25519 carries a Curve25519 pair: ["x25519", "<pub b64>"] public form,
// ["x25519", "<pub b64>", "<priv b64>"] private form. Deriving the public
// spec drops the third element.
type x25519 struct {
	spec domain.EncryptorSpec
	pub  [32]byte
	priv *[32]byte
}

func newX25519(spec domain.EncryptorSpec) (*x25519, error) {
	if len(spec) != 2 && len(spec) != 3 {
		return nil, errors.Wrap(domain.ErrValidation, "x25519 spec wants a public key and optional private key")
	}
	e := &x25519{spec: spec}
	if err := decodeKey(spec[1], &e.pub); err != nil {
		return nil, errors.Wrap(err, "x25519 public key")
	}
	if len(spec) == 3 {
		e.priv = new([32]byte)
		if err := decodeKey(spec[2], e.priv); err != nil {
			return nil, errors.Wrap(err, "x25519 private key")
		}
	}
	return e, nil
}

func decodeKey(raw json.RawMessage, out *[32]byte) error {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return errors.Wrap(domain.ErrValidation, "key is not a string")
	}
	b, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return errors.Wrap(domain.ErrValidation, "key is not base64")
	}
	if len(b) != 32 {
		return errors.Wrapf(domain.ErrValidation, "key is %d bytes, want 32", len(b))
	}
	copy(out[:], b)
	return nil
}

func generateX25519() (domain.EncryptorSpec, error) {
	var priv [32]byte
	if _, err := rand.Read(priv[:]); err != nil {
		return nil, err
	}
	priv[0] &= 248
	priv[31] &= 127
	priv[31] |= 64

	var pub [32]byte
	curve25519.ScalarBaseMult(&pub, &priv)

	return domain.NewEncryptorSpec(schemeX25519,
		base64.StdEncoding.EncodeToString(pub[:]),
		base64.StdEncoding.EncodeToString(priv[:]),
	)
}

func (e *x25519) Spec() domain.EncryptorSpec { return e.spec }

func (e *x25519) IsPublic() bool { return e.priv == nil }

func (e *x25519) Public() (domain.EncryptorSpec, error) {
	if e.IsPublic() {
		return e.spec, nil
	}
	// Recompute rather than trust the stored public half.
	var pub [32]byte
	curve25519.ScalarBaseMult(&pub, e.priv)
	return domain.NewEncryptorSpec(schemeX25519, base64.StdEncoding.EncodeToString(pub[:]))
}

func (e *x25519) Sign([]byte) ([]byte, error) {
	return nil, errors.Wrap(ErrCannotSign, "x25519 is agreement-only")
}

func (e *x25519) Verify([]byte, []byte) error {
	return errors.Wrap(ErrCannotSign, "x25519 is agreement-only")
}
