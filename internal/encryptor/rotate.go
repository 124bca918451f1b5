package encryptor

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"math/big"

	"github.com/cockroachdb/errors"

	"idcache/internal/domain"
)

const schemeRotate = "rotate"

// rotate is the toy byte-rotation scheme, ["rotate", n]. It exists for
// tests and demos; the key is symmetric, so the spec is its own public form.
type rotate struct {
	spec domain.EncryptorSpec
	n    int
}

func newRotate(spec domain.EncryptorSpec) (*rotate, error) {
	if len(spec) != 2 {
		return nil, errors.Wrap(domain.ErrValidation, "rotate spec wants exactly one key element")
	}
	var n int
	if err := json.Unmarshal(spec[1], &n); err != nil {
		return nil, errors.Wrap(domain.ErrValidation, "rotate key is not an integer")
	}
	return &rotate{spec: spec, n: ((n % 256) + 256) % 256}, nil
}

func generateRotate() (domain.EncryptorSpec, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(256))
	if err != nil {
		return nil, err
	}
	return domain.NewEncryptorSpec(schemeRotate, int(n.Int64()))
}

func (r *rotate) Spec() domain.EncryptorSpec { return r.spec }

func (r *rotate) Public() (domain.EncryptorSpec, error) { return r.spec, nil }

func (r *rotate) IsPublic() bool { return true }

// Sign produces an HMAC keyed on the rotation amount. Toy strength, like
// the scheme itself.
func (r *rotate) Sign(msg []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, []byte{byte(r.n)})
	mac.Write(msg)
	return mac.Sum(nil), nil
}

func (r *rotate) Verify(msg, sig []byte) error {
	want, _ := r.Sign(msg)
	if !hmac.Equal(want, sig) {
		return errors.New("rotate signature mismatch")
	}
	return nil
}
