package encryptor

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"

	"github.com/cockroachdb/errors"

	"idcache/internal/domain"
)

const (
	schemeRSA  = "rsa"
	rsaKeyBits = 2048

	pemTypePrivate = "RSA PRIVATE KEY"
	pemTypePublic  = "RSA PUBLIC KEY"
)

// rsaEnc wraps a PEM-encoded RSA key, ["rsa", "<pem>"]. The PEM block type
// decides whether the spec is private or public.
type rsaEnc struct {
	spec domain.EncryptorSpec
	priv *rsa.PrivateKey
	pub  *rsa.PublicKey
}

func newRSA(spec domain.EncryptorSpec) (*rsaEnc, error) {
	if len(spec) != 2 {
		return nil, errors.Wrap(domain.ErrValidation, "rsa spec wants exactly one key element")
	}
	var pemText string
	if err := json.Unmarshal(spec[1], &pemText); err != nil {
		return nil, errors.Wrap(domain.ErrValidation, "rsa key is not a PEM string")
	}
	block, _ := pem.Decode([]byte(pemText))
	if block == nil {
		return nil, errors.Wrap(domain.ErrValidation, "rsa key is not valid PEM")
	}
	e := &rsaEnc{spec: spec}
	switch block.Type {
	case pemTypePrivate:
		priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(domain.ErrValidation, "parse rsa private key")
		}
		e.priv = priv
		e.pub = &priv.PublicKey
	case pemTypePublic:
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(domain.ErrValidation, "parse rsa public key")
		}
		e.pub = pub
	default:
		return nil, errors.Wrapf(domain.ErrValidation, "unexpected PEM block %q", block.Type)
	}
	return e, nil
}

func generateRSA() (domain.EncryptorSpec, error) {
	priv, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, err
	}
	pemText := pem.EncodeToMemory(&pem.Block{
		Type:  pemTypePrivate,
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	})
	return domain.NewEncryptorSpec(schemeRSA, string(pemText))
}

func (e *rsaEnc) Spec() domain.EncryptorSpec { return e.spec }

func (e *rsaEnc) IsPublic() bool { return e.priv == nil }

func (e *rsaEnc) Public() (domain.EncryptorSpec, error) {
	if e.IsPublic() {
		return e.spec, nil
	}
	pemText := pem.EncodeToMemory(&pem.Block{
		Type:  pemTypePublic,
		Bytes: x509.MarshalPKCS1PublicKey(e.pub),
	})
	return domain.NewEncryptorSpec(schemeRSA, string(pemText))
}

func (e *rsaEnc) Sign(msg []byte) ([]byte, error) {
	if e.priv == nil {
		return nil, errors.Wrap(ErrCannotSign, "rsa spec is public only")
	}
	digest := sha256.Sum256(msg)
	return rsa.SignPKCS1v15(rand.Reader, e.priv, crypto.SHA256, digest[:])
}

func (e *rsaEnc) Verify(msg, sig []byte) error {
	digest := sha256.Sum256(msg)
	return rsa.VerifyPKCS1v15(e.pub, crypto.SHA256, digest[:], sig)
}
