// Package encryptor interprets encryptor specs: the JSON arrays that carry
// an identity's key material.
//
// Each scheme knows how to derive the public counterpart of its spec, report
// whether a spec is already public, and, where the scheme supports it, sign
// and verify. Supported schemes:
//
//   - rotate   toy byte-rotation key, ["rotate", n]
//   - rsa      PEM-encoded RSA key, ["rsa", "<pem>"]
//   - x25519   Curve25519 pair, ["x25519", "<pub b64>", "<priv b64>"]
package encryptor
