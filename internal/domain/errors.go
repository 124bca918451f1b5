package domain

import "github.com/cockroachdb/errors"

// ErrValidation marks malformed identity material supplied by the caller,
// such as a location that is not a 3-element tuple or an encryptor spec
// that is not a JSON array.
var ErrValidation = errors.New("invalid identity data")
