// Package domain defines the core identity types shared across the CLI.
//
// An Identity binds a name to a network location tuple and an encryptor
// specification. Identities live in cache files: JSON objects mapping a
// location-derived key to an identity record. Unknown record fields are
// carried in an open attribute bag and survive a load/store round trip
// untouched.
package domain
