// Package resolve locates identities by name across one or more cache
// files, remembering which file each match came from. Removal uses that
// provenance to refuse ambiguous targets.
package resolve
