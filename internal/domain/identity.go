package domain

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Reserved record fields; everything else lands in the attribute bag.
const (
	fieldName      = "name"
	fieldLocation  = "location"
	fieldEncryptor = "encryptor"
)

// Identity is a named record binding a network location and an encryption
// key specification. Extra holds any further record fields verbatim.
type Identity struct {
	Name      string
	Location  Location
	Encryptor EncryptorSpec
	Extra     map[string]json.RawMessage
}

// NewIdentity builds an identity from its required fields plus an optional
// attribute bag. The bag is copied, with reserved field names ignored.
func NewIdentity(name string, loc Location, enc EncryptorSpec, extra map[string]json.RawMessage) Identity {
	id := Identity{Name: name, Location: loc, Encryptor: enc}
	for k, v := range extra {
		switch k {
		case fieldName, fieldLocation, fieldEncryptor:
			continue
		}
		if id.Extra == nil {
			id.Extra = make(map[string]json.RawMessage)
		}
		id.Extra[k] = v
	}
	return id
}

// Key returns the identity's canonical cache-file key.
func (id Identity) Key() string {
	return DeriveKey(id.Location)
}

// MarshalJSON flattens the identity back into a single JSON object with the
// attribute bag inlined alongside the reserved fields.
func (id Identity) MarshalJSON() ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(id.Extra)+3)
	for k, v := range id.Extra {
		obj[k] = v
	}
	name, err := json.Marshal(id.Name)
	if err != nil {
		return nil, err
	}
	loc, err := json.Marshal(id.Location)
	if err != nil {
		return nil, err
	}
	enc, err := json.Marshal(id.Encryptor)
	if err != nil {
		return nil, err
	}
	obj[fieldName] = name
	obj[fieldLocation] = loc
	obj[fieldEncryptor] = enc
	return json.Marshal(obj)
}

// UnmarshalJSON validates the required fields and stashes the rest in Extra.
func (id *Identity) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.Wrap(ErrValidation, "identity record is not a JSON object")
	}
	for _, req := range []string{fieldName, fieldLocation, fieldEncryptor} {
		if _, ok := obj[req]; !ok {
			return errors.Wrapf(ErrValidation, "missing identity property %q", req)
		}
	}
	var out Identity
	if err := json.Unmarshal(obj[fieldName], &out.Name); err != nil {
		return errors.Wrap(ErrValidation, "identity name is not a string")
	}
	if err := json.Unmarshal(obj[fieldLocation], &out.Location); err != nil {
		return err
	}
	if err := json.Unmarshal(obj[fieldEncryptor], &out.Encryptor); err != nil {
		return errors.Wrap(ErrValidation, "encryptor spec is not a JSON array")
	}
	if _, err := out.Encryptor.Scheme(); err != nil {
		return err
	}
	for k, v := range obj {
		switch k {
		case fieldName, fieldLocation, fieldEncryptor:
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]json.RawMessage)
		}
		out.Extra[k] = v
	}
	*id = out
	return nil
}

// Clone returns a deep copy; mutating the copy leaves the original alone.
func (id Identity) Clone() Identity {
	out := id
	if id.Encryptor != nil {
		out.Encryptor = make(EncryptorSpec, len(id.Encryptor))
		copy(out.Encryptor, id.Encryptor)
	}
	if id.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(id.Extra))
		for k, v := range id.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Apply shallow-merges attribute updates into the identity. Reserved fields
// replace the typed core (the caller is responsible for re-keying when the
// location changes); everything else updates the attribute bag by key.
func (id *Identity) Apply(attrs map[string]json.RawMessage) error {
	for k, v := range attrs {
		switch k {
		case fieldName:
			if err := json.Unmarshal(v, &id.Name); err != nil {
				return errors.Wrap(ErrValidation, "identity name is not a string")
			}
		case fieldLocation:
			if err := json.Unmarshal(v, &id.Location); err != nil {
				return err
			}
		case fieldEncryptor:
			spec, err := ParseEncryptorSpec(v)
			if err != nil {
				return err
			}
			id.Encryptor = spec
		default:
			if id.Extra == nil {
				id.Extra = make(map[string]json.RawMessage)
			}
			id.Extra[k] = v
		}
	}
	return nil
}

// ParseAttrs decodes a caller-supplied JSON object of attribute updates.
func ParseAttrs(data []byte) (map[string]json.RawMessage, error) {
	var attrs map[string]json.RawMessage
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, errors.Wrap(ErrValidation, "attributes are not a JSON object")
	}
	return attrs, nil
}
