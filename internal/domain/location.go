package domain

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Location is the 3-element network location tuple [type, address, callsign].
// The address element may be null on the wire, for example for loopback
// locations; it is nil here in that case.
type Location struct {
	Type     string
	Addr     *string
	Callsign string
}

// NewLocation builds a location with a present address.
func NewLocation(typ, addr, callsign string) Location {
	return Location{Type: typ, Addr: &addr, Callsign: callsign}
}

// LocalLocation builds a location with a null address.
func LocalLocation(typ, callsign string) Location {
	return Location{Type: typ, Callsign: callsign}
}

// MarshalJSON encodes the tuple in its wire form, e.g. ["local",null,"mitzi"].
func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{l.Type, l.Addr, l.Callsign})
}

// UnmarshalJSON mirrors MarshalJSON.
func (l *Location) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return errors.Wrap(ErrValidation, "location is not a JSON array")
	}
	if len(parts) != 3 {
		return errors.Wrapf(ErrValidation, "location has %d elements, want 3", len(parts))
	}
	var out Location
	if err := json.Unmarshal(parts[0], &out.Type); err != nil {
		return errors.Wrap(ErrValidation, "location type is not a string")
	}
	if err := json.Unmarshal(parts[1], &out.Addr); err != nil {
		return errors.Wrap(ErrValidation, "location address is not a string or null")
	}
	if err := json.Unmarshal(parts[2], &out.Callsign); err != nil {
		return errors.Wrap(ErrValidation, "location callsign is not a string")
	}
	*l = out
	return nil
}

// String returns the compact wire form, which doubles as the cache key.
func (l Location) String() string {
	b, err := json.Marshal(l)
	if err != nil {
		// Marshal of strings and a *string cannot fail.
		panic(err)
	}
	return string(b)
}

// DeriveKey computes the canonical cache-file key for a location: its
// compact JSON encoding. Two identities share a key exactly when their
// location tuples are equal.
func DeriveKey(l Location) string {
	return l.String()
}

// ParseLocation decodes a location tuple from caller-supplied JSON.
func ParseLocation(data []byte) (Location, error) {
	var l Location
	if err := json.Unmarshal(data, &l); err != nil {
		return Location{}, err
	}
	return l, nil
}
