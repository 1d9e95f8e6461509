package domain

import (
	"encoding/json"
	"unicode/utf8"
)

const (
	// PersonalIdentityLength is the character count of a personal identity number.
	PersonalIdentityLength = 11
	// BusinessIdentityLength is the character count of a company tax number.
	BusinessIdentityLength = 10
	// InvalidIdentityValue is how a malformed identity is rendered.
	InvalidIdentityValue = "Invalid"
)

// Identity is either a valid identity number or the invalid marker.
// The zero value is invalid.
type Identity struct {
	value string
	valid bool
}

// NewIdentity keeps raw when it has exactly length characters and returns
// an invalid identity otherwise. No checksum or digit validation is done.
func NewIdentity(raw string, length int) Identity {
	if utf8.RuneCountInString(raw) != length {
		return Identity{}
	}
	return Identity{value: raw, valid: true}
}

// NewPersonalIdentity validates raw against PersonalIdentityLength.
func NewPersonalIdentity(raw string) Identity {
	return NewIdentity(raw, PersonalIdentityLength)
}

// NewBusinessIdentity validates raw against BusinessIdentityLength.
func NewBusinessIdentity(raw string) Identity {
	return NewIdentity(raw, BusinessIdentityLength)
}

// IsValid reports whether the identity passed the length check.
func (i Identity) IsValid() bool {
	return i.valid
}

// Value returns the identity number and whether it is valid.
func (i Identity) Value() (string, bool) {
	return i.value, i.valid
}

// String renders the number, or InvalidIdentityValue for an invalid identity.
func (i Identity) String() string {
	if !i.valid {
		return InvalidIdentityValue
	}
	return i.value
}

// Equal reports whether both identities are valid and carry the same number.
// Two invalid identities are never equal.
func (i Identity) Equal(other Identity) bool {
	return i.valid && other.valid && i.value == other.value
}

// Matches reports whether the identity is valid and equal to raw.
func (i Identity) Matches(raw string) bool {
	return i.valid && i.value == raw
}

// MarshalJSON encodes the identity as its String form.
func (i Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// Identifiable is anything keyed by an Identity.
type Identifiable interface {
	Identity() Identity
}
