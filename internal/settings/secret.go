// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import "fmt"

// secretMask is the fixed textual stand-in for any non-empty secret value.
const secretMask = "**********"

// Secret is a string whose default textual representation is masked.
// Logging a settings tree, formatting it with the fmt verbs, or encoding it
// to JSON never prints the raw value; callers that genuinely need it must go
// through [Secret.Reveal].
type Secret struct {
	// The raw string sits behind a pointer: fmt cannot call String on values
	// reached through unexported fields and reflects into them instead, and a
	// pointer renders as an address rather than its contents. Formatting a
	// whole settings tree therefore cannot print the raw value.
	value *string
}

// NewSecret wraps a raw string in a Secret.
func NewSecret(value string) Secret { return Secret{value: &value} }

func (s Secret) raw() string {
	if s.value == nil {
		return ""
	}
	return *s.value
}

// String implements fmt.Stringer. Non-empty secrets render as a fixed-width
// mask, the zero Secret renders as the empty string.
func (s Secret) String() string {
	if s.raw() == "" {
		return ""
	}
	return secretMask
}

// GoString keeps %#v output masked as well.
func (s Secret) GoString() string {
	return fmt.Sprintf("settings.NewSecret(%q)", s.String())
}

// Reveal returns the raw secret value.
func (s Secret) Reveal() string { return s.raw() }

// Equal reports whether two secrets hold the same raw value.
func (s Secret) Equal(other Secret) bool { return s.raw() == other.raw() }

// UnmarshalText implements encoding.TextUnmarshaler, so secret fields resolve
// from environment variables like any other scalar.
func (s *Secret) UnmarshalText(text []byte) error {
	value := string(text)
	s.value = &value
	return nil
}

// MarshalText implements encoding.TextMarshaler with the masked form, which
// keeps encoding/json and structured-logging output safe.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
