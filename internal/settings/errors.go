// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGroupOverride indicates that the override supplied for a
// nested-group field is neither an instance of that group nor an [Overrides]
// map for its constructor.
var ErrInvalidGroupOverride = errors.New("override is not an instance of the nested settings group")

// CoercionError reports an environment value that could not be parsed as its
// field's declared type. The wrapped error from the env parser names the
// field, the raw string, and the expected type; Prefix identifies the group.
//
// A CoercionError aborts construction of the whole settings tree. There is
// no partial or best-effort tree.
type CoercionError struct {
	Prefix string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("settings group %q: %v", e.Prefix, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// UnknownOverrideError reports override keys that match no field of the
// group under construction. Unknown keys are rejected, never silently
// ignored.
type UnknownOverrideError struct {
	Prefix string
	Keys   []string
}

func (e *UnknownOverrideError) Error() string {
	return fmt.Sprintf("settings group %q: unknown override keys: %s", e.Prefix, strings.Join(e.Keys, ", "))
}
