// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"fmt"
	"sort"

	"dario.cat/mergo"
)

// notSetType is a marker equal only to itself.
type notSetType struct{}

// NotSet marks an override entry as "not provided". It lets callers build an
// [Overrides] map unconditionally and still fall back to standard resolution
// for some fields, which nil, false, 0, or "" could not express.
var NotSet = notSetType{}

// Overrides carries explicit values for a settings group constructor, keyed
// by field name ("default_limit", "connection_url", ...). A key naming a
// nested group accepts either a pre-built group instance or a nested
// Overrides map for the group's own constructor.
type Overrides map[string]any

// DropUnset returns a copy of ov without the entries equal to [NotSet].
// All other entries, including nil and zero values, are kept as-is.
func DropUnset(ov Overrides) Overrides {
	out := make(Overrides, len(ov))
	for key, value := range ov {
		if value == any(NotSet) {
			continue
		}
		out[key] = value
	}
	return out
}

// Merge flattens override layers left to right, later layers winning.
// NotSet entries are dropped per layer so they never mask a real value.
func Merge(layers ...Overrides) (Overrides, error) {
	merged := Overrides{}
	for _, layer := range layers {
		if err := mergo.Merge(&merged, DropUnset(layer), mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging overrides: %w", err)
		}
	}
	return merged, nil
}

func sortedKeys(ov Overrides) []string {
	keys := make([]string, 0, len(ov))
	for key := range ov {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
