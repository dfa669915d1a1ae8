// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"fmt"
	"sort"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// validate is the package-level validator shared by all groups.
var validate = validator.New()

// resolveGroup resolves one settings group into its mutable resolution
// struct. The caller supplies the struct pre-filled with defaults (computed
// defaults are evaluated by the caller, at this moment, not earlier), then:
//
//  1. environment variables named prefix+NAME overwrite defaults for every
//     variable present in the environment;
//  2. explicit overrides, minus [NotSet] entries, overwrite the result;
//  3. the final struct is validated.
//
// Any failure aborts the whole resolution; no partially resolved group is
// ever returned.
func resolveGroup[T any](prefix string, defaults T, overrides Overrides) (T, error) {
	var zero T
	resolved := defaults

	if err := env.ParseWithOptions(&resolved, env.Options{Prefix: prefix}); err != nil {
		return zero, &CoercionError{Prefix: prefix, Err: err}
	}

	if err := applyOverrides(&resolved, prefix, DropUnset(overrides)); err != nil {
		return zero, err
	}

	if err := validate.Struct(&resolved); err != nil {
		return zero, fmt.Errorf("settings group %q: %w", prefix, err)
	}

	return resolved, nil
}

// applyOverrides decodes the override map onto the resolution struct. String
// values pass through the same TextUnmarshaler parsing as environment
// variables, so overrides and env agree on [Duration], [Path], and [Secret].
// Keys matching no field are rejected.
func applyOverrides(target any, prefix string, ov Overrides) error {
	if len(ov) == 0 {
		return nil
	}

	var meta mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:  "override",
		Result:   target,
		Metadata: &meta,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("settings group %q: %w", prefix, err)
	}

	if err := dec.Decode(map[string]any(ov)); err != nil {
		return &CoercionError{Prefix: prefix, Err: err}
	}

	if len(meta.Unused) > 0 {
		keys := append([]string(nil), meta.Unused...)
		sort.Strings(keys)
		return &UnknownOverrideError{Prefix: prefix, Keys: keys}
	}

	return nil
}

// nestedGroup resolves one nested-group field of a parent under
// construction. An override under key short-circuits the default factory:
// a pre-built instance is used as-is, a nested [Overrides] map is handed to
// the factory. Otherwise the factory runs with no overrides, resolving the
// group from the current environment. Consumed keys are removed from ov so
// the parent can flag leftovers as unknown.
func nestedGroup[T any](ov Overrides, key string, factory func(Overrides) (T, error)) (T, error) {
	raw, ok := ov[key]
	if !ok {
		return factory(nil)
	}
	delete(ov, key)

	switch value := raw.(type) {
	case T:
		return value, nil
	case Overrides:
		return factory(value)
	case map[string]any:
		return factory(Overrides(value))
	default:
		var zero T
		return zero, fmt.Errorf("override %q (%T): %w", key, raw, ErrInvalidGroupOverride)
	}
}
