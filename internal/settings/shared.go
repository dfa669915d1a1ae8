// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"fmt"
	"sync"
)

// defaultHome is the Orion home directory before environment overrides,
// relative to the user's home.
const defaultHome = "~/.orion"

// sharedValues is the mutable resolution form of [Shared].
type sharedValues struct {
	Home      Path `env:"HOME" override:"home" validate:"required"`
	DebugMode bool `env:"DEBUG_MODE" override:"debug_mode"`
	TestMode  bool `env:"TEST_MODE" override:"test_mode"`
}

func sharedDefaults() (sharedValues, error) {
	home, err := expandHome(defaultHome)
	if err != nil {
		return sharedValues{}, err
	}

	return sharedValues{Home: Path(home)}, nil
}

// Shared holds the top-level values that other groups' defaults may
// reference, most notably the Orion home directory. Instances are frozen:
// fields are written once by [NewShared] and read through accessors.
type Shared struct {
	home      Path
	debugMode bool
	testMode  bool
}

// NewShared resolves the shared group from the ORION_-prefixed environment,
// applying explicit overrides on top.
func NewShared(overrides Overrides) (Shared, error) {
	defaults, err := sharedDefaults()
	if err != nil {
		return Shared{}, err
	}

	vals, err := resolveGroup(sharedPrefix, defaults, overrides)
	if err != nil {
		return Shared{}, err
	}

	return Shared{
		home:      vals.Home,
		debugMode: vals.DebugMode,
		testMode:  vals.TestMode,
	}, nil
}

// Home is the Orion home directory (ORION_HOME, default ~/.orion expanded).
func (s Shared) Home() Path { return s.home }

// DebugMode reports whether debug behavior is enabled (ORION_DEBUG_MODE).
func (s Shared) DebugMode() bool { return s.debugMode }

// TestMode reports whether the process runs under test mode (ORION_TEST_MODE).
func (s Shared) TestMode() bool { return s.testMode }

var (
	sharedMu  sync.Mutex
	sharedCtx *Shared
)

// SharedContext returns the process-wide shared group, resolving it from the
// environment on the first successful call. Derived defaults in other groups
// (the database URL, the logging settings path) read this singleton rather
// than the static defaults, so they observe environment overrides of the
// home directory.
func SharedContext() (Shared, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedCtx == nil {
		shared, err := NewShared(nil)
		if err != nil {
			return Shared{}, fmt.Errorf("error resolving shared settings: %w", err)
		}
		sharedCtx = &shared
	}

	return *sharedCtx, nil
}
