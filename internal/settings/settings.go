// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Environment-variable prefixes, one per settings group. A field's variable
// is the group prefix plus the uppercased field name, which keeps same-named
// fields in different groups from colliding.
const (
	sharedPrefix   = "ORION_"
	loggingPrefix  = "ORION_LOGGING_"
	serverPrefix   = "ORION_SERVER_"
	databasePrefix = "ORION_SERVER_DATABASE_"
	dataPrefix     = "ORION_SERVER_DATA_"
	apiPrefix      = "ORION_SERVER_API_"
	servicesPrefix = "ORION_SERVER_SERVICES_"
)

// loggingValues is the mutable resolution form of [Logging].
type loggingValues struct {
	SettingsPath Path   `env:"SETTINGS_PATH" override:"settings_path"`
	Level        string `env:"LEVEL" override:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
}

func loggingDefaults() (loggingValues, error) {
	shared, err := SharedContext()
	if err != nil {
		return loggingValues{}, err
	}

	return loggingValues{
		SettingsPath: Path(filepath.Join(string(shared.Home()), "logging.yml")),
		Level:        "info",
	}, nil
}

// Logging holds the settings of the logging subsystem.
type Logging struct {
	settingsPath Path
	level        string
}

// NewLogging resolves the logging group (prefix ORION_LOGGING_).
func NewLogging(overrides Overrides) (Logging, error) {
	defaults, err := loggingDefaults()
	if err != nil {
		return Logging{}, err
	}

	vals, err := resolveGroup(loggingPrefix, defaults, overrides)
	if err != nil {
		return Logging{}, err
	}

	return Logging{settingsPath: vals.SettingsPath, level: vals.Level}, nil
}

// SettingsPath points at an optional logging-configuration file under the
// Orion home directory. The file is read by the logging subsystem, not here.
func (l Logging) SettingsPath() Path { return l.settingsPath }

// Level is the minimum level emitted by the process logger.
func (l Logging) Level() string { return l.level }

// settingsValues is the mutable resolution form of the root [Settings]
// scalars. The shared fields are re-resolved here under the same ORION_
// prefix, so the tree and the shared context always agree.
type settingsValues struct {
	Home       Path   `env:"HOME" override:"home" validate:"required"`
	DebugMode  bool   `env:"DEBUG_MODE" override:"debug_mode"`
	TestMode   bool   `env:"TEST_MODE" override:"test_mode"`
	ServerHost string `env:"SERVER_HOST" override:"server_host" validate:"omitempty,url"`
}

func settingsDefaults() (settingsValues, error) {
	shared, err := sharedDefaults()
	if err != nil {
		return settingsValues{}, err
	}

	return settingsValues{
		Home:      shared.Home,
		DebugMode: shared.DebugMode,
		TestMode:  shared.TestMode,
	}, nil
}

// Settings is the fully resolved configuration tree of the Orion server.
// It is the sole channel through which subsystems obtain configuration; once
// a tree exists nothing should read environment variables directly.
type Settings struct {
	home       Path
	debugMode  bool
	testMode   bool
	serverHost string
	logging    Logging
	server     Server
}

// New builds a fully resolved settings tree from the current environment.
// Nested groups are constructed in declaration order through their default
// factories; an override may supply a pre-built group or a nested
// [Overrides] map under the keys "logging" and "server". Construction fails
// on the first malformed environment value, unknown override key, or
// validation error.
func New(overrides Overrides) (Settings, error) {
	ov := DropUnset(overrides)

	logging, err := nestedGroup(ov, "logging", NewLogging)
	if err != nil {
		return Settings{}, err
	}

	server, err := nestedGroup(ov, "server", NewServer)
	if err != nil {
		return Settings{}, err
	}

	defaults, err := settingsDefaults()
	if err != nil {
		return Settings{}, err
	}

	vals, err := resolveGroup(sharedPrefix, defaults, ov)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		home:       vals.Home,
		debugMode:  vals.DebugMode,
		testMode:   vals.TestMode,
		serverHost: vals.ServerHost,
		logging:    logging,
		server:     server,
	}, nil
}

// Home is the Orion home directory (ORION_HOME, default ~/.orion expanded).
func (s Settings) Home() Path { return s.home }

// DebugMode reports whether debug behavior is enabled (ORION_DEBUG_MODE).
func (s Settings) DebugMode() bool { return s.debugMode }

// TestMode reports whether the process runs under test mode (ORION_TEST_MODE).
func (s Settings) TestMode() bool { return s.testMode }

// ServerHost is the URL of a remote Orion instance to connect to instead of
// a local one (ORION_SERVER_HOST); empty means run locally.
func (s Settings) ServerHost() string { return s.serverHost }

// Logging is the resolved logging group.
func (s Settings) Logging() Logging { return s.logging }

// Server is the resolved server group.
func (s Settings) Server() Server { return s.server }

var (
	treeMu sync.Mutex
	tree   *Settings
)

// GetSettings returns the process-wide settings tree, building it on the
// first successful call. The tree is frozen, so any number of goroutines may
// read it concurrently without synchronization. Code that needs a different
// configuration must call [New] with overrides rather than mutate the
// environment after this tree exists.
func GetSettings() (Settings, error) {
	treeMu.Lock()
	defer treeMu.Unlock()

	if tree == nil {
		settings, err := New(nil)
		if err != nil {
			return Settings{}, fmt.Errorf("error building settings tree: %w", err)
		}
		tree = &settings
	}

	return *tree, nil
}

// Reset discards the cached shared context and settings tree so the next
// access re-resolves from the current environment. Intended for tests; the
// production singletons live for the whole process.
func Reset() {
	treeMu.Lock()
	defer treeMu.Unlock()
	sharedMu.Lock()
	defer sharedMu.Unlock()

	tree = nil
	sharedCtx = nil
}
