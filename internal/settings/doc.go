// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package settings resolves the Orion server configuration tree from
// environment variables.
//
// Configuration is organized as a tree of settings groups, each bound to its
// own environment-variable prefix:
//
//	Settings          ORION_
//	├── Logging       ORION_LOGGING_
//	└── Server        ORION_SERVER_
//	    ├── Database  ORION_SERVER_DATABASE_
//	    ├── Data      ORION_SERVER_DATA_
//	    ├── API       ORION_SERVER_API_
//	    └── Services  ORION_SERVER_SERVICES_
//
// A scalar field named "echo" in the database group is resolved from
// ORION_SERVER_DATABASE_ECHO. Resolution order per field: explicit override
// passed to the constructor, then the environment variable, then the
// declared default. Defaults that depend on other resolved values (for
// example, the database file living under the shared home directory) are
// computed when the owning group is constructed, never at package
// initialization, so a test harness may adjust the environment before
// building a tree.
//
// Every group type is frozen: its fields are unexported, written exactly
// once by its constructor, and read through accessors. Once built, a tree
// may be shared across goroutines without synchronization. The canonical
// process-wide tree is obtained from [GetSettings]; code that needs a
// different configuration (tests, scoped subsystems) constructs its own
// instance with [New] and an [Overrides] map instead of mutating shared
// state or the environment.
package settings
