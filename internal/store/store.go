// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store opens the Orion database described by the resolved database
// settings group.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/orion-server/internal/settings"
)

// Open opens the sqlite database at the group's connection URL and verifies
// the connection. The group's statement timeout becomes the driver busy
// timeout; 0 keeps the driver default. The caller owns the returned handle
// and must close it.
func Open(cfg settings.Database) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("error opening orion database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to orion database: %w", err)
	}

	return db, nil
}

// dsn builds the driver DSN from the resolved group. The connection URL is a
// secret; this is the one place it is revealed.
func dsn(cfg settings.Database) string {
	dsn := cfg.ConnectionURL().Reveal()

	if cfg.Timeout() > 0 {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn = fmt.Sprintf("%s%s_busy_timeout=%d", dsn, sep, int(cfg.Timeout()*1000))
	}

	return dsn
}
