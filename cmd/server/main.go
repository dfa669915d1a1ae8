// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/orion-server/internal/logger"
	"github.com/MKhiriev/orion-server/internal/settings"
	"github.com/MKhiriev/orion-server/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	tree, err := settings.GetSettings()
	if err != nil {
		// no logger yet: settings carry its configuration
		fmt.Fprintf(os.Stderr, "error building settings tree: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(tree.Logging(), "orion-server")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %v\n", err)
		os.Exit(1)
	}

	log.Info().
		Stringer("home", tree.Home()).
		Bool("debug_mode", tree.DebugMode()).
		Str("api_host", tree.Server().API().Host()).
		Int("api_port", tree.Server().API().Port()).
		Stringer("database_url", tree.Server().Database().ConnectionURL()).
		Float64("scheduler_loop_seconds", tree.Server().Services().SchedulerLoopSeconds()).
		Msg("settings resolved")

	db, err := store.Open(tree.Server().Database())
	if err != nil {
		log.Fatal().Err(err).Msg("error opening orion database")
	}
	defer func() { _ = db.Close() }()

	log.Info().Msg("orion database reachable")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
