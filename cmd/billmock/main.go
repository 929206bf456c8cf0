// Package main is the entry point for the billing mock server.
//
//	@title						Billing Mock API
//	@version					1.0
//	@description				Deterministic mock of a cloud billing provider API for integration tests.
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@securityDefinitions.basic	BasicAuth
//	@description				Fixed test credential pair (default testuser/testpass)
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/artpar/billmock/bootstrap"
	"github.com/artpar/billmock/config"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "billmock.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	validate := flag.Bool("validate", false, "Validate configuration and exit")
	hotReload := flag.Bool("hot-reload", true, "Enable hot reload of configuration")
	flag.Parse()

	// Version command
	if *showVersion {
		fmt.Printf("billmock %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Validate only mode
	if *validate {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration valid\n")
		fmt.Printf("  Listen: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
		fmt.Printf("  Rate limit: %d req / %dms\n", cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowMs)
		fmt.Printf("  Sentinel contract: %s\n", cfg.Fixtures.InvalidContractID)
		os.Exit(0)
	}

	// Create application. The mock runs without any config file at all;
	// hot reload only makes sense when one exists.
	var app *bootstrap.App
	var err error

	if _, statErr := os.Stat(*configPath); statErr == nil && *hotReload {
		app, err = bootstrap.NewWithHotReload(*configPath)
	} else {
		cfg, loadErr := config.LoadWithFallback(*configPath)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", loadErr)
			os.Exit(1)
		}
		app, err = bootstrap.New(cfg)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	// Run (blocks until shutdown)
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
