//go:build mage

// Package main contains Mage build targets for the itinerary search service.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir      = "bin"
	serverPkg   = "./cmd/server"
	ctlPkg      = "./cmd/catalogctl"
	seedFile    = "testdata/catalog.yaml"
	swaggerMain = "cmd/server/main.go"
)

// Default target when mage runs without arguments.
var Default = Build

// Build compiles the server and catalogctl binaries into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	for name, pkg := range map[string]string{
		"itinerary-search": serverPkg,
		"catalogctl":       ctlPkg,
	} {
		out := filepath.Join(binDir, name)
		if err := sh.RunV("go", "build", "-o", out, pkg); err != nil {
			return fmt.Errorf("go build %s: %w", pkg, err)
		}
		fmt.Printf("Built %s\n", out)
	}
	return nil
}

// Test runs the unit and integration tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Cover writes a coverage profile to coverage.out and prints the summary.
func Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Lint runs go vet and golangci-lint when it is installed.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	if _, err := sh.Output("golangci-lint", "version"); err != nil {
		fmt.Println("golangci-lint not installed, skipping")
		return nil
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Generate regenerates the port mocks.
func Generate() error {
	return sh.RunV("go", "generate", "./internal/domain/...")
}

// Swagger regenerates the OpenAPI documentation in docs/.
func Swagger() error {
	return sh.RunV("swag", "init", "-g", swaggerMain, "-o", "docs", "--outputTypes", "go")
}

// Seed loads the sample catalog into the local store and index.
func Seed() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, "catalogctl"), "seed", seedFile)
}

// Run starts the server with the sample catalog seeded at startup.
func Run() error {
	mg.Deps(Build)
	env := map[string]string{"CATALOG_SEED_FILE": seedFile}
	return sh.RunWithV(env, filepath.Join(binDir, "itinerary-search"))
}

// Clean removes build output and local data files.
func Clean() error {
	for _, path := range []string{binDir, "data", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}
