//go:build mage

// Package main contains Mage build targets for sgdesign developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "sgdesign"
	cmdPkg     = "./cmd/sgdesign"
	versionVar = "github.com/alexander-cohen/SG-Design-Classification/internal/cli.Version"
)

// Default target when mage is run without arguments.
var Default = Build

// Build compiles the CLI binary into bin/, stamping the git version.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := fmt.Sprintf("-X %s=%s", versionVar, version())
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the full test suite with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// TestShort skips the slower classification tests.
func TestShort() error {
	return sh.RunV("go", "test", "-short", "./...")
}

// Conformance runs the scenario harness and refreshes its golden files
// when update is true.
func Conformance(update bool) error {
	args := []string{"test", "./internal/harness"}
	if update {
		args = append(args, "-update")
	}
	return sh.RunV("go", args...)
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the short tests.
func Check() {
	mg.SerialDeps(Vet, TestShort)
}

// Enumerate builds the binary and classifies 3..9 points into out/.
func Enumerate() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "enumerate",
		"--min-points", "3",
		"--max-points", "9",
		"--output-dir", "out",
		"--db", filepath.Join("out", "sgdesign.db"),
	)
}

// Clean removes build and enumeration output.
func Clean() error {
	for _, dir := range []string{binDir, "out"} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}

func version() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(v) == "" {
		return "dev"
	}
	return strings.TrimSpace(v)
}
