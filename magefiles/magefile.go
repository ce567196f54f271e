//go:build mage

// Package main contains Mage build targets for plainify developer tooling.
// Implements: docs/ARCHITECTURE § Developer Tooling.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "plainify"
	cmdPkg  = "./cmd/plainify"

	imageTag = "markitdown:latest"
	// Docker builds straight from the upstream repo; a branch rather than a
	// tag so image rebuilds pick up converter fixes.
	markitdownRepo = "https://github.com/microsoft/markitdown.git#main"
)

// Build compiles the CLI binary into bin/ with the version stamped in.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := fmt.Sprintf("-X main.version=%s", gitVersion())
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

// Image builds the markitdown container image used by the default
// extraction backend. Requires docker or podman.
func Image() error {
	runtime := "docker"
	if _, err := exec.LookPath(runtime); err != nil {
		runtime = "podman"
	}
	return sh.RunV(runtime, "build", "-t", imageTag, markitdownRepo)
}

// All runs the test suite, then builds the binary.
func All() {
	mg.SerialDeps(Test, Build)
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm(binDir)
}

// gitVersion describes the working tree for the version stamp, falling back
// to "dev" outside a git checkout.
func gitVersion() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || v == "" {
		return "dev"
	}
	return v
}
