//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "archief"
	binaryDir  = "bin"
	cmdDir     = "./cmd/archief"

	devDataDir  = ".archief-db"
	fixturesDir = "internal/store/storetest/fixtures"
)

// Build compiles the archief binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts and the development catalogue.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := os.RemoveAll(devDataDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Dev builds a development catalogue from the test fixtures and serves it.
func Dev() error {
	mg.Deps(Build)
	bin := filepath.Join(binaryDir, binaryName)
	if _, err := os.Stat(filepath.Join(devDataDir, "archief.db")); os.IsNotExist(err) {
		if err := sh.RunV(bin, "--data-dir", devDataDir, "seed", "--from", fixturesDir); err != nil {
			return err
		}
	}
	return sh.RunWithV(map[string]string{"ARCHIEF_LOG_FORMAT": "console"},
		bin, "--data-dir", devDataDir, "serve")
}
