//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles the pycforge binary.
func Build() error {
	return sh.RunV("go", "build", "-o", "bin/pycforge", "./cmd/pycforge")
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// All builds after linting and testing.
func All() {
	mg.SerialDeps(Lint, Test, Build)
}
