//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Check mg.Namespace

// Runs the unit tests with the race detector.
func (Check) Test() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Runs go vet.
func (Check) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Runs vet, then the tests.
func (Check) All() {
	mg.SerialDeps(Check.Vet, Check.Test)
}

// Preloads the site catalog without a decoder to check every placeholder resolves.
func (Check) Catalog() error {
	mg.Deps(Build.Tool)
	_, err := executeCmd("bin/assettool", withArgs("preload", "-no-gltf", "internal/catalog/testdata/games.json"), withStream())
	return err
}
