//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the assettool binary into bin/.
func (Build) Tool() error {
	if err := os.MkdirAll("bin", 0755); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", "bin/assettool", "./cmd/assettool"), withStream())
	return err
}

// Exports every placeholder shape as a .glb file into bin/fallbacks.
func (Build) Fallbacks() error {
	mg.Deps(Build.Tool)

	kinds := []string{"skull", "cube", "torus", "sphere", "cylinder", "cone", "default"}
	if err := os.MkdirAll("bin/fallbacks", 0755); err != nil {
		return err
	}
	for _, kind := range kinds {
		out := fmt.Sprintf("bin/fallbacks/%s.glb", kind)
		if _, err := executeCmd("bin/assettool", withArgs("fallback", kind, "-o", out)); err != nil {
			return err
		}
	}
	return nil
}
