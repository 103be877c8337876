//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the engine binary into bin/lumen.
func (Build) Engine() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/lumen", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs go mod tidy and go vet.
func (Build) Tidy() error {
	return goTidy()
}
