//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the math and systems tests with the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./engine/math/...", "./engine/systems/..."), withStream())
	return err
}
