//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the engine in a window with the demo scene.
func (Run) Engine() error {
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs("run", ".", "-scene", "scenes/demo.yaml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Renders 120 frames of the demo scene without a window and writes the last one to out/frame.png.
func (Run) Headless() error {
	fmt.Println("Run engine headless...")
	if _, err := executeCmd("go", withArgs("run", ".", "-headless", "-frames", "120", "-scene", "scenes/demo.yaml", "-snapshot", "out/frame.png"), withStream()); err != nil {
		return err
	}
	return nil
}
