package engine

import (
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
	"github.com/spaghettifunk/lumen/engine/systems"
)

// Game is the application driven by the engine. Every callback is optional.
type Game struct {
	ApplicationConfig *ApplicationConfig
	// Set by engine.New.
	SystemManager *systems.SystemManager
	State         interface{}
	FnInitialize  Initialize
	FnUpdate      Update
	FnRender      Render
	FnOnResize    OnResize
	FnShutdown    Shutdown
}

type Initialize func() error

// Update runs once per fixed update step, before the camera and the scene move.
type Update func(deltaTime float64) error

// Render sees the packet of a frame before the backend draws it.
type Render func(packet *metadata.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
