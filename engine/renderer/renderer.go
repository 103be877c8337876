package renderer

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

var ErrNoBackend = errors.New("renderer has no backend")

type Renderer struct {
	backend RendererBackend

	// The number of frames drawn so far.
	FrameNumber uint64
	// Indicates if the window is currently being resized.
	Resizing bool
	// The current number of frames since the last resize operation.
	// Only set if Resizing = true. Otherwise 0.
	FramesSinceResize uint8
}

// New wraps backend. Initialize must be called before drawing.
func New(backend RendererBackend) (*Renderer, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}
	return &Renderer{backend: backend}, nil
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	if err := r.backend.Initialize(appName, appWidth, appHeight); err != nil {
		err = fmt.Errorf("renderer backend failed to initialize: %w", err)
		core.LogError("%s", err)
		return err
	}
	r.FrameNumber = 0
	r.Resizing = false
	r.FramesSinceResize = 0
	return nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint16) error {
	r.Resizing = true
	r.FramesSinceResize = 0
	return r.backend.Resized(width, height)
}

/**
 * @brief Draws the next frame using the data provided in the render packet.
 *
 * @param packet The packet of the frame, built from the active camera.
 * @return An error if the backend failed to draw; the application should shut down.
 */
func (r *Renderer) DrawFrame(packet *metadata.RenderPacket) error {
	if packet == nil {
		return fmt.Errorf("func DrawFrame: nil render packet")
	}
	// Resizes settle over a few frames before they are considered done.
	if r.Resizing {
		r.FramesSinceResize++
		if r.FramesSinceResize >= 30 {
			r.Resizing = false
			r.FramesSinceResize = 0
		}
	}

	if err := r.backend.BeginFrame(packet.DeltaTime); err != nil {
		core.LogError("%s", err)
		return err
	}
	if err := r.backend.DrawFrame(packet); err != nil {
		core.LogError("backend func DrawFrame failed: %s", err.Error())
		return err
	}
	if err := r.backend.EndFrame(packet.DeltaTime); err != nil {
		core.LogError("backend func EndFrame failed. Application shutting down...")
		return err
	}
	r.FrameNumber++
	return nil
}
