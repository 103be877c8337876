package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

type RendererSystem struct {
	renderer *renderer.Renderer

	// application
	AppName   string
	AppWidth  uint32
	AppHeight uint32

	mu sync.RWMutex
	// The projection every frame is built with. Its viewport follows the window.
	projection math.Projection
	registered bool
}

func NewRendererSystem(appName string, appWidth, appHeight uint32, backend renderer.RendererBackend, projection math.Projection) (*RendererSystem, error) {
	r, err := renderer.New(backend)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	projection = projection.Resized(float32(appWidth), float32(appHeight))
	if err := projection.Validate(); err != nil {
		core.LogError("func NewRendererSystem: %s", err.Error())
		return nil, err
	}
	return &RendererSystem{
		renderer:   r,
		AppName:    appName,
		AppWidth:   appWidth,
		AppHeight:  appHeight,
		projection: projection,
	}, nil
}

/**
 * @brief Initializes the backend and starts following window resizes.
 */
func (r *RendererSystem) Initialize() error {
	if err := r.renderer.Initialize(r.AppName, r.AppWidth, r.AppHeight); err != nil {
		return err
	}
	r.registered = core.EventRegister(core.EVENT_CODE_RESIZED, r, r.onResized)
	if !r.registered {
		core.LogWarn("Renderer could not listen to resize events; the viewport stays %dx%d.", r.AppWidth, r.AppHeight)
	}
	return nil
}

func (r *RendererSystem) Shutdown() error {
	if r.registered {
		core.EventUnregister(core.EVENT_CODE_RESIZED, r)
		r.registered = false
	}
	return r.renderer.Shutdown()
}

// Projection returns the projection of the next frame.
func (r *RendererSystem) Projection() math.Projection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.projection
}

func (r *RendererSystem) FrameNumber() uint64 {
	return r.renderer.FrameNumber
}

func (r *RendererSystem) Resizing() bool {
	return r.renderer.Resizing
}

func (r *RendererSystem) OnResize(width, height uint16) error {
	if width == 0 || height == 0 {
		core.LogDebug("Window minimized, keeping a %.0fx%.0f viewport.", r.Projection().Width, r.Projection().Height)
		return nil
	}
	r.mu.Lock()
	r.projection = r.projection.Resized(float32(width), float32(height))
	r.mu.Unlock()
	r.AppWidth, r.AppHeight = uint32(width), uint32(height)
	return r.renderer.OnResize(width, height)
}

func (r *RendererSystem) onResized(context core.EventContext, listener interface{}) bool {
	event, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogWarn("resize event without a size: %T", context.Data)
		return false
	}
	if err := r.OnResize(event.Width, event.Height); err != nil {
		core.LogError("renderer resize failed: %s", err.Error())
	}
	// Other listeners may care about the new size too.
	return false
}

func (r *RendererSystem) DrawFrame(packet *metadata.RenderPacket) error {
	if packet == nil {
		return fmt.Errorf("func RendererSystem.DrawFrame: nil render packet")
	}
	if err := r.renderer.DrawFrame(packet); err != nil {
		return fmt.Errorf("frame %d: %w", packet.FrameNumber, err)
	}
	return nil
}
