package renderer

import "github.com/spaghettifunk/lumen/engine/renderer/metadata"

/**
 * @brief A generic "interface" for the renderer backend. The renderer backend
 * is what is responsible for making calls to the graphics API such as
 * OpenGL. Each of these should implement this interface. The frontend only
 * interacts via this structure and has no knowledge of the way things
 * actually work on the backend.
 */
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint16) error
	BeginFrame(deltaTime float64) error
	// DrawFrame draws every object of the packet with its MVP matrix.
	DrawFrame(packet *metadata.RenderPacket) error
	EndFrame(deltaTime float64) error
}
