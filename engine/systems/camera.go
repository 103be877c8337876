package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/components"
)

var (
	ErrCameraNotFound   = errors.New("camera not found")
	ErrCameraLimit      = errors.New("camera limit reached")
	ErrInvalidMaxCamera = errors.New("config.MaxCameraCount must be > 0")
)

type CameraSystem struct {
	mu     sync.RWMutex
	Config *CameraSystemConfig
	Lookup map[string]*components.CameraLookup

	// A default, non-registered camera that always exists as a fallback.
	DefaultCamera *components.Camera

	// The camera frames are built from. Never nil.
	active     *components.Camera
	activeName string
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/**
	 * @brief NOTE: The maximum number of cameras that can be managed by
	 * the system, the default camera excluded.
	 */
	MaxCameraCount uint16
}

/**
 * @brief Initializes the camera system. The default camera starts out as the
 * active one.
 *
 * @param config The configuration for this system.
 * @return The camera system, or an error if the configuration is invalid.
 */
func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config == nil || config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem: %w", ErrInvalidMaxCamera)
		core.LogError("%s", err)
		return nil, err
	}
	cs := &CameraSystem{
		Config:        config,
		Lookup:        make(map[string]*components.CameraLookup, config.MaxCameraCount),
		DefaultCamera: components.NewCamera(),
	}
	cs.active = cs.DefaultCamera
	cs.activeName = components.DEFAULT_CAMERA_NAME
	return cs, nil
}

/**
 * @brief Shuts down the camera system. Every registered camera is dropped and
 * the default camera becomes active again.
 */
func (cs *CameraSystem) Shutdown() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.Lookup = make(map[string]*components.CameraLookup)
	cs.active = cs.DefaultCamera
	cs.activeName = components.DEFAULT_CAMERA_NAME
	return nil
}

/**
 * @brief Acquires a pointer to a camera by name.
 * If one is not found, a new one is created and retuned.
 * Internal reference counter is incremented.
 *
 * @param name The name of the camera to acquire.
 * @return A pointer to a camera, or ErrCameraLimit when no more cameras fit.
 */
func (cs *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera, nil
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()

	lookup, ok := cs.Lookup[name]
	if !ok {
		if len(cs.Lookup) >= int(cs.Config.MaxCameraCount) {
			err := fmt.Errorf("func CameraSystem.Acquire %q: %w (%d). Adjust camera system config to allow more", name, ErrCameraLimit, cs.Config.MaxCameraCount)
			core.LogError("%s", err)
			return nil, err
		}
		core.LogDebug("Creating new camera named '%s'...", name)
		lookup = &components.CameraLookup{
			Name:   name,
			Camera: components.NewCamera(),
		}
		cs.Lookup[name] = lookup
	}
	lookup.ReferenceCount++
	return lookup.Camera, nil
}

/**
 * @brief Releases a camera with the given name. Internal reference
 * counter is decremented. If this reaches 0, the camera is dropped. If it
 * was the active camera, the default camera takes its place.
 *
 * @param name The name of the camera to release.
 */
func (cs *CameraSystem) Release(name string) {
	if name == components.DEFAULT_CAMERA_NAME {
		core.LogDebug("Cannot release default camera. Nothing was done.")
		return
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()

	lookup, ok := cs.Lookup[name]
	if !ok {
		core.LogWarn("CameraSystem.Release failed lookup for '%s'. Nothing was done.", name)
		return
	}
	lookup.ReferenceCount--
	if lookup.ReferenceCount > 0 {
		return
	}
	lookup.Camera.Reset()
	delete(cs.Lookup, name)
	if cs.activeName == name {
		cs.active = cs.DefaultCamera
		cs.activeName = components.DEFAULT_CAMERA_NAME
	}
}

/**
 * @brief Gets a pointer to the default camera.
 *
 * @return A pointer to the default camera.
 */
func (cs *CameraSystem) GetDefault() *components.Camera {
	return cs.DefaultCamera
}

// SetActive makes the named camera the one frames are built from. The camera
// must have been acquired first.
func (cs *CameraSystem) SetActive(name string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if name == components.DEFAULT_CAMERA_NAME {
		cs.active = cs.DefaultCamera
		cs.activeName = name
		return nil
	}
	lookup, ok := cs.Lookup[name]
	if !ok {
		err := fmt.Errorf("func CameraSystem.SetActive %q: %w", name, ErrCameraNotFound)
		core.LogError("%s", err)
		return err
	}
	cs.active = lookup.Camera
	cs.activeName = name
	return nil
}

// Active returns the active camera.
func (cs *CameraSystem) Active() *components.Camera {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.active
}

// ActiveName returns the name the active camera was acquired with.
func (cs *CameraSystem) ActiveName() string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.activeName
}

// FrameContext pairs the active camera with projection for building a frame.
func (cs *CameraSystem) FrameContext(projection math.Projection) (math.FrameContext, error) {
	camera := cs.Active()
	if camera == nil {
		return math.FrameContext{}, math.ErrMissingCamera
	}
	if err := projection.Validate(); err != nil {
		core.LogError("func CameraSystem.FrameContext: %s", err.Error())
		return math.FrameContext{}, err
	}
	return math.NewFrameContext(projection, camera), nil
}
