package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

var (
	ErrGeometryLimit     = errors.New("geometry limit reached")
	ErrDuplicateGeometry = errors.New("geometry already registered")
)

/** @brief The geometry system configuration. */
type GeometrySystemConfig struct {
	/**
	 * @brief Max number of geometries that can be registered, the default
	 * geometries included.
	 */
	MaxGeometryCount uint32
}

type geometryReference struct {
	referenceCount uint64
	geometry       *metadata.Geometry
	autoRelease    bool
}

/**
 * @brief Shares geometries between objects by name. The built-in quad and
 * cube are registered on creation and are never dropped.
 */
type GeometrySystem struct {
	mu     sync.Mutex
	Config *GeometrySystemConfig

	DefaultGeometry   *metadata.Geometry
	Default2DGeometry *metadata.Geometry

	registered map[string]*geometryReference
}

/**
 * @brief Initializes the geometry system and creates the default geometries.
 *
 * @param config The configuration for this system.
 * @return The geometry system, or an error if the configuration is invalid.
 */
func NewGeometrySystem(config *GeometrySystemConfig) (*GeometrySystem, error) {
	if config == nil || config.MaxGeometryCount < 2 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be >= 2 to hold the default geometries")
		core.LogWarn("%s", err)
		return nil, err
	}
	gs := &GeometrySystem{
		Config:     config,
		registered: make(map[string]*geometryReference),
	}
	if err := gs.createDefaultGeometries(); err != nil {
		err = fmt.Errorf("failed to create default geometries. Application cannot continue: %w", err)
		core.LogError("%s", err)
		return nil, err
	}
	return gs, nil
}

/**
 * @brief Drops every geometry except the defaults.
 */
func (gs *GeometrySystem) Shutdown() error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	for name := range gs.registered {
		if name != metadata.QuadGeometryName && name != metadata.CubeGeometryName {
			delete(gs.registered, name)
		}
	}
	return nil
}

/**
 * @brief Acquires a registered geometry by name.
 *
 * @param name The geometry name to acquire by.
 * @return The geometry, or ErrUnknownGeometry if nothing is registered under name.
 */
func (gs *GeometrySystem) Acquire(name string) (*metadata.Geometry, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	ref, ok := gs.registered[name]
	if !ok {
		err := fmt.Errorf("func GeometrySystem.Acquire: %w: %q", metadata.ErrUnknownGeometry, name)
		core.LogError("%s", err)
		return nil, err
	}
	ref.referenceCount++
	return ref.geometry, nil
}

/**
 * @brief Registers and acquires a new geometry using the given config.
 *
 * @param config The geometry configuration.
 * @param autoRelease Indicates if the acquired geometry should be unloaded when its reference count reaches 0.
 * @return The geometry, or an error if the config is invalid, the name is
 * taken or the system is full.
 */
func (gs *GeometrySystem) AcquireFromConfig(config *metadata.GeometryConfig, autoRelease bool) (*metadata.Geometry, error) {
	geometry, err := metadata.NewGeometry(config.Name, config.Vertices, config.Indices)
	if err != nil {
		core.LogError("failed to create geometry: %s", err.Error())
		return nil, err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()
	if _, ok := gs.registered[config.Name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateGeometry, config.Name)
	}
	if uint32(len(gs.registered)) >= gs.Config.MaxGeometryCount {
		err := fmt.Errorf("%w (%d). Adjust configuration to allow more space", ErrGeometryLimit, gs.Config.MaxGeometryCount)
		core.LogError("%s", err)
		return nil, err
	}
	gs.registered[config.Name] = &geometryReference{
		referenceCount: 1,
		geometry:       geometry,
		autoRelease:    autoRelease,
	}
	return geometry, nil
}

/**
 * @brief Releases a reference to the geometry registered under name.
 */
func (gs *GeometrySystem) Release(name string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	ref, ok := gs.registered[name]
	if !ok {
		core.LogWarn("GeometrySystem.Release cannot release unknown geometry '%s'. Nothing was done.", name)
		return
	}
	if ref.referenceCount > 0 {
		ref.referenceCount--
	}
	if ref.referenceCount == 0 && ref.autoRelease {
		delete(gs.registered, name)
	}
}

// ReferenceCount returns how many times name is acquired, and whether it is registered at all.
func (gs *GeometrySystem) ReferenceCount(name string) (uint64, bool) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	ref, ok := gs.registered[name]
	if !ok {
		return 0, false
	}
	return ref.referenceCount, true
}

func (gs *GeometrySystem) GetDefault() *metadata.Geometry {
	return gs.DefaultGeometry
}

func (gs *GeometrySystem) GetDefault2D() *metadata.Geometry {
	return gs.Default2DGeometry
}

/**
 * @brief Generates configuration for a plane in the XY plane, centered on
 * the origin and split in segments. Every segment has its own 4 vertices.
 *
 * @param width The overall width of the plane. Zero defaults to one.
 * @param height The overall height of the plane. Zero defaults to one.
 * @param xSegmentCount The number of segments along the x-axis. Zero defaults to one.
 * @param ySegmentCount The number of segments along the y-axis. Zero defaults to one.
 * @param name The name of the generated geometry.
 * @return A geometry configuration which can then be fed into AcquireFromConfig.
 */
func GeneratePlaneConfig(width, height float32, xSegmentCount, ySegmentCount uint32, name string) *metadata.GeometryConfig {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if xSegmentCount < 1 {
		core.LogWarn("xSegmentCount must be a positive number. Defaulting to one.")
		xSegmentCount = 1
	}
	if ySegmentCount < 1 {
		core.LogWarn("ySegmentCount must be a positive number. Defaulting to one.")
		ySegmentCount = 1
	}

	config := &metadata.GeometryConfig{
		Name:     name,
		Vertices: make([]math.Vec3, xSegmentCount*ySegmentCount*4), // 4 verts per segment
		Indices:  make([]uint32, xSegmentCount*ySegmentCount*6),    // 6 indices per segment
	}

	segWidth := width / float32(xSegmentCount)
	segHeight := height / float32(ySegmentCount)
	halfWidth := width * 0.5
	halfHeight := height * 0.5
	for y := uint32(0); y < ySegmentCount; y++ {
		for x := uint32(0); x < xSegmentCount; x++ {
			minX := (float32(x) * segWidth) - halfWidth
			minY := (float32(y) * segHeight) - halfHeight
			maxX := minX + segWidth
			maxY := minY + segHeight

			vOffset := ((y * xSegmentCount) + x) * 4
			config.Vertices[vOffset+0] = math.NewVec3(minX, minY, 0)
			config.Vertices[vOffset+1] = math.NewVec3(maxX, maxY, 0)
			config.Vertices[vOffset+2] = math.NewVec3(minX, maxY, 0)
			config.Vertices[vOffset+3] = math.NewVec3(maxX, minY, 0)

			iOffset := ((y * xSegmentCount) + x) * 6
			config.Indices[iOffset+0] = vOffset + 0
			config.Indices[iOffset+1] = vOffset + 1
			config.Indices[iOffset+2] = vOffset + 2
			config.Indices[iOffset+3] = vOffset + 0
			config.Indices[iOffset+4] = vOffset + 3
			config.Indices[iOffset+5] = vOffset + 1
		}
	}
	return config
}

/**
 * @brief Generates configuration for a box centered on the origin.
 *
 * @param width The size along the x-axis. Zero defaults to one.
 * @param height The size along the y-axis. Zero defaults to one.
 * @param depth The size along the z-axis. Zero defaults to one.
 * @param name The name of the generated geometry.
 * @return A geometry configuration which can then be fed into AcquireFromConfig.
 */
func GenerateCubeConfig(width, height, depth float32, name string) *metadata.GeometryConfig {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1
	}

	hw, hh, hd := width*0.5, height*0.5, depth*0.5
	return &metadata.GeometryConfig{
		Name: name,
		Vertices: []math.Vec3{
			math.NewVec3(-hw, -hh, -hd),
			math.NewVec3(hw, -hh, -hd),
			math.NewVec3(hw, hh, -hd),
			math.NewVec3(-hw, hh, -hd),
			math.NewVec3(-hw, -hh, hd),
			math.NewVec3(hw, -hh, hd),
			math.NewVec3(hw, hh, hd),
			math.NewVec3(-hw, hh, hd),
		},
		Indices: []uint32{
			0, 2, 1, 0, 3, 2, // back
			4, 5, 6, 4, 6, 7, // front
			0, 4, 7, 0, 7, 3, // left
			1, 2, 6, 1, 6, 5, // right
			0, 1, 5, 0, 5, 4, // bottom
			3, 7, 6, 3, 6, 2, // top
		},
	}
}

func (gs *GeometrySystem) createDefaultGeometries() error {
	quad, err := metadata.GeometryByName(metadata.QuadGeometryName)
	if err != nil {
		return err
	}
	cube, err := metadata.GeometryByName(metadata.CubeGeometryName)
	if err != nil {
		return err
	}
	gs.Default2DGeometry = quad
	gs.DefaultGeometry = cube
	gs.registered[quad.Name] = &geometryReference{geometry: quad}
	gs.registered[cube.Name] = &geometryReference{geometry: cube}
	return nil
}
