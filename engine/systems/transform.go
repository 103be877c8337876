package systems

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/lumen/engine/assets/loaders"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

var (
	ErrDuplicateObject = errors.New("object already registered")
	ErrObjectNotFound  = errors.New("object not found")
)

/**
 * @brief A renderable object: a geometry placed in the world by a transform.
 */
type RenderObject struct {
	/** @brief The unique name of the object. */
	Name string
	/** @brief Where the object is in the world. */
	Transform *math.Transform
	/** @brief What the object looks like. */
	Geometry *metadata.Geometry
	/** @brief Degrees per second added to the rotation on every update. */
	Spin math.Vec3

	// Name of the geometry acquired from the geometry system, empty when the
	// caller owns the geometry.
	geometryRef string
}

/** @brief The transform system configuration. */
type TransformSystemConfig struct {
	/**
	 * @brief The object count from which frames are built on the job
	 * system instead of the calling goroutine. 0 never goes parallel.
	 */
	ParallelThreshold int
}

type TransformSystem struct {
	mu         sync.RWMutex
	config     TransformSystemConfig
	jobSystem  *JobSystem
	geometries *GeometrySystem
	objects    []*RenderObject
	lookup     map[string]int
}

/**
 * @brief Creates the transform system. jobSystem and geometries may be nil:
 * frames are then always built on the calling goroutine and every scene
 * object gets its own copy of its geometry.
 */
func NewTransformSystem(config TransformSystemConfig, jobSystem *JobSystem, geometries *GeometrySystem) (*TransformSystem, error) {
	if config.ParallelThreshold < 0 {
		err := fmt.Errorf("func NewTransformSystem - config.ParallelThreshold must be >= 0")
		core.LogError("%s", err)
		return nil, err
	}
	return &TransformSystem{
		config:     config,
		jobSystem:  jobSystem,
		geometries: geometries,
		lookup:     make(map[string]int),
	}, nil
}

func (ts *TransformSystem) Shutdown() error {
	ts.Clear()
	return nil
}

/**
 * @brief Registers a new object.
 *
 * @return The registered object, or ErrDuplicateObject if the name is taken.
 */
func (ts *TransformSystem) Add(name string, transform *math.Transform, geometry *metadata.Geometry, spin math.Vec3) (*RenderObject, error) {
	if transform == nil || geometry == nil {
		return nil, fmt.Errorf("object %q needs a transform and a geometry", name)
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, ok := ts.lookup[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateObject, name)
	}
	obj := &RenderObject{
		Name:      name,
		Transform: transform,
		Geometry:  geometry,
		Spin:      spin,
	}
	ts.lookup[name] = len(ts.objects)
	ts.objects = append(ts.objects, obj)
	return obj, nil
}

// Get returns the object registered under name.
func (ts *TransformSystem) Get(name string) (*RenderObject, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	idx, ok := ts.lookup[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrObjectNotFound, name)
	}
	return ts.objects[idx], nil
}

// Remove drops the object registered under name, keeping the order of the others.
func (ts *TransformSystem) Remove(name string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	idx, ok := ts.lookup[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrObjectNotFound, name)
	}
	removed := ts.objects[idx]
	ts.objects = append(ts.objects[:idx], ts.objects[idx+1:]...)
	delete(ts.lookup, name)
	for i := idx; i < len(ts.objects); i++ {
		ts.lookup[ts.objects[i].Name] = i
	}
	ts.releaseGeometries([]*RenderObject{removed})
	return nil
}

func (ts *TransformSystem) Len() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return len(ts.objects)
}

func (ts *TransformSystem) Clear() {
	ts.mu.Lock()
	old := ts.objects
	ts.objects = nil
	ts.lookup = make(map[string]int)
	ts.mu.Unlock()
	ts.releaseGeometries(old)
}

/**
 * @brief Replaces every object with the objects of scene. Nothing changes
 * if the scene is invalid.
 */
func (ts *TransformSystem) LoadScene(scene *loaders.Scene) error {
	if err := scene.Validate(); err != nil {
		core.LogError("%s", err)
		return err
	}
	objects := make([]*RenderObject, 0, len(scene.Objects))
	lookup := make(map[string]int, len(scene.Objects))
	for i := range scene.Objects {
		o := &scene.Objects[i]
		geometry, ref, err := ts.acquireGeometry(o.Geometry)
		if err != nil {
			core.LogError("%s", err)
			ts.releaseGeometries(objects)
			return err
		}
		lookup[o.Name] = len(objects)
		objects = append(objects, &RenderObject{
			Name:        o.Name,
			Transform:   math.NewTransformFrom(o.TranslationVec(), o.RotationVec(), o.ScaleVec()),
			Geometry:    geometry,
			Spin:        o.SpinVec(),
			geometryRef: ref,
		})
	}

	ts.mu.Lock()
	old := ts.objects
	ts.objects = objects
	ts.lookup = lookup
	ts.mu.Unlock()
	ts.releaseGeometries(old)
	core.LogInfo("Scene '%s' loaded with %d objects.", scene.Name, len(objects))
	return nil
}

func (ts *TransformSystem) acquireGeometry(name string) (*metadata.Geometry, string, error) {
	if ts.geometries == nil {
		geometry, err := metadata.GeometryByName(name)
		return geometry, "", err
	}
	geometry, err := ts.geometries.Acquire(name)
	return geometry, name, err
}

func (ts *TransformSystem) releaseGeometries(objects []*RenderObject) {
	if ts.geometries == nil {
		return
	}
	for _, obj := range objects {
		if obj.geometryRef != "" {
			ts.geometries.Release(obj.geometryRef)
		}
	}
}

/**
 * @brief Advances every spinning object by deltaTime seconds.
 */
func (ts *TransformSystem) Update(deltaTime float64) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	dt := float32(deltaTime)
	for _, obj := range ts.objects {
		if obj.Spin == (math.Vec3{}) {
			continue
		}
		obj.Transform.Rotate(obj.Spin.MulScalar(dt))
	}
}

/**
 * @brief Builds the render packet of a frame: the model and MVP matrices of
 * every object, in registration order. The camera is frozen once at the
 * start, so the build never sees it move.
 *
 * @param ctx Cancels a parallel build.
 * @param frame The camera and projection of the frame.
 * @param frameNumber The number of the frame being built.
 * @param deltaTime The time in seconds since the last frame.
 * @return The packet, or the first error met while building it.
 */
func (ts *TransformSystem) BuildPacket(ctx context.Context, frame math.FrameContext, frameNumber uint64, deltaTime float64) (*metadata.RenderPacket, error) {
	snapshot, err := frame.Snapshot()
	if err != nil {
		return nil, err
	}
	if err := snapshot.Projection.Validate(); err != nil {
		return nil, err
	}
	view, err := snapshot.ViewMatrix()
	if err != nil {
		return nil, fmt.Errorf("building view matrix: %w", err)
	}

	ts.mu.RLock()
	objects := append([]*RenderObject(nil), ts.objects...)
	ts.mu.RUnlock()

	packet := &metadata.RenderPacket{
		FrameNumber: frameNumber,
		DeltaTime:   deltaTime,
		Width:       uint32(snapshot.Projection.Width),
		Height:      uint32(snapshot.Projection.Height),
		View:        view.Flatten(),
		Projection:  snapshot.Projection.Matrix().Flatten(),
		Objects:     make([]metadata.ObjectMatrices, len(objects)),
	}

	if ts.jobSystem == nil || ts.config.ParallelThreshold == 0 || len(objects) < ts.config.ParallelThreshold {
		if err := buildRange(snapshot, objects, packet.Objects); err != nil {
			return nil, err
		}
		return packet, nil
	}

	// Every job owns a disjoint range of packet.Objects.
	workers := ts.jobSystem.Workers()
	chunk := (len(objects) + workers - 1) / workers
	tasks := make([]metadata.JobTask, 0, workers)
	for start := 0; start < len(objects); start += chunk {
		end := min(start+chunk, len(objects))
		tasks = append(tasks, metadata.JobTask{
			Name: fmt.Sprintf("frame %d objects [%d, %d)", frameNumber, start, end),
			OnStart: func(context.Context) error {
				return buildRange(snapshot, objects[start:end], packet.Objects[start:end])
			},
		})
	}
	if err := ts.jobSystem.Dispatch(ctx, tasks); err != nil {
		return nil, err
	}
	return packet, nil
}

func buildRange(frame math.FrameContext, objects []*RenderObject, out []metadata.ObjectMatrices) error {
	for i, obj := range objects {
		mvp, err := obj.Transform.GetProjectedTransformation(frame)
		if err != nil {
			return fmt.Errorf("object %q: %w", obj.Name, err)
		}
		out[i] = metadata.ObjectMatrices{
			TransformID: obj.Transform.ID,
			Name:        obj.Name,
			Model:       obj.Transform.GetTransformation().Flatten(),
			MVP:         mvp.Flatten(),
			Geometry:    obj.Geometry,
		}
	}
	return nil
}
