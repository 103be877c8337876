package math

import (
	"fmt"
	"reflect"
)

// Viewpoint is anything that can be looked through: the active camera, or a
// frozen copy of it.
type Viewpoint interface {
	GetPosition() Vec3
	GetForward() Vec3
	GetUp() Vec3
}

// hasCamera reports whether v points at a camera. A nil pointer stored in
// the interface counts as no camera.
func hasCamera(v Viewpoint) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

/**
 * @brief Perspective projection parameters shared by every object of a frame.
 */
type Projection struct {
	/** @brief Vertical field of view in degrees. */
	FieldOfView float32
	/** @brief Viewport width. Only the width/height ratio matters. */
	Width float32
	/** @brief Viewport height. */
	Height float32
	/** @brief Near clip plane. */
	ZNear float32
	/** @brief Far clip plane. */
	ZFar float32
}

// NewProjectionDefault returns 90 degrees over an 800x800 viewport with
// planes at 0.5 and -0.5.
func NewProjectionDefault() Projection {
	return Projection{
		FieldOfView: 90,
		Width:       800,
		Height:      800,
		ZNear:       0.5,
		ZFar:        -0.5,
	}
}

// Validate reports parameters that would divide by zero while building the matrix.
func (p Projection) Validate() error {
	if p.Height == 0 {
		return fmt.Errorf("%w: viewport height is 0", ErrInvalidProjection)
	}
	if ktan(DegToRad(p.FieldOfView/2)) == 0 {
		return fmt.Errorf("%w: field of view %.2f has a zero tangent", ErrInvalidProjection, p.FieldOfView)
	}
	if p.Width == 0 {
		return fmt.Errorf("%w: viewport width is 0", ErrInvalidProjection)
	}
	if p.ZNear == p.ZFar {
		return fmt.Errorf("%w: near and far planes are both %.2f", ErrInvalidProjection, p.ZNear)
	}
	return nil
}

// Matrix builds the projection matrix for p.
func (p Projection) Matrix() Mat4 {
	return CreateProjectionMatrix(p.FieldOfView, p.Width, p.Height, p.ZNear, p.ZFar)
}

// Resized returns a copy of p with a new viewport size.
func (p Projection) Resized(width, height float32) Projection {
	p.Width = width
	p.Height = height
	return p
}

// FrameContext carries everything a Transform needs from outside itself to
// build its model-view-projection matrix. It replaces process-wide camera and
// projection state: the caller decides which camera and which projection a
// frame uses.
type FrameContext struct {
	Projection Projection
	Camera     Viewpoint
}

// NewFrameContext returns a context for camera with the given projection.
func NewFrameContext(projection Projection, camera Viewpoint) FrameContext {
	if !hasCamera(camera) {
		camera = nil
	}
	return FrameContext{
		Projection: projection,
		Camera:     camera,
	}
}

// Snapshot freezes the current camera state so the context can be shared by
// goroutines while the camera keeps moving.
func (ctx FrameContext) Snapshot() (FrameContext, error) {
	if !hasCamera(ctx.Camera) {
		return ctx, ErrMissingCamera
	}
	return FrameContext{
		Projection: ctx.Projection,
		Camera: ViewSnapshot{
			Position: ctx.Camera.GetPosition(),
			Forward:  ctx.Camera.GetForward(),
			Up:       ctx.Camera.GetUp(),
		},
	}, nil
}

// ViewMatrix returns viewRotation × viewTranslation for the context's camera.
func (ctx FrameContext) ViewMatrix() (Mat4, error) {
	if !hasCamera(ctx.Camera) {
		return Mat4{}, ErrMissingCamera
	}
	rotation, err := CreateCameraMatrix(ctx.Camera.GetForward(), ctx.Camera.GetUp())
	if err != nil {
		return Mat4{}, err
	}
	return rotation.Mul(NewMat4Translation(ctx.Camera.GetPosition().Negate())), nil
}

// ViewSnapshot is an immutable Viewpoint.
type ViewSnapshot struct {
	Position Vec3
	Forward  Vec3
	Up       Vec3
}

func (s ViewSnapshot) GetPosition() Vec3 { return s.Position }
func (s ViewSnapshot) GetForward() Vec3  { return s.Forward }
func (s ViewSnapshot) GetUp() Vec3       { return s.Up }
