package math

import (
	"fmt"

	"github.com/google/uuid"
)

// NewTransform returns a transform at the origin, unrotated, with unit scale.
func NewTransform() *Transform {
	return NewTransformFrom(NewVec3Zero(), NewVec3Zero(), NewVec3One())
}

// NewTransformFrom returns a transform with the given state. rotation is in degrees.
func NewTransformFrom(translation, rotation, scale Vec3) *Transform {
	return &Transform{
		ID:          uuid.New(),
		Translation: translation,
		Rotation:    rotation,
		Scale:       scale,
	}
}

func (t *Transform) SetTranslation(translation Vec3) *Transform {
	t.Translation = translation
	return t
}

func (t *Transform) SetTranslationXYZ(x, y, z float32) *Transform {
	t.Translation.Set(x, y, z)
	return t
}

func (t *Transform) SetRotation(rotation Vec3) *Transform {
	t.Rotation = rotation
	return t
}

func (t *Transform) SetScale(scale Vec3) *Transform {
	t.Scale = scale
	return t
}

// Translate moves the transform by delta.
func (t *Transform) Translate(delta Vec3) *Transform {
	t.Translation.AddInPlace(delta)
	return t
}

// Rotate adds delta degrees to each Euler angle, keeping them in [0, 360).
func (t *Transform) Rotate(delta Vec3) *Transform {
	t.Rotation = Vec3{
		WrapDegrees(t.Rotation.X + delta.X),
		WrapDegrees(t.Rotation.Y + delta.Y),
		WrapDegrees(t.Rotation.Z + delta.Z),
	}
	return t
}

// ScaleBy multiplies the scale component-wise.
func (t *Transform) ScaleBy(factor Vec3) *Transform {
	t.Scale.MulInPlace(factor)
	return t
}

/**
 * @brief Builds the model matrix: translation × (rotation × scale), so scale is
 * applied first, then rotation, then translation.
 *
 * @return The model matrix for the current state.
 */
func (t *Transform) GetTransformation() Mat4 {
	translation := NewMat4Translation(t.Translation)
	rotation := NewMat4RotationEuler(t.Rotation.X, t.Rotation.Y, t.Rotation.Z)
	scale := NewMat4Scale(t.Scale)
	return translation.Mul(rotation.Mul(scale))
}

/**
 * @brief Builds the full model-view-projection matrix of the transform:
 * projection × (viewRotation × (viewTranslation × model)).
 *
 * @param ctx The camera and projection of the frame being built.
 * @return The MVP matrix, ErrMissingCamera without a camera, or an error
 * for degenerate projection or camera axes.
 */
func (t *Transform) GetProjectedTransformation(ctx FrameContext) (Mat4, error) {
	if !hasCamera(ctx.Camera) {
		return Mat4{}, ErrMissingCamera
	}
	if err := ctx.Projection.Validate(); err != nil {
		return Mat4{}, err
	}

	model := t.GetTransformation()
	projection := ctx.Projection.Matrix()
	cameraRotation, err := CreateCameraMatrix(ctx.Camera.GetForward(), ctx.Camera.GetUp())
	if err != nil {
		return Mat4{}, fmt.Errorf("building camera matrix: %w", err)
	}
	cameraTranslation := NewMat4Translation(ctx.Camera.GetPosition().Negate())

	return projection.Mul(cameraRotation.Mul(cameraTranslation.Mul(model))), nil
}

/**
 * @brief Creates a perspective projection matrix.
 *
 * @param fieldOfView The vertical field of view in degrees.
 * @param width The viewport width.
 * @param height The viewport height.
 * @param zNear The near clipping plane.
 * @param zFar The far clipping plane.
 * @return A new perspective matrix. Parameters are not validated, see Projection.Validate.
 */
func CreateProjectionMatrix(fieldOfView, width, height, zNear, zFar float32) Mat4 {
	tanFOV := ktan(DegToRad(fieldOfView / 2))
	aspectRatio := width / height
	zRange := zNear - zFar

	return NewMat4FromRows([4][4]float32{
		{1 / (tanFOV * aspectRatio), 0, 0, 0},
		{0, 1 / tanFOV, 0, 0},
		{0, 0, (-zNear - zFar) / zRange, 2 * zFar * zNear / zRange},
		{0, 0, 1, 0},
	})
}

/**
 * @brief Creates the rotation part of the view matrix from the camera's forward
 * and up vectors. The rows are right, true up and forward.
 *
 * @return The view rotation, or ErrDivisionByZero if either vector is zero.
 */
func CreateCameraMatrix(forward, up Vec3) (Mat4, error) {
	f, err := forward.Normalize()
	if err != nil {
		return Mat4{}, err
	}
	r, err := up.Normalize()
	if err != nil {
		return Mat4{}, err
	}
	r = r.Cross(f)
	u := f.Cross(r)

	return NewMat4FromRows([4][4]float32{
		{r.X, r.Y, r.Z, 0},
		{u.X, u.Y, u.Z, 0},
		{f.X, f.Y, f.Z, 0},
		{0, 0, 0, 1},
	}), nil
}
