package components

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/lumen/engine/math"
)

/**
 * @brief Represents a camera that can be used for
 * a variety of things, especially rendering. Ideally,
 * these are created and managed by the camera system.
 *
 * forward and up are unit length and orthogonal after construction and
 * after every rotation. Nothing outside this file writes them directly.
 */
type Camera struct {
	/** @brief Unique identifier of the camera. */
	ID uuid.UUID
	/** @brief The position of this camera in the world. */
	position math.Vec3
	/** @brief The direction the camera looks at. */
	forward math.Vec3
	/** @brief The camera's up direction, orthogonal to forward. */
	up math.Vec3
}

type CameraLookup struct {
	Name           string
	ReferenceCount uint16
	Camera         *Camera
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

// worldUp is the fixed axis RotateY turns around.
var worldUp = math.NewVec3Up()

// NewCamera returns a camera at the origin looking down +Z with +Y up.
func NewCamera() *Camera {
	camera := &Camera{ID: uuid.New()}
	camera.Reset()
	return camera
}

// NewCameraWith returns a camera at position looking along forward. up only
// needs to lie in the plane of forward and the desired up: it is
// re-orthogonalized against forward.
func NewCameraWith(position, forward, up math.Vec3) (*Camera, error) {
	camera := &Camera{ID: uuid.New(), position: position}
	if err := camera.SetOrientation(forward, up); err != nil {
		return nil, err
	}
	return camera, nil
}

func (c *Camera) Reset() {
	c.position = math.NewVec3Zero()
	c.forward = math.NewVec3Forward()
	c.up = math.NewVec3Up()
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.position = position
}

func (c *Camera) GetForward() math.Vec3 {
	return c.forward
}

func (c *Camera) GetUp() math.Vec3 {
	return c.up
}

/**
 * @brief Points the camera along forward. up is made orthogonal to forward
 * and both are normalized. Nothing changes on error.
 *
 * @return ErrDivisionByZero if forward is zero or parallel to up.
 */
func (c *Camera) SetOrientation(forward, up math.Vec3) error {
	f, err := forward.Normalize()
	if err != nil {
		return fmt.Errorf("camera forward: %w", err)
	}
	right, err := up.Cross(f).Normalize()
	if err != nil {
		return fmt.Errorf("camera up: %w", err)
	}
	c.forward = f
	c.up = f.Cross(right)
	return nil
}

// Move translates the camera by direction scaled by amount.
func (c *Camera) Move(direction math.Vec3, amount float32) {
	c.position.AddInPlace(direction.MulScalar(amount))
}

/**
 * @brief Pitches the camera by angle degrees about its horizontal axis.
 *
 * @return ErrDivisionByZero when forward is parallel to the world up axis,
 * in which case the camera is left untouched.
 */
func (c *Camera) RotateX(angle float32) error {
	horizontal, err := worldUp.Cross(c.forward).Normalize()
	if err != nil {
		return fmt.Errorf("camera horizontal axis: %w", err)
	}
	forward, err := c.forward.Rotate(angle, horizontal).Normalize()
	if err != nil {
		return err
	}
	up, err := forward.Cross(horizontal).Normalize()
	if err != nil {
		return err
	}
	c.forward = forward
	c.up = up
	return nil
}

/**
 * @brief Yaws the camera by angle degrees about the world up axis.
 *
 * @return ErrDivisionByZero when forward is parallel to the world up axis,
 * in which case the camera is left untouched.
 */
func (c *Camera) RotateY(angle float32) error {
	forward, err := c.forward.Rotate(angle, worldUp).Normalize()
	if err != nil {
		return err
	}
	horizontal, err := worldUp.Cross(forward).Normalize()
	if err != nil {
		return fmt.Errorf("camera horizontal axis: %w", err)
	}
	up, err := forward.Cross(horizontal).Normalize()
	if err != nil {
		return err
	}
	c.forward = forward
	c.up = up
	return nil
}

// Left returns normalize(up × forward).
func (c *Camera) Left() (math.Vec3, error) {
	return c.up.Cross(c.forward).Normalize()
}

// Right returns normalize(forward × up).
func (c *Camera) Right() (math.Vec3, error) {
	return c.forward.Cross(c.up).Normalize()
}

func (c *Camera) MoveForward(amount float32) {
	c.Move(c.forward, amount)
}

func (c *Camera) MoveBackward(amount float32) {
	c.Move(c.forward, -amount)
}

func (c *Camera) MoveLeft(amount float32) error {
	left, err := c.Left()
	if err != nil {
		return err
	}
	c.Move(left, amount)
	return nil
}

func (c *Camera) MoveRight(amount float32) error {
	right, err := c.Right()
	if err != nil {
		return err
	}
	c.Move(right, amount)
	return nil
}

func (c *Camera) MoveUp(amount float32) {
	c.Move(math.NewVec3Up(), amount)
}

func (c *Camera) MoveDown(amount float32) {
	c.Move(math.NewVec3Down(), amount)
}
