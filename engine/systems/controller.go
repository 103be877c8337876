package systems

import (
	"fmt"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/components"
)

/** @brief The camera controller configuration. */
type CameraControllerConfig struct {
	/** @brief Units per second. */
	MoveSpeed float32
	/** @brief Degrees per second. */
	RotateSpeed float32
	/** @brief The furthest the camera may look above or below the horizon, in degrees. */
	MaxPitch float32
}

/**
 * @brief Moves the active camera from the keyboard state, once per update:
 * W/S forward and back, A/D sideways, space/left shift up and down, arrows
 * to look around.
 */
type CameraController struct {
	config  CameraControllerConfig
	cameras *CameraSystem
}

func NewCameraController(config CameraControllerConfig, cameras *CameraSystem) (*CameraController, error) {
	if config.MoveSpeed < 0 || config.RotateSpeed < 0 {
		err := fmt.Errorf("func NewCameraController - speeds must be >= 0")
		core.LogError("%s", err)
		return nil, err
	}
	if config.MaxPitch <= 0 || config.MaxPitch >= 90 {
		err := fmt.Errorf("func NewCameraController - MaxPitch must be in (0, 90), got %.2f", config.MaxPitch)
		core.LogError("%s", err)
		return nil, err
	}
	return &CameraController{
		config:  config,
		cameras: cameras,
	}, nil
}

func (cc *CameraController) Update(deltaTime float64) error {
	camera := cc.cameras.Active()
	if camera == nil {
		return nil
	}
	dt := float32(deltaTime)

	moveAmount := cc.config.MoveSpeed * dt
	if core.InputIsKeyDown(core.KEY_W) {
		camera.MoveForward(moveAmount)
	}
	if core.InputIsKeyDown(core.KEY_S) {
		camera.MoveBackward(moveAmount)
	}
	if core.InputIsKeyDown(core.KEY_A) {
		if err := camera.MoveLeft(moveAmount); err != nil {
			return err
		}
	}
	if core.InputIsKeyDown(core.KEY_D) {
		if err := camera.MoveRight(moveAmount); err != nil {
			return err
		}
	}
	if core.InputIsKeyDown(core.KEY_SPACE) {
		camera.MoveUp(moveAmount)
	}
	if core.InputIsKeyDown(core.KEY_LSHIFT) {
		camera.MoveDown(moveAmount)
	}

	rotateAmount := cc.config.RotateSpeed * dt
	var yaw, pitch float32
	if core.InputIsKeyDown(core.KEY_LEFT) {
		yaw -= rotateAmount
	}
	if core.InputIsKeyDown(core.KEY_RIGHT) {
		yaw += rotateAmount
	}
	if core.InputIsKeyDown(core.KEY_UP) {
		pitch += rotateAmount
	}
	if core.InputIsKeyDown(core.KEY_DOWN) {
		pitch -= rotateAmount
	}

	if yaw != 0 {
		if err := camera.RotateY(yaw); err != nil {
			return fmt.Errorf("camera yaw: %w", err)
		}
	}
	if pitch != 0 {
		return cc.pitch(camera, pitch)
	}
	return nil
}

// pitch looks up by delta degrees, never past MaxPitch. RotateX turns the
// camera down for positive angles.
func (cc *CameraController) pitch(camera *components.Camera, delta float32) error {
	current := math.Elevation(camera.GetForward())
	target := math.Clamp(current+delta, -cc.config.MaxPitch, cc.config.MaxPitch)
	if applied := target - current; applied != 0 {
		if err := camera.RotateX(-applied); err != nil {
			return fmt.Errorf("camera pitch: %w", err)
		}
	}
	return nil
}
