package systems

import (
	"testing"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
)

func newController(t *testing.T, config CameraControllerConfig) (*CameraController, *CameraSystem) {
	t.Helper()
	if err := core.InputInitialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { core.InputShutdown() })

	cs := newCameraSystem(t, 1)
	cc, err := NewCameraController(config, cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cc, cs
}

func hold(t *testing.T, keys ...core.KeyCode) {
	t.Helper()
	for _, key := range keys {
		if err := core.InputProcessKey(key, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestNewCameraControllerValidation(t *testing.T) {
	cs := newCameraSystem(t, 1)
	testCases := map[string]CameraControllerConfig{
		"negative speed": {MoveSpeed: -1, RotateSpeed: 90, MaxPitch: 45},
		"zero pitch":     {MoveSpeed: 1, RotateSpeed: 90, MaxPitch: 0},
		"pitch at pole":  {MoveSpeed: 1, RotateSpeed: 90, MaxPitch: 90},
	}
	for name, config := range testCases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewCameraController(config, cs); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestControllerMoves(t *testing.T) {
	testCases := map[string]struct {
		key      core.KeyCode
		expected math.Vec3
	}{
		"forward":  {core.KEY_W, math.NewVec3(0, 0, 1)},
		"backward": {core.KEY_S, math.NewVec3(0, 0, -1)},
		"up":       {core.KEY_SPACE, math.NewVec3(0, 1, 0)},
		"down":     {core.KEY_LSHIFT, math.NewVec3(0, -1, 0)},
		"left":     {core.KEY_A, math.NewVec3(1, 0, 0)},
		"right":    {core.KEY_D, math.NewVec3(-1, 0, 0)},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			cc, cs := newController(t, CameraControllerConfig{MoveSpeed: 2, RotateSpeed: 90, MaxPitch: 80})
			hold(t, tc.key)
			if err := cc.Update(0.5); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p := cs.Active().GetPosition(); !p.Compare(tc.expected, epsilon) {
				t.Errorf("expected %+v, got %+v", tc.expected, p)
			}
		})
	}
}

func TestControllerYaw(t *testing.T) {
	cc, cs := newController(t, CameraControllerConfig{MoveSpeed: 1, RotateSpeed: 90, MaxPitch: 80})
	hold(t, core.KEY_RIGHT)
	if err := cc.Update(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f := cs.Active().GetForward(); !f.Compare(math.NewVec3(1, 0, 0), epsilon) {
		t.Errorf("expected forward (1, 0, 0), got %+v", f)
	}
}

func TestControllerPitchIsClamped(t *testing.T) {
	cc, cs := newController(t, CameraControllerConfig{MoveSpeed: 1, RotateSpeed: 90, MaxPitch: 45})
	hold(t, core.KEY_UP)

	for i := 0; i < 3; i++ {
		if err := cc.Update(1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f := cs.Active().GetForward()
		if elevation := math.Elevation(f); elevation > 45+1e-3 || elevation < 45-1e-3 {
			t.Fatalf("update %d: expected the camera to stop at 45 degrees, got %f", i, elevation)
		}
		if !f.Compare(math.NewVec3(0, math.K_SQRT_ONE_OVER_TWO, math.K_SQRT_ONE_OVER_TWO), 1e-3) {
			t.Errorf("update %d: unexpected forward %+v", i, f)
		}
	}

	// Releasing up and holding down looks below the horizon.
	if err := core.InputProcessKey(core.KEY_UP, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hold(t, core.KEY_DOWN)
	if err := cc.Update(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elevation := math.Elevation(cs.Active().GetForward()); elevation > -45+1e-3 || elevation < -45-1e-3 {
		t.Errorf("expected -45 degrees, got %f", elevation)
	}
}

func TestControllerIdle(t *testing.T) {
	cc, cs := newController(t, CameraControllerConfig{MoveSpeed: 1, RotateSpeed: 90, MaxPitch: 45})
	if err := cc.Update(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	camera := cs.Active()
	if camera.GetPosition() != math.NewVec3Zero() || camera.GetForward() != math.NewVec3Forward() {
		t.Error("expected the camera to stay put without input")
	}
}
