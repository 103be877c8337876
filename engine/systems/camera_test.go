package systems

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/components"
)

func newCameraSystem(t *testing.T, limit uint16) *CameraSystem {
	t.Helper()
	cs, err := NewCameraSystem(&CameraSystemConfig{MaxCameraCount: limit})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cs
}

func TestNewCameraSystem(t *testing.T) {
	if _, err := NewCameraSystem(&CameraSystemConfig{}); !errors.Is(err, ErrInvalidMaxCamera) {
		t.Errorf("expected ErrInvalidMaxCamera, got %v", err)
	}
	cs := newCameraSystem(t, 2)
	if cs.Active() != cs.GetDefault() {
		t.Error("expected the default camera to start out active")
	}
	if cs.ActiveName() != components.DEFAULT_CAMERA_NAME {
		t.Errorf("expected active name %q, got %q", components.DEFAULT_CAMERA_NAME, cs.ActiveName())
	}
}

func TestCameraAcquireRelease(t *testing.T) {
	cs := newCameraSystem(t, 1)

	first, err := cs.Acquire("orbit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cs.Acquire("orbit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the same camera for the same name")
	}
	if cs.Lookup["orbit"].ReferenceCount != 2 {
		t.Errorf("expected 2 references, got %d", cs.Lookup["orbit"].ReferenceCount)
	}
	if _, err := cs.Acquire("other"); !errors.Is(err, ErrCameraLimit) {
		t.Errorf("expected ErrCameraLimit, got %v", err)
	}
	if camera, _ := cs.Acquire(components.DEFAULT_CAMERA_NAME); camera != cs.GetDefault() {
		t.Error("expected the default camera")
	}

	first.Move(math.NewVec3(1, 0, 0), 3)
	cs.Release("orbit")
	if _, ok := cs.Lookup["orbit"]; !ok {
		t.Fatal("camera dropped while still referenced")
	}
	cs.Release("orbit")
	if _, ok := cs.Lookup["orbit"]; ok {
		t.Error("expected the camera to be dropped")
	}
	if first.GetPosition() != math.NewVec3Zero() {
		t.Errorf("expected a released camera to be reset, got %+v", first.GetPosition())
	}

	// Unknown names and the default camera are ignored.
	cs.Release("missing")
	cs.Release(components.DEFAULT_CAMERA_NAME)
}

func TestCameraSetActive(t *testing.T) {
	cs := newCameraSystem(t, 4)

	if err := cs.SetActive("missing"); !errors.Is(err, ErrCameraNotFound) {
		t.Errorf("expected ErrCameraNotFound, got %v", err)
	}
	if cs.Active() != cs.GetDefault() {
		t.Error("a failed SetActive must keep the active camera")
	}

	chase, err := cs.Acquire("chase")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cs.SetActive("chase"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs.Active() != chase || cs.ActiveName() != "chase" {
		t.Error("expected chase to be active")
	}

	cs.Release("chase")
	if cs.Active() != cs.GetDefault() {
		t.Error("expected the default camera after releasing the active one")
	}
}

func TestCameraFrameContext(t *testing.T) {
	cs := newCameraSystem(t, 1)
	cs.GetDefault().SetPosition(math.NewVec3(1, 2, 3))

	ctx, err := cs.FrameContext(math.NewProjectionDefault())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Camera.GetPosition() != math.NewVec3(1, 2, 3) {
		t.Errorf("expected the active camera in the context, got %+v", ctx.Camera.GetPosition())
	}

	invalid := math.NewProjectionDefault()
	invalid.Height = 0
	if _, err := cs.FrameContext(invalid); !errors.Is(err, math.ErrInvalidProjection) {
		t.Errorf("expected ErrInvalidProjection, got %v", err)
	}
}
