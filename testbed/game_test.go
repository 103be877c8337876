package testbed

import (
	"context"
	"testing"

	"github.com/spaghettifunk/lumen/engine"
	"github.com/spaghettifunk/lumen/engine/config"
	"github.com/spaghettifunk/lumen/engine/core"
)

func TestTestGameWithoutScene(t *testing.T) {
	cfg := config.Default()
	cfg.Application.Headless = true
	cfg.Application.Width = 32
	cfg.Application.Height = 32
	cfg.Application.MaxFrames = 2

	tg, err := NewTestGame(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, err := engine.New(tg.Game)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := tg.SystemManager.TransformSystem().Len(); n != 3 {
		t.Errorf("expected the quad, the cube and the floor, got %d objects", n)
	}

	// A full key press and release of C switches to the overview camera.
	if err := core.InputProcessKey(core.KEY_C, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := core.InputUpdate(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := core.InputProcessKey(core.KEY_C, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tg.Update(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name := tg.SystemManager.CameraSystem().ActiveName(); name != overviewCamera {
		t.Errorf("expected the %s camera, got %s", overviewCamera, name)
	}
	if err := core.InputUpdate(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := tg.State.(*gameState)
	if state.lastFrame != 2 {
		t.Errorf("expected to see frame 2, got %d", state.lastFrame)
	}
	if state.width != 32 || state.height != 32 {
		t.Errorf("expected a 32x32 window, got %dx%d", state.width, state.height)
	}

	if err := e.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name := tg.SystemManager.CameraSystem().ActiveName(); name == overviewCamera {
		t.Error("expected the overview camera to be released")
	}
	if _, ok := tg.SystemManager.GeometrySystem().ReferenceCount(floorGeometry); ok {
		t.Error("expected the floor geometry to be released")
	}
}
