package testbed

import (
	"github.com/spaghettifunk/lumen/engine"
	"github.com/spaghettifunk/lumen/engine/config"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/components"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
	"github.com/spaghettifunk/lumen/engine/systems"
)

const (
	// Name of the second camera, looking at the scene from above.
	overviewCamera = "overview"
	floorGeometry  = "floor_grid"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	width  uint32
	height uint32

	lastFrame uint64
	reloads   int
	// Set when the floor geometry was acquired and must be released.
	floor bool
}

func NewTestGame(settings *config.Config) (*TestGame, error) {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				StartPosX: 100,
				StartPosY: 100,
				Settings:  settings,
			},
			State: &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("initializing testbed...")

	state := g.State.(*gameState)

	// Without a scene file, show the quad of the first demo and a spinning cube.
	ts := g.SystemManager.TransformSystem()
	gs := g.SystemManager.GeometrySystem()
	if ts.Len() == 0 {
		if _, err := ts.Add("quad", math.NewTransformFrom(math.NewVec3(0, 0, 2), math.NewVec3Zero(), math.NewVec3One()), gs.GetDefault2D(), math.NewVec3Zero()); err != nil {
			return err
		}
		if _, err := ts.Add("cube", math.NewTransformFrom(math.NewVec3(1.5, 0, 4), math.NewVec3Zero(), math.NewVec3One()), gs.GetDefault(), math.NewVec3(0, 45, 0)); err != nil {
			return err
		}
		floor, err := gs.AcquireFromConfig(systems.GeneratePlaneConfig(10, 10, 10, 10, floorGeometry), true)
		if err != nil {
			return err
		}
		// The plane is generated upright; lay it down under the objects.
		if _, err := ts.Add("floor", math.NewTransformFrom(math.NewVec3(0, -1, 5), math.NewVec3(90, 0, 0), math.NewVec3One()), floor, math.NewVec3Zero()); err != nil {
			return err
		}
		state.floor = true
	}

	overview, err := g.SystemManager.CameraSystem().Acquire(overviewCamera)
	if err != nil {
		return err
	}
	overview.SetPosition(math.NewVec3(0, 4, -2))
	if err := overview.SetOrientation(math.NewVec3(0, -1, 1), math.NewVec3(0, 1, 1)); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_SCENE_RELOADED, g, g.gameOnEvent)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	cameras := g.SystemManager.CameraSystem()

	// Print the camera on P.
	if core.InputIsKeyUp(core.KEY_P) && core.InputWasKeyDown(core.KEY_P) {
		camera := cameras.Active()
		pos, fwd := camera.GetPosition(), camera.GetForward()
		core.LogInfo("Camera '%s' Pos: [%.3f, %.3f, %.3f] Fwd: [%.3f, %.3f, %.3f] Frame: %d",
			cameras.ActiveName(), pos.X, pos.Y, pos.Z, fwd.X, fwd.Y, fwd.Z, state.lastFrame)
	}

	// Switch between the default and the overview camera on C.
	if core.InputIsKeyUp(core.KEY_C) && core.InputWasKeyDown(core.KEY_C) {
		next := overviewCamera
		if cameras.ActiveName() == overviewCamera {
			next = components.DEFAULT_CAMERA_NAME
		}
		if err := cameras.SetActive(next); err != nil {
			return err
		}
		core.LogDebug("active camera: %s", next)
	}

	// Put the active camera back at the origin on R.
	if core.InputIsKeyUp(core.KEY_R) && core.InputWasKeyDown(core.KEY_R) {
		cameras.Active().Reset()
	}
	return nil
}

func (g *TestGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	state := g.State.(*gameState)
	state.lastFrame = packet.FrameNumber
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)

	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	core.EventUnregister(core.EVENT_CODE_SCENE_RELOADED, g)
	g.SystemManager.CameraSystem().Release(overviewCamera)
	state := g.State.(*gameState)
	if state.floor {
		if err := g.SystemManager.TransformSystem().Remove("floor"); err != nil {
			core.LogWarn("%s", err)
		}
		g.SystemManager.GeometrySystem().Release(floorGeometry)
		state.floor = false
	}
	return nil
}

func (g *TestGame) gameOnEvent(context core.EventContext, listener interface{}) bool {
	state := g.State.(*gameState)
	switch context.Type {
	case core.EVENT_CODE_SCENE_RELOADED:
		state.reloads++
		if resource, ok := context.Data.(*metadata.Resource); ok {
			core.LogInfo("scene '%s' reloaded (%d)", resource.Name, state.reloads)
		}
	}
	return false
}
