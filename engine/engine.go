package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spaghettifunk/lumen/engine/assets"
	"github.com/spaghettifunk/lumen/engine/assets/loaders"
	"github.com/spaghettifunk/lumen/engine/config"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/platform"
	"github.com/spaghettifunk/lumen/engine/renderer"
	"github.com/spaghettifunk/lumen/engine/renderer/headless"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
	"github.com/spaghettifunk/lumen/engine/renderer/opengl"
	"github.com/spaghettifunk/lumen/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

var ErrNoSettings = errors.New("game has no application settings")

const (
	// The most update steps run before a frame is drawn. A longer stall is
	// dropped instead of being caught up.
	maxStepsPerFrame = 5
	// Time given back to the OS when there is nothing to update.
	idleSleep = time.Millisecond
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	settings      *config.Config
	isRunning     bool
	isSuspended   bool
	platform      *platform.Platform
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.MetricsState
	lastTime      float64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil || g.ApplicationConfig.Settings == nil {
		return nil, ErrNoSettings
	}
	settings := g.ApplicationConfig.Settings
	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		settings:     settings,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		width:        uint32(settings.Application.Width),
		height:       uint32(settings.Application.Height),
	}

	var backend renderer.RendererBackend
	if settings.Application.Headless {
		hc := headless.DefaultConfig()
		hc.SnapshotPath = settings.Renderer.Snapshot
		hc.LineWidth = settings.Renderer.LineWidth
		backend = headless.New(hc)
	} else {
		p, err := platform.New()
		if err != nil {
			core.LogError("%s", err)
			return nil, err
		}
		e.platform = p
		oc := opengl.DefaultConfig()
		oc.SnapshotPath = settings.Renderer.Snapshot
		backend = opengl.New(oc, p)
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}

	sm, err := systems.NewSystemManager(settings, backend)
	if err != nil {
		core.LogError("%s", err)
		_ = am.Shutdown()
		return nil, err
	}
	e.assetManager = am
	e.systemManager = sm
	g.SystemManager = sm

	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageBootComplete {
		return fmt.Errorf("engine cannot initialize from stage %d", e.currentStage)
	}
	e.currentStage = EngineStageInitializing

	// initialize events
	if err := core.EventInitialize(); err != nil {
		return err
	}

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	if e.platform != nil {
		if err := e.platform.Startup(e.settings.Application.Name,
			e.gameInstance.ApplicationConfig.StartPosX,
			e.gameInstance.ApplicationConfig.StartPosY,
			e.width,
			e.height); err != nil {
			return err
		}
	}

	if err := e.systemManager.RendererSystem().Initialize(); err != nil {
		return err
	}

	if path := e.settings.Scene.Path; path != "" {
		resource, err := e.assetManager.LoadAsset(path, nil)
		if err != nil {
			core.LogError("loading scene %s: %s", path, err.Error())
			return err
		}
		if err := e.applyScene(resource); err != nil {
			return err
		}
		if e.settings.Scene.Watch {
			if err := e.assetManager.Watch(path); err != nil {
				// The scene still renders, it just does not follow edits.
				core.LogWarn("cannot watch %s: %s", path, err.Error())
			}
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

/**
 * @brief Runs the update loop until the application quits, ctx is done or
 * the configured number of frames has been drawn.
 *
 * The scene is updated in fixed steps of 1/updates_per_second seconds. A
 * frame is drawn only after at least one update. In headless mode every
 * iteration advances exactly one step, so runs are reproducible.
 */
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("func Engine.Run: %w", core.ErrNotInitialized)
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true

	step := 1.0 / e.settings.Application.UpdatesPerSecond
	maxFrames := e.settings.Application.MaxFrames
	rs := e.systemManager.RendererSystem()

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var accumulated float64
	var lastReport float64
	rendered := true

	for e.isRunning {
		if ctx.Err() != nil {
			core.LogInfo("Context done, shutting down.")
			break
		}
		if e.platform != nil && !e.platform.PumpMessages() {
			break
		}
		e.applyReloads()

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		e.lastTime = currentTime

		if e.isSuspended {
			time.Sleep(idleSleep)
			continue
		}

		if e.platform == nil {
			accumulated += step
		} else {
			accumulated = min(accumulated+delta, maxStepsPerFrame*step)
		}

		for accumulated >= step {
			accumulated -= step
			if err := e.update(step); err != nil {
				core.LogError("Game update failed, shutting down: %s", err.Error())
				return err
			}
			rendered = false
		}
		if !e.isRunning {
			break
		}

		if rendered {
			time.Sleep(idleSleep)
			continue
		}

		frameStart := time.Now()
		if err := e.render(ctx, step); err != nil {
			if ctx.Err() != nil {
				break
			}
			core.LogError("Render failed, shutting down: %s", err.Error())
			return err
		}
		rendered = true
		e.metrics.Update(time.Since(frameStart).Seconds())

		if currentTime-lastReport >= 1 {
			fps, frameTime := e.metrics.Frame()
			core.LogDebug("FPS: %.0f, frame time: %.3fms", fps, frameTime)
			lastReport = currentTime
		}

		if maxFrames > 0 && rs.FrameNumber() >= maxFrames {
			core.LogInfo("Drew %d frames, stopping.", rs.FrameNumber())
			break
		}
	}

	e.isRunning = false
	e.clock.Stop()
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) update(deltaTime float64) error {
	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(deltaTime); err != nil {
			return err
		}
	}
	if err := e.systemManager.CameraController().Update(deltaTime); err != nil {
		return err
	}
	e.systemManager.TransformSystem().Update(deltaTime)

	// NOTE: Input update/state copying should always be handled
	// after any input should be recorded; I.E. before this line.
	return core.InputUpdate(deltaTime)
}

func (e *Engine) render(ctx context.Context, deltaTime float64) error {
	rs := e.systemManager.RendererSystem()
	frame, err := e.systemManager.CameraSystem().FrameContext(rs.Projection())
	if err != nil {
		return err
	}
	packet, err := e.systemManager.TransformSystem().BuildPacket(ctx, frame, rs.FrameNumber()+1, deltaTime)
	if err != nil {
		return err
	}
	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(packet, deltaTime); err != nil {
			return err
		}
	}
	return rs.DrawFrame(packet)
}

// applyScene replaces the scene objects and moves the active camera to the
// scene camera, if the scene has one.
func (e *Engine) applyScene(resource *metadata.Resource) error {
	scene, ok := resource.Data.(*loaders.Scene)
	if !ok {
		return fmt.Errorf("%s is not a scene: %w", resource.FullPath, assets.ErrUnknownAssetType)
	}
	if err := e.systemManager.TransformSystem().LoadScene(scene); err != nil {
		return err
	}
	if scene.Camera == nil {
		return nil
	}
	camera := e.systemManager.CameraSystem().Active()
	if err := camera.SetOrientation(scene.Camera.ForwardVec(), scene.Camera.UpVec()); err != nil {
		return fmt.Errorf("scene %s camera: %w", resource.FullPath, err)
	}
	camera.SetPosition(scene.Camera.PositionVec())
	return nil
}

// applyReloads applies every scene reloaded from disk since the last call.
func (e *Engine) applyReloads() {
	for {
		select {
		case resource := <-e.assetManager.Reloads():
			if err := e.applyScene(resource); err != nil {
				core.LogWarn("keeping the previous scene: %s", err.Error())
				continue
			}
			core.EventFire(core.EventContext{
				Type: core.EVENT_CODE_SCENE_RELOADED,
				Data: resource,
			})
		default:
			return
		}
	}
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	var errs []error

	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}

	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e)
	core.EventUnregister(core.EVENT_CODE_KEY_PRESSED, e)
	core.EventUnregister(core.EVENT_CODE_RESIZED, e)

	// The renderer may still read back the window, so it goes before the platform.
	errs = append(errs, e.systemManager.Shutdown())
	errs = append(errs, e.assetManager.Shutdown())
	if e.platform != nil {
		errs = append(errs, e.platform.Shutdown())
	}
	errs = append(errs, core.InputShutdown())
	errs = append(errs, core.EventShutdown())

	e.currentStage = EngineStageUninitialized
	return errors.Join(errs...)
}

// ApplicationGetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) onEvent(context core.EventContext, listener interface{}) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
	}
	return false
}

func (e *Engine) onKey(context core.EventContext, listener interface{}) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext, listener interface{}) bool {
	re, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	width, height := uint32(re.Width), uint32(re.Height)

	// Handle minimization
	if width == 0 || height == 0 {
		if !e.isSuspended {
			core.LogInfo("Window minimized, suspending application.")
			e.isSuspended = true
		}
		return false
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if width == e.width && height == e.height {
		return false
	}
	e.width, e.height = width, height
	core.LogDebug("Window resize: %d, %d", width, height)
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError("%s", err)
		}
	}
	// The renderer listens to the same event.
	return false
}
