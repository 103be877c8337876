package systems

import (
	"github.com/spaghettifunk/lumen/engine/config"
	"github.com/spaghettifunk/lumen/engine/renderer"
)

type SystemManager struct {
	cameraSystem     *CameraSystem
	jobSystem        *JobSystem
	geometrySystem   *GeometrySystem
	transformSystem  *TransformSystem
	rendererSystem   *RendererSystem
	cameraController *CameraController
}

func NewSystemManager(cfg *config.Config, backend renderer.RendererBackend) (*SystemManager, error) {
	js, err := NewJobSystem(cfg.Renderer.Workers)
	if err != nil {
		return nil, err
	}
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 100,
	})
	if err != nil {
		return nil, err
	}
	position, forward, up := cfg.CameraVectors()
	cs.DefaultCamera.SetPosition(position)
	if err := cs.DefaultCamera.SetOrientation(forward, up); err != nil {
		return nil, err
	}

	gs, err := NewGeometrySystem(&GeometrySystemConfig{
		MaxGeometryCount: 4096,
	})
	if err != nil {
		return nil, err
	}
	ts, err := NewTransformSystem(TransformSystemConfig{
		ParallelThreshold: cfg.Renderer.ParallelThreshold,
	}, js, gs)
	if err != nil {
		return nil, err
	}
	cc, err := NewCameraController(CameraControllerConfig{
		MoveSpeed:   cfg.Camera.MoveSpeed,
		RotateSpeed: cfg.Camera.RotateSpeed,
		MaxPitch:    cfg.Camera.MaxPitch,
	}, cs)
	if err != nil {
		return nil, err
	}
	rs, err := NewRendererSystem(
		cfg.Application.Name,
		uint32(cfg.Application.Width),
		uint32(cfg.Application.Height),
		backend,
		cfg.ToProjection(),
	)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		cameraSystem:     cs,
		jobSystem:        js,
		geometrySystem:   gs,
		transformSystem:  ts,
		rendererSystem:   rs,
		cameraController: cc,
	}, nil
}

func (sm *SystemManager) CameraSystem() *CameraSystem {
	return sm.cameraSystem
}

func (sm *SystemManager) JobSystem() *JobSystem {
	return sm.jobSystem
}

func (sm *SystemManager) GeometrySystem() *GeometrySystem {
	return sm.geometrySystem
}

func (sm *SystemManager) TransformSystem() *TransformSystem {
	return sm.transformSystem
}

func (sm *SystemManager) RendererSystem() *RendererSystem {
	return sm.rendererSystem
}

func (sm *SystemManager) CameraController() *CameraController {
	return sm.cameraController
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.rendererSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.transformSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.geometrySystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.cameraSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.jobSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
