package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScene = errors.New("invalid scene")

// SceneCamera is the initial camera of a scene. Missing vectors keep the
// camera defaults.
type SceneCamera struct {
	Position []float32 `yaml:"position"`
	Forward  []float32 `yaml:"forward"`
	Up       []float32 `yaml:"up"`
}

// SceneObject places one geometry in the world.
type SceneObject struct {
	Name        string    `yaml:"name"`
	Geometry    string    `yaml:"geometry"`
	Translation []float32 `yaml:"translation"`
	Rotation    []float32 `yaml:"rotation"` // Euler degrees
	Scale       []float32 `yaml:"scale"`
	Spin        []float32 `yaml:"spin"` // degrees per second around each axis
}

// Scene is the content of a scene file.
type Scene struct {
	Name    string        `yaml:"name"`
	Camera  *SceneCamera  `yaml:"camera"`
	Objects []SceneObject `yaml:"objects"`
}

type SceneLoader struct{}

func (sl *SceneLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeScene {
		return nil, fmt.Errorf("scene loader cannot load %s resources", assetType)
	}
	scene, err := LoadScene(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     scene.Name,
		FullPath: path,
		Type:     metadata.ResourceTypeScene,
		Data:     scene,
	}, nil
}

// LoadScene reads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	scene, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("parsing scene %s: %w", path, err)
	}
	return scene, nil
}

// ParseScene decodes a YAML scene. Unknown keys are rejected.
func ParseScene(data []byte) (*Scene, error) {
	scene := &Scene{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(scene); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

// Validate checks vector sizes, geometry names and object name uniqueness.
func (s *Scene) Validate() error {
	if s.Camera != nil {
		for field, values := range map[string][]float32{
			"position": s.Camera.Position,
			"forward":  s.Camera.Forward,
			"up":       s.Camera.Up,
		} {
			if err := checkVec3(values); err != nil {
				return fmt.Errorf("%w: camera %s: %w", ErrInvalidScene, field, err)
			}
		}
	}

	names := make(map[string]struct{}, len(s.Objects))
	for i, o := range s.Objects {
		if o.Name == "" {
			return fmt.Errorf("%w: object %d has no name", ErrInvalidScene, i)
		}
		if _, ok := names[o.Name]; ok {
			return fmt.Errorf("%w: duplicate object name %q", ErrInvalidScene, o.Name)
		}
		names[o.Name] = struct{}{}

		switch o.Geometry {
		case metadata.QuadGeometryName, metadata.CubeGeometryName:
		default:
			return fmt.Errorf("%w: object %q: unknown geometry %q", ErrInvalidScene, o.Name, o.Geometry)
		}

		for field, values := range map[string][]float32{
			"translation": o.Translation,
			"rotation":    o.Rotation,
			"scale":       o.Scale,
			"spin":        o.Spin,
		} {
			if err := checkVec3(values); err != nil {
				return fmt.Errorf("%w: object %q %s: %w", ErrInvalidScene, o.Name, field, err)
			}
		}
	}
	return nil
}

func checkVec3(values []float32) error {
	if len(values) != 0 && len(values) != 3 {
		return fmt.Errorf("expected 3 values, got %d", len(values))
	}
	return nil
}

// vec3Or returns values as a vector, or fallback when values is empty.
func vec3Or(values []float32, fallback math.Vec3) math.Vec3 {
	if len(values) != 3 {
		return fallback
	}
	return math.NewVec3(values[0], values[1], values[2])
}

func (c *SceneCamera) PositionVec() math.Vec3 { return vec3Or(c.Position, math.NewVec3Zero()) }
func (c *SceneCamera) ForwardVec() math.Vec3  { return vec3Or(c.Forward, math.NewVec3Forward()) }
func (c *SceneCamera) UpVec() math.Vec3       { return vec3Or(c.Up, math.NewVec3Up()) }

func (o *SceneObject) TranslationVec() math.Vec3 { return vec3Or(o.Translation, math.NewVec3Zero()) }
func (o *SceneObject) RotationVec() math.Vec3    { return vec3Or(o.Rotation, math.NewVec3Zero()) }
func (o *SceneObject) ScaleVec() math.Vec3       { return vec3Or(o.Scale, math.NewVec3One()) }
func (o *SceneObject) SpinVec() math.Vec3        { return vec3Or(o.Spin, math.NewVec3Zero()) }
