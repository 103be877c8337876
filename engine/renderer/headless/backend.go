package headless

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
	"golang.org/x/image/vector"
)

var ErrNotInitialized = errors.New("headless backend not initialized")

// Edges whose projected end points land further out than this are skipped.
const maxNDC float32 = 16

// Config describes the output of the headless backend.
type Config struct {
	// SnapshotPath is where the last frame is written as a PNG on shutdown.
	// Empty writes nothing.
	SnapshotPath string
	LineWidth    float32
	Background   color.RGBA
	Wire         color.RGBA
}

// DefaultConfig draws 1.5 pixel wide light lines on a dark blue background.
func DefaultConfig() Config {
	return Config{
		LineWidth:  1.5,
		Background: color.RGBA{R: 0, G: 0, B: 51, A: 255},
		Wire:       color.RGBA{R: 230, G: 230, B: 230, A: 255},
	}
}

/**
 * @brief A software backend drawing the edges of every object into an
 * in-memory image. It needs no window and no GPU, which makes it suitable
 * for tests and for batch rendering of snapshots.
 */
type Backend struct {
	mu         sync.Mutex
	config     Config
	frame      *image.RGBA
	rasterizer *vector.Rasterizer

	frameNumber uint64
	segments    int
}

var _ renderer.RendererBackend = (*Backend)(nil)

func New(config Config) *Backend {
	if config.LineWidth <= 0 {
		config.LineWidth = DefaultConfig().LineWidth
	}
	return &Backend{config: config}
}

func (b *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	if appWidth == 0 || appHeight == 0 {
		return fmt.Errorf("headless backend for %s: invalid size %dx%d", appName, appWidth, appHeight)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allocate(int(appWidth), int(appHeight))
	core.LogInfo("Headless renderer initialized for '%s' (%dx%d).", appName, appWidth, appHeight)
	return nil
}

func (b *Backend) allocate(width, height int) {
	b.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	b.rasterizer = vector.NewRasterizer(width, height)
}

// Shutdown writes the last frame to the snapshot path, if one is configured.
func (b *Backend) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frame == nil || b.config.SnapshotPath == "" || b.frameNumber == 0 {
		return nil
	}
	if err := renderer.WriteSnapshot(b.config.SnapshotPath, b.frame); err != nil {
		return err
	}
	core.LogInfo("Snapshot of frame %d written to %s", b.frameNumber, b.config.SnapshotPath)
	return nil
}

func (b *Backend) Resized(width, height uint16) error {
	if width == 0 || height == 0 {
		// Minimized. Keep the old target until a real size comes in.
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allocate(int(width), int(height))
	return nil
}

func (b *Backend) BeginFrame(deltaTime float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frame == nil {
		return ErrNotInitialized
	}
	draw.Draw(b.frame, b.frame.Bounds(), image.NewUniform(b.config.Background), image.Point{}, draw.Src)
	b.segments = 0
	return nil
}

/**
 * @brief Rasterizes the edges of every object of packet. Each vertex goes
 * through the object's MVP matrix and the perspective divide, then to pixel
 * coordinates. Edges with an end point behind the camera are skipped.
 */
func (b *Backend) DrawFrame(packet *metadata.RenderPacket) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frame == nil {
		return ErrNotInitialized
	}

	bounds := b.frame.Bounds()
	width, height := float32(bounds.Dx()), float32(bounds.Dy())
	wire := image.NewUniform(b.config.Wire)
	for i := range packet.Objects {
		obj := &packet.Objects[i]
		if obj.Geometry == nil {
			continue
		}
		mvp := math.Mat4{Data: obj.MVP}

		screen := make([]math.Vec2, len(obj.Geometry.Vertices))
		visible := make([]bool, len(obj.Geometry.Vertices))
		for v, vertex := range obj.Geometry.Vertices {
			screen[v], visible[v] = project(mvp, vertex, width, height)
		}

		b.rasterizer.Reset(bounds.Dx(), bounds.Dy())
		count := 0
		for _, edge := range obj.Geometry.Edges() {
			if !visible[edge[0]] || !visible[edge[1]] {
				continue
			}
			if strokeSegment(b.rasterizer, screen[edge[0]], screen[edge[1]], b.config.LineWidth) {
				count++
			}
		}
		if count > 0 {
			b.rasterizer.Draw(b.frame, bounds, wire, image.Point{})
		}
		b.segments += count
	}
	return nil
}

func (b *Backend) EndFrame(deltaTime float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frameNumber++
	return nil
}

// Frame returns a copy of the last drawn frame.
func (b *Backend) Frame() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frame == nil {
		return nil
	}
	out := image.NewRGBA(b.frame.Bounds())
	copy(out.Pix, b.frame.Pix)
	return out
}

// Segments returns how many edges the last frame drew.
func (b *Backend) Segments() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.segments
}

func project(mvp math.Mat4, vertex math.Vec3, width, height float32) (math.Vec2, bool) {
	// Vertices at or behind the eye have a clip w <= 0 and would flip through the divide.
	w := mvp.At(3, 0)*vertex.X + mvp.At(3, 1)*vertex.Y + mvp.At(3, 2)*vertex.Z + mvp.At(3, 3)
	if w <= math.K_FLOAT_EPSILON {
		return math.Vec2{}, false
	}
	ndc, ok := math.ProjectPoint(mvp, vertex)
	if !ok {
		return math.Vec2{}, false
	}
	if ndc.X < -maxNDC || ndc.X > maxNDC || ndc.Y < -maxNDC || ndc.Y > maxNDC {
		return math.Vec2{}, false
	}
	return math.NDCToScreen(ndc, width, height), true
}

// strokeSegment adds a lineWidth wide quad around a-b to the rasterizer.
// Every quad winds the same way, so overlapping strokes do not cancel out.
func strokeSegment(r *vector.Rasterizer, a, b math.Vec2, lineWidth float32) bool {
	direction, err := math.NewVec3(b.X-a.X, b.Y-a.Y, 0).Normalize()
	if err != nil {
		return false
	}
	half := lineWidth / 2
	nx, ny := -direction.Y*half, direction.X*half

	r.MoveTo(a.X+nx, a.Y+ny)
	r.LineTo(b.X+nx, b.Y+ny)
	r.LineTo(b.X-nx, b.Y-ny)
	r.LineTo(a.X-nx, a.Y-ny)
	r.ClosePath()
	return true
}
