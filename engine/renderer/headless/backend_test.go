package headless

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/components"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

const size = 100

func quadPacket(t *testing.T, z float32) *metadata.RenderPacket {
	t.Helper()
	projection := math.NewProjectionDefault().Resized(size, size)
	frame := math.NewFrameContext(projection, components.NewCamera())

	transform := math.NewTransform().SetTranslationXYZ(0, 0, z)
	mvp, err := transform.GetProjectedTransformation(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &metadata.RenderPacket{
		FrameNumber: 1,
		Width:       size,
		Height:      size,
		Objects: []metadata.ObjectMatrices{
			{
				TransformID: transform.ID,
				Name:        "quad",
				Model:       transform.GetTransformation().Flatten(),
				MVP:         mvp.Flatten(),
				Geometry:    metadata.NewQuadGeometry(),
			},
		},
	}
}

func drawOne(t *testing.T, b *Backend, packet *metadata.RenderPacket) {
	t.Helper()
	if err := b.BeginFrame(0); err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	if err := b.DrawFrame(packet); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}
	if err := b.EndFrame(0); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
}

func TestDrawQuad(t *testing.T) {
	config := DefaultConfig()
	config.LineWidth = 2
	b := New(config)
	if err := b.Initialize("test", size, size); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	drawOne(t, b, quadPacket(t, 2))

	if b.Segments() != 5 {
		t.Errorf("expected the 5 quad edges to be drawn, got %d", b.Segments())
	}
	frame := b.Frame()
	// The top edge of the quad projects onto y = 37.5 between x = 37.5 and 62.5.
	if c := frame.RGBAAt(50, 37); c.R < 200 || c.G < 200 || c.B < 200 {
		t.Errorf("expected a wire pixel at (50, 37), got %+v", c)
	}
	if c := frame.RGBAAt(5, 5); c != config.Background {
		t.Errorf("expected the background at (5, 5), got %+v", c)
	}
	if c := frame.RGBAAt(50, 20); c != config.Background {
		t.Errorf("expected the background above the quad, got %+v", c)
	}
}

func TestDrawBehindCamera(t *testing.T) {
	b := New(DefaultConfig())
	if err := b.Initialize("test", size, size); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	drawOne(t, b, quadPacket(t, -2))

	if b.Segments() != 0 {
		t.Errorf("expected nothing to be drawn behind the camera, got %d segments", b.Segments())
	}
}

func TestProject(t *testing.T) {
	frame := math.NewFrameContext(math.NewProjectionDefault().Resized(size, size), components.NewCamera())
	mvp, err := math.NewTransform().SetTranslationXYZ(0, 0, 2).GetProjectedTransformation(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vertex := math.NewVec3(1, 1, 0)
	screen, ok := project(mvp, vertex, size, size)
	if !ok {
		t.Fatal("expected the vertex in front of the camera to be visible")
	}
	ndc, _ := math.ProjectPoint(mvp, vertex)
	if expected := math.NDCToScreen(ndc, size, size); screen != expected {
		t.Errorf("expected %+v, got %+v", expected, screen)
	}

	// Two units behind the eye.
	if _, ok := project(mvp, math.NewVec3(0, 0, -4), size, size); ok {
		t.Error("expected the vertex behind the camera to be rejected")
	}
}

func TestNotInitialized(t *testing.T) {
	b := New(DefaultConfig())
	if err := b.BeginFrame(0); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if err := b.Initialize("test", 0, 10); err == nil {
		t.Error("expected an error for a zero width")
	}
}

func TestResized(t *testing.T) {
	b := New(DefaultConfig())
	if err := b.Initialize("test", size, size); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Resized(40, 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bounds := b.Frame().Bounds(); bounds.Dx() != 40 || bounds.Dy() != 30 {
		t.Errorf("expected a 40x30 frame, got %v", bounds)
	}
	// A minimized window keeps the previous target.
	if err := b.Resized(0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bounds := b.Frame().Bounds(); bounds.Dx() != 40 {
		t.Errorf("expected the frame to be kept, got %v", bounds)
	}
}

func TestSnapshotOnShutdown(t *testing.T) {
	config := DefaultConfig()
	config.SnapshotPath = filepath.Join(t.TempDir(), "out", "frame.png")
	b := New(config)
	if err := b.Initialize("test", size, size); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	drawOne(t, b, quadPacket(t, 2))
	if err := b.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	file, err := os.Open(config.SnapshotPath)
	if err != nil {
		t.Fatalf("expected a snapshot: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if bounds := img.Bounds(); bounds.Dx() != size || bounds.Dy() != size {
		t.Errorf("expected a %dx%d snapshot, got %v", size, size, bounds)
	}
}
