package metadata

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/lumen/engine/math"
)

func TestQuadGeometry(t *testing.T) {
	g := NewQuadGeometry()
	if len(g.Vertices) != 4 || len(g.Indices) != 6 {
		t.Fatalf("unexpected quad layout: %d vertices, %d indices", len(g.Vertices), len(g.Indices))
	}
	if g.Center != math.NewVec3Zero() {
		t.Errorf("expected the quad centered on the origin, got %+v", g.Center)
	}
	if g.MinExtents != math.NewVec3(-0.5, -0.5, 0) || g.MaxExtents != math.NewVec3(0.5, 0.5, 0) {
		t.Errorf("unexpected extents %+v %+v", g.MinExtents, g.MaxExtents)
	}
	// 4 sides plus the shared diagonal.
	if edges := g.Edges(); len(edges) != 5 {
		t.Errorf("expected 5 edges, got %d: %v", len(edges), edges)
	}
}

func TestCubeGeometry(t *testing.T) {
	g := NewCubeGeometry(2)
	if len(g.Vertices) != 8 || len(g.Indices) != 36 {
		t.Fatalf("unexpected cube layout: %d vertices, %d indices", len(g.Vertices), len(g.Indices))
	}
	if g.MaxExtents != math.NewVec3(1, 1, 1) {
		t.Errorf("unexpected max extents %+v", g.MaxExtents)
	}
	// 12 sides plus one diagonal per face.
	edges := g.Edges()
	if len(edges) != 18 {
		t.Errorf("expected 18 edges, got %d", len(edges))
	}
	for _, e := range edges {
		if e[0] >= e[1] {
			t.Errorf("edge %v is not ordered", e)
		}
	}
}

func TestNewGeometryValidation(t *testing.T) {
	vertices := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	testCases := map[string]struct {
		vertices []math.Vec3
		indices  []uint32
	}{
		"no vertices":  {nil, nil},
		"partial":      {vertices, []uint32{0, 1}},
		"out of range": {vertices, []uint32{0, 1, 3}},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewGeometry(name, tc.vertices, tc.indices); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestGeometryByName(t *testing.T) {
	for _, name := range []string{QuadGeometryName, CubeGeometryName} {
		g, err := GeometryByName(name)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if g.Name != name {
			t.Errorf("expected name %s, got %s", name, g.Name)
		}
	}
	if _, err := GeometryByName("teapot"); !errors.Is(err, ErrUnknownGeometry) {
		t.Errorf("expected ErrUnknownGeometry, got %v", err)
	}
}
