package metadata

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spaghettifunk/lumen/engine/math"
)

var (
	ErrUnknownGeometry = errors.New("unknown geometry")
	ErrInvalidGeometry = errors.New("invalid geometry")
)

const (
	/** @brief The name of the built-in quad geometry. */
	QuadGeometryName string = "quad"
	/** @brief The name of the built-in cube geometry. */
	CubeGeometryName string = "cube"
)

/**
 * @brief Represents actual geometry in the world: a triangle list in local
 * coordinates.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uuid.UUID
	/** @brief The geometry name. */
	Name string
	/** @brief The vertex positions in local coordinates. */
	Vertices []math.Vec3
	/** @brief Triangle indices into Vertices, three per triangle. */
	Indices []uint32
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
	/** @brief The smallest coordinates on each axis. */
	MinExtents math.Vec3
	/** @brief The largest coordinates on each axis. */
	MaxExtents math.Vec3
}

/**
 * @brief The data needed to create a geometry, usually produced by one of
 * the geometry generators.
 */
type GeometryConfig struct {
	/** @brief The name of the geometry. */
	Name string
	/** @brief The vertex positions in local coordinates. */
	Vertices []math.Vec3
	/** @brief Triangle indices into Vertices, three per triangle. */
	Indices []uint32
}

/**
 * @brief Creates a geometry from a triangle list and computes its extents.
 *
 * @return ErrInvalidGeometry when there are no vertices, the index count is
 * not a multiple of 3 or an index is out of range.
 */
func NewGeometry(name string, vertices []math.Vec3, indices []uint32) (*Geometry, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("%w: %s has no vertices", ErrInvalidGeometry, name)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %s has %d indices, not a triangle list", ErrInvalidGeometry, name, len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("%w: %s index %d out of range (%d vertices)", ErrInvalidGeometry, name, idx, len(vertices))
		}
	}

	minExtents := vertices[0]
	maxExtents := vertices[0]
	for _, v := range vertices[1:] {
		minExtents = math.NewVec3(min(minExtents.X, v.X), min(minExtents.Y, v.Y), min(minExtents.Z, v.Z))
		maxExtents = math.NewVec3(max(maxExtents.X, v.X), max(maxExtents.Y, v.Y), max(maxExtents.Z, v.Z))
	}

	return &Geometry{
		ID:         uuid.New(),
		Name:       name,
		Vertices:   vertices,
		Indices:    indices,
		Center:     minExtents.Add(maxExtents).MulScalar(0.5),
		MinExtents: minExtents,
		MaxExtents: maxExtents,
	}, nil
}

// NewQuadGeometry returns the unit quad in the XY plane, centered on the origin.
func NewQuadGeometry() *Geometry {
	g, _ := NewGeometry(QuadGeometryName, []math.Vec3{
		math.NewVec3(-0.5, 0.5, 0),
		math.NewVec3(-0.5, -0.5, 0),
		math.NewVec3(0.5, -0.5, 0),
		math.NewVec3(0.5, 0.5, 0),
	}, []uint32{
		0, 1, 2,
		0, 3, 2,
	})
	return g
}

// NewCubeGeometry returns a cube with the given edge length, centered on the origin.
func NewCubeGeometry(size float32) *Geometry {
	h := size * 0.5
	g, _ := NewGeometry(CubeGeometryName, []math.Vec3{
		math.NewVec3(-h, -h, -h),
		math.NewVec3(h, -h, -h),
		math.NewVec3(h, h, -h),
		math.NewVec3(-h, h, -h),
		math.NewVec3(-h, -h, h),
		math.NewVec3(h, -h, h),
		math.NewVec3(h, h, h),
		math.NewVec3(-h, h, h),
	}, []uint32{
		// back
		0, 2, 1, 0, 3, 2,
		// front
		4, 5, 6, 4, 6, 7,
		// left
		0, 4, 7, 0, 7, 3,
		// right
		1, 2, 6, 1, 6, 5,
		// bottom
		0, 1, 5, 0, 5, 4,
		// top
		3, 7, 6, 3, 6, 2,
	})
	return g
}

// GeometryByName builds one of the built-in geometries.
func GeometryByName(name string) (*Geometry, error) {
	switch name {
	case QuadGeometryName:
		return NewQuadGeometry(), nil
	case CubeGeometryName:
		return NewCubeGeometry(1), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGeometry, name)
	}
}

/**
 * @brief Returns every triangle edge once, as ordered index pairs. Diagonals
 * shared by two triangles of a face are included.
 */
func (g *Geometry) Edges() [][2]uint32 {
	seen := make(map[[2]uint32]struct{}, len(g.Indices))
	edges := make([][2]uint32, 0, len(g.Indices))
	for t := 0; t+2 < len(g.Indices); t += 3 {
		tri := [3]uint32{g.Indices[t], g.Indices[t+1], g.Indices[t+2]}
		for i := 0; i < 3; i++ {
			a, b := tri[i], tri[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			e := [2]uint32{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}
