// Package geodesic builds icospheres: a regular icosahedron recursively subdivided with its
// new vertices pushed onto the sphere surface. The vertex list doubles as the set of reference
// directions that the menu places one disc instance on.
package geodesic

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-menu/common"
)

// MaxLevels is the deepest subdivision accepted by Build. Level 8 already produces 655362
// vertices; beyond that the mesh is unusable as an instance set.
const MaxLevels = 8

var (
	// ErrInvalidLevels is returned for a negative (or excessive) subdivision level.
	ErrInvalidLevels = errors.New("geodesic: invalid subdivision level")
	// ErrInvalidRadius is returned for a non-positive or non-finite sphere radius.
	ErrInvalidRadius = errors.New("geodesic: invalid sphere radius")
	// ErrInvalidSegments is returned when a disc is requested with fewer than three segments.
	ErrInvalidSegments = errors.New("geodesic: invalid disc segment count")
)

// Face is a triangle given by three vertex indices in counter-clockwise order seen from outside.
type Face [3]uint32

// Mesh is an immutable geodesic sphere. Vertex i keeps index i for the lifetime of the mesh.
type Mesh struct {
	vertices []mgl32.Vec3
	faces    []Face
	radius   float32
	levels   int
}

// edgeKey identifies an undirected edge by its canonical (min, max) vertex pair.
type edgeKey [2]uint32

func newEdgeKey(a, b uint32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// VertexCount returns the number of unique vertices produced by levels subdivisions: 10·4^L + 2.
//
// Parameters:
//   - levels: subdivision level (non-negative)
//
// Returns:
//   - int: vertex count
func VertexCount(levels int) int {
	return 10*(1<<(2*levels)) + 2
}

// FaceCount returns the number of triangles produced by levels subdivisions: 20·4^L.
//
// Parameters:
//   - levels: subdivision level (non-negative)
//
// Returns:
//   - int: face count
func FaceCount(levels int) int {
	return 20 * (1 << (2 * levels))
}

// Build constructs an icosphere with the given number of subdivision passes and radius.
// Invalid input is rejected before any work is done; no partial mesh is ever returned.
//
// Parameters:
//   - levels: number of subdivision passes, 0..MaxLevels
//   - radius: sphere radius, must be positive and finite
//
// Returns:
//   - *Mesh: the finished mesh
//   - error: ErrInvalidLevels or ErrInvalidRadius (wrapped) on bad input
func Build(levels int, radius float32) (*Mesh, error) {
	if levels < 0 || levels > MaxLevels {
		return nil, fmt.Errorf("%w: %d (want 0..%d)", ErrInvalidLevels, levels, MaxLevels)
	}
	if radius <= 0 || !common.IsFinite(radius) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}

	vertices, faces := icosahedron()

	// Pre-size for the final level so appends never reallocate.
	vertices = append(make([]mgl32.Vec3, 0, VertexCount(levels)), vertices...)
	for range levels {
		vertices, faces = subdivide(vertices, faces)
	}

	for i := range vertices {
		vertices[i] = vertices[i].Mul(radius)
	}

	return &Mesh{
		vertices: vertices,
		faces:    faces,
		radius:   radius,
		levels:   levels,
	}, nil
}

// icosahedron returns the 12 unit vertices and 20 faces of a regular icosahedron.
func icosahedron() ([]mgl32.Vec3, []Face) {
	t := (1 + math32.Sqrt(5)) / 2

	vertices := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range vertices {
		vertices[i] = vertices[i].Normalize()
	}

	faces := []Face{
		// 5 faces around vertex 0
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		// 5 adjacent faces
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		// 5 faces around vertex 3
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		// 5 adjacent faces
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return vertices, faces
}

// subdivide splits every face into four, reusing the midpoint of any edge already split by the
// neighbouring face. Midpoints are normalized onto the unit sphere.
func subdivide(vertices []mgl32.Vec3, faces []Face) ([]mgl32.Vec3, []Face) {
	midpoints := make(map[edgeKey]uint32, len(faces)*3/2)
	next := make([]Face, 0, len(faces)*4)

	midpoint := func(a, b uint32) uint32 {
		key := newEdgeKey(a, b)
		if idx, ok := midpoints[key]; ok {
			return idx
		}
		mid := vertices[a].Add(vertices[b]).Normalize()
		vertices = append(vertices, mid)
		idx := uint32(len(vertices) - 1)
		midpoints[key] = idx
		return idx
	}

	for _, f := range faces {
		a, b, c := f[0], f[1], f[2]
		ab := midpoint(a, b)
		bc := midpoint(b, c)
		ca := midpoint(c, a)

		next = append(next,
			Face{a, ab, ca},
			Face{b, bc, ab},
			Face{c, ca, bc},
			Face{ab, bc, ca},
		)
	}
	return vertices, next
}

// Vertices returns a copy of the vertex positions (each at distance Radius from the origin).
//
// Returns:
//   - []mgl32.Vec3: vertex positions in index order
func (m *Mesh) Vertices() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// Directions returns the unit reference directions, one per vertex, in index order.
//
// Returns:
//   - []mgl32.Vec3: normalized vertex directions
func (m *Mesh) Directions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(m.vertices))
	inv := 1 / m.radius
	for i, v := range m.vertices {
		out[i] = v.Mul(inv)
	}
	return out
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) mgl32.Vec3 {
	return m.vertices[i]
}

// Faces returns a copy of the triangle list.
//
// Returns:
//   - []Face: triangles in subdivision order
func (m *Mesh) Faces() []Face {
	out := make([]Face, len(m.faces))
	copy(out, m.faces)
	return out
}

// Indices flattens the triangle list into an index buffer.
//
// Returns:
//   - []uint32: three indices per face
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, 0, len(m.faces)*3)
	for _, f := range m.faces {
		out = append(out, f[0], f[1], f[2])
	}
	return out
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int { return len(m.vertices) }

// FaceCount returns the number of triangles in the mesh.
func (m *Mesh) FaceCount() int { return len(m.faces) }

// Radius returns the sphere radius the mesh was built with.
func (m *Mesh) Radius() float32 { return m.radius }

// Levels returns the subdivision level the mesh was built with.
func (m *Mesh) Levels() int { return m.levels }
