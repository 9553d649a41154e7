package geodesic

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-menu/common"
)

// Builder holds icosphere parameters configured through options and builds meshes on demand.
type Builder struct {
	levels int
	radius float32
}

// BuilderOption is a functional option for configuring a Builder.
type BuilderOption func(*Builder)

// WithLevels sets the number of subdivision passes.
//
// Parameters:
//   - levels: subdivision level (0 = plain icosahedron)
//
// Returns:
//   - BuilderOption: option function to apply
func WithLevels(levels int) BuilderOption {
	return func(b *Builder) {
		b.levels = levels
	}
}

// WithRadius sets the sphere radius every vertex is projected onto.
//
// Parameters:
//   - radius: sphere radius (must be positive)
//
// Returns:
//   - BuilderOption: option function to apply
func WithRadius(radius float32) BuilderOption {
	return func(b *Builder) {
		b.radius = radius
	}
}

// NewBuilder creates a Builder defaulting to a level-1 icosphere of radius 2,
// the 42-disc layout of the menu.
//
// Parameters:
//   - options: functional options to configure the builder
//
// Returns:
//   - *Builder: the configured builder
func NewBuilder(options ...BuilderOption) *Builder {
	b := &Builder{
		levels: 1,
		radius: 2,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// Build builds the configured icosphere. See the package-level Build for error semantics.
//
// Returns:
//   - *Mesh: the finished mesh
//   - error: error if the configuration is invalid
func (b *Builder) Build() (*Mesh, error) {
	return Build(b.levels, b.radius)
}

// DiscMesh is the flat base mesh drawn once per instance: a triangle fan in the XY plane facing +Z.
type DiscMesh struct {
	// Positions holds the centre vertex followed by the rim vertices.
	Positions []mgl32.Vec3
	// UVs maps each position into [0,1]² with the centre at (0.5, 0.5).
	UVs []mgl32.Vec2
	// Indices lists the fan triangles, three per segment.
	Indices []uint32
}

// Disc builds the per-instance base disc.
//
// Parameters:
//   - segments: number of rim segments (at least 3)
//   - radius: disc radius (must be positive)
//
// Returns:
//   - *DiscMesh: the disc geometry
//   - error: ErrInvalidSegments or ErrInvalidRadius (wrapped) on bad input
func Disc(segments int, radius float32) (*DiscMesh, error) {
	if segments < 3 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSegments, segments)
	}
	if radius <= 0 || !common.IsFinite(radius) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}

	d := &DiscMesh{
		Positions: make([]mgl32.Vec3, 0, segments+1),
		UVs:       make([]mgl32.Vec2, 0, segments+1),
		Indices:   make([]uint32, 0, segments*3),
	}
	d.Positions = append(d.Positions, mgl32.Vec3{0, 0, 0})
	d.UVs = append(d.UVs, mgl32.Vec2{0.5, 0.5})

	step := 2 * math32.Pi / float32(segments)
	for i := range segments {
		s, c := math32.Sincos(float32(i) * step)
		d.Positions = append(d.Positions, mgl32.Vec3{c * radius, s * radius, 0})
		d.UVs = append(d.UVs, mgl32.Vec2{0.5 + c*0.5, 0.5 - s*0.5})

		next := uint32((i+1)%segments) + 1
		d.Indices = append(d.Indices, 0, uint32(i)+1, next)
	}
	return d, nil
}
