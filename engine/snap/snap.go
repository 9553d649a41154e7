// Package snap picks the reference direction that currently faces a given world normal, which is the
// disc the menu sphere settles on after a drag.
package snap

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoDirections is returned when the direction list is empty.
var ErrNoDirections = errors.New("snap: no directions")

// Resolver resolves the nearest direction from a fixed direction list.
type Resolver interface {
	// Nearest returns the world-space direction closest to normal under orientation.
	//
	// Parameters:
	//   - normal: world-space normal, typically the view axis
	//   - orientation: the sphere's current orientation
	//
	// Returns:
	//   - mgl32.Vec3: unit world-space direction
	//   - error: ErrNoDirections if the resolver holds no directions
	Nearest(normal mgl32.Vec3, orientation mgl32.Quat) (mgl32.Vec3, error)

	// NearestIndex returns the index of the direction closest to normal under orientation.
	//
	// Parameters:
	//   - normal: world-space normal
	//   - orientation: the sphere's current orientation
	//
	// Returns:
	//   - int: index into the direction list
	//   - error: ErrNoDirections if the resolver holds no directions
	NearestIndex(normal mgl32.Vec3, orientation mgl32.Quat) (int, error)

	// Len returns the number of directions held.
	Len() int
}

type resolver struct {
	dirs []mgl32.Vec3
}

var _ Resolver = &resolver{}

// NewResolver creates a Resolver over a copy of dirs.
//
// Parameters:
//   - dirs: reference directions in the sphere's local frame
//
// Returns:
//   - Resolver: the resolver
//   - error: ErrNoDirections if dirs is empty
func NewResolver(dirs []mgl32.Vec3) (Resolver, error) {
	if len(dirs) == 0 {
		return nil, ErrNoDirections
	}
	owned := make([]mgl32.Vec3, len(dirs))
	copy(owned, dirs)
	return &resolver{dirs: owned}, nil
}

func (r *resolver) Nearest(normal mgl32.Vec3, orientation mgl32.Quat) (mgl32.Vec3, error) {
	return Nearest(r.dirs, normal, orientation)
}

func (r *resolver) NearestIndex(normal mgl32.Vec3, orientation mgl32.Quat) (int, error) {
	return NearestIndex(r.dirs, normal, orientation)
}

func (r *resolver) Len() int {
	return len(r.dirs)
}

// NearestIndex finds the direction whose rotated image is closest to normal. The normal is brought
// into the local frame with the conjugate orientation, so the scan never rotates the whole list.
// Ties resolve to the lowest index, and a zero normal resolves to index 0.
//
// Parameters:
//   - dirs: reference directions in the sphere's local frame
//   - normal: world-space normal
//   - orientation: the sphere's current orientation (unit)
//
// Returns:
//   - int: index of the nearest direction
//   - error: ErrNoDirections if dirs is empty
func NearestIndex(dirs []mgl32.Vec3, normal mgl32.Vec3, orientation mgl32.Quat) (int, error) {
	if len(dirs) == 0 {
		return 0, ErrNoDirections
	}
	local := orientation.Conjugate().Rotate(normal)

	best := 0
	bestDot := local.Dot(dirs[0])
	for i := 1; i < len(dirs); i++ {
		// strict comparison keeps the lowest index on ties
		if d := local.Dot(dirs[i]); d > bestDot {
			best, bestDot = i, d
		}
	}
	return best, nil
}

// Nearest is NearestIndex returning the chosen direction rotated into world space and normalized.
//
// Parameters:
//   - dirs: reference directions in the sphere's local frame
//   - normal: world-space normal
//   - orientation: the sphere's current orientation (unit)
//
// Returns:
//   - mgl32.Vec3: unit world-space direction
//   - error: ErrNoDirections if dirs is empty
func Nearest(dirs []mgl32.Vec3, normal mgl32.Vec3, orientation mgl32.Quat) (mgl32.Vec3, error) {
	i, err := NearestIndex(dirs, normal, orientation)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	world := orientation.Rotate(dirs[i])
	if world.Len() == 0 {
		return world, nil
	}
	return world.Normalize(), nil
}
