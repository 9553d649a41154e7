package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController places the camera on the +Z axis looking at the sphere centre and eases its
// distance so the sphere recedes while it spins and returns once it settles.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the camera position
	Position() mgl32.Vec3

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - mgl32.Vec3: the look-at target
	Target() mgl32.Vec3

	// Distance returns the current eased distance from the target.
	//
	// Returns:
	//   - float32: the current distance
	Distance() float32

	// TargetDistance returns the distance the camera is currently easing toward.
	//
	// Returns:
	//   - float32: the goal distance
	TargetDistance() float32

	// BaseDistance returns the resting distance.
	//
	// Returns:
	//   - float32: the resting distance
	BaseDistance() float32

	// SetBaseDistance sets the resting distance. Non-positive values are ignored.
	//
	// Parameters:
	//   - distance: the resting distance
	SetBaseDistance(distance float32)

	// Update advances the zoom spring by one frame.
	//
	// Parameters:
	//   - deltaTime: elapsed frame time in seconds
	//   - velocity: the sphere's angular speed in radians per second
	//   - dragging: whether a pointer drag is in progress
	Update(deltaTime, velocity float32, dragging bool)

	// Reset snaps the camera back to the resting distance with no motion.
	Reset()
}
