// Package arcball implements the pointer-driven orientation controller for the menu sphere: a
// virtual trackball with momentum, exponential damping and a critically damped snap toward a
// chosen direction.
package arcball

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode is the controller's logical state.
type Mode int

const (
	// ModeIdle means no pointer interaction and no residual motion.
	ModeIdle Mode = iota
	// ModeDragging means the pointer is down and drives the orientation directly.
	ModeDragging
	// ModeCoasting means the pointer was released and the sphere spins down with decaying velocity.
	ModeCoasting
	// ModeSnapping means the sphere is settling a snap target onto the snap axis.
	ModeSnapping
)

// String returns the mode name for logging.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModeCoasting:
		return "coasting"
	case ModeSnapping:
		return "snapping"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// OrientationState is a point-in-time snapshot of the controller.
type OrientationState struct {
	// Orientation is the cumulative rotation applied to every reference direction.
	Orientation mgl32.Quat
	// RotationAxis is the filtered instantaneous axis of motion, unit length or zero.
	RotationAxis mgl32.Vec3
	// RotationVelocity is the filtered angular speed in radians per second, never negative.
	RotationVelocity float32
	// PointerActive is true while a drag is in progress.
	PointerActive bool
	// SnapTarget is the world-space snap direction, or nil when none is set.
	SnapTarget *mgl32.Vec3
	// Mode is the controller's logical state.
	Mode Mode
}

// Controller converts pointer motion into a sphere orientation.
// Pointer events are queued by PushPointer and applied at the start of the next Update, so the
// window thread and the frame thread never race on orientation state.
type Controller interface {
	// PushPointer queues a pointer event for the next Update.
	//
	// Parameters:
	//   - ev: the pointer event (viewport-centred coordinates)
	PushPointer(ev PointerEvent)

	// Update drains queued pointer events and advances the orientation by one frame.
	//
	// Parameters:
	//   - deltaTime: elapsed frame time in seconds
	Update(deltaTime float32)

	// Orientation returns the current unit orientation quaternion.
	//
	// Returns:
	//   - mgl32.Quat: the orientation
	Orientation() mgl32.Quat

	// DragStartOrientation returns the orientation captured at the most recent pointer-down.
	//
	// Returns:
	//   - mgl32.Quat: the drag-start orientation
	DragStartOrientation() mgl32.Quat

	// RotationAxis returns the filtered axis of motion (unit length or zero).
	//
	// Returns:
	//   - mgl32.Vec3: the rotation axis
	RotationAxis() mgl32.Vec3

	// RotationVelocity returns the filtered angular speed in radians per second.
	//
	// Returns:
	//   - float32: angular speed, never negative
	RotationVelocity() float32

	// PointerActive reports whether a drag is in progress.
	//
	// Returns:
	//   - bool: true while dragging
	PointerActive() bool

	// Mode returns the controller's logical state.
	//
	// Returns:
	//   - Mode: the current mode
	Mode() Mode

	// Released reports whether a drag ended (pointer-up or cancel) during the most recent Update.
	//
	// Returns:
	//   - bool: true on the frame a drag ended
	Released() bool

	// State returns a snapshot of all observable state.
	//
	// Returns:
	//   - OrientationState: the snapshot
	State() OrientationState

	// SnapTarget returns the current snap direction in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the world-space snap direction
	//   - bool: false when no snap target is set
	SnapTarget() (mgl32.Vec3, bool)

	// SetSnapTarget sets the world-space direction to settle onto the snap axis once idle.
	// While dragging the target is queued and applied on release. A zero vector is ignored.
	//
	// Parameters:
	//   - dir: world-space direction
	SetSnapTarget(dir mgl32.Vec3)

	// ClearSnapTarget removes the current and any queued snap target.
	ClearSnapTarget()

	// SetViewport sets the pixel size of the area the trackball spans.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewport(width, height float32)

	// Reset returns the controller to the identity orientation with no motion and no snap target.
	Reset()
}
