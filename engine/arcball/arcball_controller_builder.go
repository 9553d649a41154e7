package arcball

import "github.com/go-gl/mathgl/mgl32"

// ControllerOption is a functional option for configuring a Controller.
type ControllerOption func(*controllerImpl)

// WithViewport sets the initial viewport size the trackball spans.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - ControllerOption: functional option to set the viewport
func WithViewport(width, height float32) ControllerOption {
	return func(c *controllerImpl) {
		c.viewport.Width = width
		c.viewport.Height = height
	}
}

// WithTrackballRadius sets the virtual sphere radius in normalized viewport units
// (1 = half the shorter viewport side).
//
// Parameters:
//   - radius: trackball radius
//
// Returns:
//   - ControllerOption: functional option to set the trackball radius
func WithTrackballRadius(radius float32) ControllerOption {
	return func(c *controllerImpl) {
		c.trackballRadius = radius
	}
}

// WithDamping sets the exponential decay rate of coasting velocity.
//
// Parameters:
//   - rate: decay rate per second (velocity *= exp(-rate*dt))
//
// Returns:
//   - ControllerOption: functional option to set coasting damping
func WithDamping(rate float32) ControllerOption {
	return func(c *controllerImpl) {
		c.damping = rate
	}
}

// WithStopVelocity sets the angular speed below which coasting is clamped to a stop.
//
// Parameters:
//   - velocity: threshold in radians per second
//
// Returns:
//   - ControllerOption: functional option to set the stop threshold
func WithStopVelocity(velocity float32) ControllerOption {
	return func(c *controllerImpl) {
		c.stopVelocity = velocity
	}
}

// WithDragSmoothing sets the low-pass rate applied to axis and velocity samples while dragging.
//
// Parameters:
//   - rate: smoothing rate per second (higher follows the raw samples faster)
//
// Returns:
//   - ControllerOption: functional option to set drag smoothing
func WithDragSmoothing(rate float32) ControllerOption {
	return func(c *controllerImpl) {
		c.dragSmoothing = rate
	}
}

// WithSnapAxis sets the fixed world axis snap targets are aligned with (default +Z, toward the viewer).
//
// Parameters:
//   - axis: world-space axis, normalized internally
//
// Returns:
//   - ControllerOption: functional option to set the snap axis
func WithSnapAxis(axis mgl32.Vec3) ControllerOption {
	return func(c *controllerImpl) {
		if axis.Len() > 0 {
			c.snapAxis = axis.Normalize()
		}
	}
}

// WithSnapFrequencies sets the angular frequencies of the critically damped snap spring for the
// two snap regimes: while residual coasting is still running (looser) and once idle (tighter).
//
// Parameters:
//   - coasting: spring angular frequency while coasting
//   - idle: spring angular frequency while idle
//
// Returns:
//   - ControllerOption: functional option to set snap frequencies
func WithSnapFrequencies(coasting, idle float32) ControllerOption {
	return func(c *controllerImpl) {
		c.coastingSnapFrequency = coasting
		c.idleSnapFrequency = idle
	}
}

// WithSnapEngageVelocity sets the coasting speed under which the snap spring starts pulling.
//
// Parameters:
//   - velocity: threshold in radians per second
//
// Returns:
//   - ControllerOption: functional option to set the snap engage threshold
func WithSnapEngageVelocity(velocity float32) ControllerOption {
	return func(c *controllerImpl) {
		c.snapEngageVelocity = velocity
	}
}

// WithSnapEpsilon sets the residual angle at which a snap is considered complete.
//
// Parameters:
//   - angle: completion threshold in radians
//
// Returns:
//   - ControllerOption: functional option to set the snap completion threshold
func WithSnapEpsilon(angle float32) ControllerOption {
	return func(c *controllerImpl) {
		c.snapEpsilon = angle
	}
}

// WithInitialOrientation sets the starting orientation.
//
// Parameters:
//   - q: initial orientation, normalized internally
//
// Returns:
//   - ControllerOption: functional option to set the initial orientation
func WithInitialOrientation(q mgl32.Quat) ControllerOption {
	return func(c *controllerImpl) {
		if q.Len() > 0 {
			c.orientation = q.Normalize()
		}
	}
}
