package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithBaseDistance sets the resting distance from the target.
//
// Parameters:
//   - distance: resting distance, must be positive
//
// Returns:
//   - CameraControllerOption: functional option to set the resting distance
func WithBaseDistance(distance float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if distance > 0 {
			cc.baseDistance = distance
		}
	}
}

// WithTarget sets the look-at point.
//
// Parameters:
//   - target: the look-at point
//
// Returns:
//   - CameraControllerOption: functional option to set the target position
func WithTarget(target mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = target
	}
}

// WithZoomFactor sets how far the camera pulls back per radian per second of spin.
//
// Parameters:
//   - factor: distance per unit of angular speed
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom factor
func WithZoomFactor(factor float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomFactor = factor
	}
}

// WithDragPullback sets the extra distance added while a drag is in progress.
//
// Parameters:
//   - distance: extra distance while dragging
//
// Returns:
//   - CameraControllerOption: functional option to set the drag pull-back
func WithDragPullback(distance float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.dragPullback = distance
	}
}

// WithMaxPullback caps the total pull-back beyond the resting distance.
//
// Parameters:
//   - distance: maximum extra distance
//
// Returns:
//   - CameraControllerOption: functional option to set the pull-back cap
func WithMaxPullback(distance float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.maxPullback = distance
	}
}

// WithZoomSpring sets the angular frequency and damping ratio of the zoom spring.
//
// Parameters:
//   - frequency: spring angular frequency
//   - dampingRatio: 1 is critically damped, below 1 overshoots
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom spring
func WithZoomSpring(frequency, dampingRatio float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.frequency = frequency
		cc.dampingRatio = dampingRatio
	}
}
