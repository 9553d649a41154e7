package menu

import (
	"github.com/Carmen-Shannon/oxy-menu/engine/arcball"
	"github.com/Carmen-Shannon/oxy-menu/engine/camera"
	"github.com/Carmen-Shannon/oxy-menu/engine/instancer"
)

// MenuOption is a functional option for configuring a Menu.
type MenuOption func(*menuImpl)

// WithLevels sets the sphere's subdivision level.
//
// Parameters:
//   - levels: subdivision passes (0 is a bare icosahedron)
//
// Returns:
//   - MenuOption: functional option to set the subdivision level
func WithLevels(levels int) MenuOption {
	return func(m *menuImpl) {
		m.levels = levels
	}
}

// WithRadius sets the sphere radius.
//
// Parameters:
//   - radius: sphere radius in world units
//
// Returns:
//   - MenuOption: functional option to set the radius
func WithRadius(radius float32) MenuOption {
	return func(m *menuImpl) {
		m.radius = radius
	}
}

// WithDisc sets the tessellation and radius of the base disc.
//
// Parameters:
//   - segments: number of rim segments, at least 3
//   - radius: disc radius before the instance scale
//
// Returns:
//   - MenuOption: functional option to set the disc shape
func WithDisc(segments int, radius float32) MenuOption {
	return func(m *menuImpl) {
		m.discSegments = segments
		m.discRadius = radius
	}
}

// WithViewport sets the initial framebuffer size.
//
// Parameters:
//   - width, height: framebuffer size in pixels
//
// Returns:
//   - MenuOption: functional option to set the viewport
func WithViewport(width, height int) MenuOption {
	return func(m *menuImpl) {
		m.viewport = [2]int{width, height}
	}
}

// WithItems sets the content assigned round-robin to the discs.
//
// Parameters:
//   - items: the menu items
//
// Returns:
//   - MenuOption: functional option to set the items
func WithItems(items ...Item) MenuOption {
	return func(m *menuImpl) {
		m.items = append([]Item(nil), items...)
	}
}

// WithControllerOptions forwards options to the orientation controller. They are applied after the
// menu's own viewport and snap-axis options, so they may override either.
//
// Parameters:
//   - options: arcball controller options
//
// Returns:
//   - MenuOption: functional option to configure the controller
func WithControllerOptions(options ...arcball.ControllerOption) MenuOption {
	return func(m *menuImpl) {
		m.controllerOptions = append(m.controllerOptions, options...)
	}
}

// WithPipelineOptions forwards options to the instance pipeline.
//
// Parameters:
//   - options: instancer pipeline options
//
// Returns:
//   - MenuOption: functional option to configure the pipeline
func WithPipelineOptions(options ...instancer.PipelineOption) MenuOption {
	return func(m *menuImpl) {
		m.pipelineOptions = append(m.pipelineOptions, options...)
	}
}

// WithCameraControllerOptions forwards options to the default zoom controller. Ignored when WithCamera is used.
//
// Parameters:
//   - options: camera controller options
//
// Returns:
//   - MenuOption: functional option to configure the zoom controller
func WithCameraControllerOptions(options ...camera.CameraControllerOption) MenuOption {
	return func(m *menuImpl) {
		m.cameraControllerOp = append(m.cameraControllerOp, options...)
	}
}

// WithCamera replaces the default zoom camera. The camera's controller, if any, is advanced each frame.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - MenuOption: functional option to set the camera
func WithCamera(cam camera.Camera) MenuOption {
	return func(m *menuImpl) {
		m.cam = cam
	}
}

// WithDebugLogging logs construction, active slot and motion changes.
//
// Parameters:
//   - enabled: whether to log
//
// Returns:
//   - MenuOption: functional option to toggle debug logging
func WithDebugLogging(enabled bool) MenuOption {
	return func(m *menuImpl) {
		m.debug = enabled
	}
}
