package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-menu/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the frame rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target frames per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithMaxDeltaTime sets the upper bound applied to each frame's delta time.
// Values <= 0 disable the clamp.
//
// Parameters:
//   - d: maximum frame duration handed to the callbacks
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxDeltaTime(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.maxDeltaTime = d
	}
}

// WithWindow attaches a window whose message loop Run drives. Without one the engine runs headless.
//
// Parameters:
//   - w: a pre-configured window, typically a window.Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler to tick each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		if p != nil {
			e.profiler = p
		}
	}
}
