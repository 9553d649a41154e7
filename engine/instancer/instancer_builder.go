package instancer

import "github.com/go-gl/mathgl/mgl32"

// PipelineOption is a functional option for configuring a Pipeline.
type PipelineOption func(*pipeline)

// WithBaseScale sets the disc scale before the depth cue is applied.
//
// Parameters:
//   - scale: base scale, must be positive
//
// Returns:
//   - PipelineOption: functional option to set the base scale
func WithBaseScale(scale float32) PipelineOption {
	return func(p *pipeline) {
		p.baseScale = scale
	}
}

// WithWorldUp sets the secondary axis used to orient each disc.
//
// Parameters:
//   - up: world up direction, must be non-zero
//
// Returns:
//   - PipelineOption: functional option to set world up
func WithWorldUp(up mgl32.Vec3) PipelineOption {
	return func(p *pipeline) {
		p.worldUp = up
	}
}

// WithWorkers sets how many pool workers share a Recompute. 0 or 1 computes serially on the calling
// goroutine; a negative value uses NumCPU-1.
//
// Parameters:
//   - n: worker count
//
// Returns:
//   - PipelineOption: functional option to set the worker count
func WithWorkers(n int) PipelineOption {
	return func(p *pipeline) {
		p.workers = n
	}
}

// WithChunkSize sets the number of slots each worker task computes.
//
// Parameters:
//   - n: slots per task
//
// Returns:
//   - PipelineOption: functional option to set the chunk size
func WithChunkSize(n int) PipelineOption {
	return func(p *pipeline) {
		p.chunkSize = n
	}
}
