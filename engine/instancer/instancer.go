// Package instancer turns the sphere's reference directions and current orientation into one model
// matrix per disc instance, written into a buffer that is allocated once and uploaded every frame.
package instancer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-menu/common"
)

var (
	// ErrNoDirections is returned by NewPipeline when the direction list is empty.
	ErrNoDirections = errors.New("instancer: no directions")
	// ErrNotReady is returned by Recompute on a closed pipeline.
	ErrNotReady = errors.New("instancer: pipeline not ready")
)

const (
	// DefaultBaseScale is the disc scale before the depth cue is applied.
	DefaultBaseScale float32 = 0.25
	// DefaultChunkSize is the number of slots one worker task handles.
	DefaultChunkSize = 64

	// depth cue: s = (|z|*depthScaleSlope + depthScaleFloor) * baseScale
	depthScaleSlope float32 = 0.6
	depthScaleFloor float32 = 0.4
)

// Pipeline recomputes the per-instance model matrices from an orientation.
// The buffers returned by Matrices, Bytes and WorldPositions are owned by the pipeline and are
// overwritten by the next Recompute.
type Pipeline interface {
	// Recompute rotates every reference direction by orientation and rewrites its instance matrix.
	//
	// Parameters:
	//   - orientation: the sphere's current unit orientation
	//
	// Returns:
	//   - error: ErrNotReady if the pipeline was closed
	Recompute(orientation mgl32.Quat) error

	// Matrices returns the instance matrix buffer, one column-major matrix per direction.
	//
	// Returns:
	//   - []mgl32.Mat4: the live buffer
	Matrices() []mgl32.Mat4

	// Bytes returns a byte view of the instance matrix buffer for GPU upload.
	//
	// Returns:
	//   - []byte: view sharing memory with Matrices
	Bytes() []byte

	// WorldPositions returns each reference direction rotated by the last orientation.
	//
	// Returns:
	//   - []mgl32.Vec3: the live buffer
	WorldPositions() []mgl32.Vec3

	// Count returns the number of instances.
	//
	// Returns:
	//   - int: instance count
	Count() int

	// Close stops the worker pool. Recompute fails with ErrNotReady afterwards.
	Close()
}

type pipeline struct {
	mu *sync.Mutex

	directions []mgl32.Vec3
	matrices   []mgl32.Mat4
	positions  []mgl32.Vec3

	baseScale float32
	worldUp   mgl32.Vec3
	workers   int
	chunkSize int

	pool   worker.DynamicWorkerPool
	closed bool
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a Pipeline over a copy of directions. Every buffer is allocated here and
// reused for the lifetime of the pipeline. The initial buffer holds the identity orientation.
//
// Parameters:
//   - directions: reference directions in the sphere's local frame, already scaled by the sphere radius
//   - options: functional options to configure the pipeline
//
// Returns:
//   - Pipeline: the pipeline
//   - error: ErrNoDirections if directions is empty, or an invalid option value
func NewPipeline(directions []mgl32.Vec3, options ...PipelineOption) (Pipeline, error) {
	if len(directions) == 0 {
		return nil, ErrNoDirections
	}

	p := &pipeline{
		mu:         &sync.Mutex{},
		directions: make([]mgl32.Vec3, len(directions)),
		matrices:   make([]mgl32.Mat4, len(directions)),
		positions:  make([]mgl32.Vec3, len(directions)),
		baseScale:  DefaultBaseScale,
		worldUp:    mgl32.Vec3{0, 1, 0},
		workers:    1,
		chunkSize:  DefaultChunkSize,
	}
	copy(p.directions, directions)

	for _, option := range options {
		option(p)
	}

	if p.baseScale <= 0 || !common.IsFinite(p.baseScale) {
		return nil, fmt.Errorf("instancer: invalid base scale %v", p.baseScale)
	}
	if p.worldUp.Len() < common.Epsilon {
		return nil, fmt.Errorf("instancer: world up must be non-zero")
	}
	p.worldUp = p.worldUp.Normalize()
	if p.workers < 0 {
		p.workers = max(runtime.NumCPU()-1, 1)
	}
	if p.chunkSize <= 0 {
		p.chunkSize = DefaultChunkSize
	}

	// Pool is created after options so WithWorkers can size it.
	if p.workers > 1 && len(p.directions) > p.chunkSize {
		p.pool = worker.NewDynamicWorkerPool(p.workers, p.chunkCount(), 1*time.Second)
	}

	p.fill(mgl32.QuatIdent(), 0, len(p.directions))
	return p, nil
}

func (p *pipeline) Recompute(orientation mgl32.Quat) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrNotReady
	}
	if p.pool == nil {
		p.fill(orientation, 0, len(p.directions))
		return nil
	}

	// Each task owns a contiguous slot range, so the writes never overlap. The WaitGroup is the
	// per-frame barrier; pool.Wait blocks until workers idle out.
	var wg sync.WaitGroup
	for id := 0; id*p.chunkSize < len(p.directions); id++ {
		start := id * p.chunkSize
		end := min(start+p.chunkSize, len(p.directions))
		wg.Add(1)
		p.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				p.fill(orientation, start, end)
				return nil, nil
			},
		})
	}
	wg.Wait()
	return nil
}

// fill writes slots [start, end).
func (p *pipeline) fill(orientation mgl32.Quat, start, end int) {
	origin := mgl32.Vec3{}
	for i := start; i < end; i++ {
		world := orientation.Rotate(p.directions[i])
		p.positions[i] = world
		p.matrices[i] = InstanceMatrix(world, origin, p.worldUp, p.baseScale)
	}
}

func (p *pipeline) chunkCount() int {
	return (len(p.directions) + p.chunkSize - 1) / p.chunkSize
}

func (p *pipeline) Matrices() []mgl32.Mat4 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.matrices
}

func (p *pipeline) Bytes() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return common.SliceToBytes(p.matrices)
}

func (p *pipeline) WorldPositions() []mgl32.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positions
}

func (p *pipeline) Count() int {
	return len(p.directions)
}

func (p *pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	if p.pool != nil {
		p.pool.Stop()
	}
}

// DepthScale returns the depth-cued disc scale for a rotated position: discs near the view axis
// (large |z|) draw larger than discs on the silhouette.
//
// Parameters:
//   - world: rotated direction
//   - baseScale: scale before the depth cue
//
// Returns:
//   - float32: the uniform disc scale
func DepthScale(world mgl32.Vec3, baseScale float32) float32 {
	return (math32.Abs(world.Z())*depthScaleSlope + depthScaleFloor) * baseScale
}

// InstanceMatrix builds Translate(-world) * Scale(s) * TargetTo(origin, world, up) for one disc.
//
// Parameters:
//   - world: rotated direction of the disc
//   - origin: sphere centre
//   - up: world up used as the secondary axis
//   - baseScale: scale before the depth cue
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func InstanceMatrix(world, origin, up mgl32.Vec3, baseScale float32) mgl32.Mat4 {
	s := DepthScale(world, baseScale)
	return mgl32.Translate3D(-world.X(), -world.Y(), -world.Z()).
		Mul4(mgl32.Scale3D(s, s, s)).
		Mul4(common.TargetTo(origin, world, up))
}
