package arcball

import (
	"sync"

	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-menu/common"
)

// controllerImpl is the single implementation of Controller.
// All fields are guarded by mu; Update holds the lock for the whole frame.
type controllerImpl struct {
	mu *sync.Mutex

	pending []PointerEvent // queued by PushPointer, drained by Update
	drained []PointerEvent // reused swap buffer so draining never allocates

	mode        Mode
	orientation mgl32.Quat
	dragStart   mgl32.Quat

	rotationAxis     mgl32.Vec3
	rotationVelocity float32

	pointerActive bool
	released      bool
	lastPointer   [2]float32

	// frameRotation accumulates this frame's drag increments for the velocity sample.
	frameRotation mgl32.Quat
	sampled       bool

	// snapLocal is the snap target expressed in the sphere's local frame, so it travels with
	// the sphere while it coasts. queuedSnap holds a world-space target set mid-drag.
	snapLocal      *mgl32.Vec3
	queuedSnap     *mgl32.Vec3
	snapAngularVel float64

	viewport        common.Viewport
	trackballRadius float32

	damping               float32
	stopVelocity          float32
	dragSmoothing         float32
	snapAxis              mgl32.Vec3
	coastingSnapFrequency float32
	idleSnapFrequency     float32
	snapEngageVelocity    float32
	snapEpsilon           float32
}

// Compile-time interface compliance check
var _ Controller = &controllerImpl{}

// NewController creates a new orientation controller with sensible defaults.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerOption) Controller {
	c := &controllerImpl{
		mu:            &sync.Mutex{},
		pending:       make([]PointerEvent, 0, 16),
		drained:       make([]PointerEvent, 0, 16),
		mode:          ModeIdle,
		orientation:   mgl32.QuatIdent(),
		dragStart:     mgl32.QuatIdent(),
		frameRotation: mgl32.QuatIdent(),

		viewport:        common.Viewport{Width: 1280, Height: 720},
		trackballRadius: 1.0,

		damping:               4.0,
		stopVelocity:          0.01,
		dragSmoothing:         20.0,
		snapAxis:              mgl32.Vec3{0, 0, 1},
		coastingSnapFrequency: 4.0,
		idleSnapFrequency:     9.0,
		snapEngageVelocity:    0.6,
		snapEpsilon:           1e-4,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// --- input ---

func (c *controllerImpl) PushPointer(ev PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, ev)
}

// drain applies every queued pointer event in arrival order. Caller must hold the mutex.
func (c *controllerImpl) drain(dt float32) {
	c.pending, c.drained = c.drained[:0], c.pending
	for _, ev := range c.drained {
		switch ev.Kind {
		case PointerDown:
			c.beginDrag(ev.X, ev.Y)
		case PointerMove:
			if c.mode == ModeDragging {
				c.dragTo(ev.X, ev.Y)
			}
		case PointerUp:
			if c.mode == ModeDragging {
				c.dragTo(ev.X, ev.Y)
				c.endDrag(dt)
			}
		case PointerCancel:
			if c.mode == ModeDragging {
				c.cancelDrag()
			}
		}
	}
	c.drained = c.drained[:0]
}

// beginDrag supersedes any coasting or snapping motion. Caller must hold the mutex.
func (c *controllerImpl) beginDrag(x, y float32) {
	c.mode = ModeDragging
	c.pointerActive = true
	c.lastPointer = [2]float32{x, y}
	c.dragStart = c.orientation
	c.frameRotation = mgl32.QuatIdent()
	c.rotationVelocity = 0
	c.snapLocal = nil
	c.queuedSnap = nil
	c.snapAngularVel = 0
}

// dragTo rotates the sphere so the trackball point under the previous pointer position follows
// the pointer to (x, y). Caller must hold the mutex.
func (c *controllerImpl) dragTo(x, y float32) {
	if x == c.lastPointer[0] && y == c.lastPointer[1] {
		return
	}
	from := projectToTrackball(c.lastPointer[0], c.lastPointer[1], c.viewport, c.trackballRadius)
	to := projectToTrackball(x, y, c.viewport, c.trackballRadius)
	c.lastPointer = [2]float32{x, y}

	q := common.RotationBetween(from, to)
	c.orientation = q.Mul(c.orientation).Normalize()
	c.frameRotation = q.Mul(c.frameRotation)
}

// endDrag folds the final motion sample in and hands over to coasting on the next frame.
// Caller must hold the mutex.
func (c *controllerImpl) endDrag(dt float32) {
	if !c.sampled {
		c.sampleDrag(dt)
	}
	c.mode = ModeCoasting
	c.pointerActive = false
	c.released = true
	c.applyQueuedSnap()
}

// cancelDrag restores the pre-drag orientation and drops all motion. Caller must hold the mutex.
func (c *controllerImpl) cancelDrag() {
	c.orientation = c.dragStart
	c.frameRotation = mgl32.QuatIdent()
	c.rotationVelocity = 0
	c.mode = ModeIdle
	c.pointerActive = false
	c.released = true
	c.sampled = true
	c.applyQueuedSnap()
}

// sampleDrag converts this frame's accumulated drag rotation into filtered axis and velocity.
// Caller must hold the mutex.
func (c *controllerImpl) sampleDrag(dt float32) {
	c.sampled = true
	angle, axis := common.QuatAngleAxis(c.frameRotation)
	c.frameRotation = mgl32.QuatIdent()
	if dt <= 0 {
		return
	}

	c.rotationVelocity = math32.Max(0, common.LowPass(c.rotationVelocity, angle/dt, c.dragSmoothing, dt))
	if angle < common.Epsilon {
		return
	}
	if c.rotationAxis.Len() < common.Epsilon {
		c.rotationAxis = axis
		return
	}
	alpha := 1 - common.ExpDecay(c.dragSmoothing, dt)
	blended := c.rotationAxis.Mul(1 - alpha).Add(axis.Mul(alpha))
	if blended.Len() < common.Epsilon {
		// reversal: the old and new axes cancelled out
		c.rotationAxis = axis
		return
	}
	c.rotationAxis = blended.Normalize()
}

// --- frame advance ---

func (c *controllerImpl) Update(deltaTime float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if deltaTime < 0 || !common.IsFinite(deltaTime) {
		deltaTime = 0
	}
	c.sampled = false
	c.released = false
	c.drain(deltaTime)

	switch c.mode {
	case ModeDragging:
		c.sampleDrag(deltaTime)
	case ModeCoasting:
		if !c.sampled {
			c.coast(deltaTime)
		}
	case ModeSnapping:
		c.snap(deltaTime, c.idleSnapFrequency)
	case ModeIdle:
		if c.snapLocal != nil && c.snapAngle() > c.snapEpsilon {
			c.mode = ModeSnapping
			c.snap(deltaTime, c.idleSnapFrequency)
		}
	}
}

// coast spins the sphere around the last drag axis while the velocity decays exponentially.
// Caller must hold the mutex.
func (c *controllerImpl) coast(dt float32) {
	c.rotationVelocity *= common.ExpDecay(c.damping, dt)
	if c.rotationVelocity < c.stopVelocity {
		c.rotationVelocity = 0
		if c.snapLocal != nil && c.snapAngle() > c.snapEpsilon {
			// the spring keeps the velocity built up by the coasting pull
			c.mode = ModeSnapping
			c.snap(dt, c.idleSnapFrequency)
		} else {
			c.snapAngularVel = 0
			c.mode = ModeIdle
		}
		return
	}

	if c.rotationAxis.Len() > common.Epsilon {
		step := mgl32.QuatRotate(c.rotationVelocity*dt, c.rotationAxis)
		c.orientation = step.Mul(c.orientation).Normalize()
	}

	if c.snapLocal != nil && c.rotationVelocity < c.snapEngageVelocity {
		c.pullTowardSnap(dt, c.coastingSnapFrequency)
	}
}

// snap runs one idle snapping step, reporting the snap motion as the rotation axis and velocity.
// Caller must hold the mutex.
func (c *controllerImpl) snap(dt float32, frequency float32) {
	if c.snapLocal == nil {
		c.mode = ModeIdle
		c.rotationVelocity = 0
		return
	}
	step, axis, done := c.pullTowardSnap(dt, frequency)
	if done {
		c.mode = ModeIdle
		c.rotationVelocity = 0
		return
	}
	if dt > 0 {
		c.rotationVelocity = step / dt
		c.rotationAxis = axis
	}
}

// snapAngle returns the angle between the world-space snap target and the snap axis.
// Caller must hold the mutex and ensure snapLocal is set.
func (c *controllerImpl) snapAngle() float32 {
	world := c.orientation.Rotate(*c.snapLocal)
	return math32.Atan2(world.Cross(c.snapAxis).Len(), world.Dot(c.snapAxis))
}

// pullTowardSnap advances a critically damped spring on the remaining snap angle and rotates the
// sphere by the amount the spring closed. Returns the angle rotated this step, the axis used, and
// whether the target is now aligned. Caller must hold the mutex and ensure snapLocal is set.
func (c *controllerImpl) pullTowardSnap(dt float32, frequency float32) (float32, mgl32.Vec3, bool) {
	world := c.orientation.Rotate(*c.snapLocal)
	cross := world.Cross(c.snapAxis)
	sinAngle := cross.Len()
	angle := math32.Atan2(sinAngle, world.Dot(c.snapAxis))

	if angle <= c.snapEpsilon {
		c.orientation = common.RotationBetween(world, c.snapAxis).Mul(c.orientation).Normalize()
		c.snapAngularVel = 0
		return angle, mgl32.Vec3{}, true
	}

	var axis mgl32.Vec3
	if sinAngle > common.Epsilon {
		axis = cross.Mul(1 / sinAngle)
	} else {
		// antiparallel: any axis perpendicular to the snap axis works
		axis = c.snapAxis.Cross(mgl32.Vec3{1, 0, 0})
		if axis.Len() < common.Epsilon {
			axis = c.snapAxis.Cross(mgl32.Vec3{0, 1, 0})
		}
		axis = axis.Normalize()
	}

	if dt <= 0 {
		return 0, axis, false
	}

	spring := harmonica.NewSpring(float64(dt), float64(frequency), 1.0)
	next, vel := spring.Update(float64(angle), c.snapAngularVel, 0)
	if next < 0 {
		next, vel = 0, 0
	}
	c.snapAngularVel = vel

	step := angle - float32(next)
	if step <= 0 {
		return 0, axis, false
	}
	c.orientation = mgl32.QuatRotate(step, axis).Mul(c.orientation).Normalize()
	return step, axis, false
}

// --- snap target ---

func (c *controllerImpl) SetSnapTarget(dir mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if dir.Len() < common.Epsilon {
		return
	}
	dir = dir.Normalize()
	if c.mode == ModeDragging {
		c.queuedSnap = &dir
		return
	}
	c.setSnapWorld(dir)
}

// setSnapWorld stores a world-space snap direction in the sphere's local frame.
// Caller must hold the mutex.
func (c *controllerImpl) setSnapWorld(dir mgl32.Vec3) {
	local := c.orientation.Conjugate().Rotate(dir)
	c.snapLocal = &local
	c.snapAngularVel = 0
}

// applyQueuedSnap promotes a target queued during the drag. Caller must hold the mutex.
func (c *controllerImpl) applyQueuedSnap() {
	if c.queuedSnap == nil {
		return
	}
	c.setSnapWorld(*c.queuedSnap)
	c.queuedSnap = nil
}

func (c *controllerImpl) ClearSnapTarget() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapLocal = nil
	c.queuedSnap = nil
	c.snapAngularVel = 0
	if c.mode == ModeSnapping {
		c.mode = ModeIdle
		c.rotationVelocity = 0
	}
}

func (c *controllerImpl) SnapTarget() (mgl32.Vec3, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapLocal == nil {
		return mgl32.Vec3{}, false
	}
	return c.orientation.Rotate(*c.snapLocal), true
}

// --- accessors ---

func (c *controllerImpl) Orientation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

func (c *controllerImpl) DragStartOrientation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragStart
}

func (c *controllerImpl) RotationAxis() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotationAxis
}

func (c *controllerImpl) RotationVelocity() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotationVelocity
}

func (c *controllerImpl) PointerActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pointerActive
}

func (c *controllerImpl) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *controllerImpl) Released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

func (c *controllerImpl) State() OrientationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := OrientationState{
		Orientation:      c.orientation,
		RotationAxis:     c.rotationAxis,
		RotationVelocity: c.rotationVelocity,
		PointerActive:    c.pointerActive,
		Mode:             c.mode,
	}
	if c.snapLocal != nil {
		world := c.orientation.Rotate(*c.snapLocal)
		s.SnapTarget = &world
	}
	return s
}

func (c *controllerImpl) SetViewport(width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = common.Viewport{Width: width, Height: height}
}

func (c *controllerImpl) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = c.pending[:0]
	c.mode = ModeIdle
	c.orientation = mgl32.QuatIdent()
	c.dragStart = mgl32.QuatIdent()
	c.frameRotation = mgl32.QuatIdent()
	c.rotationAxis = mgl32.Vec3{}
	c.rotationVelocity = 0
	c.pointerActive = false
	c.snapLocal = nil
	c.queuedSnap = nil
	c.snapAngularVel = 0
}
