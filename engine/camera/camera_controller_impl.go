package camera

import (
	"sync"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-menu/common"
)

// cameraControllerImpl is the zoom controller. The distance follows a harmonica spring whose goal
// is the resting distance plus a pull-back proportional to angular speed.
type cameraControllerImpl struct {
	mu *sync.Mutex

	target mgl32.Vec3

	distance       float32
	distanceVel    float64
	targetDistance float32

	baseDistance float32
	zoomFactor   float32
	dragPullback float32
	maxPullback  float32
	frequency    float64
	dampingRatio float64
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a zoom controller resting at the base distance.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:           &sync.Mutex{},
		baseDistance: 3.0,
		zoomFactor:   1.2,
		dragPullback: 2.5,
		maxPullback:  8.0,
		frequency:    6.0,
		dampingRatio: 1.0,
	}

	for _, option := range options {
		option(cc)
	}

	cc.distance = cc.baseDistance
	cc.targetDistance = cc.baseDistance
	return cc
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target.Add(mgl32.Vec3{0, 0, cc.distance})
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) Distance() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.distance
}

func (cc *cameraControllerImpl) TargetDistance() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.targetDistance
}

func (cc *cameraControllerImpl) BaseDistance() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.baseDistance
}

func (cc *cameraControllerImpl) SetBaseDistance(distance float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if distance <= 0 || !common.IsFinite(distance) {
		return
	}
	cc.baseDistance = distance
}

func (cc *cameraControllerImpl) Update(deltaTime, velocity float32, dragging bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if deltaTime <= 0 || !common.IsFinite(deltaTime) {
		return
	}
	if !common.IsFinite(velocity) || velocity < 0 {
		velocity = 0
	}

	pull := velocity * cc.zoomFactor
	if dragging {
		pull += cc.dragPullback
	}
	cc.targetDistance = cc.baseDistance + common.Clamp(pull, 0, cc.maxPullback)

	// harmonica bakes dt into its coefficients, so the spring follows the frame's real dt.
	spring := harmonica.NewSpring(float64(deltaTime), cc.frequency, cc.dampingRatio)
	pos, vel := spring.Update(float64(cc.distance), cc.distanceVel, float64(cc.targetDistance))
	cc.distance, cc.distanceVel = float32(pos), vel
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.distance = cc.baseDistance
	cc.targetDistance = cc.baseDistance
	cc.distanceVel = 0
}
