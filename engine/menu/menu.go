// Package menu wires the geodesic sphere, the orientation controller, the snap resolver, the
// instance pipeline and the zoom camera into one per-frame step.
package menu

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-menu/common"
	"github.com/Carmen-Shannon/oxy-menu/engine/arcball"
	"github.com/Carmen-Shannon/oxy-menu/engine/camera"
	"github.com/Carmen-Shannon/oxy-menu/engine/geodesic"
	"github.com/Carmen-Shannon/oxy-menu/engine/instancer"
	"github.com/Carmen-Shannon/oxy-menu/engine/snap"
)

// ErrClosed is returned by Frame after Close.
var ErrClosed = errors.New("menu: closed")

// Menu is the interactive sphere. PushPointer may be called from any goroutine; Frame must be
// called from the single frame goroutine.
type Menu interface {
	// PushPointer queues a pointer event for the next Frame.
	//
	// Parameters:
	//   - ev: the pointer event in viewport-centred coordinates
	PushPointer(ev arcball.PointerEvent)

	// Frame advances the menu by one frame: drain input and advance the orientation, resolve the
	// snap target if a drag ended, recompute the instance matrices, then ease the camera.
	//
	// Parameters:
	//   - deltaTime: elapsed frame time in seconds
	//
	// Returns:
	//   - error: ErrClosed after Close
	Frame(deltaTime float32) error

	// SetViewport updates the trackball span and the camera aspect.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	SetViewport(width, height int)

	// Mesh returns the geodesic sphere.
	//
	// Returns:
	//   - *geodesic.Mesh: the sphere mesh
	Mesh() *geodesic.Mesh

	// Disc returns the base disc every instance draws.
	//
	// Returns:
	//   - *geodesic.DiscMesh: the disc mesh
	Disc() *geodesic.DiscMesh

	// Matrices returns the instance matrix buffer written by the last Frame.
	//
	// Returns:
	//   - []mgl32.Mat4: one column-major matrix per disc
	Matrices() []mgl32.Mat4

	// InstanceBytes returns the instance matrix buffer as bytes for GPU upload.
	//
	// Returns:
	//   - []byte: view sharing memory with Matrices
	InstanceBytes() []byte

	// InstanceCount returns the number of disc instances.
	//
	// Returns:
	//   - int: instance count
	InstanceCount() int

	// VisibleCount returns how many discs from the last Frame intersect the camera frustum.
	//
	// Returns:
	//   - int: number of discs a draw call would keep after culling
	VisibleCount() int

	// Uniform returns the per-frame camera and motion uniform.
	//
	// Returns:
	//   - GPUFrameUniform: the packed uniform
	Uniform() GPUFrameUniform

	// State returns the orientation controller's snapshot.
	//
	// Returns:
	//   - arcball.OrientationState: the snapshot
	State() arcball.OrientationState

	// Controller returns the orientation controller.
	//
	// Returns:
	//   - arcball.Controller: the controller
	Controller() arcball.Controller

	// Camera returns the zoom camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Items returns a copy of the menu items.
	//
	// Returns:
	//   - []Item: the items
	Items() []Item

	// ItemAt returns the item drawn on an instance slot.
	//
	// Parameters:
	//   - slot: instance index
	//
	// Returns:
	//   - Item: the item
	//   - bool: false when there are no items or the slot is out of range
	ItemAt(slot int) (Item, bool)

	// ActiveIndex returns the instance slot that is, or will settle, in front of the camera.
	//
	// Returns:
	//   - int: the active slot
	ActiveIndex() int

	// ActiveItem returns the item on the active slot.
	//
	// Returns:
	//   - Item: the active item
	//   - bool: false when there are no items
	ActiveItem() (Item, bool)

	// Moving reports whether the sphere is being dragged, coasting or snapping.
	//
	// Returns:
	//   - bool: true while in motion
	Moving() bool

	// OnActiveItem registers a callback fired when the active slot changes. It runs on the goroutine
	// that called Frame or Reset, after the menu lock is released, so it may call back into the menu.
	//
	// Parameters:
	//   - callback: receives the new slot and its item (zero Item when there are no items)
	OnActiveItem(callback func(slot int, item Item))

	// OnMovingChange registers a callback fired when Moving changes, under the same rules as
	// OnActiveItem.
	//
	// Parameters:
	//   - callback: receives the new moving state
	OnMovingChange(callback func(moving bool))

	// Reset returns the sphere to the identity orientation and re-settles the active slot.
	Reset()

	// Close releases the instance pipeline's workers.
	Close()
}

type menuImpl struct {
	mu *sync.Mutex

	// construction parameters, applied by options
	levels             int
	radius             float32
	discSegments       int
	discRadius         float32
	viewport           [2]int
	items              []Item
	controllerOptions  []arcball.ControllerOption
	pipelineOptions    []instancer.PipelineOption
	cameraControllerOp []camera.CameraControllerOption
	cam                camera.Camera
	debug              bool

	mesh       *geodesic.Mesh
	disc       *geodesic.DiscMesh
	controller arcball.Controller
	resolver   snap.Resolver
	pipeline   instancer.Pipeline
	zoom       camera.CameraController

	activeIndex int
	moving      bool
	closed      bool

	onActiveItem   func(slot int, item Item)
	onMovingChange func(moving bool)

	// callbacks queued under the mutex, run by dispatch once it is released
	pending []func()
}

var _ Menu = &menuImpl{}

// NewMenu builds the sphere and its collaborators and settles the initial active slot.
//
// Parameters:
//   - options: functional options to configure the menu
//
// Returns:
//   - Menu: the menu
//   - error: a wrapped geodesic or instancer error for invalid configuration
func NewMenu(options ...MenuOption) (Menu, error) {
	m := &menuImpl{
		mu:           &sync.Mutex{},
		levels:       1,
		radius:       2,
		discSegments: 32,
		discRadius:   1,
		viewport:     [2]int{1280, 720},
	}
	for _, option := range options {
		option(m)
	}

	mesh, err := geodesic.Build(m.levels, m.radius)
	if err != nil {
		return nil, fmt.Errorf("menu: build sphere: %w", err)
	}
	disc, err := geodesic.Disc(m.discSegments, m.discRadius)
	if err != nil {
		return nil, fmt.Errorf("menu: build disc: %w", err)
	}
	resolver, err := snap.NewResolver(mesh.Directions())
	if err != nil {
		return nil, fmt.Errorf("menu: snap resolver: %w", err)
	}
	pipeline, err := instancer.NewPipeline(mesh.Vertices(), m.pipelineOptions...)
	if err != nil {
		return nil, fmt.Errorf("menu: instance pipeline: %w", err)
	}

	if m.cam == nil {
		m.zoom = camera.NewCameraController(m.cameraControllerOp...)
		m.cam = camera.NewCamera(camera.WithController(m.zoom))
	} else {
		m.zoom = m.cam.Controller()
	}

	w, h := float32(m.viewport[0]), float32(m.viewport[1])
	if h > 0 {
		m.cam.SetAspect(w / h)
	}

	controllerOptions := append([]arcball.ControllerOption{
		arcball.WithViewport(w, h),
		arcball.WithSnapAxis(m.cam.SnapNormal()),
	}, m.controllerOptions...)

	m.mesh = mesh
	m.disc = disc
	m.resolver = resolver
	m.pipeline = pipeline
	m.controller = arcball.NewController(controllerOptions...)
	m.activeIndex = -1

	m.settleActive()
	if err := m.pipeline.Recompute(m.controller.Orientation()); err != nil {
		m.pipeline.Close()
		return nil, fmt.Errorf("menu: initial instances: %w", err)
	}

	if m.debug {
		log.Printf("[Menu] built sphere: levels=%d radius=%.2f instances=%d items=%d active=%d",
			m.levels, m.radius, pipeline.Count(), len(m.items), m.activeIndex)
	}
	return m, nil
}

func (m *menuImpl) PushPointer(ev arcball.PointerEvent) {
	m.controller.PushPointer(ev)
}

func (m *menuImpl) Frame(deltaTime float32) error {
	err := m.frame(deltaTime)
	m.dispatch()
	return err
}

func (m *menuImpl) frame(deltaTime float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.controller.Update(deltaTime)
	if m.controller.Released() {
		m.settleActive()
	}

	orientation := m.controller.Orientation()
	if err := m.pipeline.Recompute(orientation); err != nil {
		return fmt.Errorf("menu: recompute instances: %w", err)
	}

	if m.zoom != nil {
		m.zoom.Update(deltaTime, m.controller.RotationVelocity(), m.controller.PointerActive())
	}
	m.cam.Update()

	m.trackMoving()
	return nil
}

// settleActive resolves the slot nearest the camera normal, hands it to the controller as the snap
// target and publishes it as the active slot. Caller must hold the mutex (or be constructing).
func (m *menuImpl) settleActive() {
	orientation := m.controller.Orientation()
	normal := m.cam.SnapNormal()

	index, err := m.resolver.NearestIndex(normal, orientation)
	if err != nil {
		// the resolver is built from a non-empty mesh
		return
	}
	target, _ := m.resolver.Nearest(normal, orientation)
	m.controller.SetSnapTarget(target)
	m.setActive(index)
}

func (m *menuImpl) setActive(index int) {
	if index == m.activeIndex {
		return
	}
	m.activeIndex = index
	item, _ := m.itemAt(index)
	if m.debug {
		log.Printf("[Menu] active slot %d: %q", index, item.Title)
	}
	if callback := m.onActiveItem; callback != nil {
		m.pending = append(m.pending, func() { callback(index, item) })
	}
}

func (m *menuImpl) trackMoving() {
	moving := m.controller.Mode() != arcball.ModeIdle
	if moving == m.moving {
		return
	}
	m.moving = moving
	if m.debug {
		log.Printf("[Menu] moving=%t", moving)
	}
	if callback := m.onMovingChange; callback != nil {
		m.pending = append(m.pending, func() { callback(moving) })
	}
}

// dispatch runs the callbacks queued during the last locked section. Callbacks run without the
// mutex held, so they may call back into the menu.
func (m *menuImpl) dispatch() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

func (m *menuImpl) itemAt(slot int) (Item, bool) {
	if slot >= m.pipeline.Count() {
		return Item{}, false
	}
	i := itemForSlot(slot, len(m.items))
	if i < 0 {
		return Item{}, false
	}
	return m.items[i], true
}

func (m *menuImpl) SetViewport(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewport = [2]int{width, height}
	m.controller.SetViewport(float32(width), float32(height))
	if height > 0 {
		m.cam.SetAspect(float32(width) / float32(height))
	}
}

func (m *menuImpl) Mesh() *geodesic.Mesh {
	return m.mesh
}

func (m *menuImpl) Disc() *geodesic.DiscMesh {
	return m.disc
}

func (m *menuImpl) Matrices() []mgl32.Mat4 {
	return m.pipeline.Matrices()
}

func (m *menuImpl) InstanceBytes() []byte {
	return m.pipeline.Bytes()
}

func (m *menuImpl) InstanceCount() int {
	return m.pipeline.Count()
}

func (m *menuImpl) VisibleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	frustum := common.ExtractFrustum(m.cam.ViewProjectionMatrix())
	visible := 0
	for _, mat := range m.pipeline.Matrices() {
		center := mat.Col(3).Vec3()
		radius := mat.Col(0).Vec3().Len() * m.discRadius
		if frustum.ContainsSphere(center, radius) {
			visible++
		}
	}
	return visible
}

func (m *menuImpl) Uniform() GPUFrameUniform {
	var position mgl32.Vec3
	if m.zoom != nil {
		position = m.zoom.Position()
	}
	return NewGPUFrameUniform(
		m.cam.ViewMatrix(),
		m.cam.ProjectionMatrix(),
		position,
		m.controller.RotationAxis(),
		m.controller.RotationVelocity(),
	)
}

func (m *menuImpl) State() arcball.OrientationState {
	return m.controller.State()
}

func (m *menuImpl) Controller() arcball.Controller {
	return m.controller
}

func (m *menuImpl) Camera() camera.Camera {
	return m.cam
}

func (m *menuImpl) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

func (m *menuImpl) ItemAt(slot int) (Item, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.itemAt(slot)
}

func (m *menuImpl) ActiveIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeIndex
}

func (m *menuImpl) ActiveItem() (Item, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.itemAt(m.activeIndex)
}

func (m *menuImpl) Moving() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.moving
}

func (m *menuImpl) OnActiveItem(callback func(slot int, item Item)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onActiveItem = callback
}

func (m *menuImpl) OnMovingChange(callback func(moving bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onMovingChange = callback
}

func (m *menuImpl) Reset() {
	m.mu.Lock()
	m.controller.Reset()
	if m.zoom != nil {
		m.zoom.Reset()
	}
	m.settleActive()
	m.trackMoving()
	m.mu.Unlock()

	m.dispatch()
}

func (m *menuImpl) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.pipeline.Close()
}
