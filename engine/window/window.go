package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-menu/common"
	"github.com/Carmen-Shannon/oxy-menu/engine/arcball"
)

// Window provides platform windowing and input event handling.
// Mouse input is delivered as arcball pointer events in viewport-centred coordinates.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetPointerCallback sets the callback for left-button drags. Presses, moves while pressed
	// and releases arrive as PointerDown, PointerMove and PointerUp. Escape during a drag, or the
	// window losing focus, arrives as PointerCancel.
	//
	// Parameters:
	//   - callback: function receiving the pointer event
	SetPointerCallback(callback func(ev arcball.PointerEvent))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Viewport returns the current framebuffer size.
	//
	// Returns:
	//   - common.Viewport: the framebuffer size in pixels
	Viewport() common.Viewport

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	title string

	minWidth  int
	minHeight int
	maxWidth  int
	maxHeight int

	// width and height track the framebuffer, which differs from the window size on high-DPI displays.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// dragging is true between a left-button press and its release or cancel.
	dragging bool

	onUpdate  func()
	onResize  func(width, height int)
	onPointer func(ev arcball.PointerEvent)
	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "oxy-menu",
		minWidth:  320,
		minHeight: 240,
		maxWidth:  3840,
		maxHeight: 2160,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetPointerCallback(callback func(ev arcball.PointerEvent)) {
	w.onPointer = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Viewport() common.Viewport {
	return common.Viewport{Width: float32(w.width), Height: float32(w.height)}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// emitPointer converts a framebuffer-space cursor position and forwards it.
func (w *engineWindow) emitPointer(kind arcball.PointerKind, x, y float32) {
	if w.onPointer == nil {
		return
	}
	cx, cy := w.Viewport().ToCentered(x, y)
	w.onPointer(arcball.PointerEvent{Kind: kind, X: cx, Y: cy})
}

// cancelDrag ends an active drag with PointerCancel. It reports whether a drag was active.
func (w *engineWindow) cancelDrag() bool {
	if !w.dragging {
		return false
	}
	w.dragging = false
	if w.onPointer != nil {
		w.onPointer(arcball.Cancel())
	}
	return true
}
