package arcball

import "fmt"

// PointerKind identifies the type of a pointer event.
type PointerKind int

const (
	// PointerDown starts a drag at the event position.
	PointerDown PointerKind = iota
	// PointerMove updates the pointer position; it only rotates while dragging.
	PointerMove
	// PointerUp ends a drag and lets the sphere coast.
	PointerUp
	// PointerCancel aborts a drag and restores the orientation captured at pointer-down.
	PointerCancel
)

// String returns the kind name for logging.
func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerKind(%d)", int(k))
	}
}

// PointerEvent is a single pointer sample. X and Y are pixels relative to the viewport centre,
// +X to the right and +Y up (see common.Viewport.ToCentered).
type PointerEvent struct {
	Kind PointerKind
	X, Y float32
}

// Down is shorthand for a PointerDown event at (x, y).
func Down(x, y float32) PointerEvent { return PointerEvent{Kind: PointerDown, X: x, Y: y} }

// Move is shorthand for a PointerMove event at (x, y).
func Move(x, y float32) PointerEvent { return PointerEvent{Kind: PointerMove, X: x, Y: y} }

// Up is shorthand for a PointerUp event at (x, y).
func Up(x, y float32) PointerEvent { return PointerEvent{Kind: PointerUp, X: x, Y: y} }

// Cancel is shorthand for a PointerCancel event.
func Cancel() PointerEvent { return PointerEvent{Kind: PointerCancel} }
