// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Viewport is the pixel size of the drawable area the pointer moves over.
// Pointer coordinates handed to the engine are relative to its centre.
type Viewport struct {
	// Width is the drawable width in pixels.
	Width float32
	// Height is the drawable height in pixels.
	Height float32
}

// Valid reports whether both dimensions are positive and finite.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0 && IsFinite(v.Width) && IsFinite(v.Height)
}

// Aspect returns width / height, or 1 for an invalid viewport.
//
// Returns:
//   - float32: the aspect ratio
func (v Viewport) Aspect() float32 {
	if !v.Valid() {
		return 1
	}
	return v.Width / v.Height
}

// ToCentered converts window coordinates (origin top-left, +Y down) into viewport-centred
// coordinates (origin at the centre, +Y up) as consumed by the arcball controller.
//
// Parameters:
//   - x, y: window-space pointer position in pixels
//
// Returns:
//   - cx, cy: centred pointer position in pixels
func (v Viewport) ToCentered(x, y float32) (cx, cy float32) {
	return x - v.Width*0.5, v.Height*0.5 - y
}
