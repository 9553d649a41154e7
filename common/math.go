package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the shared tolerance for treating float32 lengths and angles as zero.
const Epsilon float32 = 1e-6

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// ExpDecay returns the multiplicative factor exp(-rate*dt) used for frame-rate independent damping.
// The result is in (0, 1] for non-negative rate and dt.
//
// Parameters:
//   - rate: decay rate per second
//   - dt: elapsed time in seconds
//
// Returns:
//   - float32: the decay factor
func ExpDecay(rate, dt float32) float32 {
	if rate <= 0 || dt <= 0 {
		return 1
	}
	return math32.Exp(-rate * dt)
}

// LowPass blends current toward sample with a frame-rate independent smoothing factor.
//
// Parameters:
//   - current: the filtered value from the previous frame
//   - sample: the new raw sample
//   - rate: smoothing rate per second (higher follows the sample faster)
//   - dt: elapsed time in seconds
//
// Returns:
//   - float32: the new filtered value
func LowPass(current, sample, rate, dt float32) float32 {
	alpha := 1 - ExpDecay(rate, dt)
	return current + (sample-current)*alpha
}

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// QuatAngleAxis decomposes a unit quaternion into its rotation angle (radians, in [0, π])
// and unit rotation axis. The axis is zero when the rotation is (numerically) the identity.
//
// Parameters:
//   - q: the quaternion to decompose, expected to be normalized
//
// Returns:
//   - float32: rotation angle in radians
//   - mgl32.Vec3: unit rotation axis, or the zero vector for identity
func QuatAngleAxis(q mgl32.Quat) (float32, mgl32.Vec3) {
	// q and -q encode the same rotation; pick the short way round.
	if q.W < 0 {
		q = mgl32.Quat{W: -q.W, V: q.V.Mul(-1)}
	}
	sinHalf := q.V.Len()
	if sinHalf < Epsilon {
		return 0, mgl32.Vec3{}
	}
	angle := 2 * math32.Atan2(sinHalf, q.W)
	return angle, q.V.Mul(1 / sinHalf)
}

// RotationBetween returns the shortest-arc unit quaternion rotating direction a onto direction b.
// Degenerate input (a zero-length vector, or a and b parallel) yields the identity so that callers
// driven by pointer samples never halt on numeric corner cases. Antiparallel input also yields the
// identity because the rotation axis is undefined.
//
// Parameters:
//   - a: source direction (need not be normalized)
//   - b: destination direction (need not be normalized)
//
// Returns:
//   - mgl32.Quat: the rotation taking a to b
func RotationBetween(a, b mgl32.Vec3) mgl32.Quat {
	la, lb := a.Len(), b.Len()
	if la < Epsilon || lb < Epsilon {
		return mgl32.QuatIdent()
	}
	a = a.Mul(1 / la)
	b = b.Mul(1 / lb)

	axis := a.Cross(b)
	sinAngle := axis.Len()
	if sinAngle < Epsilon {
		return mgl32.QuatIdent()
	}
	angle := math32.Atan2(sinAngle, a.Dot(b))
	return mgl32.QuatRotate(angle, axis.Mul(1/sinAngle))
}

// TargetTo builds a 4x4 matrix that places an object at eye and orients its local +Z axis
// away from target, using up as the secondary axis. Unlike a view matrix this is the object's
// world transform (gl-matrix targetTo). When up is parallel to the viewing direction the world
// +Z axis is used as the secondary axis instead.
// The matrix is stored in column-major order (OpenGL/WebGPU convention).
//
// Parameters:
//   - eye: object position
//   - target: point the object's -Z axis faces
//   - up: preferred up direction
//
// Returns:
//   - mgl32.Mat4: the orientation/translation matrix
func TargetTo(eye, target, up mgl32.Vec3) mgl32.Mat4 {
	z := eye.Sub(target)
	zLen := z.Len()
	if zLen < Epsilon {
		z = mgl32.Vec3{0, 0, 1}
	} else {
		z = z.Mul(1 / zLen)
	}

	x := up.Cross(z)
	xLen := x.Len()
	if xLen < Epsilon {
		x = mgl32.Vec3{0, 0, 1}.Cross(z)
		xLen = x.Len()
		if xLen < Epsilon {
			x = mgl32.Vec3{1, 0, 0}
			xLen = 1
		}
	}
	x = x.Mul(1 / xLen)
	y := z.Cross(x)

	return mgl32.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		eye[0], eye[1], eye[2], 1,
	}
}
