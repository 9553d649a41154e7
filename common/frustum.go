package common

import "github.com/go-gl/mathgl/mgl32"

// Plane is the plane n·p + d = 0 with a unit normal n.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// SignedDistance returns how far p lies on the normal side of the plane.
//
// Parameters:
//   - p: the point to test
//
// Returns:
//   - float32: signed distance, positive inside
func (pl Plane) SignedDistance(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.Distance
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// ExtractFrustum extracts frustum planes from a projection * view matrix using the Gribb/Hartmann
// method.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined view-projection matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)

	rows := [6]mgl32.Vec4{
		FrustumLeft:   r3.Add(r0),
		FrustumRight:  r3.Sub(r0),
		FrustumBottom: r3.Add(r1),
		FrustumTop:    r3.Sub(r1),
		FrustumNear:   r3.Add(r2),
		FrustumFar:    r3.Sub(r2),
	}

	var f Frustum
	for i, r := range rows {
		n := r.Vec3()
		d := r.W()
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
			d /= l
		}
		f.Planes[i] = Plane{Normal: n, Distance: d}
	}
	return f
}

// ContainsSphere reports whether a sphere is at least partly inside the frustum.
//
// Parameters:
//   - center: sphere centre in world space
//   - radius: sphere radius
//
// Returns:
//   - bool: false only when the sphere lies fully outside some plane
func (f Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, pl := range f.Planes {
		if pl.SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}
