package arcball

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-menu/common"
)

// projectToTrackball maps a centred pointer position onto Bell's virtual trackball: a sphere of
// the given radius inside r/√2 of the centre, and the hyperbolic sheet z = r²/(2d) beyond it, so
// drags that leave the sphere's silhouette still rotate smoothly. Coordinates are normalized by
// half the viewport's shorter side. An invalid viewport yields the zero vector, which callers treat
// as "no rotation".
func projectToTrackball(x, y float32, vp common.Viewport, radius float32) mgl32.Vec3 {
	if !vp.Valid() || radius <= 0 {
		return mgl32.Vec3{}
	}
	half := math32.Min(vp.Width, vp.Height) * 0.5
	nx := x / half
	ny := y / half

	rSq := radius * radius
	dSq := nx*nx + ny*ny

	var z float32
	if dSq <= rSq*0.5 {
		z = math32.Sqrt(rSq - dSq)
	} else {
		z = rSq * 0.5 / math32.Sqrt(dSq)
	}
	return mgl32.Vec3{nx, ny, z}
}
