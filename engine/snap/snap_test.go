package snap

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/Carmen-Shannon/oxy-menu/engine/geodesic"
)

// closeTo reports whether a and b lie within eps of each other.
func closeTo(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() < eps
}

func icosahedronDirections(t *testing.T) []mgl32.Vec3 {
	m, err := geodesic.Build(0, 1)
	if err != nil {
		t.Fatalf("build icosahedron: %v", err)
	}
	return m.Directions()
}

func TestNearestIndex(t *testing.T) {
	dirs := icosahedronDirections(t)

	Convey("Given the icosahedron directions", t, func() {
		Convey("identity orientation and +Z picks the highest vertex, lowest index on ties", func() {
			i, err := NearestIndex(dirs, mgl32.Vec3{0, 0, 1}, mgl32.QuatIdent())
			So(err, ShouldBeNil)
			So(i, ShouldEqual, 4)

			maxZ := float32(-2)
			for _, d := range dirs {
				maxZ = math32.Max(maxZ, d.Z())
			}
			So(dirs[i].Z(), ShouldEqual, maxZ)
		})

		Convey("the nearest direction is a maximum of the dot product", func() {
			q := mgl32.QuatRotate(1.1, mgl32.Vec3{0.3, 0.8, -0.2}.Normalize())
			normal := mgl32.Vec3{0, 0, 1}
			world, err := Nearest(dirs, normal, q)
			So(err, ShouldBeNil)
			So(world.Len(), ShouldAlmostEqual, 1, 1e-5)
			for _, d := range dirs {
				So(q.Rotate(d).Dot(normal), ShouldBeLessThanOrEqualTo, world.Dot(normal)+1e-5)
			}
		})

		Convey("a rotation that brings a vertex to the front selects it", func() {
			target := dirs[9]
			q := mgl32.QuatBetweenVectors(target, mgl32.Vec3{0, 0, 1})
			i, err := NearestIndex(dirs, mgl32.Vec3{0, 0, 1}, q)
			So(err, ShouldBeNil)
			So(i, ShouldEqual, 9)

			world, _ := Nearest(dirs, mgl32.Vec3{0, 0, 1}, q)
			So(closeTo(world, mgl32.Vec3{0, 0, 1}, 1e-4), ShouldBeTrue)
		})

		Convey("a zero normal falls back to the first direction", func() {
			i, err := NearestIndex(dirs, mgl32.Vec3{}, mgl32.QuatIdent())
			So(err, ShouldBeNil)
			So(i, ShouldEqual, 0)
		})
	})

	Convey("An empty direction list is an error", t, func() {
		_, err := NearestIndex(nil, mgl32.Vec3{0, 0, 1}, mgl32.QuatIdent())
		So(errors.Is(err, ErrNoDirections), ShouldBeTrue)
		_, err = Nearest([]mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, mgl32.QuatIdent())
		So(errors.Is(err, ErrNoDirections), ShouldBeTrue)
	})
}

func TestResolver(t *testing.T) {
	Convey("A resolver owns a copy of its directions", t, func() {
		dirs := icosahedronDirections(t)
		r, err := NewResolver(dirs)
		So(err, ShouldBeNil)
		So(r.Len(), ShouldEqual, 12)

		dirs[4] = mgl32.Vec3{0, 0, -1}
		i, err := r.NearestIndex(mgl32.Vec3{0, 0, 1}, mgl32.QuatIdent())
		So(err, ShouldBeNil)
		So(i, ShouldEqual, 4)

		_, err = NewResolver(nil)
		So(err, ShouldEqual, ErrNoDirections)
	})
}
