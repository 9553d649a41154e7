package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/smartystreets/goconvey/convey"
)

// closeTo reports whether a and b lie within eps of each other.
func closeTo(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() < eps
}

func TestViewport(t *testing.T) {
	Convey("Given a 800x600 viewport", t, func() {
		vp := Viewport{Width: 800, Height: 600}

		So(vp.Valid(), ShouldBeTrue)
		So(vp.Aspect(), ShouldAlmostEqual, 800.0/600.0, 1e-6)

		Convey("the window centre maps to the origin", func() {
			x, y := vp.ToCentered(400, 300)
			So(x, ShouldEqual, float32(0))
			So(y, ShouldEqual, float32(0))
		})

		Convey("the top-left corner maps to negative x and positive y", func() {
			x, y := vp.ToCentered(0, 0)
			So(x, ShouldEqual, float32(-400))
			So(y, ShouldEqual, float32(300))
		})
	})

	Convey("A zero-height viewport is invalid and reports aspect 1", t, func() {
		vp := Viewport{Width: 800}
		So(vp.Valid(), ShouldBeFalse)
		So(vp.Aspect(), ShouldEqual, float32(1))
	})
}

func TestScalarHelpers(t *testing.T) {
	Convey("ExpDecay", t, func() {
		So(ExpDecay(0, 1), ShouldEqual, float32(1))
		So(ExpDecay(1, 0), ShouldEqual, float32(1))
		So(ExpDecay(2, 0.5), ShouldAlmostEqual, math.Exp(-1), 1e-6)
	})

	Convey("LowPass converges on the sample", t, func() {
		v := float32(0)
		for range 600 {
			v = LowPass(v, 10, 20, 1.0/60.0)
		}
		So(v, ShouldAlmostEqual, 10, 1e-3)
	})

	Convey("Clamp and IsFinite", t, func() {
		So(Clamp(5, 0, 1), ShouldEqual, float32(1))
		So(Clamp(-5, 0, 1), ShouldEqual, float32(0))
		So(Clamp(0.5, 0, 1), ShouldEqual, float32(0.5))
		So(IsFinite(1), ShouldBeTrue)
		So(IsFinite(float32(math.Inf(1))), ShouldBeFalse)
		So(IsFinite(float32(math.NaN())), ShouldBeFalse)
	})

	Convey("Coalesce picks the first non-zero value", t, func() {
		So(Coalesce("", "b", "c"), ShouldEqual, "b")
		So(Coalesce(0, 0), ShouldEqual, 0)
	})
}

func TestRotationHelpers(t *testing.T) {
	Convey("RotationBetween", t, func() {
		Convey("rotates a onto b", func() {
			a := mgl32.Vec3{1, 0, 0}
			b := mgl32.Vec3{0, 1, 1}
			q := RotationBetween(a, b)
			So(closeTo(q.Rotate(a), b.Normalize(), 1e-5), ShouldBeTrue)
		})

		Convey("is the identity for degenerate input", func() {
			So(RotationBetween(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}), ShouldResemble, mgl32.QuatIdent())
			So(RotationBetween(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 2}), ShouldResemble, mgl32.QuatIdent())
			So(RotationBetween(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, -1}), ShouldResemble, mgl32.QuatIdent())
		})
	})

	Convey("QuatAngleAxis recovers angle and axis on the short way round", t, func() {
		axis := mgl32.Vec3{0, 1, 0}
		q := mgl32.QuatRotate(0.75, axis)

		angle, got := QuatAngleAxis(q)
		So(angle, ShouldAlmostEqual, 0.75, 1e-5)
		So(closeTo(got, axis, 1e-5), ShouldBeTrue)

		angle, got = QuatAngleAxis(mgl32.Quat{W: -q.W, V: q.V.Mul(-1)})
		So(angle, ShouldAlmostEqual, 0.75, 1e-5)
		So(closeTo(got, axis, 1e-5), ShouldBeTrue)

		angle, got = QuatAngleAxis(mgl32.QuatIdent())
		So(angle, ShouldEqual, float32(0))
		So(got, ShouldResemble, mgl32.Vec3{})
	})

	Convey("TargetTo", t, func() {
		eye := mgl32.Vec3{0, 0, 2}
		m := TargetTo(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

		So(m.Col(3).Vec3(), ShouldResemble, eye)
		So(closeTo(m.Col(2).Vec3(), mgl32.Vec3{0, 0, 1}, 1e-6), ShouldBeTrue)
		So(closeTo(m.Col(1).Vec3(), mgl32.Vec3{0, 1, 0}, 1e-6), ShouldBeTrue)

		Convey("falls back when up is parallel to the facing axis", func() {
			m := TargetTo(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
			So(m.Col(0).Vec3().Len(), ShouldAlmostEqual, 1, 1e-6)
			So(m.Col(0).Vec3().Dot(m.Col(2).Vec3()), ShouldAlmostEqual, 0, 1e-6)
		})
	})
}

func TestFrustum(t *testing.T) {
	Convey("Given a camera at +5 looking at the origin", t, func() {
		proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 20)
		view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
		f := ExtractFrustum(proj.Mul4(view))

		for _, pl := range f.Planes {
			So(pl.Normal.Len(), ShouldAlmostEqual, 1, 1e-5)
		}

		So(f.ContainsSphere(mgl32.Vec3{}, 0.1), ShouldBeTrue)
		So(f.ContainsSphere(mgl32.Vec3{0, 0, 10}, 0.1), ShouldBeFalse)
		So(f.ContainsSphere(mgl32.Vec3{0, 0, -30}, 0.1), ShouldBeFalse)
		So(f.ContainsSphere(mgl32.Vec3{20, 0, 0}, 0.1), ShouldBeFalse)

		Convey("a sphere straddling a side plane still counts", func() {
			// the side plane crosses x ≈ 2.887 at z = 0
			So(f.ContainsSphere(mgl32.Vec3{3.2, 0, 0}, 0.5), ShouldBeTrue)
			So(f.ContainsSphere(mgl32.Vec3{3.2, 0, 0}, 0.1), ShouldBeFalse)
		})
	})
}
