package geodesic

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/smartystreets/goconvey/convey"
)

// closeTo reports whether a and b lie within eps of each other.
func closeTo(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() < eps
}

func TestBuildCounts(t *testing.T) {
	Convey("Icosphere vertex and face counts", t, func() {
		for level := 0; level <= 4; level++ {
			m, err := Build(level, 1.5)
			So(err, ShouldBeNil)
			So(m.VertexCount(), ShouldEqual, VertexCount(level))
			So(m.FaceCount(), ShouldEqual, FaceCount(level))
			So(m.Levels(), ShouldEqual, level)
		}
		So(VertexCount(0), ShouldEqual, 12)
		So(VertexCount(1), ShouldEqual, 42)
		So(VertexCount(2), ShouldEqual, 162)
		So(FaceCount(1), ShouldEqual, 80)
	})
}

func TestBuildRadius(t *testing.T) {
	Convey("Every vertex lies on the sphere", t, func() {
		for _, radius := range []float32{0.5, 1, 2, 37.25} {
			for level := 0; level <= 4; level++ {
				m, err := Build(level, radius)
				So(err, ShouldBeNil)
				for _, v := range m.Vertices() {
					So(math32.Abs(v.Len()-radius)/radius, ShouldBeLessThan, 1e-5)
				}
			}
		}
	})
}

func TestBuildDeduplication(t *testing.T) {
	Convey("Subdivision shares midpoints between adjacent faces", t, func() {
		m, err := Build(1, 1)
		So(err, ShouldBeNil)
		So(m.VertexCount(), ShouldEqual, 42)

		Convey("no two vertices coincide", func() {
			for level := 0; level <= 3; level++ {
				mesh, err := Build(level, 1)
				So(err, ShouldBeNil)
				vs := mesh.Vertices()
				minDist := float32(math32.MaxFloat32)
				for i := range vs {
					for j := i + 1; j < len(vs); j++ {
						minDist = math32.Min(minDist, vs[i].Sub(vs[j]).Len())
					}
				}
				So(minDist, ShouldBeGreaterThan, 1e-6)
			}
		})

		Convey("every edge is shared by exactly two faces", func() {
			mesh, err := Build(2, 1)
			So(err, ShouldBeNil)
			edges := make(map[edgeKey]int)
			for _, f := range mesh.Faces() {
				edges[newEdgeKey(f[0], f[1])]++
				edges[newEdgeKey(f[1], f[2])]++
				edges[newEdgeKey(f[2], f[0])]++
			}
			// Euler: E = V + F - 2 for a closed genus-0 surface
			So(len(edges), ShouldEqual, mesh.VertexCount()+mesh.FaceCount()-2)
			for _, n := range edges {
				So(n, ShouldEqual, 2)
			}
		})
	})
}

func TestBuildWinding(t *testing.T) {
	Convey("Faces wind counter-clockwise seen from outside", t, func() {
		for level := 0; level <= 2; level++ {
			m, err := Build(level, 1)
			So(err, ShouldBeNil)
			for _, f := range m.Faces() {
				a, b, c := m.Vertex(int(f[0])), m.Vertex(int(f[1])), m.Vertex(int(f[2]))
				normal := b.Sub(a).Cross(c.Sub(a))
				centroid := a.Add(b).Add(c)
				So(normal.Dot(centroid), ShouldBeGreaterThan, 0)
			}
		}
	})
}

func TestBuildInvalidInput(t *testing.T) {
	Convey("Invalid input is rejected without a partial mesh", t, func() {
		m, err := Build(-1, 1)
		So(m, ShouldBeNil)
		So(errors.Is(err, ErrInvalidLevels), ShouldBeTrue)

		m, err = Build(MaxLevels+1, 1)
		So(m, ShouldBeNil)
		So(errors.Is(err, ErrInvalidLevels), ShouldBeTrue)

		for _, r := range []float32{0, -2, math32.NaN(), math32.Inf(1)} {
			m, err = Build(1, r)
			So(m, ShouldBeNil)
			So(errors.Is(err, ErrInvalidRadius), ShouldBeTrue)
		}
	})
}

func TestMeshAccessors(t *testing.T) {
	Convey("Accessors return copies and unit directions", t, func() {
		m, err := NewBuilder(WithLevels(1), WithRadius(2)).Build()
		So(err, ShouldBeNil)
		So(m.Radius(), ShouldEqual, 2)

		dirs := m.Directions()
		So(len(dirs), ShouldEqual, 42)
		for i, d := range dirs {
			So(math32.Abs(d.Len()-1), ShouldBeLessThan, 1e-5)
			So(closeTo(d.Mul(2), m.Vertex(i), 1e-5), ShouldBeTrue)
		}

		vs := m.Vertices()
		vs[0] = mgl32.Vec3{}
		So(m.Vertex(0).Len(), ShouldBeGreaterThan, 1)

		idx := m.Indices()
		So(len(idx), ShouldEqual, m.FaceCount()*3)
		for _, i := range idx {
			So(int(i), ShouldBeLessThan, m.VertexCount())
		}
	})
}

func TestDisc(t *testing.T) {
	Convey("Disc builds a closed triangle fan", t, func() {
		d, err := Disc(56, 1)
		So(err, ShouldBeNil)
		So(len(d.Positions), ShouldEqual, 57)
		So(len(d.UVs), ShouldEqual, 57)
		So(len(d.Indices), ShouldEqual, 56*3)
		So(d.Indices[len(d.Indices)-1], ShouldEqual, 1)
		for _, p := range d.Positions[1:] {
			So(math32.Abs(p.Len()-1), ShouldBeLessThan, 1e-5)
			So(p.Z(), ShouldEqual, 0)
		}

		_, err = Disc(2, 1)
		So(errors.Is(err, ErrInvalidSegments), ShouldBeTrue)
		_, err = Disc(8, 0)
		So(errors.Is(err, ErrInvalidRadius), ShouldBeTrue)
	})
}
