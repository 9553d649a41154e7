package menu

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/Carmen-Shannon/oxy-menu/engine/arcball"
	"github.com/Carmen-Shannon/oxy-menu/engine/geodesic"
	"github.com/Carmen-Shannon/oxy-menu/engine/instancer"
)

// closeTo reports whether a and b lie within eps of each other.
func closeTo(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() < eps
}

const frame = float32(1.0 / 60.0)

var testItems = []Item{
	{Title: "alpha", Link: "https://example.com/a"},
	{Title: "beta", Link: "https://example.com/b"},
	{Title: "gamma", Link: "https://example.com/c"},
}

func newTestMenu(t *testing.T, options ...MenuOption) Menu {
	m, err := NewMenu(append([]MenuOption{WithViewport(500, 500), WithItems(testItems...)}, options...)...)
	if err != nil {
		t.Fatalf("new menu: %v", err)
	}
	return m
}

// worldPosition recovers the rotated direction of a slot from its instance matrix.
func worldPosition(m Menu, slot int) mgl32.Vec3 {
	mat := m.Matrices()[slot]
	return mgl32.Vec3{-mat[12], -mat[13], -mat[14]}
}

func drag(m Menu, toX, toY float32) {
	m.PushPointer(arcball.Down(0, 0))
	m.PushPointer(arcball.Move(toX*0.5, toY*0.5))
	m.PushPointer(arcball.Move(toX, toY))
	m.PushPointer(arcball.Up(toX, toY))
}

func runUntilRest(t *testing.T, m Menu) {
	for i := 0; i < 1200; i++ {
		if err := m.Frame(frame); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if !m.Moving() {
			return
		}
	}
	t.Fatalf("menu still moving after 1200 frames")
}

func TestNewMenu(t *testing.T) {
	Convey("A default menu", t, func() {
		m := newTestMenu(t)
		defer m.Close()

		So(m.InstanceCount(), ShouldEqual, 42)
		So(m.Mesh().Levels(), ShouldEqual, 1)
		So(len(m.Matrices()), ShouldEqual, 42)
		So(len(m.InstanceBytes()), ShouldEqual, 42*64)
		So(m.Disc(), ShouldNotBeNil)
		So(m.Moving(), ShouldBeFalse)

		Convey("culls the discs on the silhouette outside the view", func() {
			visible := m.VisibleCount()
			So(visible, ShouldBeGreaterThan, 0)
			So(visible, ShouldBeLessThan, m.InstanceCount())
		})

		Convey("starts with the slot facing the camera active", func() {
			active := m.ActiveIndex()
			So(active, ShouldBeGreaterThanOrEqualTo, 0)
			p := worldPosition(m, active).Normalize()
			So(closeTo(p, mgl32.Vec3{0, 0, 1}, 1e-4), ShouldBeTrue)
		})
	})

	Convey("Invalid configuration is reported", t, func() {
		_, err := NewMenu(WithLevels(-1))
		So(errors.Is(err, geodesic.ErrInvalidLevels), ShouldBeTrue)

		_, err = NewMenu(WithRadius(0))
		So(errors.Is(err, geodesic.ErrInvalidRadius), ShouldBeTrue)

		_, err = NewMenu(WithDisc(2, 1))
		So(errors.Is(err, geodesic.ErrInvalidSegments), ShouldBeTrue)

		_, err = NewMenu(WithPipelineOptions(instancer.WithBaseScale(-1)))
		So(err, ShouldNotBeNil)
	})
}

func TestItems(t *testing.T) {
	Convey("Items repeat round-robin across the slots", t, func() {
		m := newTestMenu(t)
		defer m.Close()

		item, ok := m.ItemAt(0)
		So(ok, ShouldBeTrue)
		So(item.Title, ShouldEqual, "alpha")
		item, _ = m.ItemAt(4)
		So(item.Title, ShouldEqual, "beta")
		_, ok = m.ItemAt(42)
		So(ok, ShouldBeFalse)
		_, ok = m.ItemAt(-1)
		So(ok, ShouldBeFalse)

		active, ok := m.ActiveItem()
		So(ok, ShouldBeTrue)
		So(active, ShouldResemble, testItems[m.ActiveIndex()%3])

		items := m.Items()
		items[0].Title = "changed"
		So(m.Items()[0].Title, ShouldEqual, "alpha")
	})

	Convey("A menu without items has no active item", t, func() {
		m, err := NewMenu()
		So(err, ShouldBeNil)
		defer m.Close()
		_, ok := m.ActiveItem()
		So(ok, ShouldBeFalse)
	})
}

func TestDragSettlesOnNearestDisc(t *testing.T) {
	Convey("Dragging and releasing", t, func() {
		m := newTestMenu(t)
		defer m.Close()

		var movingChanges []bool
		var activeSlots []int
		m.OnMovingChange(func(moving bool) { movingChanges = append(movingChanges, moving) })
		m.OnActiveItem(func(slot int, item Item) {
			activeSlots = append(activeSlots, slot)
			So(item, ShouldResemble, testItems[slot%3])
		})

		drag(m, 90, 40)
		So(m.Frame(frame), ShouldBeNil)

		Convey("sets a snap target on the release frame", func() {
			_, ok := m.Controller().SnapTarget()
			So(ok, ShouldBeTrue)
			So(m.Moving(), ShouldBeTrue)
			So(movingChanges, ShouldResemble, []bool{true})
		})

		Convey("settles the active disc in front of the camera", func() {
			runUntilRest(t, m)
			So(movingChanges, ShouldResemble, []bool{true, false})

			p := worldPosition(m, m.ActiveIndex()).Normalize()
			So(closeTo(p, mgl32.Vec3{0, 0, 1}, 1e-3), ShouldBeTrue)
			So(m.State().RotationVelocity, ShouldEqual, 0)

			if len(activeSlots) > 0 {
				So(activeSlots[len(activeSlots)-1], ShouldEqual, m.ActiveIndex())
			}
		})

		Convey("the camera pulls back while moving and returns at rest", func() {
			base := m.Camera().Controller().BaseDistance()
			So(m.Camera().Controller().TargetDistance(), ShouldBeGreaterThan, base)
			runUntilRest(t, m)
			for i := 0; i < 300; i++ {
				So(m.Frame(frame), ShouldBeNil)
			}
			So(m.Camera().Controller().Distance(), ShouldAlmostEqual, base, 1e-2)
		})
	})
}

func TestCancelSettles(t *testing.T) {
	Convey("A cancelled drag restores the orientation and stops", t, func() {
		m := newTestMenu(t)
		defer m.Close()
		start := m.State().Orientation

		m.PushPointer(arcball.Down(0, 0))
		m.PushPointer(arcball.Move(120, 0))
		So(m.Frame(frame), ShouldBeNil)
		So(m.State().PointerActive, ShouldBeTrue)

		m.PushPointer(arcball.Cancel())
		So(m.Frame(frame), ShouldBeNil)
		So(m.State().Orientation, ShouldResemble, start)
		runUntilRest(t, m)
		So(m.Moving(), ShouldBeFalse)
	})
}

func TestParallelPipelineMatchesSerial(t *testing.T) {
	Convey("A pooled pipeline produces the same frames as the serial one", t, func() {
		serial := newTestMenu(t, WithLevels(3))
		defer serial.Close()
		pooled := newTestMenu(t, WithLevels(3), WithPipelineOptions(instancer.WithWorkers(3), instancer.WithChunkSize(50)))
		defer pooled.Close()

		drag(serial, 70, -30)
		drag(pooled, 70, -30)
		for i := 0; i < 30; i++ {
			So(serial.Frame(frame), ShouldBeNil)
			So(pooled.Frame(frame), ShouldBeNil)
		}
		So(pooled.Matrices(), ShouldResemble, serial.Matrices())
	})
}

func TestCallbacksMayCallBackIntoMenu(t *testing.T) {
	Convey("Change callbacks run without the menu lock held", t, func() {
		m := newTestMenu(t)
		defer m.Close()

		var settled []string
		m.OnMovingChange(func(moving bool) {
			if !moving && !m.Moving() {
				item, _ := m.ActiveItem()
				settled = append(settled, item.Title)
			}
		})
		mismatched := 0
		m.OnActiveItem(func(slot int, item Item) {
			if m.ActiveIndex() != slot {
				mismatched++
			}
		})

		finished := func(fn func()) bool {
			done := make(chan struct{})
			go func() {
				defer close(done)
				fn()
			}()
			select {
			case <-done:
				return true
			case <-time.After(5 * time.Second):
				return false
			}
		}

		drag(m, 90, 40)
		So(finished(func() {
			for i := 0; i < 1200; i++ {
				if err := m.Frame(frame); err != nil || !m.Moving() {
					return
				}
			}
		}), ShouldBeTrue)
		So(m.Moving(), ShouldBeFalse)
		So(mismatched, ShouldEqual, 0)
		So(settled, ShouldHaveLength, 1)
		So(settled[0], ShouldEqual, testItems[m.ActiveIndex()%3].Title)

		Convey("including when Reset stops a moving sphere", func() {
			drag(m, -120, 60)
			So(m.Frame(frame), ShouldBeNil)
			So(m.Moving(), ShouldBeTrue)

			So(finished(m.Reset), ShouldBeTrue)
			So(m.Moving(), ShouldBeFalse)
			So(settled, ShouldHaveLength, 2)
		})
	})
}

func TestCloseAndReset(t *testing.T) {
	Convey("Reset returns to the initial state", t, func() {
		m := newTestMenu(t)
		initial := m.ActiveIndex()
		drag(m, 150, 60)
		runUntilRest(t, m)

		m.Reset()
		So(m.State().Orientation, ShouldResemble, mgl32.QuatIdent())
		So(m.ActiveIndex(), ShouldEqual, initial)

		Convey("and Frame fails once closed", func() {
			m.Close()
			m.Close()
			So(errors.Is(m.Frame(frame), ErrClosed), ShouldBeTrue)
		})
	})
}

func TestUniform(t *testing.T) {
	Convey("The frame uniform packs camera and motion state", t, func() {
		m := newTestMenu(t)
		defer m.Close()
		drag(m, 80, 0)
		So(m.Frame(frame), ShouldBeNil)

		u := m.Uniform()
		So(u.Size(), ShouldEqual, 160)
		buf := u.Marshal()
		So(len(buf), ShouldEqual, 160)

		read := func(offset int) float32 {
			return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
		}
		So(read(140), ShouldEqual, m.State().RotationVelocity)
		So(read(128+8), ShouldEqual, m.Camera().Controller().Position().Z())
		So(read(144+4), ShouldEqual, m.State().RotationAxis.Y())
		So(read(0), ShouldEqual, m.Camera().ViewMatrix()[0])
	})
}
