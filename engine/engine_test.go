package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/chewxy/math32"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeWindow struct {
	resize func(width, height int)
	closed chan struct{}
}

func (w *fakeWindow) ProcessMessages() {
	<-w.closed
}

func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) {
	w.resize = callback
}

func TestClampDeltaTime(t *testing.T) {
	Convey("Frame deltas are clamped into [0, max]", t, func() {
		So(clampDeltaTime(0.016, 0.1), ShouldEqual, float32(0.016))
		So(clampDeltaTime(2.5, 0.1), ShouldEqual, float32(0.1))
		So(clampDeltaTime(-1, 0.1), ShouldEqual, 0)
		So(clampDeltaTime(math32.NaN(), 0.1), ShouldEqual, 0)
		So(clampDeltaTime(math32.Inf(1), 0.1), ShouldEqual, 0)
		So(clampDeltaTime(2.5, 0), ShouldEqual, float32(2.5))
	})
}

func TestHeadlessRun(t *testing.T) {
	Convey("A headless engine ticks then renders until Quit", t, func() {
		e := NewEngine(WithTickRate(240), WithMaxDeltaTime(50*time.Millisecond))

		var mu sync.Mutex
		var order []string
		var deltas []float32
		e.SetTickCallback(func(dt float32) {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, "tick")
			deltas = append(deltas, dt)
		})
		e.SetRenderCallback(func(dt float32) {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, "render")
		})

		go func() {
			time.Sleep(100 * time.Millisecond)
			e.Quit()
			e.Quit()
		}()
		e.Run()

		mu.Lock()
		defer mu.Unlock()
		So(len(deltas), ShouldBeGreaterThan, 0)
		for _, dt := range deltas {
			So(dt, ShouldBeGreaterThanOrEqualTo, 0)
			So(dt, ShouldBeLessThanOrEqualTo, 0.05)
		}
		for i := 0; i+1 < len(order); i += 2 {
			So(order[i], ShouldEqual, "tick")
			So(order[i+1], ShouldEqual, "render")
		}
	})
}

func TestWindowedRun(t *testing.T) {
	Convey("Closing the window stops the engine and resizes are forwarded", t, func() {
		w := &fakeWindow{closed: make(chan struct{})}
		e := NewEngine(WithWindow(w))
		So(e.Window(), ShouldEqual, w)

		var gotW, gotH int
		e.SetResizeCallback(func(width, height int) {
			gotW, gotH = width, height
		})
		w.resize(800, 600)
		So(gotW, ShouldEqual, 800)
		So(gotH, ShouldEqual, 600)

		done := make(chan struct{})
		go func() {
			e.Run()
			close(done)
		}()
		close(w.closed)

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("engine did not stop after the window closed")
		}
	})
}
