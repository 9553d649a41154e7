package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-menu/common"
	"github.com/Carmen-Shannon/oxy-menu/engine/profiler"
)

// DefaultMaxDeltaTime bounds a single frame's dt so a stall (window drag, breakpoint, suspended
// process) cannot fling the sphere or overshoot the damping integration.
const DefaultMaxDeltaTime = 100 * time.Millisecond

// Window is the part of a platform window the engine drives. window.Window satisfies it.
type Window interface {
	// ProcessMessages runs the window message loop until the window closes.
	ProcessMessages()

	// SetResizeCallback sets the function called when the framebuffer is resized.
	SetResizeCallback(callback func(width, height int))
}

// engine implements the Engine interface.
// A single frame goroutine owns every per-frame callback; the window thread only enqueues input.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	maxDeltaTime   time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)
	resizeCallback func(width, height int)
}

// Engine drives the menu: it measures frame time, clamps it, and calls the tick and render
// callbacks in that order on one goroutine at the configured rate.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - Window: the window instance
	Window() Window

	// Profiler returns the engine's profiler.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler
	Profiler() *profiler.Profiler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the frame rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called first each frame.
	// Use this to advance the menu (input, orientation, instance matrices).
	//
	// Parameters:
	//   - callback: function receiving the clamped delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after the tick callback each frame.
	// Use this to hand the instance buffer to the renderer.
	//
	// Parameters:
	//   - callback: function receiving the clamped delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetResizeCallback registers the function called when the window framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// Run starts the frame loop. With a window it runs the window message loop on the calling
	// goroutine and returns once the window closes; headless it blocks until Quit.
	Run()

	// Quit signals the frame loop to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		wg:               sync.WaitGroup{},
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		maxDeltaTime:     DefaultMaxDeltaTime,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if e.resizeCallback != nil {
				e.resizeCallback(width, height)
			}
		})
	}

	return e
}

func (e *engine) Window() Window {
	return e.window
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.wg.Add(1)
	go e.handleEngine()

	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
}

// Quit signals the frame goroutine to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal the frame goroutine to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handleEngine runs the frame loop in its own goroutine. Each tick it measures dt, clamps it,
// then calls the tick callback, the render callback and the profiler in that order.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := clampDeltaTime(float32(now.Sub(lastTick).Seconds()), float32(e.maxDeltaTime.Seconds()))
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
			if e.renderCallback != nil {
				e.renderCallback(dt)
			}
			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// clampDeltaTime maps a measured frame time into [0, maxDelta]. Non-finite or negative input
// (clock adjustments) becomes 0.
func clampDeltaTime(dt, maxDelta float32) float32 {
	if !common.IsFinite(dt) || dt < 0 {
		return 0
	}
	if maxDelta > 0 && dt > maxDelta {
		return maxDelta
	}
	return dt
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the frame rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	running := e.running
	e.mu.Unlock()

	if running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}
