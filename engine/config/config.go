// Package config loads the menu's YAML configuration and maps it onto component options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-menu/common"
	"github.com/Carmen-Shannon/oxy-menu/engine/arcball"
	"github.com/Carmen-Shannon/oxy-menu/engine/camera"
	"github.com/Carmen-Shannon/oxy-menu/engine/geodesic"
	"github.com/Carmen-Shannon/oxy-menu/engine/instancer"
	"github.com/Carmen-Shannon/oxy-menu/engine/menu"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// DefaultTitle is the window title used when none is configured.
const DefaultTitle = "oxy-menu"

// Config is the full YAML document. Zero-valued sections in a file keep their defaults.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Sphere     SphereConfig     `yaml:"sphere"`
	Controller ControllerConfig `yaml:"controller"`
	Instances  InstanceConfig   `yaml:"instances"`
	Camera     CameraConfig     `yaml:"camera"`
	Engine     EngineConfig     `yaml:"engine"`
	Items      []ItemConfig     `yaml:"items,omitempty"`
	Debug      bool             `yaml:"debug,omitempty"`
}

// WindowConfig sizes the platform window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// SphereConfig shapes the geodesic sphere and its discs.
type SphereConfig struct {
	Levels       int     `yaml:"levels"`
	Radius       float32 `yaml:"radius"`
	DiscSegments int     `yaml:"disc_segments"`
	DiscRadius   float32 `yaml:"disc_radius"`
}

// ControllerConfig tunes the trackball, coasting and snapping.
type ControllerConfig struct {
	TrackballRadius       float32 `yaml:"trackball_radius"`
	Damping               float32 `yaml:"damping"`
	StopVelocity          float32 `yaml:"stop_velocity"`
	DragSmoothing         float32 `yaml:"drag_smoothing"`
	CoastingSnapFrequency float32 `yaml:"coasting_snap_frequency"`
	IdleSnapFrequency     float32 `yaml:"idle_snap_frequency"`
	SnapEngageVelocity    float32 `yaml:"snap_engage_velocity"`
	SnapEpsilon           float32 `yaml:"snap_epsilon"`
}

// InstanceConfig tunes the instance pipeline.
type InstanceConfig struct {
	BaseScale float32 `yaml:"base_scale"`
	Workers   int     `yaml:"workers"`
	ChunkSize int     `yaml:"chunk_size"`
}

// CameraConfig tunes the zoom camera.
type CameraConfig struct {
	FovDegrees   float32 `yaml:"fov_degrees"`
	BaseDistance float32 `yaml:"base_distance"`
	ZoomFactor   float32 `yaml:"zoom_factor"`
	DragPullback float32 `yaml:"drag_pullback"`
	MaxPullback  float32 `yaml:"max_pullback"`
}

// EngineConfig tunes the frame loop.
type EngineConfig struct {
	TickRate     float64       `yaml:"tick_rate"`
	MaxDeltaTime time.Duration `yaml:"max_delta_time"`
	Profile      bool          `yaml:"profile"`
}

// ItemConfig is one menu entry.
type ItemConfig struct {
	Image       string `yaml:"image,omitempty"`
	Link        string `yaml:"link,omitempty"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{Title: DefaultTitle, Width: 1280, Height: 720},
		Sphere: SphereConfig{Levels: 1, Radius: 2, DiscSegments: 32, DiscRadius: 1},
		Controller: ControllerConfig{
			TrackballRadius:       1,
			Damping:               4,
			StopVelocity:          0.01,
			DragSmoothing:         20,
			CoastingSnapFrequency: 4,
			IdleSnapFrequency:     9,
			SnapEngageVelocity:    0.6,
			SnapEpsilon:           1e-4,
		},
		Instances: InstanceConfig{BaseScale: instancer.DefaultBaseScale, Workers: 1, ChunkSize: instancer.DefaultChunkSize},
		Camera:    CameraConfig{FovDegrees: 45, BaseDistance: 3, ZoomFactor: 1.2, DragPullback: 2.5, MaxPullback: 8},
		Engine:    EngineConfig{TickRate: 60, MaxDeltaTime: 100 * time.Millisecond},
	}
}

// Load reads a YAML file over the defaults. A missing file yields the defaults; unknown keys,
// malformed YAML and values that fail Validate are errors.
//
// Parameters:
//   - path: the file to read; empty means defaults only
//
// Returns:
//   - Config: the merged configuration
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if cfg, err = Parse(data); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the merged configuration
//   - error: a decode or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode: %w", err)
	}
	cfg.Window.Title = common.Coalesce(cfg.Window.Title, DefaultTitle)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
//
// Returns:
//   - []byte: the YAML document
//   - error: an encode error
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks every value against the ranges the components accept.
//
// Returns:
//   - error: ErrInvalidConfig wrapped with the offending field, or nil
func (c Config) Validate() error {
	invalid := func(field string, value any) error {
		return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, field, value)
	}
	positive := func(v float32) bool {
		return v > 0 && common.IsFinite(v)
	}

	switch {
	case c.Window.Width <= 0:
		return invalid("window.width", c.Window.Width)
	case c.Window.Height <= 0:
		return invalid("window.height", c.Window.Height)
	case c.Sphere.Levels < 0 || c.Sphere.Levels > geodesic.MaxLevels:
		return invalid("sphere.levels", c.Sphere.Levels)
	case !positive(c.Sphere.Radius):
		return invalid("sphere.radius", c.Sphere.Radius)
	case c.Sphere.DiscSegments < 3:
		return invalid("sphere.disc_segments", c.Sphere.DiscSegments)
	case !positive(c.Sphere.DiscRadius):
		return invalid("sphere.disc_radius", c.Sphere.DiscRadius)
	case !positive(c.Controller.TrackballRadius):
		return invalid("controller.trackball_radius", c.Controller.TrackballRadius)
	case c.Controller.Damping < 0:
		return invalid("controller.damping", c.Controller.Damping)
	case !positive(c.Controller.StopVelocity):
		return invalid("controller.stop_velocity", c.Controller.StopVelocity)
	case !positive(c.Controller.DragSmoothing):
		return invalid("controller.drag_smoothing", c.Controller.DragSmoothing)
	case !positive(c.Controller.CoastingSnapFrequency):
		return invalid("controller.coasting_snap_frequency", c.Controller.CoastingSnapFrequency)
	case !positive(c.Controller.IdleSnapFrequency):
		return invalid("controller.idle_snap_frequency", c.Controller.IdleSnapFrequency)
	case c.Controller.SnapEngageVelocity < 0:
		return invalid("controller.snap_engage_velocity", c.Controller.SnapEngageVelocity)
	case !positive(c.Controller.SnapEpsilon):
		return invalid("controller.snap_epsilon", c.Controller.SnapEpsilon)
	case !positive(c.Instances.BaseScale):
		return invalid("instances.base_scale", c.Instances.BaseScale)
	case c.Instances.ChunkSize <= 0:
		return invalid("instances.chunk_size", c.Instances.ChunkSize)
	case c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180:
		return invalid("camera.fov_degrees", c.Camera.FovDegrees)
	case !positive(c.Camera.BaseDistance) || c.Camera.BaseDistance <= c.Sphere.Radius:
		return invalid("camera.base_distance", c.Camera.BaseDistance)
	case c.Camera.ZoomFactor < 0:
		return invalid("camera.zoom_factor", c.Camera.ZoomFactor)
	case c.Camera.MaxPullback < 0:
		return invalid("camera.max_pullback", c.Camera.MaxPullback)
	case c.Engine.TickRate <= 0:
		return invalid("engine.tick_rate", c.Engine.TickRate)
	case c.Engine.MaxDeltaTime < 0:
		return invalid("engine.max_delta_time", c.Engine.MaxDeltaTime)
	}
	return nil
}

// ControllerOptions maps the controller section onto arcball options.
//
// Returns:
//   - []arcball.ControllerOption: the options
func (c Config) ControllerOptions() []arcball.ControllerOption {
	cc := c.Controller
	return []arcball.ControllerOption{
		arcball.WithTrackballRadius(cc.TrackballRadius),
		arcball.WithDamping(cc.Damping),
		arcball.WithStopVelocity(cc.StopVelocity),
		arcball.WithDragSmoothing(cc.DragSmoothing),
		arcball.WithSnapFrequencies(cc.CoastingSnapFrequency, cc.IdleSnapFrequency),
		arcball.WithSnapEngageVelocity(cc.SnapEngageVelocity),
		arcball.WithSnapEpsilon(cc.SnapEpsilon),
	}
}

// MenuOptions maps the whole document onto menu options.
//
// Returns:
//   - []menu.MenuOption: the options
func (c Config) MenuOptions() []menu.MenuOption {
	items := make([]menu.Item, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, menu.Item{Image: it.Image, Link: it.Link, Title: it.Title, Description: it.Description})
	}

	zoom := camera.NewCameraController(
		camera.WithBaseDistance(c.Camera.BaseDistance),
		camera.WithZoomFactor(c.Camera.ZoomFactor),
		camera.WithDragPullback(c.Camera.DragPullback),
		camera.WithMaxPullback(c.Camera.MaxPullback),
	)
	cam := camera.NewCamera(
		camera.WithController(zoom),
		camera.WithFov(mgl32.DegToRad(c.Camera.FovDegrees)),
	)

	return []menu.MenuOption{
		menu.WithLevels(c.Sphere.Levels),
		menu.WithRadius(c.Sphere.Radius),
		menu.WithDisc(c.Sphere.DiscSegments, c.Sphere.DiscRadius),
		menu.WithViewport(c.Window.Width, c.Window.Height),
		menu.WithItems(items...),
		menu.WithCamera(cam),
		menu.WithControllerOptions(c.ControllerOptions()...),
		menu.WithPipelineOptions(
			instancer.WithBaseScale(c.Instances.BaseScale),
			instancer.WithWorkers(c.Instances.Workers),
			instancer.WithChunkSize(c.Instances.ChunkSize),
		),
		menu.WithDebugLogging(c.Debug),
	}
}
