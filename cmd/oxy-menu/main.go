// oxy-menu - interactive geodesic menu sphere
//
// Controls:
//
//	Left drag  - Rotate the sphere (release to coast and snap)
//	Esc        - Cancel an active drag, otherwise quit
//	R          - Reset orientation
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-menu/common"
	"github.com/Carmen-Shannon/oxy-menu/engine"
	"github.com/Carmen-Shannon/oxy-menu/engine/arcball"
	"github.com/Carmen-Shannon/oxy-menu/engine/config"
	"github.com/Carmen-Shannon/oxy-menu/engine/geodesic"
	"github.com/Carmen-Shannon/oxy-menu/engine/menu"
	"github.com/Carmen-Shannon/oxy-menu/engine/window"
)

var (
	configPath string
	levels     int
	radius     float32
	workers    int
	profile    bool
	width      int
	height     int
	headless   time.Duration
)

func main() {
	cmd := &cobra.Command{
		Use:   "oxy-menu",
		Short: "Interactive geodesic menu sphere",
		Long: `oxy-menu - interactive geodesic menu sphere

Drag the sphere to spin it; on release it coasts, then settles the
nearest disc in front of the camera.

Controls:
  Left drag  - Rotate
  Esc        - Cancel drag / quit
  R          - Reset orientation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if headless > 0 {
				return runHeadless(cfg, headless)
			}
			return run(cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "oxy-menu.yaml", "Path to the YAML configuration")
	flags.IntVar(&levels, "levels", 1, "Sphere subdivision level")
	flags.Float32Var(&radius, "radius", 2, "Sphere radius")
	flags.IntVar(&workers, "workers", 1, "Instance pipeline workers (-1 = NumCPU-1)")
	flags.BoolVar(&profile, "profile", false, "Log frame and memory statistics")
	cmd.Flags().IntVar(&width, "width", 1280, "Window width")
	cmd.Flags().IntVar(&height, "height", 720, "Window height")
	cmd.Flags().DurationVar(&headless, "headless", 0, "Run a scripted drag without a window for this long")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Display sphere and buffer sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runInfo(cfg)
		},
	}
	cmd.AddCommand(infoCmd)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies any flags set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("levels") {
		cfg.Sphere.Levels = levels
	}
	if cmd.Flags().Changed("radius") {
		cfg.Sphere.Radius = radius
	}
	if cmd.Flags().Changed("workers") {
		cfg.Instances.Workers = workers
	}
	if cmd.Flags().Changed("profile") {
		cfg.Engine.Profile = profile
	}
	if cmd.Flags().Changed("width") {
		cfg.Window.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Window.Height = height
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runInfo(cfg config.Config) error {
	m, err := menu.NewMenu(cfg.MenuOptions()...)
	if err != nil {
		return err
	}
	defer m.Close()

	fmt.Printf("Levels:         %d\n", cfg.Sphere.Levels)
	fmt.Printf("Radius:         %.2f\n", cfg.Sphere.Radius)
	fmt.Printf("Vertices:       %d\n", m.Mesh().VertexCount())
	fmt.Printf("Faces:          %d\n", m.Mesh().FaceCount())
	fmt.Printf("Instances:      %d\n", m.InstanceCount())
	fmt.Printf("Visible:        %d\n", m.VisibleCount())
	fmt.Printf("Instance bytes: %d\n", len(m.InstanceBytes()))
	fmt.Printf("Disc triangles: %d\n", len(m.Disc().Indices)/3)
	fmt.Printf("Items:          %d\n", len(cfg.Items))
	if cfg.Sphere.Levels < geodesic.MaxLevels {
		fmt.Printf("Next level:     %d instances\n", geodesic.VertexCount(cfg.Sphere.Levels+1))
	}
	return nil
}

// newEngine wires the menu into a frame loop. The tick advances the menu; the render step reports
// the settled frame to the profiler.
func newEngine(cfg config.Config, m menu.Menu, options ...engine.EngineBuilderOption) engine.Engine {
	e := engine.NewEngine(append([]engine.EngineBuilderOption{
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithMaxDeltaTime(cfg.Engine.MaxDeltaTime),
		engine.WithProfiling(cfg.Engine.Profile),
	}, options...)...)

	e.SetTickCallback(func(deltaTime float32) {
		if err := m.Frame(deltaTime); err != nil {
			log.Printf("[Menu] frame failed: %v", err)
			e.Quit()
		}
	})
	e.SetRenderCallback(func(deltaTime float32) {
		state := m.State()
		e.Profiler().Observe(m.InstanceCount(), state.RotationVelocity, state.Mode.String())
	})
	e.SetResizeCallback(m.SetViewport)
	return e
}

func logMenuEvents(m menu.Menu) {
	m.OnActiveItem(func(slot int, item menu.Item) {
		if item.Title != "" {
			log.Printf("[Menu] active: %s (%s)", item.Title, item.Link)
		}
	})
	m.OnMovingChange(func(moving bool) {
		if !moving {
			if item, ok := m.ActiveItem(); ok {
				log.Printf("[Menu] settled on %s", item.Title)
			}
		}
	})
}

func run(cfg config.Config) error {
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithSizeLimits(320, 240, 7680, 4320),
	)
	defer win.Close()

	vp := win.Viewport()
	options := append(cfg.MenuOptions(), menu.WithViewport(int(vp.Width), int(vp.Height)))
	m, err := menu.NewMenu(options...)
	if err != nil {
		return err
	}
	defer m.Close()
	logMenuEvents(m)

	win.SetPointerCallback(m.PushPointer)
	win.SetKeyDownCallback(func(keyCode uint32) {
		if keyCode == common.KeyR {
			m.Reset()
		}
	})

	e := newEngine(cfg, m, engine.WithWindow(win))
	e.Run()
	return nil
}

// runHeadless drives the menu with a scripted drag, which exercises the full frame path on
// machines without a display.
func runHeadless(cfg config.Config, d time.Duration) error {
	m, err := menu.NewMenu(cfg.MenuOptions()...)
	if err != nil {
		return err
	}
	defer m.Close()
	logMenuEvents(m)

	vp := common.Viewport{Width: float32(cfg.Window.Width), Height: float32(cfg.Window.Height)}
	cx, cy := vp.ToCentered(vp.Width*0.5, vp.Height*0.5)
	m.PushPointer(arcball.Down(cx, cy))
	for i := 1; i <= 10; i++ {
		m.PushPointer(arcball.Move(cx+float32(i)*12, cy+float32(i)*4))
	}
	m.PushPointer(arcball.Up(cx+120, cy+40))

	e := newEngine(cfg, m)
	time.AfterFunc(d, e.Quit)
	e.Run()

	state := m.State()
	log.Printf("[Menu] headless run finished: mode=%s velocity=%.4f active=%d", state.Mode, state.RotationVelocity, m.ActiveIndex())
	return nil
}
