package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Carmen-Shannon/oxy-menu/engine/menu"
)

func TestDefault(t *testing.T) {
	Convey("The defaults validate and build a menu", t, func() {
		cfg := Default()
		So(cfg.Validate(), ShouldBeNil)

		m, err := menu.NewMenu(cfg.MenuOptions()...)
		So(err, ShouldBeNil)
		defer m.Close()
		So(m.InstanceCount(), ShouldEqual, 42)
		So(m.Camera().Controller().BaseDistance(), ShouldEqual, cfg.Camera.BaseDistance)
	})
}

func TestParse(t *testing.T) {
	Convey("Parsing YAML over the defaults", t, func() {
		Convey("overrides only the keys present", func() {
			cfg, err := Parse([]byte(`
window:
  title: ""
  width: 800
sphere:
  levels: 2
engine:
  max_delta_time: 50ms
items:
  - title: Docs
    link: https://example.com/docs
`))
			So(err, ShouldBeNil)
			So(cfg.Window.Width, ShouldEqual, 800)
			So(cfg.Window.Height, ShouldEqual, 720)
			So(cfg.Window.Title, ShouldEqual, DefaultTitle)
			So(cfg.Sphere.Levels, ShouldEqual, 2)
			So(cfg.Sphere.Radius, ShouldEqual, 2)
			So(cfg.Engine.MaxDeltaTime, ShouldEqual, 50*time.Millisecond)
			So(cfg.Items, ShouldHaveLength, 1)
			So(cfg.Items[0].Title, ShouldEqual, "Docs")
		})

		Convey("accepts an empty document", func() {
			cfg, err := Parse(nil)
			So(err, ShouldBeNil)
			So(cfg, ShouldResemble, Default())
		})

		Convey("rejects unknown keys", func() {
			_, err := Parse([]byte("sphere:\n  levles: 2\n"))
			So(err, ShouldNotBeNil)
		})

		Convey("rejects out-of-range values", func() {
			_, err := Parse([]byte("sphere:\n  levels: 12\n"))
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)

			_, err = Parse([]byte("camera:\n  base_distance: 1\n"))
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)

			_, err = Parse([]byte("controller:\n  snap_epsilon: -1\n"))
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("round-trips overrides through Marshal", func() {
			cfg := Default()
			cfg.Sphere.Levels = 3
			cfg.Instances.Workers = 4
			cfg.Items = []ItemConfig{{Title: "a"}, {Title: "b", Image: "b.png"}}
			data, err := cfg.Marshal()
			So(err, ShouldBeNil)

			back, err := Parse(data)
			So(err, ShouldBeNil)
			So(back, ShouldResemble, cfg)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Loading from disk", t, func() {
		dir := t.TempDir()

		Convey("a missing file yields the defaults", func() {
			cfg, err := Load(filepath.Join(dir, "absent.yaml"))
			So(err, ShouldBeNil)
			So(cfg, ShouldResemble, Default())
		})

		Convey("an empty path yields the defaults", func() {
			cfg, err := Load("")
			So(err, ShouldBeNil)
			So(cfg, ShouldResemble, Default())
		})

		Convey("a present file is parsed", func() {
			path := filepath.Join(dir, "menu.yaml")
			So(os.WriteFile(path, []byte("instances:\n  workers: 3\n"), 0o600), ShouldBeNil)
			cfg, err := Load(path)
			So(err, ShouldBeNil)
			So(cfg.Instances.Workers, ShouldEqual, 3)
		})

		Convey("an invalid file names the path", func() {
			path := filepath.Join(dir, "bad.yaml")
			So(os.WriteFile(path, []byte("window: [1, 2"), 0o600), ShouldBeNil)
			_, err := Load(path)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "bad.yaml")
		})
	})
}
