package where

import (
	"path/filepath"
	"testing"

	"github.com/coursecast/coursecast/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Progress() and Volume() live in the config directory", func() {
			So(filepath.Dir(Progress()), ShouldEqual, Config())
			So(filepath.Dir(Volume()), ShouldEqual, Config())
			So(filepath.Base(Progress()), ShouldEqual, "progress.json")
		})

		Convey("Queries() lives in the cache directory", func() {
			So(filepath.Dir(Queries()), ShouldEqual, Cache())
		})

		Convey("Temp() is created on demand", func() {
			So(lo.Must(filesystem.API().IsDir(Temp())), ShouldBeTrue)
		})

		Convey("Config() respects the override variable", func() {
			t.Setenv(EnvConfigPath, "/tmp/coursecast-test-config")
			So(Config(), ShouldEqual, "/tmp/coursecast-test-config")
		})
	})
}
