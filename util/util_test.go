package util

import (
	"math"
	"testing"

	"github.com/coursecast/coursecast/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("watch progress"), ShouldEqual, "Watch progress")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(1.5, 0, 1), ShouldEqual, 1.0)
		So(Clamp(-3.0, 0, 1), ShouldEqual, 0.0)
		So(Clamp(0.4, 0, 1), ShouldEqual, 0.4)
	})
}

func TestFormatSeconds(t *testing.T) {
	Convey("FormatSeconds", t, func() {
		So(FormatSeconds(0), ShouldEqual, "0:00")
		So(FormatSeconds(65.9), ShouldEqual, "1:05")
		So(FormatSeconds(600), ShouldEqual, "10:00")
		So(FormatSeconds(3725), ShouldEqual, "1:02:05")
		So(FormatSeconds(-4), ShouldEqual, "0:00")
		So(FormatSeconds(math.NaN()), ShouldEqual, "0:00")
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		Reset(filesystem.SetOsFs)
		fs := filesystem.API()

		Convey("Should remove a directory with its contents", func() {
			So(fs.MkdirAll("/tmp/coursecast/sockets", 0o755), ShouldBeNil)
			So(fs.WriteFile("/tmp/coursecast/sockets/mpv.sock", []byte{}, 0o644), ShouldBeNil)
			So(Delete("/tmp/coursecast"), ShouldBeNil)
			So(lo.Must(fs.Exists("/tmp/coursecast")), ShouldBeFalse)
		})

		Convey("Should fail on a missing path", func() {
			So(Delete("/nope"), ShouldNotBeNil)
		})
	})
}
