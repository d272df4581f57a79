package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a course video url", t, func() {
		address := "https://videos.example.com/react.mp4?a=1&b=2"

		Convey("On linux the default handler should be xdg-open", func() {
			name, args, ok := command(linux, address, "")
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "xdg-open")
			So(args, ShouldResemble, []string{address})
		})

		Convey("On linux a chosen app should be run directly", func() {
			name, args, ok := command(linux, address, "firefox")
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "firefox")
			So(args, ShouldResemble, []string{address})
		})

		Convey("On darwin a chosen app should go through open -a", func() {
			name, args, ok := command(darwin, address, "Safari")
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "open")
			So(args, ShouldResemble, []string{"-a", "Safari", address})
		})

		Convey("On windows ampersands should be escaped for start", func() {
			_, args, ok := command(windows, address, "chrome")
			So(ok, ShouldBeTrue)
			So(args[len(args)-1], ShouldEqual, "https://videos.example.com/react.mp4?a=1^&b=2")
		})

		Convey("Unknown systems should be rejected", func() {
			_, _, ok := command("plan9", address, "")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Non-http addresses should be refused", t, func() {
		So(URL("file:///etc/passwd", ""), ShouldNotBeNil)
		So(URL("javascript:alert(1)", ""), ShouldNotBeNil)
	})
}
