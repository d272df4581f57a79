package progress

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

var epoch = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	Convey("Given a course of 600 seconds", t, func() {
		Convey("When the position is at exactly 90%", func() {
			p := New(540, 600, epoch)

			Convey("Then it is completed", func() {
				So(p.Completed, ShouldBeTrue)
				So(p.Percent(), ShouldEqual, 90)
			})
		})

		Convey("When the position is just below 90%", func() {
			p := New(0.8999*600, 600, epoch)

			Convey("Then it is not completed", func() {
				So(p.Completed, ShouldBeFalse)
			})
		})

		Convey("When the position is past the end", func() {
			p := New(720, 600, epoch)

			Convey("Then it is clamped to the duration", func() {
				So(p.CurrentTime, ShouldEqual, 600.0)
				So(p.Completed, ShouldBeTrue)
			})
		})

		Convey("When the position is negative", func() {
			p := New(-3, 600, epoch)

			Convey("Then it is clamped to zero", func() {
				So(p.CurrentTime, ShouldEqual, 0.0)
				So(p.Completed, ShouldBeFalse)
			})
		})
	})

	Convey("Given an unknown duration", t, func() {
		p := New(42, 0, epoch)

		Convey("Then nothing is completed and the ratio is zero", func() {
			So(p.Completed, ShouldBeFalse)
			So(p.Ratio(), ShouldEqual, 0.0)
			So(p.CurrentTime, ShouldEqual, 42.0)
		})
	})

	Convey("Given a local timestamp", t, func() {
		local := epoch.In(time.FixedZone("UTC+3", 3*60*60))
		p := New(1, 2, local)

		Convey("Then it is stored in UTC", func() {
			So(p.LastWatched.Location(), ShouldEqual, time.UTC)
			So(p.LastWatched.Equal(epoch), ShouldBeTrue)
		})
	})

	Convey("String renders positions", t, func() {
		So(New(120, 600, epoch).String(), ShouldEqual, "2:00 / 10:00 (20%)")
	})
}
