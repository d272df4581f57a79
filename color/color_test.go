package color

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestForLevel(t *testing.T) {
	Convey("ForLevel", t, func() {
		Convey("Should color each difficulty", func() {
			So(ForLevel("Beginner"), ShouldEqual, Green)
			So(ForLevel("Intermediate"), ShouldEqual, Yellow)
			So(ForLevel("Advanced"), ShouldEqual, Red)
		})

		Convey("Should ignore case", func() {
			So(ForLevel("advanced"), ShouldEqual, Red)
		})

		Convey("Should fall back to gray", func() {
			So(ForLevel("Expert"), ShouldEqual, Gray)
			So(ForLevel(""), ShouldEqual, Gray)
		})
	})
}
