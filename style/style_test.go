package style

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPrice(t *testing.T) {
	Convey("Price", t, func() {
		Convey("Should show two decimals", func() {
			So(Price(49.9), ShouldContainSubstring, "$49.90")
		})

		Convey("Should show free courses as Free", func() {
			So(Price(0), ShouldContainSubstring, "Free")
		})
	})
}

func TestLevel(t *testing.T) {
	Convey("Level should keep the level text", t, func() {
		So(Level("Advanced"), ShouldContainSubstring, "Advanced")
	})
}
