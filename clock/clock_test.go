package clock

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFake(t *testing.T) {
	Convey("Given a fake clock", t, func() {
		start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		c := NewFake(start)

		Convey("When advancing without timers", func() {
			c.Advance(time.Minute)

			Convey("Then the time moves forward", func() {
				So(c.Now().Equal(start.Add(time.Minute)), ShouldBeTrue)
			})
		})

		Convey("When a timer is scheduled", func() {
			var fired []time.Time
			c.AfterFunc(5*time.Second, func() { fired = append(fired, c.Now()) })

			Convey("Then it does not fire before its deadline", func() {
				c.Advance(4999 * time.Millisecond)
				So(fired, ShouldBeEmpty)
				So(c.Pending(), ShouldEqual, 1)
			})

			Convey("Then it fires at its deadline", func() {
				c.Advance(5 * time.Second)
				So(fired, ShouldHaveLength, 1)
				So(fired[0].Equal(start.Add(5*time.Second)), ShouldBeTrue)
				So(c.Pending(), ShouldEqual, 0)
			})
		})

		Convey("When a timer is stopped", func() {
			var fired bool
			timer := c.AfterFunc(time.Second, func() { fired = true })

			So(timer.Stop(), ShouldBeTrue)
			c.Advance(time.Hour)

			Convey("Then it never fires", func() {
				So(fired, ShouldBeFalse)
				So(timer.Stop(), ShouldBeFalse)
			})
		})

		Convey("When timers are scheduled out of order", func() {
			var order []string
			c.AfterFunc(3*time.Second, func() { order = append(order, "c") })
			c.AfterFunc(1*time.Second, func() { order = append(order, "a") })
			c.AfterFunc(2*time.Second, func() {
				order = append(order, "b")
				c.AfterFunc(500*time.Millisecond, func() { order = append(order, "b2") })
			})

			c.Advance(10 * time.Second)

			Convey("Then they fire in deadline order, including nested ones", func() {
				So(order, ShouldResemble, []string{"a", "b", "b2", "c"})
			})
		})
	})
}
