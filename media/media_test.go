package media

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBus(t *testing.T) {
	Convey("Given a bus with two subscribers", t, func() {
		var bus Bus
		var got []string

		cancelA := bus.Subscribe(func(ev Event) { got = append(got, "a:"+ev.Kind.String()) })
		bus.Subscribe(func(ev Event) { got = append(got, "b:"+ev.Kind.String()) })

		Convey("When an event is emitted", func() {
			bus.Emit(Event{Kind: Play})

			Convey("Then both receive it in registration order", func() {
				So(got, ShouldResemble, []string{"a:play", "b:play"})
			})
		})

		Convey("When one unsubscribes", func() {
			cancelA()
			cancelA()
			bus.Emit(Event{Kind: Pause})

			Convey("Then only the other receives events", func() {
				So(got, ShouldResemble, []string{"b:pause"})
				So(bus.Subscribers(), ShouldEqual, 1)
			})
		})
	})
}

func TestEventString(t *testing.T) {
	Convey("Events render their payload", t, func() {
		So(Event{Kind: TimeUpdate, Time: 1.5}.String(), ShouldEqual, "timeupdate(1.50)")
		So(Event{Kind: LoadedMetadata, Duration: 600}.String(), ShouldEqual, "loadedmetadata(600.00)")
		So(Event{Kind: Error, Err: errors.New("decode")}.String(), ShouldEqual, "error(decode)")
		So(Event{Kind: Waiting}.String(), ShouldEqual, "waiting")
		So(Kind(99).String(), ShouldEqual, "kind(99)")
	})
}
