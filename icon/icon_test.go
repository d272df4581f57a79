package icon

import (
	"testing"

	"github.com/coursecast/coursecast/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given the play icon", t, func() {
		Reset(func() { viper.Set(key.IconsVariant, plain) })

		Convey("It renders for each variant", func() {
			for _, variant := range AvailableVariants() {
				viper.Set(key.IconsVariant, variant)
				So(Get(Play), ShouldNotBeEmpty)
			}
		})

		Convey("An unknown variant falls back to plain", func() {
			viper.Set(key.IconsVariant, "retro")
			So(Get(Play), ShouldEqual, icons[Play].plain)
		})

		Convey("An unregistered icon renders as nothing", func() {
			So(Get(Icon(-1)), ShouldBeEmpty)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Every icon has a rendering for every variant", t, func() {
		for _, def := range icons {
			for _, variant := range AvailableVariants() {
				So(def.variant(variant), ShouldNotBeEmpty)
			}
		}
	})
}
