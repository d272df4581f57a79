package query

import (
	"testing"

	"github.com/coursecast/coursecast/filesystem"
	"github.com/coursecast/coursecast/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given remembered course searches", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)

		So(Remember("react", 1), ShouldBeNil)
		So(Remember("  Rust Systems  ", 10), ShouldBeNil)
		So(Remember("   ", 100), ShouldBeNil)

		Convey("Then suggestions are ranked", func() {
			s := SuggestMany("r")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "rust systems")
			So(s, ShouldNotContain, "")
		})

		Convey("Then remembering again raises the rank", func() {
			So(Remember("REACT", 50), ShouldBeNil)
			So(Suggest("r").MustGet(), ShouldEqual, "react")
		})

		Convey("Then nothing is suggested when disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(SuggestMany("r"), ShouldBeEmpty)
			So(Suggest("r").IsAbsent(), ShouldBeTrue)
		})

		Convey("It sanitizes input", func() {
			So(sanitize("  TypeScript  "), ShouldEqual, "typescript")
		})
	})
}
