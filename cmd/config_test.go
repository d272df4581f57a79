package cmd

import (
	"testing"

	"github.com/coursecast/coursecast/config"
	"github.com/coursecast/coursecast/key"
	"github.com/coursecast/coursecast/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseValue(t *testing.T) {
	Convey("Given configuration fields of each type", t, func() {
		Convey("Integers should be parsed", func() {
			v, err := parseValue(config.Default[key.PlayerSaveInterval], []string{"10"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 10)
		})

		Convey("Malformed integers should be rejected", func() {
			_, err := parseValue(config.Default[key.PlayerSaveInterval], []string{"ten"})
			So(err, ShouldNotBeNil)
		})

		Convey("Booleans should be parsed", func() {
			v, err := parseValue(config.Default[key.PlayerAutoplay], []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)
		})

		Convey("Strings should be taken as is", func() {
			v, err := parseValue(config.Default[key.ProgressBackend], []string{"redis"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "redis")
		})
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("A mistyped key should suggest the closest one", t, func() {
		err := errUnknownKey("player.save_intervl")
		So(err.Error(), ShouldContainSubstring, key.PlayerSaveInterval)
	})
}

func TestEnvVars(t *testing.T) {
	Convey("Supported environment variables", t, func() {
		vars := envVars()
		names := lo.Map(vars, func(v envVar, _ int) string { return v.name })

		Convey("Should include the config path override", func() {
			So(names, ShouldContain, where.EnvConfigPath)
		})

		Convey("Should include every configuration field", func() {
			So(len(vars), ShouldEqual, len(config.Default)+1)
			So(names, ShouldContain, "COURSECAST_PROGRESS_BACKEND")
		})

		Convey("Should be sorted", func() {
			for i := 1; i < len(names); i++ {
				So(names[i-1] < names[i], ShouldBeTrue)
			}
		})
	})
}
