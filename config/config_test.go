package config

import (
	"testing"

	"github.com/coursecast/coursecast/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("Every field should have its default", func() {
			for name, field := range Default {
				So(viper.Get(name), ShouldEqual, field.Value)
			}
		})

		Convey("Nothing should be rejected with the defaults", func() {
			So(Rejected(), ShouldBeEmpty)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("progress.redis.addr"), ShouldEqual, "progress_redis_addr")
		})
	})
}

func TestSetupRejectsInvalidValues(t *testing.T) {
	Convey("Given an environment override breaking its rule", t, func() {
		t.Setenv("COURSECAST_PROGRESS_BACKEND", "sqlite")

		So(Setup(), ShouldBeNil)

		Convey("The default should be used instead", func() {
			So(viper.GetString(key.ProgressBackend), ShouldEqual, "disk")
			So(Rejected(), ShouldHaveLength, 1)
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the registered fields", t, func() {
		Convey("Every default should satisfy its own rule", func() {
			for _, field := range Default {
				So(field.Check(field.Value), ShouldBeNil)
			}
		})

		Convey("The progress backend should only accept known stores", func() {
			field := Default[key.ProgressBackend]
			So(field.Check("redis"), ShouldBeNil)
			So(field.Check("sqlite"), ShouldNotBeNil)
		})

		Convey("The default volume should be a percentage", func() {
			field := Default[key.PlayerDefaultVolume]
			So(field.Check(150), ShouldNotBeNil)
			So(field.Check(-1), ShouldNotBeNil)
			So(field.Check(40), ShouldBeNil)
		})

		Convey("Env names should carry the application prefix", func() {
			field := Default[key.PlayerSaveInterval]
			So(field.Env(), ShouldEqual, "COURSECAST_PLAYER_SAVE_INTERVAL")
		})
	})
}
