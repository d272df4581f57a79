package filesystem

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("Filesystem backend", t, func() {
		Reset(SetOsFs)

		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("Given a gache cache on the memory backend", t, func() {
		SetMemMapFs()
		Reset(SetOsFs)

		path := filepath.Join("/cache", "coursecast", "volume.json")
		cache := gache.New[float64](&gache.Options{
			Path:       path,
			Lifetime:   time.Hour,
			FileSystem: &GacheFs{},
		})

		Convey("A stored value should be written through the backend", func() {
			So(cache.Set(0.4), ShouldBeNil)
			So(lo.Must(API().Exists(path)), ShouldBeTrue)

			v, expired, err := cache.Get()
			So(err, ShouldBeNil)
			So(expired, ShouldBeFalse)
			So(v, ShouldEqual, 0.4)
		})
	})
}
