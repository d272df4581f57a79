package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coursecast/coursecast/constant"
	"github.com/coursecast/coursecast/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

const masterPlaylist = `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=800000,RESOLUTION=640x360,CODECS="avc1.4d401e,mp4a.40.2"
low/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2500000,RESOLUTION=1280x720
mid/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=5000000,RESOLUTION=1920x1080
high/index.m3u8
`

const mediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:10.0,
seg0.ts
#EXTINF:10.0,
seg1.ts
#EXTINF:4.5,
seg2.ts
#EXT-X-ENDLIST
`

const dashManifest = `<?xml version="1.0" encoding="UTF-8"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="static" mediaPresentationDuration="PT10M">
  <Period id="1"></Period>
</MPD>`

func newManifestServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	var flaky atomic.Int32
	mux := http.NewServeMux()

	mux.HandleFunc("/course/master.m3u8", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != constant.UserAgent {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(masterPlaylist))
	})
	for _, v := range []string{"low", "mid", "high"} {
		mux.HandleFunc("/course/"+v+"/index.m3u8", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(mediaPlaylist))
		})
	}
	mux.HandleFunc("/single.m3u8", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(mediaPlaylist))
	})
	mux.HandleFunc("/flaky.m3u8", func(w http.ResponseWriter, _ *http.Request) {
		if flaky.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(mediaPlaylist))
	})
	mux.HandleFunc("/garbage.m3u8", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not a playlist</html>"))
	})
	mux.HandleFunc("/empty.m3u8", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("#EXTM3U\n#EXT-X-TARGETDURATION:10\n#EXT-X-ENDLIST\n"))
	})
	mux.HandleFunc("/course.mpd", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(dashManifest))
	})
	mux.HandleFunc("/wrong.mpd", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body/></html>`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &flaky
}

func TestDetect(t *testing.T) {
	Convey("Locators are classified by extension", t, func() {
		So(Detect("https://cdn.example.com/a/master.m3u8"), ShouldEqual, HLS)
		So(Detect("https://cdn.example.com/a/MASTER.M3U8?token=1"), ShouldEqual, HLS)
		So(Detect("https://cdn.example.com/a/manifest.mpd"), ShouldEqual, DASH)
		So(Detect("https://cdn.example.com/a/video.mp4"), ShouldEqual, Progressive)
		So(Detect("https://cdn.example.com/a/video.mp4#t=.m3u8"), ShouldEqual, Progressive)
		So(Detect("/home/me/lesson.m3u8"), ShouldEqual, HLS)
		So(HLS.Adaptive(), ShouldBeTrue)
		So(Progressive.Adaptive(), ShouldBeFalse)
		So(DASH.String(), ShouldEqual, "dash")
	})
}

func TestClientResolve(t *testing.T) {
	Convey("Given a manifest server", t, func() {
		srv, flaky := newManifestServer(t)
		ctx := context.Background()

		Convey("When a master playlist is resolved without a bandwidth cap", func() {
			stream, err := New(Options{}).Resolve(ctx, srv.URL+"/course/master.m3u8")

			Convey("Then the best variant is selected and measured", func() {
				So(err, ShouldBeNil)
				So(stream.Kind, ShouldEqual, HLS)
				So(stream.URL, ShouldEqual, srv.URL+"/course/high/index.m3u8")
				So(stream.Variant.Resolution, ShouldEqual, "1920x1080")
				So(stream.Duration, ShouldAlmostEqual, 24.5)
				So(stream.Headers["User-Agent"], ShouldEqual, constant.UserAgent)
			})
		})

		Convey("When a bandwidth cap is set", func() {
			stream, err := New(Options{MaxBandwidth: 3_000_000}).Resolve(ctx, srv.URL+"/course/master.m3u8")

			Convey("Then the best variant under the cap is selected", func() {
				So(err, ShouldBeNil)
				So(stream.URL, ShouldEqual, srv.URL+"/course/mid/index.m3u8")
			})
		})

		Convey("When every variant exceeds the cap", func() {
			stream, err := New(Options{MaxBandwidth: 100}).Resolve(ctx, srv.URL+"/course/master.m3u8")

			Convey("Then the lowest variant is selected", func() {
				So(err, ShouldBeNil)
				So(stream.URL, ShouldEqual, srv.URL+"/course/low/index.m3u8")
				So(stream.Variant.Codecs, ShouldEqual, "avc1.4d401e,mp4a.40.2")
			})
		})

		Convey("When a media playlist is resolved", func() {
			stream, err := New(Options{}).Resolve(ctx, srv.URL+"/single.m3u8")

			Convey("Then it is used as is", func() {
				So(err, ShouldBeNil)
				So(stream.URL, ShouldEqual, srv.URL+"/single.m3u8")
				So(stream.Variant, ShouldBeNil)
			})
		})

		Convey("When the server fails once", func() {
			stream, err := New(Options{Retries: 2, RetryWait: time.Millisecond}).Resolve(ctx, srv.URL+"/flaky.m3u8")

			Convey("Then the request is retried", func() {
				So(err, ShouldBeNil)
				So(stream.Kind, ShouldEqual, HLS)
				So(flaky.Load(), ShouldEqual, int32(2))
			})
		})

		Convey("When manifests are missing or malformed", func() {
			client := New(Options{})

			Convey("Then a manifest error is returned", func() {
				for _, p := range []string{"/missing.m3u8", "/garbage.m3u8", "/empty.m3u8", "/wrong.mpd"} {
					_, err := client.Resolve(ctx, srv.URL+p)
					So(errors.Is(err, ErrManifest), ShouldBeTrue)
				}
			})
		})

		Convey("When a DASH manifest is resolved", func() {
			stream, err := New(Options{}).Resolve(ctx, srv.URL+"/course.mpd")

			Convey("Then it is validated and its duration read", func() {
				So(err, ShouldBeNil)
				So(stream.Kind, ShouldEqual, DASH)
				So(stream.Duration, ShouldEqual, 600.0)
			})
		})

		Convey("When the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := New(Options{}).Resolve(cancelled, srv.URL+"/single.m3u8")

			Convey("Then resolution fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given a progressive locator", t, func() {
		stream, err := New(Options{}).Resolve(context.Background(), " https://cdn.example.com/video.mp4 ")

		Convey("Then it passes through untouched", func() {
			So(err, ShouldBeNil)
			So(stream.URL, ShouldEqual, "https://cdn.example.com/video.mp4")
			So(stream.Kind, ShouldEqual, Progressive)
		})
	})

	Convey("Given an empty locator", t, func() {
		_, err := New(Options{}).Resolve(context.Background(), "  ")

		Convey("Then it is unsupported", func() {
			So(errors.Is(err, ErrUnsupported), ShouldBeTrue)
		})
	})

	Convey("Given playlists on the local filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.MkdirAll("/videos/high", 0o755), ShouldBeNil)
		So(fs.WriteFile("/videos/master.m3u8", []byte(masterPlaylist), 0o644), ShouldBeNil)
		So(fs.WriteFile("/videos/high/index.m3u8", []byte(mediaPlaylist), 0o644), ShouldBeNil)

		Reset(filesystem.SetOsFs)

		stream, err := New(Options{}).Resolve(context.Background(), "/videos/master.m3u8")

		Convey("Then variants resolve relative to the playlist directory", func() {
			So(err, ShouldBeNil)
			So(stream.URL, ShouldEqual, "/videos/high/index.m3u8")
			So(stream.Headers, ShouldBeNil)
		})
	})
}

func TestDirect(t *testing.T) {
	Convey("Direct passes locators through", t, func() {
		stream, err := Direct.Resolve(context.Background(), "https://cdn.example.com/a.m3u8")
		So(err, ShouldBeNil)
		So(stream.URL, ShouldEqual, "https://cdn.example.com/a.m3u8")
		So(stream.Kind, ShouldEqual, HLS)

		_, err = Direct.Resolve(context.Background(), "")
		So(errors.Is(err, ErrUnsupported), ShouldBeTrue)
	})
}

func TestParseISODuration(t *testing.T) {
	Convey("xs:duration values convert to seconds", t, func() {
		cases := map[string]float64{
			"":           0,
			"PT10M":      600,
			"PT1H2M3.5S": 3723.5,
			"P1DT1S":     86401,
			"PT0.25S":    0.25,
		}
		for in, want := range cases {
			got, err := parseISODuration(in)
			So(err, ShouldBeNil)
			So(got, ShouldAlmostEqual, want)
		}

		for _, bad := range []string{"P", "PT", "10M", "P1Y"} {
			_, err := parseISODuration(bad)
			So(err, ShouldNotBeNil)
		}
	})
}
