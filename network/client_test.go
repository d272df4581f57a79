package network

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coursecast/coursecast/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	Convey("Given a server echoing the user agent", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.UserAgent()))
		}))
		Reset(server.Close)

		get := func(ua string) string {
			req, err := http.NewRequest(http.MethodGet, server.URL, nil)
			So(err, ShouldBeNil)
			if ua != "" {
				req.Header.Set("User-Agent", ua)
			}

			resp, err := Client.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			buf := make([]byte, 128)
			n, _ := resp.Body.Read(buf)
			return string(buf[:n])
		}

		Convey("Requests without one should carry the coursecast agent", func() {
			So(get(""), ShouldEqual, constant.UserAgent)
		})

		Convey("An explicit agent should be kept", func() {
			So(get("custom/1.0"), ShouldEqual, "custom/1.0")
		})
	})
}
