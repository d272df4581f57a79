package transport

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/coursecast/coursecast/constant"
	"github.com/coursecast/coursecast/filesystem"
	"github.com/coursecast/coursecast/key"
	"github.com/coursecast/coursecast/log"
	"github.com/coursecast/coursecast/network"
	"github.com/go-resty/resty/v2"
	"github.com/grafov/m3u8"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Options configure an adaptive Client.
type Options struct {
	// MaxBandwidth caps variant selection in bits per second. 0 means unlimited.
	MaxBandwidth uint32
	// Timeout bounds a whole Resolve call.
	Timeout time.Duration
	// Retries is the number of extra attempts for failed manifest requests.
	Retries int
	// RetryWait is the initial backoff between attempts.
	RetryWait time.Duration
	// HTTPClient defaults to network.Client.
	HTTPClient *http.Client
}

// Client is the adaptive-streaming Resolver.
type Client struct {
	http         *resty.Client
	maxBandwidth uint32
	timeout      time.Duration
}

// New returns a Client for the given options.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = network.Client
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 200 * time.Millisecond
	}

	r := resty.NewWithClient(hc).
		SetLogger(restyLogger{}).
		SetHeader("User-Agent", constant.UserAgent).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(4 * opts.RetryWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || (resp != nil && resp.StatusCode() >= http.StatusInternalServerError)
		})

	return &Client{
		http:         r,
		maxBandwidth: opts.MaxBandwidth,
		timeout:      opts.Timeout,
	}
}

// NewFromConfig returns a Client configured from the transport.* keys.
func NewFromConfig() *Client {
	return New(Options{
		MaxBandwidth: uint32(max(viper.GetInt(key.TransportMaxBandwidth), 0)),
		Timeout:      time.Duration(viper.GetInt(key.TransportTimeout)) * time.Second,
		Retries:      viper.GetInt(key.TransportRetries),
	})
}

// Resolve opens the locator. Adaptive manifests are fetched and validated
// and HLS master playlists are narrowed to one variant.
func (c *Client) Resolve(ctx context.Context, locator string) (*Stream, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, ErrUnsupported
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	kind := Detect(locator)
	switch kind {
	case HLS:
		return c.resolveHLS(ctx, locator)
	case DASH:
		return c.resolveDASH(ctx, locator)
	default:
		return &Stream{URL: locator, Kind: Progressive, Headers: c.headers(locator)}, nil
	}
}

func (c *Client) resolveHLS(ctx context.Context, locator string) (*Stream, error) {
	playlist, err := c.decodeHLS(ctx, locator)
	if err != nil {
		return nil, err
	}

	stream := &Stream{URL: locator, Kind: HLS, Headers: c.headers(locator)}

	if master, ok := playlist.(*m3u8.MasterPlaylist); ok {
		variant, ok := c.pickVariant(master)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no variants", ErrManifest, locator)
		}

		stream.URL, err = resolveReference(locator, variant.URI)
		if err != nil {
			return nil, fmt.Errorf("%w: variant uri %q: %w", ErrManifest, variant.URI, err)
		}
		stream.Variant = &Variant{
			Bandwidth:  variant.Bandwidth,
			Resolution: variant.Resolution,
			Codecs:     variant.Codecs,
		}

		log.Infof("selected variant %s (%d bps) from %s", variant.Resolution, variant.Bandwidth, locator)

		if playlist, err = c.decodeHLS(ctx, stream.URL); err != nil {
			return nil, err
		}
	}

	media, ok := playlist.(*m3u8.MediaPlaylist)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a media playlist", ErrManifest, stream.URL)
	}

	segments := lo.Filter(media.Segments, func(s *m3u8.MediaSegment, _ int) bool { return s != nil })
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: %s has no segments", ErrManifest, stream.URL)
	}
	stream.Duration = lo.SumBy(segments, func(s *m3u8.MediaSegment) float64 { return s.Duration })

	return stream, nil
}

func (c *Client) decodeHLS(ctx context.Context, locator string) (m3u8.Playlist, error) {
	body, err := c.fetch(ctx, locator)
	if err != nil {
		return nil, err
	}

	playlist, _, err := m3u8.DecodeFrom(bytes.NewReader(body), false)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrManifest, locator, err)
	}
	return playlist, nil
}

// pickVariant returns the highest bandwidth variant within the cap, or the
// lowest one when every variant exceeds it.
func (c *Client) pickVariant(master *m3u8.MasterPlaylist) (*m3u8.Variant, bool) {
	variants := lo.Filter(master.Variants, func(v *m3u8.Variant, _ int) bool {
		return v != nil && !v.Iframe && v.URI != ""
	})
	if len(variants) == 0 {
		return nil, false
	}

	fitting := lo.Filter(variants, func(v *m3u8.Variant, _ int) bool {
		return c.maxBandwidth == 0 || v.Bandwidth <= c.maxBandwidth
	})
	if len(fitting) == 0 {
		return lo.MinBy(variants, func(a, b *m3u8.Variant) bool { return a.Bandwidth < b.Bandwidth }), true
	}

	return lo.MaxBy(fitting, func(a, b *m3u8.Variant) bool { return a.Bandwidth > b.Bandwidth }), true
}

// mpd is the part of a DASH manifest needed to validate it.
type mpd struct {
	XMLName  xml.Name
	Type     string `xml:"type,attr"`
	Duration string `xml:"mediaPresentationDuration,attr"`
	Periods  []struct {
		ID string `xml:"id,attr"`
	} `xml:"Period"`
}

func (c *Client) resolveDASH(ctx context.Context, locator string) (*Stream, error) {
	body, err := c.fetch(ctx, locator)
	if err != nil {
		return nil, err
	}

	var manifest mpd
	if err := xml.Unmarshal(body, &manifest); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrManifest, locator, err)
	}
	if manifest.XMLName.Local != "MPD" {
		return nil, fmt.Errorf("%w: %s root is <%s>, want <MPD>", ErrManifest, locator, manifest.XMLName.Local)
	}
	if len(manifest.Periods) == 0 {
		return nil, fmt.Errorf("%w: %s has no periods", ErrManifest, locator)
	}

	duration, err := parseISODuration(manifest.Duration)
	if err != nil {
		log.Warnf("dash manifest %s: %v", locator, err)
	}

	return &Stream{
		URL:      locator,
		Kind:     DASH,
		Headers:  c.headers(locator),
		Duration: duration,
	}, nil
}

// fetch reads a manifest from the network or, for plain paths, the filesystem.
func (c *Client) fetch(ctx context.Context, locator string) ([]byte, error) {
	if !isRemote(locator) {
		if strings.Contains(locator, "://") {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, locator)
		}

		body, err := filesystem.API().ReadFile(locator)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrManifest, err)
		}
		return body, nil
	}

	resp, err := c.http.R().SetContext(ctx).Get(locator)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", ErrManifest, locator, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: fetch %s: %s", ErrManifest, locator, resp.Status())
	}

	return resp.Body(), nil
}

// headers are the request headers the media element must send for locator.
func (c *Client) headers(locator string) map[string]string {
	if !isRemote(locator) {
		return nil
	}
	return map[string]string{"User-Agent": constant.UserAgent}
}

// resolveReference resolves a playlist URI relative to the playlist it was found in.
func resolveReference(base, ref string) (string, error) {
	if !isRemote(base) {
		if filepath.IsAbs(ref) || isRemote(ref) {
			return ref, nil
		}
		return filepath.Join(filepath.Dir(base), ref), nil
	}

	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(r).String(), nil
}

// restyLogger routes resty's diagnostics into the application log.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) { log.Errorf(format, v...) }
func (restyLogger) Warnf(format string, v ...any)  { log.Warnf(format, v...) }
func (restyLogger) Debugf(format string, v ...any) { log.Debugf(format, v...) }
