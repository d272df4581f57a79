// Package transport turns a course's media locator into something the media
// element can open: progressive files pass through, adaptive manifests are
// fetched, validated and narrowed to a single variant.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Kind is the delivery format of a stream.
type Kind int

const (
	Progressive Kind = iota
	HLS
	DASH
)

func (k Kind) String() string {
	switch k {
	case Progressive:
		return "progressive"
	case HLS:
		return "hls"
	case DASH:
		return "dash"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Adaptive reports whether the format needs an adaptive client.
func (k Kind) Adaptive() bool {
	return k == HLS || k == DASH
}

var (
	// ErrUnsupported is returned for locators no client can open.
	ErrUnsupported = errors.New("unsupported media locator")
	// ErrManifest wraps adaptive manifests that could not be fetched or parsed.
	ErrManifest = errors.New("invalid manifest")
)

// Variant describes the rendition chosen from an HLS master playlist.
type Variant struct {
	Bandwidth  uint32
	Resolution string
	Codecs     string
}

// Stream is a resolved, playable source.
type Stream struct {
	// URL is what the media element loads.
	URL  string
	Kind Kind
	// Headers must accompany every request for URL.
	Headers map[string]string
	// Variant is set when a master playlist was narrowed to one rendition.
	Variant *Variant
	// Duration is the manifest's total length in seconds, 0 if unknown.
	Duration float64
}

// Resolver resolves a media locator into a Stream. Resolve may block.
type Resolver interface {
	Resolve(ctx context.Context, locator string) (*Stream, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, locator string) (*Stream, error)

func (f ResolverFunc) Resolve(ctx context.Context, locator string) (*Stream, error) {
	return f(ctx, locator)
}

// Direct is a Resolver that hands every locator to the media element unchanged.
var Direct = ResolverFunc(func(_ context.Context, locator string) (*Stream, error) {
	if strings.TrimSpace(locator) == "" {
		return nil, ErrUnsupported
	}
	return &Stream{URL: locator, Kind: Detect(locator)}, nil
})

// Detect classifies a locator by the extension of its path.
func Detect(locator string) Kind {
	p := locator
	if u, err := url.Parse(locator); err == nil && u.Scheme != "" {
		p = u.Path
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".m3u8", ".m3u":
		return HLS
	case ".mpd":
		return DASH
	default:
		return Progressive
	}
}

// isRemote reports whether the locator is an http(s) URL.
func isRemote(locator string) bool {
	u, err := url.Parse(locator)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
