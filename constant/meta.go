// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

import _ "embed"

const (
	// Coursecast is the canonical application identifier used for filesystem paths and CLI branding.
	Coursecast = "coursecast"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is the default HTTP User-Agent string used when fetching stream manifests.
	UserAgent = Coursecast + "/" + Version
)

// Build metadata, injected at link time via -ldflags.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// AsciiArtLogo is the banner shown in the root command help.
//
//go:embed ascii.txt
var AsciiArtLogo string
