// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Playback - these keys govern the media element and the playback session.
const (
	Player                = "player.default"
	PlayerAutoplay        = "player.autoplay"
	PlayerResumeThreshold = "player.resume_threshold"
	PlayerSaveInterval    = "player.save_interval"
	PlayerSkipSeconds     = "player.skip_seconds"
	PlayerVolumeStep      = "player.volume_step"
	PlayerDefaultVolume   = "player.default_volume"
)

// Stream Transport - these keys configure manifest resolution for adaptive streams.
const (
	TransportMaxBandwidth = "transport.max_bandwidth"
	TransportTimeout      = "transport.timeout"
	TransportRetries      = "transport.retries"
)

// Progress Persistence - these keys select and configure the watch progress backend.
const (
	ProgressBackend       = "progress.backend"
	ProgressRedisAddr     = "progress.redis.addr"
	ProgressRedisPassword = "progress.redis.password"
	ProgressRedisDB       = "progress.redis.db"
)

// Course Catalog - these keys control where courses come from and how they are searched.
const (
	CatalogPath                = "catalog.path"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI)
const (
	TUIItemSpacing  = "tui.item_spacing"
	TUIShowProgress = "tui.show_progress"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
