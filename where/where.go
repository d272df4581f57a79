// Package where resolves the files coursecast keeps on disk: settings,
// watch progress, the saved volume, caches and player sockets.
package where

import (
	"os"
	"path/filepath"

	"github.com/coursecast/coursecast/constant"
	"github.com/coursecast/coursecast/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the config directory, and with it the progress and volume files.
const EnvConfigPath = "COURSECAST_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config is the settings directory, os.UserConfigDir()/coursecast unless overridden.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Coursecast))
}

// Cache holds data that can be rebuilt: search history and release lookups.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return ensureDir(filepath.Join(base, constant.Coursecast))
}

// Logs holds one log file per day.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Progress resolves the absolute path to the watch progress persistence file.
func Progress() string {
	return filepath.Join(Config(), "progress.json")
}

// Volume resolves the absolute path to the file holding the last used playback volume.
func Volume() string {
	return filepath.Join(Config(), "volume.json")
}

// Queries resolves the path of the course search history.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Catalog resolves the default path of a user-provided course catalog.
func Catalog() string {
	return filepath.Join(Config(), "courses.json")
}

// Temp holds player IPC sockets. It is wiped on startup.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Coursecast))
}
