// Package version looks up newer coursecast releases.
package version

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/coursecast/coursecast/constant"
	"github.com/coursecast/coursecast/filesystem"
	"github.com/coursecast/coursecast/network"
	"github.com/coursecast/coursecast/where"
	"github.com/go-resty/resty/v2"
	"github.com/metafates/gache"
)

const releasesURL = "https://api.github.com/repos/coursecast/coursecast/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

type release struct {
	TagName string `json:"tag_name"`
}

// Latest retrieves the most recent stable application version identifier from the remote update registry.
// The result is cached for two days.
func Latest() (string, error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	var rel release
	resp, err := resty.NewWithClient(network.Client).
		SetTimeout(10*time.Second).
		R().
		SetHeader("User-Agent", constant.UserAgent).
		SetHeader("Accept", "application/vnd.github+json").
		SetResult(&rel).
		Get(releasesURL)
	if err != nil {
		return "", err
	}

	if resp.IsError() {
		return "", fmt.Errorf("release lookup: %s", resp.Status())
	}

	if rel.TagName == "" {
		return "", errors.New("empty tag name")
	}

	ver = strings.TrimPrefix(rel.TagName, "v")
	_ = versionCacher.Set(ver)
	return ver, nil
}
