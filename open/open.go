// Package open hands course pages and video URLs to the system's default handler.
package open

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/coursecast/coursecast/log"
)

const (
	windows = "windows"
	darwin  = "darwin"
	linux   = "linux"
	android = "android"
)

// URL opens an http(s) address with app, or with the default handler when app is empty.
// It does not wait for the handler to exit.
func URL(address, app string) error {
	u, err := url.Parse(address)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: not an http url", address)
	}

	name, args, ok := command(runtime.GOOS, u.String(), app)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}

	log.Infof("opening %s with %s", u.Redacted(), name)
	return exec.Command(name, args...).Start()
}

// command returns the program and arguments that open address on goos.
func command(goos, address, app string) (name string, args []string, ok bool) {
	switch goos {
	case windows:
		if app != "" {
			return "cmd", []string{"/C", "start", "", app, strings.ReplaceAll(address, "&", "^&")}, true
		}
		return filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe"), []string{"url.dll,FileProtocolHandler", address}, true
	case darwin:
		if app != "" {
			return "open", []string{"-a", app, address}, true
		}
		return "open", []string{address}, true
	case linux:
		if app != "" {
			return app, []string{address}, true
		}
		return "xdg-open", []string{address}, true
	case android:
		return "termux-open", []string{address}, true
	default:
		return "", nil, false
	}
}
