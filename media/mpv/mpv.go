// Package mpv implements media.Element on top of an mpv process driven over its JSON-IPC socket.
package mpv

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/coursecast/coursecast/log"
	"github.com/coursecast/coursecast/media"
	"github.com/coursecast/coursecast/where"
)

var (
	// ErrNotRunning is returned by commands sent before the player was started.
	ErrNotRunning = errors.New("mpv is not running")
	// ErrPlayback wraps failures reported by mpv for the loaded file.
	ErrPlayback = errors.New("mpv playback failed")
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
	killGrace         = time.Second
)

// Element is a media.Element backed by a long-lived idle mpv process.
type Element struct {
	media.Bus

	binary     string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	listener   *eventListener

	mu      sync.Mutex // serializes IPC exchanges
	startMu sync.Mutex // guards process startup and shutdown
}

// New returns an Element that will launch the given mpv binary on first Load.
// An empty binary selects "mpv" from PATH.
func New(binary string) *Element {
	if binary == "" {
		binary = "mpv"
	}

	exited := make(chan struct{})
	close(exited)

	return &Element{
		binary: binary,
		exited: exited,
	}
}

// Wait returns a channel that is closed when the mpv process exits.
func (e *Element) Wait() <-chan struct{} {
	e.startMu.Lock()
	defer e.startMu.Unlock()
	return e.exited
}

// Running reports whether the mpv process is alive.
func (e *Element) Running() bool {
	select {
	case <-e.Wait():
		return false
	default:
		return true
	}
}

// start launches an idle mpv with an IPC socket and attaches the event listener.
func (e *Element) start() error {
	e.startMu.Lock()
	defer e.startMu.Unlock()

	select {
	case <-e.exited:
	default:
		return nil
	}

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Errorf("generate socket name: %w", err)
	}
	socketPath := filepath.Join(where.Temp(), fmt.Sprintf("mpv-%x.sock", randomBytes))

	// Only the IPC plumbing is set here. The user's mpv.conf stays in charge of rendering.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=no",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
	}

	cmd := exec.Command(e.binary, args...)
	detach(cmd)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := waitForSocket(socketPath, exited); err != nil {
		select {
		case <-exited:
		default:
			log.Warnf("stopping mpv: socket never became ready")
			terminate(cmd, exited, killGrace)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	e.mu.Lock()
	e.socketPath = socketPath
	e.mu.Unlock()

	e.cmd = cmd
	e.exited = exited

	if e.listener != nil {
		e.listener.Stop()
	}
	e.listener = newEventListener(socketPath, e.Emit)
	if err := e.listener.Start(); err != nil {
		return err
	}

	log.Infof("mpv started on socket %s", socketPath)
	return nil
}

// attach drives an mpv that is already listening on socketPath.
func (e *Element) attach(socketPath string) error {
	e.startMu.Lock()
	defer e.startMu.Unlock()

	e.mu.Lock()
	e.socketPath = socketPath
	e.mu.Unlock()

	e.exited = make(chan struct{})
	e.listener = newEventListener(socketPath, e.Emit)
	return e.listener.Start()
}

// waitForSocket polls until the IPC socket is accepting connections.
func waitForSocket(socketPath string, exited <-chan struct{}) error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", socketPath, socketWaitRetries)
}

// Load replaces the current file. Initial position, volume, mute and pause state
// are applied as properties before loadfile so they take effect on open.
func (e *Element) Load(ctx context.Context, src media.Source) error {
	target, err := sanitizeMediaTarget(src.URL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if err := e.start(); err != nil {
		return err
	}

	start := "none"
	if src.StartAt > 0 {
		start = fmt.Sprintf("+%.3f", src.StartAt)
	}

	props := []struct {
		name  string
		value any
	}{
		{"force-media-title", sanitizeTitle(src.Title)},
		{"http-header-fields", headerFields(src.Headers)},
		{"volume", src.Volume * 100},
		{"mute", src.Muted},
		{"start", start},
		{"pause", !src.Autoplay},
	}

	for _, p := range props {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := e.sendCommand("set_property", p.name, p.value); err != nil {
			return fmt.Errorf("set %s: %w", p.name, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	_, err = e.sendCommand("loadfile", target, "replace")
	return err
}

// Unload stops playback and clears the playlist, leaving mpv idle.
func (e *Element) Unload() error {
	if !e.Running() {
		return nil
	}
	_, err := e.sendCommand("stop")
	return err
}

func (e *Element) Play() error {
	return e.set("pause", false)
}

func (e *Element) Pause() error {
	return e.set("pause", true)
}

// Seek moves playback to the given absolute position in seconds.
func (e *Element) Seek(seconds float64) error {
	_, err := e.sendCommand("seek", seconds, "absolute")
	return err
}

// SetVolume applies a [0, 1] volume scalar using mpv's 0-100 scale.
func (e *Element) SetVolume(v float64) error {
	return e.set("volume", v*100)
}

func (e *Element) SetMuted(muted bool) error {
	return e.set("mute", muted)
}

func (e *Element) set(property string, value any) error {
	_, err := e.sendCommand("set_property", property, value)
	return err
}

// Close shuts down the mpv process and cleans up resources.
func (e *Element) Close() error {
	e.startMu.Lock()
	defer e.startMu.Unlock()

	if e.listener != nil {
		e.listener.Stop()
		e.listener = nil
	}

	if e.cmd == nil {
		return nil
	}

	_, _ = e.sendCommand("quit")

	select {
	case <-e.exited:
	case <-time.After(quitTimeout):
		terminate(e.cmd, e.exited, killGrace)
	}

	e.mu.Lock()
	_ = os.Remove(e.socketPath)
	e.socketPath = ""
	e.mu.Unlock()

	e.cmd = nil
	return nil
}

// headerFields renders headers in mpv's comma-separated "Name: value" form.
func headerFields(headers map[string]string) string {
	var b strings.Builder
	for k, v := range headers {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(fmt.Sprintf("%s: %s", k, strings.ReplaceAll(v, ",", "%2C")))
	}
	return b.String()
}

// sanitizeMediaTarget validates that a locator is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// URLs must not look like flags
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

// sanitizeTitle flattens a title onto a single line.
func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
