package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/coursecast/coursecast/log"
	"github.com/coursecast/coursecast/media"
)

// observed lists the properties whose changes are translated into media events.
var observed = []string{
	"time-pos",
	"duration",
	"pause",
	"volume",
	"paused-for-cache",
}

// eventListener holds a persistent IPC connection on which properties are
// observed. mpv scopes observations to the connection that requested them.
type eventListener struct {
	socketPath string
	emit       func(media.Event)

	mu        sync.Mutex
	conn      net.Conn
	listening bool
	done      chan struct{}
}

func newEventListener(socketPath string, emit func(media.Event)) *eventListener {
	return &eventListener{
		socketPath: socketPath,
		emit:       emit,
	}
}

// Start subscribes to property changes and starts the read loop.
func (l *eventListener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.listening {
		return nil
	}

	conn, err := net.Dial("unix", l.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		if err := writeCommand(conn, requestIDs.Add(1), []any{"observe_property", i + 1, name}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	l.conn = conn
	l.listening = true
	l.done = make(chan struct{})

	go l.readLoop(conn, l.done)

	log.Infof("mpv event listener started on %s", l.socketPath)
	return nil
}

// Stop closes the connection and waits for the read loop to exit.
func (l *eventListener) Stop() {
	l.mu.Lock()
	if !l.listening {
		l.mu.Unlock()
		return
	}
	l.listening = false
	_ = l.conn.Close()
	done := l.done
	l.mu.Unlock()

	<-done
}

func (l *eventListener) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		var msg ipcMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}

		if ev, ok := translate(&msg); ok {
			l.emit(ev)
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warnf("event listener read error: %v", err)
	}
}

// translate maps an mpv event line onto a media event.
func translate(msg *ipcMessage) (media.Event, bool) {
	switch msg.Event {
	case "property-change":
		return translateProperty(msg.Name, msg.Data)
	case "start-file":
		return media.Event{Kind: media.LoadStart}, true
	case "file-loaded":
		return media.Event{Kind: media.CanPlay}, true
	case "playback-restart":
		return media.Event{Kind: media.Playing}, true
	case "end-file":
		switch msg.Reason {
		case "eof":
			return media.Event{Kind: media.Ended}, true
		case "error":
			reason := msg.FileError
			if reason == "" {
				reason = "unknown error"
			}
			return media.Event{Kind: media.Error, Err: fmt.Errorf("%w: %s", ErrPlayback, reason)}, true
		}
	}

	return media.Event{}, false
}

func translateProperty(name string, data any) (media.Event, bool) {
	switch name {
	case "time-pos":
		if t, ok := data.(float64); ok {
			return media.Event{Kind: media.TimeUpdate, Time: t}, true
		}
	case "duration":
		if d, ok := data.(float64); ok && d > 0 {
			return media.Event{Kind: media.LoadedMetadata, Duration: d}, true
		}
	case "pause":
		if paused, ok := data.(bool); ok {
			if paused {
				return media.Event{Kind: media.Pause}, true
			}
			return media.Event{Kind: media.Play}, true
		}
	case "volume":
		if v, ok := data.(float64); ok {
			return media.Event{Kind: media.VolumeChange, Volume: v / 100}, true
		}
	case "paused-for-cache":
		if stalled, ok := data.(bool); ok {
			if stalled {
				return media.Event{Kind: media.Waiting}, true
			}
			return media.Event{Kind: media.Playing}, true
		}
	}

	return media.Event{}, false
}
