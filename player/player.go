// Package player assembles the playback runtime: the event loop, the media
// element, the progress store and the modal controller that drives them.
package player

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/coursecast/coursecast/auth"
	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/clock"
	"github.com/coursecast/coursecast/key"
	"github.com/coursecast/coursecast/log"
	"github.com/coursecast/coursecast/loop"
	"github.com/coursecast/coursecast/media"
	"github.com/coursecast/coursecast/media/mpv"
	"github.com/coursecast/coursecast/modal"
	"github.com/coursecast/coursecast/playback"
	"github.com/coursecast/coursecast/progress"
	"github.com/coursecast/coursecast/transport"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"github.com/spf13/viper"
)

// ErrUnknownElement is returned when player.default names no known backend.
var ErrUnknownElement = errors.New("unknown player")

var elements = map[string]func() media.Element{
	"mpv": func() media.Element { return mpv.New("mpv") },
}

// Available lists the media backends that can be selected with player.default.
func Available() []string {
	names := lo.Keys(elements)
	sort.Strings(names)
	return names
}

// Options overrides parts of the runtime. Zero values are taken from the configuration.
type Options struct {
	Element  media.Element
	Store    progress.Store
	Resolver transport.Resolver
	Courses  modal.Courses
	Clock    clock.Clock
}

// Player owns a running playback runtime.
//
// The controller and everything behind it belong to the loop goroutine.
// Other goroutines reach them through Do.
type Player struct {
	loop       *loop.Loop
	device     *loop.Loop
	controller *modal.Controller
	state      *playback.State
	store      progress.Store
	element    media.Element

	cancel    context.CancelFunc
	running   conc.WaitGroup
	unsubAuth func()

	// account is the session the runtime writes progress for, empty when
	// nobody is signed in. Owned by the loop.
	account string
}

// New builds the runtime. Call Start before Do.
func New(opts *Options) (*Player, error) {
	if opts == nil {
		opts = &Options{}
	}

	element := opts.Element
	if element == nil {
		name := viper.GetString(key.Player)
		newElement, ok := elements[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownElement, name)
		}
		element = newElement()
	}

	store := opts.Store
	if store == nil {
		var err error
		if store, err = progress.NewStore(); err != nil {
			return nil, err
		}
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = transport.NewFromConfig()
	}

	courses := opts.Courses
	if courses == nil {
		loaded, err := catalog.Load()
		if err != nil {
			return nil, err
		}
		courses = loaded
	}

	c := opts.Clock
	if c == nil {
		c = clock.Real()
	}

	p := &Player{
		loop:    loop.New(),
		device:  loop.New(),
		store:   store,
		element: element,
	}

	for name, l := range map[string]*loop.Loop{"main": p.loop, "device": p.device} {
		l.OnPanic(func(r *panics.Recovered) {
			log.Errorf("panic in %s loop: %v\n%s", name, r.Value, r.Stack)
		})
	}

	volume := float64(viper.GetInt(key.PlayerDefaultVolume)) / 100
	if saved, ok := store.Volume().Get(); ok {
		volume = saved
	}
	p.state = playback.NewState(volume)

	interval := time.Duration(viper.GetInt(key.PlayerSaveInterval)) * time.Second
	policy := progress.NewPolicy(store, c, p.loop, interval)
	policy.Guard(p.sameAccount)

	session := playback.New(playback.Config{
		Element:         element,
		Resolver:        resolver,
		Policy:          policy,
		State:           p.state,
		Exec:            p.loop,
		Device:          p.device,
		ResumeThreshold: float64(viper.GetInt(key.PlayerResumeThreshold)),
		Autoplay:        viper.GetBool(key.PlayerAutoplay),
	})

	p.controller = modal.New(modal.Config{
		Courses: courses,
		Store:   store,
		Session: session,
		State:   p.state,
		Exec:    p.loop,
	})

	return p, nil
}

// Start runs the loops in the background until Close.
func (p *Player) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	p.account = auth.SessionEmail().OrEmpty()

	p.running.Go(func() { _ = p.loop.Run(ctx) })
	p.running.Go(func() { _ = p.device.Run(ctx) })

	p.unsubAuth = auth.OnSignOut(func() {
		p.loop.Post(func() {
			p.controller.SignOut()
			p.account = ""
		})
	})
}

// sameAccount reports whether progress may still be written. A session that
// was signed in when the runtime started must still be the signed-in one;
// a sign-out from another process leaves it stale.
func (p *Player) sameAccount() bool {
	if p.account == "" {
		return true
	}
	return auth.SessionEmail().OrEmpty() == p.account
}

// Do runs fn on the loop with the controller and waits for it to finish.
func (p *Player) Do(ctx context.Context, fn func(c *modal.Controller)) error {
	return p.loop.Call(ctx, func() { fn(p.controller) })
}

// Post runs fn on the loop without waiting.
func (p *Player) Post(fn func(c *modal.Controller)) {
	p.loop.Post(func() { fn(p.controller) })
}

// State returns the shared playback state. Snapshots may be taken from any goroutine.
func (p *Player) State() *playback.State {
	return p.state
}

// Store returns the progress store backing the runtime.
func (p *Player) Store() progress.Store {
	return p.store
}

// Close flushes the open course, releases the media element and stops the loops.
func (p *Player) Close() error {
	if p.cancel == nil {
		return p.element.Close()
	}

	if p.unsubAuth != nil {
		p.unsubAuth()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := p.Do(ctx, func(c *modal.Controller) {
		c.Close()
		c.Session().Close()
	})

	// element commands are queued on the device loop
	_ = p.device.Call(ctx, func() {})

	p.cancel()
	p.running.Wait()
	return err
}
