// Package dummy provides an in-memory backend. It records injected events
// instead of sending them to the OS and lets callers feed synthetic events
// to listeners. It is the fallback on platforms without a native backend
// and the workhorse of the tests.
package dummy

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Alia5/pinput/backend"
	"github.com/Alia5/pinput/internal/eventqueue"
	"github.com/Alia5/pinput/keyboard"
	"github.com/Alia5/pinput/mouse"
)

const name = "dummy"

func init() {
	backend.Register(name, &registration{})
}

type registration struct{}

func (r *registration) Open(o backend.Options) (backend.Backend, error) { return New(), nil }
func (r *registration) Priority() int                                   { return 0 }
func (r *registration) Capabilities() backend.Capability {
	return backend.CanInject | backend.CanListen
}

// KeyEvent is an injected key event.
type KeyEvent struct {
	Code  keyboard.KeyCode
	Press bool
}

// ButtonEvent is an injected button event.
type ButtonEvent struct {
	Button mouse.Button
	Press  bool
}

// Backend is the in-memory backend.
type Backend struct {
	layout  *keyboard.Layout
	buttons mouse.ButtonMap

	mu       sync.Mutex
	keys     []KeyEvent
	clicks   []ButtonEvent
	scrolls  [][2]int
	x, y     int
	reject   map[rune]bool
	failWith error
	suppress int
	clock    int64

	keyFeed      *eventqueue.Queue[func(keyboard.Handler) error]
	mouseFeed    *eventqueue.Queue[func(mouse.Handler) error]
	keyListeners atomic.Int32
	ptrListeners atomic.Int32
}

// New returns an empty dummy backend.
func New() *Backend {
	return &Backend{
		layout:    Layout(),
		buttons:   mouse.DefaultButtonMap(),
		reject:    make(map[rune]bool),
		keyFeed:   eventqueue.New[func(keyboard.Handler) error](),
		mouseFeed: eventqueue.New[func(mouse.Handler) error](),
	}
}

func (b *Backend) Name() string { return name }

func (b *Backend) KeyboardInjector() (keyboard.Injector, error) { return (*keyInjector)(b), nil }
func (b *Backend) MouseInjector() (mouse.Injector, error)       { return (*mouseInjector)(b), nil }
func (b *Backend) KeyboardSource() (keyboard.Source, error)     { return (*keySource)(b), nil }
func (b *Backend) MouseSource() (mouse.Source, error)           { return (*mouseSource)(b), nil }

// Close stops delivering events to listeners.
func (b *Backend) Close() error {
	b.keyFeed.Close()
	b.mouseFeed.Close()
	return nil
}

// Reject makes injection of the given characters fail as untypable.
func (b *Backend) Reject(chars ...rune) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range chars {
		b.reject[r] = true
	}
}

// FailWith makes every following injection fail with err; nil clears it.
func (b *Backend) FailWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failWith = err
}

// Keys returns the injected key events.
func (b *Backend) Keys() []KeyEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]KeyEvent(nil), b.keys...)
}

// Clicks returns the injected button events.
func (b *Backend) Clicks() []ButtonEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ButtonEvent(nil), b.clicks...)
}

// Scrolls returns the injected scroll steps as (dx, dy) pairs.
func (b *Backend) Scrolls() [][2]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][2]int(nil), b.scrolls...)
}

// Suppressing reports whether a listener currently suppresses events.
func (b *Backend) Suppressing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.suppress > 0
}

// Listeners returns the number of active keyboard and mouse listeners.
func (b *Backend) Listeners() (keyboards, mice int) {
	return int(b.keyListeners.Load()), int(b.ptrListeners.Load())
}

// Reset forgets recorded events.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.keys = nil
	b.clicks = nil
	b.scrolls = nil
}

func (b *Backend) tick() int64 {
	b.clock++
	return b.clock
}

// PressKey feeds a physical key press to keyboard listeners.
func (b *Backend) PressKey(key keyboard.Input) {
	b.feedKey(key, true, false)
}

// ReleaseKey feeds a physical key release to keyboard listeners.
func (b *Backend) ReleaseKey(key keyboard.Input) {
	b.feedKey(key, false, false)
}

func (b *Backend) feedKey(key keyboard.Input, press, injected bool) {
	b.mu.Lock()
	m := keyboard.Meta{Timestamp: b.tick(), Injected: injected}
	b.mu.Unlock()
	b.keyFeed.Push(func(h keyboard.Handler) error {
		if press {
			return h.Press(key, m)
		}
		return h.Release(key, m)
	})
}

// MovePointer feeds a physical pointer motion to mouse listeners.
func (b *Backend) MovePointer(x, y int) {
	b.mu.Lock()
	b.x, b.y = x, y
	m := mouse.Meta{Timestamp: b.tick()}
	b.mu.Unlock()
	b.mouseFeed.Push(func(h mouse.Handler) error { return h.Move(x, y, m) })
}

// ClickButton feeds a physical button transition to mouse listeners.
// Scroll buttons are reported as scroll events.
func (b *Backend) ClickButton(btn mouse.Button, pressed bool) {
	b.mu.Lock()
	x, y := b.x, b.y
	m := mouse.Meta{Timestamp: b.tick()}
	b.mu.Unlock()
	b.mouseFeed.Push(func(h mouse.Handler) error { return mouse.HandleButton(h, x, y, btn, pressed, m) })
}

type keyInjector Backend

func (k *keyInjector) Layout() *keyboard.Layout { return k.layout }

func (k *keyInjector) Handle(code keyboard.KeyCode, press bool) error {
	b := (*Backend)(k)
	b.mu.Lock()
	if b.failWith != nil {
		err := b.failWith
		b.mu.Unlock()
		return err
	}
	if r, ok := code.Char(); ok && b.reject[r] {
		b.mu.Unlock()
		return &keyboard.InvalidKeyError{Key: code}
	}
	b.keys = append(b.keys, KeyEvent{Code: code, Press: press})
	b.mu.Unlock()

	if b.keyListeners.Load() > 0 {
		var in keyboard.Input = code
		if named, ok := b.layout.KeyFor(code); ok {
			in = named
		}
		b.feedKey(in, press, true)
	}
	return nil
}

type mouseInjector Backend

func (p *mouseInjector) Position() (int, int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.y, nil
}

func (p *mouseInjector) SetPosition(x, y int) error {
	b := (*Backend)(p)
	b.mu.Lock()
	if b.failWith != nil {
		defer b.mu.Unlock()
		return b.failWith
	}
	b.x, b.y = x, y
	m := mouse.Meta{Timestamp: b.tick(), Injected: true}
	b.mu.Unlock()
	if b.ptrListeners.Load() > 0 {
		b.mouseFeed.Push(func(h mouse.Handler) error { return h.Move(x, y, m) })
	}
	return nil
}

func (p *mouseInjector) Press(btn mouse.Button) error   { return p.button(btn, true) }
func (p *mouseInjector) Release(btn mouse.Button) error { return p.button(btn, false) }

func (p *mouseInjector) button(btn mouse.Button, press bool) error {
	b := (*Backend)(p)
	if _, ok := b.buttons.Code(btn); !ok {
		return mouse.ErrUnsupportedButton
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failWith != nil {
		return b.failWith
	}
	b.clicks = append(b.clicks, ButtonEvent{Button: btn, Press: press})
	return nil
}

func (p *mouseInjector) Scroll(dx, dy int) error {
	b := (*Backend)(p)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failWith != nil {
		return b.failWith
	}
	b.scrolls = append(b.scrolls, [2]int{dx, dy})
	return nil
}

type keySource Backend

func (s *keySource) Layout() *keyboard.Layout { return s.layout }

func (s *keySource) Listen(ctx context.Context, h keyboard.Handler) error {
	b := (*Backend)(s)
	b.keyListeners.Add(1)
	defer b.keyListeners.Add(-1)
	for {
		f, err := b.keyFeed.Pop(ctx)
		if err != nil {
			return nil
		}
		if err := f(h); err != nil {
			return err
		}
	}
}

func (s *keySource) SuppressStart() error { return (*Backend)(s).setSuppress(1) }
func (s *keySource) SuppressStop() error  { return (*Backend)(s).setSuppress(-1) }

type mouseSource Backend

func (s *mouseSource) Listen(ctx context.Context, h mouse.Handler) error {
	b := (*Backend)(s)
	b.ptrListeners.Add(1)
	defer b.ptrListeners.Add(-1)
	for {
		f, err := b.mouseFeed.Pop(ctx)
		if err != nil {
			return nil
		}
		if err := f(h); err != nil {
			return err
		}
	}
}

func (s *mouseSource) SuppressStart() error { return (*Backend)(s).setSuppress(1) }
func (s *mouseSource) SuppressStop() error  { return (*Backend)(s).setSuppress(-1) }

func (b *Backend) setSuppress(delta int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.suppress += delta
	return nil
}
