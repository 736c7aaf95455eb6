//go:build linux

// Package uinput injects keyboard and mouse events through a virtual Linux
// input device. It works without a display server but needs write access
// to /dev/uinput.
package uinput

import (
	"log/slog"
	"sync"

	"github.com/Alia5/pinput/backend"
	"github.com/Alia5/pinput/backend/internal/evcodes"
	"github.com/Alia5/pinput/keyboard"
	"github.com/Alia5/pinput/mouse"
)

const name = "uinput"

// DefaultPath is the uinput control device.
const DefaultPath = "/dev/uinput"

func init() {
	backend.Register(name, &registration{})
}

type registration struct{}

func (r *registration) Open(o backend.Options) (backend.Backend, error) { return Open(DefaultPath, o) }
func (r *registration) Priority() int                                   { return 10 }
func (r *registration) Capabilities() backend.Capability                { return backend.CanInject }

// Backend owns a virtual input device.
type Backend struct {
	dev     *device
	logger  *slog.Logger
	buttons mouse.ButtonMap

	// Relative devices cannot read the pointer back, so the position is the
	// sum of the motion this backend emitted.
	mu   sync.Mutex
	x, y int

	// Shift keys held through injected virtual codes.
	keyMu          sync.Mutex
	shiftL, shiftR bool
}

// Open creates the virtual device through the uinput node at path.
func Open(path string, o backend.Options) (*Backend, error) {
	dev, err := createDevice(path)
	if err != nil {
		return nil, err
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("backend", name)
	logger.Info("created virtual device", "name", evcodes.VirtualDeviceName)
	return &Backend{dev: dev, logger: logger, buttons: evcodes.ButtonMap()}, nil
}

func (b *Backend) Name() string { return name }

func (b *Backend) KeyboardInjector() (keyboard.Injector, error) { return (*keyInjector)(b), nil }
func (b *Backend) MouseInjector() (mouse.Injector, error)       { return (*mouseInjector)(b), nil }

func (b *Backend) KeyboardSource() (keyboard.Source, error) {
	return nil, backend.Unsupported(name, "keyboard listening")
}

func (b *Backend) MouseSource() (mouse.Source, error) {
	return nil, backend.Unsupported(name, "mouse listening")
}

// Close destroys the virtual device.
func (b *Backend) Close() error { return b.dev.close() }

type keyInjector Backend

func (k *keyInjector) Layout() *keyboard.Layout { return evcodes.Layout() }

func (k *keyInjector) Handle(code keyboard.KeyCode, press bool) error {
	b := (*Backend)(k)
	b.keyMu.Lock()
	defer b.keyMu.Unlock()
	events, err := b.keyEvents(code, press)
	if err != nil {
		return err
	}
	if err := b.dev.emit(events...); err != nil {
		return err
	}
	b.trackShift(code, press)
	return nil
}

// keyEvents translates code to device events. Characters needing shift are
// wrapped in a shift press unless a shift key is already held. The caller
// holds keyMu.
func (b *Backend) keyEvents(code keyboard.KeyCode, press bool) ([]inputEvent, error) {
	if vk, ok := code.VK(); ok {
		if vk <= 0 || vk > evcodes.KeyMax {
			return nil, &keyboard.InvalidKeyError{Key: code}
		}
		return []inputEvent{keyEvent(vk, press)}, nil
	}

	r, _ := code.Char()
	if code.IsDead() {
		r = deadBase(r)
	}
	kc, shift, ok := evcodes.CharCode(r)
	if !ok {
		return nil, &keyboard.InvalidKeyError{Key: code}
	}
	if !shift || !press || b.shiftL || b.shiftR {
		return []inputEvent{keyEvent(kc, press)}, nil
	}
	return []inputEvent{
		keyEvent(evcodes.KeyLeftShift, true),
		keyEvent(kc, true),
		keyEvent(evcodes.KeyLeftShift, false),
	}, nil
}

func (b *Backend) trackShift(code keyboard.KeyCode, press bool) {
	switch vk, _ := code.VK(); vk {
	case evcodes.KeyLeftShift:
		b.shiftL = press
	case evcodes.KeyRightShift:
		b.shiftR = press
	}
}

// deadBase maps dead key characters to the spacing character typed on a
// US layout.
func deadBase(r rune) rune {
	switch r {
	case '´':
		return '\''
	case '¨':
		return '"'
	}
	return r
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
	defer b.mu.Unlock()
	dx, dy := x-b.x, y-b.y
	if dx == 0 && dy == 0 {
		return nil
	}
	if err := b.dev.emit(relEvent(evcodes.RelX, dx), relEvent(evcodes.RelY, dy)); err != nil {
		return err
	}
	b.x, b.y = x, y
	return nil
}

func (p *mouseInjector) Press(btn mouse.Button) error   { return p.button(btn, true) }
func (p *mouseInjector) Release(btn mouse.Button) error { return p.button(btn, false) }

func (p *mouseInjector) button(btn mouse.Button, press bool) error {
	b := (*Backend)(p)
	code, ok := b.buttons.Code(btn)
	if !ok {
		if dx, dy, scroll := mouse.ScrollDelta(btn); scroll {
			if press {
				return p.Scroll(dx, dy)
			}
			return nil
		}
		return mouse.ErrUnsupportedButton
	}
	return b.dev.emit(keyEvent(code, press))
}

func (p *mouseInjector) Scroll(dx, dy int) error {
	var events []inputEvent
	if dy != 0 {
		events = append(events, relEvent(evcodes.RelWheel, dy))
	}
	if dx != 0 {
		events = append(events, relEvent(evcodes.RelHWheel, dx))
	}
	if len(events) == 0 {
		return nil
	}
	return (*Backend)(p).dev.emit(events...)
}
