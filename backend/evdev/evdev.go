//go:build linux

// Package evdev observes keyboard and mouse events by reading Linux input
// devices under /dev/input. Suppression grabs the device exclusively.
package evdev

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	evdev "github.com/gvalkov/golang-evdev"

	"github.com/Alia5/pinput/backend"
	"github.com/Alia5/pinput/backend/internal/evcodes"
	"github.com/Alia5/pinput/keyboard"
	"github.com/Alia5/pinput/mouse"
)

const name = "evdev"

// DeviceGlob matches the event devices probed when no device is configured.
const DeviceGlob = "/dev/input/event*"

func init() {
	backend.Register(name, &registration{})
}

type registration struct{}

func (r *registration) Open(o backend.Options) (backend.Backend, error) { return Open(o) }
func (r *registration) Priority() int                                   { return 5 }
func (r *registration) Capabilities() backend.Capability                { return backend.CanListen }

// Backend reads events from one keyboard and one mouse device.
type Backend struct {
	keyboardPath string
	mousePath    string
	logger       *slog.Logger
}

// Open resolves the devices to read. Devices named in o are used as is;
// otherwise the first device under DeviceGlob with letter keys is the
// keyboard and the first with relative X/Y axes is the mouse.
func Open(o backend.Options) (*Backend, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &Backend{
		keyboardPath: o.KeyboardDevice,
		mousePath:    o.MouseDevice,
		logger:       logger.With("backend", name),
	}
	if b.keyboardPath == "" || b.mousePath == "" {
		devices, err := evdev.ListInputDevices(DeviceGlob)
		if err != nil {
			return nil, fmt.Errorf("list input devices: %w", err)
		}
		for _, dev := range devices {
			if dev.Name == evcodes.VirtualDeviceName {
				continue
			}
			if b.keyboardPath == "" && hasCapability(dev, evcodes.EvKey, evcodes.KeyA) {
				b.keyboardPath = dev.Fn
			}
			if b.mousePath == "" && hasCapability(dev, evcodes.EvRel, evcodes.RelX) {
				b.mousePath = dev.Fn
			}
		}
		for _, dev := range devices {
			dev.File.Close()
		}
	}
	b.logger.Debug("resolved input devices", "keyboard", b.keyboardPath, "mouse", b.mousePath)
	return b, nil
}

func hasCapability(dev *evdev.InputDevice, evType, code int) bool {
	for t, codes := range dev.Capabilities {
		if t.Type != evType {
			continue
		}
		return slices.ContainsFunc(codes, func(c evdev.CapabilityCode) bool { return c.Code == code })
	}
	return false
}

func (b *Backend) Name() string { return name }

func (b *Backend) KeyboardInjector() (keyboard.Injector, error) {
	return nil, backend.Unsupported(name, "keyboard injection")
}

func (b *Backend) MouseInjector() (mouse.Injector, error) {
	return nil, backend.Unsupported(name, "mouse injection")
}

func (b *Backend) KeyboardSource() (keyboard.Source, error) {
	if b.keyboardPath == "" {
		return nil, backend.Unsupported(name, "keyboard listening: no keyboard device")
	}
	return &keySource{reader: reader{path: b.keyboardPath, logger: b.logger}}, nil
}

func (b *Backend) MouseSource() (mouse.Source, error) {
	if b.mousePath == "" {
		return nil, backend.Unsupported(name, "mouse listening: no mouse device")
	}
	return &mouseSource{reader: reader{path: b.mousePath, logger: b.logger}}, nil
}

func (b *Backend) Close() error { return nil }

// reader reads one device until its context is done.
type reader struct {
	path   string
	logger *slog.Logger

	mu   sync.Mutex
	grab bool
}

func (r *reader) SuppressStart() error { return r.setGrab(true) }
func (r *reader) SuppressStop() error  { return r.setGrab(false) }

func (r *reader) setGrab(grab bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grab = grab
	return nil
}

// run calls fn for each batch of events read from the device. The device
// is closed when ctx is done, which unblocks the pending read.
func (r *reader) run(ctx context.Context, fn func(events []evdev.InputEvent, injected bool) error) error {
	dev, err := evdev.Open(r.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.path, err)
	}
	r.mu.Lock()
	grab := r.grab
	r.mu.Unlock()
	if grab {
		if err := dev.Grab(); err != nil {
			dev.File.Close()
			return fmt.Errorf("grab %s: %w", r.path, err)
		}
		defer dev.Release()
	}
	injected := dev.Name == evcodes.VirtualDeviceName
	r.logger.Info("reading input device", "path", filepath.Clean(r.path), "name", dev.Name, "grab", grab)

	stop := context.AfterFunc(ctx, func() { dev.File.Close() })
	defer func() {
		if stop() {
			dev.File.Close()
		}
	}()

	for {
		events, err := dev.Read()
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", r.path, err)
		}
		if err := fn(events, injected); err != nil {
			return err
		}
	}
}

func timestamp(ev evdev.InputEvent) int64 {
	return int64(ev.Time.Sec)*1_000_000 + int64(ev.Time.Usec)
}

type keySource struct {
	reader
}

func (s *keySource) Layout() *keyboard.Layout { return evcodes.Layout() }

func (s *keySource) Listen(ctx context.Context, h keyboard.Handler) error {
	layout := evcodes.Layout()
	var shiftL, shiftR bool
	return s.run(ctx, func(events []evdev.InputEvent, injected bool) error {
		for _, ev := range events {
			if ev.Type != evcodes.EvKey || ev.Code >= evcodes.BtnMisc {
				continue
			}
			code := int(ev.Code)
			switch code {
			case evcodes.KeyLeftShift:
				shiftL = ev.Value != 0
			case evcodes.KeyRightShift:
				shiftR = ev.Value != 0
			}
			key := decodeKey(layout, code, shiftL || shiftR)
			m := keyboard.Meta{Timestamp: timestamp(ev), Injected: injected}
			var err error
			switch ev.Value {
			case 0:
				err = h.Release(key, m)
			default: // 1 press, 2 autorepeat
				err = h.Press(key, m)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// decodeKey returns the named key for code, or the character it types on a
// US layout, or a bare virtual key code.
func decodeKey(layout *keyboard.Layout, code int, shift bool) keyboard.Input {
	vk := keyboard.FromVK(code)
	if k, ok := layout.KeyFor(vk); ok {
		return k
	}
	if r, ok := evcodes.KeyCodeChar(code, shift); ok {
		return keyboard.FromChar(r)
	}
	return vk
}

type mouseSource struct {
	reader
}

func (s *mouseSource) Listen(ctx context.Context, h mouse.Handler) error {
	buttons := evcodes.ButtonMap()
	var x, y int
	return s.run(ctx, func(events []evdev.InputEvent, injected bool) error {
		moved := false
		var last evdev.InputEvent
		for _, ev := range events {
			m := mouse.Meta{Timestamp: timestamp(ev), Injected: injected}
			var err error
			switch {
			case ev.Type == evcodes.EvRel && ev.Code == evcodes.RelX:
				x += int(ev.Value)
				moved, last = true, ev
			case ev.Type == evcodes.EvRel && ev.Code == evcodes.RelY:
				y += int(ev.Value)
				moved, last = true, ev
			case ev.Type == evcodes.EvRel && ev.Code == evcodes.RelWheel:
				err = h.Scroll(x, y, 0, int(ev.Value), m)
			case ev.Type == evcodes.EvRel && ev.Code == evcodes.RelHWheel:
				err = h.Scroll(x, y, int(ev.Value), 0, m)
			case ev.Type == evcodes.EvKey && ev.Code >= evcodes.BtnMisc:
				if b := buttons.Button(int(ev.Code)); b != mouse.ButtonUnknown {
					err = mouse.HandleButton(h, x, y, b, ev.Value != 0, m)
				}
			case ev.Type == evcodes.EvSyn && ev.Code == evcodes.SynReport && moved:
				moved = false
				err = h.Move(x, y, mouse.Meta{Timestamp: timestamp(last), Injected: injected})
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}
