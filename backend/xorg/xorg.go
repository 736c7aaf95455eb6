//go:build linux

// Package xorg injects keyboard and mouse events into an X server through
// the XTEST extension.
package xorg

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"

	"github.com/Alia5/pinput/backend"
	"github.com/Alia5/pinput/keyboard"
	"github.com/Alia5/pinput/mouse"
)

const name = "xorg"

func init() {
	backend.Register(name, &registration{})
}

type registration struct{}

func (r *registration) Open(o backend.Options) (backend.Backend, error) { return Open(o) }
func (r *registration) Priority() int                                   { return 20 }
func (r *registration) Capabilities() backend.Capability                { return backend.CanInject }

// ErrNoDisplay is returned by Open when DISPLAY is not set.
var ErrNoDisplay = errors.New("DISPLAY is not set")

type keyPos struct {
	code  xproto.Keycode
	level int
}

// Backend is a connection to an X server.
type Backend struct {
	conn    *xgb.Conn
	root    xproto.Window
	minCode xproto.Keycode
	maxCode xproto.Keycode
	logger  *slog.Logger
	buttons mouse.ButtonMap

	mu        sync.Mutex
	perCode   int
	keysyms   []xproto.Keysym
	keymap    map[uint32]keyPos
	shiftCode xproto.Keycode
	spare     xproto.Keycode // keycode remapped for characters missing from the keymap
}

// Open connects to the X server named by DISPLAY.
func Open(o backend.Options) (*Backend, error) {
	if os.Getenv("DISPLAY") == "" {
		return nil, ErrNoDisplay
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init XTEST: %w", err)
	}
	setup := xproto.Setup(conn)
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &Backend{
		conn:    conn,
		root:    setup.DefaultScreen(conn).Root,
		minCode: setup.MinKeycode,
		maxCode: setup.MaxKeycode,
		logger:  logger.With("backend", name),
		buttons: mouse.DefaultButtonMap(),
	}
	if err := b.loadKeymap(); err != nil {
		conn.Close()
		return nil, err
	}
	return b, nil
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

// Close restores the spare keycode and disconnects.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.spare != 0 {
		if err := b.remap(b.spare, 0); err != nil {
			b.logger.Warn("restore keymap", "error", err)
		}
	}
	b.conn.Close()
	return nil
}

// loadKeymap reads the keyboard mapping and indexes it by keysym. The
// lowest level wins for keysyms reachable from several keys.
func (b *Backend) loadKeymap() error {
	count := int(b.maxCode) - int(b.minCode) + 1
	reply, err := xproto.GetKeyboardMapping(b.conn, b.minCode, byte(count)).Reply()
	if err != nil {
		return fmt.Errorf("get keyboard mapping: %w", err)
	}
	b.perCode = int(reply.KeysymsPerKeycode)
	b.keysyms = reply.Keysyms
	b.keymap = make(map[uint32]keyPos)
	b.spare = 0
	for i := 0; i < count; i++ {
		code := b.minCode + xproto.Keycode(i)
		empty := true
		for level := 0; level < b.perCode && level < 2; level++ {
			sym := uint32(b.keysyms[i*b.perCode+level])
			if sym == 0 {
				continue
			}
			empty = false
			if cur, ok := b.keymap[sym]; !ok || cur.level > level {
				b.keymap[sym] = keyPos{code: code, level: level}
			}
		}
		if empty && b.spare == 0 {
			b.spare = code
		}
	}
	if pos, ok := b.keymap[xkShiftL]; ok {
		b.shiftCode = pos.code
	}
	b.logger.Debug("loaded keymap", "keysyms", len(b.keymap), "spare", b.spare)
	return nil
}

// remap binds sym to the spare keycode on both levels.
func (b *Backend) remap(code xproto.Keycode, sym uint32) error {
	syms := make([]xproto.Keysym, b.perCode)
	if b.perCode > 0 {
		syms[0] = xproto.Keysym(sym)
	}
	if b.perCode > 1 {
		syms[1] = xproto.Keysym(sym)
	}
	return xproto.ChangeKeyboardMappingChecked(b.conn, 1, code, byte(b.perCode), syms).Check()
}

// lookup returns the key producing sym, remapping the spare keycode when
// no key does.
func (b *Backend) lookup(sym uint32) (keyPos, error) {
	if pos, ok := b.keymap[sym]; ok {
		return pos, nil
	}
	if b.spare == 0 {
		return keyPos{}, keyboard.ErrInvalidValue
	}
	if err := b.remap(b.spare, sym); err != nil {
		return keyPos{}, fmt.Errorf("remap keycode %d: %w", b.spare, err)
	}
	for s, pos := range b.keymap {
		if pos.code == b.spare {
			delete(b.keymap, s)
		}
	}
	pos := keyPos{code: b.spare}
	b.keymap[sym] = pos
	return pos, nil
}

func (b *Backend) fake(eventType byte, detail byte, x, y int16) error {
	return xtest.FakeInputChecked(b.conn, eventType, detail, 0, b.root, x, y, 0).Check()
}

func (b *Backend) pointer() (*xproto.QueryPointerReply, error) {
	reply, err := xproto.QueryPointer(b.conn, b.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("query pointer: %w", err)
	}
	return reply, nil
}

type keyInjector Backend

func (k *keyInjector) Layout() *keyboard.Layout { return Layout() }

func (k *keyInjector) Handle(code keyboard.KeyCode, press bool) error {
	b := (*Backend)(k)
	sym, ok := keysymOf(code)
	if !ok {
		return &keyboard.InvalidKeyError{Key: code}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	pos, err := b.lookup(sym)
	if errors.Is(err, keyboard.ErrInvalidValue) {
		return &keyboard.InvalidKeyError{Key: code}
	}
	if err != nil {
		return err
	}

	if !press {
		return b.fake(xproto.KeyRelease, byte(pos.code), 0, 0)
	}

	// Named keys are sent as is; characters need the shift state matching
	// their level.
	_, isChar := code.Char()
	toggle := false
	if isChar && !code.IsDead() && b.shiftCode != 0 {
		ptr, err := b.pointer()
		if err != nil {
			return err
		}
		shifted := ptr.Mask&xproto.ModMaskShift != 0
		toggle = shifted != (pos.level == 1)
	}
	if !toggle {
		return b.fake(xproto.KeyPress, byte(pos.code), 0, 0)
	}

	shiftType, restoreType := byte(xproto.KeyPress), byte(xproto.KeyRelease)
	if pos.level == 0 {
		shiftType, restoreType = restoreType, shiftType
	}
	if err := b.fake(shiftType, byte(b.shiftCode), 0, 0); err != nil {
		return err
	}
	err = b.fake(xproto.KeyPress, byte(pos.code), 0, 0)
	return errors.Join(err, b.fake(restoreType, byte(b.shiftCode), 0, 0))
}

type mouseInjector Backend

func (p *mouseInjector) Position() (int, int, error) {
	reply, err := (*Backend)(p).pointer()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}

func (p *mouseInjector) SetPosition(x, y int) error {
	return (*Backend)(p).fake(xproto.MotionNotify, 0, int16(x), int16(y))
}

func (p *mouseInjector) Press(btn mouse.Button) error   { return p.button(btn, true) }
func (p *mouseInjector) Release(btn mouse.Button) error { return p.button(btn, false) }

func (p *mouseInjector) button(btn mouse.Button, press bool) error {
	b := (*Backend)(p)
	code, ok := b.buttons.Code(btn)
	if !ok || code > 0xff {
		return mouse.ErrUnsupportedButton
	}
	t := byte(xproto.ButtonRelease)
	if press {
		t = xproto.ButtonPress
	}
	return b.fake(t, byte(code), 0, 0)
}

func (p *mouseInjector) Scroll(dx, dy int) error {
	return mouse.ScrollClicks(func(btn mouse.Button, count int) error {
		for range count {
			if err := p.button(btn, true); err != nil {
				return err
			}
			if err := p.button(btn, false); err != nil {
				return err
			}
		}
		return nil
	}, dx, dy)
}
