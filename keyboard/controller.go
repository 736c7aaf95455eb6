// Package keyboard provides keyboard input synthesis and observation on top
// of a platform backend.
//
// A backend supplies a Layout and a primitive to inject one key event
// (Injector) or to subscribe to raw key events (Source). This package owns
// everything platform independent: key resolution, modifier and caps lock
// bookkeeping, dead key composition, hotkey matching and event queues.
package keyboard

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Injector is implemented by backends able to synthesize key events.
type Injector interface {
	// Layout returns the backend key table.
	Layout() *Layout
	// Handle emits a single key press or release. It must report injection
	// failures rather than drop the event.
	Handle(code KeyCode, press bool) error
}

// Control codes typed as named keys.
var controlCodes = map[rune]Key{
	'\n': KeyEnter,
	'\r': KeyEnter,
	'\t': KeyTab,
}

// Controller sends virtual keyboard events to the system.
type Controller struct {
	inj    Injector
	layout *Layout
	logger *slog.Logger

	mu        sync.Mutex
	modifiers map[Key]struct{}
	capsLock  bool
	deadKey   *KeyCode
}

// NewController returns a controller injecting through inj. A nil logger
// discards log output.
func NewController(inj Injector, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		inj:       inj,
		layout:    inj.Layout(),
		logger:    logger,
		modifiers: make(map[Key]struct{}),
	}
}

// Layout returns the key table of the underlying backend.
func (c *Controller) Layout() *Layout { return c.layout }

// Press presses a key.
//
// key may be a string of exactly one character, a rune, a Key or a KeyCode.
// A string of any other length fails with ErrInvalidValue; anything that
// cannot be resolved fails with *InvalidKeyError.
func (c *Controller) Press(key any) error {
	code, err := c.resolve(key)
	if err != nil {
		return err
	}
	return c.dispatch(code, true)
}

// Release releases a key. It accepts the same keys as Press.
func (c *Controller) Release(key any) error {
	code, err := c.resolve(key)
	if err != nil {
		return err
	}
	return c.dispatch(code, false)
}

// Touch calls Press or Release depending on press.
func (c *Controller) Touch(key any, press bool) error {
	if press {
		return c.Press(key)
	}
	return c.Release(key)
}

// Pressed presses keys in order, runs fn and releases the keys in reverse
// order, whether fn returns, fails or panics. If a press fails, the keys
// already pressed are released before returning.
func (c *Controller) Pressed(fn func() error, keys ...any) (err error) {
	held := make([]any, 0, len(keys))
	defer func() {
		for _, k := range slices.Backward(held) {
			if rerr := c.Release(k); rerr != nil {
				err = errors.Join(err, rerr)
			}
		}
	}()

	for _, k := range keys {
		if err := c.Press(k); err != nil {
			return err
		}
		held = append(held, k)
	}
	if fn == nil {
		return nil
	}
	return fn()
}

// Type sends the presses and releases needed to type s.
//
// Typing stops at the first character that cannot be typed, which is
// reported as *InvalidCharacterError. Keystrokes already sent are not
// undone.
func (c *Controller) Type(s string) error {
	for i, r := range []rune(s) {
		var key any = r
		if k, ok := controlCodes[r]; ok {
			key = k
		}
		if err := c.Press(key); err != nil {
			return wrapTypeError(i, r, err)
		}
		if err := c.Release(key); err != nil {
			return wrapTypeError(i, r, err)
		}
	}
	return nil
}

func wrapTypeError(i int, r rune, err error) error {
	var ik *InvalidKeyError
	if errors.Is(err, ErrInvalidValue) || errors.As(err, &ik) {
		return &InvalidCharacterError{Index: i, Char: r, Err: err}
	}
	return err
}

// Modifiers returns the currently pressed canonical modifiers.
func (c *Controller) Modifiers() []Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Key, 0, len(c.modifiers))
	for k := range c.modifiers {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// AltPressed reports whether any alt key is pressed.
func (c *Controller) AltPressed() bool { return c.modifierPressed(KeyAlt) }

// AltGrPressed reports whether alt gr is pressed.
func (c *Controller) AltGrPressed() bool { return c.modifierPressed(KeyAltGr) }

// CtrlPressed reports whether any ctrl key is pressed.
func (c *Controller) CtrlPressed() bool { return c.modifierPressed(KeyCtrl) }

// ShiftPressed reports whether any shift key is pressed or caps lock is
// toggled.
func (c *Controller) ShiftPressed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shiftPressedLocked()
}

func (c *Controller) modifierPressed(k Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.modifiers[k]
	return ok
}

func (c *Controller) shiftPressedLocked() bool {
	if c.capsLock {
		return true
	}
	_, ok := c.modifiers[KeyShift]
	return ok
}

// resolve turns a key argument into a key code.
func (c *Controller) resolve(key any) (KeyCode, error) {
	switch k := key.(type) {
	case Key:
		code, ok := c.layout.Code(k)
		if !ok {
			return KeyCode{}, &InvalidKeyError{Key: k}
		}
		return code, nil
	case string:
		if utf8.RuneCountInString(k) != 1 {
			return KeyCode{}, fmt.Errorf("%w: key string %q must be one character", ErrInvalidValue, k)
		}
		r, _ := utf8.DecodeRuneInString(k)
		return FromChar(r), nil
	case rune:
		return FromChar(k), nil
	case KeyCode:
		if r, ok := k.Char(); ok && !k.IsDead() && c.ShiftPressed() {
			return FromChar(unicode.ToUpper(r)), nil
		}
		return k, nil
	default:
		return KeyCode{}, &InvalidKeyError{Key: key}
	}
}

type handleStep struct {
	code  KeyCode
	press bool
}

// dispatch updates modifier, caps lock and dead key state and forwards the
// resulting key events to the backend.
func (c *Controller) dispatch(code KeyCode, press bool) error {
	steps := c.plan(code, press)
	for _, s := range steps {
		c.logger.Debug("dispatch key", "code", s.code, "press", s.press)
		if err := c.inj.Handle(s.code, s.press); err != nil {
			return fmt.Errorf("handle %v: %w", s.code, err)
		}
	}
	return nil
}

// plan computes the backend calls for one press or release under the
// state lock.
func (c *Controller) plan(code KeyCode, press bool) []handleStep {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mod, ok := c.layout.AsModifier(code); ok {
		if press {
			c.modifiers[mod] = struct{}{}
		} else {
			delete(c.modifiers, mod)
		}
	}

	if !press {
		if code.IsDead() {
			return nil
		}
		return []handleStep{{code, false}}
	}

	if caps, ok := c.layout.Code(KeyCapsLock); ok && code == caps {
		c.capsLock = !c.capsLock
	}

	var steps []handleStep
	if c.deadKey != nil {
		dead := *c.deadKey
		c.deadKey = nil
		if joined, err := dead.Join(code); err == nil {
			code = joined
		} else {
			c.logger.Debug("dead key not composable, flushing", "dead", dead, "key", code)
			steps = append(steps, handleStep{dead, true}, handleStep{dead, false})
		}
	}

	if code.IsDead() {
		c.deadKey = &code
		return steps
	}
	return append(steps, handleStep{code, true})
}
