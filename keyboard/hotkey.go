package keyboard

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// HotKey tracks a combination of keys that must be held down together to
// activate a callback.
//
// HotKey is not safe for concurrent use; it expects Press and Release to be
// called from a single listener goroutine.
type HotKey struct {
	keys       map[Input]struct{}
	state      map[Input]struct{}
	onActivate func()
}

// NewHotKey returns a hotkey firing onActivate when all keys are pressed.
// Keys are compared after canonicalisation, so use ParseHotKey or
// Layout.Canonical to build them.
func NewHotKey(keys []Input, onActivate func()) *HotKey {
	h := &HotKey{
		keys:       make(map[Input]struct{}, len(keys)),
		state:      make(map[Input]struct{}, len(keys)),
		onActivate: onActivate,
	}
	for _, k := range keys {
		h.keys[k] = struct{}{}
	}
	return h
}

// Press records key as held. If it completes the combination, the
// activation callback runs. It does not run again until a key of the
// combination is released and the combination completed anew.
func (h *HotKey) Press(key Input) {
	if _, ok := h.keys[key]; !ok {
		return
	}
	if _, held := h.state[key]; held {
		return
	}
	h.state[key] = struct{}{}
	if len(h.state) == len(h.keys) && h.onActivate != nil {
		h.onActivate()
	}
}

// Release records key as no longer held.
func (h *HotKey) Release(key Input) {
	delete(h.state, key)
}

// ParseHotKey parses a key combination such as "<ctrl>+<alt>+h".
//
// Parts are separated by '+'. A part is either a single character, matched
// case-insensitively, or a key name in angle brackets. Modifiers are
// returned as their canonical Key, other named keys as the KeyCode of their
// virtual key code, and "<n>" as the virtual key code n.
//
// A malformed part or a repeated key fails with ErrInvalidValue. A named key
// without a virtual key code in layout fails with ErrNoVirtualCode.
func ParseHotKey(combo string, layout *Layout) ([]Input, error) {
	raw, err := splitHotKey(combo)
	if err != nil {
		return nil, err
	}

	parts := make([]Input, 0, len(raw))
	seen := make(map[Input]struct{}, len(raw))
	for _, s := range raw {
		in, err := parseHotKeyPart(s, layout)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[in]; dup {
			return nil, fmt.Errorf("%w: duplicate key %v in %q", ErrInvalidValue, in, combo)
		}
		seen[in] = struct{}{}
		parts = append(parts, in)
	}
	return parts, nil
}

// splitHotKey splits on '+'. A '+' starting a part is the plus key itself,
// so "a++" yields "a" and "+".
func splitHotKey(combo string) ([]string, error) {
	var parts []string
	start := 0
	for i := 0; i < len(combo); i++ {
		if combo[i] == '+' && i != start {
			parts = append(parts, combo[start:i])
			start = i + 1
		}
	}
	if start == len(combo) {
		return nil, fmt.Errorf("%w: malformed hotkey %q", ErrInvalidValue, combo)
	}
	return append(parts, combo[start:]), nil
}

func parseHotKeyPart(s string, layout *Layout) (Input, error) {
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return FromChar(unicode.ToLower(r)), nil
	}
	if len(s) <= 2 || s[0] != '<' || s[len(s)-1] != '>' {
		return nil, fmt.Errorf("%w: invalid hotkey part %q", ErrInvalidValue, s)
	}

	name := s[1 : len(s)-1]
	if k, ok := KeyByName(strings.ToLower(name)); ok {
		if IsModifier(k) {
			return k, nil
		}
		code, ok := layout.Code(k)
		if !ok {
			return nil, fmt.Errorf("%w: %s is undefined on this platform", ErrNoVirtualCode, k)
		}
		vk, ok := code.VK()
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoVirtualCode, k)
		}
		return FromVK(vk), nil
	}

	vk, err := strconv.Atoi(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidValue, s)
	}
	return FromVK(vk), nil
}
