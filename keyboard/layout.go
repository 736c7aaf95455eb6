package keyboard

import "unicode"

// Layout is the table a backend supplies to map named keys to its own key
// codes. A Layout is read-only after construction and safe for concurrent
// use.
type Layout struct {
	codes   map[Key]KeyCode
	reverse map[KeyCode]Key
	mods    []modifierGroup
}

type modifierGroup struct {
	base     Key
	variants []KeyCode
}

// modifierOrder lists each canonical modifier with its variants. AltGr is
// checked before Alt so a shared code is never reported as Alt.
var modifierOrder = []struct {
	base     Key
	variants []Key
}{
	{KeyAltGr, []Key{KeyAltGr}},
	{KeyAlt, []Key{KeyAlt, KeyAltL, KeyAltR}},
	{KeyCmd, []Key{KeyCmd, KeyCmdL, KeyCmdR}},
	{KeyCtrl, []Key{KeyCtrl, KeyCtrlL, KeyCtrlR}},
	{KeyShift, []Key{KeyShift, KeyShiftL, KeyShiftR}},
}

// NewLayout builds a layout from a key table. Keys missing from the table
// are undefined on the platform.
func NewLayout(codes map[Key]KeyCode) *Layout {
	l := &Layout{
		codes:   make(map[Key]KeyCode, len(codes)),
		reverse: make(map[KeyCode]Key, len(codes)),
	}
	for k, c := range codes {
		l.codes[k] = c
	}
	// Declaration order, first wins: generic keys precede their variants.
	for _, k := range AllKeys() {
		if c, ok := l.codes[k]; ok {
			if _, dup := l.reverse[c]; !dup {
				l.reverse[c] = k
			}
		}
	}
	for _, m := range modifierOrder {
		g := modifierGroup{base: m.base}
		for _, v := range m.variants {
			if c, ok := l.codes[v]; ok {
				g.variants = append(g.variants, c)
			}
		}
		l.mods = append(l.mods, g)
	}
	return l
}

// Code returns the backend key code of k.
func (l *Layout) Code(k Key) (KeyCode, bool) {
	c, ok := l.codes[k]
	return c, ok
}

// KeyFor returns the named key whose code is c.
func (l *Layout) KeyFor(c KeyCode) (Key, bool) {
	k, ok := l.reverse[c]
	return k, ok
}

// AsModifier returns the canonical modifier for c, collapsing variants such
// as shift_l and shift_r to shift. It returns false if c is not a modifier.
func (l *Layout) AsModifier(c KeyCode) (Key, bool) {
	for _, g := range l.mods {
		for _, v := range g.variants {
			if v == c {
				return g.base, true
			}
		}
	}
	return 0, false
}

// IsModifier reports whether k is a canonical modifier.
func IsModifier(k Key) bool {
	for _, m := range modifierOrder {
		if m.base == k {
			return true
		}
	}
	return false
}

// Canonical normalises a key reported by a listener so that equivalent
// keys compare equal: characters are lower-cased, modifier variants become
// their canonical modifier, and other named keys become their virtual key
// code.
func (l *Layout) Canonical(in Input) Input {
	switch k := in.(type) {
	case KeyCode:
		if r, ok := k.Char(); ok {
			return FromChar(unicode.ToLower(r))
		}
		if base, ok := l.AsModifier(k); ok {
			return base
		}
		return k
	case Key:
		c, ok := l.codes[k]
		if !ok {
			return k
		}
		if base, ok := l.AsModifier(c); ok {
			return base
		}
		if vk, ok := c.VK(); ok {
			return FromVK(vk)
		}
		return k
	default:
		return in
	}
}
