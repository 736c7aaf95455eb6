package keyboard

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

// KeyCode identifies a physical key either by its platform virtual key code
// or by the character it produces. Dead keys carry the combining mark they
// apply to the next keystroke.
//
// KeyCode values are immutable and comparable; two codes are equal when
// their virtual code, character and dead flag are equal.
type KeyCode struct {
	vk        int
	char      rune
	hasVK     bool
	hasChar   bool
	dead      bool
	combining rune
}

// FromVK returns a key code for a platform virtual key code.
func FromVK(vk int) KeyCode {
	return KeyCode{vk: vk, hasVK: true}
}

// FromChar returns a key code for the key producing r.
func FromChar(r rune) KeyCode {
	return KeyCode{char: r, hasChar: true}
}

// FromDead returns a dead key code for r, the stand-alone form of the
// accent, such as '~' for COMBINING TILDE.
func FromDead(r rune) (KeyCode, error) {
	mark, ok := combiningFor(r)
	if !ok {
		return KeyCode{}, &InvalidDeadKeyError{Char: r}
	}
	return KeyCode{char: r, hasChar: true, dead: true, combining: mark}, nil
}

// VK returns the virtual key code, if any.
func (k KeyCode) VK() (int, bool) { return k.vk, k.hasVK }

// Char returns the character, if any.
func (k KeyCode) Char() (rune, bool) { return k.char, k.hasChar }

// IsDead reports whether k is a dead key.
func (k KeyCode) IsDead() bool { return k.dead }

// Combining returns the combining mark of a dead key.
func (k KeyCode) Combining() (rune, bool) { return k.combining, k.dead }

func (k KeyCode) isInput() {}

func (k KeyCode) String() string {
	switch {
	case k.dead:
		return fmt.Sprintf("[%q]", k.char)
	case k.hasChar:
		return fmt.Sprintf("%q", k.char)
	default:
		return fmt.Sprintf("<%d>", k.vk)
	}
}

// Join applies the dead key k to other.
//
// Joining with space, or with the same dead key, yields the non-dead form
// of k. Otherwise the character of other is composed with the combining
// mark of k using canonical composition.
func (k KeyCode) Join(other KeyCode) (KeyCode, error) {
	if other.hasChar && (other.char == ' ' || (other.dead && other.char == k.char)) {
		return FromChar(k.char), nil
	}

	if other.hasChar && k.dead {
		composed := norm.NFC.String(string([]rune{other.char, k.combining}))
		if r, size := utf8.DecodeRuneInString(composed); size > 0 && size == len(composed) {
			return FromChar(r), nil
		}
	}

	return KeyCode{}, &InvalidCompositionError{Key: other}
}

// Unicode blocks holding combining marks looked up by name.
var combiningBlocks = [][2]rune{
	{0x0300, 0x036F},
	{0x1AB0, 0x1AFF},
	{0x1DC0, 0x1DFF},
	{0x20D0, 0x20FF},
	{0xFE20, 0xFE2F},
}

var combiningByName = sync.OnceValue(func() map[string]rune {
	m := make(map[string]rune)
	for _, block := range combiningBlocks {
		for r := block[0]; r <= block[1]; r++ {
			name := runenames.Name(r)
			if strings.HasPrefix(name, "COMBINING ") {
				m[name] = r
			}
		}
	}
	return m
})

// combiningFor finds the combining mark named "COMBINING <name of r>".
func combiningFor(r rune) (rune, bool) {
	name := runenames.Name(r)
	if name == "" {
		return 0, false
	}
	mark, ok := combiningByName()["COMBINING "+name]
	return mark, ok
}
