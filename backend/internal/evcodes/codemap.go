package evcodes

import (
	"sync"

	"github.com/Alia5/pinput/keyboard"
	"github.com/Alia5/pinput/mouse"
)

var keyCodes = map[keyboard.Key]int{
	keyboard.KeyAlt:             KeyLeftAlt,
	keyboard.KeyAltL:            KeyLeftAlt,
	keyboard.KeyAltR:            KeyRightAlt,
	keyboard.KeyAltGr:           KeyRightAlt,
	keyboard.KeyBackspace:       KeyBackspace,
	keyboard.KeyCapsLock:        KeyCapsLock,
	keyboard.KeyCmd:             KeyLeftMeta,
	keyboard.KeyCmdL:            KeyLeftMeta,
	keyboard.KeyCmdR:            KeyRightMeta,
	keyboard.KeyCtrl:            KeyLeftCtrl,
	keyboard.KeyCtrlL:           KeyLeftCtrl,
	keyboard.KeyCtrlR:           KeyRightCtrl,
	keyboard.KeyDelete:          KeyDelete,
	keyboard.KeyDown:            KeyDown,
	keyboard.KeyEnd:             KeyEnd,
	keyboard.KeyEnter:           KeyEnter,
	keyboard.KeyEsc:             KeyEsc,
	keyboard.KeyF1:              KeyF1,
	keyboard.KeyF2:              KeyF2,
	keyboard.KeyF3:              KeyF3,
	keyboard.KeyF4:              KeyF4,
	keyboard.KeyF5:              KeyF5,
	keyboard.KeyF6:              KeyF6,
	keyboard.KeyF7:              KeyF7,
	keyboard.KeyF8:              KeyF8,
	keyboard.KeyF9:              KeyF9,
	keyboard.KeyF10:             KeyF10,
	keyboard.KeyF11:             KeyF11,
	keyboard.KeyF12:             KeyF12,
	keyboard.KeyF13:             KeyF13,
	keyboard.KeyF14:             KeyF14,
	keyboard.KeyF15:             KeyF15,
	keyboard.KeyF16:             KeyF16,
	keyboard.KeyF17:             KeyF17,
	keyboard.KeyF18:             KeyF18,
	keyboard.KeyF19:             KeyF19,
	keyboard.KeyF20:             KeyF20,
	keyboard.KeyHome:            KeyHome,
	keyboard.KeyLeft:            KeyLeft,
	keyboard.KeyPageDown:        KeyPageDown,
	keyboard.KeyPageUp:          KeyPageUp,
	keyboard.KeyRight:           KeyRight,
	keyboard.KeyShift:           KeyLeftShift,
	keyboard.KeyShiftL:          KeyLeftShift,
	keyboard.KeyShiftR:          KeyRightShift,
	keyboard.KeySpace:           KeySpace,
	keyboard.KeyTab:             KeyTab,
	keyboard.KeyUp:              KeyUp,
	keyboard.KeyMediaPlayPause:  KeyPlayPause,
	keyboard.KeyMediaVolumeMute: KeyMute,
	keyboard.KeyMediaVolumeDown: KeyVolumeDown,
	keyboard.KeyMediaVolumeUp:   KeyVolumeUp,
	keyboard.KeyMediaPrevious:   KeyPreviousSong,
	keyboard.KeyMediaNext:       KeyNextSong,
	keyboard.KeyInsert:          KeyInsert,
	keyboard.KeyMenu:            KeyCompose,
	keyboard.KeyNumLock:         KeyNumLock,
	keyboard.KeyPause:           KeyPause,
	keyboard.KeyPrintScreen:     KeySysRq,
	keyboard.KeyScrollLock:      KeyScrollLock,
}

// Layout returns the key layout of Linux input event codes. Virtual key
// codes are the event codes themselves.
var Layout = sync.OnceValue(func() *keyboard.Layout {
	m := make(map[keyboard.Key]keyboard.KeyCode, len(keyCodes))
	for k, code := range keyCodes {
		m[k] = keyboard.FromVK(code)
	}
	return keyboard.NewLayout(m)
})

// ButtonMap returns the mouse buttons available as Linux button codes.
// Scroll directions are relative wheel axes, not buttons, on Linux.
func ButtonMap() mouse.ButtonMap {
	return mouse.NewButtonMap(map[mouse.Button]int{
		mouse.ButtonLeft:   BtnLeft,
		mouse.ButtonRight:  BtnRight,
		mouse.ButtonMiddle: BtnMiddle,
		mouse.Button8:      BtnSide,
		mouse.Button9:      BtnExtra,
		mouse.Button10:     BtnForward,
		mouse.Button11:     BtnBack,
		mouse.Button12:     BtnTask,
	})
}

// charToKey maps characters of a US layout to their key codes. Characters
// in shiftChars additionally need Shift.
var charToKey = map[rune]int{
	'a': KeyA, 'b': KeyB, 'c': KeyC, 'd': KeyD, 'e': KeyE, 'f': KeyF, 'g': KeyG,
	'h': KeyH, 'i': KeyI, 'j': KeyJ, 'k': KeyK, 'l': KeyL, 'm': KeyM, 'n': KeyN,
	'o': KeyO, 'p': KeyP, 'q': KeyQ, 'r': KeyR, 's': KeyS, 't': KeyT, 'u': KeyU,
	'v': KeyV, 'w': KeyW, 'x': KeyX, 'y': KeyY, 'z': KeyZ,

	'A': KeyA, 'B': KeyB, 'C': KeyC, 'D': KeyD, 'E': KeyE, 'F': KeyF, 'G': KeyG,
	'H': KeyH, 'I': KeyI, 'J': KeyJ, 'K': KeyK, 'L': KeyL, 'M': KeyM, 'N': KeyN,
	'O': KeyO, 'P': KeyP, 'Q': KeyQ, 'R': KeyR, 'S': KeyS, 'T': KeyT, 'U': KeyU,
	'V': KeyV, 'W': KeyW, 'X': KeyX, 'Y': KeyY, 'Z': KeyZ,

	'1': Key1, '2': Key2, '3': Key3, '4': Key4, '5': Key5,
	'6': Key6, '7': Key7, '8': Key8, '9': Key9, '0': Key0,

	'!': Key1, '@': Key2, '#': Key3, '$': Key4, '%': Key5,
	'^': Key6, '&': Key7, '*': Key8, '(': Key9, ')': Key0,

	'-':  KeyMinus,
	'=':  KeyEqual,
	'[':  KeyLeftBrace,
	']':  KeyRightBrace,
	'\\': KeyBackslash,
	';':  KeySemicolon,
	'\'': KeyApostrophe,
	'`':  KeyGrave,
	',':  KeyComma,
	'.':  KeyDot,
	'/':  KeySlash,

	'_': KeyMinus,
	'+': KeyEqual,
	'{': KeyLeftBrace,
	'}': KeyRightBrace,
	'|': KeyBackslash,
	':': KeySemicolon,
	'"': KeyApostrophe,
	'~': KeyGrave,
	'<': KeyComma,
	'>': KeyDot,
	'?': KeySlash,

	' ':  KeySpace,
	'\n': KeyEnter,
	'\r': KeyEnter,
	'\t': KeyTab,
}

var shiftChars = map[rune]bool{
	'A': true, 'B': true, 'C': true, 'D': true, 'E': true, 'F': true, 'G': true,
	'H': true, 'I': true, 'J': true, 'K': true, 'L': true, 'M': true, 'N': true,
	'O': true, 'P': true, 'Q': true, 'R': true, 'S': true, 'T': true, 'U': true,
	'V': true, 'W': true, 'X': true, 'Y': true, 'Z': true,

	'!': true, '@': true, '#': true, '$': true, '%': true,
	'^': true, '&': true, '*': true, '(': true, ')': true,

	'_': true, '+': true, '{': true, '}': true, '|': true,
	':': true, '"': true, '~': true, '<': true, '>': true, '?': true,
}

// CharCode returns the key code typing r on a US layout and whether Shift
// must be held.
func CharCode(r rune) (code int, shift bool, ok bool) {
	code, ok = charToKey[r]
	return code, shiftChars[r], ok
}

// KeyCodeChar returns the character a key code types on a US layout, or
// false for keys that do not type a character.
func KeyCodeChar(code int, shift bool) (rune, bool) {
	r, ok := codeToChar()[charKey{code, shift}]
	return r, ok
}

type charKey struct {
	code  int
	shift bool
}

var codeToChar = sync.OnceValue(func() map[charKey]rune {
	m := make(map[charKey]rune, len(charToKey))
	for r, code := range charToKey {
		if r == '\n' || r == '\r' || r == '\t' || r == ' ' {
			continue
		}
		m[charKey{code, shiftChars[r]}] = r
	}
	return m
})
