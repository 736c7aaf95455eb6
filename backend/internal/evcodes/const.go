// Package evcodes holds the Linux input event codes shared by the uinput
// and evdev backends, and the key layout built on them.
package evcodes

// Event types
const (
	EvSyn = 0x00
	EvKey = 0x01
	EvRel = 0x02
)

// Synchronization and relative axis codes
const (
	SynReport = 0x00

	RelX      = 0x00
	RelY      = 0x01
	RelHWheel = 0x06
	RelWheel  = 0x08
)

// Key codes (linux/input-event-codes.h)
const (
	KeyEsc        = 1
	Key1          = 2
	Key2          = 3
	Key3          = 4
	Key4          = 5
	Key5          = 6
	Key6          = 7
	Key7          = 8
	Key8          = 9
	Key9          = 10
	Key0          = 11
	KeyMinus      = 12 // - and _
	KeyEqual      = 13 // = and +
	KeyBackspace  = 14
	KeyTab        = 15
	KeyQ          = 16
	KeyW          = 17
	KeyE          = 18
	KeyR          = 19
	KeyT          = 20
	KeyY          = 21
	KeyU          = 22
	KeyI          = 23
	KeyO          = 24
	KeyP          = 25
	KeyLeftBrace  = 26 // [ and {
	KeyRightBrace = 27 // ] and }
	KeyEnter      = 28
	KeyLeftCtrl   = 29
	KeyA          = 30
	KeyS          = 31
	KeyD          = 32
	KeyF          = 33
	KeyG          = 34
	KeyH          = 35
	KeyJ          = 36
	KeyK          = 37
	KeyL          = 38
	KeySemicolon  = 39 // ; and :
	KeyApostrophe = 40 // ' and "
	KeyGrave      = 41 // ` and ~
	KeyLeftShift  = 42
	KeyBackslash  = 43 // \ and |
	KeyZ          = 44
	KeyX          = 45
	KeyC          = 46
	KeyV          = 47
	KeyB          = 48
	KeyN          = 49
	KeyM          = 50
	KeyComma      = 51 // , and <
	KeyDot        = 52 // . and >
	KeySlash      = 53 // / and ?
	KeyRightShift = 54
	KeyLeftAlt    = 56
	KeySpace      = 57
	KeyCapsLock   = 58

	KeyF1  = 59
	KeyF2  = 60
	KeyF3  = 61
	KeyF4  = 62
	KeyF5  = 63
	KeyF6  = 64
	KeyF7  = 65
	KeyF8  = 66
	KeyF9  = 67
	KeyF10 = 68

	KeyNumLock    = 69
	KeyScrollLock = 70
	KeyF11        = 87
	KeyF12        = 88
	KeyRightCtrl  = 97
	KeySysRq      = 99 // Print Screen
	KeyRightAlt   = 100
	KeyHome       = 102
	KeyUp         = 103
	KeyPageUp     = 104
	KeyLeft       = 105
	KeyRight      = 106
	KeyEnd        = 107
	KeyDown       = 108
	KeyPageDown   = 109
	KeyInsert     = 110
	KeyDelete     = 111
	KeyMute       = 113
	KeyVolumeDown = 114
	KeyVolumeUp   = 115
	KeyPause      = 119
	KeyLeftMeta   = 125 // Super/Windows
	KeyRightMeta  = 126
	KeyCompose    = 127 // Menu

	KeyNextSong     = 163
	KeyPlayPause    = 164
	KeyPreviousSong = 165

	KeyF13 = 183
	KeyF14 = 184
	KeyF15 = 185
	KeyF16 = 186
	KeyF17 = 187
	KeyF18 = 188
	KeyF19 = 189
	KeyF20 = 190

	// KeyMax bounds the key bits a virtual device advertises.
	KeyMax = 0x2ff
)

// Mouse button codes. Codes from BtnMisc up are buttons, not keys.
const (
	BtnMisc    = 0x100
	BtnLeft    = 0x110
	BtnRight   = 0x111
	BtnMiddle  = 0x112
	BtnSide    = 0x113
	BtnExtra   = 0x114
	BtnForward = 0x115
	BtnBack    = 0x116
	BtnTask    = 0x117
)

// VirtualDeviceName names the uinput device created for injection. Readers
// use it to tell injected events from physical ones.
const VirtualDeviceName = "pinput virtual input"
