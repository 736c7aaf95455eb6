package keyboard

// Input is either a named Key or a KeyCode.
type Input interface {
	isInput()
	String() string
}

// Key names keys that may not correspond to letters, such as modifiers and
// function keys. The concrete value of each key is platform specific and is
// supplied by the active backend through a Layout.
type Key int

const (
	KeyAlt Key = iota + 1
	KeyAltL
	KeyAltR
	KeyAltGr
	KeyBackspace
	KeyCapsLock
	KeyCmd // Super/Windows key on PC platforms, Command on Mac
	KeyCmdL
	KeyCmdR
	KeyCtrl
	KeyCtrlL
	KeyCtrlR
	KeyDelete
	KeyDown
	KeyEnd
	KeyEnter
	KeyEsc
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyHome
	KeyLeft
	KeyPageDown
	KeyPageUp
	KeyRight
	KeyShift
	KeyShiftL
	KeyShiftR
	KeySpace
	KeyTab
	KeyUp

	// Media keys
	KeyMediaPlayPause
	KeyMediaVolumeMute
	KeyMediaVolumeDown
	KeyMediaVolumeUp
	KeyMediaPrevious
	KeyMediaNext

	// May be undefined for some platforms.
	KeyInsert
	KeyMenu
	KeyNumLock
	KeyPause
	KeyPrintScreen
	KeyScrollLock

	keyCount
)

var keyNames = [keyCount]string{
	KeyAlt:             "alt",
	KeyAltL:            "alt_l",
	KeyAltR:            "alt_r",
	KeyAltGr:           "alt_gr",
	KeyBackspace:       "backspace",
	KeyCapsLock:        "caps_lock",
	KeyCmd:             "cmd",
	KeyCmdL:            "cmd_l",
	KeyCmdR:            "cmd_r",
	KeyCtrl:            "ctrl",
	KeyCtrlL:           "ctrl_l",
	KeyCtrlR:           "ctrl_r",
	KeyDelete:          "delete",
	KeyDown:            "down",
	KeyEnd:             "end",
	KeyEnter:           "enter",
	KeyEsc:             "esc",
	KeyF1:              "f1",
	KeyF2:              "f2",
	KeyF3:              "f3",
	KeyF4:              "f4",
	KeyF5:              "f5",
	KeyF6:              "f6",
	KeyF7:              "f7",
	KeyF8:              "f8",
	KeyF9:              "f9",
	KeyF10:             "f10",
	KeyF11:             "f11",
	KeyF12:             "f12",
	KeyF13:             "f13",
	KeyF14:             "f14",
	KeyF15:             "f15",
	KeyF16:             "f16",
	KeyF17:             "f17",
	KeyF18:             "f18",
	KeyF19:             "f19",
	KeyF20:             "f20",
	KeyHome:            "home",
	KeyLeft:            "left",
	KeyPageDown:        "page_down",
	KeyPageUp:          "page_up",
	KeyRight:           "right",
	KeyShift:           "shift",
	KeyShiftL:          "shift_l",
	KeyShiftR:          "shift_r",
	KeySpace:           "space",
	KeyTab:             "tab",
	KeyUp:              "up",
	KeyMediaPlayPause:  "media_play_pause",
	KeyMediaVolumeMute: "media_volume_mute",
	KeyMediaVolumeDown: "media_volume_down",
	KeyMediaVolumeUp:   "media_volume_up",
	KeyMediaPrevious:   "media_previous",
	KeyMediaNext:       "media_next",
	KeyInsert:          "insert",
	KeyMenu:            "menu",
	KeyNumLock:         "num_lock",
	KeyPause:           "pause",
	KeyPrintScreen:     "print_screen",
	KeyScrollLock:      "scroll_lock",
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames))
	for k, name := range keyNames {
		if name != "" {
			m[name] = Key(k)
		}
	}
	return m
}()

func (k Key) isInput() {}

// String returns the snake_case name of the key, e.g. "page_down".
func (k Key) String() string {
	if k > 0 && k < keyCount {
		return keyNames[k]
	}
	return "unknown"
}

// Valid reports whether k is one of the declared keys.
func (k Key) Valid() bool {
	return k > 0 && k < keyCount
}

// KeyByName looks up a key by its snake_case name.
func KeyByName(name string) (Key, bool) {
	k, ok := keysByName[name]
	return k, ok
}

// AllKeys returns every declared key in declaration order.
func AllKeys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := Key(1); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}
