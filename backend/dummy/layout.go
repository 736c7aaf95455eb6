package dummy

import (
	"sync"

	"github.com/Alia5/pinput/keyboard"
)

// HID usage codes (USB HID Keyboard/Keypad usage page) used as virtual key
// codes by the dummy backend.
const (
	usageEnter       = 0x28
	usageEscape      = 0x29
	usageBackspace   = 0x2A
	usageTab         = 0x2B
	usageSpace       = 0x2C
	usageCapsLock    = 0x39
	usageF1          = 0x3A // F1-F12 are contiguous
	usagePrintScreen = 0x46
	usageScrollLock  = 0x47
	usagePause       = 0x48
	usageInsert      = 0x49
	usageHome        = 0x4A
	usagePageUp      = 0x4B
	usageDelete      = 0x4C
	usageEnd         = 0x4D
	usagePageDown    = 0x4E
	usageRight       = 0x4F
	usageLeft        = 0x50
	usageDown        = 0x51
	usageUp          = 0x52
	usageNumLock     = 0x53
	usageApplication = 0x65 // Windows Menu key
	usageF13         = 0x68 // F13-F24 are contiguous
	usageMute        = 0x7F
	usageVolumeUp    = 0x80
	usageVolumeDown  = 0x81
	usagePlayPause   = 0xE8
	usageNext        = 0xEB
	usagePrevious    = 0xEC

	usageLeftCtrl   = 0xE0
	usageLeftShift  = 0xE1
	usageLeftAlt    = 0xE2
	usageLeftGUI    = 0xE3
	usageRightCtrl  = 0xE4
	usageRightShift = 0xE5
	usageRightAlt   = 0xE6
	usageRightGUI   = 0xE7

	// AltGr has no usage of its own; an unused usage keeps it distinct
	// from alt_r.
	usageAltGr = 0xF0
)

// Layout returns the dummy key layout.
var Layout = sync.OnceValue(func() *keyboard.Layout {
	codes := map[keyboard.Key]int{
		keyboard.KeyAlt:             usageLeftAlt,
		keyboard.KeyAltL:            usageLeftAlt,
		keyboard.KeyAltR:            usageRightAlt,
		keyboard.KeyAltGr:           usageAltGr,
		keyboard.KeyBackspace:       usageBackspace,
		keyboard.KeyCapsLock:        usageCapsLock,
		keyboard.KeyCmd:             usageLeftGUI,
		keyboard.KeyCmdL:            usageLeftGUI,
		keyboard.KeyCmdR:            usageRightGUI,
		keyboard.KeyCtrl:            usageLeftCtrl,
		keyboard.KeyCtrlL:           usageLeftCtrl,
		keyboard.KeyCtrlR:           usageRightCtrl,
		keyboard.KeyDelete:          usageDelete,
		keyboard.KeyDown:            usageDown,
		keyboard.KeyEnd:             usageEnd,
		keyboard.KeyEnter:           usageEnter,
		keyboard.KeyEsc:             usageEscape,
		keyboard.KeyHome:            usageHome,
		keyboard.KeyLeft:            usageLeft,
		keyboard.KeyPageDown:        usagePageDown,
		keyboard.KeyPageUp:          usagePageUp,
		keyboard.KeyRight:           usageRight,
		keyboard.KeyShift:           usageLeftShift,
		keyboard.KeyShiftL:          usageLeftShift,
		keyboard.KeyShiftR:          usageRightShift,
		keyboard.KeySpace:           usageSpace,
		keyboard.KeyTab:             usageTab,
		keyboard.KeyUp:              usageUp,
		keyboard.KeyMediaPlayPause:  usagePlayPause,
		keyboard.KeyMediaVolumeMute: usageMute,
		keyboard.KeyMediaVolumeDown: usageVolumeDown,
		keyboard.KeyMediaVolumeUp:   usageVolumeUp,
		keyboard.KeyMediaPrevious:   usagePrevious,
		keyboard.KeyMediaNext:       usageNext,
		keyboard.KeyInsert:          usageInsert,
		keyboard.KeyMenu:            usageApplication,
		keyboard.KeyNumLock:         usageNumLock,
		keyboard.KeyPause:           usagePause,
		keyboard.KeyPrintScreen:     usagePrintScreen,
		keyboard.KeyScrollLock:      usageScrollLock,
	}
	for i := 0; i < 12; i++ {
		codes[keyboard.KeyF1+keyboard.Key(i)] = usageF1 + i
	}
	for i := 0; i < 8; i++ {
		codes[keyboard.KeyF13+keyboard.Key(i)] = usageF13 + i
	}

	m := make(map[keyboard.Key]keyboard.KeyCode, len(codes))
	for k, c := range codes {
		m[k] = keyboard.FromVK(c)
	}
	return keyboard.NewLayout(m)
})
